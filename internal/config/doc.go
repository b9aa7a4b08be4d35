// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

/*
Package config loads service configuration with Koanf v2.

Sources, lowest priority first:

 1. Struct defaults (defaultConfig)
 2. YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths that exists
 3. Environment variables, through an explicit mapping table

A .env file in the working directory is read into the process environment
before layer 3 with joho/godotenv. Variables already set are not replaced.

Only mapped environment variables are read, so unrelated variables never
leak into the configuration. Comma-separated values become slices for the
fields listed in sliceConfigPaths.

Example config.yaml:

	server:
	  port: 8080
	quiz:
	  default_variant: current
	  variant_files: [/etc/quizfunnel/variants/spring.yaml]
	webhook:
	  enabled: true
	  url: https://hooks.example.com/quiz
	  headers:
	    X-Api-Key: secret
	payment:
	  academy_fee: 49
	  links:
	    - track: group
	      term: monthly
	      with_academy: https://buy.example.com/a
	      without_academy: https://buy.example.com/b

Environment equivalents: HTTP_PORT, QUIZ_DEFAULT_VARIANT, QUIZ_VARIANT_FILES,
WEBHOOK_ENABLED, WEBHOOK_URL, ACADEMY_FEE. Structured values such as webhook
headers and payment links are file-only.
*/
package config
