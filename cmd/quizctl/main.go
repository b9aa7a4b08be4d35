// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Command quizctl scores answer sets, resolves checkout links, validates
// variant and quiz files, and runs quizzes in the terminal.
//
// Usage:
//
//	quizctl score q3=experience_mix q4=time_5_6
//	quizctl score --variant classic --answers answers.yaml --format json
//	quizctl variants
//	quizctl link --track group --term quarterly --academy
//	quizctl validate --root ./quizzes "**/*.variant.yaml" "**/*.quiz.yaml"
//	quizctl play --quiz spring.quiz.yaml
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
