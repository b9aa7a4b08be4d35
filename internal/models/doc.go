// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

/*
Package models defines the request and response bodies of the HTTP API.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {"recommended_track": "group", "group_score": 6, ...},
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 1}
	}

Errors carry a machine-readable code instead of data:

	{
	  "status": "error",
	  "error": {"code": "VALIDATION_ERROR", "message": "email must be a valid email address"},
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
	}

Request structs carry validate tags checked by internal/validation before a
handler touches them.
*/
package models
