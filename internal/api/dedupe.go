// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package api

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/quizfunnel/internal/models"
)

// IdempotencyKeyHeader lets a client name a submission explicitly. Without
// it, submissions are identified by quiz, email and answers.
const IdempotencyKeyHeader = "Idempotency-Key"

// submissionNamespace scopes the name-based UUIDs used as dedupe keys.
var submissionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tomtom215/quizfunnel/submissions"))

// submissionKey derives a fixed-size dedupe key. variantID is the variant
// that scored the submission, whether or not the request named it. Answer
// order and email case do not change the key; the last answer per question
// wins, as in scoring.
func submissionKey(idempotencyKey, quizID, variantID string, req *models.SubmissionRequest) string {
	var b strings.Builder
	b.WriteString(quizID)
	b.WriteByte(0)

	if idempotencyKey != "" {
		b.WriteString("key")
		b.WriteByte(0)
		b.WriteString(idempotencyKey)
		return uuid.NewSHA1(submissionNamespace, []byte(b.String())).String()
	}

	b.WriteString(strings.ToLower(strings.TrimSpace(req.Participant.Email)))
	b.WriteByte(0)
	b.WriteString(variantID)
	if req.IsKidsOverride {
		b.WriteString("+kids")
	}

	last := make(map[string][]string, len(req.Answers))
	for _, a := range req.Answers {
		last[a.QuestionID] = a.Value.Values()
	}
	ids := make([]string, 0, len(last))
	for id := range last {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.WriteByte(0)
		b.WriteString(id)
		b.WriteByte('=')
		b.WriteString(strings.Join(last[id], "\x00"))
	}
	return uuid.NewSHA1(submissionNamespace, []byte(b.String())).String()
}
