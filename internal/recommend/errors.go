// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

import "errors"

// Sentinel errors. Scoring and recommending never fail; these cover variant
// construction, loading and lookup only.
var (
	// ErrUnknownTrack is returned when a string does not name a known track.
	ErrUnknownTrack = errors.New("unknown track")

	// ErrUnknownVariant is returned by Registry lookups for an unregistered id.
	ErrUnknownVariant = errors.New("unknown quiz variant")

	// ErrInvalidVariant wraps variant validation failures.
	ErrInvalidVariant = errors.New("invalid quiz variant")

	// ErrDuplicateVariant is returned when registering an id twice.
	ErrDuplicateVariant = errors.New("duplicate quiz variant")
)
