// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Track identifies the recommended product tier.
type Track string

const (
	// TrackGroup is unlimited group classes.
	TrackGroup Track = "group"
	// TrackPrivate is one-on-one tutoring.
	TrackPrivate Track = "private"
	// TrackBundled is one private class plus unlimited group classes.
	TrackBundled Track = "bundled"
	// TrackKids is the kids program, reachable only through the kids override.
	TrackKids Track = "kids"
)

// DefaultTrack is the final fallback of every built-in tie-break cascade.
const DefaultTrack = TrackGroup

// DefaultThreshold is the score difference at which one track wins outright.
const DefaultThreshold = 2

// String returns the track identifier.
func (t Track) String() string {
	return string(t)
}

// Valid reports whether t is one of the known tracks.
func (t Track) Valid() bool {
	switch t {
	case TrackGroup, TrackPrivate, TrackBundled, TrackKids:
		return true
	default:
		return false
	}
}

// AllTracks returns the known tracks in display order.
func AllTracks() []Track {
	return []Track{TrackGroup, TrackPrivate, TrackBundled, TrackKids}
}

// ParseTrack converts a string into a Track.
func ParseTrack(s string) (Track, error) {
	t := Track(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTrack, s)
	}
	return t, nil
}

// AnswerType is the input widget kind that produced an answer.
type AnswerType string

const (
	AnswerMCQ            AnswerType = "mcq"
	AnswerText           AnswerType = "text"
	AnswerImageSelection AnswerType = "image-selection"
	AnswerAudio          AnswerType = "audio"
	AnswerFillInBlanks   AnswerType = "fill-in-blanks"
)

// AnswerValue holds either a single selection or a list of selections.
// It unmarshals from a JSON string or a JSON array of strings.
type AnswerValue struct {
	values []string
	multi  bool
}

// Single returns an AnswerValue holding one selection.
func Single(v string) AnswerValue {
	return AnswerValue{values: []string{v}}
}

// Multi returns an AnswerValue holding several selections.
func Multi(v ...string) AnswerValue {
	return AnswerValue{values: append([]string(nil), v...), multi: true}
}

// Values returns the selections. A single value yields a one-element slice.
func (v AnswerValue) Values() []string {
	return v.values
}

// IsMulti reports whether the value came from a multi-select question.
func (v AnswerValue) IsMulti() bool {
	return v.multi
}

// String returns the single selection, or the first one of a multi-select.
func (v AnswerValue) String() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Has reports whether the value contains s.
func (v AnswerValue) Has(s string) bool {
	for _, x := range v.values {
		if x == s {
			return true
		}
	}
	return false
}

// MarshalJSON encodes a single value as a string and multi values as an array.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.multi {
		if v.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.values)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts either a string or an array of strings.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("answer value: %w", err)
		}
		*v = Multi(list...)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer value: %w", err)
	}
	*v = Single(s)
	return nil
}

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (v *AnswerValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*v = Multi(list...)
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("answer value: %w", err)
	}
	*v = Single(s)
	return nil
}

// Answer is one participant response. At most one answer exists per question
// in a session; resubmission replaces the earlier record.
type Answer struct {
	QuestionID string      `json:"questionId" yaml:"questionId" validate:"max=64"`
	Type       AnswerType  `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=mcq text image-selection audio fill-in-blanks"`
	Value      AnswerValue `json:"value" yaml:"value"`
}

// ScorePair holds the two accumulators produced by the scorer.
// Both are always non-negative.
type ScorePair struct {
	Group   int `json:"group_score"`
	Private int `json:"private_score"`
}

// Diff returns Group minus Private.
func (s ScorePair) Diff() int {
	return s.Group - s.Private
}

// Recommendation is the recommender's output: a track plus the scores that
// justified it.
type Recommendation struct {
	Track        Track `json:"recommended_track"`
	GroupScore   int   `json:"group_score"`
	PrivateScore int   `json:"private_score"`
}

// Scores returns the score pair carried by the recommendation.
func (r Recommendation) Scores() ScorePair {
	return ScorePair{Group: r.GroupScore, Private: r.PrivateScore}
}

// RecommendationState is one completed quiz run's outcome.
type RecommendationState struct {
	Recommendation
	IsKidsOverride bool `json:"is_kids_override"`
}
