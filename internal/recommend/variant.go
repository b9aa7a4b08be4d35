// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/quizfunnel/internal/validation"
)

// QuestionID is a question identifier within one variant's closed set.
type QuestionID string

// OptionValue is an answer option identifier within one question's closed set.
type OptionValue string

const (
	// UnrecognizedQuestion is what any id outside the variant's set resolves to.
	UnrecognizedQuestion QuestionID = "<unrecognized>"

	// UnrecognizedOption is what any option outside the question's set resolves to.
	UnrecognizedOption OptionValue = "<unrecognized>"
)

// Weight is the points an option awards to each accumulator. Hybrid answers
// award points to both.
type Weight struct {
	Group   int `json:"group" koanf:"group"`
	Private int `json:"private" koanf:"private"`
}

// OptionWeights maps each recognized option of a question to its weight.
type OptionWeights map[OptionValue]Weight

// BundleRule grants the bundled track inside the near-tie zone when the
// experience answer is the mix option and the time answer is one of the
// eligible tiers.
type BundleRule struct {
	ExperienceQuestion QuestionID    `json:"experience_question" koanf:"experience_question" validate:"required"`
	MixOption          OptionValue   `json:"mix_option" koanf:"mix_option" validate:"required"`
	TimeQuestion       QuestionID    `json:"time_question" koanf:"time_question" validate:"required"`
	EligibleTimes      []OptionValue `json:"eligible_times" koanf:"eligible_times" validate:"min=1,dive,required"`
}

// TieBreaker returns Track when the answer to Question is one of Options.
type TieBreaker struct {
	Question QuestionID    `json:"question" koanf:"question" validate:"required"`
	Options  []OptionValue `json:"options" koanf:"options" validate:"min=1,dive,required"`
	Track    Track         `json:"track" koanf:"track" validate:"required,oneof=group private bundled"`
}

// ReasonRule contributes Text to the explanation of Track when the answer to
// Question is one of Options.
type ReasonRule struct {
	Question QuestionID    `json:"question" koanf:"question" validate:"required"`
	Options  []OptionValue `json:"options" koanf:"options" validate:"min=1,dive,required"`
	Track    Track         `json:"track" koanf:"track" validate:"required,oneof=group private bundled kids"`
	Text     string        `json:"text" koanf:"text" validate:"required,max=300"`
}

// Variant is one quiz revision's scoring strategy.
type Variant struct {
	ID           string                       `json:"id" koanf:"id" validate:"required,slug"`
	Name         string                       `json:"name" koanf:"name" validate:"required,max=100"`
	Description  string                       `json:"description,omitempty" koanf:"description" validate:"max=500"`
	Threshold    int                          `json:"threshold" koanf:"threshold" validate:"gte=0,lte=100"`
	DefaultTrack Track                        `json:"default_track" koanf:"default_track" validate:"omitempty,oneof=group private bundled"`
	SupportsKids bool                         `json:"supports_kids" koanf:"supports_kids"`
	DisplayOnly  []QuestionID                 `json:"display_only,omitempty" koanf:"display_only" validate:"dive,required"`
	Questions    map[QuestionID]OptionWeights `json:"questions" koanf:"questions" validate:"required,min=1"`
	Bundle       *BundleRule                  `json:"bundle,omitempty" koanf:"bundle"`
	TieBreakers  []TieBreaker                 `json:"tie_breakers" koanf:"tie_breakers" validate:"dive"`
	Reasons      []ReasonRule                 `json:"reasons,omitempty" koanf:"reasons" validate:"dive"`
}

// applyDefaults fills zero values with the package defaults.
func (v *Variant) applyDefaults() {
	if v.Threshold == 0 {
		v.Threshold = DefaultThreshold
	}
	if v.DefaultTrack == "" {
		v.DefaultTrack = DefaultTrack
	}
}

// Validate checks struct tags and cross references between the weight table,
// the bundle rule, the tie-breakers and the reasons.
func (v *Variant) Validate() error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidVariant, verr.Error())
	}

	for _, q := range v.DisplayOnly {
		if _, scored := v.Questions[q]; scored {
			return fmt.Errorf("%w: question %q is both scored and display-only", ErrInvalidVariant, q)
		}
	}

	for q, opts := range v.Questions {
		if q == "" || q == UnrecognizedQuestion {
			return fmt.Errorf("%w: invalid question id %q", ErrInvalidVariant, q)
		}
		for o, w := range opts {
			if o == "" || o == UnrecognizedOption {
				return fmt.Errorf("%w: invalid option id %q in question %q", ErrInvalidVariant, o, q)
			}
			if w.Group < 0 || w.Private < 0 {
				return fmt.Errorf("%w: negative weight for %s/%s", ErrInvalidVariant, q, o)
			}
		}
	}

	if b := v.Bundle; b != nil {
		if err := v.checkOptions(b.ExperienceQuestion, []OptionValue{b.MixOption}); err != nil {
			return fmt.Errorf("bundle rule: %w", err)
		}
		if err := v.checkOptions(b.TimeQuestion, b.EligibleTimes); err != nil {
			return fmt.Errorf("bundle rule: %w", err)
		}
	}

	for i, tb := range v.TieBreakers {
		if tb.Track == TrackBundled && v.Bundle == nil {
			return fmt.Errorf("%w: tie-breaker %d targets bundled without a bundle rule", ErrInvalidVariant, i)
		}
		if err := v.checkOptions(tb.Question, tb.Options); err != nil {
			return fmt.Errorf("tie-breaker %d: %w", i, err)
		}
	}

	for i, r := range v.Reasons {
		if err := v.checkOptions(r.Question, r.Options); err != nil {
			return fmt.Errorf("reason %d: %w", i, err)
		}
	}

	if v.DefaultTrack == TrackBundled && v.Bundle == nil {
		return fmt.Errorf("%w: default track bundled requires a bundle rule", ErrInvalidVariant)
	}

	return nil
}

// checkOptions verifies that q is a scored question and every option belongs to it.
func (v *Variant) checkOptions(q QuestionID, opts []OptionValue) error {
	table, ok := v.Questions[q]
	if !ok {
		return fmt.Errorf("%w: unknown question %q", ErrInvalidVariant, q)
	}
	for _, o := range opts {
		if _, ok := table[o]; !ok {
			return fmt.Errorf("%w: unknown option %q for question %q", ErrInvalidVariant, o, q)
		}
	}
	return nil
}

// Question resolves a raw question id. Display-only questions resolve to
// themselves; anything else outside the weight table is UnrecognizedQuestion.
func (v *Variant) Question(raw string) QuestionID {
	q := QuestionID(raw)
	if _, ok := v.Questions[q]; ok {
		return q
	}
	for _, d := range v.DisplayOnly {
		if d == q {
			return q
		}
	}
	return UnrecognizedQuestion
}

// Option resolves a raw option id for a scored question.
func (v *Variant) Option(q QuestionID, raw string) OptionValue {
	table, ok := v.Questions[q]
	if !ok {
		return UnrecognizedOption
	}
	o := OptionValue(raw)
	if _, ok := table[o]; ok {
		return o
	}
	return UnrecognizedOption
}

// QuestionIDs returns the scored and display-only question ids, sorted.
func (v *Variant) QuestionIDs() []QuestionID {
	ids := make([]QuestionID, 0, len(v.Questions)+len(v.DisplayOnly))
	for q := range v.Questions {
		ids = append(ids, q)
	}
	ids = append(ids, v.DisplayOnly...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Tracks returns the tracks this variant can produce.
func (v *Variant) Tracks() []Track {
	tracks := []Track{TrackGroup, TrackPrivate}
	if v.Bundle != nil {
		tracks = append(tracks, TrackBundled)
	}
	if v.SupportsKids {
		tracks = append(tracks, TrackKids)
	}
	return tracks
}

// Clone returns a deep copy so callers cannot mutate a registered variant.
func (v *Variant) Clone() *Variant {
	c := *v
	c.DisplayOnly = append([]QuestionID(nil), v.DisplayOnly...)
	c.Questions = make(map[QuestionID]OptionWeights, len(v.Questions))
	for q, opts := range v.Questions {
		m := make(OptionWeights, len(opts))
		for o, w := range opts {
			m[o] = w
		}
		c.Questions[q] = m
	}
	if v.Bundle != nil {
		b := *v.Bundle
		b.EligibleTimes = append([]OptionValue(nil), v.Bundle.EligibleTimes...)
		c.Bundle = &b
	}
	c.TieBreakers = make([]TieBreaker, len(v.TieBreakers))
	for i, tb := range v.TieBreakers {
		tb.Options = append([]OptionValue(nil), tb.Options...)
		c.TieBreakers[i] = tb
	}
	c.Reasons = make([]ReasonRule, len(v.Reasons))
	for i, r := range v.Reasons {
		r.Options = append([]OptionValue(nil), r.Options...)
		c.Reasons[i] = r
	}
	return &c
}
