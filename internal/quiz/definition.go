// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package quiz models a quiz definition (questions, options, result
// templates) and the in-memory session state of one participant run.
package quiz

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/quizfunnel/internal/recommend"
	"github.com/tomtom215/quizfunnel/internal/validation"
)

var (
	// ErrInvalidDefinition wraps every definition validation failure.
	ErrInvalidDefinition = errors.New("invalid quiz definition")

	// ErrUnknownQuestion is returned when an answer names a question the
	// definition does not contain.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrSingleChoice is returned when several values answer a question
	// that allows one.
	ErrSingleChoice = errors.New("question takes a single answer")
)

// Option is one selectable answer. Value is what the scorer sees.
type Option struct {
	ID    string `json:"id" koanf:"id" validate:"required,max=64"`
	Text  string `json:"text" koanf:"text" validate:"required,max=200"`
	Value string `json:"value" koanf:"value" validate:"required,max=64"`
}

// Question is one quiz step.
type Question struct {
	ID       string               `json:"id" koanf:"id" validate:"required,max=64"`
	Type     recommend.AnswerType `json:"type" koanf:"type" validate:"required,oneof=mcq text image-selection audio fill-in-blanks"`
	Title    string               `json:"title" koanf:"title" validate:"required,max=300"`
	Subtitle string               `json:"subtitle,omitempty" koanf:"subtitle" validate:"max=300"`
	Required bool                 `json:"required" koanf:"required"`
	Multiple bool                 `json:"multiple,omitempty" koanf:"multiple"`
	Options  []Option             `json:"options" koanf:"options" validate:"dive"`
}

// Option returns the option whose value is v.
func (q Question) Option(v string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == v {
			return o, true
		}
	}
	return Option{}, false
}

// Incentive is the optional promotion shown on the thank-you page.
type Incentive struct {
	Enabled bool   `json:"enabled" koanf:"enabled"`
	Title   string `json:"title,omitempty" koanf:"title" validate:"max=200"`
	URL     string `json:"url,omitempty" koanf:"url" validate:"omitempty,url"`
}

// Definition is a complete quiz.
type Definition struct {
	ID                  string     `json:"id" koanf:"id" validate:"required,slug"`
	Title               string     `json:"title" koanf:"title" validate:"required,max=200"`
	Description         string     `json:"description,omitempty" koanf:"description" validate:"max=500"`
	Variant             string     `json:"variant,omitempty" koanf:"variant" validate:"omitempty,slug"`
	WebhookURL          string     `json:"webhook_url,omitempty" koanf:"webhook_url" validate:"omitempty,url"`
	ExternalRedirectURL string     `json:"external_redirect_url,omitempty" koanf:"external_redirect_url" validate:"omitempty,url"`
	Incentive           Incentive  `json:"incentive" koanf:"incentive"`
	Questions           []Question `json:"questions" koanf:"questions" validate:"required,min=1,dive"`
	ResultTemplates     []Template `json:"result_templates,omitempty" koanf:"result_templates" validate:"dive"`
}

// Validate checks field constraints, unique ids and template references.
func (d *Definition) Validate() error {
	if verr := validation.ValidateStruct(d); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDefinition, verr.Error())
	}

	seen := make(map[string]bool, len(d.Questions))
	for _, q := range d.Questions {
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question %q", ErrInvalidDefinition, q.ID)
		}
		seen[q.ID] = true

		values := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if values[o.Value] {
				return fmt.Errorf("%w: question %q repeats option value %q", ErrInvalidDefinition, q.ID, o.Value)
			}
			values[o.Value] = true
		}
		if q.Type == recommend.AnswerMCQ && len(q.Options) == 0 {
			return fmt.Errorf("%w: question %q has no options", ErrInvalidDefinition, q.ID)
		}
	}

	for _, t := range d.ResultTemplates {
		for _, c := range t.Conditions {
			if !seen[c.QuestionID] {
				return fmt.Errorf("%w: template %q references unknown question %q", ErrInvalidDefinition, t.ID, c.QuestionID)
			}
		}
	}
	return nil
}

// Question returns the question with id.
func (d *Definition) Question(id string) (Question, bool) {
	if i := d.indexOf(id); i >= 0 {
		return d.Questions[i], true
	}
	return Question{}, false
}

func (d *Definition) indexOf(id string) int {
	for i := range d.Questions {
		if d.Questions[i].ID == id {
			return i
		}
	}
	return -1
}

// Lint lists the option values of scored questions that v would treat as
// unrecognized. Questions v does not know are reported once by id.
func (d *Definition) Lint(v *recommend.Variant) []string {
	var problems []string
	for _, q := range d.Questions {
		qid := v.Question(q.ID)
		if qid == recommend.UnrecognizedQuestion {
			problems = append(problems, fmt.Sprintf("question %q is not known to variant %q", q.ID, v.ID))
			continue
		}
		if _, scored := v.Questions[qid]; !scored {
			continue
		}
		for _, o := range q.Options {
			if v.Option(qid, o.Value) == recommend.UnrecognizedOption {
				problems = append(problems, fmt.Sprintf("question %q option %q scores nothing in variant %q", q.ID, o.Value, v.ID))
			}
		}
	}
	return problems
}

// LoadDefinitionFile reads a YAML (or JSON) quiz definition from path.
func LoadDefinitionFile(path string) (*Definition, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load quiz definition %s: %w", path, err)
	}
	d, err := unmarshalDefinition(k)
	if err != nil {
		return nil, fmt.Errorf("quiz definition %s: %w", path, err)
	}
	return d, nil
}

// LoadDefinitionBytes parses a YAML (or JSON) quiz definition.
func LoadDefinitionBytes(data []byte) (*Definition, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse quiz definition: %w", err)
	}
	return unmarshalDefinition(k)
}

func unmarshalDefinition(k *koanf.Koanf) (*Definition, error) {
	d := &Definition{}
	if err := k.Unmarshal("", d); err != nil {
		return nil, fmt.Errorf("unmarshal quiz definition: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
