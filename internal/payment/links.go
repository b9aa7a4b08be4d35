// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package payment resolves checkout links by track, billing term and
// Academy add-on flag.
package payment

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/recommend"
	"github.com/tomtom215/quizfunnel/internal/validation"
)

var (
	// ErrUnknownTrack is returned for tracks that have no checkout links.
	ErrUnknownTrack = errors.New("no payment links for track")

	// ErrInvalidOverride is returned when a configured link is unusable.
	ErrInvalidOverride = errors.New("invalid payment link override")
)

// Links is the pair of checkout URLs for one track and term.
type Links struct {
	WithAcademy    string `json:"with_academy" koanf:"with_academy"`
	WithoutAcademy string `json:"without_academy" koanf:"without_academy"`
}

// Pick returns the URL matching the Academy flag.
func (l Links) Pick(includeAcademy bool) string {
	if includeAcademy {
		return l.WithAcademy
	}
	return l.WithoutAcademy
}

// Override replaces the links of one track and term.
type Override struct {
	Track          string `koanf:"track" validate:"required,oneof=group private bundled kids"`
	Term           string `koanf:"term" validate:"required,oneof=monthly quarterly 6_months"`
	WithAcademy    string `koanf:"with_academy" validate:"required,url"`
	WithoutAcademy string `koanf:"without_academy" validate:"required,url"`
}

// Table is a concurrency-safe link table.
type Table struct {
	mu    sync.RWMutex
	links map[recommend.Track]map[content.Term]Links
}

// NewTable returns a table seeded with the default links.
func NewTable() *Table {
	t := &Table{links: make(map[recommend.Track]map[content.Term]Links, len(defaultLinks))}
	for track, terms := range defaultLinks {
		t.links[track] = make(map[content.Term]Links, len(terms))
		for term, l := range terms {
			t.links[track][term] = l
		}
	}
	return t
}

// Apply installs each override. It validates all of them first and leaves
// the table unchanged if any is invalid.
func (t *Table) Apply(overrides []Override) error {
	for i := range overrides {
		o := &overrides[i]
		if verr := validation.ValidateStruct(o); verr != nil {
			return fmt.Errorf("%w: entry %d: %s", ErrInvalidOverride, i, verr.Error())
		}
		for _, raw := range []string{o.WithAcademy, o.WithoutAcademy} {
			if u, err := url.Parse(raw); err != nil || u.Scheme != "https" || u.Host == "" {
				return fmt.Errorf("%w: entry %d: %q is not an https URL", ErrInvalidOverride, i, raw)
			}
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, o := range overrides {
		track, term := recommend.Track(o.Track), content.Term(o.Term)
		if t.links[track] == nil {
			t.links[track] = make(map[content.Term]Links)
		}
		t.links[track][term] = Links{WithAcademy: o.WithAcademy, WithoutAcademy: o.WithoutAcademy}
	}
	return nil
}

// Link returns the checkout URL for track. A term the track is not sold on
// falls back to monthly.
func (t *Table) Link(track recommend.Track, includeAcademy bool, term content.Term) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	terms, ok := t.links[track]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTrack, track)
	}
	l, ok := terms[term]
	if !ok {
		l, ok = terms[content.DefaultTerm]
	}
	if !ok {
		return "", fmt.Errorf("%w: %q has no %s link", ErrUnknownTrack, track, content.DefaultTerm)
	}
	return l.Pick(includeAcademy), nil
}

// Terms returns the terms track has links for, in display order.
func (t *Table) Terms(track recommend.Track) []content.Term {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []content.Term
	for _, term := range content.Terms() {
		if _, ok := t.links[track][term]; ok {
			out = append(out, term)
		}
	}
	return out
}

var defaultTable = NewTable()

// Link resolves a checkout URL from the default table.
func Link(track recommend.Track, includeAcademy bool, term content.Term) (string, error) {
	return defaultTable.Link(track, includeAcademy, term)
}
