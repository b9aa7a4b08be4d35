// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package payment

import (
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

func TestLink(t *testing.T) {
	tests := []struct {
		name    string
		track   recommend.Track
		academy bool
		term    content.Term
		want    string
	}{
		{"group monthly", recommend.TrackGroup, false, content.TermMonthly, "punchpass.com/catalogs/purchase/pass/99815?"},
		{"group monthly academy", recommend.TrackGroup, true, content.TermMonthly, "https://buy.stripe.com/bJe4gzgHrgWZ3tQfaw0VO1o"},
		{"group quarterly", recommend.TrackGroup, false, content.TermQuarterly, "pass/102493?"},
		{"group six months academy", recommend.TrackGroup, true, content.TermSixMonths, "https://buy.stripe.com/4gMdR92QBayBfcye6s0VO1s"},
		{"private quarterly falls back", recommend.TrackPrivate, false, content.TermQuarterly, "https://buy.stripe.com/4gMfZhaj3bCFaWi0fC0VO0Z"},
		{"private empty term falls back", recommend.TrackPrivate, true, "", "https://buy.stripe.com/00w7sL62NcGJc0m6E00VO1n"},
		{"bundled quarterly academy", recommend.TrackBundled, true, content.TermQuarterly, "https://buy.stripe.com/fZu8wPcrbdKNggC7I40VO1r"},
		{"bundled six months falls back", recommend.TrackBundled, false, content.TermSixMonths, "https://buy.stripe.com/cNi3cv3UF3695BY0fC0VO1l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Link(tt.track, tt.academy, tt.term)
			if err != nil {
				t.Fatalf("Link() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Link() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestLink_UnknownTrack(t *testing.T) {
	for _, track := range []recommend.Track{recommend.TrackKids, "vip"} {
		if _, err := Link(track, false, content.TermMonthly); !errors.Is(err, ErrUnknownTrack) {
			t.Errorf("Link(%q) error = %v, want ErrUnknownTrack", track, err)
		}
	}
}

func TestTable_Apply(t *testing.T) {
	table := NewTable()
	err := table.Apply([]Override{{
		Track:          "private",
		Term:           "quarterly",
		WithAcademy:    "https://pay.example.com/private-q-academy",
		WithoutAcademy: "https://pay.example.com/private-q",
	}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, _ := table.Link(recommend.TrackPrivate, false, content.TermQuarterly)
	if got != "https://pay.example.com/private-q" {
		t.Errorf("Link() after override = %q", got)
	}
	if terms := table.Terms(recommend.TrackPrivate); len(terms) != 2 {
		t.Errorf("Terms(private) = %v, want monthly and quarterly", terms)
	}

	// The package default table is untouched.
	def, _ := Link(recommend.TrackPrivate, false, content.TermQuarterly)
	if def == got {
		t.Error("override leaked into the default table")
	}
}

func TestTable_ApplyInvalid(t *testing.T) {
	valid := Override{
		Track:          "group",
		Term:           "monthly",
		WithAcademy:    "https://pay.example.com/a",
		WithoutAcademy: "https://pay.example.com/b",
	}

	tests := []struct {
		name   string
		modify func(*Override)
	}{
		{"unknown track", func(o *Override) { o.Track = "vip" }},
		{"unknown term", func(o *Override) { o.Term = "weekly" }},
		{"missing url", func(o *Override) { o.WithAcademy = "" }},
		{"plain http", func(o *Override) { o.WithoutAcademy = "http://pay.example.com/b" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			bad := valid
			tt.modify(&bad)

			err := table.Apply([]Override{valid, bad})
			if !errors.Is(err, ErrInvalidOverride) {
				t.Fatalf("Apply() error = %v, want ErrInvalidOverride", err)
			}
			got, _ := table.Link(recommend.TrackGroup, true, content.TermMonthly)
			if got == valid.WithAcademy {
				t.Error("table changed despite invalid override")
			}
		})
	}
}
