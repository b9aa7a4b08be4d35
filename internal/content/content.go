// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package content holds the read-only offer copy shown for each track:
// titles, feature bullets, benefits and pricing per billing term.
//
// The recommendation engine never reads this package. Callers take the
// track it emits and look the record up here. Every lookup returns a copy,
// so the table cannot be mutated through a returned record.
package content

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

// DefaultAcademyFee is the Academy add-on price in USD.
const DefaultAcademyFee = 49.0

// ErrUnknownTerm is returned by ParseTerm for unsupported billing terms.
var ErrUnknownTerm = errors.New("unknown billing term")

// Term is a billing term.
type Term string

const (
	TermMonthly   Term = "monthly"
	TermQuarterly Term = "quarterly"
	TermSixMonths Term = "6_months"
)

// DefaultTerm is used when a track has no pricing for the requested term.
const DefaultTerm = TermMonthly

// Terms returns the billing terms in display order.
func Terms() []Term {
	return []Term{TermMonthly, TermQuarterly, TermSixMonths}
}

// ParseTerm converts s into a Term. An empty string yields DefaultTerm.
func ParseTerm(s string) (Term, error) {
	if s == "" {
		return DefaultTerm, nil
	}
	for _, t := range Terms() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTerm, s)
}

// Feature is one highlighted feature of a track.
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Pricing is the price of a track for one billing term.
type Pricing struct {
	ListPrice          float64 `json:"list_price"`
	ListPriceFormatted string  `json:"list_price_formatted"`
	SalePrice          float64 `json:"sale_price"`
	SalePriceFormatted string  `json:"sale_price_formatted"`
	DiscountPercent    int     `json:"discount_percent"`
	SaleBadgeText      string  `json:"sale_badge_text"`
	SaleNote           string  `json:"sale_note"`
	FinePrint          string  `json:"fine_print"`
}

// Record is the display content of one track.
type Record struct {
	Track    recommend.Track  `json:"track"`
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Features []Feature        `json:"features"`
	Benefits []string         `json:"benefits"`
	Pricing  map[Term]Pricing `json:"pricing,omitempty"`
}

// HasPricing reports whether the track can be purchased directly.
func (r Record) HasPricing() bool {
	return len(r.Pricing) > 0
}

func (r Record) clone() Record {
	out := r
	out.Features = append([]Feature(nil), r.Features...)
	out.Benefits = append([]string(nil), r.Benefits...)
	if r.Pricing != nil {
		out.Pricing = make(map[Term]Pricing, len(r.Pricing))
		for t, p := range r.Pricing {
			out.Pricing[t] = p
		}
	}
	return out
}

// Lookup returns the record for track.
func Lookup(track recommend.Track) (Record, bool) {
	r, ok := records[track]
	if !ok {
		return Record{}, false
	}
	return r.clone(), true
}

// PricingFor returns the pricing of track for term, falling back to the
// monthly price when the track is not sold on that term.
func PricingFor(track recommend.Track, term Term) (Pricing, Term, bool) {
	r, ok := records[track]
	if !ok || !r.HasPricing() {
		return Pricing{}, "", false
	}
	if p, ok := r.Pricing[term]; ok {
		return p, term, true
	}
	p, ok := r.Pricing[DefaultTerm]
	if !ok {
		return Pricing{}, "", false
	}
	return p, DefaultTerm, true
}

// Alternates returns the records of the offered tracks other than track,
// in the order given. Tracks without content are skipped.
func Alternates(track recommend.Track, offered []recommend.Track) []Record {
	out := make([]Record, 0, len(offered))
	for _, t := range offered {
		if t == track {
			continue
		}
		if r, ok := Lookup(t); ok {
			out = append(out, r)
		}
	}
	return out
}

// AdjustedSalePrice adds the Academy fee to the sale price when the add-on
// is included. A non-positive fee means DefaultAcademyFee.
func AdjustedSalePrice(p Pricing, includeAcademy bool, academyFee float64) float64 {
	if !includeAcademy {
		return p.SalePrice
	}
	if academyFee <= 0 {
		academyFee = DefaultAcademyFee
	}
	return math.Round((p.SalePrice+academyFee)*100) / 100
}

// FormatUSD renders an amount the way the price table does, e.g. "$123.50".
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
