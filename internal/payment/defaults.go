// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package payment

import (
	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

const punchpassQuery = "?check=&catalog_pass_guest_checkout_form%5Bfirst_name%5D=" +
	"&catalog_pass_guest_checkout_form%5Blast_name%5D=" +
	"&catalog_pass_guest_checkout_form%5Bemail%5D=" +
	"&catalog_pass_guest_checkout_form%5Bdiscount_code%5D=BLACKFVIP2025%23"

func punchpass(pass string) string {
	return "https://spanishvip.punchpass.com/catalogs/purchase/pass/" + pass + punchpassQuery
}

// defaultLinks has no kids entry; kids enrollment goes through an advisor.
var defaultLinks = map[recommend.Track]map[content.Term]Links{
	recommend.TrackGroup: {
		content.TermMonthly: {
			WithoutAcademy: punchpass("99815"),
			WithAcademy:    "https://buy.stripe.com/bJe4gzgHrgWZ3tQfaw0VO1o",
		},
		content.TermQuarterly: {
			WithoutAcademy: punchpass("102493"),
			WithAcademy:    "https://buy.stripe.com/aFaeVd4YJayB2pM3rO0VO1p",
		},
		content.TermSixMonths: {
			WithoutAcademy: punchpass("106514"),
			WithAcademy:    "https://buy.stripe.com/4gMdR92QBayBfcye6s0VO1s",
		},
	},
	recommend.TrackPrivate: {
		content.TermMonthly: {
			WithoutAcademy: "https://buy.stripe.com/4gMfZhaj3bCFaWi0fC0VO0Z",
			WithAcademy:    "https://buy.stripe.com/00w7sL62NcGJc0m6E00VO1n",
		},
	},
	recommend.TrackBundled: {
		content.TermMonthly: {
			WithoutAcademy: "https://buy.stripe.com/cNi3cv3UF3695BY0fC0VO1l",
			WithAcademy:    "https://buy.stripe.com/28E8wPgHrbCFc0md2o0VO1q",
		},
		content.TermQuarterly: {
			WithoutAcademy: "https://buy.stripe.com/9B6bJ18aV4ad5BY0fC0VO1m",
			WithAcademy:    "https://buy.stripe.com/fZu8wPcrbdKNggC7I40VO1r",
		},
	},
}
