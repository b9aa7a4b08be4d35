// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package content

import "github.com/tomtom215/quizfunnel/internal/recommend"

const (
	saleBadge = "Incredible deal"
	saleNote  = "Limited-time offer"
)

var (
	featureUnlimitedGroup = Feature{
		Icon:        "👥",
		Title:       "Unlimited Sessions",
		Description: "Join as many classes as you want Monday-Friday at your CEFR level",
	}
	featureDedicatedTeacher = Feature{
		Icon:        "👨‍🏫",
		Title:       "Dedicated Native Teacher",
		Description: "Your own teacher plans every session around your specific goals",
	}
	featureCustomPlan = Feature{
		Icon:        "🎯",
		Title:       "Custom Learning Plan",
		Description: "Personalized curriculum designed just for you",
	}
)

var records = map[recommend.Track]Record{
	recommend.TrackGroup: {
		Track:    recommend.TrackGroup,
		Title:    "Group Classes",
		Subtitle: "Best fit: Unlimited sessions for one monthly price",
		Features: []Feature{
			featureUnlimitedGroup,
			{
				Icon:        "🌍",
				Title:       "Global Peer Group",
				Description: "Learn with students from around the world, led by native teachers",
			},
			{
				Icon:        "💰",
				Title:       "Great Value",
				Description: "Fixed monthly price with unlimited access to all sessions",
			},
		},
		Benefits: []string{
			"Perfect for adults 18+ who want steady practice",
			"Build momentum with regular conversation practice",
			"Learn from others in a supportive community environment",
		},
		Pricing: map[Term]Pricing{
			TermMonthly: {
				ListPrice:          149,
				ListPriceFormatted: "$149/mo",
				SalePrice:          74.5,
				SalePriceFormatted: "$74.50",
				DiscountPercent:    50,
				SaleBadgeText:      saleBadge,
				SaleNote:           saleNote,
				FinePrint:          "First month $74.50, then $149/mo. Cancel anytime.",
			},
			TermQuarterly: {
				ListPrice:          349,
				ListPriceFormatted: "$349",
				SalePrice:          174.5,
				SalePriceFormatted: "$174.50",
				DiscountPercent:    50,
				SaleBadgeText:      saleBadge,
				SaleNote:           saleNote,
				FinePrint:          "First 3 months $174.50, then $149/mo. Cancel anytime.",
			},
			TermSixMonths: {
				ListPrice:          599,
				ListPriceFormatted: "$599",
				SalePrice:          299.5,
				SalePriceFormatted: "$299.50",
				DiscountPercent:    50,
				SaleBadgeText:      saleBadge,
				SaleNote:           saleNote,
				FinePrint:          "First 6 months $299.50, then $599/mo. Cancel anytime.",
			},
		},
	},
	recommend.TrackPrivate: {
		Track:    recommend.TrackPrivate,
		Title:    "Private Tutoring",
		Subtitle: "Best fit: Dedicated teacher with custom plan",
		Features: []Feature{featureDedicatedTeacher, featureCustomPlan},
		Benefits: []string{
			"Faster progress with personalized attention",
			"Flexible scheduling that adapts to your routine",
			"Direct feedback and targeted corrections",
		},
		Pricing: map[Term]Pricing{
			TermMonthly: {
				ListPrice:          199,
				ListPriceFormatted: "$199/mo",
				SalePrice:          99.5,
				SalePriceFormatted: "$99.50",
				DiscountPercent:    50,
				SaleBadgeText:      saleBadge,
				SaleNote:           saleNote,
				FinePrint:          "First month $99.50, then $199/mo. Cancel anytime.",
			},
		},
	},
	recommend.TrackBundled: {
		Track:    recommend.TrackBundled,
		Title:    "Bundled Option",
		Subtitle: "Best fit: 1 private class + unlimited group classes",
		Features: []Feature{
			featureDedicatedTeacher,
			featureCustomPlan,
			{
				Icon:        "👥",
				Title:       "Unlimited Group Classes",
				Description: "Join as many classes as you want Monday-Friday at your CEFR level",
			},
		},
		Benefits: []string{
			"Perfect balance of personalized attention and group practice",
			"Get the best of both worlds with dedicated support and community learning",
		},
		Pricing: map[Term]Pricing{
			TermMonthly: {
				ListPrice:          215.4,
				ListPriceFormatted: "$215.40/mo",
				SalePrice:          114.99,
				SalePriceFormatted: "$114.99",
				DiscountPercent:    47,
				SaleBadgeText:      saleBadge,
				SaleNote:           saleNote,
				FinePrint:          "First month $114.99, then ~$215.40/mo. Cancel anytime.",
			},
			TermQuarterly: {
				ListPrice:          515.32,
				ListPriceFormatted: "$515.32",
				SalePrice:          257.66,
				SalePriceFormatted: "$257.66",
				DiscountPercent:    50,
				SaleBadgeText:      saleBadge,
				SaleNote:           saleNote,
				FinePrint:          "First 3 months $257.66, then ~$215.40/mo. Cancel anytime.",
			},
		},
	},
	// Kids classes are booked through an advisor, so the record has no pricing.
	recommend.TrackKids: {
		Track:    recommend.TrackKids,
		Title:    "Kids Classes",
		Subtitle: "Best fit: Playful live lessons for young learners",
		Features: []Feature{
			{
				Icon:        "🎮",
				Title:       "Learning Through Play",
				Description: "Games, songs and stories keep young learners engaged",
			},
			{
				Icon:        "👩‍🏫",
				Title:       "Kid-Friendly Teachers",
				Description: "Native teachers trained to work with children",
			},
		},
		Benefits: []string{
			"Short sessions sized for young attention spans",
			"Progress reports for parents",
		},
	},
}
