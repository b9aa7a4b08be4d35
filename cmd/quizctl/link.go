// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/payment"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

// offer is a resolved checkout link with its price.
type offer struct {
	Track        recommend.Track `json:"track"`
	Term         content.Term    `json:"term"`
	Academy      bool            `json:"include_academy"`
	Price        float64         `json:"price"`
	PriceDisplay string          `json:"price_formatted"`
	URL          string          `json:"url"`
}

func newLinkCmd(opts *options) *cobra.Command {
	var (
		track      string
		term       string
		academy    bool
		academyFee float64
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Resolve the checkout link and price for a track",
		Long: `Resolve the checkout link for a track, billing term and Academy add-on.
A term the track is not sold on falls back to monthly. Kids enrolment has no
direct checkout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := recommend.ParseTrack(track)
			if err != nil {
				return err
			}
			t, err := content.ParseTerm(term)
			if err != nil {
				return err
			}
			pricing, effective, ok := content.PricingFor(tr, t)
			if !ok {
				return fmt.Errorf("track %q is not purchasable", tr)
			}
			url, err := payment.NewTable().Link(tr, academy, effective)
			if err != nil {
				return err
			}

			price := content.AdjustedSalePrice(pricing, academy, academyFee)
			o := offer{
				Track:        tr,
				Term:         effective,
				Academy:      academy,
				Price:        price,
				PriceDisplay: content.FormatUSD(price),
				URL:          url,
			}
			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), o)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("track"), trackStyle.Render(o.Track.String()))
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("term"), o.Term)
			if effective != t {
				fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("%s is not sold on %s, showing %s", tr, t, effective)))
			}
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("price"), o.PriceDisplay)
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("checkout"), o.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&track, "track", "t", string(recommend.TrackGroup), "Track (group|private|bundled)")
	cmd.Flags().StringVar(&term, "term", string(content.DefaultTerm), "Billing term (monthly|quarterly|6_months)")
	cmd.Flags().BoolVar(&academy, "academy", false, "Include the Academy add-on")
	cmd.Flags().Float64Var(&academyFee, "academy-fee", content.DefaultAcademyFee, "Academy add-on fee in USD")
	return cmd
}
