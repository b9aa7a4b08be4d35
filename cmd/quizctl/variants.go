// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

// variantSummary is one row of the variants listing.
type variantSummary struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Default      bool              `json:"default"`
	Threshold    int               `json:"threshold"`
	DefaultTrack recommend.Track   `json:"default_track"`
	SupportsKids bool              `json:"supports_kids"`
	Bundle       bool              `json:"bundle"`
	Tracks       []recommend.Track `json:"tracks"`
	Questions    int               `json:"questions"`
}

func newVariantsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the registered quiz variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			list := reg.List()
			rows := make([]variantSummary, 0, len(list))
			for _, v := range list {
				rows = append(rows, variantSummary{
					ID:           v.ID,
					Name:         v.Name,
					Default:      v.ID == reg.DefaultID(),
					Threshold:    v.Threshold,
					DefaultTrack: v.DefaultTrack,
					SupportsKids: v.SupportsKids,
					Bundle:       v.Bundle != nil,
					Tracks:       v.Tracks(),
					Questions:    len(v.Questions),
				})
			}

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			w := cmd.OutOrStdout()
			for _, r := range rows {
				marker := " "
				if r.Default {
					marker = "*"
				}
				tracks := make([]string, len(r.Tracks))
				for i, t := range r.Tracks {
					tracks[i] = t.String()
				}
				fmt.Fprintf(w, "%s %s %s\n", marker, titleStyle.Render(r.ID), mutedStyle.Render(r.Name))
				fmt.Fprintf(w, "    threshold ±%d, default %s, %d scored questions\n", r.Threshold, r.DefaultTrack, r.Questions)
				fmt.Fprintf(w, "    tracks: %s\n", strings.Join(tracks, ", "))
			}
			return nil
		},
	}
}
