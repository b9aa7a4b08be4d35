// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	variantFiles []string
	format       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "quizctl",
		Short: "Inspect and exercise the quiz recommendation engine",
		Long: `quizctl runs the same scoring and recommendation logic as the quizfunnel
server without starting it. Extra variant files are layered over the
built-in variants (current, kids, classic).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return fmt.Errorf("unsupported format %q (text|json)", opts.format)
			}
			return nil
		},
	}

	root.PersistentFlags().StringSliceVar(&opts.variantFiles, "variant-file", nil, "Additional variant definition files (YAML or JSON)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "Output format (text|json)")

	root.AddCommand(
		newScoreCmd(opts),
		newVariantsCmd(opts),
		newLinkCmd(opts),
		newValidateCmd(opts),
		newPlayCmd(opts),
	)
	return root
}

// registry builds the built-in variants plus any --variant-file.
func (o *options) registry() (*recommend.Registry, error) {
	r, err := recommend.NewRegistry(zerolog.Nop())
	if err != nil {
		return nil, err
	}
	if err := r.LoadFiles(o.variantFiles...); err != nil {
		return nil, err
	}
	return r, nil
}
