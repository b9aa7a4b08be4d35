// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/tomtom215/quizfunnel/internal/quiz"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

// Default glob patterns for validate, relative to --root.
const (
	defaultVariantPattern = "**/*.variant.{yaml,yml,json}"
	defaultQuizPattern    = "**/*.quiz.{yaml,yml,json}"
)

// fileReport is the validation outcome of one file.
type fileReport struct {
	Path     string   `json:"path"`
	Kind     string   `json:"kind"`
	ID       string   `json:"id,omitempty"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func newValidateCmd(opts *options) *cobra.Command {
	var (
		root           string
		variantPattern string
		quizPattern    string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate variant and quiz definition files",
		Long: `Find variant and quiz files under --root with doublestar glob patterns
and validate them. Quizzes are checked against the built-in variants plus
every variant file found, and questions the variant will not score are
reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variantFiles, err := glob(root, variantPattern)
			if err != nil {
				return err
			}
			quizFiles, err := glob(root, quizPattern)
			if err != nil {
				return err
			}
			if len(variantFiles) == 0 && len(quizFiles) == 0 {
				return fmt.Errorf("no files match %q or %q under %s", variantPattern, quizPattern, root)
			}

			reg, err := opts.registry()
			if err != nil {
				return err
			}
			reports, failed := validateFiles(reg, variantFiles, quizFiles)

			if opts.format == formatJSON {
				if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
					return err
				}
			} else {
				writeReports(cmd, reports)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", ".", "Directory to search")
	cmd.Flags().StringVar(&variantPattern, "variants", defaultVariantPattern, "Glob pattern for variant files")
	cmd.Flags().StringVar(&quizPattern, "quizzes", defaultQuizPattern, "Glob pattern for quiz files")
	return cmd
}

// glob returns the files under root matching pattern, sorted.
func glob(root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	sort.Strings(paths)
	return paths, nil
}

// validateFiles registers each valid variant so later quizzes can name it.
func validateFiles(reg *recommend.Registry, variantFiles, quizFiles []string) ([]fileReport, int) {
	reports := make([]fileReport, 0, len(variantFiles)+len(quizFiles))
	failed := 0

	for _, p := range variantFiles {
		r := fileReport{Path: p, Kind: "variant"}
		v, err := recommend.LoadVariantFile(p)
		if err == nil {
			r.ID = v.ID
			err = reg.Replace(v)
		}
		if err != nil {
			r.Error = err.Error()
			failed++
		}
		reports = append(reports, r)
	}

	for _, p := range quizFiles {
		r := fileReport{Path: p, Kind: "quiz"}
		def, err := quiz.LoadDefinitionFile(p)
		if err == nil {
			r.ID = def.ID
			var e *recommend.Engine
			if e, err = reg.Get(def.Variant); err == nil {
				r.Warnings = def.Lint(e.Variant())
			}
		}
		if err != nil {
			r.Error = err.Error()
			failed++
		}
		reports = append(reports, r)
	}
	return reports, failed
}

func writeReports(cmd *cobra.Command, reports []fileReport) {
	w := cmd.OutOrStdout()
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("✗"), r.Path, mutedStyle.Render(r.Kind))
			fmt.Fprintf(w, "    %s\n", errorStyle.Render(r.Error))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", okStyle.Render("✓"), r.Path, mutedStyle.Render(r.Kind+" "+r.ID))
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "    %s\n", warnStyle.Render(warning))
		}
	}
}
