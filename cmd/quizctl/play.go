// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/quizfunnel/internal/quiz"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

const backCommand = "b"

func newPlayCmd(opts *options) *cobra.Command {
	var (
		quizFile string
		kids     bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take a quiz in the terminal",
		Long: `Walk through a quiz one question at a time and print the recommendation.

Answer with the option number. Multi-select questions take several numbers
separated by commas. Enter "b" to go back and an empty line to skip an
optional question.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := quiz.DefaultDefinition()
			if quizFile != "" {
				var err error
				if def, err = quiz.LoadDefinitionFile(quizFile); err != nil {
					return err
				}
			}

			reg, err := opts.registry()
			if err != nil {
				return err
			}
			e, err := reg.Get(def.Variant)
			if err != nil {
				return fmt.Errorf("quiz %q: %w", def.ID, err)
			}

			s := quiz.NewSession(def)
			if err := play(s, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}

			res := evaluate(e, s.Answers(), kids)
			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			tmpl := s.Template()
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n", tmpl.Emoji, titleStyle.Render(tmpl.Title))
			if tmpl.Description != "" {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(tmpl.Description))
			}
			writeResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&quizFile, "quiz", "q", "", "Quiz definition file (default: built-in quiz)")
	cmd.Flags().BoolVar(&kids, "kids", false, "Apply the kids override (variants that support it)")
	return cmd
}

// play drives s from in until every question is passed.
func play(s *quiz.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	total := len(s.Definition().Questions)

	for !s.Complete() {
		q, ok := s.Current()
		if !ok {
			return errors.New("quiz has no questions")
		}
		printQuestion(out, q, s.QuestionNumber(), total)

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			return io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == backCommand:
			if !s.Previous() {
				fmt.Fprintln(out, warnStyle.Render("already at the first question"))
			}
			continue
		case line == "":
			if q.Required {
				fmt.Fprintln(out, warnStyle.Render("this question needs an answer"))
				continue
			}
		default:
			value, err := parseSelection(q, line)
			if err != nil {
				fmt.Fprintln(out, errorStyle.Render(err.Error()))
				continue
			}
			if err := s.Answer(recommend.Answer{QuestionID: q.ID, Value: value}); err != nil {
				return err
			}
		}
		s.Next()
	}
	return nil
}

func printQuestion(w io.Writer, q quiz.Question, n, total int) {
	fmt.Fprintf(w, "\n%s %s\n", mutedStyle.Render(fmt.Sprintf("[%d/%d]", n, total)), titleStyle.Render(q.Title))
	if q.Subtitle != "" {
		fmt.Fprintln(w, mutedStyle.Render(q.Subtitle))
	}
	for i, o := range q.Options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, o.Text)
	}
}

// parseSelection maps 1-based option numbers to option values. Free-text
// questions without options take the line as is.
func parseSelection(q quiz.Question, line string) (recommend.AnswerValue, error) {
	if len(q.Options) == 0 {
		return recommend.Single(line), nil
	}

	fields := strings.Split(line, ",")
	if len(fields) > 1 && !q.Multiple {
		return recommend.AnswerValue{}, errors.New("pick one option")
	}

	values := make([]string, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 || n > len(q.Options) {
			return recommend.AnswerValue{}, fmt.Errorf("enter a number from 1 to %d", len(q.Options))
		}
		values = append(values, q.Options[n-1].Value)
	}
	if q.Multiple {
		return recommend.Multi(values...), nil
	}
	return recommend.Single(values[0]), nil
}
