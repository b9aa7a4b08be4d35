// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

var errNoAnswers = errors.New("no answers given")

func newScoreCmd(opts *options) *cobra.Command {
	var (
		variant     string
		answersFile string
		kids        bool
	)

	cmd := &cobra.Command{
		Use:   "score [question=value ...]",
		Short: "Score an answer set and print the recommendation",
		Long: `Score an answer set with a variant and print the recommended track,
the score breakdown and the reasons shown on the results page.

Answers come from --answers (a YAML or JSON file) and from arguments of the
form question=value. A comma-separated value is a multi-select answer.
Arguments override file answers for the same question.

The answers file is either a list:

  - questionId: q3
    value: experience_mix

or a mapping of question id to value:

  q3: experience_mix
  q7: [focus_speaking, focus_grammar]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var answers []recommend.Answer
			if answersFile != "" {
				fromFile, err := readAnswersFile(answersFile)
				if err != nil {
					return err
				}
				answers = append(answers, fromFile...)
			}
			fromArgs, err := parseAnswerArgs(args)
			if err != nil {
				return err
			}
			answers = append(answers, fromArgs...)
			if len(answers) == 0 && !kids {
				return errNoAnswers
			}

			reg, err := opts.registry()
			if err != nil {
				return err
			}
			e, err := reg.Get(variant)
			if err != nil {
				return err
			}

			res := evaluate(e, answers, kids)
			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&variant, "variant", "V", "", "Variant id (default: current)")
	cmd.Flags().StringVarP(&answersFile, "answers", "a", "", "YAML or JSON file of answers")
	cmd.Flags().BoolVar(&kids, "kids", false, "Apply the kids override (variants that support it)")
	return cmd
}

// parseAnswerArgs turns question=value arguments into answers.
func parseAnswerArgs(args []string) ([]recommend.Answer, error) {
	answers := make([]recommend.Answer, 0, len(args))
	for _, arg := range args {
		q, v, ok := strings.Cut(arg, "=")
		if !ok || q == "" {
			return nil, fmt.Errorf("invalid answer %q: want question=value", arg)
		}
		value := recommend.Single(v)
		if strings.Contains(v, ",") {
			value = recommend.Multi(strings.Split(v, ",")...)
		}
		answers = append(answers, recommend.Answer{QuestionID: q, Type: recommend.AnswerMCQ, Value: value})
	}
	return answers, nil
}

// readAnswersFile accepts a list of answers or a question-to-value mapping.
// JSON files parse as YAML.
func readAnswersFile(path string) ([]recommend.Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		var list []recommend.Answer
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("parse answers %s: %w", path, err)
		}
		return list, nil
	case yaml.MappingNode:
		var m map[string]recommend.AnswerValue
		if err := root.Decode(&m); err != nil {
			return nil, fmt.Errorf("parse answers %s: %w", path, err)
		}
		ids := make([]string, 0, len(m))
		for id := range m {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		list := make([]recommend.Answer, 0, len(ids))
		for _, id := range ids {
			list = append(list, recommend.Answer{QuestionID: id, Type: recommend.AnswerMCQ, Value: m[id]})
		}
		return list, nil
	default:
		return nil, fmt.Errorf("parse answers %s: want a list or a mapping", path)
	}
}
