// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"

	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

const barWidth = 20

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
	trackStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	groupBar   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	privateBar = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// ignoredAnswer is an answer the variant did not score.
type ignoredAnswer struct {
	Kind       string `json:"kind"`
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// result is the outcome of scoring one answer set.
type result struct {
	Variant   string                   `json:"variant"`
	Track     recommend.Track          `json:"recommended_track"`
	Kids      bool                     `json:"is_kids_override"`
	Breakdown recommend.ScoreBreakdown `json:"breakdown"`
	Reasons   []string                 `json:"reasons"`
	Title     string                   `json:"title,omitempty"`
	Ignored   []ignoredAnswer          `json:"ignored,omitempty"`
}

func evaluate(e *recommend.Engine, answers []recommend.Answer, kids bool) result {
	var ignored []ignoredAnswer
	e.SetUnrecognizedHandler(func(u recommend.UnrecognizedAnswer) {
		ignored = append(ignored, ignoredAnswer{Kind: u.Kind, QuestionID: u.QuestionID, Value: u.Value})
	})
	defer e.SetUnrecognizedHandler(nil)

	state := e.Recommend(answers, kids)
	res := result{
		Variant:   e.ID(),
		Track:     state.Track,
		Kids:      state.IsKidsOverride,
		Breakdown: recommend.Breakdown(state.Scores()),
		Reasons:   e.Reasons(answers, state.Track),
		Ignored:   ignored,
	}
	if rec, ok := content.Lookup(state.Track); ok {
		res.Title = rec.Title
	}
	return res
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResult(w io.Writer, res result) {
	fmt.Fprintln(w, titleStyle.Render("Recommendation"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("variant"), res.Variant)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("track"), trackStyle.Render(res.Track.String()))
	if res.Title != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("plan"), res.Title)
	}
	if res.Kids {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("override"), "kids")
	}

	b := res.Breakdown
	fmt.Fprintf(w, "%s %s %3d (%.0f%%)\n", labelStyle.Render("group"), groupBar.Render(bar(b.GroupPercent)), b.GroupScore, b.GroupPercent)
	fmt.Fprintf(w, "%s %s %3d (%.0f%%)\n", labelStyle.Render("private"), privateBar.Render(bar(b.PrivatePercent)), b.PrivateScore, b.PrivatePercent)

	if len(res.Reasons) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Why"))
		for _, r := range res.Reasons {
			fmt.Fprintf(w, "  • %s\n", r)
		}
	}
	for _, u := range res.Ignored {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("ignored %s %s=%q", u.Kind, u.QuestionID, u.Value)))
	}
}

// bar draws percent of barWidth cells.
func bar(percent float64) string {
	n := int(percent / 100 * barWidth)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}
