// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

// evenSplitPercent is shown for both bars when neither score is positive.
const evenSplitPercent = 50.0

// ScoreBreakdown is the "how we made this recommendation" view: each score as
// a percentage of the larger one.
type ScoreBreakdown struct {
	GroupScore     int     `json:"group_score"`
	PrivateScore   int     `json:"private_score"`
	MaxScore       int     `json:"max_score"`
	GroupPercent   float64 `json:"group_percent"`
	PrivatePercent float64 `json:"private_percent"`
}

// Breakdown computes score / max(group, private) * 100 for both scores.
func Breakdown(s ScorePair) ScoreBreakdown {
	maxScore := s.Group
	if s.Private > maxScore {
		maxScore = s.Private
	}

	b := ScoreBreakdown{
		GroupScore:     s.Group,
		PrivateScore:   s.Private,
		MaxScore:       maxScore,
		GroupPercent:   evenSplitPercent,
		PrivatePercent: evenSplitPercent,
	}
	if maxScore > 0 {
		b.GroupPercent = float64(s.Group) / float64(maxScore) * 100
		b.PrivatePercent = float64(s.Private) / float64(maxScore) * 100
	}
	return b
}
