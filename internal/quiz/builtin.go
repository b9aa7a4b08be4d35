// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package quiz

import (
	"fmt"

	r "github.com/tomtom215/quizfunnel/internal/recommend"
)

// DefaultDefinitionID identifies the built-in quiz.
const DefaultDefinitionID = "spanish-quiz"

func mcq(id r.QuestionID, title, subtitle string, opts ...Option) Question {
	for i := range opts {
		opts[i].ID = fmt.Sprintf("a%d", i+1)
	}
	return Question{ID: string(id), Type: r.AnswerMCQ, Title: title, Subtitle: subtitle, Required: true, Options: opts}
}

func opt(v r.OptionValue, text string) Option {
	return Option{Text: text, Value: string(v)}
}

// DefaultDefinition returns the nine-question quiz scored by the current
// variant.
func DefaultDefinition() *Definition {
	schedule := mcq(r.QuestionSchedule, "When do you usually have time for class?", "Pick all that apply.",
		Option{Text: "Mornings", Value: "schedule_mornings"},
		Option{Text: "Afternoons", Value: "schedule_afternoons"},
		Option{Text: "Evenings", Value: "schedule_evenings"},
		Option{Text: "Weekends", Value: "schedule_weekends"},
	)
	schedule.Multiple = true

	return &Definition{
		ID:          DefaultDefinitionID,
		Title:       "Spanish Learning Quiz",
		Description: "Discover your perfect Spanish learning path",
		Variant:     r.VariantCurrent,
		Incentive: Incentive{
			Enabled: true,
			Title:   "50% OFF Your First Month + FREE Beginner Spanish Academy Course",
			URL:     "https://spanishvip.com/special-offer",
		},
		ExternalRedirectURL: "https://spanishvip.com",
		Questions: []Question{
			mcq(r.QuestionReason, "What's your main reason for learning Spanish?", "This helps us create the perfect learning experience for you.",
				opt(r.ReasonTravel, "Travel with confidence"),
				opt(r.ReasonWork, "Advance my career"),
				opt(r.ReasonFamily, "Connect with family and friends"),
				opt(r.ReasonStudy, "School or exams"),
				opt(r.ReasonFun, "Just for fun"),
			),
			mcq(r.QuestionLevel, "What's your current Spanish level?", "Don't worry, we welcome all levels!",
				opt(r.LevelBeginner, "Complete beginner"),
				opt(r.LevelUpperBeginner, "Know some basics"),
				opt(r.LevelIntermediate, "Can have simple conversations"),
				opt(r.LevelAdvanced, "Comfortable in most conversations"),
			),
			mcq(r.QuestionExperience, "How do you prefer to learn?", "",
				opt(r.ExperiencePrivate, "One-on-one with a teacher"),
				opt(r.ExperienceGroup, "In a group with other learners"),
				opt(r.ExperienceMix, "A mix of both"),
			),
			mcq(r.QuestionTime, "How many hours a week can you study?", "",
				opt(r.Time1to2, "1-2 hours"),
				opt(r.Time3to4, "3-4 hours"),
				opt(r.Time5to6, "5-6 hours"),
				opt(r.Time7Plus, "7+ hours"),
			),
			schedule,
			mcq(r.QuestionFrequency, "How often would you like to practice?", "",
				Option{Text: "Once a week", Value: "frequency_weekly"},
				Option{Text: "2-3 times a week", Value: "frequency_few_times"},
				Option{Text: "Every day", Value: "frequency_daily"},
			),
			mcq(r.QuestionFocus, "What do you most want to improve?", "",
				opt(r.FocusSpeak, "Speaking"),
				opt(r.FocusGram, "Grammar"),
				opt(r.FocusListen, "Listening"),
				opt(r.FocusVocab, "Vocabulary"),
				opt(r.FocusBiz, "Business Spanish"),
			),
			mcq(r.QuestionSuccess, "What would success look like in three months?", "",
				opt(r.SuccessConversations, "Holding basic conversations"),
				opt(r.SuccessUnderstanding, "Understanding native speakers"),
				opt(r.SuccessGrammar, "Real progress with grammar"),
				opt(r.SuccessConsistency, "A consistent study habit"),
			),
			mcq(r.QuestionObstacle, "What has held you back so far?", "",
				opt(r.ObstacleBusy, "A busy schedule"),
				opt(r.ObstacleMotivation, "Staying motivated"),
				opt(r.ObstacleUnclear, "Not knowing what to study"),
				opt(r.ObstacleNervous, "Nerves when speaking"),
				opt(r.ObstacleFindProgram, "Finding the right program"),
			),
		},
		ResultTemplates: []Template{
			{
				ID:          "confident_traveler",
				Title:       "Travel With Confidence!",
				Description: "Practical conversation practice so you can order, ask and connect anywhere Spanish is spoken.",
				Emoji:       "✈️",
				Conditions:  []Condition{{QuestionID: string(r.QuestionReason), Value: string(r.ReasonTravel)}},
			},
			{
				ID:          "career_builder",
				Title:       "Spanish That Works for Your Career!",
				Description: "Focused lessons built around the vocabulary and situations you meet at work.",
				Emoji:       "💼",
				Conditions:  []Condition{{QuestionID: string(r.QuestionReason), Value: string(r.ReasonWork)}},
			},
			{
				ID:          "family_connection",
				Title:       "Connect With the People You Love!",
				Description: "Build the confidence to share stories and everyday moments with family and friends.",
				Emoji:       "❤️",
				Conditions:  []Condition{{QuestionID: string(r.QuestionReason), Value: string(r.ReasonFamily)}},
			},
		},
	}
}
