// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

// Built-in variant ids.
const (
	VariantCurrent = "current"
	VariantKids    = "kids"
	VariantClassic = "classic"
)

// DefaultVariantID is the variant used when a request does not name one.
const DefaultVariantID = VariantCurrent

// Question and option ids of the nine-question quiz shared by the current and
// kids variants.
const (
	QuestionReason     QuestionID = "q1"
	QuestionLevel      QuestionID = "q2"
	QuestionExperience QuestionID = "q3"
	QuestionTime       QuestionID = "q4"
	QuestionSchedule   QuestionID = "q5"
	QuestionFrequency  QuestionID = "q6"
	QuestionFocus      QuestionID = "q7"
	QuestionSuccess    QuestionID = "q8"
	QuestionObstacle   QuestionID = "q9"

	ReasonTravel OptionValue = "reason_travel"
	ReasonWork   OptionValue = "reason_work"
	ReasonFamily OptionValue = "reason_family"
	ReasonStudy  OptionValue = "reason_study"
	ReasonFun    OptionValue = "reason_fun"

	LevelBeginner      OptionValue = "level_beginner"
	LevelUpperBeginner OptionValue = "level_upper_beginner"
	LevelIntermediate  OptionValue = "level_intermediate"
	LevelAdvanced      OptionValue = "level_advanced"

	ExperiencePrivate OptionValue = "experience_private"
	ExperienceGroup   OptionValue = "experience_group"
	ExperienceMix     OptionValue = "experience_mix"

	Time1to2    OptionValue = "time_1_2"
	Time3to4    OptionValue = "time_3_4"
	Time5to6    OptionValue = "time_5_6"
	Time7Plus   OptionValue = "time_7_plus"
	FocusSpeak  OptionValue = "focus_speaking"
	FocusGram   OptionValue = "focus_grammar"
	FocusListen OptionValue = "focus_listening"
	FocusVocab  OptionValue = "focus_vocabulary"
	FocusBiz    OptionValue = "focus_business"

	SuccessConversations OptionValue = "success_basic_conversations"
	SuccessUnderstanding OptionValue = "success_understanding"
	SuccessGrammar       OptionValue = "success_grammar_progress"
	SuccessConsistency   OptionValue = "success_consistency"

	ObstacleBusy        OptionValue = "obstacle_busy_schedule"
	ObstacleMotivation  OptionValue = "obstacle_motivation"
	ObstacleUnclear     OptionValue = "obstacle_unclear_study"
	ObstacleNervous     OptionValue = "obstacle_nervous_speaking"
	ObstacleFindProgram OptionValue = "obstacle_find_program"
)

// Question and option ids of the classic six-question quiz.
const (
	QuestionGoal          QuestionID = "goal"
	QuestionRegularity    QuestionID = "schedule_regularity"
	QuestionSpeaking      QuestionID = "speaking_comfort"
	QuestionPriority      QuestionID = "budget_vs_speed"
	QuestionLearningStyle QuestionID = "learning_style"
	QuestionTimeOfDay     QuestionID = "time_of_day"

	GoalTravel     OptionValue = "goal_travel"
	GoalFamily     OptionValue = "goal_family"
	GoalCareer     OptionValue = "goal_career"
	GoalEnrichment OptionValue = "goal_enrichment"

	RegularityFixed     OptionValue = "schedule_fixed"
	RegularityFlexible  OptionValue = "schedule_flexible"
	RegularityIrregular OptionValue = "schedule_irregular"

	SpeakingConfident OptionValue = "speaking_confident"
	SpeakingSomeNerve OptionValue = "speaking_some_nerves"
	SpeakingNervous   OptionValue = "speaking_very_nervous"

	PriorityBudget   OptionValue = "priority_budget"
	PriorityBalanced OptionValue = "priority_balanced"
	PrioritySpeed    OptionValue = "priority_speed"

	StyleGroup        OptionValue = "style_group"
	StyleOneOnOne     OptionValue = "style_one_on_one"
	StyleCombination  OptionValue = "style_combination"
	StyleConversation OptionValue = "style_conversation"
)

// BuiltinVariants returns fresh copies of every built-in variant.
func BuiltinVariants() []*Variant {
	return []*Variant{CurrentVariant(), KidsVariant(), ClassicVariant()}
}

// nineQuestionWeights is the weight table of the current quiz.
func nineQuestionWeights() map[QuestionID]OptionWeights {
	return map[QuestionID]OptionWeights{
		QuestionReason: {
			ReasonTravel: {Group: 2, Private: 1},
			ReasonWork:   {Private: 2},
			ReasonFamily: {Private: 1},
			ReasonStudy:  {Private: 2},
			ReasonFun:    {Group: 2},
		},
		QuestionLevel: {
			LevelBeginner:      {Private: 1},
			LevelUpperBeginner: {Group: 1, Private: 1},
			LevelIntermediate:  {Group: 1},
			LevelAdvanced:      {Group: 1},
		},
		QuestionExperience: {
			ExperiencePrivate: {Private: 2},
			ExperienceGroup:   {Group: 2},
			ExperienceMix:     {Group: 1, Private: 1},
		},
		QuestionTime: {
			Time1to2:  {Group: 1},
			Time3to4:  {Group: 1, Private: 1},
			Time5to6:  {Private: 1},
			Time7Plus: {Private: 2},
		},
		QuestionFocus: {
			FocusSpeak:  {Group: 1},
			FocusGram:   {Private: 1},
			FocusListen: {Group: 1},
			FocusVocab:  {Group: 1},
			FocusBiz:    {Private: 2},
		},
		QuestionSuccess: {
			SuccessConversations: {Group: 1},
			SuccessUnderstanding: {Private: 1},
			SuccessGrammar:       {Private: 1},
			SuccessConsistency:   {Group: 1},
		},
		QuestionObstacle: {
			ObstacleBusy:        {Private: 1},
			ObstacleMotivation:  {Group: 1},
			ObstacleUnclear:     {Private: 1},
			ObstacleNervous:     {Private: 1},
			ObstacleFindProgram: {},
		},
	}
}

// nineQuestionCascade is the experience-then-time tie-break order.
func nineQuestionCascade() []TieBreaker {
	return []TieBreaker{
		{Question: QuestionExperience, Options: []OptionValue{ExperienceGroup}, Track: TrackGroup},
		{Question: QuestionExperience, Options: []OptionValue{ExperiencePrivate}, Track: TrackPrivate},
		{Question: QuestionTime, Options: []OptionValue{Time7Plus, Time5to6}, Track: TrackPrivate},
		{Question: QuestionTime, Options: []OptionValue{Time1to2}, Track: TrackGroup},
	}
}

// nineQuestionReasons explains group and private outcomes of the nine-question quiz.
func nineQuestionReasons() []ReasonRule {
	return []ReasonRule{
		{Question: QuestionExperience, Options: []OptionValue{ExperienceGroup}, Track: TrackGroup,
			Text: "You prefer friendly group classes → live practice with peers"},
		{Question: QuestionExperience, Options: []OptionValue{ExperiencePrivate}, Track: TrackPrivate,
			Text: "You prefer 1-on-1 tutoring → personalized attention from a dedicated teacher"},
		{Question: QuestionExperience, Options: []OptionValue{ExperienceMix}, Track: TrackBundled,
			Text: "You selected a mix of formats → bundled plan gives you both 1-on-1 and group sessions"},
		{Question: QuestionReason, Options: []OptionValue{ReasonTravel, ReasonFun}, Track: TrackGroup,
			Text: "Your goal emphasizes practical, enjoyable practice → group cadence fits well"},
		{Question: QuestionReason, Options: []OptionValue{ReasonWork, ReasonStudy}, Track: TrackPrivate,
			Text: "Professional or academic goals → structured 1-on-1 accelerates progress"},
		{Question: QuestionTime, Options: []OptionValue{Time3to4, Time5to6, Time7Plus}, Track: TrackBundled,
			Text: "You have enough weekly time → combining formats maximizes results"},
		{Question: QuestionTime, Options: []OptionValue{Time1to2}, Track: TrackGroup,
			Text: "Limited weekly time → group classes provide consistent, flexible practice"},
		{Question: QuestionTime, Options: []OptionValue{Time5to6, Time7Plus}, Track: TrackPrivate,
			Text: "Higher time investment → 1-on-1 maximizes each session toward your goals"},
		{Question: QuestionFocus, Options: []OptionValue{FocusSpeak, FocusListen, FocusVocab}, Track: TrackGroup,
			Text: "Conversation, listening, or everyday vocabulary → group practice builds confidence"},
		{Question: QuestionFocus, Options: []OptionValue{FocusGram, FocusBiz}, Track: TrackPrivate,
			Text: "Grammar structure or business Spanish → targeted 1-on-1 feedback is most effective"},
		{Question: QuestionSuccess, Options: []OptionValue{SuccessConversations, SuccessConsistency}, Track: TrackGroup,
			Text: "You value consistent practice and basic conversations → group cadence supports this"},
		{Question: QuestionSuccess, Options: []OptionValue{SuccessUnderstanding, SuccessGrammar}, Track: TrackPrivate,
			Text: "You want deeper understanding or grammar progress → 1-on-1 focuses each session"},
		{Question: QuestionObstacle, Options: []OptionValue{ObstacleMotivation}, Track: TrackGroup,
			Text: "Motivation is tough → group rhythm and peers help you stay consistent"},
		{Question: QuestionObstacle, Options: []OptionValue{ObstacleBusy, ObstacleUnclear, ObstacleNervous}, Track: TrackPrivate,
			Text: "Private lessons adapt to your schedule and provide clear next steps with supportive coaching"},
	}
}

// CurrentVariant is the nine-question quiz with the bundled track and no kids
// override.
func CurrentVariant() *Variant {
	return &Variant{
		ID:           VariantCurrent,
		Name:         "Nine-question quiz with bundled plan",
		Description:  "Scores motivation, level, format, time, focus, success metric and obstacles. Schedule and frequency are display only.",
		Threshold:    DefaultThreshold,
		DefaultTrack: DefaultTrack,
		DisplayOnly:  []QuestionID{QuestionSchedule, QuestionFrequency},
		Questions:    nineQuestionWeights(),
		Bundle: &BundleRule{
			ExperienceQuestion: QuestionExperience,
			MixOption:          ExperienceMix,
			TimeQuestion:       QuestionTime,
			EligibleTimes:      []OptionValue{Time3to4, Time5to6, Time7Plus},
		},
		TieBreakers: nineQuestionCascade(),
		Reasons:     nineQuestionReasons(),
	}
}

// KidsVariant is the nine-question quiz before the bundled track replaced the
// kids track.
func KidsVariant() *Variant {
	reasons := make([]ReasonRule, 0)
	for _, r := range nineQuestionReasons() {
		if r.Track != TrackBundled {
			reasons = append(reasons, r)
		}
	}
	reasons = append(reasons, ReasonRule{
		Question: QuestionReason, Options: []OptionValue{ReasonFamily, ReasonFun}, Track: TrackKids,
		Text: "Playful, game-based lessons keep young learners engaged",
	})

	return &Variant{
		ID:           VariantKids,
		Name:         "Nine-question quiz with kids track",
		Description:  "Same scoring as the current quiz without the bundled plan. The kids toggle overrides the outcome.",
		Threshold:    DefaultThreshold,
		DefaultTrack: DefaultTrack,
		SupportsKids: true,
		DisplayOnly:  []QuestionID{QuestionSchedule, QuestionFrequency},
		Questions:    nineQuestionWeights(),
		TieBreakers:  nineQuestionCascade(),
		Reasons:      reasons,
	}
}

// ClassicVariant is the earliest quiz, keyed on schedule regularity, speaking
// comfort and budget versus speed.
func ClassicVariant() *Variant {
	return &Variant{
		ID:           VariantClassic,
		Name:         "Classic six-question quiz",
		Description:  "Tie-breaks on schedule regularity, then speaking comfort, then budget versus speed.",
		Threshold:    DefaultThreshold,
		DefaultTrack: DefaultTrack,
		SupportsKids: true,
		DisplayOnly:  []QuestionID{QuestionTimeOfDay},
		Questions: map[QuestionID]OptionWeights{
			QuestionGoal: {
				GoalTravel:     {Group: 1},
				GoalFamily:     {Private: 1},
				GoalCareer:     {Private: 2},
				GoalEnrichment: {Group: 1},
			},
			QuestionRegularity: {
				RegularityFixed:     {Group: 2},
				RegularityFlexible:  {Group: 1, Private: 1},
				RegularityIrregular: {Private: 2},
			},
			QuestionSpeaking: {
				SpeakingConfident: {Group: 2},
				SpeakingSomeNerve: {Group: 1},
				SpeakingNervous:   {Private: 2},
			},
			QuestionPriority: {
				PriorityBudget:   {Group: 2},
				PriorityBalanced: {Group: 1, Private: 1},
				PrioritySpeed:    {Private: 2},
			},
			QuestionLearningStyle: {
				StyleGroup:        {Group: 2},
				StyleOneOnOne:     {Private: 2},
				StyleCombination:  {Group: 1, Private: 1},
				StyleConversation: {Group: 1},
			},
		},
		TieBreakers: []TieBreaker{
			{Question: QuestionRegularity, Options: []OptionValue{RegularityFixed}, Track: TrackGroup},
			{Question: QuestionRegularity, Options: []OptionValue{RegularityIrregular}, Track: TrackPrivate},
			{Question: QuestionSpeaking, Options: []OptionValue{SpeakingNervous}, Track: TrackPrivate},
			{Question: QuestionSpeaking, Options: []OptionValue{SpeakingConfident}, Track: TrackGroup},
			{Question: QuestionPriority, Options: []OptionValue{PriorityBudget}, Track: TrackGroup},
			{Question: QuestionPriority, Options: []OptionValue{PrioritySpeed}, Track: TrackPrivate},
		},
		Reasons: []ReasonRule{
			{Question: QuestionRegularity, Options: []OptionValue{RegularityFixed}, Track: TrackGroup,
				Text: "A steady weekly routine fits scheduled group sessions"},
			{Question: QuestionRegularity, Options: []OptionValue{RegularityIrregular}, Track: TrackPrivate,
				Text: "An unpredictable schedule is easier with lessons booked around you"},
			{Question: QuestionSpeaking, Options: []OptionValue{SpeakingConfident, SpeakingSomeNerve}, Track: TrackGroup,
				Text: "You are comfortable speaking with others → group conversation builds fluency"},
			{Question: QuestionSpeaking, Options: []OptionValue{SpeakingNervous}, Track: TrackPrivate,
				Text: "Speaking nerves ease faster with a patient one-on-one teacher"},
			{Question: QuestionPriority, Options: []OptionValue{PriorityBudget}, Track: TrackGroup,
				Text: "Best value per hour of practice"},
			{Question: QuestionPriority, Options: []OptionValue{PrioritySpeed}, Track: TrackPrivate,
				Text: "Fastest progress with lessons tailored to your goals"},
		},
	}
}
