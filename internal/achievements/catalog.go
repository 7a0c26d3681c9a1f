// Package achievements holds the achievement catalog and the rule
// engine that evaluates it.
package achievements

// Achievement is one static catalog entry. Per-player unlock state
// lives in model.Progress, not here.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
}

// Catalog is the static, read-only achievement list.
var Catalog = []Achievement{
	{ID: "first_correct", Title: "First Victory", Description: "Answer your first question correctly", Icon: "✅"},
	{ID: "first_game", Title: "Getting Started", Description: "Complete your first game", Icon: "🎮"},

	{ID: "streak_3", Title: "Triple Threat", Description: "Get 3 correct answers in a row", Icon: "🎯"},
	{ID: "streak_5", Title: "Five Alive", Description: "Get 5 correct answers in a row", Icon: "🔥"},
	{ID: "streak_10", Title: "Perfect Ten", Description: "Get 10 correct answers in a row", Icon: "⚡"},
	{ID: "streak_15", Title: "Hot Streak", Description: "Get 15 correct answers in a row", Icon: "🔥"},
	{ID: "streak_20", Title: "Unstoppable", Description: "Get 20 correct answers in a row", Icon: "💪"},
	{ID: "streak_25", Title: "Quarter Century Streak", Description: "Get 25 correct answers in a row", Icon: "🌟"},
	{ID: "streak_30", Title: "Thirty Strong", Description: "Get 30 correct answers in a row", Icon: "💥"},
	{ID: "streak_40", Title: "Forty Fury", Description: "Get 40 correct answers in a row", Icon: "🌪️"},
	{ID: "streak_50", Title: "Half Century Streak", Description: "Get 50 correct answers in a row", Icon: "🔥"},
	{ID: "streak_100", Title: "Century Streak", Description: "Get 100 correct answers in a row", Icon: "👑"},

	{ID: "speed_10s", Title: "Fast Fingers", Description: "Answer a question in under 10 seconds", Icon: "⏱️"},
	{ID: "speed_7s", Title: "Quick Response", Description: "Answer a question in under 7 seconds", Icon: "💨"},
	{ID: "speed_5s", Title: "Quick Thinker", Description: "Answer a question in under 5 seconds", Icon: "🧠"},
	{ID: "speed_master", Title: "Lightning Fast", Description: "Answer a question in under 3 seconds", Icon: "⚡"},
	{ID: "speed_2s", Title: "Blink Fast", Description: "Answer a question in under 2 seconds", Icon: "👁️"},
	{ID: "speed_1_5s", Title: "Superhuman Speed", Description: "Answer a question in under 1.5 seconds", Icon: "🚀"},

	{ID: "questions_5", Title: "Warming Up", Description: "Answer 5 questions correctly", Icon: "🌱"},
	{ID: "questions_10", Title: "Double Digits", Description: "Answer 10 questions correctly", Icon: "🔟"},
	{ID: "questions_50", Title: "Half Century", Description: "Answer 50 questions correctly", Icon: "⭐"},
	{ID: "century_club", Title: "Century Club", Description: "Answer 100 questions correctly", Icon: "💯"},
	{ID: "questions_200", Title: "Double Century", Description: "Answer 200 questions correctly", Icon: "🏅"},
	{ID: "questions_500", Title: "High Five Hundred", Description: "Answer 500 questions correctly", Icon: "🎖️"},
	{ID: "questions_1000", Title: "Thousand Strong", Description: "Answer 1000 questions correctly", Icon: "🏆"},
	{ID: "questions_2000", Title: "Two Thousand Club", Description: "Answer 2000 questions correctly", Icon: "💎"},
	{ID: "questions_5000", Title: "Math Legend", Description: "Answer 5000 questions correctly", Icon: "🐉"},

	{ID: "games_3", Title: "Hat Trick", Description: "Play 3 games", Icon: "🎩"},
	{ID: "games_5", Title: "Regular", Description: "Play 5 games", Icon: "📅"},
	{ID: "games_10", Title: "Dedicated", Description: "Play 10 games", Icon: "📈"},
	{ID: "games_20", Title: "Committed", Description: "Play 20 games", Icon: "🗓️"},
	{ID: "games_50", Title: "Veteran", Description: "Play 50 games", Icon: "🎖️"},

	{ID: "accuracy_80", Title: "Sharp Shooter", Description: "Finish a game with 80% accuracy", Icon: "🎯"},
	{ID: "accuracy_90", Title: "Eagle Eye", Description: "Finish a game with 90% accuracy", Icon: "🦅"},
	{ID: "perfect_score", Title: "Perfect Score", Description: "Finish a game of 10+ questions with 100% accuracy", Icon: "🌟"},

	{ID: "mult_85", Title: "Times Apprentice", Description: "Get 85% accuracy in multiplication mode", Icon: "✖️"},
	{ID: "multiplication_master", Title: "Multiplication Master", Description: "Get 90% accuracy in multiplication mode", Icon: "✖️"},
	{ID: "mult_95", Title: "Times Virtuoso", Description: "Get 95% accuracy in multiplication mode", Icon: "✖️"},
	{ID: "div_85", Title: "Division Apprentice", Description: "Get 85% accuracy in division mode", Icon: "➗"},
	{ID: "division_master", Title: "Division Master", Description: "Get 90% accuracy in division mode", Icon: "➗"},
	{ID: "div_95", Title: "Division Virtuoso", Description: "Get 95% accuracy in division mode", Icon: "➗"},
	{ID: "mixed_master", Title: "Mixed Master", Description: "Get 90% accuracy in mixed mode", Icon: "🎲"},
	{ID: "mixed_95", Title: "Mixed Virtuoso", Description: "Get 95% accuracy in mixed mode", Icon: "🎲"},
	{ID: "all_modes", Title: "Jack of All Trades", Description: "Play all three modes", Icon: "🃏"},

	{ID: "daily_first", Title: "Daily Debut", Description: "Complete your first daily challenge", Icon: "📆"},
	{ID: "daily_5", Title: "Daily Devotee", Description: "Complete 5 daily challenges", Icon: "🗞️"},
	{ID: "daily_10", Title: "Daily Dynamo", Description: "Complete 10 daily challenges", Icon: "☀️"},
	{ID: "daily_20", Title: "Daily Legend", Description: "Complete 20 daily challenges", Icon: "🌞"},

	{ID: "perfect_x3", Title: "Triple Perfection", Description: "Finish 3 perfect games", Icon: "✨"},
	{ID: "perfect_streak_5", Title: "Flawless Five", Description: "Finish 5 perfect games in a row", Icon: "👑"},
}

var catalogByID = func() map[string]Achievement {
	m := make(map[string]Achievement, len(Catalog))
	for _, a := range Catalog {
		m[a.ID] = a
	}
	return m
}()

// Lookup returns the catalog entry for an id.
func Lookup(id string) (Achievement, bool) {
	a, ok := catalogByID[id]
	return a, ok
}
