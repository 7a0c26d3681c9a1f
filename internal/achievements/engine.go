package achievements

import (
	"math"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
)

// Thresholds for the gameplay phase. Streaks fire on strict equality so
// each threshold fires once per crossing; speed ceilings fire on strict
// less-than, and one fast answer may clear several at once.
var (
	streakRules = []struct {
		streak int
		id     string
	}{
		{3, "streak_3"},
		{5, "streak_5"},
		{10, "streak_10"},
		{15, "streak_15"},
		{20, "streak_20"},
		{25, "streak_25"},
		{30, "streak_30"},
		{40, "streak_40"},
		{50, "streak_50"},
		{100, "streak_100"},
	}

	speedRules = []struct {
		ceiling float64
		id      string
	}{
		{10, "speed_10s"},
		{7, "speed_7s"},
		{5, "speed_5s"},
		{3, "speed_master"},
		{2, "speed_2s"},
		{1.5, "speed_1_5s"},
	}

	questionRules = []struct {
		count int
		id    string
	}{
		{5, "questions_5"},
		{10, "questions_10"},
		{50, "questions_50"},
		{100, "century_club"},
		{200, "questions_200"},
		{500, "questions_500"},
		{1000, "questions_1000"},
		{2000, "questions_2000"},
		{5000, "questions_5000"},
	}

	gamesRules = []struct {
		count int
		id    string
	}{
		{3, "games_3"},
		{5, "games_5"},
		{10, "games_10"},
		{20, "games_20"},
		{50, "games_50"},
	}

	dailyRules = []struct {
		count int
		id    string
	}{
		{5, "daily_5"},
		{10, "daily_10"},
		{20, "daily_20"},
	}
)

// A perfect game is 100% accuracy over at least this many questions.
const perfectGameFloor = 10

// Unlocked is a set of unlocked achievement ids. Sessions seed it with
// the durable unlocks and add gameplay unlocks as they fire.
type Unlocked map[string]struct{}

// NewUnlocked builds a set from the given ids.
func NewUnlocked(ids ...string) Unlocked {
	u := make(Unlocked, len(ids))
	for _, id := range ids {
		u[id] = struct{}{}
	}
	return u
}

// Add inserts an id into the set.
func (u Unlocked) Add(id string) {
	u[id] = struct{}{}
}

// Has reports whether the id is in the set.
func (u Unlocked) Has(id string) bool {
	_, ok := u[id]
	return ok
}

// Accuracy returns the rounded percent of correct answers.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// CheckGameplay evaluates the per-answer rules against just-updated
// session statistics and returns newly qualified ids. Pure: no rule
// short-circuits another.
func CheckGameplay(stats model.SessionStats, unlocked Unlocked) []string {
	var out []string
	qualify := func(id string, ok bool) {
		if ok && !unlocked.Has(id) {
			out = append(out, id)
		}
	}

	qualify("first_correct", stats.Correct == 1)

	for _, r := range streakRules {
		qualify(r.id, stats.CurrentStreak == r.streak)
	}

	last := stats.LastAnswerTime()
	if last.IsSet() {
		for _, r := range speedRules {
			qualify(r.id, float64(last) < r.ceiling)
		}
	}
	return out
}

// progressEvent precomputes the facts the end-of-game rules compare
// against, from the session result plus the pre-merge progress snapshot.
type progressEvent struct {
	accuracy     int
	totalQs      int
	mode         model.Mode
	isDaily      bool
	totalCorrect int // durable + session
	totalGames   int // durable + this game
	modesPlayed  int // history union current session
	dailyCount   int // completed daily challenges including this one
	perfect      bool
	perfectCount int // perfect games including this one
	perfectRun   int // consecutive perfect games ending with this one
}

// progressRules is the declarative end-of-game rule table.
var progressRules = []struct {
	id        string
	qualifies func(ev progressEvent) bool
}{
	{"first_game", func(ev progressEvent) bool { return ev.totalGames == 1 }},
	{"accuracy_80", func(ev progressEvent) bool { return ev.accuracy >= 80 }},
	{"accuracy_90", func(ev progressEvent) bool { return ev.accuracy >= 90 }},
	{"perfect_score", func(ev progressEvent) bool { return ev.perfect }},
	{"mult_85", func(ev progressEvent) bool { return ev.mode == model.ModeMultiplication && ev.accuracy >= 85 }},
	{"multiplication_master", func(ev progressEvent) bool { return ev.mode == model.ModeMultiplication && ev.accuracy >= 90 }},
	{"mult_95", func(ev progressEvent) bool { return ev.mode == model.ModeMultiplication && ev.accuracy >= 95 }},
	{"div_85", func(ev progressEvent) bool { return ev.mode == model.ModeDivision && ev.accuracy >= 85 }},
	{"division_master", func(ev progressEvent) bool { return ev.mode == model.ModeDivision && ev.accuracy >= 90 }},
	{"div_95", func(ev progressEvent) bool { return ev.mode == model.ModeDivision && ev.accuracy >= 95 }},
	{"mixed_master", func(ev progressEvent) bool { return ev.mode == model.ModeMixed && ev.accuracy >= 90 }},
	{"mixed_95", func(ev progressEvent) bool { return ev.mode == model.ModeMixed && ev.accuracy >= 95 }},
	{"all_modes", func(ev progressEvent) bool { return ev.modesPlayed >= len(model.Modes) }},
	{"daily_first", func(ev progressEvent) bool { return ev.isDaily }},
	{"perfect_x3", func(ev progressEvent) bool { return ev.perfect && ev.perfectCount >= 3 }},
	{"perfect_streak_5", func(ev progressEvent) bool { return ev.perfect && ev.perfectRun >= 5 }},
}

// CheckProgress evaluates the end-of-game rules once per session against
// the final statistics and a pre-merge progress snapshot. Returns newly
// qualified ids not already unlocked durably.
func CheckProgress(stats model.SessionStats, settings model.Settings, isDaily bool, prog model.Progress) []string {
	ev := buildEvent(stats, settings, isDaily, prog)

	var out []string
	qualify := func(id string, ok bool) {
		if ok && !prog.IsUnlocked(id) {
			out = append(out, id)
		}
	}

	for _, r := range progressRules {
		qualify(r.id, r.qualifies(ev))
	}
	for _, r := range questionRules {
		qualify(r.id, ev.totalCorrect >= r.count)
	}
	for _, r := range gamesRules {
		qualify(r.id, ev.totalGames >= r.count)
	}
	for _, r := range dailyRules {
		qualify(r.id, ev.dailyCount >= r.count)
	}
	return out
}

func buildEvent(stats model.SessionStats, settings model.Settings, isDaily bool, prog model.Progress) progressEvent {
	ev := progressEvent{
		accuracy:     Accuracy(stats.Correct, stats.TotalQuestions),
		totalQs:      stats.TotalQuestions,
		mode:         settings.Mode,
		isDaily:      isDaily,
		totalCorrect: prog.TotalCorrectAnswers + stats.Correct,
		totalGames:   prog.TotalGamesPlayed + 1,
	}
	ev.perfect = ev.accuracy == 100 && ev.totalQs >= perfectGameFloor

	modes := map[model.Mode]struct{}{settings.Mode: {}}
	for _, e := range prog.GameHistory {
		modes[e.Mode] = struct{}{}
	}
	ev.modesPlayed = len(modes)

	for _, e := range prog.GameHistory {
		if e.Daily {
			ev.dailyCount++
		}
	}
	if isDaily {
		ev.dailyCount++
	}

	if ev.perfect {
		ev.perfectCount = 1
		ev.perfectRun = 1
		for _, e := range prog.GameHistory {
			if perfectEntry(e) {
				ev.perfectCount++
			}
		}
		// The run is this game plus the immediately preceding entries,
		// newest first, broken by the first imperfect game.
		for _, e := range prog.GameHistory {
			if !perfectEntry(e) {
				break
			}
			ev.perfectRun++
		}
	}
	return ev
}

func perfectEntry(e model.HistoryEntry) bool {
	return e.Accuracy == 100 && e.Total() >= perfectGameFloor
}
