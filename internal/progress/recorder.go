package progress

import (
	"context"
	"strconv"
	"time"

	"github.com/ehanandbaba/arithmetics-arena/internal/achievements"
	"github.com/ehanandbaba/arithmetics-arena/internal/model"
)

// Progress keeps at most this many history entries.
const historyCap = 50

// DailyCompleter marks today's daily challenge completed with a score.
type DailyCompleter interface {
	Complete(ctx context.Context, score model.Score) error
}

// Result is what the recorder hands back for display: the merged
// record, the appended history entry, the newly unlocked achievement
// ids, and any personal bests the session set.
type Result struct {
	Progress        model.Progress
	Entry           model.HistoryEntry
	NewAchievements []string
	PersonalBests   []string
}

// Recorder merges a finished session into the progress record.
type Recorder struct {
	store *Store
	daily DailyCompleter // nil when no daily challenge wiring is needed
	now   func() time.Time
	newID func() string
}

// NewRecorder builds a recorder. daily may be nil.
func NewRecorder(store *Store, daily DailyCompleter) *Recorder {
	r := &Recorder{store: store, daily: daily, now: time.Now}
	r.newID = func() string {
		return strconv.FormatInt(r.now().UnixNano(), 10)
	}
	return r
}

// Finalize runs the end-of-game pipeline: personal bests against the
// pre-update record, progress-phase achievement checks against the same
// snapshot, counter merge, history prepend, achievement unlock stamps,
// then a single durable write. If the session was the daily challenge,
// today's challenge is marked completed with its score.
func (r *Recorder) Finalize(ctx context.Context, stats model.SessionStats, settings model.Settings, isDaily bool) (Result, error) {
	prog := r.store.Load(ctx)

	// Bests must be detected before the merge overwrites the old values.
	bests := personalBests(stats, prog)
	newIDs := achievements.CheckProgress(stats, settings, isDaily, prog)

	prog.TotalGamesPlayed++
	prog.TotalQuestionsAnswered += stats.TotalQuestions
	prog.TotalCorrectAnswers += stats.Correct
	if stats.BestStreak > prog.BestStreak {
		prog.BestStreak = stats.BestStreak
	}
	if stats.FastestAnswer < prog.FastestAnswer {
		prog.FastestAnswer = stats.FastestAnswer
	}

	accuracy := achievements.Accuracy(stats.Correct, stats.TotalQuestions)
	entry := model.HistoryEntry{
		ID:              r.newID(),
		Date:            r.now(),
		Mode:            settings.Mode,
		Correct:         stats.Correct,
		Incorrect:       stats.Incorrect,
		Accuracy:        accuracy,
		TimePerQuestion: averageTime(stats.AnswerTimes),
		Daily:           isDaily,
	}
	prog.GameHistory = append([]model.HistoryEntry{entry}, prog.GameHistory...)
	if len(prog.GameHistory) > historyCap {
		prog.GameHistory = prog.GameHistory[:historyCap]
	}

	unlockedAt := r.now()
	var unlocked []string
	for _, id := range append(append([]string{}, stats.Unlocked...), newIDs...) {
		state := prog.Achievements[id]
		if state.Unlocked {
			continue
		}
		at := unlockedAt
		prog.Achievements[id] = model.AchievementState{Unlocked: true, UnlockedAt: &at}
		unlocked = append(unlocked, id)
	}

	if err := r.store.Save(ctx, prog); err != nil {
		return Result{}, err
	}

	if isDaily && r.daily != nil {
		score := model.Score{Correct: stats.Correct, Total: stats.TotalQuestions, Accuracy: accuracy}
		if err := r.daily.Complete(ctx, score); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Progress:        prog,
		Entry:           entry,
		NewAchievements: unlocked,
		PersonalBests:   bests,
	}, nil
}

// personalBests compares the session against the pre-update record.
func personalBests(stats model.SessionStats, prog model.Progress) []string {
	var bests []string
	if stats.BestStreak > prog.BestStreak {
		bests = append(bests, "Best Streak")
	}
	if stats.FastestAnswer.IsSet() && stats.FastestAnswer < prog.FastestAnswer {
		bests = append(bests, "Fastest Answer")
	}
	return bests
}

func averageTime(times []float64) float64 {
	if len(times) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range times {
		sum += t
	}
	return sum / float64(len(times))
}
