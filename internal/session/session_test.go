package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
	"github.com/ehanandbaba/arithmetics-arena/internal/question"
)

// fakeClock advances only when told, so answer latencies are exact.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type memSnapshots struct {
	snap  *Snapshot
	saves int
}

func (m *memSnapshots) SavePaused(_ context.Context, snap Snapshot) error {
	s := snap
	m.snap = &s
	m.saves++
	return nil
}

func (m *memSnapshots) LoadPaused(_ context.Context) (Snapshot, bool, error) {
	if m.snap == nil {
		return Snapshot{}, false, nil
	}
	return *m.snap, true, nil
}

func (m *memSnapshots) ClearPaused(_ context.Context) error {
	m.snap = nil
	return nil
}

func perQuestionSettings() model.Settings {
	return model.Settings{
		Mode:            model.ModeMultiplication,
		TimerMode:       model.TimerPerQuestion,
		TimeLimit:       30,
		SelectedTables:  []int{7},
		MultiplierRange: model.Range{Min: 3, Max: 3},
	}
}

func newTestSession(t *testing.T, settings model.Settings, clock *fakeClock, snaps SnapshotStore) *Session {
	t.Helper()
	s, err := New(settings, question.NewSeeded(1), Options{Snapshots: snaps, Now: clock.now})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return s
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	settings := perQuestionSettings()
	settings.SelectedTables = nil
	if _, err := New(settings, question.NewSeeded(1), Options{}); !errors.Is(err, model.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestSubmitCorrectAnswer(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	// Table 7, multiplier fixed at 3: every question is 7 x 3.
	clock.advance(2 * time.Second)
	s.Submit(" 21 ")

	stats := s.Stats()
	if stats.Correct != 1 || stats.Incorrect != 0 || stats.TotalQuestions != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.CurrentStreak != 1 || stats.BestStreak != 1 {
		t.Fatalf("unexpected streaks: %+v", stats)
	}
	if float64(stats.FastestAnswer) != 2 {
		t.Fatalf("expected fastest 2s, got %v", stats.FastestAnswer)
	}
	out := s.Outcome()
	if !out.Correct || out.TimedOut || out.Latency != 2 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if !containsString(out.Unlocked, "first_correct") {
		t.Fatalf("expected first_correct unlock, got %v", out.Unlocked)
	}
}

func TestSubmitWrongAnswerResetsStreak(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	s.Submit("21")
	s.Advance()
	s.Submit("21")
	s.Advance()
	s.Submit("99")

	stats := s.Stats()
	if stats.Correct != 2 || stats.Incorrect != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.CurrentStreak != 0 {
		t.Fatalf("streak must reset on a wrong answer, got %d", stats.CurrentStreak)
	}
	if stats.BestStreak != 2 {
		t.Fatalf("best streak must survive the reset, got %d", stats.BestStreak)
	}
}

func TestFastWrongAnswerUnlocksSpeedAchievements(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	clock.advance(1 * time.Second)
	s.Submit("9999")

	out := s.Outcome()
	if out.Correct {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	// Speed ceilings qualify on latency alone; a 1s answer clears all six.
	for _, id := range []string{"speed_10s", "speed_7s", "speed_5s", "speed_master", "speed_2s", "speed_1_5s"} {
		if !containsString(out.Unlocked, id) {
			t.Fatalf("expected %s to unlock on a fast wrong answer, got %v", id, out.Unlocked)
		}
	}
	if containsString(out.Unlocked, "first_correct") {
		t.Fatalf("a wrong answer must not unlock first_correct: %v", out.Unlocked)
	}
}

func TestUnparsableInputIsIncorrect(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	s.Submit("abc")
	stats := s.Stats()
	if stats.Incorrect != 1 || stats.Correct != 0 {
		t.Fatalf("non-numeric input must count as incorrect: %+v", stats)
	}
}

func TestTickTimesQuestionOut(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	for i := 0; i < 30; i++ {
		s.Tick()
	}

	stats := s.Stats()
	if stats.Incorrect != 1 || stats.TotalQuestions != 1 {
		t.Fatalf("expected one timed-out question: %+v", stats)
	}
	out := s.Outcome()
	if !out.TimedOut || out.Latency != 30 {
		t.Fatalf("unexpected timeout outcome: %+v", out)
	}
	if s.State() != StateActive {
		t.Fatalf("timeout must not complete a per-question session")
	}
}

func TestSubmitIgnoredDuringFeedback(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	s.Submit("21")
	if !s.Feedback() {
		t.Fatal("expected feedback after answer")
	}
	s.Submit("21")
	s.Submit("21")

	if got := s.Stats().TotalQuestions; got != 1 {
		t.Fatalf("exactly one stats update per question, got %d", got)
	}
}

func TestTickIgnoredDuringFeedback(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	s.Submit("21")
	left := s.TimeLeft()
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	if s.TimeLeft() != left {
		t.Fatal("per-question countdown must suspend while feedback shows")
	}
	if got := s.Stats().TotalQuestions; got != 1 {
		t.Fatalf("tick during feedback must not time the question out, got %d updates", got)
	}
}

func TestAdvanceResetsQuestionTimer(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	s.Tick()
	s.Tick()
	s.Submit("21")
	s.Advance()

	if s.TimeLeft() != 30 {
		t.Fatalf("expected fresh 30s countdown, got %d", s.TimeLeft())
	}
	if s.Feedback() {
		t.Fatal("feedback must clear on advance")
	}
}

func TestTotalModeCountdownCompletesSession(t *testing.T) {
	clock := newFakeClock()
	settings := perQuestionSettings()
	settings.TimerMode = model.TimerTotal
	settings.TimeLimit = 5
	settings.TotalQuestions = 100
	s := newTestSession(t, settings, clock, nil)

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if s.State() != StateCompleted {
		t.Fatalf("total countdown at zero must complete the session, state %v", s.State())
	}
}

func TestTotalModeQuestionCapCompletesSession(t *testing.T) {
	clock := newFakeClock()
	settings := perQuestionSettings()
	settings.TimerMode = model.TimerTotal
	settings.TimeLimit = 600
	settings.TotalQuestions = 2
	s := newTestSession(t, settings, clock, nil)

	s.Submit("21")
	s.Advance()
	if s.State() != StateActive {
		t.Fatal("session must stay active before the question cap")
	}
	s.Submit("21")
	s.Advance()
	if s.State() != StateCompleted {
		t.Fatalf("reaching the question cap must complete the session, state %v", s.State())
	}
}

func TestTotalModeTickRunsDuringFeedback(t *testing.T) {
	clock := newFakeClock()
	settings := perQuestionSettings()
	settings.TimerMode = model.TimerTotal
	settings.TimeLimit = 10
	settings.TotalQuestions = 100
	s := newTestSession(t, settings, clock, nil)

	s.Submit("21")
	left := s.TimeLeft()
	s.Tick()
	if s.TimeLeft() != left-1 {
		t.Fatal("total countdown must keep running while feedback shows")
	}
}

func TestPauseResumeRoundTrip(t *testing.T) {
	clock := newFakeClock()
	snaps := &memSnapshots{}
	s := newTestSession(t, perQuestionSettings(), clock, snaps)
	ctx := context.Background()

	s.Submit("21")
	s.Advance()
	clock.advance(4 * time.Second)
	s.Tick()
	s.Tick()

	s.Pause(ctx)
	if s.State() != StatePaused {
		t.Fatalf("expected paused state, got %v", s.State())
	}
	if snaps.snap == nil {
		t.Fatal("pause must persist a snapshot")
	}

	// The paused snapshot rebuilds an equivalent session.
	snap, ok, err := snaps.LoadPaused(ctx)
	if err != nil || !ok {
		t.Fatalf("failed to load snapshot: ok=%v err=%v", ok, err)
	}
	restored, err := Restore(snap, question.NewSeeded(2), Options{Snapshots: snaps, Now: clock.now})
	if err != nil {
		t.Fatalf("failed to restore session: %v", err)
	}
	if restored.State() != StatePaused {
		t.Fatalf("restored session must be paused, got %v", restored.State())
	}
	if restored.Stats().Correct != 1 {
		t.Fatalf("restored stats lost data: %+v", restored.Stats())
	}
	if restored.TimeLeft() != s.TimeLeft() {
		t.Fatalf("restored countdown %d != paused countdown %d", restored.TimeLeft(), s.TimeLeft())
	}
	if restored.Question() != snap.Question {
		t.Fatal("restored session must keep the pending question")
	}

	restored.Resume(ctx)
	if restored.State() != StateActive {
		t.Fatalf("expected active after resume, got %v", restored.State())
	}
	if snaps.snap != nil {
		t.Fatal("resume must clear the snapshot")
	}

	// Elapsed time on the pending question carries across the pause.
	clock.advance(1 * time.Second)
	restored.Submit("21")
	if got := restored.Outcome().Latency; got != 5 {
		t.Fatalf("expected 5s latency (4s before pause + 1s after), got %v", got)
	}
}

func TestPauseWhilePausedIsNoop(t *testing.T) {
	clock := newFakeClock()
	snaps := &memSnapshots{}
	s := newTestSession(t, perQuestionSettings(), clock, snaps)
	ctx := context.Background()

	s.Pause(ctx)
	s.Pause(ctx)
	if snaps.saves != 1 {
		t.Fatalf("expected one snapshot write, got %d", snaps.saves)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, perQuestionSettings(), clock, nil)

	s.Submit("21")
	s.Complete()
	stats := s.Stats()

	s.Complete()
	s.Submit("21")
	s.Tick()
	s.Advance()

	if s.State() != StateCompleted {
		t.Fatalf("expected completed state, got %v", s.State())
	}
	if got := s.Stats(); got.TotalQuestions != stats.TotalQuestions {
		t.Fatalf("stats must freeze on completion: %+v", got)
	}
}

func TestRestoreRejectsCorruptSettings(t *testing.T) {
	snap := Snapshot{Settings: model.Settings{}}
	if _, err := Restore(snap, question.NewSeeded(1), Options{}); !errors.Is(err, model.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
