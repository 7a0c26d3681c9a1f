// Package session drives the timed question/answer loop of one play
// session: timing, answer evaluation, pause/resume, completion.
package session

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ehanandbaba/arithmetics-arena/internal/achievements"
	"github.com/ehanandbaba/arithmetics-arena/internal/model"
)

// State is the lifecycle state of a session.
type State int

// Session states. A new session starts Active; Completed is terminal.
const (
	StateActive State = iota
	StatePaused
	StateCompleted
)

// Generator produces the next question for the session.
type Generator interface {
	Generate(model.Settings) model.Question
}

// SnapshotStore persists the in-flight state of a paused session.
type SnapshotStore interface {
	SavePaused(ctx context.Context, snap Snapshot) error
	LoadPaused(ctx context.Context) (Snapshot, bool, error)
	ClearPaused(ctx context.Context) error
}

// Outcome describes the result of the most recent answer or timeout.
type Outcome struct {
	Correct  bool
	TimedOut bool
	Expected int
	Latency  float64  // seconds
	Unlocked []string // achievements unlocked by this answer
}

// Options configures optional session collaborators.
type Options struct {
	Daily           bool          // session is today's daily challenge
	DurableUnlocked []string      // achievement ids already unlocked durably
	Snapshots       SnapshotStore // nil disables pause persistence
	Now             func() time.Time
}

// Session is the state machine for one play session. Not safe for
// concurrent use; tick and answer events must be serialized by the
// caller so exactly one statistics update occurs per question.
type Session struct {
	settings  model.Settings
	gen       Generator
	daily     bool
	snapshots SnapshotStore
	now       func() time.Time

	state    State
	stats    model.SessionStats
	unlocked achievements.Unlocked

	question     model.Question
	questionLeft int // per-question countdown, seconds
	totalLeft    int // whole-session countdown, seconds (total mode)

	askedAt       time.Time
	pausedElapsed time.Duration // time already spent on the pending question

	feedback bool // answer processed, next question not yet requested
	outcome  Outcome
}

// New validates the settings, arms the timer, and presents the first
// question. Returns model.ErrInvalidSettings via the settings check.
func New(settings model.Settings, gen Generator, opts Options) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		settings:  settings,
		gen:       gen,
		daily:     opts.Daily,
		snapshots: opts.Snapshots,
		now:       opts.Now,
		stats:     model.NewSessionStats(),
		unlocked:  achievements.NewUnlocked(opts.DurableUnlocked...),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if settings.TimerMode == model.TimerTotal {
		s.totalLeft = settings.TimeLimit
	}
	s.nextQuestion()
	return s, nil
}

// Restore rebuilds a paused session from a snapshot. The session stays
// Paused until Resume is called.
func Restore(snap Snapshot, gen Generator, opts Options) (*Session, error) {
	if err := snap.Settings.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		settings:  snap.Settings,
		gen:       gen,
		daily:     snap.Daily,
		snapshots: opts.Snapshots,
		now:       opts.Now,
		state:     StatePaused,
		stats:     snap.Stats,
		unlocked:  achievements.NewUnlocked(snap.DurableUnlocked...),
	}
	if s.now == nil {
		s.now = time.Now
	}
	for _, id := range snap.Stats.Unlocked {
		s.unlocked.Add(id)
	}
	s.question = snap.Question
	s.questionLeft = snap.QuestionLeft
	s.totalLeft = snap.TotalLeft
	s.pausedElapsed = time.Duration(snap.PendingElapsed * float64(time.Second))
	return s, nil
}

// Tick advances the countdown by one second. In per-question mode the
// countdown is suspended while feedback is showing; reaching zero times
// the question out. In total mode the single countdown runs across
// question boundaries and reaching zero completes the session.
func (s *Session) Tick() {
	if s.state != StateActive {
		return
	}
	if s.settings.TimerMode == model.TimerTotal {
		s.totalLeft--
		if s.totalLeft <= 0 {
			s.Complete()
		}
		return
	}
	if s.feedback {
		return
	}
	s.questionLeft--
	if s.questionLeft <= 0 {
		s.timeout()
	}
}

// Submit evaluates raw user input against the pending question. Input
// that does not parse as an integer counts as an incorrect answer.
// Ignored outside Active or while feedback is pending, so a tick that
// already timed the question out wins the race.
func (s *Session) Submit(raw string) {
	if s.state != StateActive || s.feedback {
		return
	}
	answer, err := strconv.Atoi(strings.TrimSpace(raw))
	correct := err == nil && answer == s.question.Answer
	latency := s.questionElapsed().Seconds()
	s.recordAnswer(correct, false, latency)
}

// timeout counts the expired question as incorrect with the full time
// limit as its latency.
func (s *Session) timeout() {
	s.recordAnswer(false, true, float64(s.settings.TimeLimit))
}

func (s *Session) recordAnswer(correct, timedOut bool, latency float64) {
	s.stats.TotalQuestions++
	s.stats.AnswerTimes = append(s.stats.AnswerTimes, latency)
	s.stats.QuestionsAnswered = append(s.stats.QuestionsAnswered, s.question)
	if correct {
		s.stats.Correct++
		s.stats.CurrentStreak++
		if s.stats.CurrentStreak > s.stats.BestStreak {
			s.stats.BestStreak = s.stats.CurrentStreak
		}
		if model.Seconds(latency) < s.stats.FastestAnswer {
			s.stats.FastestAnswer = model.Seconds(latency)
		}
	} else {
		s.stats.Incorrect++
		s.stats.CurrentStreak = 0
	}

	// The gameplay rules run on every answer: speed ceilings qualify on
	// latency alone, correct or not.
	unlocked := achievements.CheckGameplay(s.stats, s.unlocked)
	for _, id := range unlocked {
		s.unlocked.Add(id)
		s.stats.Unlocked = append(s.stats.Unlocked, id)
	}

	s.feedback = true
	s.outcome = Outcome{
		Correct:  correct,
		TimedOut: timedOut,
		Expected: s.question.Answer,
		Latency:  latency,
		Unlocked: unlocked,
	}
}

// Advance moves past the feedback display: it either presents the next
// question or completes the session. No-op unless feedback is pending.
func (s *Session) Advance() {
	if s.state != StateActive || !s.feedback {
		return
	}
	s.feedback = false
	if s.settings.TimerMode == model.TimerTotal {
		if s.totalLeft <= 0 || s.stats.TotalQuestions >= s.settings.TotalQuestions {
			s.Complete()
			return
		}
	}
	s.nextQuestion()
}

func (s *Session) nextQuestion() {
	s.question = s.gen.Generate(s.settings)
	s.askedAt = s.now()
	s.pausedElapsed = 0
	if s.settings.TimerMode == model.TimerPerQuestion {
		s.questionLeft = s.settings.TimeLimit
	}
}

// Pause suspends timer progression and persists a snapshot of the
// in-flight state. Statistics and the pending question are untouched.
// A failed snapshot write is dropped silently; losing the snapshot is
// an acceptable degraded mode.
func (s *Session) Pause(ctx context.Context) {
	if s.state != StateActive {
		return
	}
	s.pausedElapsed = s.questionElapsed()
	s.state = StatePaused
	if s.snapshots != nil {
		_ = s.snapshots.SavePaused(ctx, s.snapshot())
	}
}

// Resume restores timer progression and clears the persisted snapshot.
func (s *Session) Resume(ctx context.Context) {
	if s.state != StatePaused {
		return
	}
	s.state = StateActive
	s.askedAt = s.now().Add(-s.pausedElapsed)
	if s.snapshots != nil {
		_ = s.snapshots.ClearPaused(ctx)
	}
}

// Complete freezes the session. Idempotent; further events are ignored.
func (s *Session) Complete() {
	if s.state == StateCompleted {
		return
	}
	s.state = StateCompleted
	s.feedback = false
}

func (s *Session) questionElapsed() time.Duration {
	if s.state == StatePaused {
		return s.pausedElapsed
	}
	return s.now().Sub(s.askedAt)
}

func (s *Session) snapshot() Snapshot {
	durable := make([]string, 0, len(s.unlocked))
	for id := range s.unlocked {
		durable = append(durable, id)
	}
	return Snapshot{
		Settings:        s.settings,
		Stats:           s.stats,
		Question:        s.question,
		QuestionLeft:    s.questionLeft,
		TotalLeft:       s.totalLeft,
		PendingElapsed:  s.pausedElapsed.Seconds(),
		Daily:           s.daily,
		DurableUnlocked: durable,
	}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Settings returns the immutable session settings.
func (s *Session) Settings() model.Settings {
	return s.settings
}

// Daily reports whether this session is today's daily challenge.
func (s *Session) Daily() bool {
	return s.daily
}

// Stats returns the current statistics. The returned value is frozen
// once the session is Completed.
func (s *Session) Stats() model.SessionStats {
	return s.stats
}

// Question returns the pending question.
func (s *Session) Question() model.Question {
	return s.question
}

// TimeLeft returns the seconds remaining on the active countdown.
func (s *Session) TimeLeft() int {
	if s.settings.TimerMode == model.TimerTotal {
		return s.totalLeft
	}
	return s.questionLeft
}

// Feedback reports whether an answer outcome is awaiting Advance.
func (s *Session) Feedback() bool {
	return s.feedback
}

// Outcome returns the result of the most recent answer or timeout.
func (s *Session) Outcome() Outcome {
	return s.outcome
}
