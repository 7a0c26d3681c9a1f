// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// Mode selects which operations a session asks about.
type Mode string

// Session modes.
const (
	ModeMultiplication Mode = "multiplication"
	ModeDivision       Mode = "division"
	ModeMixed          Mode = "mixed"
)

// Modes lists all session modes.
var Modes = []Mode{ModeMultiplication, ModeDivision, ModeMixed}

// TimerMode selects how the session countdown behaves.
type TimerMode string

// Timer modes. PerQuestion resets the countdown on every question;
// Total runs a single countdown for the whole session.
const (
	TimerPerQuestion TimerMode = "per-question"
	TimerTotal       TimerMode = "total"
)

// Operation is the arithmetic operation of a single question.
type Operation string

// Question operations.
const (
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ErrInvalidSettings reports settings a session must not start with.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings configures one session. Immutable for the session's duration.
type Settings struct {
	Mode            Mode      `json:"mode"`
	TimerMode       TimerMode `json:"timerMode"`
	TimeLimit       int       `json:"timeLimit"` // seconds
	SelectedTables  []int     `json:"selectedTables"`
	MultiplierRange Range     `json:"multiplierRange"`
	TotalQuestions  int       `json:"totalQuestions,omitempty"` // timerMode=total only
}

// Validate rejects settings a session must not start with.
func (s Settings) Validate() error {
	if len(s.SelectedTables) == 0 {
		return fmt.Errorf("%w: no tables selected", ErrInvalidSettings)
	}
	for _, t := range s.SelectedTables {
		if t < 1 || t > 20 {
			return fmt.Errorf("%w: table %d out of range 1-20", ErrInvalidSettings, t)
		}
	}
	if s.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be > 0", ErrInvalidSettings)
	}
	if s.MultiplierRange.Min > s.MultiplierRange.Max {
		return fmt.Errorf("%w: multiplier range min > max", ErrInvalidSettings)
	}
	if s.Mode != ModeMultiplication && s.Mode != ModeDivision && s.Mode != ModeMixed {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s.Mode)
	}
	if s.TimerMode == TimerTotal && s.TotalQuestions <= 0 {
		return fmt.Errorf("%w: total questions must be > 0 in total timer mode", ErrInvalidSettings)
	}
	return nil
}

// Question is one arithmetic fact. Num1 op Num2 == Answer always holds;
// for division Num1 is constructed as a product so the result is exact.
type Question struct {
	Num1      int       `json:"num1"`
	Num2      int       `json:"num2"`
	Operation Operation `json:"operation"`
	Answer    int       `json:"answer"`
}

// Symbol returns the display operator for the question.
func (q Question) Symbol() string {
	if q.Operation == OpDivision {
		return "÷"
	}
	return "×"
}

// Seconds is a duration in seconds. Infinity (no measurement yet)
// round-trips through JSON as null.
type Seconds float64

// NoTime is the initial value before any answer has been timed.
func NoTime() Seconds {
	return Seconds(math.Inf(1))
}

// IsSet reports whether a measurement has been recorded.
func (s Seconds) IsSet() bool {
	return !math.IsInf(float64(s), 1)
}

// MarshalJSON implements json.Marshaler.
func (s Seconds) MarshalJSON() ([]byte, error) {
	if !s.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Seconds) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NoTime()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Seconds(f)
	return nil
}

// SessionStats accumulates the state of one play session. Owned solely
// by the session until handoff to the recorder.
type SessionStats struct {
	Correct           int        `json:"correct"`
	Incorrect         int        `json:"incorrect"`
	TotalQuestions    int        `json:"totalQuestions"`
	CurrentStreak     int        `json:"currentStreak"`
	BestStreak        int        `json:"bestStreak"`
	FastestAnswer     Seconds    `json:"fastestAnswer"`
	AnswerTimes       []float64  `json:"answerTimes"`
	Unlocked          []string   `json:"unlockedAchievements"`
	QuestionsAnswered []Question `json:"questionsAnswered"`
}

// NewSessionStats returns zeroed statistics.
func NewSessionStats() SessionStats {
	return SessionStats{FastestAnswer: NoTime()}
}

// LastAnswerTime returns the latency of the most recent answer.
func (s SessionStats) LastAnswerTime() Seconds {
	if len(s.AnswerTimes) == 0 {
		return NoTime()
	}
	return Seconds(s.AnswerTimes[len(s.AnswerTimes)-1])
}

// AchievementState is the per-player unlock state of one achievement.
type AchievementState struct {
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// HistoryEntry summarizes one finished game. Progress.GameHistory keeps
// entries most recent first.
type HistoryEntry struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Mode            Mode      `json:"mode"`
	Correct         int       `json:"correct"`
	Incorrect       int       `json:"incorrect"`
	Accuracy        int       `json:"accuracy"` // rounded percent
	TimePerQuestion float64   `json:"timePerQuestion"`
	Daily           bool      `json:"daily,omitempty"`
}

// Total returns the number of questions in the entry.
func (e HistoryEntry) Total() int {
	return e.Correct + e.Incorrect
}

// Progress is the durable cumulative player record.
type Progress struct {
	TotalGamesPlayed       int                         `json:"totalGamesPlayed"`
	TotalQuestionsAnswered int                         `json:"totalQuestionsAnswered"`
	TotalCorrectAnswers    int                         `json:"totalCorrectAnswers"`
	BestStreak             int                         `json:"bestStreak"`
	FastestAnswer          Seconds                     `json:"fastestAnswer"`
	Achievements           map[string]AchievementState `json:"achievements"`
	GameHistory            []HistoryEntry              `json:"gameHistory"`
}

// IsUnlocked reports whether the achievement is unlocked durably.
func (p Progress) IsUnlocked(id string) bool {
	return p.Achievements[id].Unlocked
}

// Score is the recorded outcome of a daily challenge.
type Score struct {
	Correct  int `json:"correct"`
	Total    int `json:"total"`
	Accuracy int `json:"accuracy"`
}

// DailyChallenge is the date-seeded shared challenge for one calendar day.
type DailyChallenge struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Settings  Settings `json:"settings"`
	Completed bool     `json:"completed"`
	Score     *Score   `json:"score,omitempty"`
}
