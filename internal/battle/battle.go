// Package battle implements the solo duel against a simulated
// opponent. It shares no state with the practice session engine.
package battle

import (
	"strconv"
	"strings"
	"time"
)

// Both fighters start with MaxHealth; each landed answer deals Damage.
const (
	MaxHealth = 60
	Damage    = 2
)

// Winner identifies the side that won a finished battle.
type Winner int

// Battle outcomes.
const (
	WinnerNone Winner = iota
	WinnerPlayer
	WinnerOpponent
)

// Fighter is one side of the duel.
type Fighter struct {
	Name   string
	Health int
}

// Battle is the state of one duel. Not safe for concurrent use.
type Battle struct {
	gen        *Generator
	difficulty Difficulty

	player   Fighter
	opponent Fighter

	question      Question
	opponentDelay time.Duration

	over   bool
	winner Winner
}

// New starts a battle at full health with the first question presented.
func New(difficulty Difficulty, playerName, opponentName string, gen *Generator) *Battle {
	b := &Battle{
		gen:        gen,
		difficulty: difficulty,
		player:     Fighter{Name: playerName, Health: MaxHealth},
		opponent:   Fighter{Name: opponentName, Health: MaxHealth},
	}
	b.NextRound()
	return b
}

// NextRound presents a fresh question and re-arms the opponent timer.
func (b *Battle) NextRound() {
	if b.over {
		return
	}
	b.question = b.gen.Question(b.difficulty)
	b.opponentDelay = b.gen.OpponentDelay(b.difficulty)
}

// Submit evaluates the player's answer. A correct answer lands a hit on
// the opponent; a wrong answer deals no damage and only costs time.
// Returns whether the answer was correct.
func (b *Battle) Submit(raw string) bool {
	if b.over {
		return false
	}
	answer, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || answer != b.question.Answer {
		return false
	}
	b.opponent.Health -= Damage
	if b.opponent.Health <= 0 {
		b.opponent.Health = 0
		b.over = true
		b.winner = WinnerPlayer
	}
	return true
}

// OpponentStrike lands the opponent's hit when its answer timer fires
// before the player answers.
func (b *Battle) OpponentStrike() {
	if b.over {
		return
	}
	b.player.Health -= Damage
	if b.player.Health <= 0 {
		b.player.Health = 0
		b.over = true
		b.winner = WinnerOpponent
	}
}

// Question returns the pending question.
func (b *Battle) Question() Question {
	return b.question
}

// OpponentDelay returns how long the opponent takes on this round.
func (b *Battle) OpponentDelay() time.Duration {
	return b.opponentDelay
}

// Player returns the player fighter.
func (b *Battle) Player() Fighter {
	return b.player
}

// Opponent returns the opponent fighter.
func (b *Battle) Opponent() Fighter {
	return b.opponent
}

// Over reports whether the battle has finished.
func (b *Battle) Over() bool {
	return b.over
}

// Winner returns the winning side of a finished battle.
func (b *Battle) Winner() Winner {
	return b.winner
}
