// Package question generates arithmetic facts from session settings.
package question

import (
	"math/rand"
	"time"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
)

// Generator produces randomized questions.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns one question satisfying the settings: the table is
// drawn from SelectedTables, the other operand from MultiplierRange,
// and division facts divide exactly.
func (g *Generator) Generate(s model.Settings) model.Question {
	table := s.SelectedTables[g.rnd.Intn(len(s.SelectedTables))]
	span := s.MultiplierRange.Max - s.MultiplierRange.Min + 1
	multiplier := s.MultiplierRange.Min + g.rnd.Intn(span)

	op := model.OpMultiplication
	switch s.Mode {
	case model.ModeDivision:
		op = model.OpDivision
	case model.ModeMixed:
		if g.rnd.Float64() < 0.5 {
			op = model.OpDivision
		}
	}

	if op == model.OpDivision {
		return model.Question{
			Num1:      table * multiplier,
			Num2:      table,
			Operation: model.OpDivision,
			Answer:    multiplier,
		}
	}
	return model.Question{
		Num1:      table,
		Num2:      multiplier,
		Operation: model.OpMultiplication,
		Answer:    table * multiplier,
	}
}
