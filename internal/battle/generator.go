package battle

import (
	"fmt"
	"math/rand"
	"time"
)

// Difficulty bounds the operand range and the opponent's answer speed.
type Difficulty string

// Battle difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Operation is a battle question operation. Battles span all four
// basic operations, unlike practice sessions.
type Operation string

// Battle operations.
const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
)

var operations = []Operation{OpAddition, OpSubtraction, OpMultiplication, OpDivision}

var symbols = map[Operation]string{
	OpAddition:       "+",
	OpSubtraction:    "−",
	OpMultiplication: "×",
	OpDivision:       "÷",
}

// Question is one battle fact. Subtraction results are non-negative and
// division is always exact.
type Question struct {
	Num1      int
	Num2      int
	Operation Operation
	Answer    int
}

// Display returns the question as shown to the player.
func (q Question) Display() string {
	return fmt.Sprintf("%d %s %d", q.Num1, symbols[q.Operation], q.Num2)
}

// Generator produces randomized battle questions and opponent delays.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded with the current time.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator returns a Generator with a fixed seed.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

func (d Difficulty) operandMax() int {
	switch d {
	case DifficultyEasy:
		return 6
	case DifficultyHard:
		return 12
	default:
		return 10
	}
}

// Question generates one battle question for the difficulty.
func (g *Generator) Question(d Difficulty) Question {
	op := operations[g.rnd.Intn(len(operations))]
	max := d.operandMax()

	switch op {
	case OpAddition:
		n1 := 1 + g.rnd.Intn(max)
		n2 := 1 + g.rnd.Intn(max)
		return Question{Num1: n1, Num2: n2, Operation: op, Answer: n1 + n2}
	case OpSubtraction:
		n1 := 1 + g.rnd.Intn(max)
		n2 := 1 + g.rnd.Intn(n1)
		return Question{Num1: n1, Num2: n2, Operation: op, Answer: n1 - n2}
	case OpDivision:
		n2 := 1 + g.rnd.Intn(12)
		answer := 1 + g.rnd.Intn(12)
		return Question{Num1: n2 * answer, Num2: n2, Operation: op, Answer: answer}
	default:
		n1 := 1 + g.rnd.Intn(12)
		n2 := 1 + g.rnd.Intn(12)
		return Question{Num1: n1, Num2: n2, Operation: op, Answer: n1 * n2}
	}
}

// OpponentDelay draws how long the simulated opponent takes to answer:
// 5-10s on easy, 3-6s on medium, 2-4s on hard.
func (g *Generator) OpponentDelay(d Difficulty) time.Duration {
	var base, span time.Duration
	switch d {
	case DifficultyEasy:
		base, span = 5*time.Second, 5*time.Second
	case DifficultyHard:
		base, span = 2*time.Second, 2*time.Second
	default:
		base, span = 3*time.Second, 3*time.Second
	}
	return base + time.Duration(g.rnd.Int63n(int64(span)))
}
