package battle

import (
	"fmt"
	"testing"
	"time"
)

func TestGeneratorQuestionBounds(t *testing.T) {
	gen := NewSeededGenerator(1)
	for i := 0; i < 500; i++ {
		q := gen.Question(DifficultyEasy)
		switch q.Operation {
		case OpAddition:
			if q.Num1 < 1 || q.Num1 > 6 || q.Num2 < 1 || q.Num2 > 6 {
				t.Fatalf("easy addition operands out of 1-6: %+v", q)
			}
			if q.Answer != q.Num1+q.Num2 {
				t.Fatalf("wrong sum: %+v", q)
			}
		case OpSubtraction:
			if q.Answer < 0 {
				t.Fatalf("subtraction must be non-negative: %+v", q)
			}
			if q.Answer != q.Num1-q.Num2 {
				t.Fatalf("wrong difference: %+v", q)
			}
		case OpMultiplication:
			if q.Num1 < 1 || q.Num1 > 12 || q.Num2 < 1 || q.Num2 > 12 {
				t.Fatalf("multiplication operands out of 1-12: %+v", q)
			}
			if q.Answer != q.Num1*q.Num2 {
				t.Fatalf("wrong product: %+v", q)
			}
		case OpDivision:
			if q.Num1%q.Num2 != 0 {
				t.Fatalf("division must be exact: %+v", q)
			}
			if q.Answer != q.Num1/q.Num2 {
				t.Fatalf("wrong quotient: %+v", q)
			}
		default:
			t.Fatalf("unknown operation %q", q.Operation)
		}
	}
}

func TestGeneratorHardOperandRange(t *testing.T) {
	gen := NewSeededGenerator(2)
	sawAbove10 := false
	for i := 0; i < 500; i++ {
		q := gen.Question(DifficultyHard)
		if q.Operation == OpAddition && (q.Num1 > 12 || q.Num2 > 12) {
			t.Fatalf("hard addition operands out of 1-12: %+v", q)
		}
		if q.Num1 > 10 || q.Num2 > 10 {
			sawAbove10 = true
		}
	}
	if !sawAbove10 {
		t.Fatal("hard difficulty never used operands above 10")
	}
}

func TestGeneratorOpponentDelayRanges(t *testing.T) {
	gen := NewSeededGenerator(3)
	cases := []struct {
		difficulty Difficulty
		min, max   time.Duration
	}{
		{DifficultyEasy, 5 * time.Second, 10 * time.Second},
		{DifficultyMedium, 3 * time.Second, 6 * time.Second},
		{DifficultyHard, 2 * time.Second, 4 * time.Second},
	}
	for _, tc := range cases {
		for i := 0; i < 200; i++ {
			d := gen.OpponentDelay(tc.difficulty)
			if d < tc.min || d >= tc.max {
				t.Fatalf("%s delay %v out of [%v, %v)", tc.difficulty, d, tc.min, tc.max)
			}
		}
	}
}

func TestSubmitCorrectDamagesOpponent(t *testing.T) {
	b := New(DifficultyMedium, "Player", "Rival", NewSeededGenerator(4))

	q := b.Question()
	if !b.Submit(fmt.Sprintf("%d", q.Answer)) {
		t.Fatal("correct answer must land")
	}
	if got := b.Opponent().Health; got != MaxHealth-Damage {
		t.Fatalf("expected opponent at %d, got %d", MaxHealth-Damage, got)
	}
	if b.Player().Health != MaxHealth {
		t.Fatal("player must be untouched by own hit")
	}
}

func TestSubmitWrongDealsNoDamage(t *testing.T) {
	b := New(DifficultyMedium, "Player", "Rival", NewSeededGenerator(5))

	if b.Submit("-9999") {
		t.Fatal("wrong answer must not land")
	}
	if b.Submit("junk") {
		t.Fatal("non-numeric answer must not land")
	}
	if b.Opponent().Health != MaxHealth || b.Player().Health != MaxHealth {
		t.Fatal("wrong answers must deal no damage")
	}
}

func TestOpponentStrikeDamagesPlayer(t *testing.T) {
	b := New(DifficultyMedium, "Player", "Rival", NewSeededGenerator(6))

	b.OpponentStrike()
	if got := b.Player().Health; got != MaxHealth-Damage {
		t.Fatalf("expected player at %d, got %d", MaxHealth-Damage, got)
	}
}

func TestBattleEndsWhenOpponentFalls(t *testing.T) {
	b := New(DifficultyMedium, "Player", "Rival", NewSeededGenerator(7))

	for !b.Over() {
		q := b.Question()
		b.Submit(fmt.Sprintf("%d", q.Answer))
		b.NextRound()
	}
	if b.Winner() != WinnerPlayer {
		t.Fatalf("expected player victory, got %v", b.Winner())
	}
	if b.Opponent().Health != 0 {
		t.Fatalf("opponent health must clamp to 0, got %d", b.Opponent().Health)
	}

	// Events after the end are ignored.
	b.OpponentStrike()
	if b.Player().Health != MaxHealth {
		t.Fatal("finished battle must ignore strikes")
	}
	q := b.Question()
	if b.Submit(fmt.Sprintf("%d", q.Answer)) {
		t.Fatal("finished battle must ignore answers")
	}
}

func TestBattleEndsWhenPlayerFalls(t *testing.T) {
	b := New(DifficultyHard, "Player", "Rival", NewSeededGenerator(8))

	for !b.Over() {
		b.OpponentStrike()
	}
	if b.Winner() != WinnerOpponent {
		t.Fatalf("expected opponent victory, got %v", b.Winner())
	}
	if b.Player().Health != 0 {
		t.Fatalf("player health must clamp to 0, got %d", b.Player().Health)
	}
}
