package question

import (
	"testing"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
)

func settingsFor(mode model.Mode) model.Settings {
	return model.Settings{
		Mode:            mode,
		TimerMode:       model.TimerPerQuestion,
		TimeLimit:       30,
		SelectedTables:  []int{3, 7, 12},
		MultiplierRange: model.Range{Min: 2, Max: 9},
	}
}

func TestGenerateMultiplication(t *testing.T) {
	gen := NewSeeded(1)
	s := settingsFor(model.ModeMultiplication)
	tables := map[int]bool{3: true, 7: true, 12: true}

	for i := 0; i < 200; i++ {
		q := gen.Generate(s)
		if q.Operation != model.OpMultiplication {
			t.Fatalf("expected multiplication, got %q", q.Operation)
		}
		if !tables[q.Num1] {
			t.Fatalf("table %d not in selected tables", q.Num1)
		}
		if q.Num2 < 2 || q.Num2 > 9 {
			t.Fatalf("multiplier %d out of range 2-9", q.Num2)
		}
		if q.Answer != q.Num1*q.Num2 {
			t.Fatalf("answer %d != %d * %d", q.Answer, q.Num1, q.Num2)
		}
	}
}

func TestGenerateDivisionIsExact(t *testing.T) {
	gen := NewSeeded(2)
	s := settingsFor(model.ModeDivision)
	tables := map[int]bool{3: true, 7: true, 12: true}

	for i := 0; i < 200; i++ {
		q := gen.Generate(s)
		if q.Operation != model.OpDivision {
			t.Fatalf("expected division, got %q", q.Operation)
		}
		if !tables[q.Num2] {
			t.Fatalf("divisor %d not in selected tables", q.Num2)
		}
		if q.Num1%q.Num2 != 0 {
			t.Fatalf("%d / %d does not divide exactly", q.Num1, q.Num2)
		}
		if q.Answer != q.Num1/q.Num2 {
			t.Fatalf("answer %d != %d / %d", q.Answer, q.Num1, q.Num2)
		}
		if q.Answer < 2 || q.Answer > 9 {
			t.Fatalf("quotient %d out of multiplier range 2-9", q.Answer)
		}
	}
}

func TestGenerateMixedProducesBothOperations(t *testing.T) {
	gen := NewSeeded(3)
	s := settingsFor(model.ModeMixed)

	seen := map[model.Operation]int{}
	for i := 0; i < 400; i++ {
		q := gen.Generate(s)
		seen[q.Operation]++
	}
	if seen[model.OpMultiplication] == 0 {
		t.Fatal("mixed mode never produced multiplication")
	}
	if seen[model.OpDivision] == 0 {
		t.Fatal("mixed mode never produced division")
	}
}

func TestGenerateSingleValueRange(t *testing.T) {
	gen := NewSeeded(4)
	s := settingsFor(model.ModeMultiplication)
	s.MultiplierRange = model.Range{Min: 5, Max: 5}

	for i := 0; i < 50; i++ {
		q := gen.Generate(s)
		if q.Num2 != 5 {
			t.Fatalf("expected multiplier 5, got %d", q.Num2)
		}
	}
}
