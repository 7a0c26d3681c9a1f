package stats

import (
	"math"
	"testing"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
)

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestAccuracySeriesReversesHistory(t *testing.T) {
	history := []model.HistoryEntry{
		{Accuracy: 90}, // most recent
		{Accuracy: 70},
		{Accuracy: 50}, // oldest
	}
	got := AccuracySeries(history)
	if !floatsEqual(got, []float64{50, 70, 90}) {
		t.Fatalf("expected chronological order, got %v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	if !floatsEqual(got, []float64{1, 1.5, 2.5, 3.5}) {
		t.Fatalf("unexpected moving average: %v", got)
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	values := []float64{5, 3, 8}
	got := MovingAverage(values, 1)
	if !floatsEqual(got, values) {
		t.Fatalf("window 1 must return the input, got %v", got)
	}
}

func TestSparklineConstantSeries(t *testing.T) {
	got := Sparkline([]float64{80, 80, 80})
	if len(got) != 3 {
		t.Fatalf("expected 3 characters, got %q", got)
	}
	if got[0] != got[1] || got[1] != got[2] {
		t.Fatalf("constant series must render a flat line, got %q", got)
	}
}

func TestSparklineEndpoints(t *testing.T) {
	got := Sparkline([]float64{0, 100})
	if len(got) != 2 {
		t.Fatalf("expected 2 characters, got %q", got)
	}
	if got[0] != sparkChars[0] {
		t.Fatalf("minimum must use the lowest glyph, got %q", got)
	}
	if got[1] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("maximum must use the highest glyph, got %q", got)
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 2, 3, 4, 5, 6}, 3)
	if !floatsEqual(got, []float64{1.5, 3.5, 5.5}) {
		t.Fatalf("unexpected resample: %v", got)
	}
}

func TestResampleShortSeriesUnchanged(t *testing.T) {
	values := []float64{1, 2}
	got := Resample(values, 10)
	if !floatsEqual(got, values) {
		t.Fatalf("short series must pass through, got %v", got)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	headers := []string{"Name", "Count"}
	rows := [][]string{
		{"alpha", "7"},
		{"b", "1234"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if lines[1] != "alpha     7" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "b      1234" {
		t.Fatalf("right-aligned column broken: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("🏆"); got != 2 {
		t.Fatalf("emoji must measure 2 cells, got %d", got)
	}
	if got := displayWidth("abc"); got != 3 {
		t.Fatalf("ascii must measure 1 cell per rune, got %d", got)
	}
}
