// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ehanandbaba/arithmetics-arena/internal/achievements"
	"github.com/ehanandbaba/arithmetics-arena/internal/model"
)

const (
	terminalWidthBackup = 80
	curveWindow         = 5
)

// RenderSummary prints lifetime totals and the accuracy trend.
func RenderSummary(w io.Writer, prog model.Progress, width int) error {
	if width <= 0 {
		width = TerminalWidth()
	}
	lifetimeAcc := achievements.Accuracy(prog.TotalCorrectAnswers, prog.TotalQuestionsAnswered)
	fastest := "—"
	if prog.FastestAnswer.IsSet() {
		fastest = fmt.Sprintf("%.1fs", float64(prog.FastestAnswer))
	}
	unlocked := 0
	for _, state := range prog.Achievements {
		if state.Unlocked {
			unlocked++
		}
	}

	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Games played: %d\n", prog.TotalGamesPlayed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Questions answered: %d\n", prog.TotalQuestionsAnswered); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Lifetime accuracy: %d%%\n", lifetimeAcc); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best streak: %d\n", prog.BestStreak); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Fastest answer: %s\n", fastest); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Achievements: %d/%d\n", unlocked, len(achievements.Catalog)); err != nil {
		return err
	}

	if len(prog.GameHistory) > 1 {
		series := MovingAverage(AccuracySeries(prog.GameHistory), curveWindow)
		series = Resample(series, width)
		if _, err := fmt.Fprintf(w, "Accuracy trend: %s\n", Sparkline(series)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints the game history table, most recent first.
func RenderHistory(w io.Writer, history []model.HistoryEntry) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No games played yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "History"); err != nil {
		return err
	}
	headers := []string{"Date", "Mode", "Correct", "Incorrect", "Accuracy", "Avg Time"}
	rows := make([][]string, 0, len(history))
	for _, e := range history {
		mode := string(e.Mode)
		if e.Daily {
			mode += " (daily)"
		}
		rows = append(rows, []string{
			e.Date.Format(time.DateOnly),
			mode,
			fmt.Sprintf("%d", e.Correct),
			fmt.Sprintf("%d", e.Incorrect),
			fmt.Sprintf("%d%%", e.Accuracy),
			fmt.Sprintf("%.1fs", e.TimePerQuestion),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderAchievements prints the catalog with per-player unlock state.
func RenderAchievements(w io.Writer, prog model.Progress) error {
	if _, err := fmt.Fprintln(w, "Achievements"); err != nil {
		return err
	}
	headers := []string{"", "Title", "Description", "Unlocked"}
	rows := make([][]string, 0, len(achievements.Catalog))
	for _, a := range achievements.Catalog {
		state := prog.Achievements[a.ID]
		unlockedAt := "—"
		if state.Unlocked {
			unlockedAt = "yes"
			if state.UnlockedAt != nil {
				unlockedAt = state.UnlockedAt.Format(time.DateOnly)
			}
		}
		rows = append(rows, []string{a.Icon, a.Title, a.Description, unlockedAt})
	}
	for _, line := range formatTable(headers, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// TerminalWidth returns the stdout width or a default fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
