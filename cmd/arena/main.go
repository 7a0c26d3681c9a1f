// Package main provides the CLI entrypoint for arena.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ehanandbaba/arithmetics-arena/internal/battle"
	"github.com/ehanandbaba/arithmetics-arena/internal/battleui"
	"github.com/ehanandbaba/arithmetics-arena/internal/config"
	"github.com/ehanandbaba/arithmetics-arena/internal/daily"
	"github.com/ehanandbaba/arithmetics-arena/internal/model"
	"github.com/ehanandbaba/arithmetics-arena/internal/progress"
	"github.com/ehanandbaba/arithmetics-arena/internal/question"
	"github.com/ehanandbaba/arithmetics-arena/internal/session"
	"github.com/ehanandbaba/arithmetics-arena/internal/stats"
	"github.com/ehanandbaba/arithmetics-arena/internal/statsui"
	"github.com/ehanandbaba/arithmetics-arena/internal/store"
	"github.com/ehanandbaba/arithmetics-arena/internal/tui"
)

const (
	defaultMode       = "multiplication"
	defaultTimerMode  = "per-question"
	defaultTimeLimit  = 30
	defaultRangeMin   = 1
	defaultRangeMax   = 10
	defaultQuestions  = 20
	defaultDifficulty = "medium"
	defaultPlayer     = "Player"
	opponentName      = "Rival"
)

var defaultTables = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

var (
	practiceMode      string
	practiceTimerMode string
	practiceTimeLimit int
	practiceTables    []int
	practiceRangeMin  int
	practiceRangeMax  int
	practiceQuestions int
	practiceNew       bool

	battleDifficulty string
	battlePlayerName string

	statsPlain bool

	resetYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arena",
		Short:         "TUI arithmetic trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "session mode: multiplication, division, mixed")
	rootCmd.Flags().StringVar(&practiceTimerMode, "timer-mode", defaultTimerMode, "timer mode: per-question or total")
	rootCmd.Flags().IntVar(&practiceTimeLimit, "time-limit", defaultTimeLimit, "seconds per question (or whole session in total mode)")
	rootCmd.Flags().IntSliceVar(&practiceTables, "tables", defaultTables, "multiplication tables to practice (1-20)")
	rootCmd.Flags().IntVar(&practiceRangeMin, "range-min", defaultRangeMin, "smallest multiplier")
	rootCmd.Flags().IntVar(&practiceRangeMax, "range-max", defaultRangeMax, "largest multiplier")
	rootCmd.Flags().IntVar(&practiceQuestions, "questions", defaultQuestions, "question count (total timer mode)")
	rootCmd.Flags().BoolVar(&practiceNew, "new", false, "discard a paused session and start fresh")

	rootCmd.AddCommand(newDailyCmd())
	rootCmd.AddCommand(newBattleCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringConfig(cmd, "timer-mode", &practiceTimerMode, fileCfg.Practice.TimerMode)
	applyIntConfig(cmd, "time-limit", &practiceTimeLimit, fileCfg.Practice.TimeLimit)
	applyIntSliceConfig(cmd, "tables", &practiceTables, fileCfg.Practice.Tables)
	applyIntConfig(cmd, "range-min", &practiceRangeMin, fileCfg.Practice.RangeMin)
	applyIntConfig(cmd, "range-max", &practiceRangeMax, fileCfg.Practice.RangeMax)
	applyIntConfig(cmd, "questions", &practiceQuestions, fileCfg.Practice.Questions)

	settings := model.Settings{
		Mode:            model.Mode(practiceMode),
		TimerMode:       model.TimerMode(practiceTimerMode),
		TimeLimit:       practiceTimeLimit,
		SelectedTables:  practiceTables,
		MultiplierRange: model.Range{Min: practiceRangeMin, Max: practiceRangeMax},
	}
	if settings.TimerMode == model.TimerTotal {
		settings.TotalQuestions = practiceQuestions
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	return runSession(settings, false, practiceNew)
}

func runSession(settings model.Settings, isDaily, discardPaused bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	progStore := progress.NewStore(st)
	prog := progStore.Load(ctx)
	dailySvc := daily.NewService(st)
	snapshots := session.NewSnapshots(st)

	if discardPaused {
		if err := snapshots.ClearPaused(ctx); err != nil {
			return fmt.Errorf("failed to discard paused session: %w", err)
		}
	}

	opts := session.Options{
		Daily:           isDaily,
		DurableUnlocked: unlockedIDs(prog),
		Snapshots:       snapshots,
	}

	var sess *session.Session
	if !isDaily {
		if snap, ok, serr := snapshots.LoadPaused(ctx); serr == nil && ok && !snap.Daily {
			restored, rerr := session.Restore(snap, question.New(), opts)
			if rerr == nil {
				logErrln("Resuming paused session (press p to continue, or rerun with --new)")
				sess = restored
			}
		}
	}
	if sess == nil {
		sess, err = session.New(settings, question.New(), opts)
		if err != nil {
			return err
		}
	}

	recorder := progress.NewRecorder(progStore, dailySvc)
	uiModel := tui.NewModel(sess, recorder)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Play today's daily challenge",
		Args:  cobra.NoArgs,
		RunE:  runDailyCmd,
	}
}

func runDailyCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	ch, err := daily.NewService(st).Today(context.Background())
	closeStore(st)
	if err != nil {
		return fmt.Errorf("failed to load daily challenge: %w", err)
	}
	if ch.Completed {
		score := ""
		if ch.Score != nil {
			score = fmt.Sprintf(" Score: %d/%d (%d%%).", ch.Score.Correct, ch.Score.Total, ch.Score.Accuracy)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Today's challenge is already completed.%s Come back tomorrow!\n", score); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	return runSession(ch.Settings, true, false)
}

func newBattleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Duel a simulated opponent",
		Args:  cobra.NoArgs,
		RunE:  runBattleCmd,
	}
	cmd.Flags().StringVar(&battleDifficulty, "difficulty", defaultDifficulty, "opponent difficulty: easy, medium, hard")
	cmd.Flags().StringVar(&battlePlayerName, "name", defaultPlayer, "player display name")
	return cmd
}

func runBattleCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "difficulty", &battleDifficulty, fileCfg.Battle.Difficulty)
	applyStringConfig(cmd, "name", &battlePlayerName, fileCfg.Battle.Name)

	difficulty := battle.Difficulty(battleDifficulty)
	switch difficulty {
	case battle.DifficultyEasy, battle.DifficultyMedium, battle.DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q (use easy, medium, or hard)", battleDifficulty)
	}

	b := battle.New(difficulty, battlePlayerName, opponentName, battle.NewGenerator())
	program := tea.NewProgram(battleui.NewModel(b), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run battle TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress and achievements",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	prog := progress.NewStore(st).Load(context.Background())

	if statsPlain {
		out := cmd.OutOrStdout()
		if err := stats.RenderSummary(out, prog, 0); err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		if err := stats.RenderHistory(out, prog.GameHistory); err != nil {
			return fmt.Errorf("failed to render history: %w", err)
		}
		if err := stats.RenderAchievements(out, prog); err != nil {
			return fmt.Errorf("failed to render achievements: %w", err)
		}
		return nil
	}

	program := tea.NewProgram(statsui.NewModel(prog), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase saved progress and achievements",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return fmt.Errorf("reset erases all progress and achievements; rerun with --yes to confirm")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := progress.NewStore(st).Reset(context.Background()); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Progress reset."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func unlockedIDs(prog model.Progress) []string {
	ids := make([]string, 0, len(prog.Achievements))
	for id, state := range prog.Achievements {
		if state.Unlocked {
			ids = append(ids, id)
		}
	}
	return ids
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target *[]int, value *[]int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]int(nil), (*value)...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# arena configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q            # multiplication, division, or mixed
# timer-mode = %q      # per-question or total
# time-limit = %d      # Seconds per question (or whole session in total mode)
# tables = [2, 3, 4]   # Multiplication tables to practice (1-20)
# range-min = %d       # Smallest multiplier
# range-max = %d       # Largest multiplier
# questions = %d       # Question count (total timer mode)

[battle]
# difficulty = %q      # easy, medium, or hard
# name = %q            # Player display name
`,
		defaultMode,
		defaultTimerMode,
		defaultTimeLimit,
		defaultRangeMin,
		defaultRangeMax,
		defaultQuestions,
		defaultDifficulty,
		defaultPlayer,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
