// Package tui provides the Bubble Tea practice session interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehanandbaba/arithmetics-arena/internal/achievements"
	"github.com/ehanandbaba/arithmetics-arena/internal/progress"
	"github.com/ehanandbaba/arithmetics-arena/internal/session"
)

const feedbackDelay = 1500 * time.Millisecond

type tickMsg time.Time

type feedbackDoneMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	timerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	urgentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	unlockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	bestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
)

// Model implements the Bubble Tea practice session UI.
type Model struct {
	sess     *session.Session
	recorder *progress.Recorder
	input    textinput.Model

	width  int
	height int

	awaitingFeedback bool
	done             bool
	result           progress.Result
	finalizeErr      error
}

// NewModel constructs a practice session model around a running session.
func NewModel(sess *session.Session, recorder *progress.Recorder) *Model {
	input := textinput.New()
	input.Placeholder = "?"
	input.CharLimit = 6
	input.Width = 8
	input.Focus()
	return &Model{
		sess:     sess,
		recorder: recorder,
		input:    input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func feedbackCmd() tea.Cmd {
	return tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTick()
	case feedbackDoneMsg:
		return m.handleFeedbackDone()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	m.sess.Tick()
	if m.sess.State() == session.StateCompleted {
		return m, m.finalize()
	}
	if m.sess.Feedback() && !m.awaitingFeedback {
		m.awaitingFeedback = true
		return m, tea.Batch(tickCmd(), feedbackCmd())
	}
	return m, tickCmd()
}

func (m *Model) handleFeedbackDone() (tea.Model, tea.Cmd) {
	// The feedback timer keeps running through a pause; retry after resume.
	if m.sess.State() == session.StatePaused {
		return m, feedbackCmd()
	}
	m.awaitingFeedback = false
	m.sess.Advance()
	if m.sess.State() == session.StateCompleted {
		return m, m.finalize()
	}
	m.input.Reset()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		switch msg.String() {
		case "q", "enter", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.sess.Stats().TotalQuestions == 0 {
			return m, tea.Quit
		}
		m.sess.Complete()
		return m, m.finalize()
	case "p":
		return m.togglePause()
	}

	if m.sess.State() == session.StatePaused {
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		if m.sess.Feedback() || strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		m.sess.Submit(m.input.Value())
		if m.sess.Feedback() && !m.awaitingFeedback {
			m.awaitingFeedback = true
			return m, feedbackCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) togglePause() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch m.sess.State() {
	case session.StateActive:
		m.sess.Pause(ctx)
	case session.StatePaused:
		m.sess.Resume(ctx)
	}
	return m, nil
}

func (m *Model) finalize() tea.Cmd {
	if m.done {
		return nil
	}
	m.done = true
	result, err := m.recorder.Finalize(context.Background(), m.sess.Stats(), m.sess.Settings(), m.sess.Daily())
	m.result = result
	m.finalizeErr = err
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch {
	case m.done:
		content = m.viewResults()
	case m.sess.State() == session.StatePaused:
		content = m.viewPaused()
	default:
		content = m.viewQuestion()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewQuestion() string {
	var b strings.Builder

	stats := m.sess.Stats()
	timeLeft := m.sess.TimeLeft()
	timer := timerStyle.Render(fmt.Sprintf("%ds", timeLeft))
	if timeLeft <= 5 {
		timer = urgentStyle.Render(fmt.Sprintf("%ds", timeLeft))
	}
	header := fmt.Sprintf("%s  %s  %s",
		correctStyle.Render(fmt.Sprintf("✓ %d", stats.Correct)),
		wrongStyle.Render(fmt.Sprintf("✗ %d", stats.Incorrect)),
		timer,
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	q := m.sess.Question()
	b.WriteString(questionStyle.Render(fmt.Sprintf("%d %s %d = ", q.Num1, q.Symbol(), q.Num2)))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.sess.Feedback() {
		b.WriteString(m.viewOutcome())
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	accuracy := achievements.Accuracy(stats.Correct, stats.TotalQuestions)
	footer := fmt.Sprintf("streak %d · accuracy %d%% · p pause · esc end", stats.CurrentStreak, accuracy)
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}

func (m *Model) viewOutcome() string {
	out := m.sess.Outcome()
	var lines []string
	switch {
	case out.Correct:
		lines = append(lines, correctStyle.Render("Correct!"))
	case out.TimedOut:
		lines = append(lines, wrongStyle.Render(fmt.Sprintf("Time's up! The answer was %d", out.Expected)))
	default:
		lines = append(lines, wrongStyle.Render(fmt.Sprintf("Incorrect. The answer was %d", out.Expected)))
	}
	for _, id := range out.Unlocked {
		if a, ok := achievements.Lookup(id); ok {
			lines = append(lines, unlockStyle.Render(fmt.Sprintf("Achievement unlocked! %s %s", a.Icon, a.Title)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewPaused() string {
	return titleStyle.Render("Paused") + "\n\n" +
		mutedStyle.Render("p resume · ctrl+c quit (the session is saved and resumes next time)")
}

func (m *Model) viewResults() string {
	stats := m.sess.Stats()
	accuracy := achievements.Accuracy(stats.Correct, stats.TotalQuestions)

	var b strings.Builder
	title := "Game Complete!"
	if m.sess.Daily() {
		title = "Daily Challenge Complete!"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(resultMessage(accuracy))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		correctStyle.Render(fmt.Sprintf("correct %d", stats.Correct)),
		wrongStyle.Render(fmt.Sprintf("incorrect %d", stats.Incorrect)),
		titleStyle.Render(fmt.Sprintf("accuracy %d%%", accuracy)),
	))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("best streak %d · %d questions", stats.BestStreak, stats.TotalQuestions)))
	b.WriteString("\n")

	// A failed save loses progress, not the session summary.
	if m.finalizeErr != nil {
		b.WriteString("\n")
		b.WriteString(wrongStyle.Render(fmt.Sprintf("Progress not saved: %v", m.finalizeErr)))
		b.WriteString("\n")
	}

	if len(m.result.PersonalBests) > 0 {
		b.WriteString("\n")
		b.WriteString(bestStyle.Render("NEW PERSONAL BEST! " + strings.Join(m.result.PersonalBests, " & ")))
		b.WriteString("\n")
	}

	if len(m.result.NewAchievements) > 0 {
		b.WriteString("\n")
		b.WriteString(unlockStyle.Render("New achievements"))
		b.WriteString("\n")
		for _, id := range m.result.NewAchievements {
			if a, ok := achievements.Lookup(id); ok {
				b.WriteString(fmt.Sprintf("%s %s — %s\n", a.Icon, a.Title, a.Description))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("press q to exit"))
	return b.String()
}

func resultMessage(accuracy int) string {
	switch {
	case accuracy >= 90:
		return correctStyle.Render("Outstanding!")
	case accuracy >= 75:
		return correctStyle.Render("Great job!")
	case accuracy >= 50:
		return timerStyle.Render("Good effort!")
	default:
		return mutedStyle.Render("Keep practicing!")
	}
}
