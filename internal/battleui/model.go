// Package battleui provides the Bubble Tea battle interface.
package battleui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehanandbaba/arithmetics-arena/internal/battle"
)

const healthBarWidth = 30

type strikeMsg struct {
	round int
}

type clearFeedbackMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	playerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	opponentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hitStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	missStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea battle UI.
type Model struct {
	battle *battle.Battle
	input  textinput.Model

	// round guards against strike timers armed for earlier questions.
	round    int
	feedback string

	width  int
	height int
}

// NewModel constructs a battle model around a started battle.
func NewModel(b *battle.Battle) *Model {
	input := textinput.New()
	input.Placeholder = "?"
	input.CharLimit = 6
	input.Width = 8
	input.Focus()
	return &Model{
		battle: b,
		input:  input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.strikeCmd())
}

func (m *Model) strikeCmd() tea.Cmd {
	round := m.round
	return tea.Tick(m.battle.OpponentDelay(), func(time.Time) tea.Msg {
		return strikeMsg{round: round}
	})
}

func clearFeedbackCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clearFeedbackMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case strikeMsg:
		return m.handleStrike(msg)
	case clearFeedbackMsg:
		m.feedback = ""
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleStrike(msg strikeMsg) (tea.Model, tea.Cmd) {
	if m.battle.Over() || msg.round != m.round {
		return m, nil
	}
	m.battle.OpponentStrike()
	if m.battle.Over() {
		return m, nil
	}
	m.feedback = missStyle.Render(fmt.Sprintf("%s answered first! -%d HP", m.battle.Opponent().Name, battle.Damage))
	m.nextRound()
	return m, tea.Batch(m.strikeCmd(), clearFeedbackCmd())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.battle.Over() {
		switch msg.String() {
		case "q", "enter", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}

	if msg.Type == tea.KeyEnter {
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		if m.battle.Submit(m.input.Value()) {
			m.feedback = hitStyle.Render(fmt.Sprintf("Hit! %s takes %d damage", m.battle.Opponent().Name, battle.Damage))
			if m.battle.Over() {
				m.input.Reset()
				return m, nil
			}
			m.nextRound()
			m.input.Reset()
			return m, tea.Batch(m.strikeCmd(), clearFeedbackCmd())
		}
		m.feedback = missStyle.Render("Wrong! Try again")
		m.input.Reset()
		return m, clearFeedbackCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) nextRound() {
	m.round++
	m.battle.NextRound()
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.battle.Over() {
		content = m.viewResult()
	} else {
		content = m.viewRound()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewRound() string {
	var b strings.Builder

	player := m.battle.Player()
	opponent := m.battle.Opponent()
	b.WriteString(playerStyle.Render(player.Name) + "\n")
	b.WriteString(healthBar(player.Health) + "\n\n")
	b.WriteString(opponentStyle.Render(opponent.Name) + "\n")
	b.WriteString(healthBar(opponent.Health) + "\n\n")

	q := m.battle.Question()
	b.WriteString(questionStyle.Render(q.Display()+" = "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.feedback != "" {
		b.WriteString(m.feedback)
	} else {
		b.WriteString(" ")
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("answer before your opponent · esc quit"))
	return b.String()
}

func (m *Model) viewResult() string {
	var headline string
	if m.battle.Winner() == battle.WinnerPlayer {
		headline = hitStyle.Render("Victory! 🏆")
	} else {
		headline = missStyle.Render("Defeated!")
	}
	player := m.battle.Player()
	opponent := m.battle.Opponent()
	return titleStyle.Render("Battle Over") + "\n\n" +
		headline + "\n\n" +
		fmt.Sprintf("%s %d HP · %s %d HP\n\n",
			playerStyle.Render(player.Name), player.Health,
			opponentStyle.Render(opponent.Name), opponent.Health) +
		footerStyle.Render("press q to exit")
}

func healthBar(health int) string {
	filled := health * healthBarWidth / battle.MaxHealth
	if filled < 0 {
		filled = 0
	}
	if filled > healthBarWidth {
		filled = healthBarWidth
	}
	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", healthBarWidth-filled))
	return fmt.Sprintf("%s %d/%d", bar, health, battle.MaxHealth)
}
