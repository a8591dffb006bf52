package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/vaga/internal/api"
	"github.com/balkashynov/vaga/internal/lot"
	"github.com/balkashynov/vaga/internal/models"
	"github.com/balkashynov/vaga/internal/parser"
)

const (
	exitFieldAt = iota
	exitFieldAmount
	exitFieldCount
)

// ExitModel closes one open stay: live billing preview while the
// operator confirms the exit time and, optionally, an adjusted amount.
type ExitModel struct {
	deps    Deps
	session models.Session
	width   int
	height  int

	inputs  []textinput.Model
	focused int

	submitting bool
	errMsg     string

	cancelled     bool
	completed     bool
	chargedAmount float64
}

// exitClockMsg drives the live preview.
type exitClockMsg struct{}

// exitDoneMsg reports the result of the close call.
type exitDoneMsg struct {
	charged float64
	err     error
}

// NewExitModel creates the exit screen for one open stay.
func NewExitModel(deps Deps, session models.Session) ExitModel {
	inputs := make([]textinput.Model, exitFieldCount)

	at := textinput.New()
	at.Placeholder = "now"
	at.CharLimit = 20
	at.Width = 24
	at.Focus()
	inputs[exitFieldAt] = at

	amount := textinput.New()
	amount.Placeholder = "computed"
	amount.CharLimit = 12
	amount.Width = 24
	inputs[exitFieldAmount] = amount

	return ExitModel{deps: deps, session: session, inputs: inputs}
}

func exitClockTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return exitClockMsg{}
	})
}

func (m ExitModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, exitClockTick())
}

// previewExit resolves what the operator typed so far, falling back to
// the running clock and the computed amount.
func (m ExitModel) previewExit() (exit time.Time, amount float64, err error) {
	exit, err = parser.ParseInstant(m.inputs[exitFieldAt].Value())
	if err != nil {
		return time.Time{}, 0, err
	}
	amount = lot.AmountDue(m.session.EntryAt, exit, m.session.HourlyRate)
	if raw := strings.TrimSpace(m.inputs[exitFieldAmount].Value()); raw != "" {
		amount, err = strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			return time.Time{}, 0, fmt.Errorf("invalid amount %q", raw)
		}
	}
	return exit, amount, nil
}

func (m ExitModel) submitCmd() tea.Cmd {
	sessions := m.deps.Sessions
	id := m.session.ID
	exit, amount, err := m.previewExit()

	return func() tea.Msg {
		if err != nil {
			return exitDoneMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := sessions.RegisterExit(ctx, id, exit, amount); err != nil {
			return exitDoneMsg{err: err}
		}
		return exitDoneMsg{charged: amount}
	}
}

// Update handles messages
func (m ExitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case exitClockMsg:
		return m, exitClockTick()

	case exitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = api.Describe(msg.err)
			return m, nil
		}
		m.completed = true
		m.chargedAmount = msg.charged
		return m, tea.Quit

	case tea.KeyMsg:
		if m.submitting {
			if msg.String() == "ctrl+c" {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "down", "up", "shift+tab":
			m.focused = (m.focused + 1) % exitFieldCount
			var cmds []tea.Cmd
			for i := range m.inputs {
				if i == m.focused {
					cmds = append(cmds, m.inputs[i].Focus())
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, tea.Batch(cmds...)

		case "enter":
			m.submitting = true
			m.errMsg = ""
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// View renders the exit screen
func (m ExitModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	s := m.session
	plate := s.Plate
	if s.Vehicle == nil {
		plate = "DELETED"
	}

	var b strings.Builder
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render(fmt.Sprintf("🚪  Close stay #%d · %s", s.ID, plate))
	b.WriteString(title)
	b.WriteString("\n\n")

	secondary := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(secondary.Render(fmt.Sprintf("Entered %s · R$ %.2f/h",
		s.EntryAt.Local().Format("02/01/2006 15:04"), s.HourlyRate)))
	b.WriteString("\n\n")

	// Live preview from what the operator typed so far.
	if exit, amount, err := m.previewExit(); err == nil {
		hours := lot.BilledHours(s.EntryAt, exit)
		preview := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Bold(true).
			Render(fmt.Sprintf("%d billed hour(s) · R$ %.2f", hours, amount))
		b.WriteString(preview)
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(err.Error()))
	}
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	focusedLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	label := func(field int, text string) string {
		if field == m.focused {
			return focusedLabel.Render("> " + text)
		}
		return labelStyle.Render("  " + text)
	}

	b.WriteString(label(exitFieldAt, "Exit time (blank = now)"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[exitFieldAt].View())
	b.WriteString("\n\n")
	b.WriteString(label(exitFieldAmount, "Charged amount (blank = computed)"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[exitFieldAmount].View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("Closing..."))
		b.WriteString("\n")
	} else if m.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("✗ " + m.errMsg))
		b.WriteString("\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 3).
		Render(b.String())

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("tab switch field · enter close stay · esc cancel")

	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
	return content + "\n" + help
}
