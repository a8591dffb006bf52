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
	"github.com/balkashynov/vaga/internal/parser"
)

const (
	entryFieldPlate = iota
	entryFieldAt
	entryFieldRate
	entryFieldCount
)

// EntryModel is the entry registration form.
type EntryModel struct {
	deps   Deps
	width  int
	height int

	inputs  []textinput.Model
	focused int

	submitting bool
	errMsg     string

	cancelled bool
	completed bool
	createdID int64
	plate     string
}

// entryDoneMsg reports the result of the create call.
type entryDoneMsg struct {
	id    int64
	plate string
	err   error
}

// NewEntryModel creates the entry form with today's defaults filled in.
func NewEntryModel(deps Deps) EntryModel {
	inputs := make([]textinput.Model, entryFieldCount)

	plate := textinput.New()
	plate.Placeholder = "ABC1D23"
	plate.CharLimit = 10
	plate.Width = 24
	plate.Focus()
	inputs[entryFieldPlate] = plate

	at := textinput.New()
	at.Placeholder = "now"
	at.CharLimit = 20
	at.Width = 24
	inputs[entryFieldAt] = at

	rate := textinput.New()
	rate.Placeholder = fmt.Sprintf("%.2f", deps.Cfg.HourlyRate)
	rate.CharLimit = 10
	rate.Width = 24
	inputs[entryFieldRate] = rate

	return EntryModel{deps: deps, inputs: inputs}
}

func (m EntryModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EntryModel) submitCmd() tea.Cmd {
	plateRaw := m.inputs[entryFieldPlate].Value()
	atRaw := m.inputs[entryFieldAt].Value()
	rateRaw := strings.TrimSpace(m.inputs[entryFieldRate].Value())
	sessions := m.deps.Sessions
	defaultRate := m.deps.Cfg.HourlyRate

	return func() tea.Msg {
		plate, err := parser.NormalizePlate(plateRaw)
		if err != nil {
			return entryDoneMsg{err: err}
		}
		at, err := parser.ParseInstant(atRaw)
		if err != nil {
			return entryDoneMsg{err: err}
		}
		rate := defaultRate
		if rateRaw != "" {
			rate, err = strconv.ParseFloat(rateRaw, 64)
			if err != nil || rate <= 0 {
				return entryDoneMsg{err: fmt.Errorf("invalid hourly rate %q", rateRaw)}
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		created, err := sessions.RegisterEntry(ctx, plate, at, rate)
		if err != nil {
			return entryDoneMsg{err: err}
		}
		return entryDoneMsg{id: created.ID, plate: created.Plate}
	}
}

// Update handles messages
func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entryDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = api.Describe(msg.err)
			return m, nil
		}
		m.completed = true
		m.createdID = msg.id
		m.plate = msg.plate
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

		case "tab", "down":
			m.focused = (m.focused + 1) % entryFieldCount
			return m.refocus()

		case "shift+tab", "up":
			m.focused = (m.focused + entryFieldCount - 1) % entryFieldCount
			return m.refocus()

		case "enter":
			if m.focused < entryFieldCount-1 {
				m.focused++
				return m.refocus()
			}
			m.submitting = true
			m.errMsg = ""
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m EntryModel) refocus() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.inputs {
		if i == m.focused {
			cmds = append(cmds, m.inputs[i].Focus())
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, tea.Batch(cmds...)
}

// View renders the entry form
func (m EntryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	focusedLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)

	label := func(field int, text string) string {
		if field == m.focused {
			return focusedLabel.Render("> " + text)
		}
		return labelStyle.Render("  " + text)
	}

	var b strings.Builder
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render("🅿  Register entry")
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(label(entryFieldPlate, "Plate"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[entryFieldPlate].View())
	b.WriteString("\n\n")
	b.WriteString(label(entryFieldAt, "Entry time (blank = now)"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[entryFieldAt].View())
	b.WriteString("\n\n")
	b.WriteString(label(entryFieldRate, fmt.Sprintf("Hourly rate (blank = R$ %.2f)", m.deps.Cfg.HourlyRate)))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[entryFieldRate].View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("Registering..."))
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
		Render("tab next field · enter submit · esc cancel")

	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
	return content + "\n" + help
}
