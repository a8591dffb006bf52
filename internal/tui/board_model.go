package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/vaga/internal/api"
	"github.com/balkashynov/vaga/internal/lot"
	"github.com/balkashynov/vaga/internal/models"
)

type nextAction int

const (
	nextNone nextAction = iota
	nextEntry
	nextExit
)

// BoardModel is the dashboard: today's stays as cards, occupancy in
// the footer, polling refresh on a timer.
type BoardModel struct {
	deps   Deps
	width  int
	height int

	sessions  []models.Session
	fetchedAt time.Time
	stale     bool
	selected  int

	refreshing bool
	errMsg     string
	alert      string

	// Delete confirmation modal
	confirming bool

	// Handoff to a follow-up screen after quit
	next       nextAction
	nextStayID int64
}

// boardTickMsg fires on the polling interval.
type boardTickMsg struct{}

// boardRefreshedMsg reports a finished refresh.
type boardRefreshedMsg struct {
	err error
}

// stayDeletedMsg reports a finished delete.
type stayDeletedMsg struct {
	id  int64
	err error
}

// NewBoardModel creates the dashboard model seeded from the cached
// snapshot.
func NewBoardModel(deps Deps) BoardModel {
	m := BoardModel{deps: deps, refreshing: true}
	m.sessions, m.fetchedAt, m.stale = deps.Sessions.Today()
	return m
}

func (m BoardModel) refreshCmd() tea.Cmd {
	sessions := m.deps.Sessions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return boardRefreshedMsg{err: sessions.Refresh(ctx)}
	}
}

func (m BoardModel) deleteCmd(id int64) tea.Cmd {
	sessions := m.deps.Sessions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return stayDeletedMsg{id: id, err: sessions.Delete(ctx, id)}
	}
}

func (m BoardModel) tickCmd() tea.Cmd {
	interval := m.deps.Refresh
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return boardTickMsg{}
	})
}

// Init starts the first refresh and the polling timer.
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd())
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardTickMsg:
		// Poll-driven refresh; never infer staleness implicitly.
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())

	case boardRefreshedMsg:
		m.refreshing = false
		if msg.err != nil {
			m.errMsg = api.Describe(msg.err)
		} else {
			m.errMsg = ""
		}
		m.sessions, m.fetchedAt, m.stale = m.deps.Sessions.Today()
		if m.selected >= len(m.sessions) {
			m.selected = len(m.sessions) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil

	case stayDeletedMsg:
		if msg.err != nil {
			m.errMsg = api.Describe(msg.err)
		} else {
			m.alert = fmt.Sprintf("Stay #%d deleted", msg.id)
			m.errMsg = ""
		}
		m.sessions, m.fetchedAt, m.stale = m.deps.Sessions.Today()
		if m.selected >= len(m.sessions) && m.selected > 0 {
			m.selected = len(m.sessions) - 1
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "y", "Y", "enter":
				m.confirming = false
				if s, ok := m.selectedSession(); ok {
					return m, m.deleteCmd(s.ID)
				}
				return m, nil
			case "n", "N", "esc":
				m.confirming = false
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.next = nextNone
			return m, tea.Quit

		case "r":
			m.refreshing = true
			m.alert = ""
			return m, m.refreshCmd()

		case "left", "h":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "right", "l":
			if m.selected < len(m.sessions)-1 {
				m.selected++
			}
			return m, nil

		case "up", "k":
			if m.selected-m.cardsPerRow() >= 0 {
				m.selected -= m.cardsPerRow()
			}
			return m, nil

		case "down", "j":
			if m.selected+m.cardsPerRow() < len(m.sessions) {
				m.selected += m.cardsPerRow()
			}
			return m, nil

		case "n":
			m.next = nextEntry
			return m, tea.Quit

		case "x":
			s, ok := m.selectedSession()
			if !ok {
				return m, nil
			}
			if !s.Open() {
				m.errMsg = fmt.Sprintf("Stay #%d is already closed", s.ID)
				return m, nil
			}
			m.next = nextExit
			m.nextStayID = s.ID
			return m, tea.Quit

		case "d":
			if _, ok := m.selectedSession(); ok {
				m.confirming = true
				m.alert = ""
			}
			return m, nil
		}
	}

	return m, nil
}

func (m BoardModel) selectedSession() (models.Session, bool) {
	if m.selected < 0 || m.selected >= len(m.sessions) {
		return models.Session{}, false
	}
	return m.sessions[m.selected], true
}

const cardWidth = 26

func (m BoardModel) cardsPerRow() int {
	per := m.width / (cardWidth + 2)
	if per < 1 {
		per = 1
	}
	return per
}

// View renders the dashboard
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.confirming {
		return m.renderConfirmModal()
	}

	header := m.renderHeader()
	cards := m.renderCards()
	footer := m.renderFooter()
	helpBar := m.renderHelpBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		cards,
		"",
		footer,
		helpBar,
	)
}

func (m BoardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	title := titleStyle.Render("🅿  vaga · today's stays")

	var status string
	switch {
	case m.refreshing:
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("refreshing...")
	case m.stale:
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).
			Render(fmt.Sprintf("STALE · last fetch %s", m.fetchedAt.Format("15:04:05")))
	case !m.fetchedAt.IsZero():
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(fmt.Sprintf("fetched %s", m.fetchedAt.Format("15:04:05")))
	}

	line := title
	if status != "" {
		line += "  " + status
	}
	if m.deps.Gateway.Current() == nil {
		line += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("(read-only: not logged in)")
	}

	if m.errMsg != "" {
		errLine := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("✗ " + m.errMsg)
		return line + "\n" + errLine
	}
	if m.alert != "" {
		alertLine := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("✓ " + m.alert)
		return line + "\n" + alertLine
	}
	return line
}

func (m BoardModel) renderCards() string {
	if len(m.sessions) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("No stays today. Press n to register an entry.")
	}

	perRow := m.cardsPerRow()
	var rows []string
	for start := 0; start < len(m.sessions); start += perRow {
		end := start + perRow
		if end > len(m.sessions) {
			end = len(m.sessions)
		}
		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(m.sessions[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m BoardModel) renderCard(s models.Session, selected bool) string {
	var b strings.Builder

	plate := s.Plate
	icon := "❓"
	switch s.Category() {
	case models.CategoryCar:
		icon = "🚗"
	case models.CategoryMoto:
		icon = "🏍"
	}
	if s.Vehicle == nil {
		plate = "DELETED"
	}

	plateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	if s.Vehicle == nil {
		plateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Bold(true)
	}
	b.WriteString(fmt.Sprintf("%s  %s  #%d", icon, plateStyle.Render(plate), s.ID))
	b.WriteString("\n")

	secondary := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(secondary.Render(fmt.Sprintf("in  %s", s.EntryAt.Local().Format("15:04"))))
	b.WriteString("\n")
	b.WriteString(secondary.Render(fmt.Sprintf("R$ %.2f/h", s.HourlyRate)))
	b.WriteString("\n")

	if s.Open() {
		due := lot.AmountDue(s.EntryAt, time.Now(), s.HourlyRate)
		openStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		b.WriteString(openStyle.Render(fmt.Sprintf("OPEN · R$ %.2f so far", due)))
	} else {
		charged := "-"
		if s.ChargedTotal != nil {
			charged = fmt.Sprintf("R$ %.2f", *s.ChargedTotal)
		}
		closedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		b.WriteString(closedStyle.Render(fmt.Sprintf("closed · %s", charged)))
	}

	borderColor := ColorBorder
	if selected {
		borderColor = ColorAccentMain
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(cardWidth).
		Padding(0, 1).
		Render(b.String())
}

func (m BoardModel) renderFooter() string {
	occ := lot.Count(m.sessions, m.deps.Policy)
	freeCars, freeMotos := occ.Remaining(m.deps.Cfg)

	carStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	if freeCars <= 0 {
		carStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
	}
	motoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	if freeMotos <= 0 {
		motoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
	}

	footer := fmt.Sprintf("Car slots: %s  ·  Moto slots: %s",
		carStyle.Render(fmt.Sprintf("%d/%d free", freeCars, m.deps.Cfg.CarCapacity)),
		motoStyle.Render(fmt.Sprintf("%d/%d free", freeMotos, m.deps.Cfg.MotoCapacity)))

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(m.width).
		Render(footer)
}

func (m BoardModel) renderConfirmModal() string {
	s, _ := m.selectedSession()

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Delete stay #%d?", s.ID)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
		Render("This removes the stay entirely, as a correction.\nIt cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("y delete · n/esc keep"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorError)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderHelpBar renders the help bar at the bottom
func (m BoardModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "←/→/↑/↓ nav · n entry · x exit · d delete · r refresh · q quit"
	return helpStyle.Render(helpText)
}
