package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/balkashynov/vaga/internal/auth"
	"github.com/balkashynov/vaga/internal/lot"
	"github.com/balkashynov/vaga/internal/models"
	"github.com/balkashynov/vaga/internal/repo"
)

// Deps is everything the screens need from the surrounding app.
type Deps struct {
	Sessions *repo.Sessions
	Gateway  *auth.Gateway
	Cfg      models.LotConfig
	Policy   lot.Policy
	Refresh  time.Duration
	Log      *zap.Logger
}

// RunBoard runs the dashboard. Entry and exit are separate screens:
// the board hands off, the follow-up screen runs, and the board comes
// back with a fresh snapshot.
func RunBoard(deps Deps) error {
	for {
		p := tea.NewProgram(NewBoardModel(deps), tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		board, ok := finalModel.(BoardModel)
		if !ok {
			return nil
		}
		switch board.next {
		case nextEntry:
			if err := RunEntry(deps); err != nil {
				return err
			}
		case nextExit:
			if err := RunExit(deps, board.nextStayID); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// RunEntry runs the interactive entry form.
func RunEntry(deps Deps) error {
	p := tea.NewProgram(NewEntryModel(deps), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after the TUI closes
	if m, ok := finalModel.(EntryModel); ok {
		if m.cancelled {
			fmt.Println("❌ Entry cancelled.")
		} else if m.completed {
			fmt.Printf("🅿️  Entry registered: stay #%d for %s\n", m.createdID, m.plate)
		}
	}
	return nil
}

// RunExit runs the interactive exit screen with the live billing
// preview for one open stay.
func RunExit(deps Deps, stayID int64) error {
	session, ok := deps.Sessions.Get(stayID)
	if !ok {
		return fmt.Errorf("stay #%d not in today's feed", stayID)
	}
	if !session.Open() {
		return fmt.Errorf("stay #%d is already closed", stayID)
	}

	p := tea.NewProgram(NewExitModel(deps, session), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(ExitModel); ok {
		if m.cancelled {
			fmt.Println("❌ Exit cancelled, stay still open.")
		} else if m.completed {
			fmt.Printf("✅ Stay #%d closed, charged R$ %.2f\n", session.ID, m.chargedAmount)
		}
	}
	return nil
}
