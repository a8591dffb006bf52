package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/vaga/internal/lot"
	"github.com/balkashynov/vaga/internal/parser"
	"github.com/balkashynov/vaga/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Live dashboard of today's stays and free slots",
	Long: `Open the interactive board: today's stays as cards, occupancy per
category in the footer, auto-refreshed on a timer. Use --no-ui for a plain
one-shot listing.

Hotkeys on the board:
  n new entry · x register exit · d delete stay · r refresh · q quit`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		policy := lot.OpenOnly
		if all, _ := cmd.Flags().GetBool("all"); all {
			policy = lot.AllToday
		}

		if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
			printBoard(a, policy)
			return
		}

		deps := tui.Deps{
			Sessions: a.sessions,
			Gateway:  a.gateway,
			Cfg:      a.cfg.LotConfig(),
			Policy:   policy,
			Refresh:  time.Duration(a.cfg.RefreshSeconds) * time.Second,
			Log:      a.log,
		}
		if err := tui.RunBoard(deps); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func printBoard(a *app, policy lot.Policy) {
	if err := a.sessions.Refresh(context.Background()); err != nil {
		fmt.Printf("Error: %s\n", friendly(err))
		return
	}

	sessions, fetchedAt, _ := a.sessions.Today()
	if len(sessions) == 0 {
		fmt.Println("No stays today.")
	} else {
		fmt.Printf("%-5s %-10s %-6s %-18s %-10s %s\n", "ID", "PLATE", "TYPE", "ENTRY", "RATE", "STATUS")
		fmt.Println(strings.Repeat("-", 66))
		for _, s := range sessions {
			plate := s.Plate
			category := string(s.Category())
			if s.Vehicle == nil {
				plate = "DELETED"
				category = "-"
			}
			status := "open"
			if !s.Open() {
				status = "closed"
				if s.ChargedTotal != nil {
					status = fmt.Sprintf("closed R$ %.2f", *s.ChargedTotal)
				}
			}
			fmt.Printf("%-5d %-10s %-6s %-18s R$ %-7.2f %s\n",
				s.ID, plate, category, parser.FormatInstant(s.EntryAt), s.HourlyRate, status)
		}
	}

	cfg := a.sessions.Config()
	occ := lot.Count(sessions, policy)
	freeCars, freeMotos := occ.Remaining(cfg)
	fmt.Printf("\nCar slots: %d/%d free · Moto slots: %d/%d free (as of %s)\n",
		freeCars, cfg.CarCapacity, freeMotos, cfg.MotoCapacity, fetchedAt.Format("15:04:05"))
}

func init() {
	boardCmd.Flags().Bool("no-ui", false, "Print a one-shot listing instead of the interactive board")
	boardCmd.Flags().Bool("all", false, "Count every stay from today as occupying a slot, closed ones included")
}
