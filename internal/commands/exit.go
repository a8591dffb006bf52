package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/vaga/internal/lot"
	"github.com/balkashynov/vaga/internal/parser"
	"github.com/balkashynov/vaga/internal/tui"
)

var exitCmd = &cobra.Command{
	Use:   "exit [stay-id]",
	Short: "Register a vehicle exit and charge the stay",
	Long: `Close an open stay. The amount is computed with ceiling-hour billing
(any started hour bills in full) and can be overridden with --amount.
By default an interactive screen opens with a live preview; --no-ui closes
directly.

Examples:
  vaga exit 42                          # interactive, live preview
  vaga exit 42 --no-ui                  # close now at the computed amount
  vaga exit 42 --at "18:05" --amount 25 --no-ui`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid stay ID '%s'\n", args[0])
			return
		}

		ctx := context.Background()
		if err := a.sessions.Refresh(ctx); err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}
		session, ok := a.sessions.Get(id)
		if !ok {
			fmt.Printf("Error: stay #%d not in today's feed\n", id)
			return
		}
		if !session.Open() {
			fmt.Printf("Error: stay #%d is already closed\n", id)
			return
		}

		if noUI, _ := cmd.Flags().GetBool("no-ui"); !noUI {
			deps := tui.Deps{
				Sessions: a.sessions,
				Gateway:  a.gateway,
				Cfg:      a.cfg.LotConfig(),
				Refresh:  time.Duration(a.cfg.RefreshSeconds) * time.Second,
				Log:      a.log,
			}
			if err := tui.RunExit(deps, id); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		at, _ := cmd.Flags().GetString("at")
		exit, err := parser.ParseInstant(at)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		amount := lot.AmountDue(session.EntryAt, exit, session.HourlyRate)
		if raw, _ := cmd.Flags().GetString("amount"); raw != "" {
			amount, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				fmt.Printf("Error: invalid amount '%s'\n", raw)
				return
			}
		}

		if err := a.sessions.RegisterExit(ctx, id, exit, amount); err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}

		hours := lot.BilledHours(session.EntryAt, exit)
		fmt.Printf("✅ Stay #%d closed: %d billed hour(s), charged R$ %.2f\n", id, hours, amount)
	}),
}

func init() {
	exitCmd.Flags().String("at", "", "Exit date/time (HH:MM, yyyy-mm-dd HH:MM; default now)")
	exitCmd.Flags().String("amount", "", "Charged amount override (default: computed ceiling-hour amount)")
	exitCmd.Flags().Bool("no-ui", false, "Close directly without the interactive preview")
}
