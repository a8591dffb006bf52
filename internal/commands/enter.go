package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/vaga/internal/parser"
	"github.com/balkashynov/vaga/internal/tui"
)

var enterCmd = &cobra.Command{
	Use:   "enter [plate]",
	Short: "Register a vehicle entry",
	Long: `Register a vehicle entry. With no arguments an interactive form opens;
with a plate the entry is registered directly.

Examples:
  vaga enter                 # interactive form
  vaga enter ABC1D23         # entry now, at the configured hourly rate
  vaga enter ABC1D23 --at "14:30" --rate 12.50`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			deps := tui.Deps{
				Sessions: a.sessions,
				Gateway:  a.gateway,
				Cfg:      a.cfg.LotConfig(),
				Refresh:  time.Duration(a.cfg.RefreshSeconds) * time.Second,
				Log:      a.log,
			}
			if err := tui.RunEntry(deps); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		plate, err := parser.NormalizePlate(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		at, _ := cmd.Flags().GetString("at")
		entry, err := parser.ParseInstant(at)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		rate := a.cfg.Lot.HourlyRate
		if raw, _ := cmd.Flags().GetString("rate"); raw != "" {
			rate, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				fmt.Printf("Error: invalid rate '%s'\n", raw)
				return
			}
		}

		session, err := a.sessions.RegisterEntry(context.Background(), plate, entry, rate)
		if err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}

		fmt.Printf("🅿️  Entry registered: stay #%d for %s\n", session.ID, plate)
		fmt.Printf("Entered at %s, R$ %.2f/hour\n", parser.FormatInstant(entry), rate)
	}),
}

func init() {
	enterCmd.Flags().String("at", "", "Entry date/time (HH:MM, yyyy-mm-dd HH:MM; default now)")
	enterCmd.Flags().String("rate", "", "Hourly rate for this stay (default: configured lot rate)")
}
