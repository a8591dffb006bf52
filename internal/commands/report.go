package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/vaga/internal/lot"
	"github.com/balkashynov/vaga/internal/parser"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Revenue report over closed stays",
	Long: `List every closed stay with its computed ceiling-hour amount next to
the amount actually charged (the operator may have overridden it at close
time), and the total collected.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sessions, err := a.client.AllSessions(context.Background())
		if err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}

		fmt.Printf("%-5s %-10s %-18s %-18s %-9s %-11s %s\n",
			"ID", "PLATE", "ENTRY", "EXIT", "RATE", "COMPUTED", "CHARGED")
		fmt.Println(strings.Repeat("-", 88))

		var total float64
		var closed int
		for _, s := range sessions {
			if s.Open() {
				continue
			}
			closed++

			plate := s.Plate
			if plate == "" {
				plate = "DELETED"
			}
			computed := lot.AmountDue(s.EntryAt, *s.ExitAt, s.HourlyRate)
			charged := "-"
			if s.ChargedTotal != nil {
				charged = fmt.Sprintf("R$ %.2f", *s.ChargedTotal)
				total += *s.ChargedTotal
			}

			fmt.Printf("%-5d %-10s %-18s %-18s R$ %-6.2f R$ %-8.2f %s\n",
				s.ID, plate,
				parser.FormatInstant(s.EntryAt), parser.FormatInstant(*s.ExitAt),
				s.HourlyRate, computed, charged)
		}

		if closed == 0 {
			fmt.Println("No closed stays.")
			return
		}
		fmt.Println(strings.Repeat("-", 88))
		fmt.Printf("Total collected: R$ %.2f across %d stay(s)\n", total, closed)
	}),
}
