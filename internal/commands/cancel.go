package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel [stay-id]",
	Short: "Delete a stay (correction)",
	Long: `Hard-delete a stay in any state, as a correction. Asks for
confirmation unless --yes is given; the repository itself never confirms.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid stay ID '%s'\n", args[0])
			return
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Printf("Delete stay #%d? This cannot be undone. [y/N] ", id)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			answer := strings.ToLower(strings.TrimSpace(line))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return
			}
		}

		if err := a.sessions.Delete(context.Background(), id); err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}
		fmt.Printf("🗑️  Stay #%d deleted\n", id)
	}),
}

func init() {
	cancelCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
