package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the lot API",
	Long:  "Exchange operator credentials for a bearer token. The token is kept locally until logout or until the server rejects it.",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			fmt.Print("E-mail: ")
			line, _ := reader.ReadString('\n')
			email = strings.TrimSpace(line)
		}
		if password == "" {
			fmt.Print("Password: ")
			line, _ := reader.ReadString('\n')
			password = strings.TrimSpace(line)
		}

		token, err := a.client.Login(context.Background(), email, password)
		if err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}
		if err := a.gateway.SetToken(token); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		cred := a.gateway.Current()
		fmt.Printf("Logged in as %s (operator #%d)\n", email, cred.UserID)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored credential",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := a.gateway.Invalidate(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("Logged out.")
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in operator and check the token with the server",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		cred := a.gateway.Current()
		if cred == nil {
			fmt.Println("Not logged in.")
			return
		}

		valid, err := a.client.ValidateToken(context.Background(), cred.Token)
		if err != nil {
			fmt.Printf("Operator #%d (could not validate with server: %s)\n", cred.UserID, friendly(err))
			return
		}
		if !valid {
			// Server says the token is dead; drop it.
			_ = a.gateway.Invalidate()
			fmt.Println("Token expired. Run 'vaga login' again.")
			return
		}
		fmt.Printf("Operator #%d, token valid\n", cred.UserID)
	}),
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "Operator e-mail")
	loginCmd.Flags().StringP("password", "p", "", "Operator password (prompted if omitted)")
}
