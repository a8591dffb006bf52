package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/vaga/internal/api"
	"github.com/balkashynov/vaga/internal/auth"
	"github.com/balkashynov/vaga/internal/config"
	"github.com/balkashynov/vaga/internal/logger"
	"github.com/balkashynov/vaga/internal/repo"
	"github.com/balkashynov/vaga/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "vaga",
	Short: "Terminal front-of-house for a parking lot",
	Long: `vaga is the operator's terminal for a parking lot: see today's stays and
free slots, register entries and exits with ceiling-hour billing, and manage
the vehicle registry - all against the remote lot API.`,
	Run: func(cmd *cobra.Command, args []string) {
		boardCmd.Run(cmd, args)
	},
}

// app wires the whole stack for one command invocation.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	store    *store.Store
	gateway  *auth.Gateway
	client   *api.Client
	sessions *repo.Sessions
}

func newApp() (*app, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate vaga directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, filepath.Join(dir, "vaga.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	st, err := store.Open(filepath.Join(dir, "vaga.db"))
	if err != nil {
		return nil, err
	}

	gateway, err := auth.NewGateway(st, log)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIURL, gateway.Token, log)
	sessions := repo.New(client, cfg.LotConfig(), gateway, st, log)

	return &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		gateway:  gateway,
		client:   client,
		sessions: sessions,
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	_ = a.store.Close()
}

// withApp wraps a command function to bootstrap the stack first.
func withApp(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.close()
		fn(a, cmd, args)
	}
}

// friendly turns a repository failure into the short message operators
// see.
func friendly(err error) string {
	return api.Describe(err)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vaga %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(enterCmd)
	rootCmd.AddCommand(exitCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(vehiclesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(versionCmd)
}
