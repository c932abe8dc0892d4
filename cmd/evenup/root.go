package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/henri123lemoine/evenup/internal/app"
	"github.com/henri123lemoine/evenup/internal/config"
	"github.com/henri123lemoine/evenup/internal/debug"
	"github.com/henri123lemoine/evenup/internal/ledger"
	"github.com/henri123lemoine/evenup/internal/ui"
)

type rootOptions struct {
	configPath string
	debug      bool
	debugLog   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "evenup",
		Short: "Split bills with friends and keep track of who owes whom",
		Long: `evenup keeps a list of friends with a running balance each.
Select a friend to split a bill with them, or add a new one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is $HOME/.config/evenup/config.toml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "write a debug log")
	cmd.Flags().StringVar(&opts.debugLog, "debug-log", "", "debug log path (implies --debug)")

	cmd.AddCommand(newInitCmd(opts))
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func run(opts *rootOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if opts.debug || opts.debugLog != "" {
		path := opts.debugLog
		if path == "" {
			path = debug.DefaultPath()
		}
		if err := debug.Enable(path); err != nil {
			return fmt.Errorf("enabling debug log: %w", err)
		}
		defer debug.Close()
	}

	for _, w := range cfg.Validate() {
		debug.Log("config warning", "warning", w)
	}

	ui.ApplyTheme(cfg.UI.Theme)

	// Bad seeds are skipped, the rest still load
	st, err := ledger.New(cfg.LedgerFriends())
	if err != nil {
		debug.Error("seed friends rejected", err)
	}

	model := app.New(cfg, st)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
