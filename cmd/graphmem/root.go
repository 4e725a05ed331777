package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"graphmem/config"
	"graphmem/graph"
	"graphmem/logger"
)

// commandContext carries the settings and logger shared by subcommands.
// Settings are loaded and validated once, before any command runs.
type commandContext struct {
	configPath string
	pretty     bool

	settings *config.Settings
	log      zerolog.Logger
}

func (c *commandContext) setup() error {
	// Default to file logging so command output on stdout stays clean.
	logFile := "graphmem.log"
	if c.pretty {
		logFile = ""
	}
	log, err := logger.InitWithOptions(logFile, c.pretty)
	if err != nil {
		return err
	}
	c.log = log

	settings, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.settings = settings
	return nil
}

// withStore opens the graph store, verifies connectivity, and closes it
// after fn returns.
func (c *commandContext) withStore(ctx context.Context, fn func(*graph.Store) error) error {
	store, err := graph.NewStore(c.settings.Neo4j.URI, c.settings.Neo4j.User, c.settings.Neo4j.Password, c.log)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close(ctx)
	}()

	if err := store.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("graph database unreachable: %w", err)
	}
	return fn(store)
}

func newRootCommand() *cobra.Command {
	cmdCtx := &commandContext{}

	root := &cobra.Command{
		Use:          "graphmem",
		Short:        "Completion client and graph maintenance for the episodic knowledge store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.setup()
		},
	}

	root.PersistentFlags().StringVar(&cmdCtx.configPath, "config", "", "path to yaml config file (optional, env vars override)")
	root.PersistentFlags().BoolVar(&cmdCtx.pretty, "pretty", false, "human-readable log output")

	root.AddCommand(
		newIndicesCommand(cmdCtx),
		newClearCommand(cmdCtx),
		newEpisodesCommand(cmdCtx),
		newCompleteCommand(cmdCtx),
	)

	return root
}
