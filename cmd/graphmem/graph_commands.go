package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"graphmem/graph"
)

func newIndicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "Create graph indices (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *graph.Store) error {
				if err := store.BuildIndices(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Graph indices ensured")
				return nil
			})
		},
	}
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all graph data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("refusing to wipe the graph without --force")
			}
			return ctx.withStore(cmd.Context(), func(store *graph.Store) error {
				if err := store.ClearAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All graph data deleted")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the destructive wipe")
	return cmd
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var before string
	var count int

	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "List recent episodes, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			referenceTime := time.Now().UTC()
			if before != "" {
				t, err := time.Parse(time.RFC3339, before)
				if err != nil {
					return fmt.Errorf("invalid --before value %q: %w", before, err)
				}
				referenceTime = t
			}

			return ctx.withStore(cmd.Context(), func(store *graph.Store) error {
				episodes, err := store.RetrieveRecentEpisodes(cmd.Context(), referenceTime, count)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(episodes)
			})
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "reference time (RFC3339, default now)")
	cmd.Flags().IntVar(&count, "count", graph.DefaultEpisodeWindow, "maximum number of episodes")
	return cmd
}
