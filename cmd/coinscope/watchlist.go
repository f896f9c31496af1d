package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"coinScope/internal/model"
	"coinScope/internal/watchlist"
)

func newWatchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the watchlist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print watched coin ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(_ context.Context, s *session) error {
				w := cmd.OutOrStdout()
				for _, id := range s.app.Watchlist().IDs() {
					fmt.Fprintln(w, id)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Add a coin to the watchlist, or remove it if already watched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.AssetID(args[0])
			if !watchlist.ValidID(id) {
				return fmt.Errorf("coin id is required")
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if s.app.Watchlist().Toggle(ctx, id) {
					fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a coin from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.AssetID(args[0])
			return withSession(cmd, func(ctx context.Context, s *session) error {
				s.app.Watchlist().Remove(ctx, id)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Load and print details for every watched coin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				rows, err := s.app.WatchlistView(ctx)
				if err != nil {
					return err
				}
				return renderWatchlist(cmd.OutOrStdout(), rows, s.cfg.Currency)
			})
		},
	})

	return cmd
}
