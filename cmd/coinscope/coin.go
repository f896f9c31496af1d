package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coinScope/internal/model"
)

func newCoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coin <id>",
		Short: "Show one coin with its price chart summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runCoin,
	}

	cmd.Flags().Int("days", 7, "chart range in days (presets: 7, 30, 90)")

	return cmd
}

func runCoin(cmd *cobra.Command, args []string) error {
	id := model.AssetID(strings.TrimSpace(args[0]))
	if id == "" {
		return fmt.Errorf("coin id is required")
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		page, err := s.app.CoinView(ctx, id, s.cfg.Currency, s.cfg.Days)
		if err != nil {
			return err
		}
		return renderCoin(cmd.OutOrStdout(), page, s.cfg.Currency)
	})
}
