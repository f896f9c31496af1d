package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coinScope/internal/dashboard"
	"coinScope/internal/filter"
	"coinScope/internal/model"
	"coinScope/internal/storage"
)

func newMarketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markets",
		Short: "List market coins with optional search and filters",
		Args:  cobra.NoArgs,
		RunE:  runMarkets,
	}

	cmd.Flags().Int("page", 1, "markets page")
	cmd.Flags().Int("per-page", 100, "coins per page (1-250)")
	cmd.Flags().String("query", "", "case-insensitive name or symbol search")
	cmd.Flags().String("min-price", "", "minimum current price")
	cmd.Flags().String("max-price", "", "maximum current price")
	cmd.Flags().String("min-volume", "", "minimum 24h volume")
	cmd.Flags().Bool("only-gainers", false, "only coins with a positive 24h change")
	cmd.Flags().Bool("watched", false, "only coins in the watchlist")
	cmd.Flags().String("out", "", "optional JSONL path to append the shown coins to")

	return cmd
}

func runMarkets(cmd *cobra.Command, _ []string) error {
	query, _ := cmd.Flags().GetString("query")
	minPrice, _ := cmd.Flags().GetString("min-price")
	maxPrice, _ := cmd.Flags().GetString("max-price")
	minVolume, _ := cmd.Flags().GetString("min-volume")
	onlyGainers, _ := cmd.Flags().GetBool("only-gainers")
	watchedOnly, _ := cmd.Flags().GetBool("watched")
	out, _ := cmd.Flags().GetString("out")

	criteria, err := filter.ParseCriteria(minPrice, maxPrice, minVolume, onlyGainers)
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		rows, err := s.app.Home(ctx, dashboard.HomeQuery{
			Currency: s.cfg.Currency,
			Page:     s.cfg.Page,
			PerPage:  s.cfg.PerPage,
			Criteria: criteria,
			Query:    query,
		})
		if err != nil {
			return fmt.Errorf("list markets: %w", err)
		}

		if watchedOnly {
			kept := rows[:0]
			for _, row := range rows {
				if row.Watched {
					kept = append(kept, row)
				}
			}
			rows = kept
		}

		if out != "" {
			coins := make([]model.MarketCoin, len(rows))
			for i, row := range rows {
				coins[i] = row.Coin
			}
			if err := storage.NewJsonlStorage(out).PutMarketBatch(coins); err != nil {
				return err
			}
			s.logger.Info("markets exported", zap.String("out", out), zap.Int("coins", len(coins)))
		}

		return renderMarkets(cmd.OutOrStdout(), rows, s.cfg.Currency)
	})
}
