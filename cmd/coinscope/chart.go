package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coinScope/internal/chart"
	"coinScope/internal/model"
	"coinScope/internal/storage"
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <id>",
		Short: "Print or export the price, volume and market cap series of a coin",
		Args:  cobra.ExactArgs(1),
		RunE:  runChart,
	}

	cmd.Flags().Int("days", 7, "chart range in days (presets: 7, 30, 90)")
	cmd.Flags().String("out", "", "optional JSONL path to append chart points to")

	return cmd
}

func runChart(cmd *cobra.Command, args []string) error {
	id := model.AssetID(args[0])
	out, _ := cmd.Flags().GetString("out")

	return withSession(cmd, func(ctx context.Context, s *session) error {
		loader := chart.NewLoader(s.client, s.logger)
		defer loader.Close()

		points, err := loader.Load(ctx, id, s.cfg.Currency, s.cfg.Days).Wait(ctx)
		if err != nil {
			return fmt.Errorf("load chart %s: %w", id, err)
		}

		if out != "" {
			if err := storage.NewJsonlStorage(out).PutChartBatch(points); err != nil {
				return err
			}
			s.logger.Info("chart exported",
				zap.String("id", id.String()),
				zap.Int("days", s.cfg.Days),
				zap.String("out", out),
				zap.Int("points", len(points)),
			)
			return nil
		}

		return renderChart(cmd.OutOrStdout(), points, s.cfg.Currency)
	})
}
