package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "coinscope",
		Short:        "Crypto price dashboard",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("api-url", "https://api.coingecko.com/api/v3", "market data API base URL")
	flags.String("api-key", "", "market data API key")
	flags.String("currency", "usd", "quote currency code")
	flags.String("store", "file", "watchlist store (file, sqlite, postgres, memory)")
	flags.String("store-path", "./data/coinscope.json", "watchlist store path for file and sqlite stores")
	flags.String("pg-dsn", "", "Postgres DSN for the postgres store")
	flags.Duration("http-timeout", 0, "HTTP client timeout, 0 means none")
	flags.Duration("detail-max-age", 0, "age after which cached coin details are refetched, 0 means never")
	flags.Bool("stale-guard", true, "discard out-of-order detail responses")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newMarketsCmd())
	root.AddCommand(newCoinCmd())
	root.AddCommand(newChartCmd())
	root.AddCommand(newWatchlistCmd())

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func durationField(key string, d time.Duration) zap.Field {
	if d <= 0 {
		return zap.String(key, "none")
	}
	return zap.Duration(key, d)
}
