package storage

import (
	"context"
	"errors"

	"coinScope/internal/model"
)

// ErrPersistence wraps every failure reported by a KV backend.
var ErrPersistence = errors.New("persistence error")

// KV is a durable string key/value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ChartSink receives exported chart points.
type ChartSink interface {
	PutChartBatch(points []model.ChartPoint) error
}

// MarketSink receives exported market snapshots.
type MarketSink interface {
	PutMarketBatch(coins []model.MarketCoin) error
}
