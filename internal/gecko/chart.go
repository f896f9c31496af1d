package gecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"coinScope/internal/model"
)

type marketChartResponse struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
	MarketCaps   [][]float64 `json:"market_caps"`
}

// GetCoinMarketChart fetches the historical price, volume and market-cap
// series for id over the last days. The three series are checked to be
// index-aligned before they are returned.
func (c *Client) GetCoinMarketChart(ctx context.Context, id model.AssetID, currency string, days int) (*model.MarketChart, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, fmt.Errorf("get market chart: asset id is required")
	}
	if days <= 0 {
		return nil, fmt.Errorf("get market chart: days must be positive, got %d", days)
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("days", strconv.Itoa(days))

	body, err := c.get(ctx, "/coins/"+url.PathEscape(id.String())+"/market_chart", query)
	if err != nil {
		return nil, fmt.Errorf("get market chart %s: %w", id, err)
	}

	var raw marketChartResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("get market chart %s: %w: %v", id, ErrMalformedResponse, err)
	}

	chart, err := raw.toModel()
	if err != nil {
		return nil, fmt.Errorf("get market chart %s: %w", id, err)
	}
	return chart, nil
}

func (r marketChartResponse) toModel() (*model.MarketChart, error) {
	n := len(r.Prices)
	if len(r.TotalVolumes) != n || len(r.MarketCaps) != n {
		return nil, fmt.Errorf("%w: series lengths differ (prices=%d volumes=%d caps=%d)",
			ErrMalformedResponse, n, len(r.TotalVolumes), len(r.MarketCaps))
	}

	prices, err := toSeries("prices", r.Prices)
	if err != nil {
		return nil, err
	}
	volumes, err := toSeries("total_volumes", r.TotalVolumes)
	if err != nil {
		return nil, err
	}
	caps, err := toSeries("market_caps", r.MarketCaps)
	if err != nil {
		return nil, err
	}

	return &model.MarketChart{Prices: prices, TotalVolumes: volumes, MarketCaps: caps}, nil
}

func toSeries(name string, pairs [][]float64) ([]model.SeriesPoint, error) {
	out := make([]model.SeriesPoint, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: %s[%d] has %d values", ErrMalformedResponse, name, i, len(pair))
		}
		out = append(out, model.SeriesPoint{pair[0], pair[1]})
	}
	return out, nil
}
