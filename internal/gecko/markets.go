package gecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"coinScope/internal/model"
)

const (
	DefaultCurrency = "usd"
	DefaultPerPage  = 100
)

// ListMarketCoins fetches one page of the markets listing ordered by
// descending market cap. The server order is kept as-is. A body that is not a
// JSON array of coins yields an empty slice rather than an error.
func (c *Client) ListMarketCoins(ctx context.Context, currency string, page, perPage int) ([]model.MarketCoin, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))
	query.Set("sparkline", "false")

	body, err := c.get(ctx, "/coins/markets", query)
	if err != nil {
		return nil, fmt.Errorf("list market coins: %w", err)
	}

	var coins []model.MarketCoin
	if err := json.Unmarshal(body, &coins); err != nil {
		c.logger.Warn("markets payload is not a coin array", zap.Error(err), zap.Int("bytes", len(body)))
		return []model.MarketCoin{}, nil
	}
	if coins == nil {
		coins = []model.MarketCoin{}
	}
	return coins, nil
}
