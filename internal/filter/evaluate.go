package filter

import (
	"strings"

	"coinScope/internal/model"
)

// Evaluate reports whether coin passes the text query and every set bound in
// c. The query matches name or symbol, case-insensitively; an empty query
// matches everything.
func Evaluate(coin model.MarketCoin, c Criteria, query string) bool {
	if !matchesQuery(coin, strings.ToLower(query)) {
		return false
	}
	if c.MinPrice != nil && coin.CurrentPrice < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && coin.CurrentPrice > *c.MaxPrice {
		return false
	}
	if c.MinVolume != nil && coin.TotalVolume < *c.MinVolume {
		return false
	}
	if c.OnlyGainers && coin.PriceChangePercentage24h <= 0 {
		return false
	}
	return true
}

// Apply returns the coins that pass Evaluate, in input order.
func Apply(coins []model.MarketCoin, c Criteria, query string) []model.MarketCoin {
	lowered := strings.ToLower(query)
	out := make([]model.MarketCoin, 0, len(coins))
	for _, coin := range coins {
		if Evaluate(coin, c, lowered) {
			out = append(out, coin)
		}
	}
	return out
}

func matchesQuery(coin model.MarketCoin, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(coin.Name), lowered) ||
		strings.Contains(strings.ToLower(coin.Symbol), lowered)
}
