package model

// CoinDetail is the extended per-asset record returned by the coin endpoint.
type CoinDetail struct {
	ID         AssetID           `json:"id"`
	Symbol     string            `json:"symbol"`
	Name       string            `json:"name"`
	Image      CoinImage         `json:"image"`
	MarketData CoinMarketData    `json:"market_data"`
	Links      CoinLinks         `json:"links"`
	Platforms  map[string]string `json:"platforms,omitempty"`
}

// CoinImage holds the image URLs in the sizes the API publishes.
type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// CoinMarketData holds per-currency market values keyed by currency code.
type CoinMarketData struct {
	CurrentPrice             map[string]float64 `json:"current_price"`
	MarketCap                map[string]float64 `json:"market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
}

// CoinLinks holds external links. Homepage entries may be empty strings.
type CoinLinks struct {
	Homepage []string `json:"homepage"`
}

// PriceIn returns the current price in the given currency.
func (d *CoinDetail) PriceIn(currency string) (float64, bool) {
	if d == nil || d.MarketData.CurrentPrice == nil {
		return 0, false
	}
	v, ok := d.MarketData.CurrentPrice[currency]
	return v, ok
}

// Homepages returns the non-empty homepage links.
func (d *CoinDetail) Homepages() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.Links.Homepage))
	for _, link := range d.Links.Homepage {
		if link != "" {
			out = append(out, link)
		}
	}
	return out
}
