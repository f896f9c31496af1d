package model

// SeriesPoint is a [timestampMillis, value] pair.
type SeriesPoint [2]float64

// MarketChart holds three series aligned by index: entry i of each series
// belongs to the same sampling point.
type MarketChart struct {
	Prices       []SeriesPoint `json:"prices"`
	TotalVolumes []SeriesPoint `json:"total_volumes"`
	MarketCaps   []SeriesPoint `json:"market_caps"`
}

// ChartPoint is one chart-ready sample.
type ChartPoint struct {
	Date      int64   `json:"date"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
	MarketCap float64 `json:"marketCap"`
}
