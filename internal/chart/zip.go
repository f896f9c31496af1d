package chart

import "coinScope/internal/model"

// RangePresets are the day ranges offered by the coin view.
var RangePresets = []int{7, 30, 90}

// Zip joins the three index-aligned series of chart into chart-ready points.
// Extra trailing samples in a longer series are dropped.
func Zip(chart *model.MarketChart) []model.ChartPoint {
	if chart == nil {
		return []model.ChartPoint{}
	}
	n := len(chart.Prices)
	if len(chart.TotalVolumes) < n {
		n = len(chart.TotalVolumes)
	}
	if len(chart.MarketCaps) < n {
		n = len(chart.MarketCaps)
	}

	points := make([]model.ChartPoint, n)
	for i := 0; i < n; i++ {
		points[i] = model.ChartPoint{
			Date:      int64(chart.Prices[i][0]),
			Price:     chart.Prices[i][1],
			Volume:    chart.TotalVolumes[i][1],
			MarketCap: chart.MarketCaps[i][1],
		}
	}
	return points
}
