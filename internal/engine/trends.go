package engine

import "sort"

// Trend direction labels for rollups.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// MaxTrendWindowHours bounds the historical query window.
const MaxTrendWindowHours = 168

// TrendRollup summarizes the historical points of one route over a window.
type TrendRollup struct {
	RouteCode     string  `json:"route_code"`
	CommodityName string  `json:"commodity_name"`
	Points        int     `json:"points"`
	AvgProfit     float64 `json:"avg_profit"`
	CurrentRating float64 `json:"current_rating"`
	MaxRating     float64 `json:"max_rating"`
	Trend         string  `json:"trend"`
}

// TrendRollups groups historical points by route and derives per-route
// aggregates plus a two-point trend label (first vs latest profit).
// Input points may arrive in any order.
func TrendRollups(trends []HistoricalTrend) []TrendRollup {
	byRoute := make(map[string][]HistoricalTrend)
	for _, tr := range trends {
		byRoute[tr.RouteCode] = append(byRoute[tr.RouteCode], tr)
	}

	var rollups []TrendRollup
	for code, points := range byRoute {
		sort.Slice(points, func(i, j int) bool {
			return points[i].Timestamp.Before(points[j].Timestamp)
		})

		var sumProfit, maxRating float64
		for _, p := range points {
			sumProfit += p.Profit
			if p.PiracyRating > maxRating {
				maxRating = p.PiracyRating
			}
		}
		latest := points[len(points)-1]

		rollups = append(rollups, TrendRollup{
			RouteCode:     code,
			CommodityName: latest.CommodityName,
			Points:        len(points),
			AvgProfit:     sumProfit / float64(len(points)),
			CurrentRating: latest.PiracyRating,
			MaxRating:     maxRating,
			Trend:         trendLabel(points[0].Profit, latest.Profit),
		})
	}

	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].AvgProfit > rollups[j].AvgProfit
	})
	return rollups
}

// trendLabel compares the first and latest profit with a 5% dead band.
func trendLabel(first, last float64) string {
	if first <= 0 {
		if last > 0 {
			return TrendIncreasing
		}
		return TrendStable
	}
	change := (last - first) / first
	switch {
	case change > 0.05:
		return TrendIncreasing
	case change < -0.05:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
