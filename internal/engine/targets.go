package engine

import (
	"sort"
	"time"
)

// DefaultPriorityThreshold is the minimum piracy rating for the priority
// target board when the caller does not specify one.
const DefaultPriorityThreshold = 60

// WaypointSummary is the trimmed waypoint view embedded in a priority target.
type WaypointSummary struct {
	Name                 string  `json:"name"`
	InterceptProbability float64 `json:"intercept_probability"`
	Difficulty           string  `json:"difficulty"`
}

// PriorityTarget is a scored route ranked for immediate interception value.
type PriorityTarget struct {
	RouteCode         string            `json:"route_code"`
	CommodityName     string            `json:"commodity_name"`
	OriginTerminal    string            `json:"origin_terminal"`
	OriginSystem      string            `json:"origin_system"`
	DestinationSystem string            `json:"destination_system"`
	Profit            float64           `json:"profit"`
	PiracyRating      float64           `json:"piracy_rating"`
	RiskLevel         string            `json:"risk_level"`
	Freshness         float64           `json:"freshness"`
	AdjustedScore     float64           `json:"adjusted_score"`
	Waypoints         []WaypointSummary `json:"waypoints"`
}

// PriorityTargets ranks analyses at or above minScore by piracy rating
// scaled by a freshness decay: stale routes sink but never fully vanish.
func PriorityTargets(analyses []RouteAnalysis, minScore float64, limit int, now time.Time) []PriorityTarget {
	if minScore <= 0 {
		minScore = DefaultPriorityThreshold
	}

	var targets []PriorityTarget
	for _, a := range analyses {
		if a.PiracyRating < minScore {
			continue
		}
		f := freshness(a.LastSeen, now)
		t := PriorityTarget{
			RouteCode:         a.RouteCode,
			CommodityName:     a.CommodityName,
			OriginTerminal:    a.OriginTerminal,
			OriginSystem:      a.OriginSystem,
			DestinationSystem: a.DestinationSystem,
			Profit:            a.Profit,
			PiracyRating:      a.PiracyRating,
			RiskLevel:         a.RiskLevel,
			Freshness:         f,
			AdjustedScore:     a.PiracyRating * f,
		}
		for i, wp := range a.InterceptionZones {
			if i >= 3 {
				break
			}
			t.Waypoints = append(t.Waypoints, WaypointSummary{
				Name:                 wp.Name,
				InterceptProbability: wp.InterceptProbability,
				Difficulty:           wp.Difficulty,
			})
		}
		targets = append(targets, t)
	}

	sort.Slice(targets, func(i, j int) bool {
		return targets[i].AdjustedScore > targets[j].AdjustedScore
	})
	if limit > 0 && len(targets) > limit {
		targets = targets[:limit]
	}
	return targets
}

// freshness decays linearly to 0.1 over 24 hours since last sighting.
func freshness(lastSeen, now time.Time) float64 {
	hours := now.Sub(lastSeen).Hours()
	if hours < 0 {
		hours = 0
	}
	f := 1 - hours/24
	if f < 0.1 {
		f = 0.1
	}
	return f
}
