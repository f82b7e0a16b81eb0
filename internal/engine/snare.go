package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sinister-snare/internal/galaxy"
)

const (
	// commoditySnareMinProfit filters marginal routes out of snare plans.
	commoditySnareMinProfit = 100_000
	// commoditySnareMaxRoutes caps the matched route list.
	commoditySnareMaxRoutes = 20
	// commoditySnareStrategyCount caps how many routes get strategy text.
	commoditySnareStrategyCount = 10
	// snareNowRecency is how fresh a route must be for the live pick.
	snareNowRecency = time.Hour
	// snareNowAlternatives caps the fallback candidate list.
	snareNowAlternatives = 5
)

// SnareRoute is one route inside a commodity snare plan.
type SnareRoute struct {
	RouteCode           string  `json:"route_code"`
	CommodityName       string  `json:"commodity_name"`
	OriginTerminal      string  `json:"origin_terminal"`
	OriginSystem        string  `json:"origin_system"`
	DestinationTerminal string  `json:"destination_terminal"`
	DestinationSystem   string  `json:"destination_system"`
	Profit              float64 `json:"profit"`
	PiracyRating        float64 `json:"piracy_rating"`
	Strategy            string  `json:"strategy,omitempty"`
}

// CommoditySnare returns the routes moving a commodity (matched by
// case-insensitive substring) worth snaring, with interception strategy
// text on the top entries.
func CommoditySnare(analyses []RouteAnalysis, commodity string) []SnareRoute {
	needle := strings.ToLower(commodity)

	var matched []RouteAnalysis
	for _, a := range analyses {
		if !strings.Contains(strings.ToLower(a.CommodityName), needle) {
			continue
		}
		if a.Profit < commoditySnareMinProfit {
			continue
		}
		matched = append(matched, a)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Profit > matched[j].Profit
	})
	if len(matched) > commoditySnareMaxRoutes {
		matched = matched[:commoditySnareMaxRoutes]
	}

	routes := make([]SnareRoute, 0, len(matched))
	for i, a := range matched {
		r := SnareRoute{
			RouteCode:           a.RouteCode,
			CommodityName:       a.CommodityName,
			OriginTerminal:      a.OriginTerminal,
			OriginSystem:        a.OriginSystem,
			DestinationTerminal: a.DestinationTerminal,
			DestinationSystem:   a.DestinationSystem,
			Profit:              a.Profit,
			PiracyRating:        a.PiracyRating,
		}
		if i < commoditySnareStrategyCount {
			r.Strategy = snareStrategy(a)
		}
		routes = append(routes, r)
	}
	return routes
}

func snareStrategy(a RouteAnalysis) string {
	if a.OriginSystem == a.DestinationSystem {
		return fmt.Sprintf("Position between %s and %s in %s and pull haulers out of quantum on the direct line.",
			a.OriginTerminal, a.DestinationTerminal, a.OriginSystem)
	}
	if isStantonPyroPair(a.OriginSystem, a.DestinationSystem) {
		return fmt.Sprintf("Camp the %s–%s jump point: all %s traffic funnels through the gateway and drops shields on transit.",
			a.OriginSystem, a.DestinationSystem, a.CommodityName)
	}
	return fmt.Sprintf("Interdict at the gateway between %s and %s; cross-system haulers are committed once they jump.",
		a.OriginSystem, a.DestinationSystem)
}

func isStantonPyroPair(a, b string) bool {
	return (a == galaxy.Stanton && b == galaxy.Pyro) || (a == galaxy.Pyro && b == galaxy.Stanton)
}

// SnareNowResult is the "best snare right now" answer.
type SnareNowResult struct {
	Target            *SnareRoute  `json:"target"`
	InterceptionPoint string       `json:"interception_point"`
	Live              bool         `json:"live"`
	Alternatives      []SnareRoute `json:"alternatives"`
}

// SnareNow picks the route with the highest frequency score seen within the
// last hour, falling back to the all-time highest when nothing is fresh,
// plus up to five alternatives.
func SnareNow(analyses []RouteAnalysis, now time.Time) *SnareNowResult {
	if len(analyses) == 0 {
		return nil
	}

	sorted := make([]RouteAnalysis, len(analyses))
	copy(sorted, analyses)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FrequencyScore > sorted[j].FrequencyScore
	})

	live := false
	target := sorted[0]
	for _, a := range sorted {
		if now.Sub(a.LastSeen) <= snareNowRecency {
			target = a
			live = true
			break
		}
	}

	var alternatives []SnareRoute
	for _, a := range sorted {
		if a.RouteCode == target.RouteCode {
			continue
		}
		alternatives = append(alternatives, toSnareRoute(a))
		if len(alternatives) >= snareNowAlternatives {
			break
		}
	}

	t := toSnareRoute(target)
	return &SnareNowResult{
		Target:            &t,
		InterceptionPoint: interceptionPointLabel(target),
		Live:              live,
		Alternatives:      alternatives,
	}
}

// interceptionPointLabel names where to sit: the gateway for cross-system
// runs, the computed midpoint for same-system ones.
func interceptionPointLabel(a RouteAnalysis) string {
	if a.OriginSystem != a.DestinationSystem {
		return fmt.Sprintf("%s Gateway", a.DestinationSystem)
	}
	mid := galaxy.Lerp(a.CoordinatesOrigin, a.CoordinatesDest, 0.5)
	return fmt.Sprintf("Route midpoint at (%.0f, %.0f, %.0f)", mid.X, mid.Y, mid.Z)
}

func toSnareRoute(a RouteAnalysis) SnareRoute {
	return SnareRoute{
		RouteCode:           a.RouteCode,
		CommodityName:       a.CommodityName,
		OriginTerminal:      a.OriginTerminal,
		OriginSystem:        a.OriginSystem,
		DestinationTerminal: a.DestinationTerminal,
		DestinationSystem:   a.DestinationSystem,
		Profit:              a.Profit,
		PiracyRating:        a.PiracyRating,
	}
}
