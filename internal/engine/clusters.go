package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"sinister-snare/internal/galaxy"
)

const (
	// clusterCellSize is the grid cell edge used to bucket waypoints.
	clusterCellSize = 10_000
	// clusterMinRating filters which analyses feed the cluster scan.
	clusterMinRating = 50
	// DefaultClusterMinProbability is the waypoint probability floor.
	DefaultClusterMinProbability = 0.5
	// clusterShipProfitBar decides which ship classes to recommend.
	clusterShipProfitBar = 3_000_000
)

// InterceptionPoint is a recurring interception geometry shared by at
// least two routes whose waypoints fall in the same grid cell.
type InterceptionPoint struct {
	ClusterKey       string             `json:"cluster_key"`
	Coordinates      galaxy.Coordinates `json:"coordinates"`
	RouteCodes       []string           `json:"route_codes"`
	RouteCount       int                `json:"route_count"`
	Probability      float64            `json:"probability"`
	Difficulty       string             `json:"difficulty"`
	MaxProfit        float64            `json:"max_profit"`
	RecommendedShips []string           `json:"recommended_ships"`
}

type clusterAccum struct {
	key        string
	sumX       float64
	sumY       float64
	sumZ       float64
	sumProb    float64
	count      int
	routeCodes map[string]bool
	maxProfit  float64
}

// InterceptionClusters buckets high-rating waypoints into 10k grid cells
// and reports cells where at least two distinct routes overlap. A non-empty
// systemFilter keeps only routes whose origin or destination system name
// contains the filter (case-insensitive).
func InterceptionClusters(analyses []RouteAnalysis, systemFilter string, minProbability float64) []InterceptionPoint {
	if minProbability <= 0 {
		minProbability = DefaultClusterMinProbability
	}
	filter := strings.ToLower(systemFilter)

	cells := make(map[string]*clusterAccum)
	for _, a := range analyses {
		if a.PiracyRating < clusterMinRating {
			continue
		}
		if filter != "" &&
			!strings.Contains(strings.ToLower(a.OriginSystem), filter) &&
			!strings.Contains(strings.ToLower(a.DestinationSystem), filter) {
			continue
		}
		for _, wp := range a.InterceptionZones {
			if wp.InterceptProbability < minProbability {
				continue
			}
			key := cellKey(wp.Coordinates)
			c, ok := cells[key]
			if !ok {
				c = &clusterAccum{key: key, routeCodes: make(map[string]bool)}
				cells[key] = c
			}
			c.sumX += wp.Coordinates.X
			c.sumY += wp.Coordinates.Y
			c.sumZ += wp.Coordinates.Z
			c.sumProb += wp.InterceptProbability
			c.count++
			c.routeCodes[a.RouteCode] = true
			if a.Profit > c.maxProfit {
				c.maxProfit = a.Profit
			}
		}
	}

	var points []InterceptionPoint
	for _, c := range cells {
		if len(c.routeCodes) < 2 {
			continue
		}
		prob := c.sumProb / float64(c.count)
		if prob > 1 {
			prob = 1
		}
		difficulty := DifficultyModerate
		if len(c.routeCodes) > 3 {
			difficulty = DifficultyHard
		}
		codes := make([]string, 0, len(c.routeCodes))
		for code := range c.routeCodes {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		points = append(points, InterceptionPoint{
			ClusterKey: c.key,
			Coordinates: galaxy.Coordinates{
				X: c.sumX / float64(c.count),
				Y: c.sumY / float64(c.count),
				Z: c.sumZ / float64(c.count),
			},
			RouteCodes:       codes,
			RouteCount:       len(codes),
			Probability:      prob,
			Difficulty:       difficulty,
			MaxProfit:        c.maxProfit,
			RecommendedShips: recommendShips(c.maxProfit),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].RouteCount != points[j].RouteCount {
			return points[i].RouteCount > points[j].RouteCount
		}
		return points[i].MaxProfit > points[j].MaxProfit
	})
	return points
}

func cellKey(c galaxy.Coordinates) string {
	return fmt.Sprintf("%d:%d:%d",
		int(math.Floor(c.X/clusterCellSize)),
		int(math.Floor(c.Y/clusterCellSize)),
		int(math.Floor(c.Z/clusterCellSize)))
}

func recommendShips(maxProfit float64) []string {
	if maxProfit > clusterShipProfitBar {
		return []string{"Cutlass Blue", "Mantis", "Hammerhead"}
	}
	return []string{"Cutlass Black", "Mantis"}
}
