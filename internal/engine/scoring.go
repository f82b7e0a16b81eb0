package engine

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"sinister-snare/internal/galaxy"
	"sinister-snare/internal/logger"
)

// Piracy rating factor weights. Each factor is clamped to [0,1] before
// weighting; the weighted sum plus the commodity bonus is scaled to 0–100.
const (
	weightProfit     = 0.35
	weightTraffic    = 0.25
	weightDistance   = 0.15
	weightROI        = 0.10
	weightVolatility = 0.05
	weightRiskReward = 0.10

	profitNorm     = 2_000_000
	trafficNorm    = 100
	distanceNorm   = 60_000
	roiNorm        = 80
	riskRewardNorm = 50

	// InterSystemRatingCap keeps cross-system routes out of the top of the
	// priority board: they are far harder to intercept in practice.
	InterSystemRatingCap = 25
)

// commodityBonus entries are matched as substrings against the lowercased
// commodity name; the first hit wins, bonuses never stack.
var commodityBonuses = []struct {
	fragment string
	bonus    float64
}{
	{"narcotic", 0.15},
	{"drug", 0.15},
	{"medical", 0.12},
	{"quantum", 0.10},
	{"superconductor", 0.10},
	{"gold", 0.08},
	{"luxury", 0.08},
}

// Scorer computes piracy ratings and interception geometry for routes.
type Scorer struct {
	sampler *galaxy.Sampler
}

// NewScorer creates a Scorer; the seed only affects quantum-zone jitter.
func NewScorer(seed int64) *Scorer {
	return &Scorer{sampler: galaxy.NewSampler(seed)}
}

// Score produces the full analysis for a route. It never fails: a route
// whose numbers cannot be scored is emitted with rating 0.
func (sc *Scorer) Score(r Route) RouteAnalysis {
	rating := sc.piracyRating(r)
	return RouteAnalysis{
		Route:             r,
		PiracyRating:      rating,
		RiskLevel:         RiskLevelFor(rating),
		FrequencyScore:    r.TrafficScore / 10,
		InterceptionZones: sc.waypoints(r),
		AnalysisTimestamp: time.Now().UTC(),
	}
}

func (sc *Scorer) piracyRating(r Route) float64 {
	if !finite(r.Profit) || !finite(r.ROI) || !finite(r.Distance) || !finite(r.Investment) {
		logger.Warn("SCORE", fmt.Sprintf("Unscorable route %s, rating forced to 0", r.RouteCode))
		return 0
	}

	profitFactor := clamp01(r.Profit / profitNorm)
	trafficFactor := clamp01(r.TrafficScore / trafficNorm)
	distanceFactor := clamp01(1 - r.Distance/distanceNorm)
	roiFactor := clamp01(r.ROI / roiNorm)

	vol := (terminalVolatility(r.OriginTerminal) + terminalVolatility(r.DestinationTerminal)) / 2
	volatilityFactor := clamp01(vol * 2)

	investment := r.Investment
	if investment < 1 {
		investment = 1
	}
	riskRewardFactor := clamp01(r.Profit / investment * 100 / riskRewardNorm)

	sum := profitFactor*weightProfit +
		trafficFactor*weightTraffic +
		distanceFactor*weightDistance +
		roiFactor*weightROI +
		volatilityFactor*weightVolatility +
		riskRewardFactor*weightRiskReward

	rating := (sum + commodityBonus(r.CommodityName)) * 100
	if rating > 100 {
		rating = 100
	}
	if rating < 0 {
		rating = 0
	}
	if r.OriginSystem != r.DestinationSystem && rating > InterSystemRatingCap {
		rating = InterSystemRatingCap
	}
	return math.Round(rating*100) / 100
}

// waypoints derives the four interception points along the route line.
// Only the Quantum Interdiction Zone carries random jitter.
func (sc *Scorer) waypoints(r Route) []InterceptionWaypoint {
	a, b := r.CoordinatesOrigin, r.CoordinatesDest

	quantum := galaxy.Lerp(a, b, 0.5)
	quantum.X += sc.sampler.Jitter(5_000)
	quantum.Y += sc.sampler.Jitter(5_000)
	quantum.Z += sc.sampler.Jitter(2_000)

	return []InterceptionWaypoint{
		{
			Name:                 "Route Midpoint",
			Coordinates:          galaxy.Lerp(a, b, 0.5),
			InterceptProbability: 0.85,
			Difficulty:           DifficultyModerate,
			Description:          fmt.Sprintf("Halfway point of the %s run from %s", r.CommodityName, r.OriginTerminal),
		},
		{
			Name:                 "Departure Zone",
			Coordinates:          galaxy.Lerp(a, b, 0.15),
			InterceptProbability: 0.70,
			Difficulty:           DifficultyHard,
			Description:          fmt.Sprintf("Just outside %s departure traffic", r.OriginTerminal),
		},
		{
			Name:                 "Arrival Approach",
			Coordinates:          galaxy.Lerp(a, b, 0.85),
			InterceptProbability: 0.75,
			Difficulty:           DifficultyHard,
			Description:          fmt.Sprintf("Final approach corridor into %s", r.DestinationTerminal),
		},
		{
			Name:                 "Quantum Interdiction Zone",
			Coordinates:          quantum,
			InterceptProbability: 0.95,
			Difficulty:           DifficultyEasy,
			Description:          "Optimal quantum interdiction pocket on the travel line",
		},
	}
}

func commodityBonus(commodity string) float64 {
	name := strings.ToLower(commodity)
	for _, e := range commodityBonuses {
		if strings.Contains(name, e.fragment) {
			return e.bonus
		}
	}
	return 0
}

// terminalVolatility derives a stable pseudo-volatility in [0.1, 0.5] from
// the terminal name. The feed carries no price history per terminal, so
// this stands in for real variance while staying deterministic per route.
func terminalVolatility(terminal string) float64 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(terminal)))
	return 0.1 + float64(h.Sum32()%41)/100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
