package engine

import (
	"time"

	"sinister-snare/internal/galaxy"
)

// Risk level buckets for a scored route, ordered by piracy rating.
const (
	RiskMinimal   = "MINIMAL"
	RiskLow       = "LOW"
	RiskModerate  = "MODERATE"
	RiskHigh      = "HIGH"
	RiskElite     = "ELITE"
	RiskLegendary = "LEGENDARY"
)

// Waypoint difficulty labels.
const (
	DifficultyEasy     = "EASY"
	DifficultyModerate = "MODERATE"
	DifficultyHard     = "HARD"
	DifficultyExtreme  = "EXTREME"
)

// Alert types and priorities.
const (
	AlertHighValue     = "HIGH_VALUE"
	AlertNewRoute      = "NEW_ROUTE"
	AlertFrequentRoute = "FREQUENT_ROUTE"

	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

// Route is a directed, profitable commodity run between two terminals.
type Route struct {
	RouteCode           string             `json:"route_code"`
	CommodityName       string             `json:"commodity_name"`
	OriginTerminal      string             `json:"origin_terminal"`
	OriginSystem        string             `json:"origin_system"`
	DestinationTerminal string             `json:"destination_terminal"`
	DestinationSystem   string             `json:"destination_system"`
	BuyPrice            float64            `json:"buy_price"`
	SellPrice           float64            `json:"sell_price"`
	ProfitPerUnit       float64            `json:"profit_per_unit"`
	ROI                 float64            `json:"roi"`
	Distance            float64            `json:"distance"`
	Investment          float64            `json:"investment"`
	Profit              float64            `json:"profit"`
	BuyStock            float64            `json:"buy_stock"`
	SellStock           float64            `json:"sell_stock"`
	TrafficScore        float64            `json:"traffic_score"`
	CoordinatesOrigin   galaxy.Coordinates `json:"coordinates_origin"`
	CoordinatesDest     galaxy.Coordinates `json:"coordinates_destination"`
	LastSeen            time.Time          `json:"last_seen"`
}

// InterceptionWaypoint is a geometric ambush point derived from a route.
type InterceptionWaypoint struct {
	Name                 string             `json:"name"`
	Coordinates          galaxy.Coordinates `json:"coordinates"`
	InterceptProbability float64            `json:"intercept_probability"`
	Difficulty           string             `json:"difficulty"`
	Description          string             `json:"description"`
}

// RouteAnalysis is a Route scored for piracy attractiveness. Keyed by
// RouteCode in the store; replaced wholesale on each successful refresh.
type RouteAnalysis struct {
	Route
	PiracyRating      float64                `json:"piracy_rating"`
	RiskLevel         string                 `json:"risk_level"`
	FrequencyScore    float64                `json:"frequency_score"`
	InterceptionZones []InterceptionWaypoint `json:"interception_zones"`
	AnalysisTimestamp time.Time              `json:"analysis_timestamp"`
}

// HistoricalTrend is one append-only time-series point per route per refresh.
type HistoricalTrend struct {
	RouteCode     string    `json:"route_code"`
	CommodityName string    `json:"commodity_name"`
	Timestamp     time.Time `json:"timestamp"`
	Profit        float64   `json:"profit"`
	ROI           float64   `json:"roi"`
	TrafficScore  float64   `json:"traffic_score"`
	PiracyRating  float64   `json:"piracy_rating"`
}

// Alert is a persisted notification about a route worth watching.
type Alert struct {
	ID              string    `json:"id"`
	AlertType       string    `json:"alert_type"`
	RouteCode       string    `json:"route_code"`
	CommodityName   string    `json:"commodity_name"`
	Message         string    `json:"message"`
	Priority        string    `json:"priority"`
	ProfitThreshold float64   `json:"profit_threshold"`
	CreatedAt       time.Time `json:"created_at"`
	Acknowledged    bool      `json:"acknowledged"`
}

// RiskLevelFor buckets a piracy rating into its risk label.
func RiskLevelFor(rating float64) string {
	switch {
	case rating >= 90:
		return RiskLegendary
	case rating >= 80:
		return RiskElite
	case rating >= 65:
		return RiskHigh
	case rating >= 45:
		return RiskModerate
	case rating >= 25:
		return RiskLow
	default:
		return RiskMinimal
	}
}
