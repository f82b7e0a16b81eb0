package engine

import (
	"testing"

	"sinister-snare/internal/galaxy"
)

func analysisWithWaypoint(code string, rating, profit float64, c galaxy.Coordinates, prob float64) RouteAnalysis {
	return RouteAnalysis{
		Route: Route{
			RouteCode:         code,
			CommodityName:     "Gold",
			OriginSystem:      galaxy.Stanton,
			DestinationSystem: galaxy.Stanton,
			Profit:            profit,
		},
		PiracyRating: rating,
		InterceptionZones: []InterceptionWaypoint{
			{Name: "Route Midpoint", Coordinates: c, InterceptProbability: prob, Difficulty: DifficultyModerate},
		},
	}
}

func TestInterceptionClusters_ThreeRoutesOneCell(t *testing.T) {
	analyses := []RouteAnalysis{
		analysisWithWaypoint("R1-GOLD-A", 70, 1_000_000, galaxy.Coordinates{X: 1000, Y: 1000, Z: 500}, 0.8),
		analysisWithWaypoint("R2-GOLD-B", 75, 2_000_000, galaxy.Coordinates{X: 9000, Y: 2000, Z: 900}, 0.9),
		analysisWithWaypoint("R3-GOLD-C", 80, 4_000_000, galaxy.Coordinates{X: 5000, Y: 9999, Z: 100}, 0.7),
	}
	points := InterceptionClusters(analyses, "", 0.5)
	if len(points) != 1 {
		t.Fatalf("len(points) = %d, want 1", len(points))
	}
	p := points[0]
	if p.RouteCount != 3 || len(p.RouteCodes) != 3 {
		t.Errorf("RouteCount = %d, codes = %v, want 3 contributors", p.RouteCount, p.RouteCodes)
	}
	wantProb := (0.8 + 0.9 + 0.7) / 3
	if diff := p.Probability - wantProb; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Probability = %v, want %v", p.Probability, wantProb)
	}
	if p.Difficulty != DifficultyModerate {
		t.Errorf("Difficulty = %q, want MODERATE for ≤3 routes", p.Difficulty)
	}
	if p.MaxProfit != 4_000_000 {
		t.Errorf("MaxProfit = %v, want 4000000", p.MaxProfit)
	}
	if len(p.RecommendedShips) != 3 {
		t.Errorf("ships = %v, want heavy set for max profit > 3M", p.RecommendedShips)
	}
}

func TestInterceptionClusters_SingletonCellIgnored(t *testing.T) {
	analyses := []RouteAnalysis{
		analysisWithWaypoint("R1-GOLD-A", 70, 1_000_000, galaxy.Coordinates{X: 1000, Y: 1000, Z: 500}, 0.8),
		analysisWithWaypoint("R2-GOLD-B", 75, 2_000_000, galaxy.Coordinates{X: 500_000, Y: 0, Z: 0}, 0.9),
	}
	if points := InterceptionClusters(analyses, "", 0.5); len(points) != 0 {
		t.Errorf("len(points) = %d, want 0 (no cell has 2+ routes)", len(points))
	}
}

func TestInterceptionClusters_LowRatingExcluded(t *testing.T) {
	analyses := []RouteAnalysis{
		analysisWithWaypoint("R1-GOLD-A", 40, 1_000_000, galaxy.Coordinates{X: 100, Y: 100, Z: 100}, 0.8),
		analysisWithWaypoint("R2-GOLD-B", 45, 1_000_000, galaxy.Coordinates{X: 200, Y: 200, Z: 200}, 0.8),
	}
	if points := InterceptionClusters(analyses, "", 0.5); len(points) != 0 {
		t.Errorf("routes below rating 50 clustered: %d points", len(points))
	}
}

func TestInterceptionClusters_ProbabilityFloor(t *testing.T) {
	analyses := []RouteAnalysis{
		analysisWithWaypoint("R1-GOLD-A", 70, 1_000_000, galaxy.Coordinates{X: 100, Y: 100, Z: 100}, 0.3),
		analysisWithWaypoint("R2-GOLD-B", 75, 1_000_000, galaxy.Coordinates{X: 200, Y: 200, Z: 200}, 0.3),
	}
	if points := InterceptionClusters(analyses, "", 0.5); len(points) != 0 {
		t.Errorf("waypoints below min probability clustered: %d points", len(points))
	}
	if points := InterceptionClusters(analyses, "", 0.2); len(points) != 1 {
		t.Errorf("lowered floor should cluster: got %d points", len(points))
	}
}

func TestInterceptionClusters_SystemFilter(t *testing.T) {
	pyro := analysisWithWaypoint("R1-GOLD-A", 70, 1_000_000, galaxy.Coordinates{X: 100, Y: 100, Z: 100}, 0.8)
	pyro.OriginSystem = galaxy.Pyro
	pyro.DestinationSystem = galaxy.Pyro
	pyro2 := analysisWithWaypoint("R2-GOLD-B", 75, 1_000_000, galaxy.Coordinates{X: 200, Y: 200, Z: 200}, 0.8)
	pyro2.OriginSystem = galaxy.Pyro
	pyro2.DestinationSystem = galaxy.Pyro
	stanton := analysisWithWaypoint("R3-GOLD-C", 75, 1_000_000, galaxy.Coordinates{X: 300, Y: 300, Z: 300}, 0.8)

	points := InterceptionClusters([]RouteAnalysis{pyro, pyro2, stanton}, "pyro", 0.5)
	if len(points) != 1 {
		t.Fatalf("len(points) = %d, want 1", len(points))
	}
	if points[0].RouteCount != 2 {
		t.Errorf("filtered cluster has %d routes, want 2 (Stanton route excluded)", points[0].RouteCount)
	}
}

func TestInterceptionClusters_HardDifficultyAbove3Routes(t *testing.T) {
	var analyses []RouteAnalysis
	for i := 0; i < 4; i++ {
		analyses = append(analyses, analysisWithWaypoint(
			"R"+string(rune('1'+i))+"-GOLD-X", 70, 500_000,
			galaxy.Coordinates{X: float64(i * 1000), Y: 0, Z: 0}, 0.8))
	}
	points := InterceptionClusters(analyses, "", 0.5)
	if len(points) != 1 {
		t.Fatalf("len(points) = %d, want 1", len(points))
	}
	if points[0].Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %q, want HARD for >3 routes", points[0].Difficulty)
	}
	if len(points[0].RecommendedShips) != 2 {
		t.Errorf("ships = %v, want light set for max profit ≤ 3M", points[0].RecommendedShips)
	}
}

func TestCellKey_NegativeCoordinatesFloor(t *testing.T) {
	// -0.5 and +0.5 cells must differ: floor, not truncation.
	a := cellKey(galaxy.Coordinates{X: -5000, Y: 0, Z: 0})
	b := cellKey(galaxy.Coordinates{X: 5000, Y: 0, Z: 0})
	if a == b {
		t.Errorf("cellKey(-5000) == cellKey(5000): %q", a)
	}
}
