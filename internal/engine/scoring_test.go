package engine

import (
	"math"
	"testing"
	"time"

	"sinister-snare/internal/feed"
	"sinister-snare/internal/galaxy"
)

func scoreOffers(t *testing.T, offers []feed.CommodityOffer) []RouteAnalysis {
	t.Helper()
	s := NewSynthesizer(galaxy.NewResolver(), 42)
	sc := NewScorer(42)
	routes := s.SynthesizeRoutes(offers)
	analyses := make([]RouteAnalysis, 0, len(routes))
	for _, r := range routes {
		analyses = append(analyses, sc.Score(r))
	}
	return analyses
}

func TestScore_InterSystemCapAluminum(t *testing.T) {
	offers := []feed.CommodityOffer{
		{CommodityName: "Aluminum", TerminalName: "Rat's Nest", PriceBuy: 100, StatusBuy: 1, ScuBuy: 500},
		{CommodityName: "Aluminum", TerminalName: "Everus Harbor", PriceSell: 300, StatusSell: 1, ScuSellStock: 500},
	}
	analyses := scoreOffers(t, offers)
	if len(analyses) != 1 {
		t.Fatalf("len(analyses) = %d, want 1", len(analyses))
	}
	a := analyses[0]
	if a.OriginSystem != galaxy.Pyro || a.DestinationSystem != galaxy.Stanton {
		t.Fatalf("systems = %s→%s, want Pyro→Stanton", a.OriginSystem, a.DestinationSystem)
	}
	if a.PiracyRating > 25 {
		t.Errorf("inter-system rating = %v, want ≤ 25", a.PiracyRating)
	}
	if a.RiskLevel != RiskMinimal && a.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q, want MINIMAL or LOW", a.RiskLevel)
	}
}

func TestScore_SameSystemNarcoticsElite(t *testing.T) {
	offers := []feed.CommodityOffer{
		{CommodityName: "Processed Narcotics", TerminalName: "Area18", PriceBuy: 1000, StatusBuy: 1, ScuBuy: 1000},
		{CommodityName: "Processed Narcotics", TerminalName: "Grim Hex", PriceSell: 6000, StatusSell: 1, ScuSellStock: 1000},
	}
	analyses := scoreOffers(t, offers)
	if len(analyses) != 1 {
		t.Fatalf("len(analyses) = %d, want 1", len(analyses))
	}
	a := analyses[0]
	if a.OriginSystem != a.DestinationSystem {
		t.Fatalf("expected same-system route, got %s→%s", a.OriginSystem, a.DestinationSystem)
	}
	if a.PiracyRating < 80 {
		t.Errorf("narcotics rating = %v, want ≥ 80 (ELITE/LEGENDARY)", a.PiracyRating)
	}
	if a.RiskLevel != RiskElite && a.RiskLevel != RiskLegendary {
		t.Errorf("RiskLevel = %q, want ELITE or LEGENDARY", a.RiskLevel)
	}
}

func TestScore_RatingBounds(t *testing.T) {
	offers := []feed.CommodityOffer{
		{CommodityName: "Quantum Fuel", TerminalName: "Area18", PriceBuy: 1, StatusBuy: 1, ScuBuy: 100000},
		{CommodityName: "Quantum Fuel", TerminalName: "Lorville", PriceSell: 100000, StatusSell: 1, ScuSellStock: 100000},
		{CommodityName: "Scrap", TerminalName: "Orison", PriceBuy: 100, StatusBuy: 1, ScuBuy: 1},
		{CommodityName: "Scrap", TerminalName: "Daymar", PriceSell: 101, StatusSell: 1, ScuSellStock: 1},
	}
	for _, a := range scoreOffers(t, offers) {
		if a.PiracyRating < 0 || a.PiracyRating > 100 {
			t.Errorf("rating %v outside [0,100] for %s", a.PiracyRating, a.RouteCode)
		}
	}
}

func TestScore_RoundedToTwoDecimals(t *testing.T) {
	offers := []feed.CommodityOffer{
		{CommodityName: "Titanium", TerminalName: "Area18", PriceBuy: 137, StatusBuy: 1, ScuBuy: 333},
		{CommodityName: "Titanium", TerminalName: "Lorville", PriceSell: 291, StatusSell: 1, ScuSellStock: 333},
	}
	a := scoreOffers(t, offers)[0]
	scaled := a.PiracyRating * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		t.Errorf("rating %v not rounded to two decimals", a.PiracyRating)
	}
}

func TestScore_UnscorableRouteEmittedWithZero(t *testing.T) {
	sc := NewScorer(1)
	r := Route{
		RouteCode: "BAD-ROUTE-X", CommodityName: "Gold",
		OriginTerminal: "Area18", DestinationTerminal: "Lorville",
		OriginSystem: galaxy.Stanton, DestinationSystem: galaxy.Stanton,
		Profit: math.NaN(), ROI: 50, Distance: 20000, Investment: 1000,
	}
	a := sc.Score(r)
	if a.PiracyRating != 0 {
		t.Errorf("unscorable rating = %v, want 0", a.PiracyRating)
	}
	if a.RiskLevel != RiskMinimal {
		t.Errorf("unscorable RiskLevel = %q, want MINIMAL", a.RiskLevel)
	}
	if a.RouteCode != "BAD-ROUTE-X" {
		t.Error("unscorable route must still be emitted")
	}
}

func TestRiskLevelFor_Buckets(t *testing.T) {
	cases := []struct {
		rating float64
		want   string
	}{
		{95, RiskLegendary},
		{90, RiskLegendary},
		{89.99, RiskElite},
		{80, RiskElite},
		{79.99, RiskHigh},
		{65, RiskHigh},
		{64.99, RiskModerate},
		{45, RiskModerate},
		{44.99, RiskLow},
		{25, RiskLow},
		{24.99, RiskMinimal},
		{0, RiskMinimal},
	}
	for _, c := range cases {
		if got := RiskLevelFor(c.rating); got != c.want {
			t.Errorf("RiskLevelFor(%v) = %q, want %q", c.rating, got, c.want)
		}
	}
}

func TestCommodityBonus_FirstMatchNoStacking(t *testing.T) {
	cases := []struct {
		commodity string
		want      float64
	}{
		{"Processed Narcotics", 0.15},
		{"E'tam Drugs", 0.15},
		{"Medical Supplies", 0.12},
		{"Quantum Superconductors", 0.10}, // quantum matches first, no stacking
		{"Gold", 0.08},
		{"Luxury Goods", 0.08},
		{"Aluminum", 0},
	}
	for _, c := range cases {
		if got := commodityBonus(c.commodity); got != c.want {
			t.Errorf("commodityBonus(%q) = %v, want %v", c.commodity, got, c.want)
		}
	}
}

func TestWaypoints_Geometry(t *testing.T) {
	sc := NewScorer(42)
	r := Route{
		RouteCode:     "A-GOLD-B",
		CommodityName: "Gold",
		OriginSystem:  galaxy.Stanton, DestinationSystem: galaxy.Stanton,
		OriginTerminal: "Area18", DestinationTerminal: "Lorville",
		CoordinatesOrigin: galaxy.Coordinates{X: 0, Y: 0, Z: 0},
		CoordinatesDest:   galaxy.Coordinates{X: 10000, Y: 0, Z: 0},
		BuyPrice:          100, SellPrice: 200, Profit: 1000, Investment: 1000, Distance: 20000,
	}
	a := sc.Score(r)
	if len(a.InterceptionZones) != 4 {
		t.Fatalf("len(zones) = %d, want 4", len(a.InterceptionZones))
	}

	mid := a.InterceptionZones[0]
	if mid.Name != "Route Midpoint" || mid.Coordinates.X != 5000 {
		t.Errorf("midpoint = %+v", mid)
	}
	if mid.InterceptProbability != 0.85 || mid.Difficulty != DifficultyModerate {
		t.Errorf("midpoint prob/difficulty = %v/%s", mid.InterceptProbability, mid.Difficulty)
	}

	dep := a.InterceptionZones[1]
	if dep.Coordinates.X != 1500 || dep.InterceptProbability != 0.70 || dep.Difficulty != DifficultyHard {
		t.Errorf("departure zone = %+v", dep)
	}

	arr := a.InterceptionZones[2]
	if arr.Coordinates.X != 8500 || arr.InterceptProbability != 0.75 {
		t.Errorf("arrival approach = %+v", arr)
	}

	qz := a.InterceptionZones[3]
	if qz.InterceptProbability != 0.95 || qz.Difficulty != DifficultyEasy {
		t.Errorf("quantum zone = %+v", qz)
	}
	if math.Abs(qz.Coordinates.X-5000) > 5000 || math.Abs(qz.Coordinates.Y) > 5000 || math.Abs(qz.Coordinates.Z) > 2000 {
		t.Errorf("quantum jitter out of envelope: %+v", qz.Coordinates)
	}
}

func TestScore_FrequencyScore(t *testing.T) {
	sc := NewScorer(1)
	r := Route{TrafficScore: 90, OriginSystem: galaxy.Stanton, DestinationSystem: galaxy.Stanton}
	if a := sc.Score(r); a.FrequencyScore != 9 {
		t.Errorf("FrequencyScore = %v, want 9", a.FrequencyScore)
	}
}

func TestScore_RatingIdenticalAcrossRuns(t *testing.T) {
	// Ratings must be reproducible for the same route modulo the declared
	// random fields, which are inputs here and held fixed.
	r := Route{
		RouteCode: "X-GOLD-Y", CommodityName: "Gold",
		OriginTerminal: "Area18", DestinationTerminal: "Lorville",
		OriginSystem: galaxy.Stanton, DestinationSystem: galaxy.Stanton,
		BuyPrice: 100, SellPrice: 300, ProfitPerUnit: 200, ROI: 200,
		Distance: 25000, Investment: 50000, Profit: 100000, TrafficScore: 50,
		LastSeen: time.Now(),
	}
	a := NewScorer(5).Score(r)
	b := NewScorer(77).Score(r)
	if a.PiracyRating != b.PiracyRating {
		t.Errorf("rating differs across scorer seeds: %v vs %v", a.PiracyRating, b.PiracyRating)
	}
}

func TestTerminalVolatility_Range(t *testing.T) {
	for _, name := range []string{"Area18", "Lorville", "Rat's Nest", "Everus Harbor", ""} {
		v := terminalVolatility(name)
		if v < 0.1 || v > 0.5 {
			t.Errorf("terminalVolatility(%q) = %v outside [0.1,0.5]", name, v)
		}
	}
	if terminalVolatility("Area18") != terminalVolatility("AREA18") {
		t.Error("volatility should be case-insensitive")
	}
}
