package api

import (
	"time"

	"sinister-snare/internal/db"
	"sinister-snare/internal/engine"
	"sinister-snare/internal/galaxy"
)

// simulatedAnalyses is the last-resort route set served when the store is
// empty and the feed is unreachable. Values are plausible but fixed, and
// every response carrying them is labeled data_source = simulated.
func simulatedAnalyses(f db.AnalysisFilter) []engine.RouteAnalysis {
	now := time.Now().UTC()
	base := []engine.RouteAnalysis{
		simRoute("RATSNEST-GOLD-RUINSTAT", "Gold", "Rat's Nest", galaxy.Pyro,
			"Ruin Station", galaxy.Pyro, 1_860_000, 10.7, 78, 62_000, now),
		simRoute("ORBITUAR-PROCESSE-CHECKMAT", "Processed Narcotics", "Orbituary", galaxy.Pyro,
			"Checkmate", galaxy.Pyro, 3_450_000, 24.3, 91, 58_000, now),
		simRoute("PORTOLIS-QUANTUMS-AREA18I", "Quantum Superconductors", "Port Olisar", galaxy.Stanton,
			"Area 18 IO Tower", galaxy.Stanton, 2_210_000, 18.9, 74, 28_000, now),
		simRoute("CBDLORVI-MEDICALS-ORISONM", "Medical Supplies", "CBD Lorville", galaxy.Stanton,
			"Orison Municipal", galaxy.Stanton, 960_000, 14.2, 58, 22_000, now),
	}

	var out []engine.RouteAnalysis
	for _, a := range base {
		if a.PiracyRating < f.MinRating || a.Profit < f.MinProfit {
			continue
		}
		out = append(out, a)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out
}

func simRoute(code, commodity, originTerm, originSys, destTerm, destSys string,
	profit, roi, rating, distance float64, now time.Time) engine.RouteAnalysis {

	origin := galaxy.BoundsFor(originSys)
	dest := galaxy.BoundsFor(destSys)
	oc := galaxy.Coordinates{X: (origin.MinX + origin.MaxX) / 2, Y: (origin.MinY + origin.MaxY) / 2, Z: origin.MinZ}
	dc := galaxy.Coordinates{X: (dest.MinX + dest.MaxX) / 2, Y: (dest.MinY + dest.MaxY) / 2, Z: dest.MaxZ}

	return engine.RouteAnalysis{
		Route: engine.Route{
			RouteCode:           code,
			CommodityName:       commodity,
			OriginTerminal:      originTerm,
			OriginSystem:        originSys,
			DestinationTerminal: destTerm,
			DestinationSystem:   destSys,
			ProfitPerUnit:       profit / 1000,
			ROI:                 roi,
			Distance:            distance,
			Investment:          profit / (roi / 100),
			Profit:              profit,
			TrafficScore:        rating,
			CoordinatesOrigin:   oc,
			CoordinatesDest:     dc,
			LastSeen:            now,
		},
		PiracyRating:   rating,
		RiskLevel:      engine.RiskLevelFor(rating),
		FrequencyScore: rating / 10,
		InterceptionZones: []engine.InterceptionWaypoint{
			{
				Name:                 "Route Midpoint",
				Coordinates:          galaxy.Lerp(oc, dc, 0.5),
				InterceptProbability: 0.85,
				Difficulty:           engine.DifficultyModerate,
				Description:          "Optimal interception point along the direct route",
			},
		},
		AnalysisTimestamp: now,
	}
}
