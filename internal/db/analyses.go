package db

import (
	"encoding/json"
	"fmt"
	"time"

	"sinister-snare/internal/engine"
	"sinister-snare/internal/galaxy"
)

// AnalysisFilter narrows and orders FindAnalyses results. Zero values mean
// "no constraint"; Limit 0 means unlimited.
type AnalysisFilter struct {
	MinRating float64
	MinProfit float64
	Commodity string // case-insensitive substring
	System    string // matches origin or destination system
	SortBy    string // "rating" (default) or "profit"
	Limit     int
}

// UpsertAnalysis writes a scored route, replacing any previous row with the
// same route code.
func (d *DB) UpsertAnalysis(a engine.RouteAnalysis) error {
	zonesJSON, err := json.Marshal(a.InterceptionZones)
	if err != nil {
		return fmt.Errorf("marshal zones: %w", err)
	}
	originJSON, _ := json.Marshal(a.CoordinatesOrigin)
	destJSON, _ := json.Marshal(a.CoordinatesDest)

	_, err = d.sql.Exec(`
		INSERT INTO route_analyses (
			route_code, commodity_name, origin_terminal, origin_system,
			destination_terminal, destination_system, buy_price, sell_price,
			profit_per_unit, roi, distance, investment, profit, buy_stock,
			sell_stock, traffic_score, coords_origin, coords_dest, last_seen,
			piracy_rating, risk_level, frequency_score, interception_zones,
			analysis_timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(route_code) DO UPDATE SET
			commodity_name = excluded.commodity_name,
			origin_terminal = excluded.origin_terminal,
			origin_system = excluded.origin_system,
			destination_terminal = excluded.destination_terminal,
			destination_system = excluded.destination_system,
			buy_price = excluded.buy_price,
			sell_price = excluded.sell_price,
			profit_per_unit = excluded.profit_per_unit,
			roi = excluded.roi,
			distance = excluded.distance,
			investment = excluded.investment,
			profit = excluded.profit,
			buy_stock = excluded.buy_stock,
			sell_stock = excluded.sell_stock,
			traffic_score = excluded.traffic_score,
			coords_origin = excluded.coords_origin,
			coords_dest = excluded.coords_dest,
			last_seen = excluded.last_seen,
			piracy_rating = excluded.piracy_rating,
			risk_level = excluded.risk_level,
			frequency_score = excluded.frequency_score,
			interception_zones = excluded.interception_zones,
			analysis_timestamp = excluded.analysis_timestamp`,
		a.RouteCode, a.CommodityName, a.OriginTerminal, a.OriginSystem,
		a.DestinationTerminal, a.DestinationSystem, a.BuyPrice, a.SellPrice,
		a.ProfitPerUnit, a.ROI, a.Distance, a.Investment, a.Profit, a.BuyStock,
		a.SellStock, a.TrafficScore, string(originJSON), string(destJSON),
		a.LastSeen.UTC().Format(time.RFC3339),
		a.PiracyRating, a.RiskLevel, a.FrequencyScore, string(zonesJSON),
		a.AnalysisTimestamp.UTC().Format(time.RFC3339),
	)
	return err
}

// FindAnalyses returns stored analyses matching the filter, sorted
// descending by the requested column.
func (d *DB) FindAnalyses(f AnalysisFilter) ([]engine.RouteAnalysis, error) {
	query := `
		SELECT route_code, commodity_name, origin_terminal, origin_system,
		       destination_terminal, destination_system, buy_price, sell_price,
		       profit_per_unit, roi, distance, investment, profit, buy_stock,
		       sell_stock, traffic_score, coords_origin, coords_dest, last_seen,
		       piracy_rating, risk_level, frequency_score, interception_zones,
		       analysis_timestamp
		  FROM route_analyses
		 WHERE piracy_rating >= ? AND profit >= ?
	`
	args := []interface{}{f.MinRating, f.MinProfit}
	if f.Commodity != "" {
		query += " AND commodity_name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+f.Commodity+"%")
	}
	if f.System != "" {
		query += " AND (origin_system LIKE ? COLLATE NOCASE OR destination_system LIKE ? COLLATE NOCASE)"
		args = append(args, "%"+f.System+"%", "%"+f.System+"%")
	}
	if f.SortBy == "profit" {
		query += " ORDER BY profit DESC"
	} else {
		query += " ORDER BY piracy_rating DESC"
	}
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := d.sql.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []engine.RouteAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	if analyses == nil {
		return []engine.RouteAnalysis{}, nil
	}
	return analyses, rows.Err()
}

// GetAnalysis looks up one route by code. Returns nil when absent.
func (d *DB) GetAnalysis(routeCode string) (*engine.RouteAnalysis, error) {
	rows, err := d.sql.Query(`
		SELECT route_code, commodity_name, origin_terminal, origin_system,
		       destination_terminal, destination_system, buy_price, sell_price,
		       profit_per_unit, roi, distance, investment, profit, buy_stock,
		       sell_stock, traffic_score, coords_origin, coords_dest, last_seen,
		       piracy_rating, risk_level, frequency_score, interception_zones,
		       analysis_timestamp
		  FROM route_analyses
		 WHERE route_code = ?`, routeCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	a, err := scanAnalysis(rows)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAllAnalyses clears the analysis table ahead of a refresh.
func (d *DB) DeleteAllAnalyses() error {
	_, err := d.sql.Exec("DELETE FROM route_analyses")
	return err
}

// CountAnalyses returns the number of stored analyses.
func (d *DB) CountAnalyses() (int, error) {
	var n int
	err := d.sql.QueryRow("SELECT COUNT(*) FROM route_analyses").Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(r rowScanner) (engine.RouteAnalysis, error) {
	var a engine.RouteAnalysis
	var originStr, destStr, zonesStr, lastSeen, analyzedAt string

	if err := r.Scan(
		&a.RouteCode, &a.CommodityName, &a.OriginTerminal, &a.OriginSystem,
		&a.DestinationTerminal, &a.DestinationSystem, &a.BuyPrice, &a.SellPrice,
		&a.ProfitPerUnit, &a.ROI, &a.Distance, &a.Investment, &a.Profit,
		&a.BuyStock, &a.SellStock, &a.TrafficScore, &originStr, &destStr,
		&lastSeen, &a.PiracyRating, &a.RiskLevel, &a.FrequencyScore,
		&zonesStr, &analyzedAt,
	); err != nil {
		return a, err
	}

	var origin, dest galaxy.Coordinates
	json.Unmarshal([]byte(originStr), &origin)
	json.Unmarshal([]byte(destStr), &dest)
	a.CoordinatesOrigin = origin
	a.CoordinatesDest = dest
	json.Unmarshal([]byte(zonesStr), &a.InterceptionZones)

	a.LastSeen, _ = time.Parse(time.RFC3339, lastSeen)
	a.AnalysisTimestamp, _ = time.Parse(time.RFC3339, analyzedAt)
	return a, nil
}
