package db

import (
	"time"

	"sinister-snare/internal/engine"
)

// InsertHistoricalTrend appends one time-series point for a route.
func (d *DB) InsertHistoricalTrend(tr engine.HistoricalTrend) error {
	if tr.Timestamp.IsZero() {
		tr.Timestamp = time.Now().UTC()
	}
	_, err := d.sql.Exec(`
		INSERT INTO historical_trends (
			route_code, commodity_name, timestamp, profit, roi, traffic_score, piracy_rating
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tr.RouteCode, tr.CommodityName,
		tr.Timestamp.UTC().Format(time.RFC3339),
		tr.Profit, tr.ROI, tr.TrafficScore, tr.PiracyRating,
	)
	return err
}

// TrendsForWindow returns points from the last hoursBack hours, optionally
// narrowed to one route code and/or a commodity substring.
func (d *DB) TrendsForWindow(routeCode, commodity string, hoursBack int, now time.Time) ([]engine.HistoricalTrend, error) {
	return d.TrendsBetween(routeCode, commodity, now.Add(-time.Duration(hoursBack)*time.Hour), now)
}

// TrendsBetween returns points with from <= timestamp <= to, ascending.
func (d *DB) TrendsBetween(routeCode, commodity string, from, to time.Time) ([]engine.HistoricalTrend, error) {
	query := `
		SELECT route_code, commodity_name, timestamp, profit, roi, traffic_score, piracy_rating
		  FROM historical_trends
		 WHERE timestamp >= ? AND timestamp <= ?
	`
	args := []interface{}{
		from.UTC().Format(time.RFC3339),
		to.UTC().Format(time.RFC3339),
	}
	if routeCode != "" {
		query += " AND route_code = ?"
		args = append(args, routeCode)
	}
	if commodity != "" {
		query += " AND commodity_name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+commodity+"%")
	}
	query += " ORDER BY timestamp ASC"

	rows, err := d.sql.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []engine.HistoricalTrend
	for rows.Next() {
		var tr engine.HistoricalTrend
		var ts string
		if err := rows.Scan(&tr.RouteCode, &tr.CommodityName, &ts, &tr.Profit, &tr.ROI, &tr.TrafficScore, &tr.PiracyRating); err != nil {
			return nil, err
		}
		tr.Timestamp, _ = time.Parse(time.RFC3339, ts)
		trends = append(trends, tr)
	}
	if trends == nil {
		return []engine.HistoricalTrend{}, nil
	}
	return trends, rows.Err()
}

// PruneTrends drops points older than the retention window and reports how
// many rows went away.
func (d *DB) PruneTrends(olderThan time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-olderThan).UTC().Format(time.RFC3339)
	res, err := d.sql.Exec("DELETE FROM historical_trends WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
