package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sinister-snare/internal/engine"
)

// ErrAlertNotFound is returned when acknowledging an unknown alert id.
var ErrAlertNotFound = fmt.Errorf("alert not found")

// AlertFilter narrows ListAlerts. Acknowledged nil means both states.
type AlertFilter struct {
	Priority     string
	Acknowledged *bool
	Limit        int
}

// InsertAlert persists an alert, assigning a uuid and timestamp when the
// caller leaves them empty. Returns the stored id.
func (d *DB) InsertAlert(a engine.Alert) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := d.sql.Exec(`
		INSERT INTO alerts (
			id, alert_type, route_code, commodity_name, message, priority,
			profit_threshold, created_at, acknowledged
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AlertType, a.RouteCode, a.CommodityName, a.Message, a.Priority,
		a.ProfitThreshold, a.CreatedAt.UTC().Format(time.RFC3339), boolToInt(a.Acknowledged),
	)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

// AcknowledgeAlert marks one alert as acknowledged. ErrAlertNotFound when
// the id does not exist.
func (d *DB) AcknowledgeAlert(id string) error {
	res, err := d.sql.Exec("UPDATE alerts SET acknowledged = 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlertNotFound
	}
	return nil
}

// CountUnacknowledgedSince counts open alerts created at or after since.
func (d *DB) CountUnacknowledgedSince(since time.Time) (int, error) {
	var n int
	err := d.sql.QueryRow(
		"SELECT COUNT(*) FROM alerts WHERE acknowledged = 0 AND created_at >= ?",
		since.UTC().Format(time.RFC3339),
	).Scan(&n)
	return n, err
}

// ListAlerts returns alerts newest first, optionally filtered.
func (d *DB) ListAlerts(f AlertFilter) ([]engine.Alert, error) {
	query := `
		SELECT id, alert_type, route_code, commodity_name, message, priority,
		       profit_threshold, created_at, acknowledged
		  FROM alerts
		 WHERE 1 = 1
	`
	var args []interface{}
	if f.Priority != "" {
		query += " AND priority = ?"
		args = append(args, f.Priority)
	}
	if f.Acknowledged != nil {
		query += " AND acknowledged = ?"
		args = append(args, boolToInt(*f.Acknowledged))
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := d.sql.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []engine.Alert
	for rows.Next() {
		var a engine.Alert
		var createdAt string
		var acked int
		if err := rows.Scan(&a.ID, &a.AlertType, &a.RouteCode, &a.CommodityName,
			&a.Message, &a.Priority, &a.ProfitThreshold, &createdAt, &acked); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		a.Acknowledged = acked != 0
		alerts = append(alerts, a)
	}
	if alerts == nil {
		return []engine.Alert{}, nil
	}
	return alerts, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
