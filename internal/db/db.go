package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"sinister-snare/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func defaultPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "snare.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "snare.db")
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// An empty path selects the default location next to the working directory.
func Open(path string) (*DB, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

func (d *DB) migrate() error {
	version := 0
	// Try to read current version
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS route_analyses (
				route_code           TEXT PRIMARY KEY,
				commodity_name       TEXT NOT NULL,
				origin_terminal      TEXT NOT NULL,
				origin_system        TEXT NOT NULL,
				destination_terminal TEXT NOT NULL,
				destination_system   TEXT NOT NULL,
				buy_price            REAL NOT NULL,
				sell_price           REAL NOT NULL,
				profit_per_unit      REAL NOT NULL,
				roi                  REAL NOT NULL,
				distance             REAL NOT NULL,
				investment           REAL NOT NULL,
				profit               REAL NOT NULL,
				buy_stock            REAL NOT NULL,
				sell_stock           REAL NOT NULL,
				traffic_score        REAL NOT NULL,
				coords_origin        TEXT NOT NULL DEFAULT '{}',
				coords_dest          TEXT NOT NULL DEFAULT '{}',
				last_seen            TEXT NOT NULL,
				piracy_rating        REAL NOT NULL,
				risk_level           TEXT NOT NULL,
				frequency_score      REAL NOT NULL,
				interception_zones   TEXT NOT NULL DEFAULT '[]',
				analysis_timestamp   TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_analyses_rating ON route_analyses(piracy_rating DESC);
			CREATE INDEX IF NOT EXISTS idx_analyses_profit ON route_analyses(profit DESC);

			CREATE TABLE IF NOT EXISTS historical_trends (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				route_code     TEXT NOT NULL,
				commodity_name TEXT NOT NULL,
				timestamp      TEXT NOT NULL,
				profit         REAL NOT NULL,
				roi            REAL NOT NULL,
				traffic_score  REAL NOT NULL,
				piracy_rating  REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_trends_route ON historical_trends(route_code);
			CREATE INDEX IF NOT EXISTS idx_trends_ts ON historical_trends(timestamp);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	if version < 2 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS alerts (
				id               TEXT PRIMARY KEY,
				alert_type       TEXT NOT NULL,
				route_code       TEXT NOT NULL,
				commodity_name   TEXT NOT NULL,
				message          TEXT NOT NULL,
				priority         TEXT NOT NULL,
				profit_threshold REAL NOT NULL DEFAULT 0,
				created_at       TEXT NOT NULL,
				acknowledged     INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_alerts_created ON alerts(created_at);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
		logger.Info("DB", "Applied migration v2 (alerts)")
	}

	return nil
}

// SqlDB returns the underlying *sql.DB for use by other packages.
func (d *DB) SqlDB() *sql.DB {
	return d.sql
}
