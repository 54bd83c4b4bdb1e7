package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ed-rscan/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func dbPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "rscan.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "rscan.db")
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open() (*DB, error) {
	return OpenPath(dbPath())
}

// OpenPath opens the database at an explicit path. Used by tests.
func OpenPath(path string) (*DB, error) {
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

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS system_cache (
				name    TEXT PRIMARY KEY,
				id64    INTEGER NOT NULL DEFAULT 0,
				x       REAL,
				y       REAL,
				z       REAL,
				permit  INTEGER NOT NULL DEFAULT 0
			);

			CREATE TABLE IF NOT EXISTS route_history (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp      TEXT NOT NULL,
				start_system   TEXT NOT NULL,
				radius         INTEGER NOT NULL,
				jump_range     REAL NOT NULL,
				systems_found  INTEGER NOT NULL,
				total_distance REAL NOT NULL,
				duration_ms    INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_route_history_ts ON route_history(timestamp);

			CREATE TABLE IF NOT EXISTS route_legs (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				history_id   INTEGER NOT NULL REFERENCES route_history(id),
				seq          INTEGER NOT NULL,
				name         TEXT NOT NULL,
				id64         INTEGER NOT NULL DEFAULT 0,
				leg_distance REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_route_legs_history ON route_legs(history_id);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	return nil
}

// SqlDB returns the underlying *sql.DB for use by other packages.
func (d *DB) SqlDB() *sql.DB {
	return d.sql
}
