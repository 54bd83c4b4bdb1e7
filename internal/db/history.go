package db

import (
	"time"

	"ed-rscan/internal/engine"
)

// HistoryEntry is one saved route, legs included.
type HistoryEntry struct {
	ID            int64
	Timestamp     string
	StartSystem   string
	Radius        int
	JumpRange     float64
	SystemsFound  int
	TotalDistance float64
	DurationMs    int64
	Legs          []HistoryLeg
}

// HistoryLeg is one hop of a saved route.
type HistoryLeg struct {
	Seq         int
	Name        string
	ID64        int64
	LegDistance float64
}

// SaveRoute persists a computed route with its legs and returns the history id.
func (d *DB) SaveRoute(startSystem string, radius int, jumpRange float64, route engine.Route, duration time.Duration) (int64, error) {
	tx, err := d.sql.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO route_history (timestamp, start_system, radius, jump_range, systems_found, total_distance, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), startSystem, radius, jumpRange,
		len(route.Systems), route.TotalDistance, duration.Milliseconds())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, sys := range route.Systems {
		leg := 0.0
		if sys.Meta.LegDistance != nil {
			leg = *sys.Meta.LegDistance
		}
		if _, err := tx.Exec(`
			INSERT INTO route_legs (history_id, seq, name, id64, leg_distance)
			VALUES (?, ?, ?, ?, ?)`,
			id, i, sys.Name, sys.Address, leg); err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

// RecentRoutes returns the latest saved routes, newest first, without legs.
func (d *DB) RecentRoutes(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.Query(`
		SELECT id, timestamp, start_system, radius, jump_range, systems_found, total_distance, duration_ms
		FROM route_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.StartSystem, &e.Radius,
			&e.JumpRange, &e.SystemsFound, &e.TotalDistance, &e.DurationMs); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RouteLegs returns the legs of a saved route in visiting order.
func (d *DB) RouteLegs(historyID int64) ([]HistoryLeg, error) {
	rows, err := d.sql.Query(`
		SELECT seq, name, id64, leg_distance FROM route_legs
		WHERE history_id = ? ORDER BY seq`, historyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryLeg
	for rows.Next() {
		var l HistoryLeg
		if err := rows.Scan(&l.Seq, &l.Name, &l.ID64, &l.LegDistance); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
