package db

import (
	"database/sql"

	"ed-rscan/internal/edsm"
)

// GetSystem returns a cached catalog system by name. Implements edsm.SystemStore.
func (d *DB) GetSystem(name string) (edsm.System, bool) {
	var (
		sys     edsm.System
		x, y, z sql.NullFloat64
		permit  int
	)
	err := d.sql.QueryRow(
		"SELECT name, id64, x, y, z, permit FROM system_cache WHERE name = ?", name,
	).Scan(&sys.Name, &sys.ID64, &x, &y, &z, &permit)
	if err != nil {
		return edsm.System{}, false
	}
	if x.Valid && y.Valid && z.Valid {
		sys.Coords = &edsm.Coords{X: x.Float64, Y: y.Float64, Z: z.Float64}
	}
	sys.RequirePermit = permit != 0
	return sys, true
}

// SetSystem stores a resolved catalog system. Implements edsm.SystemStore.
// Body counts are deliberately not cached: survey progress goes stale fast,
// while names and coordinates do not change.
func (d *DB) SetSystem(sys edsm.System) {
	var x, y, z interface{}
	if sys.Coords != nil {
		x, y, z = sys.Coords.X, sys.Coords.Y, sys.Coords.Z
	}
	permit := 0
	if sys.RequirePermit {
		permit = 1
	}
	d.sql.Exec(`
		INSERT INTO system_cache (name, id64, x, y, z, permit) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET id64 = excluded.id64,
			x = excluded.x, y = excluded.y, z = excluded.z, permit = excluded.permit`,
		sys.Name, sys.ID64, x, y, z, permit)
}
