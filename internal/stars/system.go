package stars

import (
	"fmt"
	"math"
)

// Point is a position in the galaxy in light-years.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Finite reports whether all three axes are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

// Metadata holds the per-system extras that used to live in a free-form map.
// ReportedBodies is the body count the catalog reports for the system;
// ConfirmedBodies is how many have actually been scanned. LegDistance is only
// set once the system has been placed into a route and means the distance from
// the previous system in that route.
type Metadata struct {
	PermitRequired  bool
	ReportedBodies  *int
	ConfirmedBodies *int
	LegDistance     *float64
}

// StarSystem is a single star system record. Pos is nil until the catalog
// resolves the system; when set, all three axes are set together.
type StarSystem struct {
	Name    string
	Address int64
	Pos     *Point
	Meta    Metadata
}

// New returns a StarSystem with just a display name.
func New(name string) *StarSystem {
	return &StarSystem{Name: name}
}

// SetName renames the system. An empty name clears the address and position
// too, since they only mean anything relative to a resolved name.
func (s *StarSystem) SetName(name string) {
	s.Name = name
	if name == "" {
		s.Address = 0
		s.Pos = nil
	}
}

// SetLegDistance records the distance from the previous system in a route.
func (s *StarSystem) SetLegDistance(d float64) {
	s.Meta.LegDistance = &d
}

// ClearBodies resets both body counts to unknown.
func (s *StarSystem) ClearBodies() {
	s.Meta.ReportedBodies = nil
	s.Meta.ConfirmedBodies = nil
}

// Resolved reports whether the system has a position.
func (s *StarSystem) Resolved() bool {
	return s != nil && s.Pos != nil
}

func (s *StarSystem) String() string {
	if s == nil {
		return "StarSystem(nil)"
	}
	if s.Pos == nil {
		return fmt.Sprintf("StarSystem(%q, addr=%d, unresolved)", s.Name, s.Address)
	}
	return fmt.Sprintf("StarSystem(%q, addr=%d, pos=[%.5f, %.5f, %.5f])",
		s.Name, s.Address, s.Pos.X, s.Pos.Y, s.Pos.Z)
}

// IntPtr and FloatPtr are small helpers for optional metadata fields.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
