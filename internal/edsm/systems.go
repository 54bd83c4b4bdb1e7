package edsm

import "ed-rscan/internal/stars"

// Coords is the catalog's 3-D coordinate object.
type Coords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// System is a raw catalog document. Optional fields are pointers so absent
// and zero can be told apart; every field may be missing in practice.
type System struct {
	Name          string  `json:"name"`
	ID64          int64   `json:"id64"`
	Coords        *Coords `json:"coords"`
	BodyCount     *int    `json:"bodyCount"` // reported total body count
	Bodies        *int    `json:"bodies"`    // confirmed/observed body count
	RequirePermit bool    `json:"requirePermit"`
	Distance      float64 `json:"distance"` // from the sphere query origin, ly
}

// BodiesResult is the api-system-v1/bodies response. The catalog reports the
// expected total in bodyCount and lists the individually confirmed bodies.
type BodiesResult struct {
	Name      string `json:"name"`
	ID64      int64  `json:"id64"`
	BodyCount *int   `json:"bodyCount"`
	Bodies    []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"bodies"`
}

// Apply merges resolved fields of the document into a StarSystem record,
// leaving fields the document does not carry untouched.
func (d System) Apply(s *stars.StarSystem) {
	if s == nil {
		return
	}
	if d.Name != "" {
		s.Name = d.Name
	}
	if d.ID64 != 0 {
		s.Address = d.ID64
	}
	if d.Coords != nil {
		s.Pos = &stars.Point{X: d.Coords.X, Y: d.Coords.Y, Z: d.Coords.Z}
	}
	if d.RequirePermit {
		s.Meta.PermitRequired = true
	}
	if d.BodyCount != nil {
		s.Meta.ReportedBodies = stars.IntPtr(*d.BodyCount)
	}
	if d.Bodies != nil {
		s.Meta.ConfirmedBodies = stars.IntPtr(*d.Bodies)
	}
}

// ToStarSystem converts the document into a fresh StarSystem record.
func (d System) ToStarSystem() *stars.StarSystem {
	s := &stars.StarSystem{}
	d.Apply(s)
	return s
}
