package scan

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ed-rscan/internal/edsm"
	"ed-rscan/internal/engine"
	"ed-rscan/internal/stars"
)

// catalogServer fakes the EDSM endpoints the searcher touches.
func catalogServer(t *testing.T, origin edsm.System, sphere []edsm.System, bodies map[string]edsm.BodiesResult) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/system", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("systemName") != origin.Name {
			fmt.Fprint(w, `{}`)
			return
		}
		json.NewEncoder(w).Encode(origin)
	})
	mux.HandleFunc("/sphere-systems", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sphere)
	})
	mux.HandleFunc("/bodies", func(w http.ResponseWriter, r *http.Request) {
		// The client prefers the id64 over the name when it knows both.
		id := r.URL.Query().Get("systemId")
		name := r.URL.Query().Get("systemName")
		for _, res := range bodies {
			if res.Name == name || fmt.Sprint(res.ID64) == id {
				json.NewEncoder(w).Encode(res)
				return
			}
		}
		fmt.Fprint(w, `{}`)
	})
	return httptest.NewServer(mux)
}

func testSearcher(srv *httptest.Server) *Searcher {
	client := edsm.NewClient(nil)
	client.SystemsURL = srv.URL
	client.SystemURL = srv.URL
	return NewSearcher(client, engine.NewOptimizer(engine.Warmup()))
}

func coords(x, y, z float64) *edsm.Coords {
	return &edsm.Coords{X: x, Y: y, Z: z}
}

func TestRun_EndToEnd(t *testing.T) {
	origin := edsm.System{Name: "Sol", ID64: 10477373803, Coords: coords(0, 0, 0)}
	sphere := []edsm.System{
		origin, // the sphere query includes its own origin
		{Name: "A", ID64: 1, Coords: coords(5, 0, 0)},
		{Name: "B", ID64: 2, Coords: coords(10, 0, 0), BodyCount: stars.IntPtr(6), Bodies: stars.IntPtr(2)},
		{Name: "C", ID64: 3, Coords: coords(8, 0, 0), BodyCount: stars.IntPtr(4), Bodies: stars.IntPtr(4)},
	}
	srv := catalogServer(t, origin, sphere, nil)
	defer srv.Close()

	var messages []string
	route, err := testSearcher(srv).Run(Params{
		StartSystem: "Sol",
		Radius:      50,
		JumpRange:   20,
		Seed:        1,
	}, func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// C is fully surveyed and Sol is the origin; A and B remain.
	if route.Covered() != 2 {
		t.Fatalf("Covered = %d, want 2", route.Covered())
	}
	if route.Systems[0].Name != "A" || route.Systems[1].Name != "B" {
		t.Errorf("order = %s, %s; want A, B", route.Systems[0].Name, route.Systems[1].Name)
	}
	if math.Abs(route.TotalDistance-10) > 1e-9 {
		t.Errorf("TotalDistance = %v, want 10", route.TotalDistance)
	}

	joined := strings.Join(messages, "\n")
	if !strings.Contains(joined, "flight route calculations in progress") {
		t.Errorf("missing progress message, got:\n%s", joined)
	}
	if !strings.Contains(joined, "Final distance: 10.00 ly") {
		t.Errorf("missing final distance message, got:\n%s", joined)
	}
}

func TestRun_NoCandidates(t *testing.T) {
	origin := edsm.System{Name: "Sol", ID64: 1, Coords: coords(0, 0, 0)}
	sphere := []edsm.System{
		origin,
		{Name: "done", ID64: 2, Coords: coords(3, 0, 0), BodyCount: stars.IntPtr(2), Bodies: stars.IntPtr(2)},
	}
	srv := catalogServer(t, origin, sphere, nil)
	defer srv.Close()

	var messages []string
	route, err := testSearcher(srv).Run(Params{StartSystem: "Sol", JumpRange: 20},
		func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if route.Covered() != 0 {
		t.Errorf("Covered = %d, want 0", route.Covered())
	}
	if !strings.Contains(strings.Join(messages, "\n"), "0 systems found.") {
		t.Errorf("missing empty-result message: %v", messages)
	}
}

func TestRun_DeepScanDropsFreshlySurveyed(t *testing.T) {
	origin := edsm.System{Name: "Sol", ID64: 1, Coords: coords(0, 0, 0)}
	// The sphere document makes D look incomplete; the bodies endpoint
	// reveals it is fully surveyed.
	sphere := []edsm.System{
		origin,
		{Name: "D", ID64: 4, Coords: coords(5, 0, 0), BodyCount: stars.IntPtr(5)},
	}
	surveyed := edsm.BodiesResult{
		Name:      "D",
		ID64:      4,
		BodyCount: stars.IntPtr(5),
		Bodies: []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}{
			{"D A", "Star"}, {"D 1", "Planet"}, {"D 2", "Planet"},
			{"D 3", "Planet"}, {"D 4", "Planet"},
		},
	}
	srv := catalogServer(t, origin, sphere, map[string]edsm.BodiesResult{"D": surveyed})
	defer srv.Close()

	shallow, err := testSearcher(srv).Run(Params{StartSystem: "Sol", JumpRange: 20, Seed: 1}, nil)
	if err != nil {
		t.Fatalf("Run (shallow): %v", err)
	}
	if shallow.Covered() != 1 {
		t.Fatalf("shallow Covered = %d, want 1", shallow.Covered())
	}

	deep, err := testSearcher(srv).Run(Params{StartSystem: "Sol", JumpRange: 20, Seed: 1, DeepScan: true}, nil)
	if err != nil {
		t.Fatalf("Run (deep): %v", err)
	}
	if deep.Covered() != 0 {
		t.Errorf("deep Covered = %d, want 0", deep.Covered())
	}
}

func TestRun_InputValidation(t *testing.T) {
	srv := catalogServer(t, edsm.System{Name: "Sol"}, nil, nil)
	defer srv.Close()
	s := testSearcher(srv)

	if _, err := s.Run(Params{StartSystem: "  ", JumpRange: 20}, nil); err == nil {
		t.Error("expected error for blank start system")
	}
	if _, err := s.Run(Params{StartSystem: "Sol", JumpRange: 0}, nil); err == nil {
		t.Error("expected error for zero jump range")
	}
}

func TestRun_UnknownStartSystem(t *testing.T) {
	origin := edsm.System{Name: "Sol", ID64: 1, Coords: coords(0, 0, 0)}
	srv := catalogServer(t, origin, nil, nil)
	defer srv.Close()

	if _, err := testSearcher(srv).Run(Params{StartSystem: "No Such Place", JumpRange: 20}, nil); err == nil {
		t.Error("expected error for unknown start system")
	}
}

func TestRun_StartWithoutCoordinates(t *testing.T) {
	origin := edsm.System{Name: "Ghost", ID64: 9}
	srv := catalogServer(t, origin, nil, nil)
	defer srv.Close()

	if _, err := testSearcher(srv).Run(Params{StartSystem: "Ghost", JumpRange: 20}, nil); err == nil {
		t.Error("expected error for a coordinate-less start system")
	}
}
