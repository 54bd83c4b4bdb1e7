package edsm

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// memStore is an in-memory SystemStore for tests.
type memStore struct {
	mu sync.Mutex
	m  map[string]System
}

func newMemStore() *memStore { return &memStore{m: make(map[string]System)} }

func (s *memStore) GetSystem(name string) (System, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sys, ok := s.m[name]
	return sys, ok
}

func (s *memStore) SetSystem(sys System) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sys.Name] = sys
}

func testClient(srv *httptest.Server, store SystemStore) *Client {
	c := NewClient(store)
	c.SystemsURL = srv.URL
	c.SystemURL = srv.URL
	return c
}

func TestClampRadius(t *testing.T) {
	tests := []struct{ in, want int }{
		{-10, 50},
		{0, 50},
		{1, 5},
		{5, 5},
		{50, 50},
		{100, 100},
		{101, 100},
		{1000, 100},
	}
	for _, tt := range tests {
		if got := ClampRadius(tt.in); got != tt.want {
			t.Errorf("ClampRadius(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSystem_ResolvesAndCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if got := r.URL.Query().Get("systemName"); got != "Sol" {
			t.Errorf("systemName = %q", got)
		}
		if r.URL.Query().Get("showCoordinates") != "1" {
			t.Error("showCoordinates option missing")
		}
		fmt.Fprint(w, `{"name":"Sol","id64":10477373803,"coords":{"x":0,"y":0,"z":0},"requirePermit":true}`)
	}))
	defer srv.Close()

	c := testClient(srv, nil)
	sys, err := c.System("Sol")
	if err != nil {
		t.Fatalf("System: %v", err)
	}
	if sys.Name != "Sol" || sys.ID64 != 10477373803 {
		t.Errorf("sys = %+v", sys)
	}
	if sys.Coords == nil {
		t.Fatal("Coords = nil")
	}
	if !sys.RequirePermit {
		t.Error("RequirePermit = false")
	}

	// Second lookup is served from the in-memory cache.
	if _, err := c.System("Sol"); err != nil {
		t.Fatalf("System (cached): %v", err)
	}
	if hits != 1 {
		t.Errorf("API hits = %d, want 1", hits)
	}
}

func TestSystem_UsesStoreAcrossClients(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"name":"Lave","id64":42,"coords":{"x":75.75,"y":48.75,"z":70.75}}`)
	}))
	defer srv.Close()

	store := newMemStore()
	if _, err := testClient(srv, store).System("Lave"); err != nil {
		t.Fatalf("System: %v", err)
	}
	if len(store.m) != 1 {
		t.Fatalf("store size = %d, want 1", len(store.m))
	}

	// A fresh client has a cold L1 but hits the shared store, not the API.
	if _, err := testClient(srv, store).System("Lave"); err != nil {
		t.Fatalf("System (store): %v", err)
	}
	if hits != 1 {
		t.Errorf("API hits = %d, want 1", hits)
	}
}

func TestSystem_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// EDSM answers unknown names with an empty object.
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	if _, err := testClient(srv, nil).System("No Such Place"); err == nil {
		t.Fatal("expected error for unknown system")
	}
}

func TestSystem_EmptyName(t *testing.T) {
	if _, err := NewClient(nil).System(""); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestSphereSystems_ClampsRadius(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("radius"); got != "5" {
			t.Errorf("radius = %q, want 5", got)
		}
		fmt.Fprint(w, `[{"name":"a","distance":1.5},{"name":"b","bodyCount":4,"bodies":4}]`)
	}))
	defer srv.Close()

	out, err := testClient(srv, nil).SphereSystems("Sol", 1)
	if err != nil {
		t.Fatalf("SphereSystems: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Distance != 1.5 {
		t.Errorf("Distance = %v", out[0].Distance)
	}
	if out[1].BodyCount == nil || *out[1].BodyCount != 4 {
		t.Errorf("BodyCount = %v", out[1].BodyCount)
	}
}

func TestBodies_PrefersAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("systemId"); got != "42" {
			t.Errorf("systemId = %q, want 42", got)
		}
		if r.URL.Query().Get("systemName") != "" {
			t.Error("systemName sent alongside systemId")
		}
		fmt.Fprint(w, `{"name":"Lave","id64":42,"bodyCount":9,"bodies":[{"name":"Lave A","type":"Star"},{"name":"Lave 1","type":"Planet"}]}`)
	}))
	defer srv.Close()

	res, err := testClient(srv, nil).Bodies("Lave", 42)
	if err != nil {
		t.Fatalf("Bodies: %v", err)
	}
	if res.BodyCount == nil || *res.BodyCount != 9 {
		t.Errorf("BodyCount = %v", res.BodyCount)
	}
	if len(res.Bodies) != 2 {
		t.Errorf("Bodies len = %d, want 2", len(res.Bodies))
	}
}

func TestBodies_NeedsNameOrAddress(t *testing.T) {
	if _, err := NewClient(nil).Bodies("", 0); err == nil {
		t.Fatal("expected error without name or address")
	}
}

func TestGetJSON_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var out System
	err := testClient(srv, nil).GetJSON(srv.URL, &out)
	if err == nil {
		t.Fatal("expected error on 429")
	}
}
