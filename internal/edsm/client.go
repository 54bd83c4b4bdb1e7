// Package edsm is a client for the EDSM star catalog API.
package edsm

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultSystemsURL = "https://www.edsm.net/api-v1"
	defaultSystemURL  = "https://www.edsm.net/api-system-v1"

	userAgent = "ed-rscan/1.0 (github.com)"
)

// SystemStore is a persistent L2 cache for resolved systems.
type SystemStore interface {
	GetSystem(name string) (System, bool)
	SetSystem(System)
}

// Client is a rate-limited EDSM HTTP client with L1 (memory) and optional
// L2 (SQLite) caching. A singleflight.Group prevents duplicate in-flight
// lookups for the same system name.
type Client struct {
	SystemsURL string // api-v1 base (sphere queries)
	SystemURL  string // api-system-v1 base (single system, bodies)

	http        *http.Client
	sem         chan struct{}
	systemCache sync.Map // string -> System (L1 in-memory)
	systemStore SystemStore
	group       singleflight.Group
}

// NewClient creates an EDSM client with the given system cache store.
// EDSM asks clients to stay well under ~10 requests/sec; 4 concurrent
// connections keeps sphere+bodies fetches comfortably inside that.
func NewClient(store SystemStore) *Client {
	return &Client{
		SystemsURL:  defaultSystemsURL,
		SystemURL:   defaultSystemURL,
		http:        &http.Client{Timeout: 60 * time.Second},
		sem:         make(chan struct{}, 4),
		systemStore: store,
	}
}

// options is the fixed query-option tail sent with every catalog request.
func options() string {
	return "&showId=1&showPermit=1&showCoordinates=1&showInformation=0&showPrimaryStar=0&includeHidden=0"
}

// System resolves a single system by name, going L1 -> L2 -> API.
func (c *Client) System(name string) (*System, error) {
	if name == "" {
		return nil, fmt.Errorf("edsm: empty system name")
	}
	if v, ok := c.systemCache.Load(name); ok {
		sys := v.(System)
		return &sys, nil
	}
	if c.systemStore != nil {
		if sys, ok := c.systemStore.GetSystem(name); ok {
			c.systemCache.Store(name, sys)
			return &sys, nil
		}
	}

	v, err, _ := c.group.Do(name, func() (interface{}, error) {
		var sys System
		u := fmt.Sprintf("%s/system?systemName=%s%s", c.SystemURL, url.QueryEscape(name), options())
		if err := c.GetJSON(u, &sys); err != nil {
			return nil, err
		}
		if sys.Name == "" {
			return nil, fmt.Errorf("edsm: system not found: %s", name)
		}
		return sys, nil
	})
	if err != nil {
		return nil, err
	}
	sys := v.(System)
	c.systemCache.Store(name, sys)
	if c.systemStore != nil {
		c.systemStore.SetSystem(sys)
	}
	return &sys, nil
}

// SphereSystems returns all catalog systems within radius ly of the named
// system. The radius is clamped to the API's accepted 5..100 range.
func (c *Client) SphereSystems(name string, radius int) ([]System, error) {
	if name == "" {
		return nil, fmt.Errorf("edsm: empty system name")
	}
	radius = ClampRadius(radius)
	u := fmt.Sprintf("%s/sphere-systems?systemName=%s&radius=%s%s",
		c.SystemsURL, url.QueryEscape(name), strconv.Itoa(radius), options())
	var out []System
	if err := c.GetJSON(u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bodies returns survey information for a system, preferring the catalog
// address over the name when both are known.
func (c *Client) Bodies(name string, address int64) (*BodiesResult, error) {
	var u string
	switch {
	case address != 0:
		u = fmt.Sprintf("%s/bodies?systemId=%d%s", c.SystemURL, address, options())
	case name != "":
		u = fmt.Sprintf("%s/bodies?systemName=%s%s", c.SystemURL, url.QueryEscape(name), options())
	default:
		return nil, fmt.Errorf("edsm: bodies query needs a name or address")
	}
	var out BodiesResult
	if err := c.GetJSON(u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClampRadius bounds a sphere radius to what the API accepts, defaulting
// non-positive values to 50 ly.
func ClampRadius(radius int) int {
	switch {
	case radius <= 0:
		return 50
	case radius < 5:
		return 5
	case radius > 100:
		return 100
	}
	return radius
}

// GetJSON fetches a URL and decodes JSON into dst.
func (c *Client) GetJSON(u string, dst interface{}) error {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("edsm %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
