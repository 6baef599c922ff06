package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint serves the public catalog.
const DefaultEndpoint = "https://memeitizer.com/appstore/api/index.php"

// maxBodyBytes caps the catalog document we are willing to decode.
const maxBodyBytes = 8 << 20

var ErrNoEndpoint = errors.New("catalog: endpoint not configured")

// HTTPDoer describes the HTTP client used to fetch the catalog.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves one catalog snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// Client fetches the catalog document over HTTP.
type Client struct {
	endpoint  string
	client    HTTPDoer
	userAgent string
}

// NewClient returns a Client for endpoint. A nil doer gets an http.Client with
// the given timeout.
func NewClient(endpoint string, doer HTTPDoer, timeout time.Duration) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:  strings.TrimSpace(endpoint),
		client:    doer,
		userAgent: "storefront/1",
	}
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	if c == nil || c.endpoint == "" {
		return Snapshot{}, ErrNoEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Snapshot{}, fmt.Errorf("catalog endpoint returned %s", resp.Status)
	}

	var snap Snapshot
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode catalog: %w", err)
	}
	return snap, nil
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (Snapshot, error)

func (f FetcherFunc) Fetch(ctx context.Context) (Snapshot, error) { return f(ctx) }
