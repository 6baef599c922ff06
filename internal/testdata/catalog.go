package testdata

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jask/storefront/internal/catalog"
)

var names = []string{"Leaf Timer", "Glow", "Cloud Garden", "Pixel Pets", "Night Owl", "Torch", "Nebula Notes"}

var categories = []string{"tools", "games", "lifestyle", "media"}

// Apps builds n sample catalog entries. The same seed gives the same apps;
// ids run from 1 to n in order.
func Apps(n int, seed int64) []catalog.App {
	r := rand.New(rand.NewSource(seed))
	apps := make([]catalog.App, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("%s %03d", names[r.Intn(len(names))], i)
		shots := make([]string, r.Intn(4))
		for j := range shots {
			shots[j] = fmt.Sprintf("https://cdn.example.com/apps/%d/shot-%d.png", i, j)
		}
		apps = append(apps, catalog.App{
			ID:          i,
			Name:        name,
			Subtitle:    "sample app",
			IconURL:     fmt.Sprintf("https://cdn.example.com/apps/%d/icon.png", i),
			Screenshots: shots,
			Description: "Generated for tests.",
			Rating:      float64(r.Intn(51)) / 10,
			Reviews:     r.Intn(50000),
			Size:        fmt.Sprintf("%d MB", 1+r.Intn(200)),
			Version:     fmt.Sprintf("1.%d.%d", r.Intn(10), r.Intn(10)),
			APKURL:      fmt.Sprintf("https://cdn.example.com/apps/%d/app.apk", i),
			Featured:    r.Intn(5) == 0,
			Category:    categories[r.Intn(len(categories))],
		})
	}
	return apps
}

// Server serves snap as the catalog document and counts requests.
type Server struct {
	*httptest.Server
	hits atomic.Int32
}

// NewServer starts a catalog endpoint that answers every request with snap.
func NewServer(t *testing.T, snap catalog.Snapshot) *Server {
	t.Helper()
	body, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	return NewRawServer(t, http.StatusOK, string(body))
}

// NewRawServer answers every request with status and body.
func NewRawServer(t *testing.T, status int, body string) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

// Hits returns the number of requests served.
func (s *Server) Hits() int { return int(s.hits.Load()) }
