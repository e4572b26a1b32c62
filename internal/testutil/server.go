package testutil

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewIPv4TestServer starts an httptest server bound to 127.0.0.1 and closes it on cleanup.
func NewIPv4TestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()

	t.Cleanup(server.Close)
	return server
}

// VolumeFixture describes one item of a fake Google Books response.
type VolumeFixture struct {
	ID            string
	Title         string
	Authors       []string
	Categories    []string
	PublishedDate string
	AverageRating float64
}

// VolumesJSON renders fixtures as a Google Books volumes search body.
func VolumesJSON(t *testing.T, fixtures ...VolumeFixture) []byte {
	t.Helper()

	items := make([]map[string]any, 0, len(fixtures))
	for _, f := range fixtures {
		info := map[string]any{"title": f.Title}
		if len(f.Authors) > 0 {
			info["authors"] = f.Authors
		}
		if len(f.Categories) > 0 {
			info["categories"] = f.Categories
		}
		if f.PublishedDate != "" {
			info["publishedDate"] = f.PublishedDate
		}
		if f.AverageRating > 0 {
			info["averageRating"] = f.AverageRating
		}
		items = append(items, map[string]any{"id": f.ID, "volumeInfo": info})
	}

	body, err := json.Marshal(map[string]any{
		"kind":       "books#volumes",
		"totalItems": len(items),
		"items":      items,
	})
	if err != nil {
		t.Fatalf("failed to marshal volumes fixture: %v", err)
	}
	return body
}
