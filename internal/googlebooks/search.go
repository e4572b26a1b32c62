package googlebooks

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
)

// Search runs a free-text volumes query and returns the raw items in API order.
// A response without items yields an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	if !c.HasAPIKey() {
		return nil, bferrors.ErrMissingAPIKey
	}

	endpoint := c.searchURL(query)
	slog.Debug("Searching Google Books", "query", query)

	var result SearchResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}

	if result.Items == nil {
		return []Volume{}, nil
	}

	slog.Debug("Google Books search complete", "query", query, "items", len(result.Items), "total", result.TotalItems)
	return result.Items, nil
}

// Ping verifies the API key and connectivity with a throwaway query.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Search(ctx, "test")
	return err
}

// searchURL builds <endpoint>?q=<query>&key=<key>.
func (c *Client) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", strings.TrimSpace(c.apiKey))
	if c.maxResults > 0 {
		params.Set("maxResults", strconv.Itoa(c.maxResults))
	}

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + params.Encode()
}
