package membership

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/models"
)

// HTTPDoer makes HTTP requests (allows injection for testing).
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPDoer sets a custom HTTP client.
func WithHTTPDoer(d HTTPDoer) ClientOption {
	return func(c *HTTPClient) {
		c.doer = d
	}
}

// HTTPClient implements API against a running ytdeck server.
type HTTPClient struct {
	baseURL string
	doer    HTTPDoer
}

// NewHTTPClient returns a client for the server at baseURL (e.g. "http://127.0.0.1:8828").
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{Timeout: consts.HTTPClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultPlaylist fetches the default playlist and its member IDs.
func (c *HTTPClient) DefaultPlaylist(ctx context.Context) (DefaultPlaylist, error) {
	var pl DefaultPlaylist
	if err := c.do(ctx, http.MethodGet, "/api/v1/playlists/default", nil, &pl); err != nil {
		return DefaultPlaylist{}, err
	}
	if pl.ID == "" {
		return DefaultPlaylist{}, fmt.Errorf("server returned a default playlist without an ID")
	}
	return pl, nil
}

// AddItem adds item to the playlist.
func (c *HTTPClient) AddItem(ctx context.Context, playlistID string, item models.ContentItem) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode item %q: %w", item.ID, err)
	}
	return c.do(ctx, http.MethodPost, "/api/v1/playlists/"+url.PathEscape(playlistID)+"/items", body, nil)
}

// RemoveItem removes videoID from the playlist.
func (c *HTTPClient) RemoveItem(ctx context.Context, playlistID, videoID string) error {
	path := "/api/v1/playlists/" + url.PathEscape(playlistID) + "/items/" + url.PathEscape(videoID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Video fetches the metadata for videoID from the server.
func (c *HTTPClient) Video(ctx context.Context, videoID string) (models.ContentItem, error) {
	var item models.ContentItem
	if err := c.do(ctx, http.MethodGet, "/api/v1/videos/"+url.PathEscape(videoID), nil, &item); err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// do sends a request and decodes a JSON response into out when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
