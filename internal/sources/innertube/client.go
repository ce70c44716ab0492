// Package innertube queries YouTube's internal web API for search, trending,
// channel listings, related videos and single-video metadata.
package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
	"ytdeck/internal/sources"
	"ytdeck/internal/sources/cookies"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL       = "https://www.youtube.com"
	defaultClientName    = "WEB"
	defaultClientVersion = "2.20240101.00.00"

	trendingBrowseID    = "FEtrending"
	channelVideosParams = "EgZ2aWRlb3PyBgQKAjoA"
	channelShortsParams = "EgZzaG9ydHPyBgUKA5oBAA=="

	maxResponseBytes = 16 << 20
)

// Endpoints
const (
	endpointSearch = "search"
	endpointBrowse = "browse"
	endpointNext   = "next"
	endpointPlayer = "player"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, mostly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRate limits outgoing requests to rps per second. Zero or less disables limiting.
func WithRate(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCookies sends browser cookies with each request.
func WithCookies(m *cookies.Manager) Option {
	return func(c *Client) {
		c.cookies = m
	}
}

// WithLocale sets the interface language and region.
func WithLocale(hl, gl string) Option {
	return func(c *Client) {
		if hl != "" {
			c.hl = hl
		}
		if gl != "" {
			c.gl = gl
		}
	}
}

// Client talks to the innertube endpoints.
type Client struct {
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	cookies   *cookies.Manager
	hl, gl    string
	userAgent string
	now       func() time.Time
}

// New returns an innertube client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: consts.HTTPClientTimeout},
		limiter:   rate.NewLimiter(rate.Limit(consts.DefaultInnertubeRPS), 1),
		hl:        consts.DefaultLanguage,
		gl:        consts.DefaultRegion,
		userAgent: consts.DefaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// clientContext identifies the caller to innertube.
type clientContext struct {
	Client struct {
		ClientName    string `json:"clientName"`
		ClientVersion string `json:"clientVersion"`
		HL            string `json:"hl"`
		GL            string `json:"gl"`
	} `json:"client"`
}

// request is the union of the request bodies this client sends.
type request struct {
	Context      clientContext `json:"context"`
	Query        string        `json:"query,omitempty"`
	BrowseID     string        `json:"browseId,omitempty"`
	Params       string        `json:"params,omitempty"`
	Continuation string        `json:"continuation,omitempty"`
	VideoID      string        `json:"videoId,omitempty"`
}

func (c *Client) newRequest() request {
	var r request
	r.Context.Client.ClientName = defaultClientName
	r.Context.Client.ClientVersion = defaultClientVersion
	r.Context.Client.HL = c.hl
	r.Context.Client.GL = c.gl
	return r
}

// Search runs a query. A non-empty continuation fetches the next page instead.
func (c *Client) Search(ctx context.Context, query, continuation string) (feed.Page, error) {
	req := c.newRequest()
	if continuation != "" {
		req.Continuation = continuation
	} else {
		req.Query = strings.TrimSpace(query)
	}
	return c.list(ctx, consts.SourceSearch, endpointSearch, req)
}

// Trending fetches the trending page.
func (c *Client) Trending(ctx context.Context) (feed.Page, error) {
	req := c.newRequest()
	req.BrowseID = trendingBrowseID
	return c.list(ctx, consts.SourceTrending, endpointBrowse, req)
}

// ChannelVideos lists a channel's uploads tab.
func (c *Client) ChannelVideos(ctx context.Context, channelID, continuation string) (feed.Page, error) {
	return c.channelTab(ctx, channelID, channelVideosParams, continuation)
}

// ChannelShorts lists a channel's shorts tab.
func (c *Client) ChannelShorts(ctx context.Context, channelID, continuation string) (feed.Page, error) {
	return c.channelTab(ctx, channelID, channelShortsParams, continuation)
}

func (c *Client) channelTab(ctx context.Context, channelID, params, continuation string) (feed.Page, error) {
	req := c.newRequest()
	if continuation != "" {
		req.Continuation = continuation
	} else {
		req.BrowseID = channelID
		req.Params = params
	}
	return c.list(ctx, consts.SourceChannel+":"+channelID, endpointBrowse, req)
}

// Related lists the watch-next suggestions for a video, excluding the video itself.
func (c *Client) Related(ctx context.Context, videoID string) (feed.Page, error) {
	req := c.newRequest()
	req.VideoID = videoID
	page, err := c.list(ctx, consts.SourceRelated, endpointNext, req)
	if err != nil {
		return page, err
	}

	kept := page.Items[:0]
	for _, it := range page.Items {
		if it.ID != videoID {
			kept = append(kept, it)
		}
	}
	page.Items = kept
	return page, nil
}

// Video fetches metadata for a single video.
func (c *Client) Video(ctx context.Context, videoID string) (models.ContentItem, error) {
	sourceID := "video:" + videoID
	req := c.newRequest()
	req.VideoID = videoID

	resp, err := c.post(ctx, sourceID, endpointPlayer, req)
	if err != nil {
		return models.ContentItem{}, err
	}

	item, ok := videoFromPlayer(resp)
	if !ok {
		return models.ContentItem{}, &sources.SourceError{
			Source: sourceID,
			Err:    fmt.Errorf("%w: no video details for %q", sources.ErrMalformedResponse, videoID),
		}
	}
	return item, nil
}

// list posts req and extracts every video renderer from the answer.
func (c *Client) list(ctx context.Context, sourceID, endpoint string, req request) (feed.Page, error) {
	resp, err := c.post(ctx, sourceID, endpoint, req)
	if err != nil {
		return feed.Page{}, err
	}

	ex := extractItems(resp, c.now())
	logger.Pl.D(2, "Extracted %d items from %s (continuation: %v)", len(ex.items), sourceID, ex.continuation != "")
	return feed.Page{Items: ex.items, Continuation: ex.continuation}, nil
}

// post sends one request, waiting on the rate limiter first.
func (c *Client) post(ctx context.Context, sourceID, endpoint string, body request) (node, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &sources.SourceError{Source: sourceID, Err: err}
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &sources.SourceError{Source: sourceID, Err: err}
	}

	u := fmt.Sprintf("%s/youtubei/v1/%s?prettyPrint=false", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, &sources.SourceError{Source: sourceID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", c.hl)
	req.Header.Set("X-YouTube-Client-Name", "1")
	req.Header.Set("X-YouTube-Client-Version", defaultClientVersion)
	c.addCookies(ctx, req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &sources.SourceError{Source: sourceID, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.Pl.D(1, "Failed to close response body for %s: %v", sourceID, err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, sources.StatusError(sourceID, res.StatusCode)
	}

	var out node
	dec := json.NewDecoder(io.LimitReader(res.Body, maxResponseBytes))
	if err := dec.Decode(&out); err != nil {
		return nil, &sources.SourceError{Source: sourceID, Err: fmt.Errorf("%w: %v", sources.ErrMalformedResponse, err)}
	}
	if object(out) == nil {
		return nil, &sources.SourceError{Source: sourceID, Err: fmt.Errorf("%w: top level is not an object", sources.ErrMalformedResponse)}
	}
	return out, nil
}

func (c *Client) addCookies(ctx context.Context, req *http.Request) {
	if c.cookies == nil {
		return
	}
	ck, err := c.cookies.Cookies(ctx, req.URL.String())
	if err != nil {
		logger.Pl.D(1, "No cookies for %q: %v", req.URL.Host, err)
		return
	}
	for _, cookie := range ck {
		req.AddCookie(cookie)
	}
}

// Source adapters for the aggregator.

// SearchSource wraps Search.
func (c *Client) SearchSource(query, continuation string) feed.Source {
	return feed.NewSource(consts.SourceSearch, func(ctx context.Context) (feed.Page, error) {
		return c.Search(ctx, query, continuation)
	})
}

// TrendingSource wraps Trending.
func (c *Client) TrendingSource() feed.Source {
	return feed.NewSource(consts.SourceTrending, c.Trending)
}

// ChannelSource wraps ChannelVideos.
func (c *Client) ChannelSource(channelID, continuation string) feed.Source {
	return feed.NewSource(consts.SourceChannel+":"+channelID, func(ctx context.Context) (feed.Page, error) {
		return c.ChannelVideos(ctx, channelID, continuation)
	})
}

// ChannelShortsSource wraps ChannelShorts.
func (c *Client) ChannelShortsSource(channelID string) feed.Source {
	return feed.NewSource(consts.SourceChannel+"-shorts:"+channelID, func(ctx context.Context) (feed.Page, error) {
		return c.ChannelShorts(ctx, channelID, "")
	})
}

// RelatedSource wraps Related.
func (c *Client) RelatedSource(videoID string) feed.Source {
	return feed.NewSource(consts.SourceRelated, func(ctx context.Context) (feed.Page, error) {
		return c.Related(ctx, videoID)
	})
}
