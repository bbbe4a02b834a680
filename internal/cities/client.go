package cities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/citytable/internal/cache"
	"github.com/rshade/citytable/internal/logging"
)

// Defaults for the OpenDataSoft GeoNames dataset.
const (
	DefaultBaseURL  = "https://public.opendatasoft.com"
	DefaultDataset  = "geonames-all-cities-with-a-population-1000"
	DefaultPageSize = 20
	DefaultTimeout  = 10 * time.Second

	// MaxPageSize is the largest limit the records endpoint accepts.
	MaxPageSize = 100

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 8 << 20
	// maxErrorBodyBytes caps the body excerpt kept on APIError.
	maxErrorBodyBytes = 512
)

// ErrInvalidPage is returned for negative offsets or out-of-range limits.
var ErrInvalidPage = errors.New("invalid page request")

// Source fetches pages of city records.
type Source interface {
	FetchPage(ctx context.Context, offset, limit int) (Page, error)
}

// APIError is returned when the records endpoint answers with a non-2xx status.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("records API returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("records API returned %d", e.StatusCode)
}

// Client fetches city pages over HTTP. Concurrent requests for the same page
// share one round trip. When a cache store is attached, pages are served from
// it before going to the network.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	dataset    string
	userAgent  string
	store      cache.Store

	group singleflight.Group
}

var _ Source = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithDataset selects the dataset identifier.
func WithDataset(dataset string) ClientOption {
	return func(c *Client) {
		if dataset != "" {
			c.dataset = dataset
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed to WithHTTPClient
// is copied, not modified.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCache attaches a page cache. Disabled stores are ignored.
func WithCache(store cache.Store) ClientOption {
	return func(c *Client) {
		if store != nil && store.IsEnabled() {
			c.store = store
		}
	}
}

// NewClient creates a client for the GeoNames dataset.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		dataset:    DefaultDataset,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Dataset returns the dataset identifier the client reads from.
func (c *Client) Dataset() string {
	return c.dataset
}

// RecordsURL returns the request URL for one page.
func (c *Client) RecordsURL(offset, limit int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return fmt.Sprintf("%s/api/explore/v2.1/catalog/datasets/%s/records?%s",
		c.baseURL, url.PathEscape(c.dataset), q.Encode())
}

// FetchPage returns up to limit records starting at offset. Cancelling ctx
// abandons the wait without failing other callers sharing the request; the
// shared request itself is bounded by the HTTP client timeout.
func (c *Client) FetchPage(ctx context.Context, offset, limit int) (Page, error) {
	if offset < 0 || limit < 1 || limit > MaxPageSize {
		return Page{}, fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidPage, offset, limit)
	}

	key := strconv.Itoa(offset) + ":" + strconv.Itoa(limit)
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return c.fetch(shared, offset, limit)
	})

	select {
	case <-ctx.Done():
		return Page{}, fmt.Errorf("fetching cities at offset %d: %w", offset, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Page{}, res.Err
		}
		page, _ := res.Val.(Page)
		return page, nil
	}
}

func (c *Client) fetch(ctx context.Context, offset, limit int) (Page, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "cities").
		Str("operation", "FetchPage").
		Int("offset", offset).
		Int("limit", limit).
		Logger()

	cacheKey := cache.PageKey(c.dataset, offset, limit)
	if page, ok := c.fromCache(cacheKey, &logger); ok {
		return page, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RecordsURL(offset, limit), nil)
	if err != nil {
		return Page{}, fmt.Errorf("building records request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("records request failed")
		return Page{}, fmt.Errorf("fetching cities at offset %d: %w", offset, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Page{}, fmt.Errorf("reading records response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := newAPIError(resp.StatusCode, body)
		logger.Warn().Int("status", resp.StatusCode).Str("error_code", apiErr.ErrorCode).Msg("records API error")
		return Page{}, apiErr
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return Page{}, fmt.Errorf("decoding records response: %w", err)
	}

	logger.Debug().
		Int("results", len(page.Results)).
		Int("total_count", page.TotalCount).
		Dur("duration", time.Since(start)).
		Msg("fetched city page")

	if c.store != nil {
		if setErr := c.store.Set(cacheKey, body); setErr != nil {
			logger.Warn().Err(setErr).Msg("failed to cache city page")
		}
	}

	return page, nil
}

func (c *Client) fromCache(key string, logger *zerolog.Logger) (Page, bool) {
	if c.store == nil {
		return Page{}, false
	}

	entry, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheExpired) {
			logger.Warn().Err(err).Msg("page cache read failed")
		}
		return Page{}, false
	}

	var page Page
	if err := json.Unmarshal(entry.Data, &page); err != nil {
		logger.Warn().Err(err).Msg("discarding undecodable cached page")
		_ = c.store.Delete(key)
		return Page{}, false
	}

	logger.Debug().Dur("age", entry.Age()).Msg("city page served from cache")
	return page, true
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.ErrorCode = payload.ErrorCode
		apiErr.Message = payload.Message
	}

	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	apiErr.Body = string(body)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
