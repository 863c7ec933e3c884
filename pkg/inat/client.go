// Package inat is the iNaturalist API client: raw endpoint access with
// caching and retries, plus resolution of parsed natural-language queries
// into concrete API objects.
package inat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/naturelab/lifelist/pkg/cache"
	"github.com/naturelab/lifelist/pkg/httputil"
	"github.com/naturelab/lifelist/pkg/lserr"
)

// BaseURL is the iNaturalist API root.
const BaseURL = "https://api.inaturalist.org/v1"

const (
	httpTimeout = 10 * time.Second
	userAgent   = "lifelist (github.com/naturelab/lifelist)"
)

// Client provides access to the iNaturalist API. It handles HTTP requests
// with response caching and automatic retries on transient failures.
//
// All methods are safe for concurrent use by multiple goroutines, provided
// the cache backend is.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithKeyer replaces the cache key scheme, for shared backends that need
// prefixed keys.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) { c.keyer = k }
}

// NewClient creates an API client with the given cache backend.
//
// Parameters:
//   - backend: cache for API responses (use cache.NewNullCache() to disable)
//   - ttl: how long responses stay cached (typical: minutes to an hour)
func NewClient(backend cache.Cache, ttl time.Duration, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		keyer:   cache.NewDefaultKeyer(),
		ttl:     ttl,
		baseURL: BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against an API path and JSON-decodes the response
// into v, retrying transient failures with exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return httputil.APIBackoff.Retry(ctx, func() error {
		return c.doRequest(ctx, u, v)
	})
}

// cached runs get through the response cache. Cache failures are treated as
// misses; the API result wins.
func (c *Client) cached(ctx context.Context, namespace, path string, params url.Values, v any) error {
	key := c.keyer.HTTPKey(namespace, path+"?"+params.Encode())
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if err := json.Unmarshal(data, v); err == nil {
			return nil
		}
	}
	if err := c.get(ctx, path, params, v); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return lserr.Wrap(lserr.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{
			Err: lserr.Wrap(lserr.ErrCodeNetwork, err, "request %s", u),
		}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return lserr.Wrap(lserr.ErrCodeNetwork, err, "decode response from %s", u)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return lserr.New(lserr.ErrCodeNotFound, "resource not found")
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := 60
		if s := resp.Header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil {
				retryAfter = secs
			}
		}
		return &lserr.RateLimitedError{RetryAfter: retryAfter}
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{
			Err: lserr.New(lserr.ErrCodeNetwork, "server error: status %d", resp.StatusCode),
		}
	default:
		return lserr.New(lserr.ErrCodeNetwork, "unexpected status %d", resp.StatusCode)
	}
}

// values converts a string map to url.Values.
func values(params map[string]string) url.Values {
	v := url.Values{}
	for key, value := range params {
		v.Set(key, value)
	}
	return v
}
