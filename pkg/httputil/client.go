package httputil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/observability"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3
	DefaultBackoff  = time.Second

	// MaxBodySize caps how much of a response body is read.
	MaxBodySize = 16 << 20
)

// Client fetches remote documents with caching and retries.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	headers  map[string]string
	ttl      time.Duration
	attempts int
	backoff  time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the attempt count and the initial backoff.
func WithRetry(attempts int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = attempts
		c.backoff = backoff
	}
}

// WithTTL sets how long cached responses live.
func WithTTL(ttl time.Duration) ClientOption {
	return func(c *Client) { c.ttl = ttl }
}

// NewClient creates a Client. A nil cache disables caching. Headers are
// sent with every request.
func NewClient(c cache.Cache, headers map[string]string, opts ...ClientOption) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	cl := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		cache:    c,
		headers:  headers,
		ttl:      cache.TTLSource,
		attempts: DefaultAttempts,
		backoff:  DefaultBackoff,
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// Cached returns the value stored under key, or runs fetch with retries and
// stores its result. refresh bypasses the cache read but still writes.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, fetch func() ([]byte, error)) ([]byte, error) {
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "source")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "source")
	}

	var data []byte
	err := Retry(ctx, c.attempts, c.backoff, func() error {
		var err error
		data, err = fetch()
		return err
	})
	if err != nil {
		return nil, unwrapRetryable(err)
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "source", len(data))
	}
	return data, nil
}

// GetBytes performs a single GET and returns the body. Transient failures
// come back as [RetryableError].
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs a GET with extra headers merged over the defaults.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, MaxBodySize))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
	}
	return data, nil
}

// GetJSON fetches url with retries and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	var data []byte
	err := Retry(ctx, c.attempts, c.backoff, func() error {
		var err error
		data, err = c.GetWithHeaders(ctx, url, map[string]string{"Accept": "application/json"})
		return err
	})
	if err != nil {
		return unwrapRetryable(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", url)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad url %q", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", url)
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(url, resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: not found", url)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d %s", url, code, http.StatusText(code))
	}
}
