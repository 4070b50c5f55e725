package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/photogrid/pkg/cache"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/httputil"
	"github.com/matzehuels/photogrid/pkg/observability"
)

// Client provides the shared HTTP plumbing for gallery API clients: response
// caching, retries, default headers and status mapping.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	prefix   string
	ttl      time.Duration
	headers  map[string]string
	attempts int
	backoff  time.Duration
}

// NewClient creates a Client. Cache keys passed to [Client.Cached] are
// prefixed with prefix and stored for ttl. Headers are applied to every
// request; pass nil for none.
func NewClient(c cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:     NewHTTPClient(),
		cache:    c,
		prefix:   prefix,
		ttl:      ttl,
		headers:  headers,
		attempts: 3,
		backoff:  time.Second,
	}
}

// SetTimeout replaces the request timeout.
func (c *Client) SetTimeout(d time.Duration) { c.http.Timeout = d }

// SetRetry changes how often retryable failures are attempted.
func (c *Client) SetRetry(attempts int, backoff time.Duration) {
	c.attempts, c.backoff = attempts, backoff
}

// SetHeader sets a default header. An empty value removes it.
func (c *Client) SetHeader(key, value string) {
	if value == "" {
		delete(c.headers, key)
		return
	}
	if c.headers == nil {
		c.headers = make(map[string]string)
	}
	c.headers[key] = value
}

// SetPrefix replaces the cache key prefix, e.g. after the token jar changed.
func (c *Client) SetPrefix(prefix string) { c.prefix = prefix }

// Cached returns v from the cache, or runs fetch and stores the JSON
// encoding of v. refresh skips the lookup but still stores. fetch is run
// once; the request helpers it calls do their own retrying.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	key = c.prefix + key
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok && json.Unmarshal(data, v) == nil {
			return nil
		}
	}
	if err := fetch(); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// Invalidate drops a cached key.
func (c *Client) Invalidate(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, c.prefix+key)
}

// Get performs a GET and JSON-decodes the response into v, retrying
// transient failures.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders is Get with extra headers that override the defaults.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	return httputil.Retry(ctx, c.attempts, c.backoff, func() error {
		resp, err := c.Do(ctx, http.MethodGet, url, nil, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		return decode(resp.Body, v)
	})
}

// GetBytes performs a GET and returns the raw body, retrying transient
// failures.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := httputil.Retry(ctx, c.attempts, c.backoff, func() error {
		resp, err := c.Do(ctx, http.MethodGet, url, nil, nil)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read body"))
		}
		return nil
	})
	return data, err
}

// GetText is GetBytes as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	data, err := c.GetBytes(ctx, url)
	return string(data), err
}

// PostForm sends form url-encoded and decodes the JSON answer into v
// (skipped when v is nil). POSTs are never retried.
func (c *Client) PostForm(ctx context.Context, url string, form url.Values, v any) (*http.Response, error) {
	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	resp, err := c.Do(ctx, http.MethodPost, url, strings.NewReader(form.Encode()), headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}
	return resp, decode(resp.Body, v)
}

// PostBody sends body with the given content type and decodes the JSON
// answer into v.
func (c *Client) PostBody(ctx context.Context, url, contentType string, body io.Reader, v any) error {
	resp, err := c.Do(ctx, http.MethodPost, url, body, map[string]string{"Content-Type": contentType})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp.Body, v)
}

// Do sends one request and maps non-200 statuses to errors. On success the
// caller owns resp.Body.
func (c *Client) Do(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("%w: %v", ErrNetwork, err), "%s %s", method, path))
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, resp.Header.Get("Retry-After")); err != nil {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		resp.Body.Close()
		if msg := strings.TrimSpace(string(snippet)); msg != "" && !bytes.HasPrefix(snippet, []byte("<")) {
			return nil, fmt.Errorf("%w (%s)", err, msg)
		}
		return nil, err
	}
	return resp, nil
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode response")
	}
	return nil
}

// checkStatus maps a response status to an error. 403 means the server no
// longer accepts the token cookie and the user has to redeem again; 429
// means the rate limiter kicked in.
func checkStatus(code int, retryAfter string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusForbidden:
		return errors.New(errors.ErrCodeReauthenticate, "access denied (status 403), redeem a code again")
	case code == http.StatusUnauthorized:
		return errors.Wrap(errors.ErrCodeUnauthorized, ErrNetwork, "status %d", code)
	case code == http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNotFound, ErrNotFound, "status %d", code)
	case code == http.StatusTooManyRequests, code >= 500:
		after := httputil.ParseRetryAfter(retryAfter, time.Now())
		return httputil.RetryAfter(errors.Wrap(errors.ErrCodeNetwork, ErrNetwork, "status %d", code), after)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, ErrNetwork, "status %d", code)
	}
}
