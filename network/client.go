package network

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/internal/cache"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/log"
	"github.com/fluxstream/fluxstream/where"
	"github.com/spf13/viper"
)

// maxBody caps how much of a response is read.
const maxBody = 16 << 20

// Client is the HTTP Fetcher shared by every source.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   *hostLimiter
	pages     *cache.Store
}

var _ Fetcher = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit allows at most perSecond requests per second to each host.
func WithRateLimit(perSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = newHostLimiter(perSecond)
	}
}

// WithPageCache keeps successful response bodies in store.
func WithPageCache(store *cache.Store) ClientOption {
	return func(c *Client) {
		c.pages = store
	}
}

// WithTLSFingerprint makes the client present a Chrome TLS fingerprint.
func WithTLSFingerprint() ClientOption {
	return func(c *Client) {
		c.http.Transport = newImpersonatingTransport()
	}
}

// NewClient returns a Client with a pooled transport and no cache or rate limit.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: newTransport(),
		},
		userAgent: constant.UserAgent,
		limiter:   newHostLimiter(0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FromConfig builds the Client described by the network.* configuration keys.
func FromConfig() *Client {
	opts := []ClientOption{
		WithUserAgent(viper.GetString(key.NetworkUserAgent)),
		WithRateLimit(viper.GetInt(key.NetworkRatePerHost)),
		WithPageCache(cache.New(where.Pages(), viper.GetDuration(key.NetworkCacheTTL))),
	}

	if viper.GetBool(key.NetworkTLSFingerprint) {
		opts = append(opts, WithTLSFingerprint())
	}

	c := NewClient(opts...)
	if timeout := viper.GetDuration(key.NetworkTimeout); timeout > 0 {
		c.http.Timeout = timeout
	}

	return c
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.MaxConnsPerHost = 20
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// Text performs a GET request and returns the body.
func (c *Client) Text(ctx context.Context, u *url.URL, opts ...Option) (string, error) {
	req := newRequest(opts)
	target := u.String()

	cacheKey := cache.Key(target, canonicalHeaders(req.headers))
	if !req.noCache {
		var body string
		if c.pages.Read(cacheKey, &body) {
			log.With("url", target).Debugf("page cache hit")
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return "", &Error{URL: target, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &Error{URL: target, Err: err}
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	for k, v := range req.headers {
		httpReq.Header[k] = v
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &Error{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return "", &Error{URL: target, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", &Error{URL: target, Status: resp.StatusCode, Err: err}
	}

	body := string(data)
	if !req.noCache {
		if err := c.pages.Write(cacheKey, body); err != nil {
			log.With("url", target).Warnf("page cache write: %v", err)
		}
	}

	return body, nil
}

func canonicalHeaders(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.Join(h[k], ","))
		b.WriteByte(';')
	}
	return b.String()
}
