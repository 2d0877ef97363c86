// Package upstream is the single outbound HTTP client used for every
// third-party provider. Each provider gets its own Client with its own
// authentication strategy; all of them share one transport.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SirClappington/aso-backend/internal/metrics"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout applies when no per-call timeout is configured.
	DefaultTimeout = 15 * time.Second

	// maxBodyBytes caps how much of an upstream body is read.
	maxBodyBytes = 10 << 20

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

// NewHTTPClient returns the shared client. timeout bounds the whole exchange.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        defaultMaxIdleConns,
			MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
			IdleConnTimeout:     defaultIdleConnTimeout,
			TLSHandshakeTimeout: defaultTLSHandshakeTimeout,
		},
	}
}

// Response is a fully read upstream reply.
type Response struct {
	StatusCode int
	Body       []byte
}

type Client struct {
	provider   string
	baseURL    string
	httpClient *http.Client
	auth       Authenticator
	headers    map[string]string
	timeout    time.Duration
	logger     *zap.Logger
}

type Option func(*Client)

func WithAuth(auth Authenticator) Option {
	return func(c *Client) { c.auth = auth }
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each call through a context deadline, on top of
// whatever the http.Client enforces.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for provider rooted at baseURL.
func New(provider, baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		auth:     NoAuth{},
		headers:  map[string]string{},
		timeout:  DefaultTimeout,
		logger:   logger.With(zap.String("provider", provider)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(c.timeout)
	}
	return c
}

// Get issues one GET to baseURL+path with the given query. Non-2xx replies
// are returned as a Response, not an error; only transport failures error.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	q := req.URL.Query()
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	c.auth.Authenticate(req, q)
	req.URL.RawQuery = q.Encode()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(c.provider, "transport_error", time.Since(start))
		err = redactQuery(err, c.baseURL+path)
		c.logger.Warn("Upstream request failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.ObserveUpstream(c.provider, "transport_error", time.Since(start))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	took := time.Since(start)
	metrics.ObserveUpstream(c.provider, outcome(resp.StatusCode), took)
	c.logger.Debug("Upstream request completed",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", took),
	)

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// redactQuery drops the query string from a transport error so credentials
// sent as query parameters never reach logs or response bodies.
func redactQuery(err error, bare string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = bare
	}
	return err
}

func outcome(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "ok"
	case status >= 400 && status < 500:
		return "client_error"
	default:
		return "server_error"
	}
}
