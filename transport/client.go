// Package transport is the HTTP layer behind generated API clients.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL    = "https://api.pachca.com/api/shared/v1"
	DefaultAuthHeader = "Authorization"
	DefaultAuthPrefix = "Bearer"
)

// Client sends requests to one API server on behalf of one token.
type Client struct {
	token      string
	baseURL    string
	authHeader string
	authPrefix string
	userAgent  string
	timeout    time.Duration
	headers    http.Header
	cookies    []*http.Cookie
	insecure   bool
	noRedirect bool
	raise      bool
	logger     *slog.Logger

	once       sync.Once
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHeaders adds headers sent with every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers.Set(k, v)
		}
	}
}

// WithCookies adds cookies sent with every request.
func WithCookies(cookies map[string]string) Option {
	return func(c *Client) {
		for k, v := range cookies {
			c.cookies = append(c.cookies, &http.Cookie{Name: k, Value: v})
		}
	}
}

// WithHTTPClient replaces the lazily built http.Client. The caller is then
// responsible for authentication.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.once.Do(func() { c.httpClient = hc })
	}
}

// WithRaiseOnUnexpectedStatus makes undocumented status codes an error.
func WithRaiseOnUnexpectedStatus(raise bool) Option {
	return func(c *Client) { c.raise = raise }
}

// WithAuthHeader changes the credential header name and value prefix. An
// empty prefix sends the bare token.
func WithAuthHeader(name, prefix string) Option {
	return func(c *Client) {
		c.authHeader = name
		c.authPrefix = prefix
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify() Option {
	return func(c *Client) { c.insecure = true }
}

// WithoutRedirects returns redirect responses instead of following them.
func WithoutRedirects() Option {
	return func(c *Client) { c.noRedirect = true }
}

// WithLogger sets the logger used for request debugging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a Client authenticating with token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		authHeader: DefaultAuthHeader,
		authPrefix: DefaultAuthPrefix,
		userAgent:  "pachcagen",
		headers:    http.Header{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// HTTPClient returns the http.Client used for requests, building it on
// first use.
func (c *Client) HTTPClient() *http.Client {
	c.once.Do(func() {
		base := http.DefaultTransport.(*http.Transport).Clone()
		if c.insecure {
			base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		hc := &http.Client{
			Timeout:   c.timeout,
			Transport: &authTransport{next: base, header: c.authHeader, value: c.credential()},
		}
		if c.noRedirect {
			hc.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
		}
		c.httpClient = hc
	})
	return c.httpClient
}

func (c *Client) credential() string {
	if c.authPrefix == "" {
		return c.token
	}
	return c.authPrefix + " " + c.token
}

// authTransport sets the credential header captured when the http.Client
// was built.
type authTransport struct {
	next   http.RoundTripper
	header string
	value  string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(t.header, t.value)
	return t.next.RoundTrip(req)
}

// RawResponse is a fully read HTTP response.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do sends r once. Transport errors are returned as they are.
func (c *Client) Do(ctx context.Context, r *Request) (*RawResponse, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	c.logRequest(req)
	start := time.Now()

	resp, err := c.HTTPClient().Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("response",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)
	return &RawResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *Client) newRequest(ctx context.Context, r *Request) (*http.Request, error) {
	path, err := ExpandPath(r.Path, r.PathParams)
	if err != nil {
		return nil, err
	}
	u := c.baseURL + path
	if q := r.Query.Encode(); q != "" {
		u += "?" + q
	}

	body, contentType, err := r.body()
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, u, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	return req, nil
}

func (c *Client) logRequest(req *http.Request) {
	if !c.logger.Enabled(req.Context(), slog.LevelDebug) {
		return
	}
	headers := make(map[string]string, len(req.Header))
	for k, v := range req.Header {
		if strings.EqualFold(k, c.authHeader) || strings.EqualFold(k, "Proxy-Authorization") || strings.EqualFold(k, "Cookie") {
			headers[k] = "<redacted>"
			continue
		}
		headers[k] = strings.Join(v, ", ")
	}
	c.logger.Debug("request", "method", req.Method, "url", req.URL.String(), "headers", headers)
}
