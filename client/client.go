package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"sixgo.GO/config"
)

// TokenSource supplies the bearer token for authenticated requests. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Client talks to one upstream service (resource, admin or identity API).
// The base URL is resolved per request so environment switches take effect
// without rebuilding clients.
type Client struct {
	httpClient     *http.Client
	baseURL        func() string
	tokens         TokenSource
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource attaches the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook sets the callback invoked when an upstream responds
// 401. The hook runs once per failed request, before the error is returned.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient overrides the underlying http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL func() string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the upstream success wrapper {message, data, ts}.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	TS      string          `json:"ts"`
}

// Get issues a GET and decodes the envelope's data field into out.
// GETs are retried once on transport failure or 5xx.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	err := c.do(ctx, http.MethodGet, path, query, nil, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == 0 || apiErr.Status >= 500) {
		log.Printf("client: retrying GET %s after %v", path, err)
		return c.do(ctx, http.MethodGet, path, query, nil, out)
	}
	return err
}

// Post issues a POST with a JSON body wrapped as {data: body} and decodes
// the envelope's data field into out (out may be nil).
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := strings.TrimRight(c.baseURL(), "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(map[string]interface{}{"data": body})
		if err != nil {
			return &APIError{Message: "failed to encode request body"}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return transportError(err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return normalizeError(resp.StatusCode, raw)
	}
	if resp.StatusCode >= 400 {
		return normalizeError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Message: "malformed upstream response", Details: []ErrorDetail{{Code: "DECODE", Description: err.Error()}}}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Message: "malformed upstream payload", Details: []ErrorDetail{{Code: "DECODE", Description: err.Error()}}}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Locale-Code", config.AppConfig.LocaleCode)
	req.Header.Set("X-TimeZone-Offset", strconv.Itoa(config.TimezoneOffset()))
	req.Header.Set("X-Origin", config.AppConfig.OriginURL)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}
