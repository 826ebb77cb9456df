package suggest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dshills/reportassist/internal/ghost"
)

// Client answers a suggestion request.
type Client interface {
	Suggest(ctx context.Context, req Request) ([]ghost.Suggestion, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) ([]ghost.Suggestion, error)

// Suggest calls f(ctx, req).
func (f ClientFunc) Suggest(ctx context.Context, req Request) ([]ghost.Suggestion, error) {
	return f(ctx, req)
}

// DefaultTimeout bounds one suggestion request.
const DefaultTimeout = 5 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPClient posts requests to the report suggestion service.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	limiter  *rate.Limiter
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient sets the underlying http.Client. A nil client keeps the
// default. The client is never modified; WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit allows at most perSecond requests per second with the
// given burst. Requests over the limit fail with ErrRateLimited instead of
// waiting. A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) HTTPOption {
	return func(c *HTTPClient) {
		c.limiter = newLimiter(perSecond, burst)
	}
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// NewHTTPClient creates a client for endpoint.
func NewHTTPClient(endpoint string, opts ...HTTPOption) (*HTTPClient, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrNoEndpoint
	}
	c := &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// Suggest implements Client.
func (c *HTTPClient) Suggest(ctx context.Context, req Request) ([]ghost.Suggestion, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	body, err := EncodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", id)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return DecodeResponse(data)
}
