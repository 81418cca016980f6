package lco

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/skywatch/internal/metrics"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client issues authenticated GET requests against the telescope-network API.
// It never retries; every failure comes back as a *FetchError.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client. The per-request timeout from
// Config still applies.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBreaker routes every request through cb.
func WithBreaker(cb *gobreaker.CircuitBreaker) ClientOption {
	return func(c *Client) { c.breaker = cb }
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// NewBreaker builds a circuit breaker that opens after the given number of
// consecutive transport or 5xx failures. Requests abandoned by the caller do
// not count. It returns nil when failures <= 0.
func NewBreaker(name string, failures int) *gobreaker.CircuitBreaker {
	if failures <= 0 {
		return nil
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// NewClient returns a Client for cfg. Without options it has no breaker and
// logs to slog.Default.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

type fetched struct {
	status int
	body   []byte
}

// serverError marks a 5xx response, which counts as a breaker failure.
type serverError struct {
	status int
}

func (e serverError) Error() string {
	return fmt.Sprintf("server error: %d", e.status)
}

// Get fetches url and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.fail(&FetchError{URL: url, Kind: KindNetwork, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Token "+c.cfg.Token)
	}

	res, err := c.execute(req)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return c.fail(&FetchError{URL: url, Kind: KindCircuitOpen, Err: err})
		}
		var se serverError
		if errors.As(err, &se) {
			return c.fail(&FetchError{URL: url, Kind: KindStatus, StatusCode: se.status})
		}
		return c.fail(&FetchError{URL: url, Kind: KindNetwork, Err: err})
	}

	if res.status < 200 || res.status >= 300 {
		return c.fail(&FetchError{URL: url, Kind: KindStatus, StatusCode: res.status})
	}

	if err := json.Unmarshal(res.body, out); err != nil {
		return c.fail(&FetchError{URL: url, Kind: KindMalformed, StatusCode: res.status, Err: err})
	}

	c.metrics.ObserveRequest("ok")
	return nil
}

// GetRaw fetches url and decodes the body into a generic JSON value.
func (c *Client) GetRaw(ctx context.Context, url string) (any, error) {
	var v any
	if err := c.Get(ctx, url, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// execute performs the round trip. Client errors (4xx) are returned as a
// result rather than an error so they do not count against the breaker.
func (c *Client) execute(req *http.Request) (fetched, error) {
	do := func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return nil, serverError{status: resp.StatusCode}
		}
		return fetched{status: resp.StatusCode, body: body}, nil
	}

	var (
		result interface{}
		err    error
	)
	if c.breaker != nil {
		result, err = c.breaker.Execute(do)
	} else {
		result, err = do()
	}
	if err != nil {
		return fetched{}, err
	}

	res, ok := result.(fetched)
	if !ok {
		return fetched{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return res, nil
}

func (c *Client) fail(fe *FetchError) error {
	c.metrics.ObserveRequest(string(fe.Kind))
	c.logger.Warn("lco request failed", "url", fe.URL, "kind", fe.Kind, "err", fe)
	return fe
}
