// Package transport executes HTTP requests against a JSON API and surfaces
// non-2xx responses as *Error values carrying the status code and the
// fully-read response body. The body stream is consumed exactly once, here;
// everything downstream operates on the captured bytes.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/vietddude/storekit/internal/metrics"
)

// Error is a completed HTTP exchange that ended with a non-2xx status.
// Network-level failures (dial errors, timeouts, aborted requests) are
// returned as ordinary errors, never as *Error.
type Error struct {
	Status int
	Body   []byte
}

func (e *Error) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256]
	}
	return fmt.Sprintf("http %d: %s", e.Status, body)
}

// RetryConfig defines transient-failure retry behavior.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryConfig provides sensible defaults.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: 500 * time.Millisecond,
	MaxDelay:     5 * time.Second,
}

// Config holds client connection configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
}

// Client executes JSON requests against a single API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryConfig
}

// New creates a client for the given base URL.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry: cfg.Retry,
	}
}

// Do executes a single JSON request. The query is appended to the path, the
// body (if non-nil) is marshaled as JSON. Network failures and 5xx responses
// are retried with exponential backoff; 4xx responses are returned
// immediately as *Error.
func (c *Client) Do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	backoff := retry.NewExponential(c.retry.InitialDelay)
	backoff = retry.WithCappedDuration(c.retry.MaxDelay, backoff)
	backoff = retry.WithMaxRetries(uint64(c.retry.MaxAttempts-1), backoff)

	var out json.RawMessage
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		raw, err := c.do(ctx, method, endpoint, payload)
		if err != nil {
			var herr *Error
			if errors.As(err, &herr) {
				if herr.Status >= 500 {
					return retry.RetryableError(err)
				}
				return err
			}
			return retry.RetryableError(err)
		}
		out = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) (json.RawMessage, error) {
	start := time.Now()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIRequestErrorsTotal.WithLabelValues(method, "network").Inc()
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestErrorsTotal.WithLabelValues(method, "network").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	metrics.APIRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.APIRequestLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.APIRequestErrorsTotal.WithLabelValues(method, "http").Inc()
		return nil, &Error{Status: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
