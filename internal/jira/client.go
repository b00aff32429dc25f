// Package jira implements a thin read-only client for the Jira Cloud REST API.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiPrefix is the Jira Cloud REST API root, relative to the site base URL.
const apiPrefix = "/rest/api/3/"

// AuthFunc applies authentication to an outgoing request.
type AuthFunc func(*http.Request)

// NewBasicAuth returns an AuthFunc using email + API token basic authentication.
func NewBasicAuth(email, token string) AuthFunc {
	return func(r *http.Request) {
		r.SetBasicAuth(email, token)
	}
}

// Options configures a Client.
type Options struct {
	// Timeout is the hard per-request cap. Zero means 15s.
	Timeout time.Duration
	// MaxRetries caps retries for throttled or transport-failed requests.
	MaxRetries int
	// InitialDelay is the first backoff delay. Zero means 500ms.
	InitialDelay time.Duration
	// Logger receives debug records of outgoing requests. Nil disables logging.
	Logger *slog.Logger
}

// Client handles communication with the Jira REST API. It performs no remote
// writes: every method issues read-only queries.
type Client struct {
	baseURL      *url.URL
	httpc        *http.Client
	auth         AuthFunc
	logger       *slog.Logger
	maxRetries   int
	initialDelay time.Duration

	// sleep is replaceable in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// NewClient returns a Jira client rooted at the given site base URL.
func NewClient(baseURL *url.URL, auth AuthFunc, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	delay := opts.InitialDelay
	if delay == 0 {
		delay = 500 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout:   timeout, // hard per-request cap
			Transport: newTransport(),
		},
		auth:         auth,
		logger:       logger,
		maxRetries:   opts.MaxRetries,
		initialDelay: delay,
		sleep:        time.Sleep,
	}
}

// newTransport returns a tuned Transport with sane pooling so pagination
// isn't penalized by connection churn.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// doRequest performs an authenticated request with bounded retry and returns
// the response body. Throttling (429) and transport-level failures are retried
// up to MaxRetries times with exponential backoff; a Retry-After header, when
// present, overrides the computed delay. All other failures return immediately.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, wrapInternal(fmt.Errorf("marshal body: %w", err))
		}
		payload = data
	}

	delay := c.initialDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request", "attempt", attempt, "max", c.maxRetries, "delay", delay)
			c.sleep(delay)
			delay *= 2
		}

		data, retryAfter, err := c.doOnce(ctx, method, path, query, payload)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
		if retryAfter > 0 && retryAfter < 30*time.Second {
			delay = retryAfter
		}
	}
	return nil, lastErr
}

// doOnce performs a single HTTP exchange. retryAfter is non-zero when the
// server supplied a Retry-After header on a throttled response.
func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, payload []byte) (data []byte, retryAfter time.Duration, err error) {
	relURL := &url.URL{Path: path}
	fullURL := c.baseURL.ResolveReference(&url.URL{Path: apiPrefix}).ResolveReference(relURL)
	if len(query) > 0 {
		fullURL.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), bodyReader)
	if err != nil {
		return nil, 0, wrapInternal(fmt.Errorf("create request: %w", err))
	}

	c.auth(req) // apply authentication

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("jira request", "method", method, "url", fullURL.String())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, transportError(err)
	}
	defer resp.Body.Close() // nolint:errcheck

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, transportError(err)
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		}
		return nil, retryAfter, statusError(resp.StatusCode, fullURL.Path)
	}
	return data, 0, nil
}

// parseRetryAfter parses the delay-seconds form of a Retry-After header.
func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(value, "%d", &seconds); err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// decode unmarshals a response body, converting shape mismatches into
// MalformedResponse failures.
func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return malformed(err)
	}
	return nil
}
