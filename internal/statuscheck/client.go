package statuscheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = time.Second
	maxRetryWait      = 10 * time.Second
	maxResponseBytes  = 4 << 20
)

// ErrInvalidInput is returned for a blank email.
var ErrInvalidInput = errors.New("email is required")

// HTTPError is a non-success response from the status endpoint.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Gagal memuat data (%d)", e.Status)
}

// Client queries the third-party application status endpoint. The endpoint
// takes a pre-encoded query prefix that the email is appended to, plus a
// fixed signature.
type Client struct {
	BaseURL    string
	Prefix     string
	Signature  string
	HTTP       *http.Client
	MaxRetries int
	Backoff    time.Duration
	// Sleep waits between retries; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewClient constructs a Client with the given request timeout.
func NewClient(baseURL, prefix, signature string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimSpace(baseURL),
		Prefix:     prefix,
		Signature:  signature,
		HTTP:       &http.Client{Timeout: timeout},
		MaxRetries: defaultMaxRetries,
		Backoff:    defaultBackoff,
	}
}

// LookupURL builds the request URL for email.
func (c *Client) LookupURL(email string) string {
	return c.BaseURL + "?p=" + c.Prefix + encodeURIComponent(strings.TrimSpace(email)) + "&s=" + c.Signature
}

// Lookup fetches the application list for email. 429 and 5xx responses are
// retried, honoring Retry-After when the server sends one.
func (c *Client) Lookup(ctx context.Context, email string) ([]Application, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidInput
	}
	body, err := c.get(ctx, c.LookupURL(email))
	if err != nil {
		return nil, err
	}
	return ParseApplications(body), nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("build status request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Cache-Control", "no-store")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("status request: %w", err)
		}
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read status response: %w", err)
			}
			return body, nil
		}
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()

		if !retryable(resp.StatusCode) || attempt >= c.maxRetries() {
			return nil, &HTTPError{Status: resp.StatusCode}
		}
		wait := retryAfter(resp.Header.Get("Retry-After"), c.backoff()*time.Duration(attempt+1))
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryAfter reads a Retry-After header in seconds, capped at maxRetryWait.
func retryAfter(header string, fallback time.Duration) time.Duration {
	wait := fallback
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	if wait > maxRetryWait {
		wait = maxRetryWait
	}
	return wait
}

func (c *Client) maxRetries() int {
	if c.MaxRetries < 0 {
		return 0
	}
	return c.MaxRetries
}

func (c *Client) backoff() time.Duration {
	if c.Backoff <= 0 {
		return defaultBackoff
	}
	return c.Backoff
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// encodeURIComponent escapes s for use inside a query value, spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
