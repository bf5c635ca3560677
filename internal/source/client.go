package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a thin JSON-over-HTTP client shared by the provider adapters.
// It retries with exponential backoff on HTTP 429 and reports every failure
// as a *ProviderError.
type Client struct {
	provider   Provider
	baseURL    string
	httpClient *http.Client
	maxRetries int
	userAgent  string
}

// NewClient creates a client for the provider rooted at baseURL.
func NewClient(provider Provider, baseURL string, timeout time.Duration) *Client {
	return &Client{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: 3,
		userAgent:  "dashboard/1.0",
	}
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(
	ctx context.Context,
	path string,
	query url.Values,
	result interface{},
) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastStatus int
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return c.fail(KindTransport, 0, fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return c.fail(KindTransport, 0, fmt.Errorf("executing request GET %s: %w", path, err))
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return c.fail(KindTransport, resp.StatusCode, fmt.Errorf("reading response body: %w", readErr))
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastStatus = resp.StatusCode
			if attempt == c.maxRetries {
				break
			}

			select {
			case <-ctx.Done():
				return c.fail(KindTransport, 0, ctx.Err())
			case <-time.After(retryAfterDuration(resp, attempt)):
				continue
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return c.fail(KindStatus, resp.StatusCode, fmt.Errorf(
				"unexpected status on GET %s: %s", path, snippet(body),
			))
		}

		if err := json.Unmarshal(body, result); err != nil {
			return c.fail(KindDecode, resp.StatusCode, fmt.Errorf(
				"unmarshaling response from GET %s: %w", path, err,
			))
		}

		return nil
	}

	return c.fail(KindRateLimited, lastStatus, fmt.Errorf(
		"max retries (%d) exceeded on GET %s", c.maxRetries, path,
	))
}

// Decode wraps a shape error found after a successful unmarshal.
func (c *Client) Decode(err error) error {
	return c.fail(KindDecode, 0, err)
}

func (c *Client) fail(kind ErrorKind, status int, err error) error {
	return &ProviderError{Provider: c.provider, Kind: kind, Status: status, Err: err}
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}

// ErrEmptyResponse is used when a provider answers with no usable data.
var ErrEmptyResponse = errors.New("empty response")
