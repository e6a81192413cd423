package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the production Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	// DefaultPageSize is the listing page size for paginated endpoints.
	DefaultPageSize = 100

	// DefaultMaxAttempts is the attempt budget for transient failures.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the base delay for exponential backoff.
	DefaultRetryDelay = 500 * time.Millisecond

	// apiVersion is the Notion-Version header value this client speaks.
	apiVersion = "2022-06-28"
)

// Client talks to the Notion workspace API on behalf of one credential.
// Every call passes through the client's rate limiter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	limiter     *RateLimiter
	maxAttempts int
	retryDelay  time.Duration
	pageSize    int
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithRateLimiter sets the limiter gating every outbound call.
// Default is a fresh limiter at DefaultRequestsPerSecond.
func WithRateLimiter(limiter *RateLimiter) ClientOption {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// WithMaxAttempts sets the attempt budget for transient failures.
func WithMaxAttempts(attempts int) ClientOption {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithRetryDelay sets the base delay for exponential backoff.
func WithRetryDelay(delay time.Duration) ClientOption {
	return func(c *Client) {
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// WithPageSize sets the listing page size.
func WithPageSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for one integration token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     DefaultBaseURL,
		token:       token,
		limiter:     NewRateLimiter(DefaultRequestsPerSecond),
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		pageSize:    DefaultPageSize,
		logger:      slog.Default().With("component", "notion-client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Pages lazily streams every page the token can see, following the
// search cursor until the remote signals no further pages.
//
// The sequence is finite and non-restartable: iterating it a second time
// re-issues the listing calls from scratch. The first error terminates
// the sequence.
func (c *Client) Pages(ctx context.Context) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		cursor := ""
		for {
			resp, err := c.searchPages(ctx, cursor)
			if err != nil {
				yield(nil, err)
				return
			}

			for _, page := range resp.Results {
				if !yield(page, nil) {
					return
				}
			}

			if !resp.HasMore || resp.NextCursor == "" {
				return
			}
			cursor = resp.NextCursor
		}
	}
}

// searchPages issues one page-listing call.
func (c *Client) searchPages(ctx context.Context, cursor string) (*listResponse[*Page], error) {
	body := searchRequest{
		Filter:      searchFilter{Property: "object", Value: "page"},
		StartCursor: cursor,
		PageSize:    c.pageSize,
	}

	var resp listResponse[*Page]
	if err := c.call(ctx, http.MethodPost, "/v1/search", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// blockChildren issues one child-listing call for a block or page.
func (c *Client) blockChildren(ctx context.Context, blockID, cursor string) (*listResponse[*Block], error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(c.pageSize))
	if cursor != "" {
		query.Set("start_cursor", cursor)
	}

	var resp listResponse[*Block]
	path := "/v1/blocks/" + blockID + "/children"
	if err := c.call(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// call performs one logical API call, retrying transient failures with
// exponential backoff up to the attempt budget. Rate-limit rejections
// honor the remote's Retry-After as the delay floor.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		lastErr = c.doOnce(ctx, method, path, query, body, out)
		if lastErr == nil {
			if attempt > 1 {
				c.logger.Debug("call succeeded after retry", "path", path, "attempt", attempt)
			}
			return nil
		}

		if !isTransient(lastErr) || attempt == c.maxAttempts {
			break
		}

		// Exponential backoff: retryDelay * 2^(attempt-1)
		delay := c.retryDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}
		var rateLimitErr *RateLimitError
		if errors.As(lastErr, &rateLimitErr) && rateLimitErr.RetryAfter > delay {
			delay = rateLimitErr.RetryAfter
		}

		c.logger.Debug("transient call failure, will retry",
			"path", path, "attempt", attempt, "delay", delay, "err", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

// doOnce performs a single HTTP round trip.
func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := c.retryDelay
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, parseErr := strconv.Atoi(header); parseErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return &RateLimitError{RetryAfter: retryAfter}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody apiErrorBody
		if unmarshalErr := json.Unmarshal(data, &errBody); unmarshalErr != nil || errBody.Message == "" {
			errBody.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errBody.Code,
			Message:    errBody.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("notion: decoding %s response: %w", path, err)
	}
	return nil
}
