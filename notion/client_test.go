package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a client pointed at a test server, with a wide-open
// rate limiter and short retry delays so tests stay fast.
func newTestClient(t *testing.T, server *httptest.Server, opts ...ClientOption) *Client {
	t.Helper()

	base := []ClientOption{
		WithBaseURL(server.URL),
		WithRateLimiter(NewRateLimiter(1000)),
		WithRetryDelay(time.Millisecond),
	}
	client, err := NewClient("secret-token", append(base, opts...)...)
	require.NoError(t, err)
	return client
}

func pageJSON(id, title string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"created_time": "2026-01-02T15:04:05.000Z",
		"last_edited_time": "2026-01-03T15:04:05.000Z",
		"url": "https://www.notion.so/%s",
		"parent": {"type": "workspace"},
		"properties": {
			"Name": {"type": "title", "title": [{"type": "text", "plain_text": %q}]}
		}
	}`, id, id, title)
}

func TestNewClient_RequiresToken(t *testing.T) {
	client, err := NewClient("")
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Nil(t, client)
}

func TestClient_Pages_CursorContinuation(t *testing.T) {
	// Two pages of 2 and 1: the stream must yield exactly 3 pages,
	// exercising cursor continuation.
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/search", r.URL.Path)
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("Notion-Version"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "page", req.Filter.Value)

		switch calls.Add(1) {
		case 1:
			require.Empty(t, req.StartCursor)
			fmt.Fprintf(w, `{"results": [%s, %s], "has_more": true, "next_cursor": "cursor-1"}`,
				pageJSON("page-1", "First"), pageJSON("page-2", "Second"))
		case 2:
			require.Equal(t, "cursor-1", req.StartCursor)
			fmt.Fprintf(w, `{"results": [%s], "has_more": false, "next_cursor": null}`,
				pageJSON("page-3", "Third"))
		default:
			t.Error("unexpected extra listing call")
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)

	var pages []*Page
	for page, err := range client.Pages(context.Background()) {
		require.NoError(t, err)
		pages = append(pages, page)
	}

	require.Len(t, pages, 3)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "page-1", pages[0].ID)
	assert.Equal(t, "First", pages[0].Title)
	assert.Equal(t, "page-3", pages[2].ID)
}

func TestClient_Pages_EarlyBreak(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, `{"results": [%s, %s], "has_more": true, "next_cursor": "cursor-1"}`,
			pageJSON("page-1", "First"), pageJSON("page-2", "Second"))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	for page, err := range client.Pages(context.Background()) {
		require.NoError(t, err)
		require.Equal(t, "page-1", page.ID)
		break
	}

	// Breaking out of the stream must not fetch further pages.
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Pages_ErrorTerminatesStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code": "validation_error", "message": "bad filter"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	var yields int
	var lastErr error
	for _, err := range client.Pages(context.Background()) {
		yields++
		lastErr = err
	}

	require.Equal(t, 1, yields)
	var apiErr *APIError
	require.ErrorAs(t, lastErr, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "validation_error", apiErr.Code)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"results": [%s], "has_more": false, "next_cursor": null}`,
			pageJSON("page-1", "First"))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	var pages []*Page
	for page, err := range client.Pages(context.Background()) {
		require.NoError(t, err)
		pages = append(pages, page)
	}

	assert.Len(t, pages, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RetryBudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server, WithMaxAttempts(3))

	var lastErr error
	for _, err := range client.Pages(context.Background()) {
		lastErr = err
	}

	require.Error(t, lastErr)
	var apiErr *APIError
	require.ErrorAs(t, lastErr, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RateLimitRejectionIsRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"results": [], "has_more": false, "next_cursor": null}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	for _, err := range client.Pages(context.Background()) {
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_NonTransientFailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"code": "unauthorized", "message": "API token is invalid"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	var lastErr error
	for _, err := range client.Pages(context.Background()) {
		lastErr = err
	}

	require.Error(t, lastErr)
	assert.True(t, IsUnauthorized(lastErr))
	assert.Equal(t, int32(1), calls.Load())
}
