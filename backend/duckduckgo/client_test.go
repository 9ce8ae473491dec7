package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/poiesic/scout/core"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, liteSearchURL, c.searchURL)
	assert.Equal(t, defaultUserAgent, c.userAgent)
	assert.Equal(t, defaultMaxAttempts, c.maxAttempts)
	assert.Equal(t, defaultBaseDelay, c.baseDelay)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, rate.Every(defaultRequestInterval), c.limiter.Limit())
}

func TestNew_OptionFallbacks(t *testing.T) {
	c, err := New(
		WithHTTPClient(nil),
		WithSearchURL(""),
		WithUserAgent(""),
		WithMaxAttempts(0),
		WithLogger(nil),
	)
	require.NoError(t, err)

	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, liteSearchURL, c.searchURL)
	assert.Equal(t, defaultUserAgent, c.userAgent)
	assert.Equal(t, 1, c.maxAttempts)
	assert.NotNil(t, c.logger)
}

func TestNew_DisabledPacing(t *testing.T) {
	c, err := New(WithRequestInterval(0))
	require.NoError(t, err)

	assert.Equal(t, rate.Limit(rate.Inf), c.limiter.Limit())
}

func TestRetry_RecoversFromServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("<html><body></body></html>"))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	c.baseDelay = time.Millisecond

	_, err := c.Search(context.Background(), core.SearchRequest{Query: "golang"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetry_Exhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, WithMaxAttempts(2))
	c.baseDelay = time.Millisecond

	_, err := c.Search(context.Background(), core.SearchRequest{Query: "golang"})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDo_SendsCustomUserAgent(t *testing.T) {
	srv := newLiteServer(t, "<html><body></body></html>")
	c := newTestClient(t, srv.URL, WithUserAgent("scout-test/1.0"))

	_, err := c.Search(context.Background(), core.SearchRequest{Query: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "scout-test/1.0", srv.userAgent())
}

func TestSearch_CancelledContext(t *testing.T) {
	srv := newLiteServer(t, litePage)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, core.SearchRequest{Query: "golang"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		rawURL   string
		expected string
	}{
		{"https://Go.Dev/doc", "go.dev"},
		{"http://example.com:8080/path", "example.com"},
		{"https://sub.Example.ORG", "sub.example.org"},
		{"://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.rawURL, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDomain(tt.rawURL))
		})
	}
}
