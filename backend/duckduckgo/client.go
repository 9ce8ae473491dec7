package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/poiesic/scout/backend"
)

const (
	liteSearchURL = "https://lite.duckduckgo.com/lite/"

	// Browser user agent; the lite endpoint serves an error page to
	// unrecognized clients.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/91.0.4472.124 Safari/537.36"

	defaultTimeout         = 10 * time.Second
	defaultRequestInterval = time.Second
	defaultMaxAttempts     = 3
	defaultBaseDelay       = time.Second

	// maxResponseBytes bounds how much of a reply is read; anything past it
	// is not page content worth keeping.
	maxResponseBytes = 4 << 20
)

// Client talks to DuckDuckGo's lite endpoint. It implements both
// backend.SearchBackend and backend.DetailFetcher so searches and page
// fetches share one rate limiter.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	searchURL   string
	userAgent   string
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

var (
	_ backend.SearchBackend = (*Client)(nil)
	_ backend.DetailFetcher = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient replaces the underlying HTTP client.
// Default is a client with a 10 second timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			httpClient = &http.Client{Timeout: defaultTimeout}
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithSearchURL overrides the lite endpoint URL.
func WithSearchURL(rawURL string) Option {
	return func(c *Client) error {
		if rawURL == "" {
			rawURL = liteSearchURL
		}
		c.searchURL = rawURL
		return nil
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		if userAgent == "" {
			userAgent = defaultUserAgent
		}
		c.userAgent = userAgent
		return nil
	}
}

// WithRequestInterval sets the minimum spacing between outbound requests.
// Zero or negative disables pacing. Default is one second.
func WithRequestInterval(interval time.Duration) Option {
	return func(c *Client) error {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return nil
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		return nil
	}
}

// WithMaxAttempts sets how many times a failed request is tried.
// Default is 3, with a minimum of 1.
func WithMaxAttempts(maxAttempts int) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			maxAttempts = 1
		}
		c.maxAttempts = maxAttempts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a Client with the provided options applied over the defaults.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		limiter:     rate.NewLimiter(rate.Every(defaultRequestInterval), 1),
		searchURL:   liteSearchURL,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// postForm sends a form POST and returns the reply body, retrying transient
// failures with exponential backoff.
func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	return c.fetch(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

// get fetches a URL and returns the reply body, retrying transient failures
// with exponential backoff.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	return c.fetch(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	})
}

// fetch runs one request builder under the retry policy. The builder runs
// once per attempt because request bodies cannot be replayed.
func (c *Client) fetch(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	var body []byte
	err := backend.RetryWithBackoff(ctx, func() error {
		req, err := build()
		if err != nil {
			return err
		}
		b, err := c.do(req)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, c.maxAttempts, c.baseDelay)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// do performs a single paced request.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// extractDomain pulls the lowercased hostname out of a URL.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
