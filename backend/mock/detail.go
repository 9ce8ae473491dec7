package mock

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/core"
)

// DetailFetcher is a test double for backend.DetailFetcher.
// It allows custom behavior injection via function fields.
type DetailFetcher struct {
	// FetchDetailFunc is called by FetchDetail if set.
	// If nil, uses default deterministic behavior.
	FetchDetailFunc func(ctx context.Context, pageURL string) (*core.PageDetail, error)

	mu        sync.Mutex
	callCount int
}

var _ backend.DetailFetcher = (*DetailFetcher)(nil)

// NewDetailFetcher creates a mock detail fetcher with default deterministic behavior.
func NewDetailFetcher() *DetailFetcher {
	return &DetailFetcher{}
}

// FetchDetail returns a deterministic detail derived from the URL.
func (m *DetailFetcher) FetchDetail(ctx context.Context, pageURL string) (*core.PageDetail, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.FetchDetailFunc != nil {
		return m.FetchDetailFunc(ctx, pageURL)
	}

	domain := ""
	if parsed, err := url.Parse(pageURL); err == nil {
		domain = strings.ToLower(parsed.Hostname())
	}
	content := fmt.Sprintf("Fetched content for %s. It mentions Example Project and Open Standards in passing.", pageURL)
	return &core.PageDetail{
		URL:            pageURL,
		Title:          fmt.Sprintf("Page at %s", pageURL),
		Description:    fmt.Sprintf("Description of %s.", pageURL),
		Domain:         domain,
		ContentSnippet: content,
		WordCount:      len(strings.Fields(content)),
		Headings:       []string{"Overview", "Details"},
		Entities:       []string{"Example Project", "Open Standards"},
	}, nil
}

// CallCount returns the number of times FetchDetail was called.
func (m *DetailFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *DetailFetcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.FetchDetailFunc = nil
}
