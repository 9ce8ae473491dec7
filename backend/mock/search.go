package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/core"
)

// Domains cycled through by the default search results.
var defaultDomains = []string{"example.com", "example.org", "example.net"}

// SearchBackend is a test double for backend.SearchBackend.
// It allows custom behavior injection via function fields.
type SearchBackend struct {
	// SearchFunc is called by Search if set.
	// If nil, uses default deterministic behavior.
	SearchFunc func(ctx context.Context, req core.SearchRequest) (*backend.SearchPage, error)

	mu        sync.Mutex
	callCount int
}

var _ backend.SearchBackend = (*SearchBackend)(nil)

// NewSearchBackend creates a mock search backend with default deterministic behavior.
func NewSearchBackend() *SearchBackend {
	return &SearchBackend{}
}

// Search returns req.Count deterministic results derived from the query.
func (m *SearchBackend) Search(ctx context.Context, req core.SearchRequest) (*backend.SearchPage, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}

	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(req.Query)), " ", "-")
	page := &backend.SearchPage{}
	for i := 1; i <= req.Count; i++ {
		domain := defaultDomains[(i-1)%len(defaultDomains)]
		page.Results = append(page.Results, core.SearchResult{
			Rank:    i,
			Title:   fmt.Sprintf("Result %d for %s", i, req.Query),
			URL:     fmt.Sprintf("https://%s/%s/%d", domain, slug, i),
			Snippet: fmt.Sprintf("Snippet %d about %s.", i, req.Query),
			Domain:  domain,
		})
	}
	for i := 1; i <= req.RelatedCount; i++ {
		page.Related = append(page.Related, fmt.Sprintf("%s variant %d", req.Query, i))
	}
	return page, nil
}

// CallCount returns the number of times Search was called.
func (m *SearchBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *SearchBackend) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SearchFunc = nil
}
