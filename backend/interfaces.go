package backend

import (
	"context"

	"github.com/poiesic/scout/core"
)

// SearchPage is one page of search results together with the related
// searches scraped from the same response.
type SearchPage struct {
	Results []core.SearchResult
	Related []string
}

// SearchBackend executes web searches.
// Implementations must be thread-safe for concurrent use.
type SearchBackend interface {
	// Search runs the request and returns one page of results. The request
	// is already validated and normalized by the caller. Returns an error
	// when the backend cannot produce any results; an empty page is not an
	// error.
	Search(ctx context.Context, req core.SearchRequest) (*SearchPage, error)
}

// DetailFetcher retrieves a single page and extracts its metadata.
// Implementations must be thread-safe for concurrent use.
type DetailFetcher interface {
	// FetchDetail fetches the page at url and extracts title, description,
	// content snippet, headings, related links and entity candidates.
	// Returns an error if the page cannot be fetched or parsed.
	FetchDetail(ctx context.Context, url string) (*core.PageDetail, error)
}

// Summarizer condenses fetched page content.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize produces a summary of at most maxLength characters from the
	// detail's content, along with extracted key points.
	Summarize(ctx context.Context, detail *core.PageDetail, maxLength int) (*core.Summary, error)
}

// EntityLinker resolves entity names into a small knowledge graph.
// Implementations must be thread-safe for concurrent use.
type EntityLinker interface {
	// Link resolves the entities, anchors them to the owning domain, and
	// returns the resulting graph. Unknown entities get synthetic nodes
	// rather than errors.
	Link(ctx context.Context, entities []string, domain string) (*core.KnowledgeGraph, error)
}
