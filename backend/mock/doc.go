// Package mock provides test double implementations of the backend
// collaborator interfaces.
//
// This package contains mock implementations of backend.SearchBackend,
// backend.DetailFetcher, backend.Summarizer, and backend.EntityLinker for
// use in unit tests. The mocks allow tests to run without network access
// and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	search := mock.NewSearchBackend()
//	page, err := search.Search(ctx, req)
//
//	// Custom behavior injection
//	search.SearchFunc = func(ctx context.Context, req core.SearchRequest) (*backend.SearchPage, error) {
//	    return nil, errors.New("boom")
//	}
//
//	// Check call counts
//	count := search.CallCount()
//
// All mocks are safe for concurrent use; the orchestrator invokes them from
// pooled workers.
package mock
