package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/core"
)

// EntityLinker is a test double for backend.EntityLinker.
// It allows custom behavior injection via function fields.
type EntityLinker struct {
	// LinkFunc is called by Link if set.
	// If nil, uses default deterministic behavior.
	LinkFunc func(ctx context.Context, entities []string, domain string) (*core.KnowledgeGraph, error)

	mu        sync.Mutex
	callCount int
}

var _ backend.EntityLinker = (*EntityLinker)(nil)

// NewEntityLinker creates a mock entity linker with default deterministic behavior.
func NewEntityLinker() *EntityLinker {
	return &EntityLinker{}
}

// Link builds a small graph with one node per entity anchored to the domain.
func (m *EntityLinker) Link(ctx context.Context, entities []string, domain string) (*core.KnowledgeGraph, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.LinkFunc != nil {
		return m.LinkFunc(ctx, entities, domain)
	}

	graph := &core.KnowledgeGraph{}
	domainID := "domain:" + strings.ToLower(domain)
	graph.Nodes = append(graph.Nodes, core.KGNode{
		Id:     domainID,
		Label:  domain,
		Source: "mock",
		Score:  1.0,
	})
	for _, entity := range entities {
		id := "mock:" + strings.ToLower(strings.ReplaceAll(entity, " ", "-"))
		graph.Nodes = append(graph.Nodes, core.KGNode{
			Id:     id,
			Label:  entity,
			Source: "mock",
			Score:  0.5,
		})
		graph.Edges = append(graph.Edges, core.KGEdge{
			Source:   domainID,
			Target:   id,
			Relation: "mentions",
			Weight:   0.5,
		})
	}
	return graph, nil
}

// CallCount returns the number of times Link was called.
func (m *EntityLinker) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *EntityLinker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.LinkFunc = nil
}
