package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/core"
)

// Summarizer is a test double for backend.Summarizer.
// It allows custom behavior injection via function fields.
type Summarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, detail *core.PageDetail, maxLength int) (*core.Summary, error)

	mu        sync.Mutex
	callCount int
}

var _ backend.Summarizer = (*Summarizer)(nil)

// NewSummarizer creates a mock summarizer with default deterministic behavior.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize truncates the detail's content to maxLength characters.
func (m *Summarizer) Summarize(ctx context.Context, detail *core.PageDetail, maxLength int) (*core.Summary, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, detail, maxLength)
	}

	text := detail.ContentSnippet
	if runes := []rune(text); len(runes) > maxLength {
		text = string(runes[:maxLength])
	}
	return &core.Summary{
		URL:           detail.URL,
		Title:         detail.Title,
		Text:          text,
		KeyPoints:     []string{"key point one", "key point two"},
		Domain:        detail.Domain,
		WordCount:     len(strings.Fields(text)),
		ContentLength: len(detail.ContentSnippet),
		Limit:         maxLength,
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *Summarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *Summarizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SummarizeFunc = nil
}
