// Package extract provides an offline extractive summarizer. It needs no
// model and no network: the summary is a sentence-aware truncation of the
// page content, and key points come from the page's headings or from
// sentences that carry signal keywords.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/core"
)

// Sentences mentioning one of these words are promoted to key points when a
// page has too few headings to use instead.
var importantKeywords = []string{
	"important", "key", "significant", "main", "primary", "crucial", "essential",
}

const (
	minHeadingsForKeyPoints = 3
	maxKeyPoints            = 5
	minSentenceLength       = 20
)

// Summarizer condenses page details without calling out anywhere.
type Summarizer struct{}

var _ backend.Summarizer = (*Summarizer)(nil)

// New creates an extractive summarizer.
func New() *Summarizer {
	return &Summarizer{}
}

// Summarize truncates the detail's content to at most maxLength characters,
// preferring a sentence boundary, and extracts up to five key points.
func (s *Summarizer) Summarize(_ context.Context, detail *core.PageDetail, maxLength int) (*core.Summary, error) {
	if detail == nil || strings.TrimSpace(detail.ContentSnippet) == "" {
		return nil, ErrNoContent
	}
	if maxLength <= 0 {
		maxLength = core.DefaultSummaryLength
	}

	content := detail.ContentSnippet
	text := truncateAtSentence(content, maxLength)

	return &core.Summary{
		URL:           detail.URL,
		Title:         detail.Title,
		Text:          text,
		KeyPoints:     keyPoints(content, detail.Headings),
		Domain:        detail.Domain,
		WordCount:     len(strings.Fields(text)),
		ContentLength: utf8.RuneCountInString(content),
		Limit:         maxLength,
	}, nil
}

// truncateAtSentence cuts content to at most limit characters, backing up
// to the last period inside the window when there is one.
func truncateAtSentence(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	window := string(runes[:limit])
	if idx := strings.LastIndex(window, "."); idx >= 0 {
		return window[:idx] + "."
	}
	return window + "."
}

// keyPoints prefers the page's headings; thin pages fall back to keyword
// sentences, then to sentences sampled from the start and interior.
func keyPoints(content string, headings []string) []string {
	if len(headings) >= minHeadingsForKeyPoints {
		if len(headings) > maxKeyPoints {
			headings = headings[:maxKeyPoints]
		}
		return append([]string(nil), headings...)
	}

	var sentences []string
	for _, raw := range strings.Split(content, ".") {
		sentence := strings.TrimSpace(raw)
		if utf8.RuneCountInString(sentence) > minSentenceLength {
			sentences = append(sentences, sentence)
		}
	}

	var points []string
	seen := make(map[string]bool)
	add := func(sentence string) {
		if !seen[sentence] {
			seen[sentence] = true
			points = append(points, sentence)
		}
	}

	for _, sentence := range sentences {
		lowered := strings.ToLower(sentence)
		for _, keyword := range importantKeywords {
			if strings.Contains(lowered, keyword) {
				add(sentence)
				break
			}
		}
	}

	if len(points) < 3 && len(sentences) > 0 {
		add(sentences[0])
		for _, idx := range []int{len(sentences) / 3, len(sentences) * 2 / 3} {
			if idx < len(sentences) {
				add(sentences[idx])
			}
		}
	}

	if len(points) > maxKeyPoints {
		points = points[:maxKeyPoints]
	}
	return points
}
