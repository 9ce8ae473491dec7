package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/core"
)

func testDetail(content string, headings ...string) *core.PageDetail {
	return &core.PageDetail{
		URL:            "https://example.com/article",
		Title:          "Test Article",
		Domain:         "example.com",
		ContentSnippet: content,
		Headings:       headings,
	}
}

func TestSummarize_ShortContentUntouched(t *testing.T) {
	s := New()

	content := "A short piece of content. It fits whole."
	summary, err := s.Summarize(context.Background(), testDetail(content), 300)
	require.NoError(t, err)

	assert.Equal(t, content, summary.Text)
	assert.Equal(t, "https://example.com/article", summary.URL)
	assert.Equal(t, "example.com", summary.Domain)
	assert.Equal(t, 300, summary.Limit)
	assert.Equal(t, len([]rune(content)), summary.ContentLength)
	assert.Equal(t, 8, summary.WordCount)
}

func TestSummarize_TruncatesAtSentenceBoundary(t *testing.T) {
	s := New()

	content := "First sentence here. Second sentence follows. " + strings.Repeat("Padding words continue. ", 30)
	summary, err := s.Summarize(context.Background(), testDetail(content), 50)
	require.NoError(t, err)

	assert.Equal(t, "First sentence here. Second sentence follows.", summary.Text)
	assert.True(t, strings.HasSuffix(summary.Text, "."))
	assert.LessOrEqual(t, len([]rune(summary.Text)), 50)
}

func TestSummarize_NoPeriodInWindow(t *testing.T) {
	s := New()

	content := strings.Repeat("x", 400)
	summary, err := s.Summarize(context.Background(), testDetail(content), 120)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("x", 120)+".", summary.Text)
}

func TestSummarize_KeyPointsFromHeadings(t *testing.T) {
	s := New()

	detail := testDetail("Plenty of body text here to summarize properly.",
		"Intro", "Setup", "Usage", "Internals", "FAQ", "Appendix")
	summary, err := s.Summarize(context.Background(), detail, 300)
	require.NoError(t, err)

	assert.Equal(t, []string{"Intro", "Setup", "Usage", "Internals", "FAQ"}, summary.KeyPoints,
		"at least three headings become the key points, capped at five")
}

func TestSummarize_KeyPointsFromKeywordSentences(t *testing.T) {
	s := New()

	content := "The most important part is the scheduler. " +
		"Generally things happen in order without surprises. " +
		"A key property is bounded memory usage. " +
		"Everything else is window dressing for the casual reader."
	summary, err := s.Summarize(context.Background(), testDetail(content, "Only Heading"), 600)
	require.NoError(t, err)

	require.NotEmpty(t, summary.KeyPoints)
	assert.Equal(t, "The most important part is the scheduler", summary.KeyPoints[0])
	assert.Contains(t, summary.KeyPoints, "A key property is bounded memory usage")
	assert.LessOrEqual(t, len(summary.KeyPoints), 5)
}

func TestSummarize_KeyPointsFallbackSampling(t *testing.T) {
	s := New()

	content := "Alpha block opens the discussion properly. " +
		"Beta block continues the narrative thread. " +
		"Gamma block carries the middle sections. " +
		"Delta block sets up the conclusion nicely. " +
		"Epsilon block wraps all threads together."
	summary, err := s.Summarize(context.Background(), testDetail(content), 600)
	require.NoError(t, err)

	// No keyword sentences: first plus sampled interior sentences
	require.NotEmpty(t, summary.KeyPoints)
	assert.Equal(t, "Alpha block opens the discussion properly", summary.KeyPoints[0])
	assert.GreaterOrEqual(t, len(summary.KeyPoints), 2)
	assert.LessOrEqual(t, len(summary.KeyPoints), 5)
}

func TestSummarize_EmptyContent(t *testing.T) {
	s := New()

	_, err := s.Summarize(context.Background(), testDetail("   \n"), 300)
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = s.Summarize(context.Background(), nil, 300)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestSummarize_DefaultLength(t *testing.T) {
	s := New()

	summary, err := s.Summarize(context.Background(), testDetail("Tiny content."), 0)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSummaryLength, summary.Limit)
}
