package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
  <title>Release Notes - Example Engine</title>
  <meta name="description" content="What changed in Example Engine 2.0.">
  <meta property="article:published_time" content="2025-06-01T10:00:00Z">
  <meta name="author" content="Jordan Fields">
</head>
<body>
  <nav><a href="/docs/changelog">Changelog</a></nav>
  <article>
    <h1>Example Engine 2.0</h1>
    <h2>Performance</h2>
    <h3>Io</h3>
    <p>Example Engine now ships Smart Cache for faster lookups across every supported platform.</p>
    <p>Short.</p>
    <p>The release was assembled by Example Labs together with community contributors worldwide.</p>
    <p><a href="https://docs.example.com/guide">full guide</a>
       <a href="#top">top</a>
       <a href="mailto:team@example.com">mail</a>
       <a href="/docs/changelog">changelog again</a></p>
  </article>
</body>
</html>`

func newDetailServer(t *testing.T, page string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func parsePage(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestFetchDetail_ParsesArticle(t *testing.T) {
	srv := newDetailServer(t, articlePage)
	c := newTestClient(t, srv.URL)

	detail, err := c.FetchDetail(context.Background(), srv.URL+"/releases/2.0")
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, srv.URL+"/releases/2.0", detail.URL)
	assert.Equal(t, "Release Notes - Example Engine", detail.Title)
	assert.Equal(t, "What changed in Example Engine 2.0.", detail.Description)
	assert.Equal(t, "127.0.0.1", detail.Domain)
	assert.Equal(t, "Jordan Fields", detail.Author)
	assert.Equal(t, "2025-06-01T10:00:00Z", detail.PublishedDate)
	assert.False(t, detail.IsOfficial)

	// Inside an <article> root every paragraph counts, even the stubby one.
	assert.Contains(t, detail.ContentSnippet, "Smart Cache for faster lookups")
	assert.Contains(t, detail.ContentSnippet, "Short.")
	assert.Contains(t, detail.ContentSnippet, "assembled by Example Labs")
	assert.Equal(t, len(strings.Fields(detail.ContentSnippet)), detail.WordCount)

	// The h3 is too short to count as a heading.
	assert.Equal(t, []string{"Example Engine 2.0", "Performance"}, detail.Headings)

	// Same-domain links survive, resolved absolute and deduplicated.
	require.Len(t, detail.RelatedLinks, 1)
	assert.Equal(t, srv.URL+"/docs/changelog", detail.RelatedLinks[0])

	// Capitalized runs from headings and sentences, sentence openers included.
	assert.Equal(t, []string{
		"Example Engine",
		"Example Labs",
		"Performance",
		"Short",
		"Smart Cache",
		"The",
	}, detail.Entities)
}

func TestFetchDetail_EmptyURL(t *testing.T) {
	c := newTestClient(t, "http://unused.invalid")

	_, err := c.FetchDetail(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestFetchDetail_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL, WithMaxAttempts(1))

	_, err := c.FetchDetail(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestPageContent_BodyFallbackSkipsShortParagraphs(t *testing.T) {
	doc := parsePage(t, `<html><body>
<p>Home</p>
<p>About</p>
<p>This paragraph carries enough substance to clear the fallback length floor easily.</p>
</body></html>`)

	content := pageContent(doc)

	assert.Equal(t, "This paragraph carries enough substance to clear the fallback length floor easily.", content)
}

func TestPageContent_TruncatesLongBodies(t *testing.T) {
	paragraph := "<p>" + strings.Repeat("word ", 200) + "</p>"
	doc := parsePage(t, "<html><body><article>"+strings.Repeat(paragraph, 5)+"</article></body></html>")

	content := pageContent(doc)

	assert.Len(t, []rune(content), maxContentSnippet+3)
	assert.True(t, strings.HasSuffix(content, "..."))
}

func TestIsOfficial(t *testing.T) {
	plain := parsePage(t, "<html><body><p>Nothing special here.</p></body></html>")
	verified := parsePage(t, "<html><body><p>This is a verified publisher account.</p></body></html>")

	tests := []struct {
		name     string
		doc      *html.Node
		url      string
		title    string
		expected bool
	}{
		{"institutional suffix", plain, "https://records.example.gov/home", "Records", true},
		{"official in url", plain, "https://example.com/official-site", "Example", true},
		{"official in title", plain, "https://example.com/home", "Official Example Site", true},
		{"verified marker in text", verified, "https://example.com/home", "Example", true},
		{"ordinary page", plain, "https://example.com/home", "Example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domain := extractDomain(tt.url)
			assert.Equal(t, tt.expected, isOfficial(tt.doc, domain, tt.url, tt.title))
		})
	}
}

func TestIsTitleCase(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"Cache", true},
		{"Engine", true},
		{"Go", false},
		{"cache", false},
		{"CACHE", false},
		{"C3po", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.word), func(t *testing.T) {
			assert.Equal(t, tt.expected, isTitleCase(tt.word))
		})
	}
}

func TestExtractEntities(t *testing.T) {
	headings := []string{"Example Engine 2.0", "Performance"}
	content := "Example Engine now ships Smart Cache. the quick fix helped. Visit Example Labs."

	entities := extractEntities(headings, content)

	// Runs of capitalized words become one candidate apiece; a capitalized
	// verb opening a sentence gets absorbed into the run behind it.
	assert.Equal(t, []string{
		"Example Engine",
		"Performance",
		"Smart Cache",
		"Visit Example Labs",
	}, entities)
}

func TestExtractEntities_TrimsPunctuation(t *testing.T) {
	entities := extractEntities(nil, "We met Jordan, then (Riverside) again.")

	assert.Equal(t, []string{"Jordan", "Riverside"}, entities)
}
