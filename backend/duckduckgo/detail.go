package duckduckgo

import (
	"bytes"
	"context"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/poiesic/scout/core"
)

// Caps for extracted fields. Pages are unbounded; cache entries are not.
const (
	maxContentSnippet = 2000
	maxParagraphs     = 10
	maxHeadings       = 10
	maxRelatedLinks   = 25
	minParagraphChars = 50
	minHeadingChars   = 4
)

// dateMetaKeys lists the meta tags consulted for a publication date, in
// priority order.
var dateMetaKeys = []string{
	"article:published_time",
	"datePublished",
	"pubdate",
	"date",
	"publishdate",
}

// authorMetaKeys lists the meta tags consulted for an author, in priority
// order.
var authorMetaKeys = []string{
	"author",
	"article:author",
	"dc.creator",
	"twitter:creator",
}

// officialSuffixes marks institutional domains as official sources outright.
var officialSuffixes = []string{".gov", ".edu", ".org", ".mil"}

// FetchDetail fetches the page at rawURL and extracts the metadata the
// research pipeline works with: description, body snippet, headings,
// same-domain links and entity candidates.
func (c *Client) FetchDetail(ctx context.Context, rawURL string) (*core.PageDetail, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrEmptyURL
	}

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	domain := extractDomain(rawURL)
	title := pageTitle(doc)
	content := pageContent(doc)
	headings := pageHeadings(doc)

	detail := &core.PageDetail{
		URL:            rawURL,
		Title:          title,
		Description:    pageDescription(doc),
		Domain:         domain,
		ContentSnippet: content,
		Author:         pageAuthor(doc),
		PublishedDate:  publishedDate(doc),
		IsOfficial:     isOfficial(doc, domain, rawURL, title),
		WordCount:      len(strings.Fields(content)),
		Headings:       headings,
		RelatedLinks:   relatedLinks(doc, rawURL, domain),
		Entities:       extractEntities(headings, content),
	}

	c.logger.Debug("fetched detail",
		"url", rawURL,
		"words", detail.WordCount,
		"headings", len(detail.Headings),
		"entities", len(detail.Entities))

	return detail, nil
}

func pageTitle(doc *html.Node) string {
	node := findFirst(doc, func(n *html.Node) bool { return n.Data == "title" })
	if node == nil {
		return ""
	}
	return nodeText(node)
}

// pageDescription prefers the meta description, then the Open Graph one,
// then the first substantive paragraph.
func pageDescription(doc *html.Node) string {
	if desc := metaContent(doc, "description"); desc != "" {
		return desc
	}
	if desc := metaContent(doc, "og:description"); desc != "" {
		return desc
	}
	for _, p := range findAll(doc, func(n *html.Node) bool { return n.Data == "p" }) {
		if text := nodeText(p); len(text) > minParagraphChars {
			return text
		}
	}
	return ""
}

// publishedDate consults the usual meta tags, then <time datetime> elements.
func publishedDate(doc *html.Node) string {
	for _, key := range dateMetaKeys {
		if date := metaContent(doc, key); date != "" {
			return date
		}
	}
	for _, node := range findAll(doc, func(n *html.Node) bool { return n.Data == "time" }) {
		if datetime := strings.TrimSpace(attr(node, "datetime")); datetime != "" {
			return datetime
		}
	}
	return ""
}

// pageAuthor consults the usual meta tags, then byline elements, then
// rel=author links.
func pageAuthor(doc *html.Node) string {
	for _, key := range authorMetaKeys {
		if author := metaContent(doc, key); author != "" {
			return author
		}
	}
	if node := findFirst(doc, func(n *html.Node) bool {
		switch n.Data {
		case "span", "div", "a":
			return hasClass(n, "author") || hasClass(n, "byline")
		}
		return false
	}); node != nil {
		return nodeText(node)
	}
	if node := findFirst(doc, func(n *html.Node) bool {
		return n.Data == "a" && attr(n, "rel") == "author"
	}); node != nil {
		return nodeText(node)
	}
	return ""
}

// isOfficial applies the source heuristics: institutional domain suffix,
// "official" in the URL or title, or a verified marker anywhere in the text.
func isOfficial(doc *html.Node, domain, rawURL, title string) bool {
	for _, suffix := range officialSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(rawURL), "official") {
		return true
	}
	if strings.Contains(strings.ToLower(title), "official") {
		return true
	}

	verified := false
	walk(doc, func(n *html.Node) {
		if n.Type == html.TextNode && strings.Contains(strings.ToLower(n.Data), "verified") {
			verified = true
		}
	})
	return verified
}

// pageContent pulls paragraph text out of the page's main content container,
// trying <article> and <main> first, then the usual container ids and
// classes, then the whole body.
func pageContent(doc *html.Node) string {
	containerNames := []string{"content", "main", "article", "post", "entry"}

	root := findFirst(doc, func(n *html.Node) bool {
		return n.Data == "article" || n.Data == "main"
	})
	if root == nil {
		root = findFirst(doc, func(n *html.Node) bool {
			switch n.Data {
			case "div", "article", "main":
			default:
				return false
			}
			id := attr(n, "id")
			for _, name := range containerNames {
				if id == name || hasClass(n, name) {
					return true
				}
			}
			return false
		})
	}

	// The body fallback keeps only substantive paragraphs; navigation
	// crumbs and footers drown the content otherwise.
	minChars := 0
	if root == nil {
		root = findFirst(doc, func(n *html.Node) bool { return n.Data == "body" })
		minChars = minParagraphChars
	}
	if root == nil {
		return ""
	}

	var parts []string
	for _, p := range findAll(root, func(n *html.Node) bool { return n.Data == "p" }) {
		if len(parts) >= maxParagraphs {
			break
		}
		if text := nodeText(p); len(text) > minChars {
			parts = append(parts, text)
		}
	}

	content := strings.Join(parts, " ")
	if runes := []rune(content); len(runes) > maxContentSnippet {
		content = string(runes[:maxContentSnippet]) + "..."
	}
	return content
}

// pageHeadings collects h1-h3 text, skipping trivially short ones.
func pageHeadings(doc *html.Node) []string {
	var headings []string
	for _, node := range findAll(doc, func(n *html.Node) bool {
		return n.Data == "h1" || n.Data == "h2" || n.Data == "h3"
	}) {
		if len(headings) >= maxHeadings {
			break
		}
		if text := nodeText(node); len(text) >= minHeadingChars {
			headings = append(headings, text)
		}
	}
	return headings
}

// relatedLinks collects same-domain links from the page, resolving
// path-absolute hrefs against the page URL and dropping duplicates,
// fragments, and javascript/mailto/tel schemes.
func relatedLinks(doc *html.Node, rawURL, domain string) []string {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)
	for _, anchor := range findAll(doc, func(n *html.Node) bool { return n.Data == "a" }) {
		if len(links) >= maxRelatedLinks {
			break
		}
		href := attr(anchor, "href")
		if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			continue
		}
		switch {
		case strings.HasPrefix(href, "//"):
			href = base.Scheme + ":" + href
		case strings.HasPrefix(href, "/"):
			href = base.Scheme + "://" + base.Host + href
		case !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://"):
			continue
		}
		if extractDomain(href) != domain {
			continue
		}
		if seen[href] || href == rawURL {
			continue
		}
		seen[href] = true
		links = append(links, href)
	}
	return links
}

// extractEntities pulls naive entity candidates out of the headings and the
// body text: each run of consecutive capitalized words becomes one
// candidate. The result is deduplicated and sorted.
func extractEntities(headings []string, content string) []string {
	seen := make(map[string]bool)

	collect := func(text string) {
		var phrase []string
		flush := func() {
			if len(phrase) == 0 {
				return
			}
			seen[strings.Join(phrase, " ")] = true
			phrase = nil
		}
		for _, word := range strings.Fields(text) {
			word = strings.TrimFunc(word, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsNumber(r)
			})
			if isTitleCase(word) {
				phrase = append(phrase, word)
				continue
			}
			flush()
		}
		flush()
	}

	for _, heading := range headings {
		collect(heading)
	}
	for _, sentence := range strings.Split(content, ".") {
		collect(sentence)
	}

	entities := make([]string, 0, len(seen))
	for entity := range seen {
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	return entities
}

// isTitleCase reports whether the word starts upper case, continues lower
// case, and is long enough to be a name.
func isTitleCase(word string) bool {
	runes := []rune(word)
	if len(runes) <= 2 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}
