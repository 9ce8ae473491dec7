package duckduckgo

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/core"
)

// timePeriodCodes maps request time periods onto the endpoint's date filter
// codes, folded into the query text.
var timePeriodCodes = map[string]string{
	"day":   "d",
	"week":  "w",
	"month": "m",
	"year":  "y",
}

// Search runs the request against the lite endpoint and parses the reply
// into ranked results plus, when requested, related search suggestions.
func (c *Client) Search(ctx context.Context, req core.SearchRequest) (*backend.SearchPage, error) {
	req.Normalize()

	query := foldFilters(req)
	offset := (req.Page - 1) * req.Count

	form := url.Values{
		"q":  {query},
		"kl": {"wt-wt"}, // no region localization
		"s":  {strconv.Itoa(offset)},
	}

	c.logger.Debug("searching", "query", query, "offset", offset)

	body, err := c.postForm(ctx, c.searchURL, form)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	page := &backend.SearchPage{
		Results: parseResults(doc, req.Count),
	}
	if req.Related {
		page.Related = parseRelated(doc, req.RelatedCount)
	}

	c.logger.Debug("search complete",
		"query", query,
		"results", len(page.Results),
		"related", len(page.Related))

	return page, nil
}

// foldFilters folds the site and time filters into the query string the way
// the endpoint expects them.
func foldFilters(req core.SearchRequest) string {
	query := req.Query
	if req.SiteFilter != "" && !strings.Contains(query, "site:") {
		query += " site:" + req.SiteFilter
	}
	if code, ok := timePeriodCodes[strings.ToLower(req.TimePeriod)]; ok {
		query += " date:" + code
	}
	return query
}

// parseResults extracts up to count ranked results. Result rows carry the
// result-link class; the matching snippet row follows under result-snippet.
// When the expected classes are absent the page layout has changed, and a
// generic link scan takes over.
func parseResults(doc *html.Node, count int) []core.SearchResult {
	rows := findAll(doc, func(n *html.Node) bool {
		return n.Data == "tr" && hasClass(n, "result-link")
	})
	snippets := findAll(doc, func(n *html.Node) bool {
		return n.Data == "tr" && hasClass(n, "result-snippet")
	})

	var results []core.SearchResult
	for i, row := range rows {
		if len(results) >= count {
			break
		}
		anchor := findFirst(row, func(n *html.Node) bool { return n.Data == "a" })
		if anchor == nil {
			continue
		}
		resultURL := resolveRedirect(attr(anchor, "href"))
		snippet := ""
		if i < len(snippets) {
			snippet = nodeText(snippets[i])
		}
		results = append(results, core.SearchResult{
			Rank:    len(results) + 1,
			Title:   nodeText(anchor),
			URL:     resultURL,
			Snippet: snippet,
			Domain:  extractDomain(resultURL),
		})
	}

	if len(results) == 0 {
		return scanLinks(doc, count)
	}
	return results
}

// scanLinks treats any absolute link on the page as a result candidate.
func scanLinks(doc *html.Node, count int) []core.SearchResult {
	var results []core.SearchResult
	for _, anchor := range findAll(doc, func(n *html.Node) bool { return n.Data == "a" }) {
		if len(results) >= count {
			break
		}
		href := attr(anchor, "href")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
			continue
		}
		resultURL := resolveRedirect(href)
		title := nodeText(anchor)

		// The enclosing element's text serves as a snippet when it says more
		// than the link itself.
		snippet := ""
		if anchor.Parent != nil {
			if text := nodeText(anchor.Parent); len(text) > len(title) {
				snippet = text
			}
		}

		results = append(results, core.SearchResult{
			Rank:    len(results) + 1,
			Title:   title,
			URL:     resultURL,
			Snippet: snippet,
			Domain:  extractDomain(resultURL),
		})
	}
	return results
}

// parseRelated extracts related search suggestions, deduplicated case
// insensitively and capped at count.
func parseRelated(doc *html.Node, count int) []string {
	if count <= 0 {
		count = core.MaxRelatedSearches
	}

	isAnchor := func(n *html.Node) bool { return n.Data == "a" }

	var candidates []*html.Node
	for _, row := range findAll(doc, func(n *html.Node) bool {
		if n.Data != "tr" {
			return false
		}
		return hasClass(n, "result-link--related") || (hasClass(n, "result-link") && hasClass(n, "related"))
	}) {
		candidates = append(candidates, findAll(row, isAnchor)...)
	}
	candidates = append(candidates, findAll(doc, func(n *html.Node) bool {
		return n.Data == "a" && (hasClass(n, "result--more__link") || hasClass(n, "related-searches__item"))
	})...)

	if len(candidates) == 0 {
		for _, table := range findAll(doc, func(n *html.Node) bool {
			return n.Data == "table" && hasClass(n, "related-searches")
		}) {
			candidates = append(candidates, findAll(table, isAnchor)...)
		}
	}

	var related []string
	seen := make(map[string]bool, len(candidates))
	for _, anchor := range candidates {
		text := nodeText(anchor)
		if text == "" {
			continue
		}
		lowered := strings.ToLower(text)
		if seen[lowered] {
			continue
		}
		seen[lowered] = true
		related = append(related, text)
		if len(related) >= count {
			break
		}
	}
	return related
}

// resolveRedirect unwraps the endpoint's /l/?uddg= redirect wrapper when a
// result links through it.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.Path == "/l/" {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}
