package ledger

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Canonicalize rewrites captured content into a stable form so re-captures
// of an unchanged page hash to the same snapshot. HTML is re-emitted one
// token per line with lowercased tag names and attributes sorted by key;
// plain text gets whitespace runs collapsed and blank-line runs folded.
func Canonicalize(content string) string {
	if looksLikeHTML(content) {
		return canonicalizeHTML(content)
	}
	return canonicalizeText(content)
}

// looksLikeHTML reports whether content contains at least one plausible tag.
func looksLikeHTML(content string) bool {
	for i := 0; i+1 < len(content); i++ {
		if content[i] != '<' {
			continue
		}
		c := content[i+1]
		if c == '/' || c == '!' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

func canonicalizeHTML(content string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(content))
	var lines []string
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return strings.Join(lines, "\n")
			}
			// Unparseable markup falls back to the plain-text rules
			return canonicalizeText(content)
		case html.TextToken:
			if text := collapseSpaces(string(tokenizer.Text())); text != "" {
				lines = append(lines, text)
			}
		case html.StartTagToken:
			lines = append(lines, renderTag(tokenizer, false))
		case html.SelfClosingTagToken:
			lines = append(lines, renderTag(tokenizer, true))
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			lines = append(lines, "</"+string(name)+">")
		case html.CommentToken, html.DoctypeToken:
			// Dropped from the canonical form
		}
	}
}

// renderTag emits a tag with the attribute order fixed by key. The tokenizer
// already lowercases tag and attribute names.
func renderTag(tokenizer *html.Tokenizer, selfClosing bool) string {
	name, hasAttr := tokenizer.TagName()

	var sb strings.Builder
	sb.WriteByte('<')
	sb.Write(name)

	if hasAttr {
		type attribute struct {
			key string
			val string
		}
		var attrs []attribute
		for {
			k, v, more := tokenizer.TagAttr()
			attrs = append(attrs, attribute{key: string(k), val: string(v)})
			if !more {
				break
			}
		}
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].key < attrs[j].key })
		for _, a := range attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.key)
			sb.WriteString(`="`)
			sb.WriteString(a.val)
			sb.WriteByte('"')
		}
	}

	if selfClosing {
		sb.WriteString("/>")
	} else {
		sb.WriteByte('>')
	}
	return sb.String()
}

func canonicalizeText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var lines []string
	pendingBlank := false
	for _, raw := range strings.Split(content, "\n") {
		line := collapseSpaces(raw)
		if line == "" {
			// Blank runs fold to a single separator, never lead or trail
			pendingBlank = len(lines) > 0
			continue
		}
		if pendingBlank {
			lines = append(lines, "")
			pendingBlank = false
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
