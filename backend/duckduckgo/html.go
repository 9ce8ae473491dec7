package duckduckgo

import (
	"strings"

	"golang.org/x/net/html"
)

// walk visits every node of the subtree in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

// findAll collects elements matching pred in document order.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var nodes []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// findFirst returns the first element matching pred, or nil.
func findFirst(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var rec func(*html.Node) *html.Node
	rec = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && pred(n) {
			return n
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if found := rec(child); found != nil {
				return found
			}
		}
		return nil
	}
	return rec(root)
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains name as one
// of its space-separated tokens.
func hasClass(n *html.Node, name string) bool {
	for _, class := range strings.Fields(attr(n, "class")) {
		if class == name {
			return true
		}
	}
	return false
}

// nodeText returns the whitespace-collapsed text content of the subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		}
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}

// metaContent returns the trimmed content attribute of the first meta tag
// whose name or property equals key.
func metaContent(root *html.Node, key string) string {
	node := findFirst(root, func(n *html.Node) bool {
		if n.Data != "meta" {
			return false
		}
		return attr(n, "name") == key || attr(n, "property") == key
	})
	if node == nil {
		return ""
	}
	return strings.TrimSpace(attr(node, "content"))
}
