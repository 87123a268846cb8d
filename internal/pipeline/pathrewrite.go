package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRootRelative makes relative a[href] and img[src] values
// root-relative ("pricing.html" becomes "/pricing.html"). Bodies are written
// for pages at the site root; article pages live one directory deeper.
//
// Left alone: anchors, query-only links, absolute paths, and anything with a
// scheme or host (http:, mailto:, data:, //cdn).
// The fragment is returned byte-identical when nothing needs rewriting.
func RewriteRootRelative(fragment string) (string, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	changed := false
	for _, n := range nodes {
		if rewriteNode(n) {
			changed = true
		}
	}
	if !changed {
		return fragment, nil
	}

	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parseFragment parses HTML with body context to avoid <html><body> wrapping.
func parseFragment(content string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(content), context)
}

// rewriteNode traverses the tree and reports whether any attribute changed.
func rewriteNode(n *html.Node) bool {
	changed := false
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			changed = rewriteAttr(n, "src")
		case atom.A:
			changed = rewriteAttr(n, "href")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c) {
			changed = true
		}
	}
	return changed
}

func rewriteAttr(n *html.Node, attrName string) bool {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}
		if rooted, ok := rootRelative(attr.Val); ok {
			n.Attr[i].Val = rooted
			return true
		}
	}
	return false
}

// rootRelative returns the root-relative form of a relative reference.
func rootRelative(ref string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "?") || strings.HasPrefix(ref, "/") {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", false
	}

	// path.Clean keeps ".." from climbing above the root.
	u.Path = path.Clean("/" + u.Path)
	return u.String(), true
}
