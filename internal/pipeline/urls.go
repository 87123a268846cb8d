package pipeline

import (
	"net/url"
	"strings"
)

// URL strategies. They mirror the config values.
const (
	StrategyPath  = "path"
	StrategyQuery = "query"
)

// URLs builds every link the renderers emit. Links are root-relative so
// they resolve from the listing pages and from /<ArticleDir>/<slug>.html alike.
type URLs struct {
	BaseURL    string // Absolute origin without trailing slash
	Strategy   string // StrategyPath or StrategyQuery
	ArticleDir string // e.g. "blog"
	PostPage   string // e.g. "post.html"
	BlogIndex  string // e.g. "blog.html"
	Archive    string // e.g. "articles.html"
}

// Article returns the root-relative URL of an article page. The slug is
// escaped as a single path segment.
func (u URLs) Article(slug string) string {
	if u.Strategy == StrategyQuery {
		return "/" + u.PostPage + "?slug=" + queryEscape(slug)
	}
	return "/" + u.ArticleDir + "/" + url.PathEscape(slug) + ".html"
}

// Canonical returns the absolute URL of an article page.
func (u URLs) Canonical(slug string) string {
	return u.BaseURL + u.Article(slug)
}

// Page returns the root-relative URL of a site page.
func (u URLs) Page(name string) string {
	return "/" + strings.TrimPrefix(name, "/")
}

// Absolute resolves a root-relative path against BaseURL. Absolute URLs pass through.
func (u URLs) Absolute(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return u.BaseURL + u.Page(p)
}

// Tag returns the all-articles URL pre-filtered by tag.
func (u URLs) Tag(tag string) string {
	return u.Page(u.Archive) + "?tag=" + queryEscape(tag)
}

// queryEscape escapes a query value the way encodeURIComponent does for spaces.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
