package pipeline

import (
	"testing"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/assets"
)

func testURLs(strategy string) URLs {
	return URLs{
		BaseURL:    "https://www.example.com",
		Strategy:   strategy,
		ArticleDir: "blog",
		PostPage:   "post.html",
		BlogIndex:  "blog.html",
		Archive:    "articles.html",
	}
}

func testSite() Site {
	return Site{
		Name:          "Invoice Site",
		Stylesheet:    "/styles.css",
		OGImage:       "https://www.example.com/og.png",
		DateLayout:    "1/2/2006",
		DefaultAuthor: "Site Team",
		Nav:           []Link{{Title: "Home", URL: "/"}, {Title: "Blog", URL: "/blog.html"}},
		Resources:     []Link{{Title: "Invoice Templates", URL: "/templates.html"}},
		URLs:          testURLs(StrategyPath),
	}
}

// scenarioArticles returns the two-article collection used across tests:
// "b" is published a month after "a".
func scenarioArticles() []article.Article {
	return []article.Article{
		{Slug: "a", Title: "A", Content: "<p>hello</p>", Description: "hello", PublishedAt: "2024-01-01", Category: "business", Tags: []string{"invoice"}},
		{Slug: "b", Title: "B", Content: "<p>world</p>", Description: "world", PublishedAt: "2024-02-01", Category: "business", Tags: []string{"invoice"}},
	}
}

func mustTemplate(t *testing.T, name string) string {
	t.Helper()
	content, err := assets.LoadTemplate(name)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", name, err)
	}
	return content
}

func mustScript(t *testing.T, name string) string {
	t.Helper()
	content, err := assets.LoadScript(name)
	if err != nil {
		t.Fatalf("LoadScript(%q) error = %v", name, err)
	}
	return content
}

func slugsOf(articles []article.Article) []string {
	slugs := make([]string, len(articles))
	for i, a := range articles {
		slugs[i] = a.Slug
	}
	return slugs
}
