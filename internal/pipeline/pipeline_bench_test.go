//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/invoicekit/sitegen/internal/article"
)

// BenchmarkGoldmarkToHTML benchmarks Markdown conversion of article bodies.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	for _, sections := range []int{1, 10, 50, 200} {
		content := generateArticleMarkdown(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuildNavigation benchmarks related-article scoring, which is
// quadratic in the collection size.
func BenchmarkBuildNavigation(b *testing.B) {
	for _, n := range []int{10, 100, 500} {
		articles := generateArticles(n)
		b.Run(fmt.Sprintf("articles_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = BuildNavigation(articles, DefaultRelatedLimit)
			}
		})
	}
}

// BenchmarkFindContainer benchmarks the container scan over a large listing.
func BenchmarkFindContainer(b *testing.B) {
	page := `<html><body><div class="articles-grid">` +
		strings.Repeat(`<article class="card"><div class="meta"><span>x</span></div></article>`, 1000) +
		`</div></body></html>`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := FindContainer(page, `<div class="articles-grid">`); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkExcerpt benchmarks tag stripping and truncation.
func BenchmarkExcerpt(b *testing.B) {
	content := "<p>" + strings.Repeat("Invoice <strong>terms</strong> matter. ", 200) + "</p>"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Excerpt(content, ExcerptLength)
	}
}

func generateArticles(n int) []article.Article {
	tags := []string{"invoice", "tax", "vat", "payments", "freelance"}
	categories := []string{"business", "tax", "guides"}
	articles := make([]article.Article, n)
	for i := range articles {
		articles[i] = article.Article{
			Slug:        fmt.Sprintf("article-%d", i),
			Title:       fmt.Sprintf("Article %d", i),
			Category:    categories[i%len(categories)],
			Tags:        []string{tags[i%len(tags)], tags[(i+2)%len(tags)]},
			PublishedAt: fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
		}
	}
	return articles
}

func generateArticleMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Getting Paid Faster\n\n")
	sb.WriteString("Introduction with **bold** and *italic* text.\n\n")

	for i := 0; i < sections; i++ {
		sb.WriteString(fmt.Sprintf("## Step %d\n\n", i+1))
		sb.WriteString("Send the invoice with [clear terms](pricing.html) and `net 30` due dates.\n\n")
		sb.WriteString("- Itemise services\n- Add tax\n- Set a due date\n\n")
		if i%5 == 0 {
			sb.WriteString("| Item | Rate |\n|---|---|\n| Design | $100 |\n\n")
		}
	}
	return sb.String()
}
