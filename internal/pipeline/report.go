package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/dateutil"
)

// Report summarises the content of one build.
type Report struct {
	Total      int      `json:"total"`
	Featured   int      `json:"featured"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	WithMeta   int      `json:"with_meta"`
	Latest     string   `json:"latest,omitempty"`
	LatestSlug string   `json:"latest_slug,omitempty"`
}

// BuildReport summarises articles. Categories and tags keep first-seen
// order. The latest article is the first one whose publish date is strictly
// greater than every earlier one; build-date fallbacks never win.
func BuildReport(articles []article.Article) Report {
	r := Report{Total: len(articles), Categories: []string{}, Tags: []string{}}
	seenCategory := make(map[string]bool)
	seenTag := make(map[string]bool)

	var (
		latest   *article.Article
		latestAt time.Time
	)
	for i := range articles {
		a := &articles[i]
		if a.Featured {
			r.Featured++
		}
		if a.HasMeta() {
			r.WithMeta++
		}
		if a.Category != "" && !seenCategory[a.Category] {
			seenCategory[a.Category] = true
			r.Categories = append(r.Categories, a.Category)
		}
		for _, tag := range a.Tags {
			if !seenTag[tag] {
				seenTag[tag] = true
				r.Tags = append(r.Tags, tag)
			}
		}

		if a.DateFallback {
			continue
		}
		t, ok := dateutil.Parse(a.PublishedAt)
		if !ok {
			continue
		}
		if latest == nil || t.After(latestAt) {
			latest, latestAt = a, t
		}
	}
	if latest != nil {
		r.Latest = latest.Title
		r.LatestSlug = latest.Slug
	}
	return r
}

// Lines formats the report for console output.
func (r Report) Lines() []string {
	latest := "none"
	if r.Latest != "" {
		latest = r.Latest
	}
	return []string{
		fmt.Sprintf("Total articles: %d", r.Total),
		fmt.Sprintf("Featured: %d", r.Featured),
		fmt.Sprintf("Categories (%d): %s", len(r.Categories), strings.Join(r.Categories, ", ")),
		fmt.Sprintf("Tags (%d): %s", len(r.Tags), strings.Join(r.Tags, ", ")),
		fmt.Sprintf("With SEO meta: %d", r.WithMeta),
		fmt.Sprintf("Latest: %s", latest),
	}
}
