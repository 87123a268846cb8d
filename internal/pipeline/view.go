package pipeline

import (
	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/dateutil"
)

// DatePlaceholder is shown instead of a missing or invalid date.
const DatePlaceholder = "—"

// DefaultReadingTime is shown when an article has none.
const DefaultReadingTime = "5 min"

// Link is a titled URL rendered by the templates.
type Link struct {
	Title string
	URL   string
}

// TagLink points at the all-articles page filtered by one tag.
type TagLink struct {
	Name string
	URL  string
}

// Site carries the site-wide values every renderer needs.
type Site struct {
	Name          string
	Stylesheet    string
	OGImage       string
	DateLayout    string // Go time layout for display dates
	DefaultAuthor string
	Nav           []Link
	Resources     []Link
	URLs          URLs
}

// HomeURL is the site root.
func (s Site) HomeURL() string { return "/" }

// BlogURL is the blog index page.
func (s Site) BlogURL() string { return s.URLs.Page(s.URLs.BlogIndex) }

// ArchiveURL is the all-articles page.
func (s Site) ArchiveURL() string { return s.URLs.Page(s.URLs.Archive) }

// DisplayDate formats the publish date of a for humans, or DatePlaceholder
// when the date was a build-date fallback or does not parse.
func (s Site) DisplayDate(a article.Article) string {
	if a.DateFallback {
		return DatePlaceholder
	}
	layout := s.DateLayout
	if layout == "" {
		layout = "1/2/2006"
	}
	return dateutil.Display(a.PublishedAt, layout, DatePlaceholder)
}

// TagLinks builds the tag links of a.
func (s Site) TagLinks(a article.Article) []TagLink {
	links := make([]TagLink, len(a.Tags))
	for i, tag := range a.Tags {
		links[i] = TagLink{Name: tag, URL: s.URLs.Tag(tag)}
	}
	return links
}

// author returns the article author or the site default.
func (s Site) author(a article.Article) string {
	if a.Author != "" {
		return a.Author
	}
	return s.DefaultAuthor
}

func (s Site) linkTo(a *article.Article) *Link {
	if a == nil {
		return nil
	}
	return &Link{Title: a.Title, URL: s.URLs.Article(a.Slug)}
}
