package pipeline

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/dateutil"
)

// ErrSitemap indicates the sitemap could not be encoded.
var ErrSitemap = errors.New("sitemap encoding failed")

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Sitemap priorities and change frequencies per page type.
const (
	rootPriority    = "1.0"
	listingPriority = "0.8"
	articlePriority = "0.7"
	weekly          = "weekly"
	monthly         = "monthly"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SitemapEntries lists the root, the blog index, the all-articles page and
// then one entry per article in the order given.
func SitemapEntries(site Site, articles []article.Article, buildDate time.Time) []SitemapURL {
	today := dateutil.DateOnly(buildDate)
	u := site.URLs
	entries := make([]SitemapURL, 0, 3+len(articles))
	entries = append(entries,
		SitemapURL{Loc: u.Absolute(site.HomeURL()), LastMod: today, ChangeFreq: weekly, Priority: rootPriority},
		SitemapURL{Loc: u.Absolute(site.BlogURL()), LastMod: today, ChangeFreq: weekly, Priority: listingPriority},
		SitemapURL{Loc: u.Absolute(site.ArchiveURL()), LastMod: today, ChangeFreq: weekly, Priority: listingPriority},
	)
	for _, a := range articles {
		entries = append(entries, SitemapURL{
			Loc:        u.Canonical(a.Slug),
			LastMod:    lastModified(a, today),
			ChangeFreq: monthly,
			Priority:   articlePriority,
		})
	}
	return entries
}

// RenderSitemap encodes the sitemap XML document.
func RenderSitemap(site Site, articles []article.Article, buildDate time.Time) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNamespace, URLs: SitemapEntries(site, articles, buildDate)}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSitemap, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func lastModified(a article.Article, today string) string {
	for _, d := range []string{a.UpdatedAt, a.PublishedAt} {
		if t, ok := dateutil.Parse(d); ok {
			return dateutil.DateOnly(t)
		}
	}
	return today
}
