package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/invoicekit/sitegen/internal/article"
)

// ErrArticleRender indicates the article page template failed to execute.
var ErrArticleRender = errors.New("article template rendering failed")

// ArticlePage is the view rendered by the article template.
type ArticlePage struct {
	Site              Site
	PageTitle         string
	MetaDescription   string
	SocialTitle       string
	SocialDescription string
	Canonical         string
	Title             string
	Author            string
	ReadingTime       string
	Date              string
	DateTime          string
	Category          string
	Content           template.HTML
	Tags              []TagLink
	Related           []Link
	Prev              *Link
	Next              *Link
	JSONLD            template.JS
}

// ArticlePageRenderer renders one standalone page per article.
type ArticlePageRenderer struct {
	site Site
	tmpl *template.Template
}

// NewArticlePageRenderer parses the article page template.
func NewArticlePageRenderer(site Site, tmplContent string) (*ArticlePageRenderer, error) {
	tmpl, err := template.New("article").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing article template: %w", err)
	}
	return &ArticlePageRenderer{site: site, tmpl: tmpl}, nil
}

// Page builds the view of a with its precomputed navigation.
func (r *ArticlePageRenderer) Page(a article.Article, nav Navigation) (ArticlePage, error) {
	site := r.site
	canonical := site.URLs.Canonical(a.Slug)
	summarySource := firstNonBlank(a.MetaDescription, a.Description, a.Content)

	socialTitle := a.Title
	pageTitle := a.Title + " | " + site.Name
	if strings.TrimSpace(a.MetaTitle) != "" {
		socialTitle = a.MetaTitle
		pageTitle = a.MetaTitle
	}

	readingTime := a.ReadingTime
	if readingTime == "" {
		readingTime = DefaultReadingTime
	}

	dateTime := a.PublishedAt
	if a.DateFallback {
		dateTime = ""
	}

	related := make([]Link, len(nav.Related))
	for i, rel := range nav.Related {
		related[i] = Link{Title: rel.Title, URL: site.URLs.Article(rel.Slug)}
	}

	jsonLD, err := MarshalJSONLD(r.blogPosting(a, canonical, summarySource), false)
	if err != nil {
		return ArticlePage{}, err
	}

	return ArticlePage{
		Site:              site,
		PageTitle:         pageTitle,
		MetaDescription:   Excerpt(summarySource, MetaExcerptLength),
		SocialTitle:       socialTitle,
		SocialDescription: Excerpt(summarySource, ExcerptLength),
		Canonical:         canonical,
		Title:             a.Title,
		Author:            site.author(a),
		ReadingTime:       readingTime,
		Date:              site.DisplayDate(a),
		DateTime:          dateTime,
		Category:          a.Category,
		Content:           template.HTML(a.Content), // #nosec G203 -- operator-authored article body
		Tags:              site.TagLinks(a),
		Related:           related,
		Prev:              site.linkTo(nav.Prev),
		Next:              site.linkTo(nav.Next),
		JSONLD:            jsonLD,
	}, nil
}

// Render executes the article template for a.
func (r *ArticlePageRenderer) Render(a article.Article, nav Navigation) ([]byte, error) {
	page, err := r.Page(a, nav)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArticleRender, a.Slug, err)
	}
	return buf.Bytes(), nil
}

func (r *ArticlePageRenderer) blogPosting(a article.Article, canonical, summarySource string) BlogPosting {
	section := a.Category
	if section == "" {
		section = "blog"
	}
	modified := a.UpdatedAt
	if modified == "" {
		modified = a.PublishedAt
	}
	keywords := a.Tags
	if keywords == nil {
		keywords = []string{}
	}
	return BlogPosting{
		Context:          schemaContext,
		Type:             "BlogPosting",
		Headline:         a.Title,
		Description:      Excerpt(summarySource, LDExcerptLength),
		DatePublished:    a.PublishedAt,
		DateModified:     modified,
		Author:           Thing{Type: "Organization", Name: r.site.author(a)},
		Image:            r.site.OGImage,
		MainEntityOfPage: Thing{Type: "WebPage", ID: canonical},
		ArticleSection:   section,
		Keywords:         keywords,
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
