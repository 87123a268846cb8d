package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/invoicekit/sitegen/internal/article"
)

// ErrPostData indicates the aggregate data file could not be encoded.
var ErrPostData = errors.New("post data encoding failed")

const postDataHeader = "// Generated by sitegen from the article collection. Do not edit.\n"

// postRecord is one article as the fallback renderer consumes it.
// Navigation is precomputed so the browser shows the same related and
// prev/next links as the static pages.
type postRecord struct {
	ID              string    `json:"id,omitempty"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Description     string    `json:"description"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	PublishedAt     string    `json:"published_at"`
	UpdatedAt       string    `json:"updated_at,omitempty"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	ReadingTime     string    `json:"reading_time"`
	Featured        bool      `json:"featured"`
	URL             string    `json:"url"`
	Canonical       string    `json:"canonical"`
	DisplayDate     string    `json:"display_date"`
	TagLinks        []tagRef  `json:"tag_links"`
	Related         []postRef `json:"related"`
	Prev            *postRef  `json:"prev"`
	Next            *postRef  `json:"next"`
}

type postRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type tagRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type linkRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type runtimeConfig struct {
	Name      string    `json:"name"`
	BlogURL   string    `json:"blogURL"`
	Resources []linkRef `json:"resources"`
}

// PostDataEmitter writes the aggregate data script: every article keyed by
// slug followed by the client-side fallback renderer.
type PostDataEmitter struct {
	site    Site
	runtime string
}

// NewPostDataEmitter creates an emitter that appends runtimeScript.
func NewPostDataEmitter(site Site, runtimeScript string) *PostDataEmitter {
	return &PostDataEmitter{site: site, runtime: runtimeScript}
}

// Emit encodes articles with their navigation. Object keys are sorted, so
// the output depends only on the input.
func (e *PostDataEmitter) Emit(articles []article.Article, nav map[string]Navigation) ([]byte, error) {
	records := make(map[string]postRecord, len(articles))
	for _, a := range articles {
		records[a.Slug] = e.record(a, nav[a.Slug])
	}

	resources := make([]linkRef, len(e.site.Resources))
	for i, r := range e.site.Resources {
		resources[i] = linkRef{Title: r.Title, URL: r.URL}
	}
	cfg, err := json.Marshal(runtimeConfig{Name: e.site.Name, BlogURL: e.site.BlogURL(), Resources: resources})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostData, err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostData, err)
	}

	var buf bytes.Buffer
	buf.WriteString(postDataHeader)
	buf.WriteString("const siteConfig = ")
	buf.Write(cfg)
	buf.WriteString(";\nconst staticArticles = ")
	buf.Write(data)
	buf.WriteString(";\n\n")
	buf.WriteString(e.runtime)
	return buf.Bytes(), nil
}

func (e *PostDataEmitter) record(a article.Article, nav Navigation) postRecord {
	site := e.site
	readingTime := a.ReadingTime
	if readingTime == "" {
		readingTime = DefaultReadingTime
	}
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	tagLinks := make([]tagRef, len(a.Tags))
	for i, t := range site.TagLinks(a) {
		tagLinks[i] = tagRef{Name: t.Name, URL: t.URL}
	}
	related := make([]postRef, len(nav.Related))
	for i, r := range nav.Related {
		related[i] = e.ref(&r)
	}

	rec := postRecord{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		Content:         a.Content,
		Description:     a.Description,
		Author:          site.author(a),
		Category:        a.Category,
		Tags:            tags,
		PublishedAt:     a.PublishedAt,
		UpdatedAt:       a.UpdatedAt,
		MetaTitle:       a.MetaTitle,
		MetaDescription: a.MetaDescription,
		ReadingTime:     readingTime,
		Featured:        a.Featured,
		URL:             site.URLs.Article(a.Slug),
		Canonical:       site.URLs.Canonical(a.Slug),
		DisplayDate:     site.DisplayDate(a),
		TagLinks:        tagLinks,
		Related:         related,
	}
	if nav.Prev != nil {
		prev := e.ref(nav.Prev)
		rec.Prev = &prev
	}
	if nav.Next != nil {
		next := e.ref(nav.Next)
		rec.Next = &next
	}
	return rec
}

func (e *PostDataEmitter) ref(a *article.Article) postRef {
	return postRef{Slug: a.Slug, Title: a.Title, URL: e.site.URLs.Article(a.Slug)}
}
