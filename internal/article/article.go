// Package article defines the Article record and loads article collections
// from JSON or YAML files, resolving loosely typed fields once at ingestion.
package article

import (
	"errors"
	"strings"
)

// Sentinel errors for loading article collections.
var (
	ErrReadArticles   = errors.New("failed to read articles file")
	ErrParseArticles  = errors.New("failed to parse articles file")
	ErrNoArticles     = errors.New("no articles found")
	ErrInvalidArticle = errors.New("invalid article")
	ErrDuplicateSlug  = errors.New("duplicate article slug")
	ErrUnsupportedExt = errors.New("unsupported articles file extension")
)

// DefaultCollectionKey is the top-level key holding the article list.
const DefaultCollectionKey = "articles"

// Article is one blog content record.
// Tags hold a canonical set: trimmed, non-empty, first occurrence kept.
type Article struct {
	ID              string   `json:"id,omitempty" yaml:"id,omitempty"`
	Slug            string   `json:"slug" yaml:"slug"`
	Title           string   `json:"title" yaml:"title"`
	Content         string   `json:"content" yaml:"content"`
	Description     string   `json:"description" yaml:"description"`
	Author          string   `json:"author" yaml:"author"`
	Category        string   `json:"category" yaml:"category"`
	Tags            []string `json:"tags" yaml:"tags"`
	PublishedAt     string   `json:"published_at" yaml:"published_at"`
	CreatedAt       string   `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	MetaTitle       string   `json:"meta_title,omitempty" yaml:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty" yaml:"meta_description,omitempty"`
	ReadingTime     string   `json:"reading_time,omitempty" yaml:"reading_time,omitempty"`
	Featured        bool     `json:"featured" yaml:"featured"`

	// DateFallback is set by normalization when PublishedAt was replaced
	// with the build date because the input was missing or unparseable.
	DateFallback bool `json:"-" yaml:"-"`
}

// HasMeta reports whether both SEO override fields are populated.
func (a Article) HasMeta() bool {
	return strings.TrimSpace(a.MetaTitle) != "" && strings.TrimSpace(a.MetaDescription) != ""
}

// Defaults holds values applied to records that omit optional fields.
type Defaults struct {
	Author   string
	Category string
	Tags     []string
}

// DefaultDefaults returns the placeholders used when no configuration overrides them.
func DefaultDefaults() Defaults {
	return Defaults{
		Author:   "FreeOnlineInvoice.org",
		Category: "business",
		Tags:     []string{"invoice", "business"},
	}
}
