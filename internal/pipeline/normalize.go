package pipeline

import (
	"context"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/dateutil"
)

// htmlHeuristic detects bodies that are already HTML.
var htmlHeuristic = regexp.MustCompile(`(?i)<\s*(p|h\d|ul|ol|li|a|strong|em)\b`)

// IsHTML reports whether content looks like pre-formatted HTML rather than Markdown.
func IsHTML(content string) bool {
	return htmlHeuristic.MatchString(content)
}

// Normalizer resolves derived fields before rendering.
type Normalizer struct {
	Converter HTMLConverter
	// Now supplies the build date for missing or invalid publish dates.
	Now func() time.Time
	// RewriteLinks makes relative links in bodies root-relative, for pages
	// served below the site root.
	RewriteLinks bool
	Logger       *slog.Logger
}

// NewNormalizer creates a Normalizer with the Goldmark converter.
func NewNormalizer(now func() time.Time, logger *slog.Logger) *Normalizer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Normalizer{Converter: NewGoldmarkConverter(), Now: now, Logger: logger}
}

// Normalize returns normalised copies of articles. The input slice is not
// modified. Never fails: every fallback is total.
func (n *Normalizer) Normalize(ctx context.Context, articles []article.Article) []article.Article {
	buildDate := dateutil.DateOnly(n.Now())
	out := make([]article.Article, len(articles))
	for i, a := range articles {
		out[i] = n.normalizeOne(ctx, a, buildDate)
	}
	return out
}

func (n *Normalizer) normalizeOne(ctx context.Context, a article.Article, buildDate string) article.Article {
	a.Tags = append([]string(nil), a.Tags...)
	a.Content = n.contentHTML(ctx, a)

	if strings.TrimSpace(a.Description) == "" {
		a.Description = Excerpt(a.Content, ExcerptLength)
	}

	if !dateutil.Valid(a.PublishedAt) {
		a.PublishedAt = buildDate
		a.DateFallback = true
	}
	if !dateutil.Valid(a.UpdatedAt) {
		a.UpdatedAt = ""
	}
	return a
}

func (n *Normalizer) contentHTML(ctx context.Context, a article.Article) string {
	content := a.Content
	if !IsHTML(content) {
		converted, err := n.Converter.ToHTML(ctx, content)
		if err != nil {
			n.Logger.Warn("markdown conversion failed, using plain text", "slug", a.Slug, "error", err)
			converted = "<p>" + html.EscapeString(content) + "</p>"
		}
		content = converted
	}

	if n.RewriteLinks {
		rewritten, err := RewriteRootRelative(content)
		if err != nil {
			n.Logger.Warn("link rewrite failed, keeping body as is", "slug", a.Slug, "error", err)
			return content
		}
		content = rewritten
	}
	return content
}
