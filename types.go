package sitegen

import (
	"log/slog"
	"time"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/config"
	"github.com/invoicekit/sitegen/internal/pipeline"
)

// Article is one blog post of the collection.
type Article = article.Article

// Report summarises the article collection of one build.
type Report = pipeline.Report

// BuildResult lists what one build wrote and skipped.
type BuildResult struct {
	Written []string      `json:"written"` // Output paths, in write order
	Skipped []SkippedPage `json:"skipped"`
	Report  Report        `json:"report"`
}

// SkippedPage is a listing page left untouched and the reason why.
type SkippedPage struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithConfig sets the site configuration. Required.
func WithConfig(cfg *config.Config) Option {
	return func(b *Builder) {
		b.cfg = cfg
	}
}

// WithLogger sets the logger for build progress. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock sets the source of the build date.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithAssetLoader sets a custom asset loader for templates and scripts.
// Takes precedence over the configured assets.basePath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(b *Builder) {
		b.assets = loader
	}
}
