package sitegen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/assets"
	"github.com/invoicekit/sitegen/internal/config"
	"github.com/invoicekit/sitegen/internal/dateutil"
	"github.com/invoicekit/sitegen/internal/fileutil"
	"github.com/invoicekit/sitegen/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = AssetLoader(nil)
)

// Builder regenerates the static blog from the article collection.
// Create with NewBuilder() and call Build() for each run.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
	assets AssetLoader
	site   pipeline.Site
}

// NewBuilder creates a Builder. WithConfig is required.
// Returns error if the configuration or asset path is invalid.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.cfg == nil {
		return nil, ErrNoConfig
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	site, err := SiteFromConfig(b.cfg)
	if err != nil {
		return nil, err
	}
	b.site = site

	if b.assets == nil {
		loader, err := NewAssetLoader(b.cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		b.assets = loader
	}
	return b, nil
}

// SiteFromConfig derives the values every renderer shares from cfg.
func SiteFromConfig(cfg *config.Config) (pipeline.Site, error) {
	switch cfg.URLs.Strategy {
	case config.StrategyPath, config.StrategyQuery:
	default:
		return pipeline.Site{}, fmt.Errorf("%w: %q", ErrInvalidStrategy, cfg.URLs.Strategy)
	}
	layout, err := dateutil.ParseDateFormat(cfg.Site.DateFormat)
	if err != nil {
		return pipeline.Site{}, fmt.Errorf("%w: %v", ErrInvalidSite, err)
	}

	urls := pipeline.URLs{
		BaseURL:    cfg.Site.BaseURL,
		Strategy:   cfg.URLs.Strategy,
		ArticleDir: cfg.Paths.ArticleDir,
		PostPage:   cfg.Paths.PostPage,
		BlogIndex:  cfg.Paths.BlogIndex,
		Archive:    cfg.Paths.Archive,
	}
	site := pipeline.Site{
		Name:          cfg.Site.Name,
		Stylesheet:    cfg.Site.Stylesheet,
		DateLayout:    layout,
		DefaultAuthor: cfg.Site.DefaultAuthor,
		Nav:           links(cfg.Site.Nav),
		Resources:     links(cfg.Site.Resources),
		URLs:          urls,
	}
	if cfg.Site.OGImage != "" {
		site.OGImage = urls.Absolute(cfg.Site.OGImage)
	}
	return site, nil
}

// ArticleDefaults returns the placeholders applied to records that omit
// author, category or tags.
func ArticleDefaults(cfg *config.Config) article.Defaults {
	return article.Defaults{
		Author:   cfg.Site.DefaultAuthor,
		Category: cfg.Site.DefaultCategory,
		Tags:     append([]string(nil), cfg.Site.DefaultTags...),
	}
}

func links(in []config.Link) []pipeline.Link {
	out := make([]pipeline.Link, len(in))
	for i, l := range in {
		out[i] = pipeline.Link{Title: l.Title, URL: l.URL}
	}
	return out
}

// buildAssets holds the templates and scripts one build renders with.
type buildAssets struct {
	templates     *assets.TemplateSet
	filterScript  string
	runtimeScript string
}

// Build runs one full regeneration: blog index, all-articles page, article
// pages (path strategy only), aggregate data file, sitemap, then the report.
// A listing page whose container cannot be found is skipped with a warning.
// Every other failure stops the run. The context is checked between steps.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context) (result *BuildResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := b.now()
	res := &BuildResult{Written: []string{}, Skipped: []SkippedPage{}}

	ba, err := b.loadAssets()
	if err != nil {
		return nil, err
	}

	loader := article.NewLoader()
	loader.Defaults = ArticleDefaults(b.cfg)
	raw, err := loader.LoadFile(b.cfg.Paths.Articles)
	if err != nil {
		return nil, err
	}
	b.logger.Info("articles loaded", "count", len(raw), "path", b.cfg.Paths.Articles)

	normalizer := pipeline.NewNormalizer(b.now, b.logger)
	normalizer.RewriteLinks = b.cfg.URLs.Strategy == config.StrategyPath
	articles := normalizer.Normalize(ctx, raw)
	newestFirst := pipeline.SortNewestFirst(articles)
	nav := pipeline.BuildNavigation(articles, b.cfg.Related.Limit)

	listing, err := pipeline.NewListingRenderer(pipeline.ListingOptions{
		Site:                b.site,
		IndexCardTemplate:   ba.templates.IndexCard,
		ArchiveCardTemplate: ba.templates.ArchiveCard,
		FilterScript:        ba.filterScript,
		IndexContainer:      b.cfg.Listing.IndexContainer,
		ArchiveContainer:    b.cfg.Listing.ArchiveContainer,
		NoResultsMarker:     b.cfg.Listing.NoResultsMarker,
		DataScript:          b.cfg.Paths.PostData,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"blog index", func() error {
			return b.updateListing(res, b.cfg.Paths.BlogIndex, func(page string) (string, error) {
				return listing.RenderIndex(page, newestFirst)
			})
		}},
		{"all-articles page", func() error {
			return b.updateListing(res, b.cfg.Paths.Archive, func(page string) (string, error) {
				return listing.RenderArchive(page, newestFirst)
			})
		}},
		{"article pages", func() error {
			return b.writeArticlePages(ctx, res, ba.templates.Article, articles, nav)
		}},
		{"post data", func() error {
			data, err := pipeline.NewPostDataEmitter(b.site, ba.runtimeScript).Emit(articles, nav)
			if err != nil {
				return err
			}
			return b.write(res, b.cfg.Paths.PostData, data)
		}},
		{"sitemap", func() error {
			data, err := pipeline.RenderSitemap(b.site, articles, b.now())
			if err != nil {
				return err
			}
			return b.write(res, b.cfg.Paths.Sitemap, data)
		}},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
	}

	res.Report = pipeline.BuildReport(articles)
	for _, line := range res.Report.Lines() {
		b.logger.Info(line)
	}
	b.logger.Info("build complete",
		"written", len(res.Written),
		"skipped", len(res.Skipped),
		"duration", b.now().Sub(start).Round(time.Millisecond),
	)
	return res, nil
}

func (b *Builder) loadAssets() (*buildAssets, error) {
	templates, err := assets.LoadTemplateSet(b.assets)
	if err != nil {
		return nil, convertAssetError(err)
	}
	filter, err := b.assets.LoadScript(ScriptFilter)
	if err != nil {
		return nil, err
	}
	runtime, err := b.assets.LoadScript(ScriptPostRuntime)
	if err != nil {
		return nil, err
	}
	return &buildAssets{templates: templates, filterScript: filter, runtimeScript: runtime}, nil
}

// updateListing rewrites one existing listing page in place.
func (b *Builder) updateListing(res *BuildResult, name string, render func(string) (string, error)) error {
	path := b.outputPath(name)
	page, err := os.ReadFile(path) // #nosec G304 -- path is built from validated configuration
	if errors.Is(err, fs.ErrNotExist) {
		b.skip(res, path, "page does not exist")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadPage, err)
	}

	out, err := render(string(page))
	if errors.Is(err, pipeline.ErrContainerNotFound) || errors.Is(err, pipeline.ErrContainerUnbalanced) {
		b.skip(res, path, err.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return b.writePath(res, path, []byte(out))
}

// writeArticlePages writes one page per article. Query URLs render at
// runtime from the data file, so nothing is written for them.
func (b *Builder) writeArticlePages(ctx context.Context, res *BuildResult, tmpl string, articles []article.Article, nav map[string]pipeline.Navigation) error {
	if b.cfg.URLs.Strategy != config.StrategyPath {
		b.logger.Info("article pages rendered at runtime", "page", b.cfg.Paths.PostPage)
		return nil
	}

	renderer, err := pipeline.NewArticlePageRenderer(b.site, tmpl)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	for _, a := range articles {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := renderer.Render(a, nav[a.Slug])
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRender, a.Slug, err)
		}
		if err := b.write(res, filepath.Join(b.cfg.Paths.ArticleDir, a.Slug+".html"), page); err != nil {
			return err
		}
	}
	b.logger.Info("article pages written", "count", len(articles), "dir", b.outputPath(b.cfg.Paths.ArticleDir))
	return nil
}

func (b *Builder) outputPath(name string) string {
	return filepath.Join(b.cfg.Paths.PublicDir, filepath.FromSlash(name))
}

func (b *Builder) write(res *BuildResult, name string, content []byte) error {
	return b.writePath(res, b.outputPath(name), content)
}

func (b *Builder) writePath(res *BuildResult, path string, content []byte) error {
	if err := fileutil.WriteFileAtomic(path, content, fileutil.DefaultFilePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	res.Written = append(res.Written, path)
	b.logger.Debug("wrote file", "path", path, "bytes", len(content))
	return nil
}

func (b *Builder) skip(res *BuildResult, path, reason string) {
	res.Skipped = append(res.Skipped, SkippedPage{Path: path, Reason: reason})
	b.logger.Warn("page skipped", "path", path, "reason", reason)
}
