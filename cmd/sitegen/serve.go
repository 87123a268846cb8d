package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/invoicekit/sitegen"
	"github.com/invoicekit/sitegen/internal/config"
	"github.com/invoicekit/sitegen/internal/hints"
	"github.com/invoicekit/sitegen/internal/publish"
	"github.com/invoicekit/sitegen/internal/server"
	"github.com/invoicekit/sitegen/internal/store"
)

const shutdownTimeout = 10 * time.Second

// runServe runs the HTTP endpoints until the context is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return flagError(err)
	}
	if len(positional) > 0 {
		return usageError("serve takes no arguments, got %q", positional[0])
	}

	logger, err := newLogger(env.Stderr, &f.common)
	if err != nil {
		return err
	}
	cfg, envCfg, err := resolveConfig(env, &f.common, &f.site)
	if err != nil {
		return withHint(err, nil)
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	if err != nil {
		logger.Warn("failed to set GOMAXPROCS", "error", err)
	}
	defer undo()

	srv, cleanup, err := newServer(ctx, cfg, envCfg, logger, env.Now)
	if err != nil {
		return withHint(err, cfg)
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.Start(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	}
}

// newServer assembles the HTTP server from the configuration. Endpoints
// whose backing service is not configured stay registered and answer 500.
// The returned cleanup releases the database pool.
func newServer(ctx context.Context, cfg *config.Config, envCfg *envConfig, logger *slog.Logger, now func() time.Time) (*server.Server, func(), error) {
	cleanup := func() {}

	site, err := sitegen.SiteFromConfig(cfg)
	if err != nil {
		return nil, cleanup, err
	}
	loader, err := sitegen.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, cleanup, err
	}
	postTmpl, err := loader.LoadTemplate(sitegen.TemplateGitHubPost)
	if err != nil {
		return nil, cleanup, err
	}
	pages, err := publish.NewPageRenderer(postTmpl)
	if err != nil {
		return nil, cleanup, fmt.Errorf("%w: %v", sitegen.ErrRender, err)
	}
	builder, err := sitegen.NewBuilder(
		sitegen.WithConfig(cfg),
		sitegen.WithLogger(logger),
		sitegen.WithClock(now),
		sitegen.WithAssetLoader(loader),
	)
	if err != nil {
		return nil, cleanup, err
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithClock(now),
		server.WithPageRenderer(pages),
		server.WithSite(cfg.Site.Name, cfg.Site.Stylesheet, site.URLs, sitegen.ArticleDefaults(cfg)),
		server.WithBuilder(builder, envCfg.BuildToken),
	}
	if envCfg.BuildToken == "" {
		logger.Warn("SITEGEN_BUILD_TOKEN not set; build endpoint accepts any caller")
	}

	if envCfg.DatabaseURL != "" {
		pool, err := store.Open(ctx, envCfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("%w%s", err, hints.ForDatabaseURL())
		}
		cleanup = pool.Close
		posts, err := store.New(pool, cfg.Store.Table)
		if err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		opts = append(opts, server.WithStore(posts))
	} else {
		logger.Warn("DATABASE_URL not set; post endpoints disabled")
	}

	if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		pub, err := publish.New(publish.Config{
			APIBaseURL: cfg.GitHub.APIBaseURL,
			Owner:      cfg.GitHub.Owner,
			Repo:       cfg.GitHub.Repo,
			Branch:     cfg.GitHub.Branch,
			Dir:        cfg.GitHub.Dir,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		opts = append(opts, server.WithPublisher(pub))
	} else {
		logger.Warn("github.owner or github.repo not set; publish endpoint disabled")
	}

	srv, err := server.New(opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return srv, cleanup, nil
}
