// Package server exposes the publishing endpoints and an on-demand build
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/invoicekit/sitegen"
	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/assets"
	"github.com/invoicekit/sitegen/internal/pipeline"
	"github.com/invoicekit/sitegen/internal/publish"
	"github.com/invoicekit/sitegen/internal/store"
)

// Routes.
const (
	RouteCreatePost = "/api/supabase-blog"
	RoutePublish    = "/api/github-webhook"
	RouteListPosts  = "/api/get-posts"
	RouteBuild      = "/api/build"
	RouteHealth     = "/healthz"
	RouteMetrics    = "/metrics"
)

// DefaultPostAuthor is stored when a submitted post names no author.
const DefaultPostAuthor = "Admin"

// PostStore persists submitted posts.
type PostStore interface {
	Insert(ctx context.Context, p store.Post) (store.Post, error)
	ListPublished(ctx context.Context) ([]store.Post, error)
}

// Publisher commits rendered posts to source control.
type Publisher interface {
	Publish(ctx context.Context, token string, f publish.File) (publish.Result, error)
}

// Builder runs one site build.
type Builder interface {
	Build(ctx context.Context) (*sitegen.BuildResult, error)
}

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	echo       *echo.Echo
	logger     *slog.Logger
	now        func() time.Time
	posts      PostStore
	publisher  Publisher
	pages      *publish.PageRenderer
	builder    Builder
	buildToken string
	buildMu    sync.Mutex
	defaults   article.Defaults
	urls       pipeline.URLs
	siteName   string
	stylesheet string
	registry   *prometheus.Registry
	metrics    *metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStore enables the database endpoints.
func WithStore(p PostStore) Option {
	return func(s *Server) {
		s.posts = p
	}
}

// WithPublisher enables the source-control endpoint.
func WithPublisher(p Publisher) Option {
	return func(s *Server) {
		s.publisher = p
	}
}

// WithPageRenderer overrides the embedded post page template.
func WithPageRenderer(r *publish.PageRenderer) Option {
	return func(s *Server) {
		s.pages = r
	}
}

// WithBuilder enables the build endpoint. A non-empty token is required as
// a bearer credential on every build request.
func WithBuilder(b Builder, token string) Option {
	return func(s *Server) {
		s.builder = b
		s.buildToken = token
	}
}

// WithSite sets the values shown on committed pages and in response URLs.
func WithSite(name, stylesheet string, urls pipeline.URLs, defaults article.Defaults) Option {
	return func(s *Server) {
		s.siteName = name
		s.stylesheet = stylesheet
		s.urls = urls
		s.defaults = defaults
	}
}

// New creates a Server with its routes registered.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
		defaults:   article.DefaultDefaults(),
		urls:       pipeline.URLs{Strategy: pipeline.StrategyPath, ArticleDir: "blog", PostPage: "post.html"},
		siteName:   "Free Online Invoice",
		stylesheet: "/styles.css",
		registry:   prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.pages == nil {
		tmpl, err := assets.LoadTemplate(assets.TemplateGitHubPost)
		if err != nil {
			return nil, fmt.Errorf("loading post template: %w", err)
		}
		if s.pages, err = publish.NewPageRenderer(tmpl); err != nil {
			return nil, err
		}
	}
	s.metrics = newMetrics(s.registry)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(s.requestLogger())

	e.POST(RouteCreatePost, s.createPost)
	e.POST(RoutePublish, s.publishPost)
	e.GET(RouteListPosts, s.listPosts)
	e.POST(RouteBuild, s.runBuild)
	e.GET(RouteHealth, s.health)
	e.GET(RouteMetrics, echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	s.echo = e
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
