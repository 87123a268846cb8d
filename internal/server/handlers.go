package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/publish"
	"github.com/invoicekit/sitegen/internal/seo"
	"github.com/invoicekit/sitegen/internal/store"
)

type createPostRequest struct {
	Content         string `json:"content"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Category        string `json:"category"`
	Author          string `json:"author"`
	MetaDescription string `json:"meta_description"`
	Tags            any    `json:"tags"`
	Keywords        any    `json:"keywords"`
}

type createPostData struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Category        string   `json:"category"`
	Author          string   `json:"author"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	seo.Metrics
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}

type publishRequest struct {
	Content     string `json:"content"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	GitHubToken string `json:"githubToken"`
	Category    string `json:"category"`
	Author      string `json:"author"`
}

type publishData struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Category  string `json:"category"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	GitHubURL string `json:"githubUrl"`
	Timestamp string `json:"timestamp"`
}

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type missingFieldsBody struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missing_fields"`
}

type detailBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

// createPost scores a submitted post and stores it as published.
func (s *Server) createPost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body").SetInternal(err)
	}

	if missing := missingFields(map[string]string{"title": req.Title, "content": req.Content}, "title", "content"); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, missingFieldsBody{
			Error:         "Missing required fields: " + strings.Join(missing, ", "),
			MissingFields: missing,
		})
	}
	if s.posts == nil {
		return c.JSON(http.StatusInternalServerError, detailBody{
			Error:   "Server configuration error: database is not configured.",
			Message: "Set DATABASE_URL to enable post storage.",
		})
	}

	now := s.now()
	meta := seo.MetaDescription(req.MetaDescription, req.Content)
	keywords := article.ParseTags(req.Keywords)
	if len(keywords) == 0 {
		keywords = seo.ExtractKeywords(req.Title, req.Content)
	}
	tags := article.ParseTags(req.Tags)
	if len(tags) == 0 {
		tags = append([]string(nil), s.defaults.Tags...)
	}
	metrics := seo.Calculate(req.Title, req.Content, meta)

	post, err := s.posts.Insert(c.Request().Context(), store.Post{
		Title:           req.Title,
		Content:         req.Content,
		Slug:            s.slugFor(req.Slug, req.Title, now),
		Category:        orDefault(req.Category, s.defaults.Category),
		Author:          orDefault(req.Author, DefaultPostAuthor),
		MetaDescription: meta,
		Keywords:        keywords,
		Tags:            tags,
		Status:          store.StatusPublished,
		SEOScore:        metrics.Score,
		WordCount:       metrics.WordCount,
		ReadingTime:     metrics.ReadingTime,
		KeywordDensity:  metrics.KeywordDensity,
	})
	if err != nil {
		s.logger.Error("saving post", "title", req.Title, "error", err)
		return c.JSON(http.StatusInternalServerError, detailBody{
			Error:   "Failed to save blog post to database.",
			Details: err.Error(),
		})
	}

	s.logger.Info("post saved", "id", post.ID, "slug", post.Slug, "seo_score", metrics.Score)
	return c.JSON(http.StatusOK, successBody{
		Success: true,
		Message: "Blog post saved successfully",
		Data: createPostData{
			ID:              post.ID,
			Title:           post.Title,
			Slug:            post.Slug,
			Category:        post.Category,
			Author:          post.Author,
			MetaDescription: post.MetaDescription,
			Keywords:        post.Keywords,
			Metrics:         metrics,
			URL:             s.urls.Article(post.Slug),
			Timestamp:       now.UTC().Format(time.RFC3339),
		},
	})
}

// publishPost renders a standalone post page and commits it to the repository.
func (s *Server) publishPost(c echo.Context) error {
	var req publishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body").SetInternal(err)
	}

	fields := map[string]string{
		"content":     req.Content,
		"title":       req.Title,
		"slug":        req.Slug,
		"githubToken": req.GitHubToken,
	}
	if missing := missingFields(fields, "content", "title", "slug", "githubToken"); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, missingFieldsBody{
			Error:         "Missing required fields: " + strings.Join(missing, ", "),
			MissingFields: missing,
		})
	}
	if !article.ValidSlug(req.Slug) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid slug %q", req.Slug))
	}
	if s.publisher == nil {
		return c.JSON(http.StatusInternalServerError, detailBody{
			Error:   "Server configuration error: GitHub repository is not configured.",
			Message: "Set the github owner and repo in the site configuration.",
		})
	}

	now := s.now()
	category := orDefault(req.Category, s.defaults.Category)
	author := orDefault(req.Author, DefaultPostAuthor)
	page, err := s.pages.Render(publish.Page{
		Title:       req.Title,
		SiteName:    s.siteName,
		Description: seo.MetaDescription("", req.Content),
		Category:    category,
		Author:      author,
		Stylesheet:  s.stylesheet,
		Date:        publish.FormatDate(now),
		Paragraphs:  publish.Paragraphs(req.Content),
	})
	if err != nil {
		return fmt.Errorf("rendering post page: %w", err)
	}

	res, err := s.publisher.Publish(c.Request().Context(), req.GitHubToken, publish.File{
		Slug:    req.Slug,
		Message: "Add blog post: " + req.Title,
		Content: page,
	})
	switch {
	case errors.Is(err, publish.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, detailBody{
			Error:   "GitHub authentication failed.",
			Message: err.Error(),
		})
	case err != nil:
		s.logger.Error("publishing post", "slug", req.Slug, "error", err)
		return c.JSON(http.StatusInternalServerError, detailBody{
			Error:   "Failed to publish blog post to GitHub.",
			Message: err.Error(),
		})
	}

	s.logger.Info("post published", "slug", req.Slug, "path", res.Path)
	return c.JSON(http.StatusOK, successBody{
		Success: true,
		Message: "Blog post published to GitHub successfully",
		Data: publishData{
			Title:     req.Title,
			Slug:      req.Slug,
			Category:  category,
			Author:    author,
			URL:       "/blog-posts/" + req.Slug + ".html",
			GitHubURL: res.HTMLURL,
			Timestamp: now.UTC().Format(time.RFC3339),
		},
	})
}

// listPosts returns every published post, newest first.
func (s *Server) listPosts(c echo.Context) error {
	if s.posts == nil {
		return c.JSON(http.StatusInternalServerError, detailBody{
			Error:   "Server configuration error: database is not configured.",
			Message: "Set DATABASE_URL to enable post storage.",
		})
	}
	posts, err := s.posts.ListPublished(c.Request().Context())
	if err != nil {
		s.logger.Error("listing posts", "error", err)
		return c.JSON(http.StatusInternalServerError, detailBody{
			Error:   "Failed to fetch blog posts.",
			Details: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, posts)
}

// runBuild runs one site build. Concurrent requests are refused, not queued.
func (s *Server) runBuild(c echo.Context) error {
	if s.builder == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Build endpoint is not enabled")
	}
	if !s.authorizedBuild(c.Request()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing build token")
	}
	if !s.buildMu.TryLock() {
		s.metrics.builds.WithLabelValues("conflict").Inc()
		return echo.NewHTTPError(http.StatusConflict, "A build is already in progress")
	}
	defer s.buildMu.Unlock()

	res, err := s.builder.Build(c.Request().Context())
	if err != nil {
		s.metrics.builds.WithLabelValues("failed").Inc()
		s.logger.Error("build failed", "error", err)
		return c.JSON(http.StatusInternalServerError, detailBody{
			Error:   "Build failed",
			Details: err.Error(),
		})
	}
	s.metrics.builds.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, successBody{
		Success: true,
		Message: "Build completed",
		Data:    res,
	})
}

func (s *Server) authorizedBuild(r *http.Request) bool {
	if s.buildToken == "" {
		return true
	}
	token, ok := strings.CutPrefix(r.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.buildToken)) == 1
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// slugFor prefers an explicit slug, then the title's slug, then a timestamped one.
func (s *Server) slugFor(explicit, title string, now time.Time) string {
	if slug := strings.TrimSpace(explicit); slug != "" {
		return slug
	}
	if slug := article.Slugify(title); slug != "" {
		return slug
	}
	return fmt.Sprintf("post-%d", now.Unix())
}

// missingFields returns the names, in order, whose values are blank.
func missingFields(values map[string]string, names ...string) []string {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
