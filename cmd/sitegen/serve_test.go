package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicekit/sitegen/internal/config"
	"github.com/invoicekit/sitegen/internal/server"
)

func TestNewServer(t *testing.T) {
	t.Parallel()

	articles, public := newTestSite(t, testArticles)
	cfg := config.DefaultConfig()
	cfg.Paths.Articles = articles
	cfg.Paths.PublicDir = public

	srv, cleanup, err := newServer(t.Context(), cfg, &envConfig{BuildToken: "tok"}, slog.New(slog.DiscardHandler), func() time.Time { return testNow })
	require.NoError(t, err)
	defer cleanup()

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.RouteHealth, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("posts need a database", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.RouteListPosts, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("build requires the token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, server.RouteBuild, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("build runs with the token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, server.RouteBuild, nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), `"total":2`), rec.Body.String())
	})
}

func TestNewServer_BadDatabaseURL(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	_, cleanup, err := newServer(t.Context(), cfg, &envConfig{DatabaseURL: "::not a dsn::"}, slog.New(slog.DiscardHandler), time.Now)
	defer cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
