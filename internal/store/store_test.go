package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s, err := New(mock, "blog_posts")
	require.NoError(t, err)
	return s, mock
}

func TestNew(t *testing.T) {
	_, err := New(nil, "blog_posts")
	assert.ErrorIs(t, err, ErrNotConfigured)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = New(mock, "")
	assert.ErrorIs(t, err, ErrInvalidTable)

	s, err := New(mock, `posts"; DROP TABLE x; --`)
	require.NoError(t, err)
	assert.Equal(t, `"posts""; DROP TABLE x; --"`, s.table)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStore_Insert(t *testing.T) {
	s, mock := newMockStore(t)
	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO "blog_posts"`).
		WithArgs("Title", "Body", "title", "business", "Admin", "Body...",
			[]string{"body"}, []string{"invoice"}, nil, StatusPublished,
			25, 1, 1, 50.0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "published_at"}).AddRow(int64(42), published))

	got, err := s.Insert(context.Background(), Post{
		Title: "Title", Content: "Body", Slug: "title", Category: "business", Author: "Admin",
		MetaDescription: "Body...", Keywords: []string{"body"}, Tags: []string{"invoice"},
		SEOScore: 25, WordCount: 1, ReadingTime: 1, KeywordDensity: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, published, got.PublishedAt)
	assert.Equal(t, StatusPublished, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Insert_Error(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO "blog_posts"`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("permission denied for table blog_posts"))

	_, err := s.Insert(context.Background(), Post{Title: "T", Content: "C"})
	require.ErrorIs(t, err, ErrInsert)
	assert.Contains(t, err.Error(), "permission denied for table blog_posts")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListPublished(t *testing.T) {
	s, mock := newMockStore(t)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	columns := []string{"id", "title", "content", "slug", "category", "author", "meta_description", "keywords", "tags", "published_at", "status", "seo_score", "word_count", "reading_time", "keyword_density"}
	rows := pgxmock.NewRows(columns).
		AddRow(int64(2), "Newer", "b", "newer", "tax", "Ann", "d", []string{"k"}, []string{"t"}, newer, StatusPublished, 80, 900, 5, 1.5).
		AddRow(int64(1), "Older", "a", "older", "business", "Bob", "d", []string{}, []string{}, older, StatusPublished, 40, 100, 1, 0.0)

	mock.ExpectQuery(`SELECT id, title, .* FROM "blog_posts" WHERE status = \$1 ORDER BY published_at DESC`).
		WithArgs(StatusPublished).
		WillReturnRows(rows)

	posts, err := s.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)
	assert.Equal(t, []string{"k"}, posts[0].Keywords)
	assert.Equal(t, 80, posts[0].SEOScore)
	assert.Equal(t, "older", posts[1].Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListPublished_Empty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs(StatusPublished).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	posts, err := s.ListPublished(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestStore_ListPublished_QueryError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("relation does not exist"))

	_, err := s.ListPublished(context.Background())
	assert.ErrorIs(t, err, ErrQuery)
}
