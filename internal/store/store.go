// Package store persists submitted blog posts in the hosted PostgreSQL table.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors for post storage.
var (
	ErrNotConfigured = errors.New("database is not configured")
	ErrConnect       = errors.New("failed to connect to database")
	ErrInsert        = errors.New("failed to save blog post")
	ErrQuery         = errors.New("failed to fetch blog posts")
	ErrInvalidTable  = errors.New("invalid table name")
)

// StatusPublished marks posts visible to listing queries.
const StatusPublished = "published"

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Post is one row of the posts table.
type Post struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Slug            string    `json:"slug"`
	Category        string    `json:"category"`
	Author          string    `json:"author"`
	MetaDescription string    `json:"meta_description"`
	Keywords        []string  `json:"keywords"`
	Tags            []string  `json:"tags"`
	PublishedAt     time.Time `json:"published_at"`
	Status          string    `json:"status"`
	SEOScore        int       `json:"seo_score"`
	WordCount       int       `json:"word_count"`
	ReadingTime     int       `json:"reading_time"`
	KeywordDensity  float64   `json:"keyword_density"`
}

const postColumns = "id, title, content, slug, category, author, meta_description, keywords, tags, published_at, status, seo_score, word_count, reading_time, keyword_density"

// Store reads and writes posts.
type Store struct {
	db    DB
	table string // Sanitized identifier
}

// New creates a Store over db using table.
func New(db DB, table string) (*Store, error) {
	if db == nil {
		return nil, ErrNotConfigured
	}
	if table == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTable)
	}
	return &Store{db: db, table: pgx.Identifier{table}.Sanitize()}, nil
}

// Open connects a pool to dsn and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrNotConfigured
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return pool, nil
}

// Insert stores p and returns it with the generated id.
// A zero PublishedAt is set by the database.
func (s *Store) Insert(ctx context.Context, p Post) (Post, error) {
	if p.Status == "" {
		p.Status = StatusPublished
	}
	var publishedAt any
	if !p.PublishedAt.IsZero() {
		publishedAt = p.PublishedAt
	}

	query := `
		INSERT INTO ` + s.table + ` (title, content, slug, category, author, meta_description, keywords, tags, published_at, status, seo_score, word_count, reading_time, keyword_density)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()), $10, $11, $12, $13, $14)
		RETURNING id, published_at
	`
	err := s.db.QueryRow(ctx, query,
		p.Title, p.Content, p.Slug, p.Category, p.Author, p.MetaDescription,
		p.Keywords, p.Tags, publishedAt, p.Status,
		p.SEOScore, p.WordCount, p.ReadingTime, p.KeywordDensity,
	).Scan(&p.ID, &p.PublishedAt)
	if err != nil {
		return Post{}, fmt.Errorf("%w: %v", ErrInsert, err)
	}
	return p, nil
}

// ListPublished returns published posts, newest first.
func (s *Store) ListPublished(ctx context.Context) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM ` + s.table + ` WHERE status = $1 ORDER BY published_at DESC`

	rows, err := s.db.Query(ctx, query, StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.Slug, &p.Category, &p.Author,
			&p.MetaDescription, &p.Keywords, &p.Tags, &p.PublishedAt, &p.Status,
			&p.SEOScore, &p.WordCount, &p.ReadingTime, &p.KeywordDensity,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return posts, nil
}
