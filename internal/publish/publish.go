// Package publish commits rendered blog posts to a GitHub repository
// through the contents API.
package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// Sentinel errors for publishing.
var (
	ErrNotConfigured = errors.New("publisher is not configured")
	ErrMissingToken  = errors.New("github token is required")
	ErrUnauthorized  = errors.New("github rejected the token")
	ErrUpstream      = errors.New("github API error")
)

// DefaultAPIBaseURL is the public GitHub REST endpoint.
const DefaultAPIBaseURL = "https://api.github.com/"

const (
	acceptHeader = "application/vnd.github.v3+json"
	maxErrorBody = 64 << 10
)

// Config locates the target repository.
type Config struct {
	APIBaseURL string // Default DefaultAPIBaseURL
	Owner      string
	Repo       string
	Branch     string
	Dir        string // Directory inside the repository, e.g. "public/blog-posts"
}

// File is one document to commit.
type File struct {
	Slug    string
	Message string
	Content []byte
}

// Result describes the committed file.
type Result struct {
	Path    string // Repository path
	HTMLURL string // Browser URL on GitHub
}

// Publisher commits files with a caller-supplied token.
type Publisher struct {
	cfg     Config
	baseURL *url.URL
	client  *http.Client // Base transport; the token is layered on per call
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithHTTPClient sets the client the oauth2 transport wraps.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Publisher) {
		p.client = c
	}
}

// New creates a Publisher. Owner and Repo are required.
func New(cfg Config, opts ...Option) (*Publisher, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("%w: github owner and repo are required", ErrNotConfigured)
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: api base url: %v", ErrNotConfigured, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	p := &Publisher{cfg: cfg, baseURL: base, client: http.DefaultClient}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// FilePath is the repository path a slug is committed to.
func (p *Publisher) FilePath(slug string) string {
	return path.Join(p.cfg.Dir, slug+".html")
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
}

type putResponse struct {
	Content struct {
		HTMLURL string `json:"html_url"`
	} `json:"content"`
	Message string `json:"message"`
}

// Publish creates the file in one PUT request; there are no retries.
func (p *Publisher) Publish(ctx context.Context, token string, f File) (Result, error) {
	if token == "" {
		return Result{}, ErrMissingToken
	}
	filePath := p.FilePath(f.Slug)
	endpoint := p.baseURL.ResolveReference(&url.URL{
		Path: path.Join("repos", p.cfg.Owner, p.cfg.Repo, "contents", filePath),
	})

	body, err := json.Marshal(putRequest{
		Message: f.Message,
		Content: base64.StdEncoding.EncodeToString(f.Content),
		Branch:  p.cfg.Branch,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.authClient(ctx, token).Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return Result{}, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	// Failure bodies are often not JSON; fall back to the status line for those.
	var decoded putResponse
	decodeErr := json.Unmarshal(data, &decoded)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Result{}, fmt.Errorf("%w: %s", ErrUnauthorized, upstreamMessage(resp, decoded))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Result{}, fmt.Errorf("%w: %s", ErrUpstream, upstreamMessage(resp, decoded))
	case decodeErr != nil:
		return Result{}, fmt.Errorf("%w: decoding response: %v", ErrUpstream, decodeErr)
	}
	return Result{Path: filePath, HTMLURL: decoded.Content.HTMLURL}, nil
}

// authClient wraps the base client with a static bearer token.
func (p *Publisher) authClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func upstreamMessage(resp *http.Response, decoded putResponse) string {
	if decoded.Message != "" {
		return decoded.Message
	}
	return resp.Status
}
