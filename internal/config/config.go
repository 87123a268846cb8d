// Package config loads and validates the site configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/invoicekit/sitegen/internal/dateutil"
	"github.com/invoicekit/sitegen/internal/fileutil"
	"github.com/invoicekit/sitegen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength     = 100  // Site name, author, category
	MaxURLLength      = 2048 // Browser limit
	MaxPathLength     = 1024
	MaxLabelLength    = 100 // Nav and resource link titles
	MaxTagLength      = 50
	MaxMarkerLength   = 200 // Container opening tags
	MaxRelatedLimit   = 20
	MaxNavItems       = 20
	MaxResourceItems  = 20
	MaxDefaultTags    = 20
	MaxGitHubIDLength = 100 // Owner and repo names
)

// URL strategies.
const (
	StrategyPath  = "path"  // Static pages at /<articleDir>/<slug>.html
	StrategyQuery = "query" // Runtime rendering at <postPage>?slug=<slug>
)

// Config holds all configuration for a site build and the HTTP endpoints.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Paths   PathsConfig   `yaml:"paths"`
	Listing ListingConfig `yaml:"listing"`
	URLs    URLsConfig    `yaml:"urls"`
	Related RelatedConfig `yaml:"related"`
	Assets  AssetsConfig  `yaml:"assets"`
	Server  ServerConfig  `yaml:"server"`
	GitHub  GitHubConfig  `yaml:"github"`
	Store   StoreConfig   `yaml:"store"`
}

// SiteConfig holds values rendered into every page.
type SiteConfig struct {
	Name            string   `yaml:"name"`
	BaseURL         string   `yaml:"baseURL"` // Absolute origin, no trailing slash
	DefaultAuthor   string   `yaml:"defaultAuthor"`
	DefaultCategory string   `yaml:"defaultCategory"`
	DefaultTags     []string `yaml:"defaultTags"`
	DateFormat      string   `yaml:"dateFormat"` // User-friendly format or preset name
	OGImage         string   `yaml:"ogImage"`
	Stylesheet      string   `yaml:"stylesheet"`
	Nav             []Link   `yaml:"nav"`
	Resources       []Link   `yaml:"resources"`
}

// Link is a titled site-relative or absolute URL.
type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// PathsConfig locates the input file and the generated outputs.
// Output names are relative to PublicDir.
type PathsConfig struct {
	Articles   string `yaml:"articles"`
	PublicDir  string `yaml:"publicDir"`
	BlogIndex  string `yaml:"blogIndex"`
	Archive    string `yaml:"archive"`
	Sitemap    string `yaml:"sitemap"`
	PostData   string `yaml:"postData"`
	ArticleDir string `yaml:"articleDir"`
	PostPage   string `yaml:"postPage"`
}

// ListingConfig names the containers the listing renderer fills.
type ListingConfig struct {
	IndexContainer   string `yaml:"indexContainer"`
	ArchiveContainer string `yaml:"archiveContainer"`
	NoResultsMarker  string `yaml:"noResultsMarker"`
}

// URLsConfig selects how article URLs are formed.
type URLsConfig struct {
	Strategy string `yaml:"strategy"` // "path" or "query"
}

// RelatedConfig controls related-article selection.
type RelatedConfig struct {
	Limit int `yaml:"limit"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ServerConfig configures `sitegen serve`. The build token comes from the environment.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GitHubConfig locates the repository the publish endpoint commits to.
type GitHubConfig struct {
	Owner      string `yaml:"owner"`
	Repo       string `yaml:"repo"`
	Branch     string `yaml:"branch"`
	Dir        string `yaml:"dir"`
	APIBaseURL string `yaml:"apiBaseURL"`
}

// StoreConfig names the hosted posts table.
type StoreConfig struct {
	Table string `yaml:"table"`
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"site.name", c.Site.Name, MaxNameLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"site.defaultAuthor", c.Site.DefaultAuthor, MaxNameLength},
		{"site.defaultCategory", c.Site.DefaultCategory, MaxNameLength},
		{"site.ogImage", c.Site.OGImage, MaxURLLength},
		{"site.stylesheet", c.Site.Stylesheet, MaxURLLength},
		{"paths.articles", c.Paths.Articles, MaxPathLength},
		{"paths.publicDir", c.Paths.PublicDir, MaxPathLength},
		{"listing.indexContainer", c.Listing.IndexContainer, MaxMarkerLength},
		{"listing.archiveContainer", c.Listing.ArchiveContainer, MaxMarkerLength},
		{"listing.noResultsMarker", c.Listing.NoResultsMarker, MaxMarkerLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"github.owner", c.GitHub.Owner, MaxGitHubIDLength},
		{"github.repo", c.GitHub.Repo, MaxGitHubIDLength},
		{"github.dir", c.GitHub.Dir, MaxPathLength},
		{"github.apiBaseURL", c.GitHub.APIBaseURL, MaxURLLength},
	}
	for _, chk := range checks {
		if err := validateFieldLength(chk.field, chk.value, chk.max); err != nil {
			return err
		}
	}

	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}

	switch c.URLs.Strategy {
	case StrategyPath, StrategyQuery:
	default:
		return fmt.Errorf("%w: urls.strategy %q (must be %s or %s)", ErrInvalidField, c.URLs.Strategy, StrategyPath, StrategyQuery)
	}

	if c.Related.Limit < 0 || c.Related.Limit > MaxRelatedLimit {
		return fmt.Errorf("%w: related.limit must be between 0 and %d, got %d", ErrInvalidField, MaxRelatedLimit, c.Related.Limit)
	}

	if c.Listing.IndexContainer == "" || c.Listing.ArchiveContainer == "" {
		return fmt.Errorf("%w: listing containers are required", ErrInvalidField)
	}

	if c.GitHub.APIBaseURL != "" {
		if _, err := url.Parse(c.GitHub.APIBaseURL); err != nil || !fileutil.IsURL(c.GitHub.APIBaseURL) {
			return fmt.Errorf("%w: github.apiBaseURL %q is not an http(s) URL", ErrInvalidField, c.GitHub.APIBaseURL)
		}
	}
	return nil
}

func (c *Config) validateSite() error {
	if c.Site.Name == "" {
		return fmt.Errorf("%w: site.name is required", ErrInvalidField)
	}
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || !fileutil.IsURL(c.Site.BaseURL) || u.Host == "" {
		return fmt.Errorf("%w: site.baseURL %q must be an absolute http(s) URL", ErrInvalidField, c.Site.BaseURL)
	}
	if strings.HasSuffix(c.Site.BaseURL, "/") {
		return fmt.Errorf("%w: site.baseURL %q must not end with /", ErrInvalidField, c.Site.BaseURL)
	}
	if _, err := dateutil.ParseDateFormat(c.Site.DateFormat); err != nil {
		return fmt.Errorf("site.dateFormat: %w", err)
	}

	if len(c.Site.DefaultTags) > MaxDefaultTags {
		return fmt.Errorf("%w: site.defaultTags has %d entries (max %d)", ErrInvalidField, len(c.Site.DefaultTags), MaxDefaultTags)
	}
	for i, tag := range c.Site.DefaultTags {
		if err := validateFieldLength(fmt.Sprintf("site.defaultTags[%d]", i), tag, MaxTagLength); err != nil {
			return err
		}
	}

	if err := validateLinks("site.nav", c.Site.Nav, MaxNavItems); err != nil {
		return err
	}
	return validateLinks("site.resources", c.Site.Resources, MaxResourceItems)
}

func (c *Config) validatePaths() error {
	if c.Paths.Articles == "" {
		return fmt.Errorf("%w: paths.articles is required", ErrInvalidField)
	}
	if c.Paths.PublicDir == "" {
		return fmt.Errorf("%w: paths.publicDir is required", ErrInvalidField)
	}

	// Output names are joined under PublicDir and must stay inside it.
	outputs := []struct {
		field string
		value string
	}{
		{"paths.blogIndex", c.Paths.BlogIndex},
		{"paths.archive", c.Paths.Archive},
		{"paths.sitemap", c.Paths.Sitemap},
		{"paths.postData", c.Paths.PostData},
		{"paths.articleDir", c.Paths.ArticleDir},
		{"paths.postPage", c.Paths.PostPage},
	}
	for _, o := range outputs {
		if err := validateFieldLength(o.field, o.value, MaxPathLength); err != nil {
			return err
		}
		if o.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidField, o.field)
		}
		if filepath.IsAbs(o.value) || strings.Contains(o.value, "..") || strings.HasPrefix(o.value, "/") {
			return fmt.Errorf("%w: %s %q must be relative to paths.publicDir", ErrInvalidField, o.field, o.value)
		}
	}
	return nil
}

func validateLinks(field string, links []Link, maxItems int) error {
	if len(links) > maxItems {
		return fmt.Errorf("%w: %s has %d entries (max %d)", ErrInvalidField, field, len(links), maxItems)
	}
	for i, link := range links {
		if err := validateFieldLength(fmt.Sprintf("%s[%d].title", field, i), link.Title, MaxLabelLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("%s[%d].url", field, i), link.URL, MaxURLLength); err != nil {
			return err
		}
		if link.Title == "" || link.URL == "" {
			return fmt.Errorf("%w: %s[%d] needs both title and url", ErrInvalidField, field, i)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration of the Free Online Invoice site.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:            "Free Online Invoice",
			BaseURL:         "https://www.freeonlineinvoice.org",
			DefaultAuthor:   "FreeOnlineInvoice.org",
			DefaultCategory: "business",
			DefaultTags:     []string{"invoice", "business"},
			DateFormat:      dateutil.DefaultDisplayFormat,
			OGImage:         "/images/og-image.jpg",
			Stylesheet:      "/styles.min.css",
			Nav: []Link{
				{Title: "Invoice Generator", URL: "/index.html"},
				{Title: "Blog & Help", URL: "/blog.html"},
				{Title: "All Articles", URL: "/articles.html"},
				{Title: "How to Use Guide", URL: "/how-to-use-invoice-generator.html"},
			},
			Resources: []Link{
				{Title: "Explore Invoice Templates", URL: "/invoice-templates.html"},
				{Title: "How to Use Guide", URL: "/how-to-use-invoice-generator.html"},
				{Title: "Saving & Printing Invoices", URL: "/saving-and-printing-invoices.html"},
			},
		},
		Paths: PathsConfig{
			Articles:   "articles/articles.json",
			PublicDir:  "public",
			BlogIndex:  "blog.html",
			Archive:    "articles.html",
			Sitemap:    "sitemap.xml",
			PostData:   "post-data.js",
			ArticleDir: "blog",
			PostPage:   "post.html",
		},
		Listing: ListingConfig{
			IndexContainer:   `<div class="articles-grid">`,
			ArchiveContainer: `<div id="articles-container" class="articles-grid">`,
			NoResultsMarker:  `<div id="no-results"`,
		},
		URLs:    URLsConfig{Strategy: StrategyPath},
		Related: RelatedConfig{Limit: 3},
		Server:  ServerConfig{Addr: ":8080"},
		GitHub: GitHubConfig{
			Branch:     "main",
			Dir:        "public/blog-posts",
			APIBaseURL: "https://api.github.com/",
		},
		Store: StoreConfig{Table: "blog_posts"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/sitegen/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "sitegen", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
