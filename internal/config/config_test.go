package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Site.BaseURL != "https://www.freeonlineinvoice.org" {
		t.Errorf("Site.BaseURL = %q", cfg.Site.BaseURL)
	}
	if cfg.URLs.Strategy != StrategyPath {
		t.Errorf("URLs.Strategy = %q, want %q", cfg.URLs.Strategy, StrategyPath)
	}
	if cfg.Related.Limit != 3 {
		t.Errorf("Related.Limit = %d, want 3", cfg.Related.Limit)
	}
	if len(cfg.Site.Resources) != 3 {
		t.Errorf("len(Site.Resources) = %d, want 3", len(cfg.Site.Resources))
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("validateFieldLength() error = %v, want ErrFieldTooLong", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "query strategy is valid",
			mutate: func(c *Config) { c.URLs.Strategy = StrategyQuery },
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.URLs.Strategy = "hash" },
			wantErr: ErrInvalidField,
			wantMsg: "urls.strategy",
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.Site.BaseURL = "www.example.com" },
			wantErr: ErrInvalidField,
			wantMsg: "site.baseURL",
		},
		{
			name:    "base URL with trailing slash",
			mutate:  func(c *Config) { c.Site.BaseURL = "https://example.com/" },
			wantErr: ErrInvalidField,
			wantMsg: "must not end with /",
		},
		{
			name:    "negative related limit",
			mutate:  func(c *Config) { c.Related.Limit = -1 },
			wantErr: ErrInvalidField,
			wantMsg: "related.limit",
		},
		{
			name:    "related limit too large",
			mutate:  func(c *Config) { c.Related.Limit = MaxRelatedLimit + 1 },
			wantErr: ErrInvalidField,
		},
		{
			name:    "empty date format",
			mutate:  func(c *Config) { c.Site.DateFormat = "" },
			wantMsg: "site.dateFormat",
		},
		{
			name:    "output escaping public dir",
			mutate:  func(c *Config) { c.Paths.Sitemap = "../sitemap.xml" },
			wantErr: ErrInvalidField,
			wantMsg: "paths.sitemap",
		},
		{
			name:    "absolute output path",
			mutate:  func(c *Config) { c.Paths.ArticleDir = "/var/www/blog" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "missing articles path",
			mutate:  func(c *Config) { c.Paths.Articles = "" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "resource without url",
			mutate:  func(c *Config) { c.Site.Resources = []Link{{Title: "Templates"}} },
			wantErr: ErrInvalidField,
			wantMsg: "site.resources[0]",
		},
		{
			name:    "site name too long",
			mutate:  func(c *Config) { c.Site.Name = strings.Repeat("x", MaxNameLength+1) },
			wantErr: ErrFieldTooLong,
			wantMsg: "site.name",
		},
		{
			name:    "missing container",
			mutate:  func(c *Config) { c.Listing.ArchiveContainer = "" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "github api url not http",
			mutate:  func(c *Config) { c.GitHub.APIBaseURL = "ftp://github.example" },
			wantErr: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil && tt.wantMsg == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
site:
  name: Invoice Tips
  baseURL: https://tips.example.com
urls:
  strategy: query
related:
  limit: 4
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Name != "Invoice Tips" {
			t.Errorf("Site.Name = %q, want %q", cfg.Site.Name, "Invoice Tips")
		}
		if cfg.URLs.Strategy != StrategyQuery {
			t.Errorf("URLs.Strategy = %q, want %q", cfg.URLs.Strategy, StrategyQuery)
		}
		if cfg.Related.Limit != 4 {
			t.Errorf("Related.Limit = %d, want 4", cfg.Related.Limit)
		}
		if cfg.Paths.PublicDir != "public" {
			t.Errorf("Paths.PublicDir = %q, want default %q", cfg.Paths.PublicDir, "public")
		}
		if cfg.Site.DefaultCategory != "business" {
			t.Errorf("Site.DefaultCategory = %q, want default", cfg.Site.DefaultCategory)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "site:\n  colour: red\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "urls:\n  strategy: hash\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidField) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidField", err)
		}
	})
}

func TestResolveConfigPath_NotFound(t *testing.T) {
	t.Parallel()

	_, err := resolveConfigPath("sitegen-config-that-does-not-exist-xyz")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("resolveConfigPath() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "sitegen-config-that-does-not-exist-xyz.yaml") {
		t.Errorf("error %q should list tried paths", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
