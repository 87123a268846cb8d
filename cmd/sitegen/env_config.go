package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/invoicekit/sitegen/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Build
	ConfigPath string // SITEGEN_CONFIG: config file name or path
	Articles   string // SITEGEN_ARTICLES: article collection file
	PublicDir  string // SITEGEN_PUBLIC_DIR: generated site root
	BaseURL    string // SITEGEN_BASE_URL: absolute site origin
	Strategy   string // SITEGEN_URL_STRATEGY: path or query
	AssetPath  string // SITEGEN_ASSET_PATH: template and script overrides

	// Serve
	Addr       string // SITEGEN_ADDR: listen address
	BuildToken string // SITEGEN_BUILD_TOKEN: bearer token for POST /api/build

	// Secrets, unprefixed for compatibility with hosting providers
	DatabaseURL string // DATABASE_URL: posts table connection string
}

// knownEnvVars lists valid SITEGEN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SITEGEN_CONFIG":       true,
	"SITEGEN_ARTICLES":     true,
	"SITEGEN_PUBLIC_DIR":   true,
	"SITEGEN_BASE_URL":     true,
	"SITEGEN_URL_STRATEGY": true,
	"SITEGEN_ASSET_PATH":   true,
	"SITEGEN_ADDR":         true,
	"SITEGEN_BUILD_TOKEN":  true,
}

// loadDotEnv loads each existing file into the process environment.
// Variables already set are not overridden. Missing files are ignored.
func loadDotEnv(paths []string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:  os.Getenv("SITEGEN_CONFIG"),
		Articles:    os.Getenv("SITEGEN_ARTICLES"),
		PublicDir:   os.Getenv("SITEGEN_PUBLIC_DIR"),
		BaseURL:     os.Getenv("SITEGEN_BASE_URL"),
		Strategy:    os.Getenv("SITEGEN_URL_STRATEGY"),
		AssetPath:   os.Getenv("SITEGEN_ASSET_PATH"),
		Addr:        os.Getenv("SITEGEN_ADDR"),
		BuildToken:  os.Getenv("SITEGEN_BUILD_TOKEN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized SITEGEN_* variables.
// Helps catch typos like SITEGEN_ARTICLE instead of SITEGEN_ARTICLES.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SITEGEN_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied afterwards
// so the order is: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Articles != "" {
		cfg.Paths.Articles = env.Articles
	}
	if env.PublicDir != "" {
		cfg.Paths.PublicDir = env.PublicDir
	}
	if env.BaseURL != "" {
		cfg.Site.BaseURL = env.BaseURL
	}
	if env.Strategy != "" {
		cfg.URLs.Strategy = env.Strategy
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}
