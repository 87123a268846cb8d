package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/invoicekit/sitegen/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// siteFlags override the configured input, output and URLs.
type siteFlags struct {
	articles  string
	publicDir string
	baseURL   string
	strategy  string
	assetPath string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	site   siteFlags
	json   bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	site   siteFlags
	addr   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags, defaultFormat string) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.StringVar(&f.logFormat, "log-format", defaultFormat, "log format: text, json")
}

// addSiteFlags adds site override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.articles, "articles", "a", "", "article collection file (.json, .yaml)")
	fs.StringVarP(&f.publicDir, "public", "o", "", "generated site directory")
	fs.StringVar(&f.baseURL, "base-url", "", "absolute site origin, e.g. https://example.com")
	fs.StringVar(&f.strategy, "url-strategy", "", "article URLs: path, query")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template and script directory")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	addCommonFlags(fs, &f.common, logFormatText)
	addSiteFlags(fs, &f.site)
	fs.BoolVar(&f.json, "json", false, "print the build result as JSON")

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &serveFlags{}

	addCommonFlags(fs, &f.common, logFormatJSON)
	addSiteFlags(fs, &f.site)
	fs.StringVar(&f.addr, "addr", "", "listen address (default from config, :8080)")

	fs.Usage = func() { printServeUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// mergeSiteFlags applies set flags to config (CLI wins).
func mergeSiteFlags(f *siteFlags, cfg *config.Config) {
	if f.articles != "" {
		cfg.Paths.Articles = f.articles
	}
	if f.publicDir != "" {
		cfg.Paths.PublicDir = f.publicDir
	}
	if f.baseURL != "" {
		cfg.Site.BaseURL = f.baseURL
	}
	if f.strategy != "" {
		cfg.URLs.Strategy = f.strategy
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}
