package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/config"
	"github.com/invoicekit/sitegen/internal/hints"
	"github.com/invoicekit/sitegen/internal/pipeline"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Site     siteInfo    `json:"site"`
	Services serviceInfo `json:"services"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// siteInfo holds build input and output checks.
type siteInfo struct {
	Articles       int    `json:"articles"`
	ArticlesPath   string `json:"articles_path"`
	PublicDir      string `json:"public_dir"`
	OutputWritable bool   `json:"output_writable"`
	IndexReady     bool   `json:"index_ready"`
	ArchiveReady   bool   `json:"archive_ready"`
	Strategy       string `json:"url_strategy"`
}

// serviceInfo reports which HTTP endpoints have a backing service.
type serviceInfo struct {
	Database   bool `json:"database"`
	GitHub     bool `json:"github"`
	BuildToken bool `json:"build_token"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// runDoctor checks that a build and the endpoints can run, and reports
// what would fail. Warnings keep exit code 0; errors exit 1.
func runDoctor(args []string, env *Environment) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var common commonFlags
	var site siteFlags
	var jsonOutput bool
	addCommonFlags(fs, &common, logFormatText)
	addSiteFlags(fs, &site)
	fs.BoolVar(&jsonOutput, "json", false, "print the diagnosis as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	cfg, envCfg, err := resolveConfig(env, &common, &site)
	if err != nil {
		return withHint(err, nil)
	}

	result := diagnose(cfg, envCfg)
	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return errDoctorFailed
	}
	return nil
}

var errDoctorFailed = errors.New("doctor found errors")

// diagnose performs all checks against a resolved configuration.
func diagnose(cfg *config.Config, envCfg *envConfig) *doctorResult {
	r := &doctorResult{
		Site: siteInfo{
			ArticlesPath: cfg.Paths.Articles,
			PublicDir:    cfg.Paths.PublicDir,
			Strategy:     cfg.URLs.Strategy,
		},
		Env: envInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Container: hints.IsInContainer(),
			CI:        os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "",
		},
	}

	checkArticles(r, cfg)
	checkOutput(r, cfg)
	r.Site.IndexReady = checkListing(r, cfg, cfg.Paths.BlogIndex, cfg.Listing.IndexContainer)
	r.Site.ArchiveReady = checkListing(r, cfg, cfg.Paths.Archive, cfg.Listing.ArchiveContainer)
	checkServices(r, cfg, envCfg)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

func checkArticles(r *doctorResult, cfg *config.Config) {
	loader := article.NewLoader()
	articles, err := loader.LoadFile(cfg.Paths.Articles)
	if err != nil {
		r.Errors = append(r.Errors, withHint(err, cfg).Error())
		return
	}
	r.Site.Articles = len(articles)
}

func checkOutput(r *doctorResult, cfg *config.Config) {
	probe := filepath.Join(cfg.Paths.PublicDir, ".sitegen-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		r.Errors = append(r.Errors,
			fmt.Sprintf("public directory not writable: %s%s", cfg.Paths.PublicDir, hints.ForOutputDirectory()))
		return
	}
	_ = os.Remove(probe)
	r.Site.OutputWritable = true
}

// checkListing reports whether a listing page exists and still carries its
// container. Either problem only skips the page, so it is a warning.
func checkListing(r *doctorResult, cfg *config.Config, name, openTag string) bool {
	path := filepath.Join(cfg.Paths.PublicDir, filepath.FromSlash(name))
	page, err := os.ReadFile(path) // #nosec G304 -- path is built from validated configuration
	if err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s cannot be read; it will be skipped", path))
		return false
	}
	if _, err := pipeline.FindContainer(string(page), openTag); err != nil {
		configKey := "listing.indexContainer"
		if name == cfg.Paths.Archive {
			configKey = "listing.archiveContainer"
		}
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("%s: %v%s", path, err, hints.ForContainerNotFound(path, openTag, configKey)))
		return false
	}
	return true
}

func checkServices(r *doctorResult, cfg *config.Config, envCfg *envConfig) {
	r.Services.Database = envCfg.DatabaseURL != ""
	r.Services.GitHub = cfg.GitHub.Owner != "" && cfg.GitHub.Repo != ""
	r.Services.BuildToken = envCfg.BuildToken != ""

	if !r.Services.Database {
		r.Warnings = append(r.Warnings, "post endpoints disabled"+hints.ForDatabaseURL())
	}
	if !r.Services.GitHub {
		r.Warnings = append(r.Warnings, "publish endpoint disabled; set github.owner and github.repo")
	}
	if !r.Services.BuildToken {
		r.Warnings = append(r.Warnings, "build endpoint is unauthenticated; set SITEGEN_BUILD_TOKEN")
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "sitegen doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	if r.Site.Articles > 0 {
		fmt.Fprintf(w, "  [OK] Articles: %d in %s\n", r.Site.Articles, r.Site.ArticlesPath)
	} else {
		fmt.Fprintf(w, "  [ERROR] Articles: %s not loadable\n", r.Site.ArticlesPath)
	}
	printCheck(w, r.Site.OutputWritable, "Output: "+r.Site.PublicDir+" writable", "ERROR")
	printCheck(w, r.Site.IndexReady, "Blog index container", "WARN")
	printCheck(w, r.Site.ArchiveReady, "All-articles container", "WARN")
	fmt.Fprintf(w, "  [OK] URL strategy: %s\n", r.Site.Strategy)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Services")
	printCheck(w, r.Services.Database, "Database", "WARN")
	printCheck(w, r.Services.GitHub, "GitHub publishing", "WARN")
	printCheck(w, r.Services.BuildToken, "Build token", "WARN")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printCheck(w io.Writer, ok bool, label, failLevel string) {
	if ok {
		fmt.Fprintf(w, "  [OK] %s\n", label)
		return
	}
	fmt.Fprintf(w, "  [%s] %s\n", failLevel, label)
}
