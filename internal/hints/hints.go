// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/invoicekit/sitegen/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a known CI provider is running the build.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("NETLIFY") != ""
}

// ForArticlesNotFound returns hints for a missing article collection file.
// In CI or containers the working directory is the usual culprit.
func ForArticlesNotFound(path string) string {
	var hints []string
	if inCI() || IsInContainer() {
		hints = append(hints, "paths are relative to the working directory; run from the site root")
	}
	if os.Getenv("SITEGEN_ARTICLES") == "" {
		hints = append(hints, "use --articles or set SITEGEN_ARTICLES (looked for "+path+")")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/sitegen/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/sitegen") || strings.Contains(p, `sitegen\`) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContainerNotFound returns a hint for a page whose listing container is
// missing. The page is skipped until the markup or the config agrees again.
func ForContainerNotFound(page, openTag, configKey string) string {
	return format("restore " + openTag + " in " + page + " or update " + configKey)
}

// ForDuplicateSlug returns a hint for colliding article slugs.
func ForDuplicateSlug() string {
	return format("give one of the records an explicit unique \"slug\" field")
}

// ForDatabaseURL returns a hint for endpoints that need the article table.
func ForDatabaseURL() string {
	return format("set DATABASE_URL to a Postgres connection string")
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the public directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
