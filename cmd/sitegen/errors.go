package main

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/invoicekit/sitegen"
	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/config"
	"github.com/invoicekit/sitegen/internal/hints"
)

// ErrUsage marks invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// flagError wraps a pflag parse failure. Help requests pass through unchanged.
func flagError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// withHint appends an actionable hint to well-known failures.
func withHint(err error, cfg *config.Config) error {
	if err == nil {
		return nil
	}
	var hint string
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, article.ErrReadArticles) && cfg != nil:
		hint = hints.ForArticlesNotFound(cfg.Paths.Articles)
	case errors.Is(err, article.ErrDuplicateSlug):
		hint = hints.ForDuplicateSlug()
	case errors.Is(err, sitegen.ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// triedPaths recovers the searched locations from a config lookup error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}

// skipHint explains how to bring a skipped listing page back.
func skipHint(page sitegen.SkippedPage, cfg *config.Config) string {
	if !strings.Contains(page.Reason, "container") {
		return ""
	}
	if strings.HasSuffix(page.Path, cfg.Paths.Archive) {
		return hints.ForContainerNotFound(page.Path, cfg.Listing.ArchiveContainer, "listing.archiveContainer")
	}
	return hints.ForContainerNotFound(page.Path, cfg.Listing.IndexContainer, "listing.indexContainer")
}
