package main

import (
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/invoicekit/sitegen"
	"github.com/invoicekit/sitegen/internal/config"
)

// Exit codes for the sitegen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Build completed
	ExitGeneral = 1 // Any failed build step, including loading the articles
	ExitUsage   = 2 // Invalid flags or configuration, rejected before the build
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, sitegen.ErrInvalidStrategy) ||
		errors.Is(err, sitegen.ErrInvalidSite) ||
		errors.Is(err, sitegen.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
