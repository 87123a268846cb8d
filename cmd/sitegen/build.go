package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/invoicekit/sitegen"
	"github.com/invoicekit/sitegen/internal/config"
)

// runBuild regenerates the site once and prints a summary.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return flagError(err)
	}
	if len(positional) > 0 {
		return usageError("build takes no arguments, got %q", positional[0])
	}

	logger, err := newLogger(env.Stderr, &f.common)
	if err != nil {
		return err
	}
	cfg, _, err := resolveConfig(env, &f.common, &f.site)
	if err != nil {
		return withHint(err, nil)
	}

	builder, err := sitegen.NewBuilder(
		sitegen.WithConfig(cfg),
		sitegen.WithLogger(logger),
		sitegen.WithClock(env.Now),
	)
	if err != nil {
		return withHint(err, cfg)
	}

	res, err := builder.Build(ctx)
	if err != nil {
		return withHint(err, cfg)
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if !f.common.quiet {
		printBuildResult(env.Stdout, res, cfg)
	}
	return nil
}

// resolveConfig merges config file, environment and flags, in increasing
// priority. Without a config name the built-in defaults are used.
func resolveConfig(env *Environment, common *commonFlags, site *siteFlags) (*config.Config, *envConfig, error) {
	if err := loadDotEnv(env.DotEnv); err != nil {
		return nil, nil, err
	}
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeSiteFlags(site, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, envCfg, nil
}

func printBuildResult(w io.Writer, res *sitegen.BuildResult, cfg *config.Config) {
	for _, path := range res.Written {
		fmt.Fprintf(w, "wrote %s\n", path)
	}
	for _, page := range res.Skipped {
		fmt.Fprintf(w, "skipped %s: %s%s\n", page.Path, page.Reason, skipHint(page, cfg))
	}
	for _, line := range res.Report.Lines() {
		fmt.Fprintln(w, line)
	}
}
