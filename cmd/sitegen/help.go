package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Regenerate the blog (default)")
	fmt.Fprintln(w, "  serve      Run the publishing and build endpoints")
	fmt.Fprintln(w, "  doctor     Check configuration, inputs and services")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sitegen help <command>' for details on a specific command.")
}

func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -a, --articles <path>     Article collection (.json, .yaml)")
	fmt.Fprintln(w, "  -o, --public <dir>        Generated site directory")
	fmt.Fprintln(w, "      --base-url <url>      Absolute origin, e.g. https://example.com")
	fmt.Fprintln(w, "      --url-strategy <s>    Article URLs: path, query")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/ and js/ directory")
}

func printOutputFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
}

func printEnvironment(w io.Writer, vars ...string) {
	fmt.Fprintln(w, "Environment:")
	for _, v := range vars {
		fmt.Fprintf(w, "  %s\n", v)
	}
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite the blog index and all-articles page, write article pages,")
	fmt.Fprintln(w, "the post data script and the sitemap, then print a content report.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	printOutputFlags(w)
	fmt.Fprintln(w, "      --json                Print the build result as JSON")
	fmt.Fprintln(w)
	printEnvironment(w,
		"SITEGEN_CONFIG, SITEGEN_ARTICLES, SITEGEN_PUBLIC_DIR, SITEGEN_BASE_URL,",
		"SITEGEN_URL_STRATEGY, SITEGEN_ASSET_PATH, LOG_LEVEL",
		"Variables are also read from .env in the working directory.",
	)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the post, publish, list and build endpoints.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	printOutputFlags(w)
	fmt.Fprintln(w)
	printEnvironment(w,
		"DATABASE_URL           Postgres connection for the posts table",
		"SITEGEN_BUILD_TOKEN    Bearer token required by POST /api/build",
		"SITEGEN_ADDR, LOG_LEVEL and the build variables",
	)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a build can run and which endpoints are configured.")
	fmt.Fprintln(w, "Exits 1 when a build would fail.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "      --json                Print the diagnosis as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: sitegen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: sitegen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
