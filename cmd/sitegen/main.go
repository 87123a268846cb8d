package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
// With no command, or when the first argument is a flag, it builds.
func runMain(ctx context.Context, args []string, env *Environment) int {
	cmd := "build"
	if len(args) > 0 && isCommand(args[0]) {
		cmd, args = args[0], args[1:]
	} else if len(args) > 0 && !isFlag(args[0]) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, args, env)
	case "serve":
		err = runServe(ctx, args, env)
	case "doctor":
		err = runDoctor(args, env)
	case "version":
		fmt.Fprintf(env.Stdout, "sitegen %s\n", Version)
	case "help":
		runHelp(args, env)
	}
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// isCommand reports whether s names a subcommand. Case sensitive.
func isCommand(s string) bool {
	switch s {
	case "build", "serve", "doctor", "version", "help":
		return true
	}
	return false
}

func isFlag(s string) bool {
	return len(s) > 1 && s[0] == '-'
}
