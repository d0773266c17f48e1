package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	nbsave "github.com/abalbekov/go-nbsave"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "nbsave %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	if !isExportCommand(cmd) {
		fmt.Fprintf(env.Stderr, "error: %v: %s\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
	mode := nbsave.Mode(cmd)

	flags, positional, err := parseExportFlags(mode, rest, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runExport(ctx, mode, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names a command rather than a file.
func isCommand(arg string) bool {
	switch arg {
	case "version", "help":
		return true
	}
	return isExportCommand(arg)
}

// isExportCommand reports whether arg names an export mode. Matching is
// case-sensitive so a file named "Evidence" is never taken for a command.
func isExportCommand(arg string) bool {
	return arg == nbsave.ModeEvidence.String() || arg == nbsave.ModeInstructions.String()
}
