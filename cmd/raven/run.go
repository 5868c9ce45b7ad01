package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// errUsage marks invalid command-line arguments.
var errUsage = errors.New("usage")

// runMain dispatches to the command named in args[1] and returns the
// process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "build":
		err = runBuildCmd(ctx, rest, env)
	case "clean":
		err = runCleanCmd(rest, env)
	case "init":
		err = runInitCmd(rest, env)
	case "new":
		err = runNewCmd(rest, env)
	case "doctor":
		err = runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "raven %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "raven: %v\n", withHint(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// projectDir returns the directory named by the single optional
// positional argument, defaulting to the working directory.
func projectDir(cmd string, positional []string) (string, error) {
	switch len(positional) {
	case 0:
		return ".", nil
	case 1:
		return positional[0], nil
	default:
		return "", fmt.Errorf("%w: %s takes at most one directory, got %d", errUsage, cmd, len(positional))
	}
}
