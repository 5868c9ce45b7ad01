package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: raven <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  new        Create a project in a new directory")
	fmt.Fprintln(w, "  init       Initialize a project in a directory")
	fmt.Fprintln(w, "  build      Build the site")
	fmt.Fprintln(w, "  clean      Remove the destination directory")
	fmt.Fprintln(w, "  doctor     Check a project for problems")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'raven help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: raven build [directory] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every markdown page under the source directory into the")
	fmt.Fprintln(w, "destination directory. Pages whose output is newer than the source")
	fmt.Fprintln(w, "are skipped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  directory    Project directory (default: current directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>   Config file (default: raven.yaml)")
	fmt.Fprintln(w, "  -a, --rebuild_all     Rebuild pages even when up to date")
	fmt.Fprintln(w, "  -w, --workers <n>     Concurrent pages (0 = one per file)")
	fmt.Fprintln(w)
	printOutputFlags(w)
}

// printCleanUsage prints usage for the clean command.
func printCleanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: raven clean [directory] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove the destination directory of a project.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>   Config file (default: raven.yaml)")
	fmt.Fprintln(w)
	printOutputFlags(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: raven init [directory] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write raven.yaml, the project directories, a template, a stylesheet,")
	fmt.Fprintln(w, "a favicon and a starter page. Does nothing if raven.yaml exists.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --scaffold <dir>  Files overriding the default scaffold")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
}

// printNewUsage prints usage for the new command.
func printNewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: raven new <name> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create directory <name> and initialize a project in it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --source <dir>        Source directory name (default: src)")
	fmt.Fprintln(w, "      --dest <dir>          Destination directory name (default: dest)")
	fmt.Fprintln(w, "      --syntaxes <dir>      Syntax definitions directory (default: syntaxes)")
	fmt.Fprintln(w, "      --syntax_themes <dir> Custom themes directory (default: syntax-themes)")
	fmt.Fprintln(w, "      --scaffold <dir>      Files overriding the default scaffold")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: raven doctor [directory] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check configuration, themes, syntaxes, default assets and sources.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>   Config file (default: raven.yaml)")
	fmt.Fprintln(w, "      --json            Print the report as JSON")
}

func printOutputFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show every page")
	fmt.Fprintln(w, "      --json            Log as JSON lines")
	fmt.Fprintln(w, "      --no-color        Disable colored output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RAVEN_CONFIG, RAVEN_WORKERS, RAVEN_LOG_FORMAT=json, RAVEN_NO_COLOR")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "clean":
		printCleanUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "new":
		printNewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: raven version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: raven help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
