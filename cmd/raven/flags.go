package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by commands that read a project.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	json    bool
	noColor bool
}

// dirFlags overrides the directory names written by init and new.
type dirFlags struct {
	source       string
	dest         string
	syntaxes     string
	syntaxThemes string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common     commonFlags
	rebuildAll bool
	workers    int
	workersSet bool
}

// cleanFlags holds all flags for the clean command.
type cleanFlags struct {
	common commonFlags
}

// initFlags holds all flags for the init and new commands.
type initFlags struct {
	dirs     dirFlags
	scaffold string
	quiet    bool
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file, relative to the project directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every page")
	fs.BoolVar(&f.json, "json", false, "log as JSON lines")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// addDirFlags adds directory override flags to a FlagSet.
func addDirFlags(fs *flag.FlagSet, f *dirFlags) {
	fs.StringVar(&f.source, "source", "", "source directory name")
	fs.StringVar(&f.dest, "dest", "", "destination directory name")
	fs.StringVar(&f.syntaxes, "syntaxes", "", "syntax definitions directory name")
	fs.StringVar(&f.syntaxThemes, "syntax_themes", "", "custom syntax themes directory name")
}

func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", w, printBuildUsage)
	addCommonFlags(fs, &f.common)
	fs.BoolVarP(&f.rebuildAll, "rebuild_all", "a", false, "rebuild pages even when up to date")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent pages (0 = one per file)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.workersSet = fs.Changed("workers")
	return f, fs.Args(), nil
}

// parseCleanFlags parses clean command flags and returns positional args.
func parseCleanFlags(args []string, w io.Writer) (*cleanFlags, []string, error) {
	f := &cleanFlags{}
	fs := newFlagSet("clean", w, printCleanUsage)
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init or new flags and returns positional args.
// Only new accepts directory overrides.
func parseInitFlags(name string, args []string, w io.Writer) (*initFlags, []string, error) {
	f := &initFlags{}
	usage := printInitUsage
	if name == "new" {
		usage = printNewUsage
	}
	fs := newFlagSet(name, w, usage)
	if name == "new" {
		addDirFlags(fs, &f.dirs)
	}
	fs.StringVar(&f.scaffold, "scaffold", "", "directory with files overriding the default scaffold")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor flags and returns positional args.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)
	fs.StringVarP(&f.config, "config", "c", "", "config file, relative to the project directory")
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
