package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	raven "github.com/alnah/go-raven"
	"github.com/alnah/go-raven/internal/fileutil"
	"github.com/alnah/go-raven/internal/pipeline"
)

// errDoctorFailed reports that at least one check failed.
var errDoctorFailed = errors.New("project has problems")

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Project  projectInfo `json:"project"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// projectInfo holds project check results.
type projectInfo struct {
	Dir        string `json:"dir"`
	Config     string `json:"config"`
	ConfigOK   bool   `json:"config_ok"`
	Theme      string `json:"theme,omitempty"`
	ThemeFound bool   `json:"theme_found"`
	Syntaxes   int    `json:"custom_syntaxes"`
	Pages      int    `json:"pages"`
	Files      int    `json:"files"`
}

// systemInfo holds runtime details relevant to build concurrency.
type systemInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoVersion  string `json:"go_version"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}

// runDoctorCmd checks a project and prints the findings. Warnings alone
// succeed; any error makes the command fail.
func runDoctorCmd(args []string, env *Environment) error {
	flags, positional, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	dir, err := projectDir("doctor", positional)
	if err != nil {
		return err
	}

	result := runDoctor(dir, configPath(dir, flags.config, loadEnvConfig(env.Getenv)))

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return errDoctorFailed
	}
	return nil
}

// runDoctor performs all diagnostic checks.
func runDoctor(dir, cfgPath string) *doctorResult {
	result := &doctorResult{
		Status:  "ready",
		Project: projectInfo{Dir: dir, Config: cfgPath},
		System: systemInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GoVersion:  runtime.Version(),
			GOMAXPROCS: runtime.GOMAXPROCS(0),
		},
	}

	if cfg := checkConfig(result, cfgPath); cfg != nil {
		checkHighlighting(result, dir, cfg)
		checkAssets(result, dir, cfg)
		checkSources(result, dir, cfg)
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkConfig loads the configuration. Nil means the remaining checks
// cannot run.
func checkConfig(result *doctorResult, cfgPath string) *raven.Config {
	cfg, err := raven.LoadConfig(cfgPath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return nil
	}
	result.Project.ConfigOK = true
	return cfg
}

// checkHighlighting loads custom syntaxes and looks up the theme.
func checkHighlighting(result *doctorResult, dir string, cfg *raven.Config) {
	if cfg.Syntaxes != "" {
		reg, err := pipeline.LoadSyntaxes(inProject(dir, cfg.Syntaxes))
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Project.Syntaxes = len(reg.Lexers)
		}
	}

	result.Project.Theme = cfg.SyntaxTheme
	themesDir := ""
	if cfg.CustomSyntaxThemes != "" {
		themesDir = inProject(dir, cfg.CustomSyntaxThemes)
	}
	themes, err := pipeline.LoadThemes(themesDir)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	if _, err := pipeline.SelectTheme(themes, cfg.SyntaxTheme); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Project.ThemeFound = true
}

// checkAssets looks for the default template, stylesheet and favicon.
// Pages may override each of them, so a missing one is only a warning.
func checkAssets(result *doctorResult, dir string, cfg *raven.Config) {
	for _, a := range []struct {
		field string
		path  string
	}{
		{"default.template", cfg.Defaults.Template},
		{"default.stylesheet", cfg.Defaults.Stylesheet},
		{"default.favicon", cfg.Defaults.Favicon},
	} {
		if !fileutil.FileExists(inProject(dir, a.path)) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s %q not found", a.field, a.path))
		}
	}
}

// checkSources counts the files a build would process.
func checkSources(result *doctorResult, dir string, cfg *raven.Config) {
	src := inProject(dir, cfg.Source)
	if !fileutil.DirExists(src) {
		result.Errors = append(result.Errors, fmt.Sprintf("source directory %q not found", src))
		return
	}

	files := raven.Scan(src, nil)
	result.Project.Files = len(files)
	for _, f := range files {
		if f.Kind == raven.KindMarkdown {
			result.Project.Pages++
		}
	}
	if result.Project.Pages == 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("no markdown pages under %q", src))
	}
}

// printDoctorResult prints human-readable diagnostic output.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "Project")
	fmt.Fprintf(w, "  [%s] Config: %s\n", mark(r.Project.ConfigOK), r.Project.Config)
	if r.Project.ConfigOK {
		fmt.Fprintf(w, "  [%s] Theme: %s\n", mark(r.Project.ThemeFound), r.Project.Theme)
		fmt.Fprintf(w, "  [i] Custom syntaxes: %d\n", r.Project.Syntaxes)
		fmt.Fprintf(w, "  [%s] Pages: %d (%d files)\n", mark(r.Project.Pages > 0), r.Project.Pages, r.Project.Files)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [i] %s/%s, %s\n", r.System.OS, r.System.Arch, r.System.GoVersion)
	fmt.Fprintf(w, "  [i] GOMAXPROCS: %d\n", r.System.GOMAXPROCS)
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  [!] %s\n", warn)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  [x] %s\n", e)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: READY")
	case "warnings":
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}

func mark(ok bool) string {
	if ok {
		return "v"
	}
	return "x"
}
