package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	raven "github.com/alnah/go-raven"
)

// ---------------------------------------------------------------------------
// TestInit - Project scaffolding
// ---------------------------------------------------------------------------

func TestNew_WritesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	for _, p := range []string{"raven.yaml", "template.html", "style.css", "favicon.ico", "src/index.md"} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
	for _, d := range []string{"src", "dest", "syntaxes", "syntax-themes"} {
		if info, err := os.Stat(filepath.Join(dir, d)); err != nil || !info.IsDir() {
			t.Errorf("missing directory %s: %v", d, err)
		}
	}

	cfg, err := raven.LoadConfig(filepath.Join(dir, "raven.yaml"))
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Source != "src" || cfg.Dest != "dest" {
		t.Errorf("config dirs = %q %q", cfg.Source, cfg.Dest)
	}
}

func TestNew_DirectoryOverrides(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "blog")
	env, _, stderr := testEnv(nil)
	code := runCLI(t, env, "new", dir, "--source", "pages", "--dest", "public",
		"--syntaxes", "lexers", "--syntax_themes", "styles")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}

	cfg, err := raven.LoadConfig(filepath.Join(dir, "raven.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Source != "pages" || cfg.Dest != "public" || cfg.Syntaxes != "lexers" || cfg.CustomSyntaxThemes != "styles" {
		t.Errorf("config = %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(dir, "pages", "index.md")); err != nil {
		t.Errorf("starter page not in source dir: %v", err)
	}
}

func TestNew_SameSourceAndDest(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	code := runCLI(t, env, "new", filepath.Join(t.TempDir(), "x"), "--source", "out", "--dest", "out")
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}

func TestInit_ExistingConfigUntouched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"raven.yaml": "source: docs\n"})

	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "init", dir); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if got := readFile(t, filepath.Join(dir, "raven.yaml")); got != "source: docs\n" {
		t.Errorf("raven.yaml rewritten: %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "template.html")); !os.IsNotExist(err) {
		t.Errorf("template written into initialized project: %v", err)
	}
	if !strings.Contains(stderr.String(), "already initialized") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestInit_KeepsExistingAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"style.css": "mine"})

	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "init", "-q", dir); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if got := readFile(t, filepath.Join(dir, "style.css")); got != "mine" {
		t.Errorf("style.css overwritten: %q", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet init wrote %q", stderr)
	}
}

func TestInit_CustomScaffold(t *testing.T) {
	t.Parallel()

	scaffold := t.TempDir()
	writeFiles(t, scaffold, map[string]string{"template.html": "<main>[/raven_body/]</main>"})

	dir := t.TempDir()
	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "init", dir, "--scaffold", scaffold); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if got := readFile(t, filepath.Join(dir, "template.html")); got != "<main>[/raven_body/]</main>" {
		t.Errorf("template = %q, want custom scaffold", got)
	}
	if !strings.Contains(readFile(t, filepath.Join(dir, "src", "index.md")), "pageinfo") {
		t.Error("starter page should fall back to the embedded scaffold")
	}
}

func TestInit_BadScaffold(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	code := runCLI(t, env, "init", t.TempDir(), "--scaffold", filepath.Join(t.TempDir(), "missing"))
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}
