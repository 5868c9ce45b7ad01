package main

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestClean
// ---------------------------------------------------------------------------

func TestClean_RemovesDest(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "build", "-q", dir); code != ExitSuccess {
		t.Fatalf("build exit = %d, stderr: %s", code, stderr)
	}

	if code := runCLI(t, env, "clean", "-q", dir); code != ExitSuccess {
		t.Fatalf("clean exit = %d, stderr: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "dest")); !os.IsNotExist(err) {
		t.Errorf("dest still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "index.md")); err != nil {
		t.Errorf("source removed: %v", err)
	}

	if code := runCLI(t, env, "clean", "-q", dir); code != ExitSuccess {
		t.Errorf("second clean exit = %d, want success", code)
	}
}

func TestClean_RefusesProjectRoot(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFiles(t, dir, map[string]string{"raven.yaml": "dest: .\n"})

	env, _, _ := testEnv(nil)
	if code := runCLI(t, env, "clean", dir); code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	if _, err := os.Stat(filepath.Join(dir, "raven.yaml")); err != nil {
		t.Errorf("project removed: %v", err)
	}
}
