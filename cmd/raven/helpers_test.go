package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testEnv returns an Environment capturing output, with vars as the only
// environment variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		Terminal: func(io.Writer) bool { return false },
	}
	return env, stdout, stderr
}

// runCLI runs the CLI with args after the program name.
func runCLI(t *testing.T, env *Environment, args ...string) int {
	t.Helper()
	return runMain(context.Background(), append([]string{"raven"}, args...), env)
}

// writeFiles creates files under root, keyed by slash-separated path.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// newProject initializes a project through the CLI and returns its path.
func newProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "site")
	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "new", "--quiet", dir); code != ExitSuccess {
		t.Fatalf("new exit = %d, stderr: %s", code, stderr)
	}
	return dir
}
