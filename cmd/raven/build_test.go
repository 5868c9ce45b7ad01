package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuild - End-to-end builds through the CLI
// ---------------------------------------------------------------------------

func TestBuild_FreshProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "build", dir); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}

	page := readFile(t, filepath.Join(dir, "dest", "index.html"))
	for _, want := range []string{
		"<title>Hello, World</title>",
		`<meta content="Greet the world" property="og:description">`,
		"data:image/x-icon;base64,",
		`<pre style="background-color:`,
		"<table>",
		"👋",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "[/raven_") || strings.Contains(page, "pageinfo") {
		t.Error("page still carries markers or the pageinfo block")
	}
	if !strings.Contains(stderr.String(), "build finished") {
		t.Errorf("stderr = %q, want build summary", stderr)
	}
}

func TestBuild_Incremental(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "build", "--json", dir); code != ExitSuccess {
		t.Fatalf("first build exit = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr.String(), `"built":1`) {
		t.Errorf("first build log = %s", stderr)
	}

	env, _, stderr = testEnv(nil)
	if code := runCLI(t, env, "build", "--json", dir); code != ExitSuccess {
		t.Fatalf("second build exit = %d", code)
	}
	if !strings.Contains(stderr.String(), `"skipped":1`) {
		t.Errorf("second build should skip the page: %s", stderr)
	}

	env, _, stderr = testEnv(map[string]string{"RAVEN_LOG_FORMAT": "json"})
	if code := runCLI(t, env, "build", "-a", dir); code != ExitSuccess {
		t.Fatalf("forced build exit = %d", code)
	}
	if !strings.Contains(stderr.String(), `"built":1`) {
		t.Errorf("--rebuild_all should rebuild: %s", stderr)
	}
}

func TestBuild_PageFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFiles(t, dir, map[string]string{"src/broken.md": "# no page info\n"})

	env, _, stderr := testEnv(nil)
	if code := runCLI(t, env, "build", dir); code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stderr.String(), "broken.md") {
		t.Errorf("failure not reported: %s", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "dest", "index.html")); err != nil {
		t.Errorf("sibling page not built: %v", err)
	}
}

func TestBuild_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		args  []string
		want  int
	}{
		{
			name:  "missing config",
			setup: func(t *testing.T, dir string) { removeFile(t, filepath.Join(dir, "raven.yaml")) },
			want:  ExitIO,
		},
		{
			name: "malformed config",
			setup: func(t *testing.T, dir string) {
				writeFiles(t, dir, map[string]string{"raven.yaml": "source: [\n"})
			},
			want: ExitConfig,
		},
		{
			name: "unknown config key",
			setup: func(t *testing.T, dir string) {
				writeFiles(t, dir, map[string]string{"raven.yaml": "sauce: src\n"})
			},
			want: ExitConfig,
		},
		{
			name: "unknown theme",
			setup: func(t *testing.T, dir string) {
				writeFiles(t, dir, map[string]string{"raven.yaml": "syntax_theme: no-such-theme\n"})
			},
			want: ExitUsage,
		},
		{
			name:  "no pages",
			setup: func(t *testing.T, dir string) { removeFile(t, filepath.Join(dir, "src", "index.md")) },
			want:  ExitIO,
		},
		{
			name: "negative workers",
			args: []string{"--workers=-1"},
			want: ExitUsage,
		},
		{
			name: "alternate config",
			setup: func(t *testing.T, dir string) {
				writeFiles(t, dir, map[string]string{"alt.yaml": "dest: out\n"})
			},
			args: []string{"-c", "alt.yaml"},
			want: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			env, _, stderr := testEnv(nil)
			args := append([]string{"build", dir}, tt.args...)
			if code := runCLI(t, env, args...); code != tt.want {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.want, stderr)
			}
		})
	}
}

func TestBuild_ConfigFromEnv(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFiles(t, dir, map[string]string{"env.yaml": "dest: from-env\n"})

	env, _, stderr := testEnv(map[string]string{"RAVEN_CONFIG": "env.yaml", "RAVEN_WORKERS": "2"})
	if code := runCLI(t, env, "build", dir); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "from-env", "index.html")); err != nil {
		t.Errorf("RAVEN_CONFIG not honored: %v", err)
	}
}

func TestBuild_Canceled(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, _, _ := testEnv(nil)
	if code := runMain(ctx, []string{"raven", "build", dir}, env); code != ExitInterrupted {
		t.Errorf("exit = %d, want %d", code, ExitInterrupted)
	}
}

func TestBuild_ProgressOnTerminal(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	env, _, stderr := testEnv(map[string]string{"NO_COLOR": "1"})
	env.Terminal = func(io.Writer) bool { return true }

	if code := runCLI(t, env, "build", dir); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr.String(), "building 1/1") {
		t.Errorf("no progress line in %q", stderr)
	}
}

func removeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove %s: %v", path, err)
	}
}
