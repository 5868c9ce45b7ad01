package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-raven/internal/assets"
	"github.com/alnah/go-raven/internal/config"
)

const testTemplate = "<title>[/raven_title/]</title>[/raven_favicon/][/raven_stylesheet/]" +
	"<meta content=\"[/raven_authors/]\">[/raven_site_name/]|[/raven_description/]|[/raven_body/]"

// newProject writes a template, stylesheet and favicon under a temp root.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "template.html"), testTemplate)
	writeTestFile(t, filepath.Join(root, "style.css"), "body{margin:0}")
	writeTestFile(t, filepath.Join(root, "favicon.ico"), "ico")
	return root
}

// ---------------------------------------------------------------------------
// TestSubstitute
// ---------------------------------------------------------------------------

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tmpl string
		data TemplateData
		want string
	}{
		{
			name: "all markers",
			tmpl: testTemplate,
			data: TemplateData{
				Body:        "<p>hi</p>",
				Title:       "Home",
				Description: "<em>desc</em>",
				Favicon:     "<link>",
				Stylesheet:  "<style></style>",
				SiteName:    "Raven",
				Authors:     []string{"ann", "bob"},
			},
			want: "<title>Home</title><link><style></style><meta content=\"ann, bob\">Raven|<em>desc</em>|<p>hi</p>",
		},
		{
			name: "escapes title site name and authors",
			tmpl: "[/raven_title/] [/raven_site_name/] [/raven_authors/]",
			data: TemplateData{Title: "a<b", SiteName: "R&D", Authors: []string{`"q"`}},
			want: "a&lt;b R&amp;D &#34;q&#34;",
		},
		{
			name: "body inserted verbatim",
			tmpl: "[/raven_body/]",
			data: TemplateData{Body: "<script>x()</script>"},
			want: "<script>x()</script>",
		},
		{
			name: "repeated markers",
			tmpl: "[/raven_title/]-[/raven_title/]",
			data: TemplateData{Title: "t"},
			want: "t-t",
		},
		{
			name: "substituted text is not rescanned",
			tmpl: "[/raven_body/]|[/raven_title/]",
			data: TemplateData{Body: "[/raven_title/]", Title: "T"},
			want: "[/raven_title/]|T",
		},
		{
			name: "missing values become empty",
			tmpl: "a[/raven_favicon/]b[/raven_authors/]c",
			want: "abc",
		},
		{
			name: "no markers",
			tmpl: "<p>static</p>",
			want: "<p>static</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Substitute(tt.tmpl, tt.data); got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIntegrator
// ---------------------------------------------------------------------------

func TestIntegrator_Integrate(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	cfg := config.DefaultConfig()
	cfg.Defaults.Meta = &config.SiteMeta{SiteName: "Raven", Authors: []string{"ann"}}
	cfg.Meta = &config.MetaConfig{AppendSiteNameToTitle: true}

	in := NewIntegrator(cfg, root, assets.NewCache(), "")
	got, err := in.Integrate(&PageInfo{Title: "Home", Description: "d"}, "src/index.md", "<p>body</p>")
	if err != nil {
		t.Fatalf("Integrate() error = %v", err)
	}

	want := `<title>Home | Raven</title>` +
		`<link rel="icon" type="image/x-icon" href="data:image/x-icon;base64,aWNv">` +
		`<style>body{margin:0}</style>` +
		`<meta content="ann">Raven|d|<p>body</p>`
	if got != want {
		t.Errorf("Integrate() =\n%q\nwant\n%q", got, want)
	}
}

func TestIntegrator_PageOverrides(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	writeTestFile(t, filepath.Join(root, "layouts", "post.html"), "POST [/raven_title/] [/raven_stylesheet/] [/raven_site_name/]")
	writeTestFile(t, filepath.Join(root, "css", "post.css"), "h1{}")

	cfg := config.DefaultConfig()
	cfg.Defaults.Meta = &config.SiteMeta{SiteName: "Default"}
	cfg.Meta = &config.MetaConfig{AppendSiteNameToTitle: true, TitleSeparator: " :: "}

	info := &PageInfo{
		Title:       "Post",
		Description: "d",
		Template:    "layouts/post.html",
		Style:       "css/post.css",
		Meta:        &config.SiteMeta{SiteName: "Blog"},
	}
	got, err := NewIntegrator(cfg, root, assets.NewCache(), "").Integrate(info, "src/post.md", "")
	if err != nil {
		t.Fatalf("Integrate() error = %v", err)
	}
	if want := "POST Post :: Blog <style>h1{}</style> Blog"; got != want {
		t.Errorf("Integrate() = %q, want %q", got, want)
	}
}

func TestIntegrator_MissingTemplate(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	in := NewIntegrator(config.DefaultConfig(), root, assets.NewCache(), "")

	_, err := in.Integrate(&PageInfo{Title: "t", Description: "d", Template: "nope.html"}, "src/a.md", "")
	if !errors.Is(err, ErrMissingTemplate) {
		t.Fatalf("Integrate() error = %v, want ErrMissingTemplate", err)
	}
	if !strings.Contains(err.Error(), "src/a.md") || !strings.Contains(err.Error(), "nope.html") {
		t.Errorf("error %q should name source and template", err)
	}
}

func TestIntegrator_MissingFavicon(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	if err := os.Remove(filepath.Join(root, "favicon.ico")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got, err := NewIntegrator(config.DefaultConfig(), root, assets.NewCache(), "").
		Integrate(&PageInfo{Title: "t", Description: "d"}, "src/a.md", "")
	if err != nil {
		t.Fatalf("Integrate() error = %v, want nil for missing favicon", err)
	}
	if strings.Contains(got, "<link") {
		t.Errorf("favicon fragment emitted for missing file: %q", got)
	}
}

func TestIntegrator_MissingStylesheet(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	_, err := NewIntegrator(config.DefaultConfig(), root, assets.NewCache(), "").
		Integrate(&PageInfo{Title: "t", Description: "d", Style: "missing.css"}, "src/a.md", "")
	if !errors.Is(err, assets.ErrAssetRead) {
		t.Errorf("Integrate() error = %v, want assets.ErrAssetRead", err)
	}
}

func TestIntegrator_ThemeCSS(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	in := NewIntegrator(config.DefaultConfig(), root, assets.NewCache(), ".chroma{}</style>")

	got, err := in.Integrate(&PageInfo{Title: "t", Description: "d"}, "src/a.md", "")
	if err != nil {
		t.Fatalf("Integrate() error = %v", err)
	}
	if !strings.Contains(got, `<style>body{margin:0}</style><style>.chroma{}<\/style></style>`) {
		t.Errorf("theme CSS not appended safely: %q", got)
	}
}

func TestIntegrator_IntegrateSource(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	cfg := config.DefaultConfig()
	cfg.Defaults.Meta = &config.SiteMeta{SiteName: "Raven", Authors: []string{"ann", "bob"}}

	got, err := NewIntegrator(cfg, root, assets.NewCache(), "").IntegrateSource(testTemplate)
	if err != nil {
		t.Fatalf("IntegrateSource() error = %v", err)
	}
	want := `<title></title>` +
		`<link rel="icon" type="image/x-icon" href="data:image/x-icon;base64,aWNv">` +
		`<style>body{margin:0}</style>` +
		`<meta content="ann, bob">Raven||`
	if got != want {
		t.Errorf("IntegrateSource() =\n%q\nwant\n%q", got, want)
	}
}

func TestIntegrator_ConcurrentPagesShareFragments(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	cache := assets.NewCache()
	in := NewIntegrator(config.DefaultConfig(), root, cache, "")

	const pages = 32
	results := make([]string, pages)
	var wg sync.WaitGroup
	for i := range pages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := in.Integrate(&PageInfo{Title: "t", Description: "d"}, "src/a.md", "")
			if err != nil {
				t.Errorf("Integrate() error = %v", err)
			}
			results[i] = out
		}()
	}
	wg.Wait()

	for i := 1; i < pages; i++ {
		if results[i] != results[0] {
			t.Fatalf("page %d differs from page 0", i)
		}
	}
	if cache.Len() != 2 {
		t.Errorf("cache.Len() = %d, want 2 (favicon and stylesheet)", cache.Len())
	}
}
