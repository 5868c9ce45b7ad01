package pipeline

import (
	"strings"
	"testing"
)

func TestNewPostProcessor(t *testing.T) {
	t.Parallel()

	if _, ok := NewPostProcessor(false).(Identity); !ok {
		t.Error("NewPostProcessor(false) should be Identity")
	}
	if _, ok := NewPostProcessor(true).(*Minifier); !ok {
		t.Error("NewPostProcessor(true) should be *Minifier")
	}
}

func TestIdentity_Process(t *testing.T) {
	t.Parallel()

	doc := "<html>\n  <body>  <p>x</p>  </body>\n</html>"
	got, err := Identity{}.Process(doc)
	if err != nil || got != doc {
		t.Errorf("Identity.Process() = %q, %v, want input unchanged", got, err)
	}
}

func TestMinifier_Process(t *testing.T) {
	t.Parallel()

	doc := "<!DOCTYPE html>\n<html>\n<head>\n<style>\nbody {\n  color : red ;\n}\n</style>\n</head>\n" +
		"<body>\n\n   <p class=\"note\">hello    world</p>\n</body>\n</html>\n"

	m := NewMinifier()
	got, err := m.Process(doc)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for _, s := range []string{
		"<style>body{color:red}</style>",
		`<p class="note">hello world</p>`,
		"<html>",
		"</p>",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("minified output missing %q\noutput: %q", s, got)
		}
	}
	if len(got) >= len(doc) {
		t.Errorf("minified output not smaller: %d >= %d", len(got), len(doc))
	}

	again, err := m.Process(doc)
	if err != nil || again != got {
		t.Errorf("Process() is not deterministic")
	}
}
