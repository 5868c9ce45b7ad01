package raven_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	raven "github.com/alnah/go-raven"
)

// Example builds a one-page site in a temporary directory.
func Example() {
	root, err := os.MkdirTemp("", "raven-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(root)

	files := map[string]string{
		"template.html": "<title>[/raven_title/]</title>[/raven_body/]",
		"style.css":     "body{margin:0}",
		"src/index.md":  "```pageinfo\ntitle: Hello\ndescription: Example\n```\n# Hello :wave:\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		_ = os.MkdirAll(filepath.Dir(path), 0o750)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fmt.Println("error:", err)
			return
		}
	}

	site, err := raven.New(raven.DefaultConfig(), root)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	report, err := site.Run(context.Background(), false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	page, _ := os.ReadFile(filepath.Join(root, "dest", "index.html"))
	fmt.Println(report.Built, "built")
	fmt.Println(strings.TrimSpace(string(page)))
	// Output:
	// 1 built
	// <title>Hello</title><h1>Hello 👋</h1>
}
