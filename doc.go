// Package raven builds a static website from a tree of markdown pages.
//
// # Quick Start
//
// Load the project configuration, create a Site and build it:
//
//	cfg, err := raven.LoadConfig("mysite/raven.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	site, err := raven.New(cfg, "mysite")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := site.Run(ctx, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d built, %d skipped, %d failed\n",
//	    report.Built, report.Skipped, len(report.Failed))
//
// # Build Pipeline
//
// Scan walks the source directory and classifies every file by extension.
// Build then runs one unit per file, concurrently:
//
//  1. Markdown pages are rendered with goldmark: the pageinfo block is
//     extracted, emoji shortcodes are replaced and fenced code is
//     highlighted with chroma
//  2. The body is merged into the page template by marker substitution;
//     favicon and stylesheet fragments are shared through a run-scoped cache
//  3. The document is optionally minified and written under the
//     destination directory, mirroring the source tree
//
// HTML sources are copied, or used as their own template when
// generation.treat_source_as_template is set. Stylesheets are copied.
//
// # Page Metadata
//
// Every markdown page carries a fenced block tagged pageinfo holding YAML:
//
//	```pageinfo
//	title: Home
//	description: Landing page
//	template: layouts/home.html   # optional, default.template otherwise
//	style: css/home.css           # optional, default.stylesheet otherwise
//	favicon: img/home.ico         # optional, default.favicon otherwise
//	meta:                         # optional, default.meta otherwise
//	  site_name: Raven
//	  authors: [Ann, Bob]
//	```
//
// # Failures
//
// A failing page never stops its siblings. Per-page errors are logged and
// collected in Report.Failed; Build itself only fails when nothing can be
// scheduled (ErrNoSourceFiles) or the context is canceled.
//
// # Incremental Builds
//
// A markdown page is skipped when its output exists and is at least as new
// as the source. Pass force to Build (raven build --rebuild_all) to
// regenerate everything.
package raven
