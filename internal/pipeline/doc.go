// Package pipeline implements the per-page stages of a site build.
//
// A markdown page flows through these stages:
//   - Transformer parses markdown with goldmark, extracts the pageinfo
//     block, replaces emoji shortcodes and highlights fenced code
//   - RewritePageLinks optionally points links to .md sources at the
//     generated pages
//   - Integrator resolves the page's template and assets and substitutes
//     the template markers
//   - PostProcessor optionally minifies the final document
//
// Highlighter owns the chroma lexer registry and the selected theme. It is
// built once per run and shared read-only by every page.
package pipeline
