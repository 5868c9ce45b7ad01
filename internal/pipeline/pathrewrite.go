package pipeline

import (
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pageExts are the source extensions whose links point at generated pages.
var pageExts = []string{".md", ".markdown"}

// RewritePageLinks points relative links at markdown sources to the pages
// generated from them: <a href="guide/intro.md#setup"> becomes
// <a href="guide/intro.html#setup">. Query strings and fragments are kept.
//
// Not rewritten:
//   - absolute paths and URLs with a scheme or host
//   - anchors, empty hrefs and non-markdown targets
//   - links outside <a> elements
//
// Only rewritten <a> tags are re-serialized; every other token is copied
// byte for byte. Bodies without a candidate link are returned unchanged
// without tokenizing.
func RewritePageLinks(body string) (string, error) {
	if !mayLinkPages(body) {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	changed := false

	z := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			break
		}

		// Token lowercases the tokenizer buffer in place, so copy Raw first.
		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			b.WriteString(raw)
			continue
		}

		tok := z.Token()
		if tok.DataAtom == atom.A && rewriteHref(tok.Attr) {
			b.WriteString(tok.String())
			changed = true
			continue
		}
		b.WriteString(raw)
	}

	if !changed {
		return body, nil
	}
	return b.String(), nil
}

func mayLinkPages(body string) bool {
	if !strings.Contains(body, "href") {
		return false
	}
	for _, ext := range pageExts {
		if strings.Contains(body, ext) {
			return true
		}
	}
	return false
}

// rewriteHref rewrites the href attribute in place and reports whether it
// changed.
func rewriteHref(attrs []html.Attribute) bool {
	changed := false
	for i, attr := range attrs {
		if attr.Namespace != "" || attr.Key != "href" {
			continue
		}
		if v, ok := pageHref(attr.Val); ok {
			attrs[i].Val = v
			changed = true
		}
	}
	return changed
}

// pageHref returns href with a markdown extension swapped for .html.
func pageHref(href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	for _, pe := range pageExts {
		if ext == pe {
			u.Path = strings.TrimSuffix(u.Path, path.Ext(u.Path)) + ".html"
			return u.String(), true
		}
	}
	return "", false
}
