package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var pageInfoKey = parser.NewContextKey()

// Transformer converts one markdown page into body HTML and its PageInfo.
// It is safe for concurrent use.
type Transformer struct {
	md goldmark.Markdown
}

// TransformerOption configures a Transformer.
type TransformerOption func(*transformerConfig)

type transformerConfig struct {
	classes bool
}

// WithClasses highlights fenced code with CSS classes instead of inline
// styles. The page stylesheet must then include Highlighter.ThemeCSS.
func WithClasses(enabled bool) TransformerOption {
	return func(c *transformerConfig) { c.classes = enabled }
}

// NewTransformer builds a Transformer over hl.
func NewTransformer(hl *Highlighter, opts ...TransformerOption) *Transformer {
	var cfg transformerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			&pageExtension{emoji: NewEmojiReplacer(), hl: hl, classes: cfg.classes},
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Transformer{md: md}
}

// Parse renders source and extracts its pageinfo block. sourcePath only
// names the page in errors.
func (t *Transformer) Parse(source []byte, sourcePath string) (string, *PageInfo, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer
	if err := t.md.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		if errors.Is(err, ErrSyntaxHighlight) {
			return "", nil, fmt.Errorf("%s: %w", sourcePath, err)
		}
		return "", nil, fmt.Errorf("%w: %s: %v", ErrHTMLConversion, sourcePath, err)
	}

	raw, ok := ctx.Get(pageInfoKey).(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingPageInfo, sourcePath)
	}
	info, err := parsePageInfo(raw, sourcePath)
	if err != nil {
		return "", nil, err
	}
	return buf.String(), info, nil
}

// ---------------------------------------------------------------------------
// goldmark extension
// ---------------------------------------------------------------------------

type pageExtension struct {
	emoji   *EmojiReplacer
	hl      *Highlighter
	classes bool
}

func (e *pageExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&pageInfoTransformer{}, 100),
		util.Prioritized(&textMerger{}, 200),
	))

	r := &pageRenderer{Config: html.NewConfig(), emoji: e.emoji, hl: e.hl, classes: e.classes}
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(r, 100)))
}

// pageInfoTransformer removes pageinfo and reserved fences from the tree.
// The first pageinfo block's raw text is stored in the parser context.
type pageInfoTransformer struct{}

func (pageInfoTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var drop []ast.Node

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := string(fence.Language(source))
		switch {
		case lang == PageInfoTag:
			if pc.Get(pageInfoKey) == nil {
				pc.Set(pageInfoKey, string(blockText(fence, source)))
			}
		case strings.HasPrefix(lang, reservedTagPrefix):
		default:
			return ast.WalkSkipChildren, nil
		}
		drop = append(drop, fence)
		return ast.WalkSkipChildren, nil
	})

	for _, n := range drop {
		n.Parent().RemoveChild(n.Parent(), n)
	}
}

// textMerger joins adjacent text nodes that are contiguous in the source,
// so a shortcode split by the inline parser (":world_map:" breaks at '_')
// reaches the emoji replacer whole.
type textMerger struct{}

func (textMerger) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		cur, ok := n.(*ast.Text)
		if !ok {
			return ast.WalkContinue, nil
		}
		for {
			next, ok := cur.NextSibling().(*ast.Text)
			if !ok || !mergeable(cur, next) {
				break
			}
			cur.Segment = cur.Segment.WithStop(next.Segment.Stop)
			cur.SetSoftLineBreak(next.SoftLineBreak())
			cur.SetHardLineBreak(next.HardLineBreak())
			cur.Parent().RemoveChild(cur.Parent(), next)
		}
		return ast.WalkContinue, nil
	})
}

func mergeable(a, b *ast.Text) bool {
	return !a.IsRaw() && !b.IsRaw() &&
		!a.SoftLineBreak() && !a.HardLineBreak() &&
		a.Segment.Stop == b.Segment.Start &&
		a.Segment.Padding == 0 && b.Segment.Padding == 0
}

// pageRenderer renders text and code with emoji substitution, and fenced
// code with the Highlighter.
type pageRenderer struct {
	html.Config
	emoji   *EmojiReplacer
	hl      *Highlighter
	classes bool
}

func (r *pageRenderer) SetOption(name renderer.OptionName, value any) {
	r.Config.SetOption(name, value)
}

func (r *pageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *pageRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	value := n.Segment.Value(source)
	if n.IsRaw() {
		r.Writer.RawWrite(w, value)
		return ast.WalkContinue, nil
	}

	r.Writer.Write(w, r.emoji.Replace(value))
	switch {
	case n.HardLineBreak() || (n.SoftLineBreak() && r.HardWraps):
		if r.XHTML {
			_, _ = w.WriteString("<br />\n")
		} else {
			_, _ = w.WriteString("<br>\n")
		}
	case n.SoftLineBreak():
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *pageRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<pre><code>")
	r.Writer.RawWrite(w, r.emoji.Replace(blockText(node, source)))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func (r *pageRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := n.Language(source)
	code := r.emoji.Replace(blockText(n, source))
	lexer := r.hl.Lexer(string(lang))

	// Class mode emits chroma's own <pre class="chroma"> wrapper.
	if lexer != nil && r.classes {
		out, err := r.hl.HighlightClasses(lexer, string(code))
		if err != nil {
			return ast.WalkStop, err
		}
		_, _ = w.WriteString(out)
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString("<pre><code")
	if lang != nil {
		_, _ = w.WriteString(` class="language-`)
		r.Writer.Write(w, lang)
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')

	if lexer != nil {
		out, err := r.hl.Highlight(lexer, string(code))
		if err != nil {
			return ast.WalkStop, err
		}
		_, _ = w.WriteString(out)
	} else {
		r.Writer.RawWrite(w, code)
	}

	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func blockText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}
