package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark-emoji/definition"
)

// EmojiReplacer substitutes GitHub-style :shortcode: tokens with their
// Unicode glyphs.
type EmojiReplacer struct {
	table definition.Emojis
}

// NewEmojiReplacer returns a replacer over the GitHub emoji table.
func NewEmojiReplacer() *EmojiReplacer {
	return &EmojiReplacer{table: definition.Github()}
}

// Replace returns text with every known shortcode replaced. Unknown
// shortcodes are kept as written. When nothing is replaced the input slice
// itself is returned.
func (r *EmojiReplacer) Replace(text []byte) []byte {
	if bytes.IndexByte(text, ':') < 0 {
		return text
	}

	var out []byte
	last := 0 // start of text not yet copied to out
	i := 0
	for i < len(text) {
		open := bytes.IndexByte(text[i:], ':')
		if open < 0 {
			break
		}
		open += i
		end := bytes.IndexByte(text[open+1:], ':')
		if end < 0 {
			break
		}
		end += open + 1

		name := text[open+1 : end]
		if !validShortcode(name) {
			i = end // the closing colon may open the next shortcode
			continue
		}
		emoji, ok := r.table.Get(string(name))
		if !ok {
			i = end
			continue
		}

		out = append(out, text[last:open]...)
		out = append(out, string(emoji.Unicode)...)
		last = end + 1
		i = end + 1
	}

	if out == nil {
		return text
	}
	return append(out, text[last:]...)
}

func validShortcode(name []byte) bool {
	if len(name) == 0 {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '+', c == '-':
		default:
			return false
		}
	}
	return true
}
