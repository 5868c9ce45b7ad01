// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForConfigNotFound returns hints for a missing raven.yaml.
func ForConfigNotFound() string {
	return formatHints([]string{
		"run 'raven init' in the project directory",
		"or use --config /path/to/raven.yaml",
	})
}

// ForConfigParse returns hints for a configuration that does not parse.
func ForConfigParse() string {
	return format("check the YAML syntax and key names; 'raven doctor' reports the first problem")
}

// ForThemeNotFound returns hints for an unknown syntax_theme. similar lists
// known theme names worth suggesting, if any.
func ForThemeNotFound(similar []string) string {
	if len(similar) > 0 {
		return format("did you mean: " + strings.Join(similar, ", "))
	}
	return format("use a chroma style name or add an XML style to custom_syntax_themes")
}

// ForNoSourceFiles returns hints for a source directory without pages.
func ForNoSourceFiles() string {
	return format("add .md or .markdown files under the source directory")
}

// ForUnsafeClean returns hints for a destination that clean refuses to remove.
func ForUnsafeClean() string {
	return format("point dest at a directory inside the project, apart from source")
}

// SimilarNames returns up to limit names from available sharing a prefix of
// at least three characters with name, compared case-insensitively.
func SimilarNames(name string, available []string, limit int) []string {
	const minPrefix = 3
	name = strings.ToLower(name)
	if len(name) < minPrefix || limit <= 0 {
		return nil
	}

	var out []string
	for _, candidate := range available {
		if strings.HasPrefix(strings.ToLower(candidate), name[:minPrefix]) {
			out = append(out, candidate)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
