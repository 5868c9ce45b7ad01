// Package yamlutil decodes raven.yaml and pageinfo blocks with goccy/go-yaml.
// Decoding errors are rendered with the offending source line so a broken
// page or config can be fixed from the log alone.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the bytes accepted by a single decode.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Mode selects how Decode treats keys the destination does not declare.
type Mode int

const (
	// Lenient ignores unknown keys. Pageinfo blocks use it so pages can
	// carry metadata for other tools.
	Lenient Mode = iota
	// Strict rejects unknown keys. raven.yaml uses it to catch typos.
	Strict
)

// Decode decodes data into v according to mode.
func Decode(data []byte, v any, mode Mode) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}

	var opts []yaml.DecodeOption
	if mode == Strict {
		opts = append(opts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %s", Describe(err))
	}
	return nil
}

// Unmarshal decodes data into v, ignoring keys v does not declare.
func Unmarshal(data []byte, v any) error { return Decode(data, v, Lenient) }

// UnmarshalStrict decodes data into v and rejects unknown keys.
func UnmarshalStrict(data []byte, v any) error { return Decode(data, v, Strict) }

// Marshal encodes v the way raven init writes raven.yaml: block style with
// indented sequences.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// Describe renders a decoding error with the offending source line, without
// terminal colors.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	return yaml.FormatError(err, false, true)
}
