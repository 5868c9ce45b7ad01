package raven

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeClean indicates the destination directory overlaps the project
// root or the source directory and will not be removed.
var ErrUnsafeClean = errors.New("refusing to remove destination")

// Clean removes the destination directory of the project in root. A
// missing directory is not an error.
func Clean(cfg *Config, root string) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	dest, err := filepath.Abs(resolvePath(root, cfg.Dest))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	src, err := filepath.Abs(resolvePath(root, cfg.Source))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if dest == absRoot || within(absRoot, dest) {
		return fmt.Errorf("%w: %s contains the project", ErrUnsafeClean, dest)
	}
	if dest == src || within(src, dest) {
		return fmt.Errorf("%w: %s contains the sources", ErrUnsafeClean, dest)
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// within reports whether path lies strictly inside dir.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
