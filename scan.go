package raven

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-raven/internal/fileutil"
	"github.com/alnah/go-raven/internal/logging"
)

// Scan walks root recursively and returns every recognized source file.
// Unreadable entries are logged and skipped; the walk never aborts. A nil
// logger discards those messages. The order of the result is unspecified.
func Scan(root string, logger *slog.Logger) []SourceFile {
	if logger == nil {
		logger = logging.Discard()
	}

	var files []SourceFile
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping unreadable entry", logging.Path(path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !isFile(path, d) {
			return nil
		}

		kind := KindOf(path)
		if kind == KindIgnored {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			logger.Warn("skipping entry outside source root", logging.Path(path), logging.Error(err))
			return nil
		}
		files = append(files, SourceFile{Path: path, Rel: rel, Kind: kind})
		return nil
	})

	return files
}

// isFile reports whether d is a regular file or a symlink to one.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return fileutil.FileExists(path)
}

// countKind returns how many files are of kind k.
func countKind(files []SourceFile, k SourceKind) int {
	n := 0
	for _, f := range files {
		if f.Kind == k {
			n++
		}
	}
	return n
}
