package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads scaffolding overrides from a directory, such as the
// one given to raven init --scaffold. Files resolving outside the directory,
// through symlinks included, are refused.
type FilesystemLoader struct {
	dir  string // absolute, symlinks resolved
	fsys fs.FS
}

// NewFilesystemLoader creates a FilesystemLoader for dir.
// Returns ErrInvalidBasePath if dir is not a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if _, err := os.ReadDir(abs); err != nil {
		info, statErr := os.Stat(abs)
		switch {
		case os.IsNotExist(statErr):
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		case statErr == nil && !info.IsDir():
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
		default:
			return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
		}
	}

	return &FilesystemLoader{dir: abs, fsys: os.DirFS(abs)}, nil
}

// Load reads name from the loader's directory.
func (f *FilesystemLoader) Load(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	if err := f.contained(name); err != nil {
		return nil, err
	}
	return readAsset(f.fsys, name)
}

// contained reports ErrPathTraversal when name, after following symlinks,
// leaves the loader's directory. A name that does not exist passes; the
// read reports it.
func (f *FilesystemLoader) contained(name string) error {
	resolved, err := filepath.EvalSymlinks(filepath.Join(f.dir, name))
	if err != nil {
		return nil
	}
	if !strings.HasPrefix(resolved, f.dir+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, name, f.dir)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
