package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// Scaffolding file names known to every loader.
const (
	TemplateFile   = "template.html"
	StylesheetFile = "style.css"
	FaviconFile    = "favicon.ico"
	StarterFile    = "index.md"
)

// AssetLoader defines the contract for loading scaffolding files.
type AssetLoader interface {
	// Load returns the content of the named file.
	// Returns ErrAssetNotFound if the file doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	Load(name string) ([]byte, error)
}

// readAsset reads a validated scaffolding file from fsys.
func readAsset(fsys fs.FS, name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(fsys, name)
	switch {
	case err == nil:
		return content, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	default:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}
