package assets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-raven/internal/fileutil"
)

const (
	faviconFragment    = `<link rel="icon" type="image/x-icon" href="data:image/x-icon;base64,%s">`
	stylesheetFragment = "<style>%s</style>"
)

// Favicon returns the icon link fragment for the file at path, rendering it
// once per run. A missing file yields an empty fragment.
func (c *Cache) Favicon(path string) (string, error) {
	return c.GetOrLoad("favicon:"+fileutil.Canonical(path), func() (string, error) {
		return RenderFavicon(path)
	})
}

// Stylesheet returns the style element fragment for the file at path,
// rendering it once per run. A missing file is an error.
func (c *Cache) Stylesheet(path string) (string, error) {
	return c.GetOrLoad("stylesheet:"+fileutil.Canonical(path), func() (string, error) {
		return RenderStylesheet(path)
	})
}

// RenderFavicon reads path and wraps its base64 encoding in an icon link.
func RenderFavicon(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- project asset path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
	return fmt.Sprintf(faviconFragment, base64.RawStdEncoding.EncodeToString(data)), nil
}

// RenderStylesheet reads path and wraps its content in a style element.
func RenderStylesheet(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- project asset path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
	return fmt.Sprintf(stylesheetFragment, data), nil
}
