package assets

import "errors"

// AssetResolver loads each scaffolding file from the first loader that has
// it. A custom directory, when given, comes before the embedded defaults.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customDir means the
// embedded files only. Returns ErrInvalidBasePath if customDir is set but
// not a readable directory.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	var chain []AssetLoader
	if customDir != "" {
		custom, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		chain = append(chain, custom)
	}
	chain = append(chain, NewEmbeddedLoader())
	return &AssetResolver{chain: chain}, nil
}

// Load returns the named file. Only ErrAssetNotFound moves on to the next
// loader; any other error is returned as is.
func (r *AssetResolver) Load(name string) ([]byte, error) {
	var err error
	for _, l := range r.chain {
		var content []byte
		content, err = l.Load(name)
		if err == nil || !errors.Is(err, ErrAssetNotFound) {
			return content, err
		}
	}
	return nil, err
}

var _ AssetLoader = (*AssetResolver)(nil)
