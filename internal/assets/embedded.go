package assets

import (
	"embed"
	"io/fs"
)

//go:embed scaffold/*
var scaffold embed.FS

//go:embed themes/*.xml
var themes embed.FS

// EmbeddedLoader loads the default scaffolding compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: mustSub(scaffold, "scaffold")}
}

// Load returns the embedded scaffolding file with the given name.
func (e *EmbeddedLoader) Load(name string) ([]byte, error) {
	return readAsset(e.fsys, name)
}

// Themes returns the builtin syntax themes as a filesystem of chroma XML
// style files.
func Themes() fs.FS {
	return mustSub(themes, "themes")
}

// mustSub panics only if an embedded directory is missing, which the embed
// directives above rule out.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
