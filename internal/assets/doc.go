// Package assets provides the run-scoped fragment cache used while
// integrating pages, and the scaffolding files written into new projects.
//
// # Fragment cache
//
// Cache memoizes rendered HTML fragments (stylesheet and favicon) keyed by
// canonical path. It is split into shards selected by an xxhash of the key,
// each guarded by its own RWMutex, so lookups of different keys never wait on
// each other. Concurrent first loads of one key may both read the file; the
// first insert wins and every caller returns the stored fragment.
//
// # Scaffolding
//
// The loaders resolve scaffolding files by name:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - files embedded at compile time
//	    ├── FilesystemLoader  - files from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// FilesystemLoader resolves symlinks and verifies paths stay within its base
// directory. Asset names are validated to prevent path traversal.
//
// The builtin base16 syntax themes are embedded as chroma XML styles and
// exposed through Themes.
package assets
