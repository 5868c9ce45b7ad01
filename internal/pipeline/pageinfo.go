package pipeline

import (
	"errors"
	"fmt"

	"github.com/alnah/go-raven/internal/config"
	"github.com/alnah/go-raven/internal/yamlutil"
)

// PageInfoTag is the fence language that marks a page's metadata block.
const PageInfoTag = "pageinfo"

// reservedTagPrefix marks fences consumed by the build rather than rendered.
const reservedTagPrefix = "raven"

// PageInfo is the metadata embedded in a markdown page.
type PageInfo struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Style       string           `yaml:"style,omitempty"`
	Template    string           `yaml:"template,omitempty"`
	Favicon     string           `yaml:"favicon,omitempty"`
	Meta        *config.SiteMeta `yaml:"meta,omitempty"`
}

func parsePageInfo(raw, sourcePath string) (*PageInfo, error) {
	var info PageInfo
	if err := yamlutil.Unmarshal([]byte(raw), &info); err != nil {
		if errors.Is(err, yamlutil.ErrNilData) {
			return nil, fmt.Errorf("%w: %s: empty block", ErrParsePageInfo, sourcePath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParsePageInfo, sourcePath, err)
	}

	var missing string
	switch {
	case info.Title == "":
		missing = "title"
	case info.Description == "":
		missing = "description"
	}
	if missing != "" {
		return nil, fmt.Errorf("%w: %s: missing required field %q", ErrParsePageInfo, sourcePath, missing)
	}

	return &info, nil
}
