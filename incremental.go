package raven

import (
	"fmt"

	"github.com/alnah/go-raven/internal/fileutil"
)

// NeedsBuild reports whether dest must be regenerated from src. It is false
// only when force is unset and dest exists with a modification time no
// earlier than src's.
func NeedsBuild(src, dest string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	upToDate, err := fileutil.UpToDate(src, dest)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return !upToDate, nil
}
