package discovery

import (
	"path/filepath"
	"unicode/utf8"

	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// SafePath is a filesystem path known to be valid UTF-8 text.
// It is comparable and used as the key of Workspaces.
type SafePath struct {
	path string
}

// NewSafePath validates path. Paths that are not valid UTF-8 are rejected.
func NewSafePath(path string) (SafePath, error) {
	if !utf8.ValidString(path) {
		return SafePath{}, twmerrors.NewScanError(twmerrors.OpDecode, path, twmerrors.New("path is not valid UTF-8"))
	}
	return SafePath{path: path}, nil
}

// String returns the path text.
func (p SafePath) String() string {
	return p.path
}

// Base returns the last element of the path.
func (p SafePath) Base() string {
	return filepath.Base(p.path)
}
