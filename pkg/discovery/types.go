package discovery

import (
	"time"

	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// Workspaces maps each matched directory to the workspace type it matched.
// The caller owns the map; scans populate it in place.
type Workspaces map[SafePath]string

// Workspace represents a discovered workspace directory
type Workspace struct {
	Name string `json:"name" yaml:"name"` // Basename of the directory
	Path string `json:"path" yaml:"path"` // Path as reached from the search root
	Type string `json:"type" yaml:"type"` // Name of the matching workspace definition
}

// Result represents the result of a discovery scan
type Result struct {
	Workspaces []Workspace
	Scanned    int                    // Number of directories visited
	Skipped    []*twmerrors.ScanError // Entries left out because of errors
	Duration   time.Duration          // Time taken to scan
}
