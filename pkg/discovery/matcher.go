package discovery

import (
	"os"
	"path/filepath"

	"thoreinstein.com/twm/pkg/config"
)

// matchWorkspace returns the name of the first definition that dir satisfies.
// A definition's has_all_files gate only applies to that definition.
func matchWorkspace(dir string, defs []config.WorkspaceDefinition) (string, bool) {
	for _, def := range defs {
		if !hasAllFiles(dir, def.HasAllFiles) {
			continue
		}
		if hasAnyFile(dir, def.HasAnyFile) {
			return def.Name, true
		}
	}
	return "", false
}

// hasAllFiles reports whether every name exists directly inside dir.
// An empty list is trivially satisfied.
func hasAllFiles(dir string, names []string) bool {
	for _, name := range names {
		if !exists(filepath.Join(dir, name)) {
			return false
		}
	}
	return true
}

// hasAnyFile reports whether at least one name exists directly inside dir.
func hasAnyFile(dir string, names []string) bool {
	for _, name := range names {
		if exists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

// exists follows symlinks; any stat error counts as absent.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
