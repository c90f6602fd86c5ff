package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"thoreinstein.com/twm/pkg/config"
	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// Scanner walks a directory tree and classifies workspace directories
type Scanner struct {
	MaxDepth    int
	Exclusions  map[string]bool
	Definitions []config.WorkspaceDefinition
	Logger      *zap.Logger
}

// Stats describes a single walk.
type Stats struct {
	Scanned int                    // Directories evaluated as candidates
	Skipped []*twmerrors.ScanError // Entries dropped because of errors
}

// NewScanner creates a scanner from the discovery configuration.
// A nil logger discards diagnostics.
func NewScanner(cfg *config.DiscoveryConfig, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}

	exclusions := make(map[string]bool, len(cfg.ExcludePathComponents))
	for _, name := range cfg.ExcludePathComponents {
		exclusions[name] = true
	}

	return &Scanner{
		MaxDepth:    cfg.MaxSearchDepth,
		Exclusions:  exclusions,
		Definitions: cfg.WorkspaceDefinitions,
		Logger:      logger,
	}
}

// FindWorkspacesInDir scans dir and records every matching directory in workspaces.
// Unreadable entries and non UTF-8 paths are skipped; it never fails.
func FindWorkspacesInDir(dir string, cfg *config.DiscoveryConfig, workspaces Workspaces) {
	NewScanner(cfg, nil).ScanDir(dir, workspaces)
}

// ScanDir walks root up to MaxDepth levels deep and records matches in workspaces.
// The root itself is depth 0. Symlinks are not followed.
func (s *Scanner) ScanDir(root string, workspaces Workspaces) Stats {
	var stats Stats

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.skip(&stats, twmerrors.OpWalk, path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Only directories are candidates or walked further
		if !d.IsDir() {
			return nil
		}

		if s.isExcluded(d.Name()) {
			return filepath.SkipDir
		}

		depth, err := depthOf(root, path)
		if err != nil {
			s.skip(&stats, twmerrors.OpWalk, path, err)
			return filepath.SkipDir
		}
		if depth > s.MaxDepth {
			return filepath.SkipDir
		}

		stats.Scanned++
		s.evaluate(&stats, path, workspaces)

		// Directories at the bound are evaluated but never read
		if depth == s.MaxDepth {
			return filepath.SkipDir
		}
		return nil
	})

	return stats
}

// evaluate records path in workspaces if it matches a definition.
func (s *Scanner) evaluate(stats *Stats, path string, workspaces Workspaces) {
	safe, err := NewSafePath(path)
	if err != nil {
		s.skip(stats, twmerrors.OpDecode, path, err)
		return
	}

	if workspaceType, ok := matchWorkspace(path, s.Definitions); ok {
		workspaces[safe] = workspaceType
		s.Logger.Debug("workspace found", zap.String("path", path), zap.String("type", workspaceType))
	}
}

// isExcluded reports whether a directory name prunes its subtree.
// Names that are not valid UTF-8 are always excluded.
func (s *Scanner) isExcluded(name string) bool {
	if !utf8.ValidString(name) {
		return true
	}
	return s.Exclusions[name]
}

func (s *Scanner) skip(stats *Stats, op, path string, cause error) {
	var scanErr *twmerrors.ScanError
	if !twmerrors.As(cause, &scanErr) {
		scanErr = twmerrors.NewScanError(op, path, cause)
	}
	stats.Skipped = append(stats.Skipped, scanErr)
	s.Logger.Debug("skipping entry", zap.String("op", scanErr.Op), zap.String("path", path), zap.Error(scanErr.Cause))
}

// depthOf returns how many levels path lies below root.
func depthOf(root, path string) (int, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0, err
	}
	if rel == "." {
		return 0, nil
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1, nil
}
