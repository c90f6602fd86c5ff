package discovery

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"thoreinstein.com/twm/pkg/config"
	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// Engine orchestrates workspace discovery across the configured search paths
type Engine struct {
	Config *config.DiscoveryConfig
	Logger *zap.Logger
}

// NewEngine creates a new discovery engine
func NewEngine(cfg *config.DiscoveryConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Config: cfg,
		Logger: logger,
	}
}

// Scan walks every search path and returns the workspaces sorted by path.
// Missing or unreadable roots are reported in Result.Skipped, not as errors.
func (e *Engine) Scan() (*Result, error) {
	if e.Config == nil {
		return nil, twmerrors.NewConfigError("discovery", "missing configuration")
	}
	if err := e.Config.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	scanner := NewScanner(e.Config, e.Logger)
	workspaces := make(Workspaces)
	result := &Result{}

	for _, root := range e.Config.SearchPaths {
		// Resolve symlinks for root; the walk itself never follows them
		realRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			scanErr := twmerrors.NewScanError(twmerrors.OpResolve, root, err)
			result.Skipped = append(result.Skipped, scanErr)
			e.Logger.Debug("skipping search path", zap.String("path", root), zap.Error(err))
			continue
		}

		stats := scanner.ScanDir(realRoot, workspaces)
		result.Scanned += stats.Scanned
		result.Skipped = append(result.Skipped, stats.Skipped...)
	}

	result.Workspaces = workspaces.Sorted()
	result.Duration = time.Since(start)

	e.Logger.Debug("scan complete",
		zap.Int("workspaces", len(result.Workspaces)),
		zap.Int("scanned", result.Scanned),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// Find scans and returns the workspace whose path or base name equals name.
func (e *Engine) Find(name string) (*Workspace, error) {
	result, err := e.Scan()
	if err != nil {
		return nil, err
	}
	return result.Find(name)
}

// Sorted converts the map into workspaces ordered by path.
func (w Workspaces) Sorted() []Workspace {
	list := make([]Workspace, 0, len(w))
	for path, workspaceType := range w {
		list = append(list, Workspace{
			Name: path.Base(),
			Path: path.String(),
			Type: workspaceType,
		})
	}
	slices.SortFunc(list, func(a, b Workspace) int {
		return strings.Compare(a.Path, b.Path)
	})
	return list
}

// OfType returns the workspaces matching workspaceType, or all of them when it is empty.
func (r *Result) OfType(workspaceType string) []Workspace {
	if workspaceType == "" {
		return r.Workspaces
	}
	var filtered []Workspace
	for _, w := range r.Workspaces {
		if w.Type == workspaceType {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// Find returns the workspace whose path or base name equals name.
// A full path wins over base names; an ambiguous base name is an error.
func (r *Result) Find(name string) (*Workspace, error) {
	var matches []Workspace
	for _, w := range r.Workspaces {
		if w.Path == name {
			return &w, nil
		}
		if w.Name == name {
			matches = append(matches, w)
		}
	}

	switch len(matches) {
	case 0:
		return nil, twmerrors.NewSelectionError("find", fmt.Sprintf("no workspace named %q", name))
	case 1:
		return &matches[0], nil
	default:
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = m.Path
		}
		return nil, twmerrors.NewSelectionError("find",
			fmt.Sprintf("workspace name %q is ambiguous: %s", name, strings.Join(paths, ", ")))
	}
}
