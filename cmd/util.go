package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"thoreinstein.com/twm/pkg/config"
	"thoreinstein.com/twm/pkg/discovery"
)

// Flags shared by commands that scan.
var (
	scanPaths []string
	scanDepth int
)

// addScanFlags registers the per-run discovery overrides on cmd.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&scanPaths, "path", "p", nil, "search path to scan instead of discovery.search_paths (repeatable)")
	cmd.Flags().IntVarP(&scanDepth, "depth", "d", 0, "override discovery.max_search_depth")
}

// discoveryConfig returns the loaded discovery settings with any flag overrides applied.
func discoveryConfig(cmd *cobra.Command) config.DiscoveryConfig {
	cfg := appConfig.Discovery
	if cmd.Flags().Changed("path") {
		cfg.SearchPaths = scanPaths
	}
	if cmd.Flags().Changed("depth") {
		cfg.MaxSearchDepth = scanDepth
	}
	return cfg
}

// scanWorkspaces runs discovery with the effective settings for cmd.
func scanWorkspaces(cmd *cobra.Command) (*discovery.Result, error) {
	cfg := discoveryConfig(cmd)
	result, err := discovery.NewEngine(&cfg, logger).Scan()
	if err != nil {
		return nil, err
	}

	if verbose {
		cmd.PrintErrf("Scanned %d directories in %s, found %d workspaces (%d entries skipped)\n",
			result.Scanned, result.Duration.Round(time.Millisecond), len(result.Workspaces), len(result.Skipped))
	}
	return result, nil
}
