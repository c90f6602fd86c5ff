package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	Discovery DiscoveryConfig `mapstructure:"discovery" toml:"discovery"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
}

// DiscoveryConfig holds workspace discovery configuration
type DiscoveryConfig struct {
	SearchPaths           []string              `mapstructure:"search_paths" toml:"search_paths"`                       // Roots scanned for workspaces
	MaxSearchDepth        int                   `mapstructure:"max_search_depth" toml:"max_search_depth"`               // 0 scans only the root itself
	ExcludePathComponents []string              `mapstructure:"exclude_path_components" toml:"exclude_path_components"` // Directory names pruned from the walk
	WorkspaceDefinitions  []WorkspaceDefinition `mapstructure:"workspace_definitions" toml:"workspace_definitions"`     // Evaluated in order, first match wins
}

// WorkspaceDefinition is a single marker-file rule.
type WorkspaceDefinition struct {
	Name        string   `mapstructure:"name" toml:"name"`
	HasAnyFile  []string `mapstructure:"has_any_file" toml:"has_any_file"`
	HasAllFiles []string `mapstructure:"has_all_files" toml:"has_all_files,omitempty"`
}

// LogConfig holds log file configuration
type LogConfig struct {
	File string `mapstructure:"file" toml:"file"` // Optional rotated JSON log file
}

// DefaultExcludePathComponents are pruned unless the user overrides the list.
var DefaultExcludePathComponents = []string{
	".direnv",
	".git",
	".idea",
	".terraform",
	".vscode",
	"node_modules",
	"target",
	"vendor",
	"venv",
}

// DefaultWorkspaceDefinitions returns the rule set used when none is configured.
func DefaultWorkspaceDefinitions() []WorkspaceDefinition {
	return []WorkspaceDefinition{
		{Name: "default", HasAnyFile: []string{".git", ".twm.toml"}},
	}
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	setDefaults()

	if err := viper.Unmarshal(config); err != nil {
		return nil, twmerrors.Wrap(err, "failed to unmarshal config")
	}

	if err := expandPaths(config); err != nil {
		return nil, twmerrors.Wrap(err, "failed to expand paths")
	}

	if err := config.Validate(); err != nil {
		return nil, twmerrors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// Default returns the built-in configuration without consulting viper.
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			SearchPaths:           []string{"~"},
			MaxSearchDepth:        3,
			ExcludePathComponents: append([]string(nil), DefaultExcludePathComponents...),
			WorkspaceDefinitions:  DefaultWorkspaceDefinitions(),
		},
	}
}

// DefaultTOML renders the built-in configuration as a TOML document.
func DefaultTOML() ([]byte, error) {
	return Default().EncodeTOML()
}

// EncodeTOML renders the configuration as a TOML document.
func (c *Config) EncodeTOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, twmerrors.Wrap(err, "failed to encode config")
	}
	return data, nil
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	return c.Discovery.Validate()
}

// Validate checks the discovery settings the scanner relies on.
func (d *DiscoveryConfig) Validate() error {
	if d.MaxSearchDepth < 0 {
		return twmerrors.NewConfigError("discovery.max_search_depth", "must not be negative")
	}

	for i, name := range d.ExcludePathComponents {
		if name == "" {
			return twmerrors.NewConfigError(indexed("discovery.exclude_path_components", i), "must not be empty")
		}
	}

	seen := make(map[string]bool, len(d.WorkspaceDefinitions))
	for i, def := range d.WorkspaceDefinitions {
		field := indexed("discovery.workspace_definitions", i)
		if def.Name == "" {
			return twmerrors.NewConfigError(field+".name", "must not be empty")
		}
		if seen[def.Name] {
			return twmerrors.NewConfigError(field+".name", "duplicate workspace type "+quote(def.Name))
		}
		seen[def.Name] = true

		if len(def.HasAnyFile) == 0 {
			return twmerrors.NewConfigError(field+".has_any_file", "must list at least one file")
		}
		if err := validateFileNames(field+".has_any_file", def.HasAnyFile); err != nil {
			return err
		}
		if err := validateFileNames(field+".has_all_files", def.HasAllFiles); err != nil {
			return err
		}
	}

	return nil
}

// validateFileNames rejects entries that are not a direct child name.
func validateFileNames(field string, names []string) error {
	for i, name := range names {
		if name == "" {
			return twmerrors.NewConfigError(indexed(field, i), "must not be empty")
		}
		if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
			return twmerrors.NewConfigError(indexed(field, i), quote(name)+" must be a file name, not a path")
		}
	}
	return nil
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("discovery.search_paths", []string{"~"})
	viper.SetDefault("discovery.max_search_depth", 3)
	viper.SetDefault("discovery.exclude_path_components", DefaultExcludePathComponents)
	viper.SetDefault("discovery.workspace_definitions", DefaultWorkspaceDefinitions())

	viper.SetDefault("log.file", "")
}

// expandPaths expands ~ and environment variables in paths
func expandPaths(config *Config) error {
	var err error

	for i, path := range config.Discovery.SearchPaths {
		config.Discovery.SearchPaths[i], err = expandPath(path)
		if err != nil {
			return err
		}
	}

	config.Log.File, err = expandPath(config.Log.File)
	if err != nil {
		return err
	}

	return nil
}

// expandPath expands environment variables and a leading ~ to the home directory
func expandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}
