// Package bootstrap wires viper to the config package: it locates the global
// config file, applies TWM_ environment overrides and merges a workspace-local
// config file before the typed configuration is loaded.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"thoreinstein.com/twm/pkg/config"
	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// LocalConfigNames are the workspace-local config files, in lookup order.
var LocalConfigNames = []string{".twm.toml", ".twm.yaml", ".twm.yml"}

var (
	lastLoadedConfig  string
	lastLoadedVerbose bool
	loadedConfig      *config.Config
)

// InitConfig reads in config file and ENV variables if set.
// It returns the loaded config and the actual verbosity state.
func InitConfig(cfgFile string, verbose bool) (*config.Config, bool, error) {
	if loadedConfig != nil && cfgFile == lastLoadedConfig && verbose == lastLoadedVerbose {
		return loadedConfig, verbose, nil
	}

	// Reset Viper state to avoid carrying over stale settings from previous loads.
	viper.Reset()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, verbose, twmerrors.Wrap(err, "failed to get home directory")
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "twm"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TWM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file that cannot be read is an error; a missing default is not
		if cfgFile != "" || !twmerrors.As(err, &notFound) {
			return nil, verbose, twmerrors.NewConfigErrorWithCause("", "could not read config file", err)
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Load workspace-local config (.twm.toml) if present
	LoadLocalConfig(verbose)

	cfg, err := config.Load()
	if err != nil {
		return nil, verbose, err
	}

	lastLoadedConfig = cfgFile
	lastLoadedVerbose = verbose
	loadedConfig = cfg

	return cfg, verbose, nil
}

// LoadLocalConfig merges the nearest workspace-local config file found from
// the current directory upwards.
func LoadLocalConfig(verbose bool) {
	configPath, err := FindLocalConfig()
	if err != nil || configPath == "" {
		return
	}

	localViper := viper.New()
	localViper.SetConfigFile(configPath)

	if err := localViper.ReadInConfig(); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not read local config %s: %v\n", configPath, err)
		}
		return
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Using local config: %s\n", configPath)
	}

	if err := viper.MergeConfigMap(localViper.AllSettings()); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not merge local config: %v\n", err)
		}
	}
}

// FindLocalConfig returns the nearest local config file at or above the
// current directory, or "" if there is none.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, name := range LocalConfigNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Reset clears the cached configuration state.
func Reset() {
	lastLoadedConfig = ""
	lastLoadedVerbose = false
	loadedConfig = nil
}
