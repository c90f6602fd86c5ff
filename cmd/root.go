package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"thoreinstein.com/twm/pkg/bootstrap"
	"thoreinstein.com/twm/pkg/config"
	twmerrors "thoreinstein.com/twm/pkg/errors"
	"thoreinstein.com/twm/pkg/logging"
)

var cfgFile string
var verbose bool
var logFile string
var appConfig *config.Config
var logger = logging.Nop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twm",
	Short: "twm - workspace discovery and switching",
	Long: `twm finds workspace directories under your search paths by matching
marker files against an ordered list of workspace definitions, and helps you
list them or jump into one.

A directory containing Cargo.toml can be a "rust" workspace, one containing
.git a "default" workspace; the first matching definition wins.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, twmerrors.FormatUserError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/twm/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write debug logs as JSON to this file (overrides log.file)")
}

// initConfig reads in config file and ENV variables if set, then builds the logger.
func initConfig() error {
	var err error
	appConfig, verbose, err = bootstrap.InitConfig(cfgFile, verbose)
	if err != nil {
		return err
	}

	path := logFile
	if path == "" {
		path = appConfig.Log.File
	}

	l, err := logging.New(logging.Options{Verbose: verbose, FilePath: path})
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("configuration loaded", zap.String("config_file", viper.ConfigFileUsed()))
	return nil
}

// resetConfig clears the cached configuration.
// This is primarily used in tests to ensure each test starts with a fresh config.
func resetConfig() {
	appConfig = nil
	logger = logging.Nop()
	bootstrap.Reset()
	viper.Reset()
}
