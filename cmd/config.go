package cmd

import (
	"github.com/spf13/cobra"

	"thoreinstein.com/twm/pkg/config"
)

var configDefault bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration twm is running with, after defaults, the config
file, TWM_* environment variables and any local .twm.toml have been applied.

With --default, print the built-in configuration instead; it is a good
starting point for ~/.config/twm/config.toml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if configDefault {
			data, err = config.DefaultTOML()
		} else {
			data, err = appConfig.EncodeTOML()
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configDefault, "default", false, "print the built-in default configuration")
}
