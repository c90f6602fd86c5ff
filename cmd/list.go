package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"thoreinstein.com/twm/pkg/discovery"
	twmerrors "thoreinstein.com/twm/pkg/errors"
)

var (
	listFormat string
	listType   string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List discovered workspaces",
	Long: `Scan the configured search paths and print every workspace found.

Output formats:
  text  aligned "type  path" columns (default)
  json  array of {name, path, type}
  yaml  sequence of {name, path, type}

Examples:
  twm list
  twm list --type rust
  twm list --path ~/work --depth 2 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "text", "output format: text, json or yaml")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "only list workspaces of this type")
	addScanFlags(listCmd)
}

func runListCommand(cmd *cobra.Command) error {
	result, err := scanWorkspaces(cmd)
	if err != nil {
		return err
	}

	return writeWorkspaces(cmd.OutOrStdout(), result.OfType(listType), listFormat)
}

// writeWorkspaces renders workspaces to w in the requested format.
func writeWorkspaces(w io.Writer, workspaces []discovery.Workspace, format string) error {
	if workspaces == nil {
		workspaces = []discovery.Workspace{}
	}

	switch format {
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, ws := range workspaces {
			fmt.Fprintf(tw, "%s\t%s\n", ws.Type, ws.Path)
		}
		return tw.Flush()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(workspaces)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(workspaces); err != nil {
			return twmerrors.Wrap(err, "failed to encode yaml")
		}
		return enc.Close()

	default:
		return twmerrors.NewConfigError("--format", fmt.Sprintf("unknown format %q: must be one of: text, json, yaml", format))
	}
}
