package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thoreinstein.com/twm/pkg/discovery"
	twmerrors "thoreinstein.com/twm/pkg/errors"
	"thoreinstein.com/twm/pkg/ui"
)

// selectWorkspace is swapped out in tests.
var selectWorkspace = ui.SelectWorkspace

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open [name]",
	Short: "Print the path of a workspace, picking one interactively if no name is given",
	Long: `Resolve a workspace and print its path on stdout.

With a name, the workspace whose directory name (or full path) matches is
used. Without one, the discovered workspaces are offered in fzf.

Pair it with a shell function to switch directories:

  tw() { cd "$(twm open "$@")" || return; }

Examples:
  twm open
  twm open api
  twm open --type node`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return runOpenCommand(cmd, name)
	},
}

var openType string

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringVarP(&openType, "type", "t", "", "only offer workspaces of this type")
	addScanFlags(openCmd)
}

func runOpenCommand(cmd *cobra.Command, name string) error {
	result, err := scanWorkspaces(cmd)
	if err != nil {
		return err
	}

	var selected *discovery.Workspace
	if name != "" {
		filtered := &discovery.Result{Workspaces: result.OfType(openType)}
		selected, err = filtered.Find(name)
	} else {
		selected, err = selectWorkspace(result.OfType(openType))
	}
	if err != nil {
		if twmerrors.Is(err, ui.ErrNoWorkspaces) {
			return twmerrors.NewSelectionError("find", "no workspaces found under the configured search paths")
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), selected.Path)
	return nil
}
