package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"thoreinstein.com/twm/pkg/discovery"
	twmerrors "thoreinstein.com/twm/pkg/errors"
)

var (
	// ErrCancelled is returned when the user cancels the selection
	ErrCancelled = twmerrors.New("selection cancelled")
	// ErrNoWorkspaces is returned when there are no workspaces to select from
	ErrNoWorkspaces = twmerrors.New("no workspaces found")
)

// Overridden in tests.
var (
	lookPath   = exec.LookPath
	isTerminal = func() bool { return term.IsTerminal(int(os.Stderr.Fd())) }
)

// SelectWorkspace prompts the user to select a workspace using fzf
func SelectWorkspace(workspaces []discovery.Workspace) (*discovery.Workspace, error) {
	if len(workspaces) == 0 {
		return nil, ErrNoWorkspaces
	}

	// fzf draws its UI on stderr
	if !isTerminal() {
		return nil, twmerrors.NewSelectionError("select", "stderr is not a terminal")
	}

	fzfPath, err := lookPath("fzf")
	if err != nil {
		return nil, twmerrors.NewSelectionErrorWithCause("select", "fzf not found in PATH", err)
	}

	// Format: Name <tab> Type <tab> Path
	var input bytes.Buffer
	for _, w := range workspaces {
		fmt.Fprintf(&input, "%s\t%s\t%s\n", w.Name, w.Type, w.Path)
	}

	// #nosec G204 - fzf binary is looked up in PATH, no user-controlled arguments are passed directly
	cmd := exec.Command(fzfPath,
		"--height=40%",
		"--layout=reverse",
		"--delimiter=\t",
		"--with-nth=1,2,3",
		"--cycle",
	)
	cmd.Stdin = &input
	cmd.Stderr = os.Stderr
	var output bytes.Buffer
	cmd.Stdout = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if twmerrors.As(err, &exitErr) {
			// fzf returns 130 on cancellation (ESC, Ctrl-C, Ctrl-G)
			if exitErr.ExitCode() == 130 {
				return nil, ErrCancelled
			}
		}
		return nil, twmerrors.NewSelectionErrorWithCause("select", "fzf failed", err)
	}

	return parseSelection(output.String(), workspaces)
}

// parseSelection maps an fzf output line back to its workspace.
func parseSelection(out string, workspaces []discovery.Workspace) (*discovery.Workspace, error) {
	selectedLine := strings.TrimRight(out, "\r\n")
	if strings.TrimSpace(selectedLine) == "" {
		return nil, ErrCancelled
	}

	parts := strings.SplitN(selectedLine, "\t", 3)
	if len(parts) < 3 {
		return nil, twmerrors.NewSelectionError("select", fmt.Sprintf("invalid selection output: %q", selectedLine))
	}

	selectedPath := parts[2]
	for _, w := range workspaces {
		if w.Path == selectedPath {
			return &w, nil
		}
	}

	return nil, twmerrors.NewSelectionError("select", fmt.Sprintf("selected workspace path %q not found in original list", selectedPath))
}
