package ui

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thoreinstein.com/twm/pkg/discovery"
	twmerrors "thoreinstein.com/twm/pkg/errors"
)

var testWorkspaces = []discovery.Workspace{
	{Name: "api", Path: "/src/api", Type: "go"},
	{Name: "web", Path: "/src/web", Type: "node"},
}

// fakeFzf installs a shell script in place of fzf for the duration of the test.
func fakeFzf(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake fzf needs a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "fzf")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755))

	origLookPath, origIsTerminal := lookPath, isTerminal
	lookPath = func(string) (string, error) { return path, nil }
	isTerminal = func() bool { return true }
	t.Cleanup(func() {
		lookPath, isTerminal = origLookPath, origIsTerminal
	})
}

func TestSelectWorkspace_NoWorkspaces(t *testing.T) {
	_, err := SelectWorkspace(nil)
	assert.ErrorIs(t, err, ErrNoWorkspaces)
}

func TestSelectWorkspace_NotATerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, err := SelectWorkspace(testWorkspaces)
	require.Error(t, err)
	assert.True(t, twmerrors.IsSelectionError(err))
}

func TestSelectWorkspace_PicksLine(t *testing.T) {
	fakeFzf(t, "sed -n 2p")

	selected, err := SelectWorkspace(testWorkspaces)
	require.NoError(t, err)
	assert.Equal(t, testWorkspaces[1], *selected)
}

func TestSelectWorkspace_Cancelled(t *testing.T) {
	fakeFzf(t, "cat >/dev/null; exit 130")

	_, err := SelectWorkspace(testWorkspaces)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestSelectWorkspace_Failure(t *testing.T) {
	fakeFzf(t, "cat >/dev/null; exit 2")

	_, err := SelectWorkspace(testWorkspaces)
	require.Error(t, err)
	assert.True(t, twmerrors.IsSelectionError(err))
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    *discovery.Workspace
		wantErr error
	}{
		{name: "empty output", out: "\n", wantErr: ErrCancelled},
		{name: "selected line", out: "api\tgo\t/src/api\n", want: &testWorkspaces[0]},
		{name: "malformed line", out: "api /src/api\n"},
		{name: "unknown path", out: "x\tgo\t/src/x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelection(tt.out, testWorkspaces)
			if tt.want != nil {
				require.NoError(t, err)
				assert.Equal(t, *tt.want, *got)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
