package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// resetCommandState restores every flag to its default and clears the cached
// configuration so that each test starts from a clean root command.
func resetCommandState(t *testing.T) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}

	rootCmd.PersistentFlags().VisitAll(reset)
	for _, sub := range rootCmd.Commands() {
		sub.Flags().VisitAll(reset)
	}
	resetConfig()
	t.Cleanup(resetConfig)
}

// isolateHome points HOME and the working directory at temp dirs so no real
// config file is picked up.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())
	return home
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetCommandState(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandStructure(t *testing.T) {
	// Not parallel - accesses global rootCmd
	cmd := rootCmd

	if cmd.Use != "twm" {
		t.Errorf("root command Use = %q, want %q", cmd.Use, "twm")
	}

	if cmd.Short == "" {
		t.Error("root command should have Short description")
	}

	if cmd.Long == "" {
		t.Error("root command should have Long description")
	}

	for _, keyword := range []string{"workspace", "marker files", "first matching"} {
		if !strings.Contains(cmd.Long, keyword) {
			t.Errorf("root command Long description should mention %q", keyword)
		}
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	// Not parallel - accesses global rootCmd
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
		usage     string
	}{
		{name: "config", shorthand: "C", defValue: "", usage: "$HOME/.config/twm/config.toml"},
		{name: "verbose", shorthand: "v", defValue: "false"},
		{name: "log-file", defValue: "", usage: "log.file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Fatalf("root command should have --%s persistent flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.name, flag.DefValue, tt.defValue)
			}
			if !strings.Contains(flag.Usage, tt.usage) {
				t.Errorf("--%s usage = %q, should mention %q", tt.name, flag.Usage, tt.usage)
			}
		})
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	// Not parallel - accesses global rootCmd
	registeredCommands := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		// Extract just the command name (first word of Use)
		name := strings.Split(sub.Use, " ")[0]
		registeredCommands[name] = true
	}

	for _, expected := range []string{"list", "open", "config", "version"} {
		if !registeredCommands[expected] {
			t.Errorf("root command should have %q subcommand registered", expected)
		}
	}
}

func TestScanCommandsHaveScanFlags(t *testing.T) {
	for _, sub := range []string{"list", "open"} {
		cmd, _, err := rootCmd.Find([]string{sub})
		if err != nil {
			t.Fatalf("Find(%q) error = %v", sub, err)
		}
		for _, name := range []string{"path", "depth", "type"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("%s command should have --%s flag", sub, name)
			}
		}
	}
}

func TestInitConfig_NoConfigFile(t *testing.T) {
	// Don't run in parallel - modifies global viper state
	isolateHome(t)
	resetCommandState(t)

	if err := initConfig(); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}
	if appConfig == nil {
		t.Fatal("appConfig should be set after initConfig")
	}
	if appConfig.Discovery.MaxSearchDepth != 3 {
		t.Errorf("MaxSearchDepth = %d, want 3", appConfig.Discovery.MaxSearchDepth)
	}
}

func TestInitConfig_WithCustomConfigFile(t *testing.T) {
	// Don't run in parallel - modifies global viper state
	isolateHome(t)
	resetCommandState(t)

	customConfigPath := filepath.Join(t.TempDir(), "custom-config.toml")
	configContent := `[discovery]
max_search_depth = 6
exclude_path_components = ["build"]
`
	if err := os.WriteFile(customConfigPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write custom config: %v", err)
	}
	cfgFile = customConfigPath

	if err := initConfig(); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}
	if appConfig.Discovery.MaxSearchDepth != 6 {
		t.Errorf("MaxSearchDepth = %d, want 6", appConfig.Discovery.MaxSearchDepth)
	}
	if got := appConfig.Discovery.ExcludePathComponents; len(got) != 1 || got[0] != "build" {
		t.Errorf("ExcludePathComponents = %v, want [build]", got)
	}
}

func TestInitConfig_WritesLogFile(t *testing.T) {
	// Don't run in parallel - modifies global viper state
	isolateHome(t)
	resetCommandState(t)

	logFile = filepath.Join(t.TempDir(), "logs", "twm.log")

	if err := initConfig(); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file = %q, want JSON entry for hello", data)
	}
}

func TestInitConfig_InvalidConfig(t *testing.T) {
	// Don't run in parallel - modifies global viper state
	isolateHome(t)
	resetCommandState(t)

	cfgFile = filepath.Join(t.TempDir(), "bad.toml")
	configContent := `[[discovery.workspace_definitions]]
name = "empty"
has_any_file = []
`
	if err := os.WriteFile(cfgFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	err := initConfig()
	if err == nil {
		t.Fatal("initConfig() should fail for an invalid config")
	}
	if !twmerrors.IsConfigError(err) {
		t.Errorf("initConfig() error = %v, want ConfigError", err)
	}
}
