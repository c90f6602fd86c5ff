package errors

import (
	"fmt"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	var selErr *SelectionError
	if As(err, &selErr) {
		return formatSelectionError(selErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/twm/config.toml\n")
	b.WriteString("  • Run 'twm config --default' to see a valid configuration\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatSelectionError formats a SelectionError with actionable guidance.
func formatSelectionError(err *SelectionError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Workspace %s failed: %s\n", err.Operation, err.Message)

	switch err.Operation {
	case "select":
		b.WriteString("\nTo fix this:\n")
		b.WriteString("  • Install fzf and make sure it is on your PATH\n")
		b.WriteString("  • Run from an interactive terminal, or pass a workspace name\n")

	case "find":
		b.WriteString("\nTo fix this:\n")
		b.WriteString("  • Run 'twm list' to see the discovered workspaces\n")
		b.WriteString("  • Check discovery.search_paths and discovery.max_search_depth\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
