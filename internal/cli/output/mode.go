// Package output renders CLI output for humans (styled text) and agents
// (markdown, JSON, YAML).
package output

import (
	"fmt"
	"strings"
)

// OutputMode selects how command output is rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Modes returns every accepted mode name.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML)}
}

// ParseMode converts a flag value to an OutputMode. "md" is accepted as an
// alias for markdown and the empty string means auto.
func ParseMode(s string) (OutputMode, error) {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case "md":
		return ModeMarkdown, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return m, nil
	default:
		return "", fmt.Errorf("invalid output mode %q (valid: %s)", s, strings.Join(Modes(), ", "))
	}
}

// IsStructured reports whether the mode emits machine-readable data.
func (m OutputMode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML
}
