// internal/output/formatter.go
package output

import (
	"fmt"

	"github.com/julianshen/codexplain/internal/tutorial"
)

// RunResult holds the collected output of a headless command.
type RunResult struct {
	Command    string                      `json:"command" yaml:"command"`
	TutorialID string                      `json:"tutorial_id,omitempty" yaml:"tutorial_id,omitempty"`
	Request    *tutorial.GenerationRequest `json:"request,omitempty" yaml:"request,omitempty"`
	Tutorial   *tutorial.Tutorial          `json:"tutorial,omitempty" yaml:"tutorial,omitempty"`
	DurationMs int64                       `json:"duration_ms" yaml:"duration_ms"`
	Error      string                      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Formatter formats a RunResult into output bytes.
type Formatter interface {
	Format(result *RunResult) ([]byte, error)
}

// Formats lists the names accepted by New.
var Formats = []string{"markdown", "json", "yaml"}

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch name {
	case "", "markdown", "md":
		return NewMarkdownFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "yaml", "yml":
		return NewYAMLFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %v)", name, Formats)
	}
}
