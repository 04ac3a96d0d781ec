package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/julianshen/codexplain/internal/config"
	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/output"
	"github.com/julianshen/codexplain/internal/tui"
)

// printResult formats result and writes it to the command's stdout.
// Markdown headed for a terminal is rendered with glamour.
func printResult(cmd *cobra.Command, cfg *config.Config, format string, result *output.RunResult) error {
	formatter, err := output.New(format)
	if err != nil {
		return err
	}
	out, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	w := cmd.OutOrStdout()
	if _, ok := formatter.(*output.MarkdownFormatter); ok && result.Tutorial != nil && isTerminal(w) {
		out = []byte(renderForTerminal(cmd, cfg, w, string(out)))
	}
	_, err = w.Write(out)
	return err
}

func renderForTerminal(cmd *cobra.Command, cfg *config.Config, w io.Writer, md string) string {
	width := 100
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = min(cols, 120)
		}
	}
	r, err := tui.NewMarkdownRenderer(cfg.UI.Theme, width-2)
	if err != nil {
		logger.Warn(commandContext(cmd), "markdown renderer unavailable", "error", err)
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		logger.Warn(commandContext(cmd), "rendering markdown", "error", err)
		return md
	}
	return rendered
}
