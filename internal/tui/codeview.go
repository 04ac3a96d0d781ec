package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianshen/codexplain/internal/highlight"
	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/tutorial"
)

var (
	codeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	codeBoxSelectedStyle = codeBoxStyle.BorderForeground(lipgloss.Color("205"))
	langBadgeStyle       = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)
)

func (v *Viewer) renderCode(k renderKit) string {
	snippets := v.tutorial.CodeSnippets
	if len(snippets) == 0 {
		return mutedStyle.Render(k.tr.T("viewer.no_code"))
	}
	var b strings.Builder
	b.WriteString(mutedStyle.Render(k.tr.T("viewer.code_hint")))
	b.WriteString("\n\n")
	for i, s := range snippets {
		b.WriteString(renderSnippet(k, s, i, i == v.snippet))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSnippet draws one code snippet: caption, highlighted code in a box,
// and its description.
func renderSnippet(k renderKit, s tutorial.CodeSnippet, index int, selected bool) string {
	var b strings.Builder

	title := s.Title
	if strings.TrimSpace(title) == "" {
		title = k.tr.Tf("viewer.snippet_untitled", map[string]any{"Number": index + 1})
	}
	marker := "  "
	if selected {
		marker = "▸ "
	}
	b.WriteString(panelTitle.Render(marker + title))
	b.WriteString(" ")
	b.WriteString(langBadgeStyle.Render(languageBadge(s.Language)))
	b.WriteString("\n")

	code := s.Code
	if k.hl != nil {
		out, err := k.hl.Highlight(s.Code, s.Language)
		if err != nil {
			logger.Warn(context.Background(), "highlighting snippet", "index", index, "error", err)
		} else {
			code = out
		}
	}
	if code == "" {
		code = mutedStyle.Render(k.tr.T("viewer.snippet_empty"))
	}

	box := codeBoxStyle
	if selected {
		box = codeBoxSelectedStyle
	}
	if k.width > 8 {
		box = box.MaxWidth(k.width)
	}
	b.WriteString(box.Render(code))

	if s.Description != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(s.Description))
	}
	return b.String()
}

// copySnippet writes the selected snippet's full text to the clipboard.
func (m *Model) copySnippet() tea.Cmd {
	v := m.viewer
	if v == nil || v.tab != TabCode {
		return nil
	}
	s, ok := v.selectedSnippet()
	if !ok {
		return nil
	}
	cb := m.clipboard
	return func() tea.Msg {
		err := cb.WriteAll(s.Code)
		if err != nil {
			err = fmt.Errorf("copying snippet: %w", err)
		}
		return actionDoneMsg{kind: actionCopy, err: err}
	}
}

// openSnippet opens the selected snippet's raw text as a data: URI.
func (m *Model) openSnippet() tea.Cmd {
	v := m.viewer
	if v == nil || v.tab != TabCode {
		return nil
	}
	s, ok := v.selectedSnippet()
	if !ok {
		return nil
	}
	return m.openURL(actionOpen, dataURI(s.Code))
}

// languageBadge names the snippet's language the way the highlighter
// understood it.
func languageBadge(lang string) string {
	name := highlight.LanguageName(lang)
	if name == "fallback" {
		if lang = strings.TrimSpace(lang); lang != "" {
			return lang
		}
		return "text"
	}
	return name
}
