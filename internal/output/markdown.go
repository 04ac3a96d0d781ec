// internal/output/markdown.go
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianshen/codexplain/internal/tutorial"
)

// MarkdownFormatter outputs RunResult as human-readable Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the RunResult as Markdown. Without a tutorial only the id
// is printed, which keeps `generate` output pipeable.
func (f *MarkdownFormatter) Format(result *RunResult) ([]byte, error) {
	var b strings.Builder

	if result.Error != "" {
		b.WriteString("## Error\n\n")
		b.WriteString(result.Error)
		b.WriteString("\n")
		return []byte(b.String()), nil
	}

	if result.Tutorial == nil {
		b.WriteString(result.TutorialID)
		b.WriteString("\n")
		return []byte(b.String()), nil
	}

	WriteTutorial(&b, result.Tutorial)

	b.WriteString(fmt.Sprintf("\n---\n*Tutorial %s, fetched in %s*\n",
		result.Tutorial.ID, (time.Duration(result.DurationMs) * time.Millisecond).Round(100*time.Millisecond)))

	return []byte(b.String()), nil
}

// WriteTutorial writes t as a single Markdown document: chapters, then
// diagrams as mermaid fences, then code snippets.
func WriteTutorial(b *strings.Builder, t *tutorial.Tutorial) {
	fmt.Fprintf(b, "# %s\n\n", t.DisplayTitle())
	fmt.Fprintf(b, "*Generated: %s*\n", t.GeneratedAt.Display())

	if len(t.Chapters) > 0 {
		b.WriteString("\n## Chapters\n")
		for _, ch := range t.Chapters {
			fmt.Fprintf(b, "\n### %s\n\n", ch.Title)
			b.WriteString(strings.TrimRight(ch.Content, "\n"))
			b.WriteString("\n")
		}
	}

	if len(t.Diagrams) > 0 {
		b.WriteString("\n## Diagrams\n")
		for _, d := range t.Diagrams {
			fmt.Fprintf(b, "\n### %s\n\n", d.Title)
			if d.Description != "" {
				b.WriteString(d.Description)
				b.WriteString("\n\n")
			}
			WriteFence(b, "mermaid", d.Content)
		}
	}

	if len(t.CodeSnippets) > 0 {
		b.WriteString("\n## Code Snippets\n")
		for _, s := range t.CodeSnippets {
			fmt.Fprintf(b, "\n### %s\n\n", s.Title)
			if s.Description != "" {
				b.WriteString(s.Description)
				b.WriteString("\n\n")
			}
			WriteFence(b, s.Language, s.Code)
		}
	}
}

// WriteFence writes body as a fenced code block, lengthening the fence if
// body itself contains backtick runs.
func WriteFence(b *strings.Builder, lang, body string) {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	b.WriteString(fence)
	b.WriteString(lang)
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n")
	b.WriteString(fence)
	b.WriteString("\n")
}
