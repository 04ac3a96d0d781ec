package export

import (
	"fmt"
	"strings"

	"github.com/julianshen/codexplain/internal/output"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// Assemble splits a tutorial into documents: an index, one page per
// chapter, and a diagrams and a code page when those sections are present.
// svgs maps diagram index to a relative SVG path; missing entries fall back
// to the mermaid source only.
func Assemble(t *tutorial.Tutorial, svgs map[int]string) []Document {
	var docs []Document
	chapters := make([]Document, 0, len(t.Chapters))
	for i, ch := range t.Chapters {
		chapters = append(chapters, buildChapterPage(i, ch))
	}

	docs = append(docs, buildIndexPage(t, chapters))
	docs = append(docs, chapters...)
	if len(t.Diagrams) > 0 {
		docs = append(docs, buildDiagramsPage(t.Diagrams, svgs))
	}
	if len(t.CodeSnippets) > 0 {
		docs = append(docs, buildCodePage(t.CodeSnippets))
	}
	return docs
}

// buildIndexPage creates _index.md with the title, date and a chapter list.
func buildIndexPage(t *tutorial.Tutorial, chapters []Document) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.DisplayTitle())
	fmt.Fprintf(&b, "*Generated: %s*\n\n", t.GeneratedAt.Display())

	if len(chapters) > 0 {
		b.WriteString("## Chapters\n\n")
		for i, ch := range chapters {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, ch.Title, ch.Path)
		}
		b.WriteString("\n")
	}
	if len(t.Diagrams) > 0 {
		b.WriteString("- [Diagrams](diagrams.md)\n")
	}
	if len(t.CodeSnippets) > 0 {
		b.WriteString("- [Code Snippets](code.md)\n")
	}

	return Document{Path: "_index.md", Title: t.DisplayTitle(), Content: b.String()}
}

func buildChapterPage(i int, ch tutorial.Chapter) Document {
	title := ch.Title
	if title == "" {
		title = fmt.Sprintf("Chapter %d", i+1)
	}
	slug := Slug(title)
	if slug == "" {
		slug = "chapter"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString(strings.TrimRight(ch.Content, "\n"))
	b.WriteString("\n")

	return Document{
		Path:    fmt.Sprintf("chapters/%02d-%s.md", i+1, slug),
		Title:   title,
		Content: b.String(),
	}
}

func buildDiagramsPage(diagrams []tutorial.Diagram, svgs map[int]string) Document {
	var b strings.Builder
	b.WriteString("# Diagrams\n")
	for i, d := range diagrams {
		fmt.Fprintf(&b, "\n## %s\n\n", d.Title)
		if d.Description != "" {
			b.WriteString(d.Description)
			b.WriteString("\n\n")
		}
		if svg, ok := svgs[i]; ok {
			fmt.Fprintf(&b, "![%s](%s)\n\n", d.Title, svg)
		}
		output.WriteFence(&b, "mermaid", d.Content)
	}
	return Document{Path: "diagrams.md", Title: "Diagrams", Content: b.String()}
}

func buildCodePage(snippets []tutorial.CodeSnippet) Document {
	var b strings.Builder
	b.WriteString("# Code Snippets\n")
	for _, s := range snippets {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Title)
		if s.Description != "" {
			b.WriteString(s.Description)
			b.WriteString("\n\n")
		}
		output.WriteFence(&b, s.Language, s.Code)
	}
	return Document{Path: "code.md", Title: "Code Snippets", Content: b.String()}
}
