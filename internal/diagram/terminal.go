package diagram

import (
	"encoding/base64"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPreviewURL is the external mermaid renderer used for preview links.
const DefaultPreviewURL = "https://mermaid.ink/svg/"

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	placeholderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("196")).
				Foreground(lipgloss.Color("196")).
				Padding(0, 1)
)

// TerminalRenderer draws the diagram text in a bordered panel followed by a
// link to an external renderer that produces the picture.
type TerminalRenderer struct {
	// PreviewURL is the prefix the base64url-encoded source is appended to.
	// Empty disables the link.
	PreviewURL string
	// Width is the total panel width; zero sizes to content.
	Width int
}

// NewTerminalRenderer returns a renderer using the given preview service.
func NewTerminalRenderer(previewURL string, width int) *TerminalRenderer {
	return &TerminalRenderer{PreviewURL: previewURL, Width: width}
}

func (r *TerminalRenderer) Render(id, source string) (string, error) {
	source = strings.TrimRight(source, "\n")
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptySource
	}

	style := panelStyle
	if r.Width > 4 {
		style = style.Width(r.Width - 2)
	}
	out := style.Render(source)

	if link := r.PreviewLink(source); link != "" {
		out += "\n" + linkStyle.Render(link)
	}
	return out, nil
}

// PreviewLink returns the external preview URL for source.
func (r *TerminalRenderer) PreviewLink(source string) string {
	if r.PreviewURL == "" {
		return ""
	}
	return r.PreviewURL + base64.URLEncoding.EncodeToString([]byte(source))
}
