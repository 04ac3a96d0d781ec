package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	brandStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	navLinkStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	navCurrentStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"})
)

// navLink is one entry of the navigation bar.
type navLink struct {
	label   string
	hint    string
	current bool
}

// navLinks returns the links for the current route and width. The
// Documentation link only appears when the terminal is wide enough.
func (m *Model) navLinks() []navLink {
	links := []navLink{
		{label: m.tr.T("nav.home"), hint: "h", current: m.route.Page == PageHome},
		{label: m.tr.T("nav.generate"), hint: "g", current: m.route.Page == PageGenerate},
	}
	if m.docsVisible() {
		links = append(links, navLink{label: m.tr.T("nav.docs"), hint: "?"})
	}
	return links
}

// navView renders the navigation bar.
func (m *Model) navView() string {
	var b strings.Builder
	b.WriteString(brandStyle.Render(m.appName))
	b.WriteString(" ")
	for _, l := range m.navLinks() {
		text := l.label + " (" + l.hint + ")"
		if l.current {
			b.WriteString(navCurrentStyle.Render(text))
		} else {
			b.WriteString(navLinkStyle.Render(text))
		}
	}
	if m.route.Page == PageTutorial {
		b.WriteString(mutedStyle.Render(" " + m.route.Path()))
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(b.String())
}
