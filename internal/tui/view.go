package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Style definitions for the TUI view.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"})
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"})
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)
)

// View implements tea.Model. It renders the TUI as a string.
func (m *Model) View() string {
	if m.quitting {
		return m.tr.T("app.goodbye") + "\n"
	}

	var b strings.Builder

	// Navigation
	b.WriteString(m.navView())
	b.WriteString("\n")

	// Divider
	dividerWidth := m.width
	if dividerWidth < 1 {
		dividerWidth = 80
	}
	b.WriteString(strings.Repeat("─", dividerWidth))
	b.WriteString("\n")

	// Page, or the open overlay centred over the page area.
	if overlay := m.overlayView(); overlay != "" {
		b.WriteString(lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, overlay))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(m.statusBar.View())
	b.WriteString("\n")
	b.WriteString(m.helpView())

	return b.String()
}

// pageView renders the body of the current route.
func (m *Model) pageView() string {
	switch m.route.Page {
	case PageGenerate:
		if m.form == nil {
			return ""
		}
		return m.form.View(m.tr, m.spinner.View(), m.viewport.Width)
	case PageTutorial:
		if m.viewer == nil {
			return ""
		}
		return m.viewer.View(m.kit(), m.spinner.View())
	default:
		if m.landing == nil {
			return ""
		}
		return m.landing.View(m.tr, m.viewport.Width, m.appName)
	}
}

func (m *Model) overlayView() string {
	switch m.state {
	case StateConfigOverlay:
		if m.configForm != nil {
			return overlayStyle.Render(m.tr.T("config.title") + "\n\n" + m.configForm.Form().View())
		}
	case StatePatternPrompt:
		if m.form != nil && m.form.prompt != nil {
			return overlayStyle.Render(m.form.prompt.View())
		}
	default:
		if m.menuOpen() {
			return m.viewer.menu.View(m.tr)
		}
	}
	return ""
}

// helpView lists the bindings that apply right now.
func (m *Model) helpView() string {
	km := m.keys
	var bindings []key.Binding
	switch {
	case m.state != StateBrowse:
		bindings = []key.Binding{km.Enter, km.Dismiss}
	case m.menuOpen():
		bindings = []key.Binding{km.Up, km.Down, km.Enter, km.Dismiss}
	case m.route.Page == PageGenerate:
		bindings = []key.Binding{km.NextField, km.Submit, km.AddItem, km.DelItem, km.HomeAlt}
	case m.route.Page == PageTutorial && m.viewer != nil && m.viewer.State() == ViewerFailed:
		bindings = []key.Binding{km.Retry, km.Home, km.Generate}
	case m.route.Page == PageTutorial:
		bindings = []key.Binding{km.NextField, km.Copy, km.Open, km.Share, km.Download, km.Menu}
	default:
		bindings = []key.Binding{km.Enter, km.Open, km.Generate}
	}
	bindings = append(bindings, km.Settings, km.Quit)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+m.tr.T("help."+h.Desc))
	}
	return helpStyle.MaxWidth(max(m.width, 1)).Render(strings.Join(parts, " · "))
}
