package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianshen/codexplain/internal/i18n"
)

// menuAction is an entry of the viewer's secondary action menu.
type menuAction int

const (
	menuShare menuAction = iota
	menuDownload
	menuReload
	menuNew
)

var menuLabels = map[menuAction]string{
	menuShare:    "menu.share",
	menuDownload: "menu.download",
	menuReload:   "menu.reload",
	menuNew:      "menu.new",
}

var menuStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

// ActionMenu is the small popup listing the viewer's secondary actions.
type ActionMenu struct {
	items  []menuAction
	cursor int
}

// NewActionMenu creates the menu with the first item selected.
func NewActionMenu() *ActionMenu {
	return &ActionMenu{items: []menuAction{menuShare, menuDownload, menuReload, menuNew}}
}

func (a *ActionMenu) up() {
	if a.cursor > 0 {
		a.cursor--
	}
}

func (a *ActionMenu) down() {
	if a.cursor < len(a.items)-1 {
		a.cursor++
	}
}

func (a *ActionMenu) selected() menuAction { return a.items[a.cursor] }

func (a *ActionMenu) View(tr *i18n.Translations) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(tr.T("menu.title")))
	for i, item := range a.items {
		b.WriteString("\n")
		if i == a.cursor {
			b.WriteString(selectedStyle.Render("› " + tr.T(menuLabels[item])))
		} else {
			b.WriteString("  " + tr.T(menuLabels[item]))
		}
	}
	return menuStyle.Render(b.String())
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	v := m.viewer
	menu := v.menu
	km := m.keys
	switch {
	case key.Matches(msg, km.Up):
		menu.up()
	case key.Matches(msg, km.Down):
		menu.down()
	case key.Matches(msg, km.Dismiss), key.Matches(msg, km.Menu):
		v.menu = nil
	case key.Matches(msg, km.Enter):
		v.menu = nil
		switch menu.selected() {
		case menuShare:
			return m.share()
		case menuDownload:
			return m.download()
		case menuReload:
			return m.fetchTutorial()
		case menuNew:
			return m.navigate(GenerateRoute())
		}
	}
	return nil
}
