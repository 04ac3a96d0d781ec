package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianshen/codexplain/internal/i18n"
	"github.com/julianshen/codexplain/internal/store"
)

var (
	ctaStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("230"))
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Landing is the home page: what the tool does, a call to action, and the
// tutorials this client generated recently.
type Landing struct {
	entries []store.Entry
	cursor  int
}

// NewLanding creates an empty landing page.
func NewLanding() *Landing { return &Landing{} }

// SetEntries replaces the recent tutorials list.
func (l *Landing) SetEntries(entries []store.Entry) {
	l.entries = entries
	l.cursor = min(l.cursor, max(len(entries)-1, 0))
}

// Entries returns the recent tutorials shown.
func (l *Landing) Entries() []store.Entry { return l.entries }

// Selected returns the highlighted recent tutorial.
func (l *Landing) Selected() (store.Entry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return store.Entry{}, false
	}
	return l.entries[l.cursor], true
}

func (l *Landing) View(tr *i18n.Translations, width int, name string) string {
	var b strings.Builder
	b.WriteString(renderBanner(width, name))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(tr.T("landing.headline")))
	b.WriteString("\n")
	b.WriteString(tr.T("landing.intro"))
	b.WriteString("\n\n")

	cardWidth := min(max(width-4, 20), 76)
	cards := []string{
		tr.T("landing.output_chapters"),
		tr.T("landing.output_diagrams"),
		tr.T("landing.output_code"),
	}
	if width >= 100 {
		w := (cardWidth - 6) / 3
		rendered := make([]string, len(cards))
		for i, c := range cards {
			rendered[i] = cardStyle.Width(w).Render(c)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	} else {
		for i, c := range cards {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(cardStyle.Width(cardWidth).Render(c))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(tr.T("landing.how_title")))
	b.WriteString("\n")
	for i, step := range []string{"landing.how_step1", "landing.how_step2", "landing.how_step3"} {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, tr.T(step))
	}
	b.WriteString("\n")
	b.WriteString(ctaStyle.Render(tr.T("landing.cta")))
	b.WriteString("\n")

	if len(l.entries) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(tr.T("landing.recent_title")))
		b.WriteString("\n")
		for i, e := range l.entries {
			title := e.Title
			if title == "" {
				title = e.RepoURL
			}
			if title == "" {
				title = e.ID
			}
			line := fmt.Sprintf("%s  %s", title, mutedStyle.Render(e.CreatedAt.Local().Format("Jan 2 15:04")))
			if i == l.cursor {
				b.WriteString(selectedStyle.Render("› ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render(tr.T("landing.recent_hint")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) handleLandingKey(msg tea.KeyMsg) tea.Cmd {
	l := m.landing
	km := m.keys
	switch {
	case key.Matches(msg, km.Enter):
		return m.navigate(GenerateRoute())
	case l == nil:
		return nil
	case key.Matches(msg, km.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, km.Down):
		if l.cursor < len(l.entries)-1 {
			l.cursor++
		}
	case key.Matches(msg, km.Open):
		if e, ok := l.Selected(); ok {
			return m.navigate(TutorialRoute(e.ID))
		}
	}
	return nil
}
