package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianshen/codexplain/internal/diagram"
	"github.com/julianshen/codexplain/internal/highlight"
	"github.com/julianshen/codexplain/internal/i18n"
	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// ViewerState is the fetch state of the tutorial viewer.
type ViewerState int

const (
	ViewerLoading ViewerState = iota
	ViewerLoaded
	ViewerFailed
)

func (s ViewerState) String() string {
	switch s {
	case ViewerLoaded:
		return "loaded"
	case ViewerFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Tab indices of the tutorial viewer.
const (
	TabChapters = iota
	TabDiagrams
	TabCode
	tabCount
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(lipgloss.Color("205"))
	panelTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	failureStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)
)

// renderKit bundles what page rendering needs from the model.
type renderKit struct {
	tr       *i18n.Translations
	md       *MarkdownRenderer
	hl       *highlight.Highlighter
	diagrams diagram.Renderer
	width    int
}

// Viewer shows one tutorial. It is keyed by id: a different id gets a new
// Viewer.
type Viewer struct {
	id       string
	state    ViewerState
	tutorial *tutorial.Tutorial
	failure  string
	tab      int
	snippet  int
	menu     *ActionMenu

	token  uint64
	cancel context.CancelFunc

	renderer diagram.Renderer
	diagrams []*diagram.View
	cache    map[int]string
}

// NewViewer creates a viewer for id in the Loading state.
func NewViewer(id string, r diagram.Renderer) *Viewer {
	return &Viewer{id: id, state: ViewerLoading, renderer: r, cache: make(map[int]string)}
}

// ID returns the tutorial id this viewer shows.
func (v *Viewer) ID() string { return v.id }

// State returns the fetch state.
func (v *Viewer) State() ViewerState { return v.state }

// Tutorial returns the loaded tutorial, or nil unless Loaded.
func (v *Viewer) Tutorial() *tutorial.Tutorial { return v.tutorial }

// Failure returns the reason shown in the Failed state.
func (v *Viewer) Failure() string { return v.failure }

// Tab returns the visible tab.
func (v *Viewer) Tab() int { return v.tab }

// SetTab shows tab i. Out-of-range values are ignored.
func (v *Viewer) SetTab(i int) {
	if i >= 0 && i < tabCount {
		v.tab = i
	}
}

func (v *Viewer) nextTab() { v.tab = (v.tab + 1) % tabCount }
func (v *Viewer) prevTab() { v.tab = (v.tab + tabCount - 1) % tabCount }

// Snippet returns the index of the selected code snippet.
func (v *Viewer) Snippet() int { return v.snippet }

func (v *Viewer) selectSnippet(delta int) {
	if v.tutorial == nil || len(v.tutorial.CodeSnippets) == 0 {
		return
	}
	n := min(max(v.snippet+delta, 0), len(v.tutorial.CodeSnippets)-1)
	if n != v.snippet {
		v.snippet = n
		delete(v.cache, TabCode)
	}
}

func (v *Viewer) selectedSnippet() (tutorial.CodeSnippet, bool) {
	if v.tutorial == nil || v.snippet >= len(v.tutorial.CodeSnippets) {
		return tutorial.CodeSnippet{}, false
	}
	return v.tutorial.CodeSnippets[v.snippet], true
}

func (v *Viewer) begin(token uint64, cancel context.CancelFunc) {
	v.cancelFetch()
	v.token = token
	v.cancel = cancel
	v.state = ViewerLoading
	v.failure = ""
	v.menu = nil
}

func (v *Viewer) cancelFetch() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *Viewer) load(t *tutorial.Tutorial) {
	v.cancelFetch()
	v.state = ViewerLoaded
	v.tutorial = t
	v.failure = ""
	v.snippet = 0
	v.diagrams = make([]*diagram.View, len(t.Diagrams))
	for i := range v.diagrams {
		v.diagrams[i] = diagram.NewView(v.renderer)
	}
	v.invalidate()
}

func (v *Viewer) fail(reason string) {
	v.cancelFetch()
	v.state = ViewerFailed
	v.tutorial = nil
	v.failure = reason
}

// SetDiagramRenderer swaps the renderer used for the Diagrams tab.
func (v *Viewer) SetDiagramRenderer(r diagram.Renderer) {
	v.renderer = r
	for _, d := range v.diagrams {
		d.SetRenderer(r)
	}
	v.invalidate()
}

func (v *Viewer) invalidate() { clear(v.cache) }

// DiagramID is the page-unique key of diagram i.
func (v *Viewer) DiagramID(i int) string { return fmt.Sprintf("%s-diagram-%d", v.id, i+1) }

// View renders the viewer for its current state.
func (v *Viewer) View(k renderKit, spinner string) string {
	switch v.state {
	case ViewerLoading:
		return spinner + " " + k.tr.T("viewer.loading")
	case ViewerFailed:
		var b strings.Builder
		b.WriteString(failureStyle.Width(min(max(k.width-4, 20), 80)).Render(
			k.tr.T("viewer.failed_title") + "\n" + v.failure))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(k.tr.T("viewer.retry_hint")))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(v.tutorial.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(k.tr.Tf("viewer.generated", map[string]any{"Date": v.tutorial.GeneratedAt.Display()})))
	b.WriteString("\n\n")
	b.WriteString(v.tabBar(k))
	b.WriteString("\n\n")

	body, ok := v.cache[v.tab]
	if !ok {
		body = v.renderTab(k)
		v.cache[v.tab] = body
	}
	b.WriteString(body)
	return b.String()
}

func (v *Viewer) tabBar(k renderKit) string {
	t := v.tutorial
	labels := []string{
		k.tr.Tf("viewer.tab_chapters", map[string]any{"Count": len(t.Chapters)}),
		k.tr.Tf("viewer.tab_diagrams", map[string]any{"Count": len(t.Diagrams)}),
		k.tr.Tf("viewer.tab_code", map[string]any{"Count": len(t.CodeSnippets)}),
	}
	tabs := make([]string, len(labels))
	for i, l := range labels {
		l = fmt.Sprintf("%d %s", i+1, l)
		if i == v.tab {
			tabs[i] = activeTabStyle.Render(l)
		} else {
			tabs[i] = tabStyle.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *Viewer) renderTab(k renderKit) string {
	switch v.tab {
	case TabDiagrams:
		return v.renderDiagrams(k)
	case TabCode:
		return v.renderCode(k)
	default:
		return v.renderChapters(k)
	}
}

func (v *Viewer) renderChapters(k renderKit) string {
	chapters := v.tutorial.Chapters
	if len(chapters) == 0 {
		return mutedStyle.Render(k.tr.T("viewer.no_chapters"))
	}
	var b strings.Builder
	for i, c := range chapters {
		title := c.Title
		if strings.TrimSpace(title) == "" {
			title = k.tr.Tf("viewer.chapter_untitled", map[string]any{"Number": i + 1})
		}
		b.WriteString(panelTitle.Render(fmt.Sprintf("%d. %s", i+1, title)))
		b.WriteString("\n")
		body, err := k.md.Render(c.Content)
		if err != nil {
			logger.Warn(context.Background(), "rendering chapter markdown", "chapter", i+1, "error", err)
			body = c.Content
		}
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *Viewer) renderDiagrams(k renderKit) string {
	diagrams := v.tutorial.Diagrams
	if len(diagrams) == 0 {
		return mutedStyle.Render(k.tr.T("viewer.no_diagrams"))
	}
	var b strings.Builder
	for i, d := range diagrams {
		title := d.Title
		if strings.TrimSpace(title) == "" {
			title = k.tr.Tf("viewer.diagram_untitled", map[string]any{"Number": i + 1})
		}
		b.WriteString(panelTitle.Render(title))
		b.WriteString("\n")
		view := v.diagrams[i]
		view.SetInput(v.DiagramID(i), d.Content)
		b.WriteString(view.Output())
		b.WriteString("\n")
		if d.Description != "" {
			b.WriteString(mutedStyle.Render(d.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// fetchTutorial starts (or restarts) the fetch for the current viewer.
func (m *Model) fetchTutorial() tea.Cmd {
	v := m.viewer
	if v == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.begin(m.nextToken(), cancel)

	backend, id, token := m.backend, v.id, v.token
	logger.Debug(ctx, "fetching tutorial", "id", id)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		if backend == nil {
			return tutorialLoadedMsg{token: token, id: id, err: errors.New("no backend configured")}
		}
		t, err := backend.GetTutorial(ctx, id)
		return tutorialLoadedMsg{token: token, id: id, tutorial: t, err: err}
	})
}

func (m *Model) handleTutorialLoaded(msg tutorialLoadedMsg) tea.Cmd {
	v := m.viewer
	if v == nil || v.state != ViewerLoading || v.token != msg.token || v.id != msg.id {
		logger.Debug(context.Background(), "dropping stale tutorial", "id", msg.id, "token", msg.token)
		return nil
	}

	switch {
	case msg.err != nil && errors.Is(msg.err, context.Canceled):
		return nil
	case msg.err != nil:
		logger.Error(context.Background(), "fetching tutorial failed", msg.err, "id", msg.id)
		v.fail(m.failureText(msg.err, "viewer.error_generic"))
		return nil
	case msg.tutorial == nil:
		v.fail(m.tr.T("viewer.error_generic"))
		return nil
	}

	v.load(msg.tutorial)
	return m.recordTitle(v.id, msg.tutorial.Title)
}

func (m *Model) handleViewerKey(msg tea.KeyMsg) tea.Cmd {
	v := m.viewer
	if v == nil {
		return nil
	}
	km := m.keys

	if v.menu != nil {
		return m.handleMenuKey(msg)
	}

	switch v.state {
	case ViewerLoading:
		return nil
	case ViewerFailed:
		if key.Matches(msg, km.Retry) {
			return m.fetchTutorial()
		}
		return nil
	}

	switch {
	case key.Matches(msg, km.NextField), key.Matches(msg, km.Right):
		v.nextTab()
		m.viewport.GotoTop()
	case key.Matches(msg, km.PrevField), key.Matches(msg, km.Left):
		v.prevTab()
		m.viewport.GotoTop()
	case key.Matches(msg, km.Tab1):
		v.SetTab(TabChapters)
		m.viewport.GotoTop()
	case key.Matches(msg, km.Tab2):
		v.SetTab(TabDiagrams)
		m.viewport.GotoTop()
	case key.Matches(msg, km.Tab3):
		v.SetTab(TabCode)
		m.viewport.GotoTop()
	case key.Matches(msg, km.Up):
		if v.tab == TabCode {
			v.selectSnippet(-1)
		} else {
			m.viewport.ScrollUp(1)
		}
	case key.Matches(msg, km.Down):
		if v.tab == TabCode {
			v.selectSnippet(1)
		} else {
			m.viewport.ScrollDown(1)
		}
	case key.Matches(msg, km.Copy):
		return m.copySnippet()
	case key.Matches(msg, km.Open):
		return m.openSnippet()
	case key.Matches(msg, km.Share):
		return m.share()
	case key.Matches(msg, km.Download):
		return m.download()
	case key.Matches(msg, km.Menu):
		v.menu = NewActionMenu()
	case key.Matches(msg, km.Retry):
		return m.fetchTutorial()
	}
	return nil
}

func (m *Model) share() tea.Cmd {
	v := m.viewer
	if v == nil || v.tutorial == nil {
		return nil
	}
	sharer, t, timeout := m.sharer, v.tutorial, m.cfg.API.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := actionContext(timeout)
		defer cancel()
		link, err := sharer.Share(ctx, t)
		return actionDoneMsg{kind: actionShare, result: link, err: err}
	}
}

func (m *Model) download() tea.Cmd {
	v := m.viewer
	if v == nil || v.tutorial == nil {
		return nil
	}
	downloader, t, timeout := m.downloader, v.tutorial, m.cfg.API.Timeout
	return tea.Batch(m.notify(m.tr.T("notice.downloading"), false), func() tea.Msg {
		ctx, cancel := actionContext(timeout)
		defer cancel()
		path, err := downloader.Download(ctx, t)
		return actionDoneMsg{kind: actionDownload, result: path, err: err}
	})
}

func actionContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
