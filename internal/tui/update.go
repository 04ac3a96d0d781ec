package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianshen/codexplain/internal/api"
	"github.com/julianshen/codexplain/internal/highlight"
	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// Init implements tea.Model. It mounts the start route and probes the
// backend.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.mount(), m.checkHealth())
}

// Update implements tea.Model. It processes incoming messages and returns the
// updated model and any commands to execute.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncContent()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.forwardToOverlay(msg)

	case generateResultMsg:
		return m.handleGenerateResult(msg)

	case tutorialLoadedMsg:
		return m.handleTutorialLoaded(msg)

	case healthMsg:
		m.handleHealth(msg)
		return nil

	case historyLoadedMsg:
		if msg.err != nil {
			logger.Warn(context.Background(), "loading history", "error", msg.err)
			return nil
		}
		if m.landing != nil {
			m.landing.SetEntries(msg.entries)
		}
		return nil

	case historySavedMsg:
		logger.Warn(context.Background(), "writing history", "error", msg.err)
		return nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.statusBar.SetNotice("", false)
		}
		return nil

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
		return nil
	}

	if m.state != StateBrowse {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.Type {
			case tea.KeyCtrlC:
				return m.quit()
			case tea.KeyEsc:
				m.closeOverlay()
				return nil
			}
		}
		return m.forwardToOverlay(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	if m.form != nil {
		// Cursor blink and similar widget messages.
		return m.form.updateInputs(msg)
	}
	return nil
}

// busy reports whether a request is in flight on the current page.
func (m *Model) busy() bool {
	switch m.route.Page {
	case PageGenerate:
		return m.form != nil && m.form.Pending()
	case PageTutorial:
		return m.viewer != nil && m.viewer.State() == ViewerLoading
	}
	return false
}

// handleKeyMsg processes keyboard input for the current page.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Ctrl+C always quits, regardless of state.
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	km := m.keys
	switch {
	case key.Matches(msg, km.Settings):
		return m.openConfig()
	case key.Matches(msg, km.HomeAlt):
		return m.navigate(HomeRoute())
	case key.Matches(msg, km.GenAlt):
		return m.navigate(GenerateRoute())
	case key.Matches(msg, km.DocsAlt):
		return m.openDocs()
	case key.Matches(msg, km.PageUp):
		m.viewport.PageUp()
		return nil
	case key.Matches(msg, km.PageDown):
		m.viewport.PageDown()
		return nil
	}

	if !m.textEntry() && !m.menuOpen() {
		switch {
		case key.Matches(msg, km.Quit):
			return m.quit()
		case key.Matches(msg, km.Home):
			return m.navigate(HomeRoute())
		case key.Matches(msg, km.Generate):
			return m.navigate(GenerateRoute())
		case key.Matches(msg, km.Docs):
			return m.openDocs()
		}
	}

	switch m.route.Page {
	case PageGenerate:
		return m.handleGenerateKey(msg)
	case PageTutorial:
		return m.handleViewerKey(msg)
	default:
		return m.handleLandingKey(msg)
	}
}

func (m *Model) menuOpen() bool {
	return m.route.Page == PageTutorial && m.viewer != nil && m.viewer.menu != nil
}

func (m *Model) quit() tea.Cmd {
	m.unmount()
	m.quitting = true
	return tea.Quit
}

// navigate switches to r. Leaving a page cancels its in-flight request and
// discards its state; navigating to the current route does nothing.
func (m *Model) navigate(r Route) tea.Cmd {
	if r == m.route {
		return nil
	}
	logger.Debug(context.Background(), "navigate", "from", m.route.Path(), "to", r.Path())
	m.unmount()
	m.route = r
	m.viewport.GotoTop()
	return m.mount()
}

// mount creates the state for the current route and starts its loads.
func (m *Model) mount() tea.Cmd {
	switch m.route.Page {
	case PageGenerate:
		m.form = NewGenerateForm(m.cfg.Generate)
		return m.form.Focus(fieldRepo)
	case PageTutorial:
		m.viewer = NewViewer(m.route.ID, m.diagramRenderer)
		return m.fetchTutorial()
	default:
		m.landing = NewLanding()
		return m.loadHistory()
	}
}

// unmount tears down the current page.
func (m *Model) unmount() {
	if m.form != nil {
		m.form.cancelPending()
		m.form = nil
	}
	if m.viewer != nil {
		m.viewer.cancelFetch()
		m.viewer = nil
	}
	m.landing = nil
	if m.state == StatePatternPrompt {
		m.state = StateBrowse
	}
}

// syncContent puts the current page into the viewport.
func (m *Model) syncContent() {
	m.viewport.SetContent(m.pageView())
}

func (m *Model) handleGenerateKey(msg tea.KeyMsg) tea.Cmd {
	if m.form == nil {
		return nil
	}
	intent, cmd := m.form.HandleKey(msg, m.keys)
	switch intent {
	case intentSubmit:
		return tea.Batch(cmd, m.submitGenerate())
	case intentAddPattern:
		return m.openPatternPrompt()
	}
	return cmd
}

// submitGenerate validates the form and issues the generation request. It
// does nothing while a request is already pending.
func (m *Model) submitGenerate() tea.Cmd {
	f := m.form
	if f == nil || f.pending {
		return nil
	}
	req := f.Request()
	if err := req.Validate(); err != nil {
		f.validation = m.tr.T("generate.validation_repo")
		return nil
	}
	f.validation = ""

	ctx, cancel := context.WithCancel(context.Background())
	f.pending = true
	f.cancel = cancel
	f.token = m.nextToken()
	f.submitted = req

	backend, token := m.backend, f.token
	logger.Info(ctx, "generating tutorial", "repo", req.RepoURL, "language", req.Language)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		if backend == nil {
			return generateResultMsg{token: token, err: errors.New("no backend configured")}
		}
		id, err := backend.GenerateTutorial(ctx, req)
		return generateResultMsg{token: token, id: id, err: err}
	})
}

func (m *Model) handleGenerateResult(msg generateResultMsg) tea.Cmd {
	f := m.form
	if f == nil || !f.pending || msg.token != f.token {
		logger.Debug(context.Background(), "dropping stale generation result", "token", msg.token)
		return nil
	}
	f.cancelPending()

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		logger.Error(context.Background(), "generation failed", msg.err)
		f.alert = m.failureText(msg.err, "generate.error_generic")
		return nil
	}

	req := f.submitted
	return tea.Batch(m.recordHistory(msg.id, req), m.navigate(TutorialRoute(msg.id)))
}

// failureText picks what the user sees for err.
func (m *Model) failureText(err error, fallbackID string) string {
	if errors.Is(err, api.ErrTimeout) {
		return m.tr.T("error.timeout")
	}
	return api.UserMessage(err, m.tr.T(fallbackID))
}

func (m *Model) openPatternPrompt() tea.Cmd {
	if m.form == nil {
		return nil
	}
	list, ok := m.form.focusedList()
	if !ok {
		return nil
	}
	title := m.tr.T("generate.add_include")
	placeholder := "*.go"
	if list == excludeList {
		title = m.tr.T("generate.add_exclude")
		placeholder = "vendor/*"
	}
	m.form.prompt = NewPatternPrompt(list, title, placeholder, m.width)
	m.state = StatePatternPrompt
	return m.form.prompt.Init()
}

// forwardToOverlay hands msg to the open overlay, if any, and closes it
// once it finishes.
func (m *Model) forwardToOverlay(msg tea.Msg) tea.Cmd {
	switch m.state {
	case StatePatternPrompt:
		if m.form == nil || m.form.prompt == nil {
			m.state = StateBrowse
			return nil
		}
		p := m.form.prompt
		cmd := p.Update(msg)
		switch {
		case p.IsCompleted():
			m.form.AddPattern(p.Target(), p.Value())
			m.closeOverlay()
		case p.IsAborted():
			m.closeOverlay()
		}
		return cmd

	case StateConfigOverlay:
		if m.configForm == nil {
			m.state = StateBrowse
			return nil
		}
		form, cmd := m.configForm.Form().Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.configForm.SetForm(f)
		}
		switch m.configForm.Form().State {
		case huh.StateCompleted:
			saveCmd := m.applyConfig()
			m.closeOverlay()
			return tea.Batch(cmd, saveCmd)
		case huh.StateAborted:
			m.closeOverlay()
		}
		return cmd
	}
	return nil
}

func (m *Model) closeOverlay() {
	if m.form != nil {
		m.form.closePrompt()
	}
	m.configForm = nil
	m.state = StateBrowse
}

func (m *Model) openConfig() tea.Cmd {
	m.configForm = NewConfigForm(m.cfg, m.configPath)
	m.state = StateConfigOverlay
	return m.configForm.Form().Init()
}

// applyConfig saves the edited config and brings the running client in
// line with it.
func (m *Model) applyConfig() tea.Cmd {
	var cmds []tea.Cmd
	if err := m.configForm.Save(); err != nil {
		logger.Error(context.Background(), "saving config", err)
		cmds = append(cmds, m.notify(m.tr.Tf("notice.config_failed", map[string]any{"Error": err.Error()}), true))
	} else {
		cmds = append(cmds, m.notify(m.tr.T("notice.config_saved"), false))
	}

	if err := m.tr.SetLanguage(m.cfg.UI.Locale); err != nil {
		logger.Warn(context.Background(), "unsupported locale", "locale", m.cfg.UI.Locale, "error", err)
	}
	m.highlighter = highlight.New(m.cfg.UI.CodeStyle)
	if m.newBackend != nil {
		m.backend = m.newBackend(m.cfg)
		m.statusBar.SetBackend(m.backend.BaseURL())
		m.statusBar.SetHealth(HealthUnknown, "")
		cmds = append(cmds, m.checkHealth())
	}
	m.invalidate()
	return tea.Batch(cmds...)
}

func (m *Model) checkHealth() tea.Cmd {
	backend := m.backend
	if backend == nil {
		return nil
	}
	timeout := m.cfg.API.FetchTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		h, err := backend.CheckHealth(ctx)
		return healthMsg{health: h, err: err}
	}
}

func (m *Model) handleHealth(msg healthMsg) {
	switch {
	case msg.err == nil && msg.health != nil:
		m.statusBar.SetHealth(HealthOK, msg.health.Version)
	case errors.Is(msg.err, api.ErrIncompatibleBackend) && msg.health != nil:
		m.statusBar.SetHealth(HealthIncompatible, msg.health.Version)
	default:
		logger.Warn(context.Background(), "backend health check failed", "error", msg.err)
		m.statusBar.SetHealth(HealthUnreachable, "")
	}
}

func (m *Model) healthLabel(state HealthState, version string) string {
	switch state {
	case HealthOK:
		return m.tr.Tf("status.health_ok", map[string]any{"Version": formatVersion(version)})
	case HealthIncompatible:
		return m.tr.Tf("status.health_incompatible", map[string]any{"Version": formatVersion(version)})
	case HealthUnreachable:
		return m.tr.T("status.health_unreachable")
	}
	return ""
}

func (m *Model) loadHistory() tea.Cmd {
	h := m.history
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := h.Recent(recentLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) recordHistory(id string, req tutorial.GenerationRequest) tea.Cmd {
	h := m.history
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		if err := h.RecordGeneration(id, req); err != nil {
			return historySavedMsg{err: err}
		}
		return nil
	}
}

func (m *Model) recordTitle(id, title string) tea.Cmd {
	h := m.history
	if h == nil || title == "" {
		return nil
	}
	return func() tea.Msg {
		if err := h.SetTitle(id, title); err != nil {
			return historySavedMsg{err: err}
		}
		return nil
	}
}

// notify shows msg in the status bar until a newer notice replaces it or
// it expires.
func (m *Model) notify(msg string, isError bool) tea.Cmd {
	return m.notifyFor(msg, isError, noticeDuration)
}

func (m *Model) notifyFor(msg string, isError bool, d time.Duration) tea.Cmd {
	m.noticeSeq++
	seq := m.noticeSeq
	m.statusBar.SetNotice(msg, isError)
	return tea.Tick(d, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m *Model) openDocs() tea.Cmd {
	if !m.docsVisible() {
		return nil
	}
	return m.openURL(actionDocs, m.cfg.UI.DocsURL)
}

func (m *Model) openURL(kind actionKind, url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		return actionDoneMsg{kind: kind, err: opener.Open(url)}
	}
}

func (m *Model) handleActionDone(msg actionDoneMsg) tea.Cmd {
	if msg.err != nil {
		logger.Warn(context.Background(), "action failed", "action", msg.kind, "error", msg.err)
	}
	unavailable := errors.Is(msg.err, ErrActionUnavailable)
	switch msg.kind {
	case actionCopy:
		if msg.err != nil {
			return m.notify(m.tr.T("notice.copy_failed"), true)
		}
		return m.notifyFor(m.tr.T("notice.copied"), false, copiedNoticeDuration)
	case actionOpen, actionDocs:
		if msg.err != nil {
			return m.notify(m.tr.T("notice.open_failed"), true)
		}
		return m.notify(m.tr.T("notice.opened"), false)
	case actionShare:
		switch {
		case unavailable:
			return m.notify(m.tr.T("notice.share_unavailable"), true)
		case msg.err != nil:
			return m.notify(m.tr.Tf("notice.share_failed", map[string]any{"Error": msg.err.Error()}), true)
		}
		return m.notify(m.tr.Tf("notice.shared", map[string]any{"Link": msg.result}), false)
	case actionDownload:
		switch {
		case unavailable:
			return m.notify(m.tr.T("notice.download_unavailable"), true)
		case msg.err != nil:
			return m.notify(m.tr.Tf("notice.download_failed", map[string]any{"Error": msg.err.Error()}), true)
		}
		return m.notify(m.tr.Tf("notice.downloaded", map[string]any{"Path": msg.result}), false)
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (k actionKind) String() string {
	switch k {
	case actionCopy:
		return "copy"
	case actionOpen:
		return "open"
	case actionShare:
		return "share"
	case actionDownload:
		return "download"
	case actionDocs:
		return "docs"
	}
	return fmt.Sprintf("action(%d)", int(k))
}
