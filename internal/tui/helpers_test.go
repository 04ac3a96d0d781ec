package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/codexplain/internal/api"
	"github.com/julianshen/codexplain/internal/config"
	"github.com/julianshen/codexplain/internal/i18n"
	"github.com/julianshen/codexplain/internal/store"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// fakeBackend records every call. When block is set, GenerateTutorial and
// GetTutorial wait for it to close or for their context to end.
type fakeBackend struct {
	mu        sync.Mutex
	genReqs   []tutorial.GenerationRequest
	genID     string
	genErr    error
	getCalls  []string
	tutorials map[string]*tutorial.Tutorial
	getErr    error
	block     chan struct{}
	cancelled chan struct{}
	health    *api.Health
	healthErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		genID:     "abc123",
		tutorials: map[string]*tutorial.Tutorial{},
		cancelled: make(chan struct{}, 4),
		health:    &api.Health{Status: "healthy", Version: "1.0.0", Compatible: true},
	}
}

func (f *fakeBackend) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		f.cancelled <- struct{}{}
		return ctx.Err()
	}
}

func (f *fakeBackend) GenerateTutorial(ctx context.Context, req tutorial.GenerationRequest) (string, error) {
	f.mu.Lock()
	f.genReqs = append(f.genReqs, req)
	id, err := f.genID, f.genErr
	f.mu.Unlock()
	if werr := f.wait(ctx); werr != nil {
		return "", werr
	}
	return id, err
}

func (f *fakeBackend) GetTutorial(ctx context.Context, id string) (*tutorial.Tutorial, error) {
	f.mu.Lock()
	f.getCalls = append(f.getCalls, id)
	t, err := f.tutorials[id], f.getErr
	f.mu.Unlock()
	if werr := f.wait(ctx); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &api.Error{StatusCode: 404, Message: "Tutorial not found"}
	}
	return t, nil
}

func (f *fakeBackend) CheckHealth(context.Context) (*api.Health, error) {
	return f.health, f.healthErr
}

func (f *fakeBackend) BaseURL() string { return "http://backend.test" }

func (f *fakeBackend) generateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.genReqs)
}

func (f *fakeBackend) fetches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.getCalls...)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeOpener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (o *fakeOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

func (o *fakeOpener) opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.urls...)
}

type fakeActions struct {
	shared     []string
	downloaded []string
}

func (a *fakeActions) Share(_ context.Context, t *tutorial.Tutorial) (string, error) {
	a.shared = append(a.shared, t.ID)
	return "https://example.test/tutorial/" + t.ID, nil
}

func (a *fakeActions) Download(_ context.Context, t *tutorial.Tutorial) (string, error) {
	a.downloaded = append(a.downloaded, t.ID)
	return "/tmp/tutorials/" + t.ID, nil
}

type fakeHistory struct {
	entries  []store.Entry
	recorded []string
	titles   map[string]string
}

func (h *fakeHistory) Recent(limit int) ([]store.Entry, error) { return h.entries, nil }

func (h *fakeHistory) RecordGeneration(id string, _ tutorial.GenerationRequest) error {
	h.recorded = append(h.recorded, id)
	return nil
}

func (h *fakeHistory) SetTitle(id, title string) error {
	if h.titles == nil {
		h.titles = map[string]string{}
	}
	h.titles[id] = title
	return nil
}

type testDeps struct {
	clipboard *fakeClipboard
	opener    *fakeOpener
	actions   *fakeActions
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.UI.Theme = "notty"
	cfg.UI.DocsURL = "https://docs.example.test"
	return cfg
}

// newTestModel builds a Model on backend, runs Init and sizes the
// terminal to width×40.
func newTestModel(t *testing.T, backend Backend, start Route, width int, mutate ...func(*Options)) (*Model, *testDeps) {
	t.Helper()
	deps := &testDeps{clipboard: &fakeClipboard{}, opener: &fakeOpener{}, actions: &fakeActions{}}
	opts := Options{
		Backend:      backend,
		Config:       testConfig(),
		Translations: i18n.MustNew("en"),
		Clipboard:    deps.clipboard,
		Opener:       deps.opener,
		Sharer:       deps.actions,
		Downloader:   deps.actions,
		Start:        start,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	m := NewModel(opts)
	send(t, m, tea.WindowSizeMsg{Width: width, Height: 40})
	run(t, m, m.Init())
	return m, deps
}

// send delivers msg and runs whatever it schedules.
func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	run(t, m, cmd)
}

// press sends one key press by name.
func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		send(t, m, keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "alt+h", "alt+g", "alt+d":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k[4:]), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// cmdTimeout bounds how long run waits for a command. Cursor blink and
// notice expiry timers are slower and get dropped.
const cmdTimeout = 250 * time.Millisecond

// run executes cmd breadth-first, feeding every message it produces back
// into the model until nothing is left. Animation frames are delivered
// once but not rescheduled.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := collect(cmd)
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		msg := queue[0]
		queue = queue[1:]
		_, next := m.Update(msg)
		switch msg.(type) {
		case spinner.TickMsg, cursor.BlinkMsg:
			continue
		}
		queue = append(queue, collect(next)...)
	}
}

// collect runs cmd and returns its messages, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		case tea.QuitMsg:
			return nil
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isQuit reports whether cmd ends the program.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func sampleTutorial(id string) *tutorial.Tutorial {
	return &tutorial.Tutorial{
		ID:    id,
		Title: "Understanding Flask",
		Chapters: []tutorial.Chapter{
			{Title: "Getting Started", Content: "Flask is a **micro** framework."},
			{Title: "Routing", Content: "Routes map URLs to views."},
		},
		Diagrams: []tutorial.Diagram{
			{Title: "Request flow", Content: "graph TD\n  A-->B", Description: "How a request travels"},
		},
		CodeSnippets: []tutorial.CodeSnippet{
			{Title: "App factory", Code: "def create_app():\n    return Flask(__name__)", Language: "python"},
			{Title: "Route", Code: "@app.route('/')\ndef index():\n    return 'hi'", Language: "python"},
		},
	}
}

var errBoom = errors.New("boom")

func testTranslations() *i18n.Translations { return i18n.MustNew("en") }

const (
	timeoutSecond = time.Second
	tick          = 10 * time.Millisecond
)
