package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/codexplain/internal/api"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// backendServer is an httptest backend that records generation bodies and
// fetched ids.
type backendServer struct {
	mu       sync.Mutex
	bodies   []map[string]any
	fetched  []string
	genCode  int
	genReply string
}

func newBackendServer(t *testing.T) (*backendServer, *api.Client) {
	t.Helper()
	b := &backendServer{genCode: http.StatusOK, genReply: `{"id":"abc123"}`}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/generate-tutorial":
			raw, _ := io.ReadAll(r.Body)
			var body map[string]any
			_ = json.Unmarshal(raw, &body)
			b.mu.Lock()
			b.bodies = append(b.bodies, body)
			code, reply := b.genCode, b.genReply
			b.mu.Unlock()
			w.WriteHeader(code)
			w.Write([]byte(reply))
		case r.Method == http.MethodGet && r.URL.Path == "/api/tutorials/abc123":
			b.mu.Lock()
			b.fetched = append(b.fetched, "abc123")
			b.mu.Unlock()
			w.Write([]byte(`{"id":"abc123","title":"Flask","generated_at":"2026-03-01 10:30:00",
				"chapters":[{"title":"Intro","content":"Hello"}],"diagrams":[],"code_snippets":[]}`))
		case r.URL.Path == "/api/health":
			w.Write([]byte(`{"status":"healthy","version":"1.0.0"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not Found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return b, api.NewClient(srv.URL)
}

func (b *backendServer) generateBodies() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.bodies...)
}

func (b *backendServer) fetchedIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.fetched...)
}

// submitOverHTTP presses ctrl+s and checks the round trip completed.
func submitOverHTTP(t *testing.T, m *Model) {
	t.Helper()
	press(t, m, "ctrl+s")
	require.False(t, m.Form() != nil && m.Form().Pending(), "generation did not finish")
}

func TestSubmitSendsOneRequestWithFormValues(t *testing.T) {
	b, client := newBackendServer(t)
	m, _ := newTestModel(t, client, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/pallets/flask")
	press(t, m, "ctrl+s")

	require.Eventually(t, func() bool { return len(b.generateBodies()) == 1 }, timeoutSecond, tick)
	body := b.generateBodies()[0]
	assert.Equal(t, "https://github.com/pallets/flask", body["repoUrl"])
	assert.Equal(t, "english", body["language"])
	assert.Equal(t, []any{"*.py", "*.js"}, body["include_patterns"])
	assert.Equal(t, []any{"tests/*", "docs/*"}, body["exclude_patterns"])
	assert.Equal(t, float64(100000), body["max_file_size"])
}

func TestSubmitSuccessNavigatesAndFetches(t *testing.T) {
	b := newFakeBackend()
	b.tutorials["abc123"] = sampleTutorial("abc123")
	m, _ := newTestModel(t, b, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/pallets/flask")
	press(t, m, "ctrl+s")

	assert.Equal(t, "/tutorial/abc123", m.Route().Path())
	assert.Equal(t, []string{"abc123"}, b.fetches())
	assert.Nil(t, m.Form(), "form is discarded after success")
	require.NotNil(t, m.Viewer())
	assert.Equal(t, ViewerLoaded, m.Viewer().State())
}

func TestSubmitSuccessOverHTTP(t *testing.T) {
	b, client := newBackendServer(t)
	m, _ := newTestModel(t, client, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/pallets/flask")
	submitOverHTTP(t, m)

	assert.Equal(t, "/tutorial/abc123", m.Route().Path())
	require.Eventually(t, func() bool { return len(b.fetchedIDs()) == 1 }, timeoutSecond, tick)
	assert.Equal(t, []string{"abc123"}, b.fetchedIDs())
}

func TestBlankURLIssuesNoRequest(t *testing.T) {
	b := newFakeBackend()
	m, _ := newTestModel(t, b, GenerateRoute(), 100)

	m.Form().SetRepoURL("   ")
	press(t, m, "ctrl+s")
	press(t, m, "enter")

	assert.Equal(t, 0, b.generateCount())
	assert.Equal(t, "Please enter a repository URL.", m.Form().Validation())
	assert.Contains(t, m.pageView(), "Please enter a repository URL.")
	assert.Equal(t, "/generate", m.Route().Path())
}

func TestServerMessageShownAndRouteKept(t *testing.T) {
	b, client := newBackendServer(t)
	b.genCode = http.StatusInternalServerError
	b.genReply = `{"message":"boom"}`
	m, _ := newTestModel(t, client, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/pallets/flask")
	submitOverHTTP(t, m)

	require.NotNil(t, m.Form())
	assert.Equal(t, "boom", m.Form().Alert())
	assert.Contains(t, m.pageView(), "boom")
	assert.Equal(t, "/generate", m.Route().Path())
	assert.False(t, m.Form().Pending(), "form is usable again")
}

func TestFastAPIDetailShownAsAlert(t *testing.T) {
	b, client := newBackendServer(t)
	b.genCode = http.StatusBadRequest
	b.genReply = `{"detail":"Invalid repository"}`
	m, _ := newTestModel(t, client, GenerateRoute(), 100)

	m.Form().SetRepoURL("not-a-repo")
	submitOverHTTP(t, m)

	assert.Equal(t, "Invalid repository", m.Form().Alert())
}

func TestGenericFailureMessageAndDismiss(t *testing.T) {
	b := newFakeBackend()
	b.genErr = errBoom
	m, _ := newTestModel(t, b, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/a/b")
	press(t, m, "ctrl+s")
	assert.Equal(t, "Failed to generate tutorial. Please try again.", m.Form().Alert())

	press(t, m, "esc")
	assert.Empty(t, m.Form().Alert())

	// The form can be resubmitted and the next failure replaces the alert.
	b.genErr = &api.Error{StatusCode: 500, Message: "second"}
	press(t, m, "ctrl+s")
	assert.Equal(t, "second", m.Form().Alert())
	assert.Equal(t, 2, b.generateCount())
}

func TestTimeoutShowsTimeoutMessage(t *testing.T) {
	b := newFakeBackend()
	b.genErr = api.ErrTimeout
	m, _ := newTestModel(t, b, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/a/b")
	press(t, m, "ctrl+s")
	assert.Equal(t, "The request timed out. Please try again.", m.Form().Alert())
}

func TestSubmitDisabledWhilePending(t *testing.T) {
	b := newFakeBackend()
	b.block = make(chan struct{})
	defer close(b.block)
	m, _ := newTestModel(t, b, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/a/b")
	press(t, m, "ctrl+s")
	require.Eventually(t, func() bool { return b.generateCount() == 1 }, timeoutSecond, tick)
	assert.True(t, m.Form().Pending())
	assert.Contains(t, m.pageView(), "Generating…")

	press(t, m, "ctrl+s", "enter")
	assert.Equal(t, 1, b.generateCount())
}

func TestNavigatingAwayCancelsGeneration(t *testing.T) {
	b := newFakeBackend()
	b.block = make(chan struct{})
	defer close(b.block)
	m, _ := newTestModel(t, b, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/a/b")
	press(t, m, "ctrl+s")
	require.Eventually(t, func() bool { return b.generateCount() == 1 }, timeoutSecond, tick)
	token := m.Form().token

	press(t, m, "alt+h")
	assert.Equal(t, PageHome, m.Route().Page)
	assert.Nil(t, m.Form())
	require.Eventually(t, func() bool { return len(b.cancelled) == 1 }, timeoutSecond, tick)

	// A late success for the abandoned form is ignored.
	send(t, m, generateResultMsg{token: token, id: "late"})
	assert.Equal(t, PageHome, m.Route().Page)
	assert.Empty(t, b.fetches())
}

func TestStaleGenerationResultIgnored(t *testing.T) {
	b := newFakeBackend()
	b.block = make(chan struct{})
	defer close(b.block)
	m, _ := newTestModel(t, b, GenerateRoute(), 100)

	m.Form().SetRepoURL("https://github.com/a/b")
	press(t, m, "ctrl+s")
	send(t, m, generateResultMsg{token: m.Form().token + 100, id: "other"})

	assert.Equal(t, "/generate", m.Route().Path())
	assert.True(t, m.Form().Pending())
}

func TestEmptyChaptersRenderEmptyState(t *testing.T) {
	b := newFakeBackend()
	b.tutorials["t1"] = &tutorial.Tutorial{ID: "t1", Title: "Empty", Chapters: []tutorial.Chapter{}}
	m, _ := newTestModel(t, b, TutorialRoute("t1"), 100)

	require.Equal(t, ViewerLoaded, m.Viewer().State())
	page := m.pageView()
	assert.Contains(t, page, "This tutorial has no chapters.")
	assert.Contains(t, page, "Chapters (0)")
	assert.Empty(t, m.Viewer().Failure())
}

func TestTabsNeverRefetch(t *testing.T) {
	b := newFakeBackend()
	b.tutorials["abc123"] = sampleTutorial("abc123")
	m, _ := newTestModel(t, b, TutorialRoute("abc123"), 100)
	loaded := m.Viewer().Tutorial()
	first := m.pageView()

	press(t, m, "tab")
	assert.Equal(t, TabDiagrams, m.Viewer().Tab())
	assert.Contains(t, m.pageView(), "Request flow")
	press(t, m, "tab")
	assert.Equal(t, TabCode, m.Viewer().Tab())
	assert.Contains(t, m.pageView(), "App factory")
	press(t, m, "tab")
	assert.Equal(t, TabChapters, m.Viewer().Tab())

	assert.Equal(t, []string{"abc123"}, b.fetches())
	assert.Same(t, loaded, m.Viewer().Tutorial())
	assert.Equal(t, first, m.pageView())
}

func TestNumberKeysSelectTabs(t *testing.T) {
	b := newFakeBackend()
	b.tutorials["abc123"] = sampleTutorial("abc123")
	m, _ := newTestModel(t, b, TutorialRoute("abc123"), 100)

	press(t, m, "3")
	assert.Equal(t, TabCode, m.Viewer().Tab())
	press(t, m, "1")
	assert.Equal(t, TabChapters, m.Viewer().Tab())
	press(t, m, "left")
	assert.Equal(t, TabCode, m.Viewer().Tab())
	press(t, m, "shift+tab")
	assert.Equal(t, TabDiagrams, m.Viewer().Tab())
	assert.Len(t, b.fetches(), 1)
}

func TestCtrlCAlwaysQuits(t *testing.T) {
	m, _ := newTestModel(t, newFakeBackend(), GenerateRoute(), 100)
	_, cmd := m.Update(keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Goodbye!")
}

func TestCtrlCQuitsFromOverlay(t *testing.T) {
	m, _ := newTestModel(t, newFakeBackend(), GenerateRoute(), 100)
	press(t, m, "tab", "tab", "a")
	require.Equal(t, StatePatternPrompt, m.State())
	_, cmd := m.Update(keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))

	m, _ = newTestModel(t, newFakeBackend(), HomeRoute(), 100)
	press(t, m, "ctrl+p")
	require.Equal(t, StateConfigOverlay, m.State())
	_, cmd = m.Update(keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))
}

func TestQuitKeyOnlyOutsideTextEntry(t *testing.T) {
	m, _ := newTestModel(t, newFakeBackend(), GenerateRoute(), 100)
	_, cmd := m.Update(keyMsg("q"))
	assert.False(t, isQuit(cmd))
	assert.Equal(t, "q", m.Form().Request().RepoURL)

	home, _ := newTestModel(t, newFakeBackend(), HomeRoute(), 100)
	_, cmd = home.Update(keyMsg("q"))
	assert.True(t, isQuit(cmd))
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t, newFakeBackend(), HomeRoute(), 100)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 46, m.viewport.Height)
}

func TestHealthShownInStatusBar(t *testing.T) {
	b := newFakeBackend()
	m, _ := newTestModel(t, b, HomeRoute(), 100)
	assert.Contains(t, m.statusBar.View(), "http://backend.test")
	assert.Contains(t, m.statusBar.View(), "ok v1.0.0")

	b.health = &api.Health{Status: "healthy", Version: "2.0.0"}
	b.healthErr = api.ErrIncompatibleBackend
	send(t, m, m.checkHealth()())
	assert.Contains(t, m.statusBar.View(), "incompatible v2.0.0")

	b.health, b.healthErr = nil, errBoom
	send(t, m, m.checkHealth()())
	assert.Contains(t, m.statusBar.View(), "unreachable")
}
