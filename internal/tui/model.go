package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianshen/codexplain/internal/api"
	"github.com/julianshen/codexplain/internal/config"
	"github.com/julianshen/codexplain/internal/diagram"
	"github.com/julianshen/codexplain/internal/export"
	"github.com/julianshen/codexplain/internal/highlight"
	"github.com/julianshen/codexplain/internal/i18n"
	"github.com/julianshen/codexplain/internal/store"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// Backend is the part of the API client the interactive client uses.
type Backend interface {
	GenerateTutorial(ctx context.Context, req tutorial.GenerationRequest) (string, error)
	GetTutorial(ctx context.Context, id string) (*tutorial.Tutorial, error)
	CheckHealth(ctx context.Context) (*api.Health, error)
	BaseURL() string
}

// History is the local record of generated tutorials.
type History interface {
	Recent(limit int) ([]store.Entry, error)
	RecordGeneration(id string, req tutorial.GenerationRequest) error
	SetTitle(id, title string) error
}

// UIState represents which layer of the TUI receives input.
type UIState int

const (
	// StateBrowse routes input to the current page.
	StateBrowse UIState = iota
	// StatePatternPrompt routes input to the add-pattern prompt.
	StatePatternPrompt
	// StateConfigOverlay indicates the TUI is showing the config overlay.
	StateConfigOverlay
)

const (
	copiedNoticeDuration = 2 * time.Second
	noticeDuration       = 4 * time.Second
	recentLimit          = 8
)

// Options configures a Model. Backend is required; everything else has a
// usable default.
type Options struct {
	Backend    Backend
	History    History
	Config     *config.Config
	ConfigPath string

	Translations *i18n.Translations
	Clipboard    Clipboard
	Opener       Opener
	Sharer       Sharer
	Downloader   Downloader
	// DiagramRenderer replaces the terminal renderer when set.
	DiagramRenderer diagram.Renderer
	// NewBackend rebuilds the backend after the config overlay changes it.
	NewBackend func(*config.Config) Backend

	Start   Route
	AppName string
	Version string
}

// Model is the Bubble Tea model for the codexplain TUI. It owns the route
// and the state of whichever page the route shows.
type Model struct {
	backend    Backend
	history    History
	cfg        *config.Config
	configPath string
	configForm *ConfigForm
	newBackend func(*config.Config) Backend

	tr         *i18n.Translations
	keys       keyMap
	clipboard  Clipboard
	opener     Opener
	sharer     Sharer
	downloader Downloader

	mdRenderer      *MarkdownRenderer
	highlighter     *highlight.Highlighter
	diagramRenderer diagram.Renderer
	customDiagrams  bool

	viewport  viewport.Model
	spinner   spinner.Model
	statusBar *StatusBar

	route   Route
	form    *GenerateForm
	viewer  *Viewer
	landing *Landing

	state     UIState
	appName   string
	version   string
	width     int
	height    int
	tokens    uint64
	noticeSeq int
	quitting  bool
}

// Ensure Model satisfies the tea.Model interface at compile time.
var _ tea.Model = (*Model)(nil)

// NewModel creates a new TUI Model from opts. Nothing is fetched until
// Init runs.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tr := opts.Translations
	if tr == nil {
		tr = i18n.MustNew(cfg.UI.Locale)
	}
	appName := opts.AppName
	if appName == "" {
		appName = "codexplain"
	}

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		backend:         opts.Backend,
		history:         opts.History,
		cfg:             cfg,
		configPath:      opts.ConfigPath,
		newBackend:      opts.NewBackend,
		tr:              tr,
		keys:            defaultKeyMap(),
		clipboard:       opts.Clipboard,
		opener:          opts.Opener,
		sharer:          opts.Sharer,
		downloader:      opts.Downloader,
		highlighter:     highlight.New(cfg.UI.CodeStyle),
		diagramRenderer: opts.DiagramRenderer,
		customDiagrams:  opts.DiagramRenderer != nil,
		viewport:        vp,
		spinner:         sp,
		statusBar:       NewStatusBar(80),
		route:           opts.Start,
		state:           StateBrowse,
		appName:         appName,
		version:         opts.Version,
		width:           80,
		height:          24,
	}
	if m.clipboard == nil {
		m.clipboard = SystemClipboard{}
	}
	if m.opener == nil {
		m.opener = SystemOpener{}
	}
	if m.sharer == nil {
		m.sharer = LinkSharer{BaseURL: cfg.Share.BaseURL, Clipboard: m.clipboard}
	}
	if m.downloader == nil {
		m.downloader = ExportDownloader{Exporter: export.NewExporter(cfg.Export.Format, cfg.Export.Dir)}
	}
	if m.backend != nil {
		m.statusBar.SetBackend(m.backend.BaseURL())
	}
	m.statusBar.SetLabels(m.healthLabel)
	m.resize(80, 24)
	return m
}

// Route returns the current route.
func (m *Model) Route() Route { return m.route }

// Form returns the Generate form, or nil when the Generate page is not shown.
func (m *Model) Form() *GenerateForm { return m.form }

// Viewer returns the tutorial viewer, or nil when no tutorial is shown.
func (m *Model) Viewer() *Viewer { return m.viewer }

// State returns which layer currently receives input.
func (m *Model) State() UIState { return m.state }

// docsVisible reports whether the Documentation link fits.
func (m *Model) docsVisible() bool {
	return m.cfg.UI.DocsURL != "" && m.width >= m.cfg.UI.DocsBreakpoint
}

// textEntry reports whether printable keys are being typed into a field.
func (m *Model) textEntry() bool {
	return m.state != StateBrowse || (m.route.Page == PageGenerate && m.form != nil && m.form.TextEntry())
}

func (m *Model) nextToken() uint64 {
	m.tokens++
	return m.tokens
}

func (m *Model) kit() renderKit {
	return renderKit{
		tr:       m.tr,
		md:       m.mdRenderer,
		hl:       m.highlighter,
		diagrams: m.diagramRenderer,
		width:    m.viewport.Width,
	}
}

// resize lays the page out for a w×h terminal. Header (1), divider (1),
// status (1) and help (1) are reserved around the viewport.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.viewport.Width = w
	m.viewport.Height = max(h-4, 1)
	m.statusBar.SetWidth(w)

	wrap := max(min(w, 120)-4, 20)
	if m.mdRenderer == nil || m.mdRenderer.Width() != wrap {
		// Falls back to raw text when the renderer cannot be built.
		m.mdRenderer, _ = NewMarkdownRenderer(m.cfg.UI.Theme, wrap)
		m.invalidate()
	}
	if !m.customDiagrams {
		m.diagramRenderer = diagram.NewTerminalRenderer(m.cfg.UI.DiagramPreviewURL, min(w, 120)-4)
		if m.viewer != nil {
			m.viewer.SetDiagramRenderer(m.diagramRenderer)
		}
	}
}

// invalidate drops cached page renderings.
func (m *Model) invalidate() {
	if m.viewer != nil {
		m.viewer.invalidate()
	}
}
