package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianshen/codexplain/internal/config"
	"github.com/julianshen/codexplain/internal/i18n"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// formField identifies a focusable field of the Generate form, in focus
// order.
type formField int

const (
	fieldRepo formField = iota
	fieldLanguage
	fieldInclude
	fieldExclude
	fieldMaxSize
	fieldSubmit
	fieldCount
)

// patternList selects one of the two pattern lists.
type patternList int

const (
	includeList patternList = iota
	excludeList
)

// formIntent is what a key press on the form asks the owner to do.
type formIntent int

const (
	intentNone formIntent = iota
	intentSubmit
	intentAddPattern
)

var (
	labelStyle      = lipgloss.NewStyle().Bold(true)
	focusedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"})
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	validationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	alertStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))
	buttonFocusedStyle  = buttonStyle.Background(lipgloss.Color("205"))
	buttonDisabledStyle = buttonStyle.Background(lipgloss.Color("240")).Foreground(lipgloss.Color("250"))
)

// GenerateForm is the state of one Generate page session. It is created
// when the page is entered and discarded on navigation away or success.
type GenerateForm struct {
	repo     textinput.Model
	maxSize  textinput.Model
	language tutorial.Language
	include  tutorial.PatternList
	exclude  tutorial.PatternList
	selected [2]int
	focus    formField
	prompt   *PatternPrompt

	pending    bool
	token      uint64
	cancel     context.CancelFunc
	submitted  tutorial.GenerationRequest
	validation string
	alert      string
}

// NewGenerateForm creates a form seeded from the configured defaults.
func NewGenerateForm(defaults config.GenerateConfig) *GenerateForm {
	repo := textinput.New()
	repo.Placeholder = "https://github.com/owner/repo"
	repo.CharLimit = 2048
	repo.Width = 60
	repo.Prompt = ""

	maxSize := textinput.New()
	maxSize.Placeholder = strconv.Itoa(tutorial.DefaultMaxFileSize)
	maxSize.CharLimit = 12
	maxSize.Width = 14
	maxSize.Prompt = ""

	lang, err := tutorial.ParseLanguage(defaults.Language)
	if err != nil {
		lang = tutorial.English
	}
	size := defaults.MaxFileSize
	if size <= 0 {
		size = tutorial.DefaultMaxFileSize
	}
	maxSize.SetValue(strconv.Itoa(size))

	include := tutorial.PatternList(append([]string(nil), defaults.IncludePatterns...))
	exclude := tutorial.PatternList(append([]string(nil), defaults.ExcludePatterns...))
	if defaults.IncludePatterns == nil {
		include = tutorial.DefaultIncludePatterns()
	}
	if defaults.ExcludePatterns == nil {
		exclude = tutorial.DefaultExcludePatterns()
	}

	return &GenerateForm{
		repo:     repo,
		maxSize:  maxSize,
		language: lang,
		include:  include,
		exclude:  exclude,
	}
}

// Focus moves focus to f and returns the cursor blink command when f is a
// text field.
func (f *GenerateForm) Focus(field formField) tea.Cmd {
	f.focus = field
	f.repo.Blur()
	f.maxSize.Blur()
	switch field {
	case fieldRepo:
		return f.repo.Focus()
	case fieldMaxSize:
		return f.maxSize.Focus()
	}
	return nil
}

// Focused returns the field with focus.
func (f *GenerateForm) Focused() formField { return f.focus }

func (f *GenerateForm) nextField() tea.Cmd {
	return f.Focus((f.focus + 1) % fieldCount)
}

func (f *GenerateForm) prevField() tea.Cmd {
	return f.Focus((f.focus + fieldCount - 1) % fieldCount)
}

// TextEntry reports whether keystrokes are currently typed into a field.
func (f *GenerateForm) TextEntry() bool {
	return f.prompt != nil || f.focus == fieldRepo || f.focus == fieldMaxSize
}

// SetRepoURL replaces the repository URL text.
func (f *GenerateForm) SetRepoURL(s string) { f.repo.SetValue(s) }

// SetMaxFileSize replaces the max file size text as typed.
func (f *GenerateForm) SetMaxFileSize(s string) { f.maxSize.SetValue(s) }

// SetLanguage selects the output language.
func (f *GenerateForm) SetLanguage(l tutorial.Language) { f.language = l }

// Include returns the include patterns in order.
func (f *GenerateForm) Include() []string { return f.include }

// Exclude returns the exclude patterns in order.
func (f *GenerateForm) Exclude() []string { return f.exclude }

// Pending reports whether a generation request is in flight.
func (f *GenerateForm) Pending() bool { return f.pending }

// Alert returns the failure message currently shown, if any.
func (f *GenerateForm) Alert() string { return f.alert }

// Validation returns the inline validation message, if any.
func (f *GenerateForm) Validation() string { return f.validation }

// MaxFileSize is the effective max file size for the current text.
func (f *GenerateForm) MaxFileSize() int { return tutorial.ParseMaxFileSize(f.maxSize.Value()) }

// Request builds the request the form would submit now.
func (f *GenerateForm) Request() tutorial.GenerationRequest {
	return tutorial.GenerationRequest{
		RepoURL:         f.repo.Value(),
		Language:        f.language,
		IncludePatterns: append([]string{}, f.include...),
		ExcludePatterns: append([]string{}, f.exclude...),
		MaxFileSize:     f.MaxFileSize(),
	}
}

// AddPattern appends p to the chosen list and selects it. Blank input is
// ignored.
func (f *GenerateForm) AddPattern(list patternList, p string) {
	p = strings.TrimSpace(p)
	if p == "" {
		return
	}
	switch list {
	case includeList:
		f.include = f.include.Add(p)
		f.selected[list] = len(f.include) - 1
	case excludeList:
		f.exclude = f.exclude.Add(p)
		f.selected[list] = len(f.exclude) - 1
	}
}

// RemovePattern deletes index i from the chosen list.
func (f *GenerateForm) RemovePattern(list patternList, i int) {
	switch list {
	case includeList:
		f.include = f.include.Remove(i)
	case excludeList:
		f.exclude = f.exclude.Remove(i)
	}
	f.clampSelection(list)
}

func (f *GenerateForm) list(l patternList) tutorial.PatternList {
	if l == includeList {
		return f.include
	}
	return f.exclude
}

func (f *GenerateForm) clampSelection(l patternList) {
	n := len(f.list(l))
	if f.selected[l] >= n {
		f.selected[l] = n - 1
	}
	if f.selected[l] < 0 {
		f.selected[l] = 0
	}
}

// focusedList returns the list with focus, if any.
func (f *GenerateForm) focusedList() (patternList, bool) {
	switch f.focus {
	case fieldInclude:
		return includeList, true
	case fieldExclude:
		return excludeList, true
	}
	return 0, false
}

// closePrompt discards the add-pattern prompt.
func (f *GenerateForm) closePrompt() { f.prompt = nil }

// cancelPending aborts the in-flight request, if any.
func (f *GenerateForm) cancelPending() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.pending = false
}

func (f *GenerateForm) updateInputs(msg tea.Msg) tea.Cmd {
	var repoCmd, sizeCmd tea.Cmd
	f.repo, repoCmd = f.repo.Update(msg)
	f.maxSize, sizeCmd = f.maxSize.Update(msg)
	return tea.Batch(repoCmd, sizeCmd)
}

// HandleKey applies a key press to the form. Submission and opening the
// add-pattern prompt are left to the caller.
func (f *GenerateForm) HandleKey(msg tea.KeyMsg, km keyMap) (formIntent, tea.Cmd) {
	switch {
	case key.Matches(msg, km.NextField):
		return intentNone, f.nextField()
	case key.Matches(msg, km.PrevField):
		return intentNone, f.prevField()
	case key.Matches(msg, km.Submit):
		return intentSubmit, nil
	case key.Matches(msg, km.Dismiss):
		f.alert = ""
		return intentNone, nil
	}

	switch f.focus {
	case fieldRepo, fieldMaxSize:
		if key.Matches(msg, km.Enter) {
			return intentSubmit, nil
		}
		var cmd tea.Cmd
		if f.focus == fieldRepo {
			f.repo, cmd = f.repo.Update(msg)
			if f.validation != "" && strings.TrimSpace(f.repo.Value()) != "" {
				f.validation = ""
			}
		} else {
			f.maxSize, cmd = f.maxSize.Update(msg)
		}
		return intentNone, cmd

	case fieldLanguage:
		switch {
		case key.Matches(msg, km.Left), key.Matches(msg, km.Up):
			f.language = f.language.Prev()
		case key.Matches(msg, km.Right), key.Matches(msg, km.Down):
			f.language = f.language.Next()
		}

	case fieldInclude, fieldExclude:
		list, _ := f.focusedList()
		switch {
		case key.Matches(msg, km.Up):
			if f.selected[list] > 0 {
				f.selected[list]--
			}
		case key.Matches(msg, km.Down):
			if f.selected[list] < len(f.list(list))-1 {
				f.selected[list]++
			}
		case key.Matches(msg, km.AddItem):
			return intentAddPattern, nil
		case key.Matches(msg, km.DelItem):
			f.RemovePattern(list, f.selected[list])
		}

	case fieldSubmit:
		if key.Matches(msg, km.Enter) {
			return intentSubmit, nil
		}
	}
	return intentNone, nil
}

// View renders the form.
func (f *GenerateForm) View(tr *i18n.Translations, spinner string, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(tr.T("generate.title")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(tr.T("generate.subtitle")))
	b.WriteString("\n\n")

	f.repo.Width = min(max(width-6, 20), 80)

	b.WriteString(f.label(fieldRepo, tr.T("generate.repo")))
	b.WriteString("\n  ")
	b.WriteString(f.repo.View())
	b.WriteString("\n")
	if f.validation != "" {
		b.WriteString("  ")
		b.WriteString(validationStyle.Render(f.validation))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(f.label(fieldLanguage, tr.T("generate.language")))
	b.WriteString("\n  ")
	lang := fmt.Sprintf("‹ %s (%s) ›", f.language.Label(), f.language.NativeLabel())
	if f.focus == fieldLanguage {
		lang = focusedStyle.Render(lang)
	}
	b.WriteString(lang)
	b.WriteString("\n\n")

	f.writeList(&b, includeList, fieldInclude, tr.T("generate.include"), tr)
	f.writeList(&b, excludeList, fieldExclude, tr.T("generate.exclude"), tr)

	b.WriteString(f.label(fieldMaxSize, tr.T("generate.max_size")))
	b.WriteString("\n  ")
	b.WriteString(f.maxSize.View())
	if eff := f.MaxFileSize(); strconv.Itoa(eff) != strings.TrimSpace(f.maxSize.Value()) {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(tr.Tf("generate.max_size_effective", map[string]any{"Size": eff})))
	}
	b.WriteString("\n\n")

	switch {
	case f.pending:
		b.WriteString(buttonDisabledStyle.Render(spinner + " " + tr.T("generate.button_pending")))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(tr.T("generate.pending_hint")))
	case f.focus == fieldSubmit:
		b.WriteString(buttonFocusedStyle.Render(tr.T("generate.button")))
	default:
		b.WriteString(buttonStyle.Render(tr.T("generate.button")))
	}
	b.WriteString("\n")

	if f.alert != "" {
		b.WriteString("\n")
		b.WriteString(alertStyle.Width(min(max(width-4, 20), 80)).Render(f.alert))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(tr.T("generate.alert_dismiss")))
		b.WriteString("\n")
	}

	return b.String()
}

func (f *GenerateForm) label(field formField, text string) string {
	if f.focus == field {
		return focusedStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func (f *GenerateForm) writeList(b *strings.Builder, list patternList, field formField, title string, tr *i18n.Translations) {
	b.WriteString(f.label(field, title))
	b.WriteString("\n")
	items := f.list(list)
	if len(items) == 0 {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(tr.T("generate.patterns_empty")))
		b.WriteString("\n")
	}
	for i, p := range items {
		line := "  • " + p
		if f.focus == field && i == f.selected[list] {
			line = selectedStyle.Render("  › " + p)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if f.focus == field {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(tr.T("generate.patterns_hint")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
