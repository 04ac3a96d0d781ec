package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// PatternPrompt is the single-field huh form used to add a glob pattern to
// one of the Generate form's lists.
type PatternPrompt struct {
	form   *huh.Form
	target patternList
	value  string
}

// NewPatternPrompt creates a prompt whose result is meant for target.
func NewPatternPrompt(target patternList, title, placeholder string, width int) *PatternPrompt {
	p := &PatternPrompt{target: target}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&p.value),
		),
	).WithShowHelp(false).WithWidth(min(max(width-8, 20), 60))
	return p
}

// Init focuses the input.
func (p *PatternPrompt) Init() tea.Cmd { return p.form.Init() }

// Update forwards msg to the form.
func (p *PatternPrompt) Update(msg tea.Msg) tea.Cmd {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	return cmd
}

// Target reports which list the pattern is for.
func (p *PatternPrompt) Target() patternList { return p.target }

// Value returns the text entered so far.
func (p *PatternPrompt) Value() string { return p.value }

// IsCompleted returns true once the pattern has been submitted.
func (p *PatternPrompt) IsCompleted() bool { return p.form.State == huh.StateCompleted }

// IsAborted returns true if the prompt was cancelled.
func (p *PatternPrompt) IsAborted() bool { return p.form.State == huh.StateAborted }

func (p *PatternPrompt) View() string { return p.form.View() }
