package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HealthState summarizes the last backend probe.
type HealthState int

const (
	HealthUnknown HealthState = iota
	HealthOK
	HealthIncompatible
	HealthUnreachable
)

// StatusBar displays the backend location, its health, and a transient
// notice.
type StatusBar struct {
	width   int
	baseURL string
	health  HealthState
	version string
	notice  string
	isError bool
	labels  func(HealthState, string) string

	style       lipgloss.Style
	okStyle     lipgloss.Style
	warnStyle   lipgloss.Style
	noticeStyle lipgloss.Style
}

// NewStatusBar creates a new StatusBar with the given terminal width.
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{
		width: width,
		style: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}),
		okStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		noticeStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	}
}

// SetWidth updates the width the bar is laid out for.
func (s *StatusBar) SetWidth(w int) { s.width = w }

// SetBackend sets the displayed backend base URL.
func (s *StatusBar) SetBackend(url string) { s.baseURL = url }

// SetHealth records the outcome of a health probe.
func (s *StatusBar) SetHealth(state HealthState, version string) {
	s.health = state
	s.version = version
}

// SetLabels overrides how health states are worded.
func (s *StatusBar) SetLabels(fn func(HealthState, string) string) { s.labels = fn }

// SetNotice shows a transient message. An empty msg clears it.
func (s *StatusBar) SetNotice(msg string, isError bool) {
	s.notice = msg
	s.isError = isError
}

// Notice returns the current notice.
func (s *StatusBar) Notice() string { return s.notice }

// View renders the status bar as a styled string.
func (s *StatusBar) View() string {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(s.baseURL)

	if label := s.healthLabel(); label != "" {
		b.WriteString("  ")
		switch s.health {
		case HealthOK:
			b.WriteString(s.okStyle.Render(label))
		case HealthIncompatible, HealthUnreachable:
			b.WriteString(s.warnStyle.Render(label))
		default:
			b.WriteString(label)
		}
	}

	if s.notice != "" {
		b.WriteString("  ")
		if s.isError {
			b.WriteString(s.warnStyle.Render(s.notice))
		} else {
			b.WriteString(s.noticeStyle.Render(s.notice))
		}
	}

	return s.style.MaxWidth(max(s.width, 1)).Render(b.String())
}

func (s *StatusBar) healthLabel() string {
	if s.labels != nil {
		return s.labels(s.health, s.version)
	}
	return defaultHealthLabel(s.health, s.version)
}

func defaultHealthLabel(state HealthState, version string) string {
	switch state {
	case HealthOK:
		return "ok " + formatVersion(version)
	case HealthIncompatible:
		return "incompatible " + formatVersion(version)
	case HealthUnreachable:
		return "unreachable"
	default:
		return ""
	}
}

// formatVersion prefixes a bare version with "v".
func formatVersion(v string) string {
	if v == "" {
		return "v?"
	}
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
