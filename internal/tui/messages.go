package tui

import (
	"github.com/julianshen/codexplain/internal/api"
	"github.com/julianshen/codexplain/internal/store"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// generateResultMsg reports the outcome of a generation request. token
// ties it to the form session that issued it.
type generateResultMsg struct {
	token uint64
	id    string
	err   error
}

// tutorialLoadedMsg reports the outcome of a tutorial fetch.
type tutorialLoadedMsg struct {
	token    uint64
	id       string
	tutorial *tutorial.Tutorial
	err      error
}

type healthMsg struct {
	health *api.Health
	err    error
}

type historyLoadedMsg struct {
	entries []store.Entry
	err     error
}

// historySavedMsg reports a failed history write; successes are silent.
type historySavedMsg struct {
	err error
}

// noticeExpiredMsg clears the status notice if it is still the one with seq.
type noticeExpiredMsg struct {
	seq int
}

type actionKind int

const (
	actionCopy actionKind = iota
	actionOpen
	actionShare
	actionDownload
	actionDocs
)

// actionDoneMsg reports the outcome of a side-effecting user action.
type actionDoneMsg struct {
	kind   actionKind
	result string
	err    error
}
