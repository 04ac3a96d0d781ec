package tui

import (
	"net/url"
	"strings"
)

// Page identifies which top-level view a Route shows.
type Page int

const (
	PageHome Page = iota
	PageGenerate
	PageTutorial
)

// Route is a parsed location: a page plus, for PageTutorial, its id.
type Route struct {
	Page Page
	ID   string
}

// HomeRoute, GenerateRoute and TutorialRoute build routes.
func HomeRoute() Route              { return Route{Page: PageHome} }
func GenerateRoute() Route          { return Route{Page: PageGenerate} }
func TutorialRoute(id string) Route { return Route{Page: PageTutorial, ID: id} }

// ParseRoute maps a path to a Route. "/" is Home, "/generate" is Generate,
// "/tutorial/{id}" with a non-empty single-segment id is Tutorial, and
// anything else falls back to Home.
func ParseRoute(path string) Route {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	switch {
	case path == "/generate":
		return GenerateRoute()
	case strings.HasPrefix(path, "/tutorial/"):
		raw := strings.TrimPrefix(path, "/tutorial/")
		if raw == "" || strings.Contains(raw, "/") {
			return HomeRoute()
		}
		id, err := url.PathUnescape(raw)
		if err != nil || strings.TrimSpace(id) == "" {
			return HomeRoute()
		}
		return TutorialRoute(id)
	default:
		return HomeRoute()
	}
}

// Path is the inverse of ParseRoute.
func (r Route) Path() string {
	switch r.Page {
	case PageGenerate:
		return "/generate"
	case PageTutorial:
		return "/tutorial/" + url.PathEscape(r.ID)
	default:
		return "/"
	}
}

func (r Route) String() string { return r.Path() }
