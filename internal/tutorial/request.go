package tutorial

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultMaxFileSize is the max file size used when none (or garbage) is given.
const DefaultMaxFileSize = 100000

// ErrEmptyRepoURL is returned by Validate when the repository URL is blank.
var ErrEmptyRepoURL = errors.New("repository URL is required")

// DefaultIncludePatterns returns a fresh copy of the default include globs.
func DefaultIncludePatterns() []string { return []string{"*.py", "*.js"} }

// DefaultExcludePatterns returns a fresh copy of the default exclude globs.
func DefaultExcludePatterns() []string { return []string{"tests/*", "docs/*"} }

// GenerationRequest is the body of POST /api/generate-tutorial. Glob
// semantics are owned by the backend; the client only carries the strings.
type GenerationRequest struct {
	RepoURL         string   `json:"repoUrl"`
	Language        Language `json:"language"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`
	MaxFileSize     int      `json:"max_file_size"`
}

// NewGenerationRequest returns a request populated with defaults.
func NewGenerationRequest() GenerationRequest {
	return GenerationRequest{
		Language:        English,
		IncludePatterns: DefaultIncludePatterns(),
		ExcludePatterns: DefaultExcludePatterns(),
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// Validate checks the only client-side rule: a non-blank repository URL.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.RepoURL) == "" {
		return ErrEmptyRepoURL
	}
	return nil
}

// Normalized returns a copy with the URL trimmed and nil lists replaced by
// empty ones so they encode as [] rather than null.
func (r GenerationRequest) Normalized() GenerationRequest {
	out := r
	out.RepoURL = strings.TrimSpace(r.RepoURL)
	if out.Language == "" {
		out.Language = English
	}
	out.IncludePatterns = append([]string{}, r.IncludePatterns...)
	out.ExcludePatterns = append([]string{}, r.ExcludePatterns...)
	return out
}

// ParseMaxFileSize parses s as an integer byte count. Anything that does not
// parse falls back to DefaultMaxFileSize.
func ParseMaxFileSize(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultMaxFileSize
	}
	return n
}

// PatternList is an ordered list of glob strings. Duplicates are allowed.
type PatternList []string

// Add returns the list with p appended at the end.
func (l PatternList) Add(p string) PatternList {
	out := make(PatternList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, p)
}

// Remove returns the list without the element at index i; later elements
// shift left by one. An out-of-range index returns the list unchanged.
func (l PatternList) Remove(i int) PatternList {
	if i < 0 || i >= len(l) {
		return l
	}
	out := make(PatternList, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...)
}
