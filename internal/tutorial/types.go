// Package tutorial holds the client-side copies of backend-owned tutorial
// data and the request the client submits to generate one.
package tutorial

import (
	"encoding/json"
	"strings"
	"time"
)

// Tutorial is a generated tutorial as returned by GET /api/tutorials/{id}.
// Any of the lists may be absent from the payload; they decode to nil and
// are treated as empty.
type Tutorial struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	GeneratedAt  Timestamp     `json:"generated_at" yaml:"generated_at"`
	Chapters     []Chapter     `json:"chapters" yaml:"chapters"`
	Diagrams     []Diagram     `json:"diagrams" yaml:"diagrams"`
	CodeSnippets []CodeSnippet `json:"code_snippets" yaml:"code_snippets"`
}

// Chapter is a titled section of tutorial prose (markdown).
type Chapter struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Diagram carries diagram description text produced by the backend. The
// grammar of Content is opaque to the client.
type Diagram struct {
	Title       string `json:"title" yaml:"title"`
	Content     string `json:"content" yaml:"content"`
	Description string `json:"description" yaml:"description"`
}

// CodeSnippet is an excerpt of repository source chosen by the backend.
type CodeSnippet struct {
	Title       string `json:"title" yaml:"title"`
	Code        string `json:"code" yaml:"code"`
	Language    string `json:"language" yaml:"language"`
	Description string `json:"description" yaml:"description"`
}

// DisplayTitle returns the title, or the id when the backend sent none.
func (t *Tutorial) DisplayTitle() string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	if t.ID != "" {
		return "Tutorial " + t.ID
	}
	return "Untitled tutorial"
}

// timestampLayouts lists the accepted generated_at forms. The backend has
// been observed sending both RFC 3339 and a zone-less "date time" form.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a lenient time value. Unparseable input leaves it zero
// instead of failing the surrounding decode.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Numbers, objects and null all mean "unknown".
		*ts = Timestamp{}
		return nil
	}
	parsed, _ := ParseTimestamp(s)
	*ts = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. The zero value encodes as null.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339))
}

// MarshalYAML implements yaml.Marshaler.
func (ts Timestamp) MarshalYAML() (any, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return ts.UTC().Format(time.RFC3339), nil
}

// Display formats the timestamp for humans.
func (ts Timestamp) Display() string {
	if ts.IsZero() {
		return "unknown"
	}
	return ts.Format("Jan 2, 2006 15:04")
}
