package diag

import (
	"fmt"
	"strings"
)

// Subject names what a diagnostic is about. Engine diagnostics carry a
// Go type or class name and leave File empty; manifest diagnostics
// carry the manifest path and the class the entry declares.
type Subject struct {
	File  string
	Class string
}

func (s Subject) String() string {
	switch {
	case s.File != "" && s.Class != "":
		return fmt.Sprintf("%s: %s", s.File, s.Class)
	case s.File != "":
		return s.File
	case s.Class != "":
		return s.Class
	}
	return "<unknown>"
}

func (s Subject) IsZero() bool {
	return s.File == "" && s.Class == ""
}

type Note struct {
	Subject Subject
	Msg     string
}

// Hint is a suggested correction. ReplaceWith, when set, is the literal
// declaration text the author should write instead.
type Hint struct {
	Title       string
	ReplaceWith string
}

func (h Hint) String() string {
	if h.ReplaceWith == "" {
		return h.Title
	}
	return fmt.Sprintf("%s: %s", h.Title, h.ReplaceWith)
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Subject
	Notes    []Note
	Hints    []Hint
}

// Key returns a stable identity used for deduplication and ordering.
func (d Diagnostic) Key() string {
	var b strings.Builder
	b.WriteString(d.Code.ID())
	b.WriteByte(':')
	b.WriteString(d.Primary.String())
	b.WriteByte(':')
	b.WriteString(d.Message)
	return b.String()
}
