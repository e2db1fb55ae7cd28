package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/gdzig/oopz/internal/diag"
)

// SubjectJSON names what a diagnostic is about.
type SubjectJSON struct {
	File  string `json:"file,omitempty"`
	Class string `json:"class,omitempty"`
}

// NoteJSON carries one attached note.
type NoteJSON struct {
	Message string      `json:"message"`
	Subject SubjectJSON `json:"subject"`
}

// HintJSON carries one suggested correction.
type HintJSON struct {
	Title       string `json:"title"`
	ReplaceWith string `json:"replace_with,omitempty"`
}

// DiagnosticJSON is the machine form of one diagnostic.
type DiagnosticJSON struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Subject  SubjectJSON `json:"subject"`
	Notes    []NoteJSON  `json:"notes,omitempty"`
	Hints    []HintJSON  `json:"hints,omitempty"`
}

// DiagnosticsOutput is the root structure of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeSubject(s diag.Subject) SubjectJSON {
	return SubjectJSON{File: s.File, Class: s.Class}
}

// BuildDiagnosticsOutput assembles the JSON structure without
// serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		d := items[i]
		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Subject:  makeSubject(d.Primary),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{
					Message: note.Msg,
					Subject: makeSubject(note.Subject),
				}
			}
		}
		if opts.IncludeHints && len(d.Hints) > 0 {
			diagJSON.Hints = make([]HintJSON, len(d.Hints))
			for j, hint := range d.Hints {
				diagJSON.Hints[j] = HintJSON{
					Title:       hint.Title,
					ReplaceWith: hint.ReplaceWith,
				}
			}
		}
		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON writes the diagnostics as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(bag, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
