package diag

import (
	"fmt"
	"sort"
	"strings"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Subject  string
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable,
// single-line-per-entry representation suitable for golden files and
// quiet CLI output. Diagnostics are sorted deterministically and
// returned as a single string (empty when nothing remains).
func FormatGoldenDiagnostics(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, goldenDiagnostic{
			Severity: severityLabel(d.Severity),
			Code:     d.Code.ID(),
			Subject:  d.Primary.String(),
			Message:  sanitizeMessage(d.Message),
		})
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			rendered = append(rendered, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Subject:  note.Subject.String(),
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Subject != dj.Subject {
			return di.Subject < dj.Subject
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code, d.Subject, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
