// Package diagfmt renders diag.Bag contents for humans and machines.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/gdzig/oopz/internal/diag"
)

// Pretty renders diagnostics one per line:
//
//	<subject>: <SEV> <CODE>: <message>
//	    note: <subject>: <message>
//	    hint: <title>: <replacement>
//
// The bag should be sorted beforehand. Color lands on the severity and
// code only, so the output stays grep-friendly.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		subject := d.Primary.String()
		label := fmt.Sprintf("%s %s", d.Severity, d.Code.ID())
		msg := d.Message
		if opts.Width > 0 {
			used := runewidth.StringWidth(subject) + runewidth.StringWidth(label) + 4
			if room := opts.Width - used; room > 0 {
				msg = clip(msg, room)
			}
		}
		fmt.Fprintf(w, "%s: %s: %s\n", subject, severityColor(d.Severity, opts.Color).Sprint(label), msg)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				if n.Subject.IsZero() || n.Subject == d.Primary {
					fmt.Fprintf(w, "    note: %s\n", n.Msg)
					continue
				}
				fmt.Fprintf(w, "    note: %s: %s\n", n.Subject, n.Msg)
			}
		}
		if opts.ShowHints {
			for _, h := range d.Hints {
				fmt.Fprintf(w, "    hint: %s\n", h)
			}
		}
	}
}

// Summary condenses a bag into a single counts line, "no issues" when
// it is empty.
func Summary(bag *diag.Bag) string {
	var errs, warns, infos int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	if errs == 0 && warns == 0 && infos == 0 {
		return "no issues"
	}
	out := ""
	if errs > 0 {
		out += fmt.Sprintf("%d %s", errs, plural(errs, "error"))
	}
	if warns > 0 {
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%d %s", warns, plural(warns, "warning"))
	}
	if infos > 0 {
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%d %s", infos, plural(infos, "note"))
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func severityColor(sev diag.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func clip(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
