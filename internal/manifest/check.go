package manifest

import (
	"errors"
	"fmt"

	"github.com/gdzig/oopz/internal/cast"
	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
)

// RunChecks executes the [[check]] battery against a resolved table.
// It returns how many checks were processed and how many of them
// failed; a malformed entry counts as a failure without running.
func RunChecks(m *Manifest, r *Resolved, rep diag.Reporter) (ran, failed int) {
	for i, c := range m.Checks {
		if !runCheck(m, r, rep, i+1, c) {
			failed++
		}
		ran++
	}
	return ran, failed
}

func runCheck(m *Manifest, r *Resolved, rep diag.Reporter, num int, c Check) bool {
	subject := func(class string) diag.Subject {
		return diag.Subject{File: m.Path, Class: class}
	}

	switch c.Kind {
	case "isa", "not-isa":
		if c.Class == "" || c.Target == "" {
			diag.ReportError(rep, diag.ManBadCheck, subject(c.Class),
				fmt.Sprintf("check %d (%s) needs class and target", num, c.Kind)).Emit()
			return false
		}
		classID, ok := r.Table.ByName(c.Class)
		if !ok {
			diag.ReportError(rep, diag.ManUnknownClass, subject(c.Class),
				fmt.Sprintf("check %d names unknown class %q", num, c.Class)).Emit()
			return false
		}
		targetID, ok := r.Table.ByName(c.Target)
		if !ok {
			diag.ReportError(rep, diag.ManUnknownClass, subject(c.Class),
				fmt.Sprintf("check %d names unknown class %q", num, c.Target)).Emit()
			return false
		}
		got := r.Table.IsA(targetID, classID)
		if want := c.Kind == "isa"; got != want {
			msg := fmt.Sprintf("check %d: %s is not derived from %s", num, c.Class, c.Target)
			if !want {
				msg = fmt.Sprintf("check %d: %s is derived from %s", num, c.Class, c.Target)
			}
			diag.ReportError(rep, diag.ManCheckFailed, subject(c.Class), msg).Emit()
			return false
		}
		return true

	case "cast", "cast-error":
		if c.From == "" || c.To == "" {
			diag.ReportError(rep, diag.ManBadCheck, subject(""),
				fmt.Sprintf("check %d (%s) needs from and to", num, c.Kind)).Emit()
			return false
		}
		from, ok := resolveShape(r, rep, m.Path, num, c.From)
		if !ok {
			return false
		}
		to, ok := resolveShape(r, rep, m.Path, num, c.To)
		if !ok {
			return false
		}
		err := cast.Check(r.Table, to, from)

		if c.Kind == "cast" {
			if err != nil {
				diag.ReportError(rep, diag.ManCheckFailed, subject(r.Table.NameOf(from.Class)),
					fmt.Sprintf("check %d: %v", num, err)).Emit()
				return false
			}
			return true
		}

		want, known := errClassFor(c.Error)
		if !known {
			diag.ReportError(rep, diag.ManBadCheck, subject(r.Table.NameOf(from.Class)),
				fmt.Sprintf("check %d has unknown error class %q (want pointer, optionality, readonly or unrelated)",
					num, c.Error)).Emit()
			return false
		}
		if err == nil {
			diag.ReportError(rep, diag.ManCheckFailed, subject(r.Table.NameOf(from.Class)),
				fmt.Sprintf("check %d: cast %s to %s unexpectedly allowed",
					num, r.Table.FormatShape(from), r.Table.FormatShape(to))).Emit()
			return false
		}
		if !errors.Is(err, want) {
			diag.ReportError(rep, diag.ManCheckFailed, subject(r.Table.NameOf(from.Class)),
				fmt.Sprintf("check %d: cast failed with the wrong rule: %v", num, err)).Emit()
			return false
		}
		return true

	default:
		diag.ReportError(rep, diag.ManBadCheck, subject(""),
			fmt.Sprintf("check %d has unknown kind %q (want isa, not-isa, cast or cast-error)",
				num, c.Kind)).Emit()
		return false
	}
}

// resolveShape parses a shape string and binds its class name to the
// table, reporting either failure.
func resolveShape(r *Resolved, rep diag.Reporter, path string, num int, s string) (classes.Shape, bool) {
	lit, err := parseShape(s)
	if err != nil {
		diag.ReportError(rep, diag.ManBadShape, diag.Subject{File: path},
			fmt.Sprintf("check %d: %v", num, err)).Emit()
		return classes.Shape{}, false
	}
	id, ok := r.Table.ByName(lit.Name)
	if !ok {
		diag.ReportError(rep, diag.ManUnknownClass, diag.Subject{File: path, Class: lit.Name},
			fmt.Sprintf("check %d names unknown class %q", num, lit.Name)).Emit()
		return classes.Shape{}, false
	}
	return classes.Shape{
		Class:    id,
		Pointer:  lit.Pointer,
		Optional: lit.Optional,
		ReadOnly: lit.ReadOnly,
	}, true
}

func errClassFor(s string) (error, bool) {
	switch s {
	case "pointer":
		return cast.ErrNotPointerToClass, true
	case "optionality":
		return cast.ErrOptionalityMismatch, true
	case "readonly":
		return cast.ErrReadOnlyViolation, true
	case "unrelated":
		return cast.ErrUnrelatedClasses, true
	}
	return nil, false
}
