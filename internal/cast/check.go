package cast

import (
	"errors"
	"fmt"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
)

var (
	ErrNotPointerToClass   = errors.New("cast operand is not a pointer to a class")
	ErrOptionalityMismatch = errors.New("cast changes optionality")
	ErrReadOnlyViolation   = errors.New("cast discards read-only")
	ErrUnrelatedClasses    = errors.New("cast between unrelated classes")
)

// Hierarchy is the read surface Check and Build need. Both
// classes.Table and the live registry satisfy it.
type Hierarchy interface {
	Lookup(id classes.ClassID) (classes.Class, bool)
	NameOf(id classes.ClassID) string
	FormatShape(s classes.Shape) string
	SelfAndAncestors(id classes.ClassID) []classes.ClassID
	IsA(target, subject classes.ClassID) bool
}

// CastError reports one violated cast rule. Source and Target hold the
// rendered shapes so the error stays useful after the table is gone.
type CastError struct {
	Code   diag.Code
	Source string
	Target string
	Msg    string

	sentinel error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("%s: cannot cast %s to %s: %s", e.Code.ID(), e.Source, e.Target, e.Msg)
}

func (e *CastError) Unwrap() error {
	return e.sentinel
}

// Diagnostic converts the error into the shared diagnostic model.
func (e *CastError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, diag.Subject{Class: e.Source},
		fmt.Sprintf("cannot cast %s to %s: %s", e.Source, e.Target, e.Msg))
}

func failed(h Hierarchy, code diag.Code, target, source classes.Shape, sentinel error, msg string) *CastError {
	return &CastError{
		Code:     code,
		Source:   h.FormatShape(source),
		Target:   h.FormatShape(target),
		Msg:      msg,
		sentinel: sentinel,
	}
}

// Check verifies that a value of the source shape may be used where the
// target shape is expected. The rules run in a fixed order and the
// first violation wins:
//
//  1. both shapes are pointers to registered classes,
//  2. optionality is identical on both sides,
//  3. read-only may be added, never removed,
//  4. the target class is an ancestor-or-self of the source class.
//
// A nil result means a plan for the pair exists (see Build).
func Check(h Hierarchy, target, source classes.Shape) error {
	if bad, side := nonPointerSide(h, target, source); bad != nil {
		return failed(h, diag.CastNotPointer, target, source, ErrNotPointerToClass,
			fmt.Sprintf("%s shape %s is not a pointer to a class", side, h.FormatShape(*bad)))
	}
	if target.Optional != source.Optional {
		msg := "source is optional but target is not"
		if target.Optional {
			msg = "target is optional but source is not"
		}
		return failed(h, diag.CastOptionality, target, source, ErrOptionalityMismatch, msg)
	}
	if source.ReadOnly && !target.ReadOnly {
		return failed(h, diag.CastReadOnly, target, source, ErrReadOnlyViolation,
			"a read-only view never becomes mutable")
	}
	if !h.IsA(target.Class, source.Class) {
		return failed(h, diag.CastUnrelated, target, source, ErrUnrelatedClasses,
			fmt.Sprintf("%s is not derived from %s", h.NameOf(source.Class), h.NameOf(target.Class)))
	}
	return nil
}

func nonPointerSide(h Hierarchy, target, source classes.Shape) (*classes.Shape, string) {
	if !validPointer(h, target) {
		return &target, "target"
	}
	if !validPointer(h, source) {
		return &source, "source"
	}
	return nil, ""
}

func validPointer(h Hierarchy, s classes.Shape) bool {
	if !s.Pointer {
		return false
	}
	_, ok := h.Lookup(s.Class)
	return ok
}
