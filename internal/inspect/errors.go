package inspect

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gdzig/oopz/internal/diag"
)

var (
	// ErrNotAClass is reported for types that declare no base
	// association at all (plain structs, scalars, pointers, ...).
	ErrNotAClass = errors.New("not a class")
	// ErrMalformedClass is reported for types that clearly try to be a
	// class but break one of the two declaration forms.
	ErrMalformedClass = errors.New("malformed class")
	// ErrHierarchyCycle is reported when following base declarations
	// returns to a type already on the chain.
	ErrHierarchyCycle = errors.New("class hierarchy cycle")
)

// ClassError describes why a Go type was rejected by the classifier or
// the registry. It wraps one of the package sentinels and carries the
// diagnostic code plus an optional correction hint.
type ClassError struct {
	Code diag.Code
	Type reflect.Type
	Msg  string
	Hint diag.Hint

	sentinel error
}

func (e *ClassError) Error() string {
	name := "<nil>"
	if e.Type != nil {
		name = e.Type.String()
	}
	if e.Hint.Title == "" {
		return fmt.Sprintf("%s: %s: %s", e.Code.ID(), name, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", e.Code.ID(), name, e.Msg, e.Hint)
}

func (e *ClassError) Unwrap() error {
	return e.sentinel
}

// Diagnostic converts the error into the shared diagnostic model.
func (e *ClassError) Diagnostic() diag.Diagnostic {
	subject := diag.Subject{}
	if e.Type != nil {
		subject.Class = e.Type.String()
	}
	d := diag.NewError(e.Code, subject, e.Msg)
	if e.Hint.Title != "" {
		d = d.WithHint(e.Hint.Title, e.Hint.ReplaceWith)
	}
	return d
}

func notAClass(code diag.Code, t reflect.Type, msg string) *ClassError {
	return &ClassError{Code: code, Type: t, Msg: msg, sentinel: ErrNotAClass}
}

func malformed(code diag.Code, t reflect.Type, msg string) *ClassError {
	return &ClassError{Code: code, Type: t, Msg: msg, sentinel: ErrMalformedClass}
}

func (e *ClassError) withHint(title, replaceWith string) *ClassError {
	e.Hint = diag.Hint{Title: title, ReplaceWith: replaceWith}
	return e
}
