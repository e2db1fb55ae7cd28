package oopz

import (
	"github.com/gdzig/oopz/internal/cast"
	"github.com/gdzig/oopz/internal/inspect"
)

// The classification and cast failure families. Errors returned by
// Register and Describe, and the panic values of the generic entry
// points, wrap exactly one of these; match with errors.Is.
var (
	// ErrNotAClass: the type declares no base association at all.
	ErrNotAClass = inspect.ErrNotAClass
	// ErrMalformedClass: the type tries to be a class but breaks one of
	// the two declaration forms.
	ErrMalformedClass = inspect.ErrMalformedClass
	// ErrHierarchyCycle: following base declarations returns to a type
	// already on the chain.
	ErrHierarchyCycle = inspect.ErrHierarchyCycle

	// ErrNotPointerToClass: a cast shape is not a pointer to a class.
	ErrNotPointerToClass = cast.ErrNotPointerToClass
	// ErrOptionalityMismatch: a cast would add or drop optionality.
	ErrOptionalityMismatch = cast.ErrOptionalityMismatch
	// ErrReadOnlyViolation: a cast would drop the read-only qualifier.
	ErrReadOnlyViolation = cast.ErrReadOnlyViolation
	// ErrUnrelatedClasses: the target class is not an ancestor of the
	// source class.
	ErrUnrelatedClasses = cast.ErrUnrelatedClasses
)
