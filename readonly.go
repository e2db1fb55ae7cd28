package oopz

import (
	"fmt"
)

// ReadOnly is a view of a class instance that hands out no mutable
// access. Freeze is the only way in and there is no way back out:
// dropping the qualifier is exactly the cast the verifier forbids.
type ReadOnly[T any] struct {
	p *T
}

// Freeze wraps v in a read-only view. A nil v yields the absent view.
func Freeze[T any](v *T) ReadOnly[T] {
	return ReadOnly[T]{p: v}
}

// IsNil reports whether the view is absent.
func (r ReadOnly[T]) IsNil() bool {
	return r.p == nil
}

// Snapshot returns a shallow copy of the instance. The copy is the
// caller's to mutate; borrowed references inside it still alias the
// original ancestors and must be treated as read-only.
func (r ReadOnly[T]) Snapshot() T {
	if r.p == nil {
		panic(fmt.Sprintf("oopz: Snapshot of absent ReadOnly[%s]", TypeOf[T]().String()))
	}
	return *r.p
}

// UpcastReadOnly converts a read-only view to an ancestor class,
// keeping it read-only. The view must not be absent.
func UpcastReadOnly[To, From any](v ReadOnly[From]) ReadOnly[To] {
	if v.p == nil {
		panic(fmt.Sprintf("oopz: UpcastReadOnly of absent ReadOnly[%s]; use UpcastOptionalReadOnly",
			TypeOf[From]().String()))
	}
	return ReadOnly[To]{p: Upcast[To](v.p)}
}

// UpcastOptionalReadOnly is UpcastReadOnly for views that may be
// absent: an absent input short-circuits to an absent output.
func UpcastOptionalReadOnly[To, From any](v ReadOnly[From]) ReadOnly[To] {
	return ReadOnly[To]{p: UpcastOptional[To](v.p)}
}
