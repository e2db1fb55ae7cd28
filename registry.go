package oopz

import (
	"reflect"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/inspect"
)

// The process-wide registry. Types register on first use from any
// entry point; all later queries are read-locked lookups.
var defaultRegistry = inspect.NewRegistry()

// Register classifies T and records it with its whole base chain.
// Explicit registration is never required, every query performs it on
// demand, but calling it from an init block turns a malformed
// hierarchy into a startup failure instead of a first-use one.
func Register[T any]() error {
	_, err := defaultRegistry.Register(TypeOf[T]())
	return err
}

// MustRegister is Register panicking on rejection, for init-block
// asserts next to the class declarations:
//
//	func init() { oopz.MustRegister[MyNode]() }
func MustRegister[T any]() {
	defaultRegistry.MustRegister(TypeOf[T]())
}

// IsClass reports whether T declares one of the two class forms.
func IsClass[T any]() bool {
	_, err := inspect.Classify(TypeOf[T]())
	return err == nil
}

func classID[T any]() classes.ClassID {
	return defaultRegistry.MustRegister(TypeOf[T]())
}

func classIDFor(t reflect.Type) classes.ClassID {
	return defaultRegistry.MustRegister(t)
}

func typeOfID(id classes.ClassID) reflect.Type {
	c, ok := defaultRegistry.Lookup(id)
	if !ok {
		panic("oopz: registry lost a class it interned")
	}
	return c.GoType
}
