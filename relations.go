package oopz

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
)

// BaseOf returns the immediate base class of T. ok is false when T is
// a root. Panics when T is not a class.
func BaseOf[T any]() (base reflect.Type, ok bool) {
	id := defaultRegistry.Base(classID[T]())
	if id == classes.NoClassID {
		return nil, false
	}
	return typeOfID(id), true
}

// DepthOf returns the number of inheritance edges between T and its
// root. Roots have depth 0.
func DepthOf[T any]() int {
	return defaultRegistry.Depth(classID[T]())
}

// AncestorsOf returns T's bases ordered nearest parent first, root
// last. The slice is empty for roots and its length equals DepthOf[T].
func AncestorsOf[T any]() []reflect.Type {
	return typesOf(defaultRegistry.Ancestors(classID[T]()))
}

// SelfAndAncestorsOf is AncestorsOf with T itself prepended.
func SelfAndAncestorsOf[T any]() []reflect.Type {
	return typesOf(defaultRegistry.SelfAndAncestors(classID[T]()))
}

func typesOf(ids []classes.ClassID) []reflect.Type {
	out := make([]reflect.Type, len(ids))
	for i, id := range ids {
		out[i] = typeOfID(id)
	}
	return out
}

// IsA reports whether Subject is Target or derives from it, directly
// or through any number of bases. Like Upcast, the ancestor side comes
// first. Panics when either type is not a class.
func IsA[Target, Subject any]() bool {
	return defaultRegistry.IsA(classID[Target](), classID[Subject]())
}

// IsAny reports whether Subject is, or derives from, any of the target
// classes. Targets are passed as reflect types, see TypeOf:
//
//	oopz.IsAny[MyNode](oopz.TypeOf[Node](), oopz.TypeOf[Resource]())
func IsAny[Subject any](targets ...reflect.Type) bool {
	ids := make([]classes.ClassID, len(targets))
	for i, t := range targets {
		ids[i] = classIDFor(t)
	}
	return defaultRegistry.IsAny(ids, classID[Subject]())
}

// AssertIsA panics unless Subject is Target or derives from it.
// Intended for init-block enforcement of assumed relations.
func AssertIsA[Target, Subject any]() {
	if IsA[Target, Subject]() {
		return
	}
	panic(fmt.Sprintf("%s: %s is not derived from %s",
		diag.RelNotA.ID(), TypeOf[Subject]().String(), TypeOf[Target]().String()))
}

// AssertIsAny panics unless Subject matches at least one target class.
func AssertIsAny[Subject any](targets ...reflect.Type) {
	if IsAny[Subject](targets...) {
		return
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	panic(fmt.Sprintf("%s: %s derives from none of: %s",
		diag.RelNoneOf.ID(), TypeOf[Subject]().String(), strings.Join(names, ", ")))
}
