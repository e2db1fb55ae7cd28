package oopz

import (
	"reflect"
)

// Root marks a handle class that tops a hierarchy. Embed it as the
// struct's only field:
//
//	type Object struct{ oopz.Root }
type Root struct{}

// ClassBase reports that the class has no base.
func (Root) ClassBase() reflect.Type { return nil }

// Extends marks a handle class derived from B. Embed it as the
// struct's only field:
//
//	type Node struct{ oopz.Extends[Object] }
type Extends[B any] struct{}

// ClassBase reports the declared base class.
func (Extends[B]) ClassBase() reflect.Type { return reflect.TypeOf((*B)(nil)).Elem() }

// TypeOf is shorthand for the reflect.Type of T. Handy with IsAny and
// AssertIsAny, which take their targets as values.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
