package classes

import (
	"fmt"
	"reflect"
)

// ClassID uniquely identifies a class inside a Table.
type ClassID uint32

// NoClassID marks the absence of a class. It doubles as the "no base"
// sentinel: a root class has Base == NoClassID. The sentinel is never a
// valid class itself.
const NoClassID ClassID = 0

// Form distinguishes the two declaration forms a class can take.
type Form uint8

const (
	FormInvalid Form = iota
	// FormHandle is an opaque, storage-free class that declares its base
	// through an embedded marker.
	FormHandle
	// FormExtension is a concrete struct that extends a class through a
	// borrowed Base pointer field.
	FormExtension
)

func (f Form) String() string {
	switch f {
	case FormInvalid:
		return "invalid"
	case FormHandle:
		return "handle"
	case FormExtension:
		return "extension"
	default:
		return fmt.Sprintf("Form(%d)", f)
	}
}

// Class is a compact descriptor for one class in a hierarchy.
//
// GoType is nil for classes declared by a registry manifest rather than
// by a Go type. BaseOffset is meaningful only for FormExtension rows
// backed by a Go type: it is the byte offset of the Base pointer field.
type Class struct {
	Name       string
	Form       Form
	Base       ClassID
	GoType     reflect.Type
	BaseOffset uintptr
	Doc        string
}

// IsRoot reports whether the class declares no base.
func (c Class) IsRoot() bool {
	return c.Base == NoClassID
}

// Shape describes the static shape of a cast operand: a class viewed
// through (or not through) a pointer, with orthogonal optionality and
// read-only attributes.
type Shape struct {
	Class    ClassID
	Pointer  bool
	Optional bool
	ReadOnly bool
}

// PtrShape is shorthand for the plain mutable, non-optional
// pointer-to-class shape used by the generic cast entry points.
func PtrShape(id ClassID) Shape {
	return Shape{Class: id, Pointer: true}
}
