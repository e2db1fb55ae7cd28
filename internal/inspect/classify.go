package inspect

import (
	"fmt"
	"reflect"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
)

// baseCarrier is implemented by the zero-size markers embedded in
// handle-form classes. The root package provides Root and Extends[B];
// any fieldless struct with this method works.
type baseCarrier interface {
	ClassBase() reflect.Type
}

var baseCarrierType = reflect.TypeOf((*baseCarrier)(nil)).Elem()

// Info is the shallow classification of a single Go type. Base is the
// declared parent type (nil for roots); validity of the parent itself
// is the registry's concern.
type Info struct {
	Form       classes.Form
	Base       reflect.Type
	BaseOffset uintptr
}

// isMarker reports whether t is a base marker: a fieldless struct with
// the carrier method. Classes themselves also expose the method through
// promotion, but they always carry the marker field, so the field count
// tells them apart.
func isMarker(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0 && t.Implements(baseCarrierType)
}

func markerBase(t reflect.Type) reflect.Type {
	return reflect.Zero(t).Interface().(baseCarrier).ClassBase()
}

// looksLikeClass is a one-level approximation of Classify used for
// hint detection. It must not recurse: it runs while classifying the
// enclosing struct, which may reference itself.
func looksLikeClass(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	if t.Implements(baseCarrierType) && t.NumField() > 0 {
		return true
	}
	f, ok := t.FieldByName("Base")
	return ok && f.Type.Kind() == reflect.Pointer
}

// Classify decides whether t is a class and in which declaration form.
//
// Handle form: a struct whose only field is an embedded base marker.
// Extension form: a struct with a field named Base of type *Parent.
//
// The returned error is always a *ClassError wrapping ErrNotAClass or
// ErrMalformedClass, with a correction hint where one is obvious.
func Classify(t reflect.Type) (Info, error) {
	if t == nil {
		return Info{}, notAClass(diag.ClsNotAStruct, nil, "no type given")
	}
	if t.Kind() == reflect.Pointer {
		elem := t.Elem()
		if _, err := Classify(elem); err == nil {
			return Info{}, notAClass(diag.ClsPointerToClass, t,
				"a pointer to a class is not itself a class").
				withHint("use the class type", elem.String())
		}
		return Info{}, notAClass(diag.ClsNotAStruct, t, fmt.Sprintf("%s is not a struct", t.Kind()))
	}
	if t.Kind() != reflect.Struct {
		return Info{}, notAClass(diag.ClsNotAStruct, t, fmt.Sprintf("%s is not a struct", t.Kind()))
	}

	markers := 0
	markerIdx := -1
	embeddedClassIdx := -1
	namedMarkerIdx := -1
	baseIdx := -1
	misnamedIdx := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		switch {
		case isMarker(f.Type):
			if f.Anonymous {
				markers++
				markerIdx = i
			} else {
				namedMarkerIdx = i
			}
		case f.Anonymous && f.Type.Kind() == reflect.Struct && f.Type.Implements(baseCarrierType):
			embeddedClassIdx = i
		case f.Name == "Base":
			baseIdx = i
		case misnamedIdx < 0 && f.IsExported() &&
			f.Type.Kind() == reflect.Pointer &&
			looksLikeClass(f.Type.Elem()):
			misnamedIdx = i
		}
	}

	switch {
	case markers > 1:
		return Info{}, malformed(diag.ClsMarkerWithData, t,
			"struct embeds more than one base marker; a class has exactly one base")
	case markers == 1 && baseIdx >= 0:
		return Info{}, malformed(diag.ClsMarkerAndBase, t,
			"marker embed and Base field declare a base twice; the two forms are exclusive").
			withHint("keep the Base field for extension classes, the marker for handle classes", "")
	case markers == 1 && t.NumField() > 1:
		return Info{}, malformed(diag.ClsMarkerWithData, t,
			"handle classes carry no fields besides the embedded marker").
			withHint("move the data into an extension class", fmt.Sprintf("type %s struct { Base *Parent; ... }", t.Name()))
	case markers == 1:
		return Info{Form: classes.FormHandle, Base: markerBase(t.Field(markerIdx).Type)}, nil
	case namedMarkerIdx >= 0:
		f := t.Field(namedMarkerIdx)
		return Info{}, malformed(diag.ClsMarkerNamed, t,
			fmt.Sprintf("marker field %s must be embedded, not named", f.Name)).
			withHint("embed the marker", f.Type.String())
	case embeddedClassIdx >= 0:
		f := t.Field(embeddedClassIdx)
		return Info{}, malformed(diag.ClsClassEmbed, t,
			fmt.Sprintf("embedding class %s does not declare it as a base", f.Type.String())).
			withHint("declare the base with a marker", fmt.Sprintf("oopz.Extends[%s]", f.Type.Name()))
	case baseIdx >= 0:
		return classifyExtension(t, t.Field(baseIdx))
	case misnamedIdx >= 0:
		f := t.Field(misnamedIdx)
		return Info{}, malformed(diag.ClsBaseMisnamed, t,
			fmt.Sprintf("field %s points at a class but is not named Base", f.Name)).
			withHint("rename the field", fmt.Sprintf("Base %s", f.Type.String()))
	}
	return Info{}, notAClass(diag.ClsNoBase, t,
		"struct declares no base association; embed a marker or declare a Base field")
}

func classifyExtension(t reflect.Type, f reflect.StructField) (Info, error) {
	switch {
	case f.Type.Kind() == reflect.Struct:
		return Info{}, malformed(diag.ClsBaseNotPointer, t,
			"Base must borrow its parent through a single pointer, not hold it by value").
			withHint("declare the field as", fmt.Sprintf("Base *%s", f.Type.String()))
	case f.Type.Kind() == reflect.Pointer && f.Type.Elem().Kind() == reflect.Pointer:
		elem := f.Type.Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		return Info{}, malformed(diag.ClsBaseNotPointer, t,
			"Base must be a single pointer, not a pointer to a pointer").
			withHint("declare the field as", fmt.Sprintf("Base *%s", elem.String()))
	case f.Type.Kind() != reflect.Pointer:
		return Info{}, malformed(diag.ClsBaseNotPointer, t,
			fmt.Sprintf("Base has kind %s, want a pointer to the parent class", f.Type.Kind()))
	case f.Type.Elem().Kind() != reflect.Struct:
		return Info{}, malformed(diag.ClsBaseNotClass, t,
			fmt.Sprintf("Base points at %s, which cannot be a class", f.Type.Elem().String()))
	}
	return Info{Form: classes.FormExtension, Base: f.Type.Elem(), BaseOffset: f.Offset}, nil
}
