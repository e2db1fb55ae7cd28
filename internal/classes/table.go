package classes

import (
	"errors"
	"fmt"
	"reflect"

	"fortio.org/safecast"
)

// Table interns class descriptors and answers hierarchy queries over
// them. Rows are append-only; a row's base must already be interned, so
// a table can never represent a base cycle.
type Table struct {
	classes []Class
	byName  map[string]ClassID
	byType  map[reflect.Type]ClassID
}

var (
	// ErrEmptyName rejects a class descriptor with no name.
	ErrEmptyName = errors.New("class name is empty")
	// ErrDuplicateName rejects a second class with an already-interned name.
	ErrDuplicateName = errors.New("duplicate class name")
	// ErrDuplicateType rejects a second class backed by the same Go type.
	ErrDuplicateType = errors.New("duplicate class type")
	// ErrUnknownBase rejects a descriptor whose base is not interned yet.
	ErrUnknownBase = errors.New("base class not interned")
)

// NewTable constructs an empty table with row 0 reserved as the invalid
// sentinel.
func NewTable() *Table {
	t := &Table{
		byName: make(map[string]ClassID, 16),
		byType: make(map[reflect.Type]ClassID, 16),
	}
	t.classes = append(t.classes, Class{}) // reserve 0 for NoClassID
	return t
}

// Intern appends a class descriptor and returns its ClassID. The
// descriptor's Base must be NoClassID or a previously returned id; this
// ordering requirement is what keeps the base relation acyclic by
// construction.
func (t *Table) Intern(c Class) (ClassID, error) {
	if c.Name == "" {
		return NoClassID, ErrEmptyName
	}
	if _, dup := t.byName[c.Name]; dup {
		return NoClassID, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}
	if c.GoType != nil {
		if _, dup := t.byType[c.GoType]; dup {
			return NoClassID, fmt.Errorf("%w: %s", ErrDuplicateType, c.GoType)
		}
	}
	if c.Base != NoClassID && int(c.Base) >= len(t.classes) {
		return NoClassID, fmt.Errorf("%w: class %q names base id %d", ErrUnknownBase, c.Name, c.Base)
	}
	lenClasses, err := safecast.Conv[uint32](len(t.classes))
	if err != nil {
		panic(fmt.Errorf("len(classes) overflow: %w", err))
	}
	id := ClassID(lenClasses)
	t.classes = append(t.classes, c)
	t.byName[c.Name] = id
	if c.GoType != nil {
		t.byType[c.GoType] = id
	}
	return id, nil
}

// Lookup returns the descriptor for a ClassID.
func (t *Table) Lookup(id ClassID) (Class, bool) {
	if id == NoClassID || int(id) >= len(t.classes) {
		return Class{}, false
	}
	return t.classes[id], true
}

// MustLookup panics when id is invalid.
func (t *Table) MustLookup(id ClassID) Class {
	c, ok := t.Lookup(id)
	if !ok {
		panic("classes: invalid ClassID")
	}
	return c
}

// ByName resolves a class name to its id.
func (t *Table) ByName(name string) (ClassID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// ByType resolves a Go type to its id.
func (t *Table) ByType(rt reflect.Type) (ClassID, bool) {
	if rt == nil {
		return NoClassID, false
	}
	id, ok := t.byType[rt]
	return id, ok
}

// Len returns the number of interned classes, excluding the reserved
// sentinel row.
func (t *Table) Len() int {
	return len(t.classes) - 1
}

// All calls fn for every interned class in id order.
func (t *Table) All(fn func(ClassID, Class)) {
	for i := 1; i < len(t.classes); i++ {
		fn(ClassID(i), t.classes[i])
	}
}

// NameOf returns the class name, or a placeholder for invalid ids. It
// exists so diagnostics never have to branch on lookup failures.
func (t *Table) NameOf(id ClassID) string {
	c, ok := t.Lookup(id)
	if !ok {
		return "<none>"
	}
	return c.Name
}

// FormatShape renders a shape the way manifests spell them: an optional
// "?" prefix, "*" for pointers, and "const" for read-only views.
func (t *Table) FormatShape(s Shape) string {
	out := ""
	if s.Optional {
		out += "?"
	}
	if s.Pointer {
		out += "*"
	}
	if s.ReadOnly {
		out += "const "
	}
	return out + t.NameOf(s.Class)
}
