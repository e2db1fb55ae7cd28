package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdzig/oopz/internal/classes"
)

func intern(t *testing.T, table *classes.Table, name string, base classes.ClassID, doc string) classes.ClassID {
	t.Helper()
	id, err := table.Intern(classes.Class{Name: name, Form: classes.FormHandle, Base: base, Doc: doc})
	if err != nil {
		t.Fatalf("Intern(%s): %v", name, err)
	}
	return id
}

func buildTable(t *testing.T) (*classes.Table, []classes.ClassID) {
	t.Helper()
	table := classes.NewTable()
	object := intern(t, table, "Object", classes.NoClassID, "Base of everything.")
	node := intern(t, table, "Node", object, "")
	node3D := intern(t, table, "Node3D", node, "A node in 3D space.")
	return table, []classes.ClassID{object, node, node3D}
}

func TestEmitDeclarations(t *testing.T) {
	table, order := buildTable(t)
	got, err := Emit(table, order, Options{
		Package: "scene",
		Doc:     "Scene graph classes.",
		Source:  "scene.toml",
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := `// Code generated by oopz from scene.toml. DO NOT EDIT.

// Scene graph classes.
package scene

import (
	"github.com/gdzig/oopz"
)

// Base of everything.
type Object struct {
	oopz.Root
}

type Node struct {
	oopz.Extends[Object]
}

// A node in 3D space.
type Node3D struct {
	oopz.Extends[Node]
}
`
	if string(got) != want {
		t.Fatalf("unexpected output:\n--- want ---\n%s\n--- got ---\n%s", want, got)
	}
}

func TestEmitIsDeterministic(t *testing.T) {
	table, order := buildTable(t)
	opts := Options{Package: "scene", Source: "scene.toml"}
	first, err := Emit(table, order, opts)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	second, err := Emit(table, order, opts)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("expected identical output across runs")
	}
}

func TestEmitAsserts(t *testing.T) {
	table, order := buildTable(t)
	got, err := EmitAsserts(table, order, Options{
		Package: "scene",
		Doc:     "Scene graph classes.",
		Source:  "scene.toml",
	})
	if err != nil {
		t.Fatalf("EmitAsserts: %v", err)
	}
	want := `// Code generated by oopz from scene.toml. DO NOT EDIT.

package scene

import (
	"github.com/gdzig/oopz"
)

func init() {
	oopz.MustRegister[Object]()
	oopz.MustRegister[Node]()
	oopz.MustRegister[Node3D]()
	oopz.AssertIsA[Object, Node]()
	oopz.AssertIsA[Node, Node3D]()
}
`
	if string(got) != want {
		t.Fatalf("unexpected output:\n--- want ---\n%s\n--- got ---\n%s", want, got)
	}
}

func TestEmitEmptyOrder(t *testing.T) {
	table := classes.NewTable()
	got, err := Emit(table, nil, Options{Package: "scene", Source: "scene.toml"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if strings.Contains(string(got), "import") {
		t.Fatalf("expected no import for an empty table:\n%s", got)
	}
	asserts, err := EmitAsserts(table, nil, Options{Package: "scene"})
	if err != nil {
		t.Fatalf("EmitAsserts: %v", err)
	}
	if strings.Contains(string(asserts), "init") {
		t.Fatalf("expected no init for an empty table:\n%s", asserts)
	}
}

func TestEmitMultilineDoc(t *testing.T) {
	table := classes.NewTable()
	id := intern(t, table, "Object", classes.NoClassID, "Line one.\n\nLine two.")
	got, err := Emit(table, []classes.ClassID{id}, Options{Package: "scene"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(string(got), "// Line one.\n//\n// Line two.\ntype Object") {
		t.Fatalf("unexpected doc rendering:\n%s", got)
	}
}

func TestEmitRejectsBadPackageNames(t *testing.T) {
	table, order := buildTable(t)
	for _, pkg := range []string{"", "Scene", "my-pkg", "func", "0day", "p p"} {
		_, err := Emit(table, order, Options{Package: pkg})
		if !errors.Is(err, ErrBadPackage) {
			t.Fatalf("package %q: expected ErrBadPackage, got %v", pkg, err)
		}
	}
	if _, err := Emit(table, order, Options{Package: "scene_v2"}); err != nil {
		t.Fatalf("expected scene_v2 accepted, got %v", err)
	}
}

func TestEmitUnknownClassID(t *testing.T) {
	table, _ := buildTable(t)
	_, err := Emit(table, []classes.ClassID{99}, Options{Package: "scene"})
	if err == nil || !strings.Contains(err.Error(), "unknown class id") {
		t.Fatalf("expected an unknown-id error, got %v", err)
	}
}
