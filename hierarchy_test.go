package oopz

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// The example hierarchy used across the package tests:
//
//	Object <- Node <- Node3D <- MyNode (extension)
//	Object <- RefCounted <- Resource
type Object struct{ Root }
type Node struct{ Extends[Object] }
type Node3D struct{ Extends[Node] }

type MyNode struct {
	Base  *Node3D
	Speed float64
}

type RefCounted struct{ Extends[Object] }
type Resource struct{ Extends[RefCounted] }

// SubNode extends an extension, so its upcasts load twice.
type SubNode struct {
	Base *MyNode
	Tag  string
}

func wantPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", substr)
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, substr) {
			t.Fatalf("panic %q does not contain %q", msg, substr)
		}
	}()
	fn()
}

func TestRootHasNoBaseAndZeroDepth(t *testing.T) {
	if _, ok := BaseOf[Object](); ok {
		t.Fatalf("a root has no base")
	}
	if got := DepthOf[Object](); got != 0 {
		t.Fatalf("DepthOf(Object) = %d, want 0", got)
	}
	if got := AncestorsOf[Object](); len(got) != 0 {
		t.Fatalf("AncestorsOf(Object) = %v, want empty", got)
	}
}

func TestBaseOfWalksOneEdge(t *testing.T) {
	base, ok := BaseOf[Node3D]()
	if !ok || base != TypeOf[Node]() {
		t.Fatalf("BaseOf(Node3D) = %v, want Node", base)
	}
	base, ok = BaseOf[MyNode]()
	if !ok || base != TypeOf[Node3D]() {
		t.Fatalf("BaseOf(MyNode) = %v, want Node3D", base)
	}
}

func TestDepthCountsEdges(t *testing.T) {
	cases := []struct {
		depth int
		got   int
	}{
		{0, DepthOf[Object]()},
		{1, DepthOf[Node]()},
		{2, DepthOf[Node3D]()},
		{3, DepthOf[MyNode]()},
		{4, DepthOf[SubNode]()},
		{2, DepthOf[Resource]()},
	}
	for i, tc := range cases {
		if tc.got != tc.depth {
			t.Fatalf("case %d: depth = %d, want %d", i, tc.got, tc.depth)
		}
	}
}

func TestAncestorsNearestParentFirst(t *testing.T) {
	got := AncestorsOf[MyNode]()
	want := []reflect.Type{TypeOf[Node3D](), TypeOf[Node](), TypeOf[Object]()}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AncestorsOf(MyNode) = %v, want %v", got, want)
	}
	if len(got) != DepthOf[MyNode]() {
		t.Fatalf("ancestors length %d must equal depth %d", len(got), DepthOf[MyNode]())
	}
}

func TestSelfAndAncestorsStartsWithSelf(t *testing.T) {
	got := SelfAndAncestorsOf[Node3D]()
	want := []reflect.Type{TypeOf[Node3D](), TypeOf[Node](), TypeOf[Object]()}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelfAndAncestorsOf(Node3D) = %v, want %v", got, want)
	}
	if len(got) != DepthOf[Node3D]()+1 {
		t.Fatalf("length %d must be depth+1", len(got))
	}
	single := SelfAndAncestorsOf[Object]()
	if len(single) != 1 || single[0] != TypeOf[Object]() {
		t.Fatalf("SelfAndAncestorsOf(Object) = %v", single)
	}
}

func TestIsAReflexive(t *testing.T) {
	if !IsA[Node, Node]() {
		t.Fatalf("every class is itself")
	}
	if !IsA[MyNode, MyNode]() {
		t.Fatalf("every class is itself, extensions included")
	}
}

func TestIsATransitiveNotSymmetric(t *testing.T) {
	if !IsA[Node, Node3D]() || !IsA[Object, MyNode]() {
		t.Fatalf("derivation must be transitive")
	}
	if IsA[Node3D, Node]() {
		t.Fatalf("a base is not its derived class")
	}
	if IsA[MyNode, Object]() {
		t.Fatalf("the root is not a leaf")
	}
}

func TestSharedRootDoesNotRelateSiblingChains(t *testing.T) {
	if IsA[Resource, Node3D]() || IsA[Node3D, Resource]() {
		t.Fatalf("sibling chains under Object must stay unrelated")
	}
	if !IsA[Object, Resource]() || !IsA[Object, Node3D]() {
		t.Fatalf("both chains still reach the shared root")
	}
}

func TestIsAnyMatchesAnyTarget(t *testing.T) {
	if !IsAny[MyNode](TypeOf[Node](), TypeOf[Resource]()) {
		t.Fatalf("MyNode is a Node, the set must match")
	}
	if IsAny[RefCounted](TypeOf[Node](), TypeOf[Resource]()) {
		t.Fatalf("RefCounted is neither a Node nor a Resource")
	}
	if IsAny[Node]() {
		t.Fatalf("the empty set matches nothing")
	}
}

func TestAssertIsAPanicsWithBothNames(t *testing.T) {
	AssertIsA[Object, MyNode]()
	wantPanic(t, "REL2002", func() { AssertIsA[Node3D, Node]() })
	wantPanic(t, "Node3D", func() { AssertIsA[Node3D, Node]() })
}

func TestAssertIsAnyPanicsWithTargetList(t *testing.T) {
	AssertIsAny[MyNode](TypeOf[Node]())
	wantPanic(t, "REL2003", func() {
		AssertIsAny[RefCounted](TypeOf[Node](), TypeOf[Resource]())
	})
}

func TestRegisterReportsMalformedClasses(t *testing.T) {
	type wrongName struct {
		Parent *Node3D
	}
	err := Register[wrongName]()
	if !errors.Is(err, ErrMalformedClass) {
		t.Fatalf("expected ErrMalformedClass, got %v", err)
	}
	if !strings.Contains(err.Error(), "Base") {
		t.Fatalf("error %q should suggest the Base rename", err)
	}
}

func TestRegisterAcceptsTheWholeChain(t *testing.T) {
	if err := Register[SubNode](); err != nil {
		t.Fatalf("Register(SubNode): %v", err)
	}
	if err := Register[Resource](); err != nil {
		t.Fatalf("Register(Resource): %v", err)
	}
}

func TestIsClass(t *testing.T) {
	if !IsClass[Node]() || !IsClass[MyNode]() {
		t.Fatalf("hierarchy members must classify")
	}
	if IsClass[int]() {
		t.Fatalf("int is not a class")
	}
	type plain struct{ X int }
	if IsClass[plain]() {
		t.Fatalf("a plain struct is not a class")
	}
}

func TestQueriesPanicForNonClasses(t *testing.T) {
	wantPanic(t, "CLS", func() { DepthOf[int]() })
	type plain struct{ X int }
	wantPanic(t, "CLS", func() { IsA[Node, plain]() })
}
