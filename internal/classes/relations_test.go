package classes

import (
	"reflect"
	"testing"
)

// buildChain interns Object <- Node <- Node3D <- MyNode plus the
// Object <- RefCounted <- Resource branch and returns the table with
// the ids keyed by name.
func buildChain(t *testing.T) (*Table, map[string]ClassID) {
	t.Helper()
	tbl := NewTable()
	ids := make(map[string]ClassID)
	intern := func(name string, base ClassID, form Form) ClassID {
		id, err := tbl.Intern(Class{Name: name, Form: form, Base: base})
		if err != nil {
			t.Fatalf("intern %s: %v", name, err)
		}
		ids[name] = id
		return id
	}
	obj := intern("Object", NoClassID, FormHandle)
	node := intern("Node", obj, FormHandle)
	node3d := intern("Node3D", node, FormHandle)
	intern("MyNode", node3d, FormExtension)
	ref := intern("RefCounted", obj, FormHandle)
	intern("Resource", ref, FormHandle)
	return tbl, ids
}

func TestBaseWalksOneStep(t *testing.T) {
	tbl, ids := buildChain(t)
	if got := tbl.Base(ids["MyNode"]); got != ids["Node3D"] {
		t.Fatalf("Base(MyNode) = %s, want Node3D", tbl.NameOf(got))
	}
	if got := tbl.Base(ids["Object"]); got != NoClassID {
		t.Fatalf("Base(Object) = %s, want none", tbl.NameOf(got))
	}
	if got := tbl.Base(NoClassID); got != NoClassID {
		t.Fatalf("Base of sentinel must be sentinel, got %s", tbl.NameOf(got))
	}
}

func TestDepthCountsEdgesToRoot(t *testing.T) {
	tbl, ids := buildChain(t)
	cases := []struct {
		name string
		want int
	}{
		{"Object", 0},
		{"Node", 1},
		{"Node3D", 2},
		{"MyNode", 3},
		{"Resource", 2},
	}
	for _, tc := range cases {
		if got := tbl.Depth(ids[tc.name]); got != tc.want {
			t.Fatalf("Depth(%s) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestAncestorsNearestFirst(t *testing.T) {
	tbl, ids := buildChain(t)
	got := tbl.Ancestors(ids["MyNode"])
	want := []ClassID{ids["Node3D"], ids["Node"], ids["Object"]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Ancestors(MyNode) = %v, want %v", got, want)
	}
	if got := tbl.Ancestors(ids["Object"]); len(got) != 0 {
		t.Fatalf("Ancestors(Object) = %v, want empty", got)
	}
}

func TestSelfAndAncestorsPrependsSelf(t *testing.T) {
	tbl, ids := buildChain(t)
	got := tbl.SelfAndAncestors(ids["Node3D"])
	want := []ClassID{ids["Node3D"], ids["Node"], ids["Object"]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelfAndAncestors(Node3D) = %v, want %v", got, want)
	}
	got = tbl.SelfAndAncestors(ids["Object"])
	want = []ClassID{ids["Object"]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelfAndAncestors(Object) = %v, want %v", got, want)
	}
}

func TestIsAReflexiveAndTransitive(t *testing.T) {
	tbl, ids := buildChain(t)
	cases := []struct {
		target, subject string
		want            bool
	}{
		{"Node", "Node", true},
		{"Object", "MyNode", true},
		{"Node", "Node3D", true},
		{"Node3D", "Node", false},
		{"Node", "Resource", false},
		{"Resource", "Node3D", false},
		{"Object", "Resource", true},
	}
	for _, tc := range cases {
		if got := tbl.IsA(ids[tc.target], ids[tc.subject]); got != tc.want {
			t.Fatalf("IsA(%s, %s) = %v, want %v", tc.target, tc.subject, got, tc.want)
		}
	}
}

func TestIsASentinelNeverRelates(t *testing.T) {
	tbl, ids := buildChain(t)
	if tbl.IsA(NoClassID, ids["Node"]) {
		t.Fatalf("nothing is a sentinel class")
	}
	if tbl.IsA(ids["Node"], NoClassID) {
		t.Fatalf("sentinel class is not a Node")
	}
	if tbl.IsA(NoClassID, NoClassID) {
		t.Fatalf("sentinel must not relate to itself")
	}
}

func TestIsAnyMatchesFirstHit(t *testing.T) {
	tbl, ids := buildChain(t)
	targets := []ClassID{ids["Resource"], ids["Node"]}
	if !tbl.IsAny(targets, ids["MyNode"]) {
		t.Fatalf("MyNode should match Node in the target set")
	}
	if tbl.IsAny(targets, ids["RefCounted"]) {
		t.Fatalf("RefCounted matches neither Resource nor Node")
	}
	if tbl.IsAny(nil, ids["MyNode"]) {
		t.Fatalf("empty target set must never match")
	}
}
