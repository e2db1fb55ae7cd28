// Package oopz is a static single-inheritance engine for Go types.
//
// A hierarchy is declared with ordinary structs in one of two forms.
// Handle classes embed a marker as their only field and carry no data;
// extension classes borrow their parent through a Base pointer and may
// carry anything:
//
//	type Object struct{ oopz.Root }
//	type Node struct{ oopz.Extends[Object] }
//	type Node3D struct{ oopz.Extends[Node] }
//
//	type MyNode struct {
//		Base  *Node3D
//		Speed float64
//	}
//
// Declarations are verified once, on first use, and a malformed one
// panics the way a build break would; init-block asserts move that
// moment to startup:
//
//	func init() {
//		oopz.MustRegister[MyNode]()
//		oopz.AssertIsA[Node, MyNode]()
//	}
//
// Relationship queries (BaseOf, DepthOf, AncestorsOf, IsA, IsAny) walk
// the verified chain. Upcast converts a pointer to any of its bases
// without allocating or copying: handle hops relabel the address,
// extension hops read the borrowed Base field, and the result
// addresses the same instance at the requested ancestor level.
//
//	n := oopz.Upcast[Node](my) // *MyNode -> *Node, same instance
//
// Absence and immutability are part of the cast: optionality must
// match on both sides (UpcastOptional for maybe-absent values), and a
// read-only view (Freeze) can be upcast but never made mutable again.
//
// The oopz command drives the same engine over TOML hierarchy
// manifests: it prints class trees, runs cast check batteries, and
// generates Go declarations.
package oopz
