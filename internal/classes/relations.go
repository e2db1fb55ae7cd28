package classes

// Relationship queries ------------------------------------------------------
//
// All queries below walk the declared base relation only. Tables are
// acyclic by construction (Intern refuses forward base references), so
// the walks need no visited sets; the step guard exists purely to turn a
// corrupted table into a loud defect instead of a hang.

// Base returns the immediate parent of id, or NoClassID for roots and
// invalid ids. Callers terminate traversal on NoClassID; the sentinel is
// never itself a class.
func (t *Table) Base(id ClassID) ClassID {
	c, ok := t.Lookup(id)
	if !ok {
		return NoClassID
	}
	return c.Base
}

// Depth counts parent-hops from id to its root, not including id.
// Roots have depth 0.
func (t *Table) Depth(id ClassID) int {
	depth := 0
	for cur := t.Base(id); cur != NoClassID; cur = t.Base(cur) {
		depth++
		t.checkWalk(depth)
	}
	return depth
}

// Ancestors returns the parents of id ordered nearest-parent-first,
// root-last. The slice has length Depth(id); the no-base sentinel is
// never included. Roots yield nil.
func (t *Table) Ancestors(id ClassID) []ClassID {
	var chain []ClassID
	for cur := t.Base(id); cur != NoClassID; cur = t.Base(cur) {
		chain = append(chain, cur)
		t.checkWalk(len(chain))
	}
	return chain
}

// SelfAndAncestors returns id followed by Ancestors(id); the result has
// length Depth(id)+1 and always starts with id itself.
func (t *Table) SelfAndAncestors(id ClassID) []ClassID {
	if _, ok := t.Lookup(id); !ok {
		return nil
	}
	return append([]ClassID{id}, t.Ancestors(id)...)
}

// IsA reports whether target is reachable from subject by zero or more
// parent-hops: subject is target itself or one of its descendants. The
// relation is reflexive and transitive, never commutative; the
// candidate ancestor comes first.
func (t *Table) IsA(target, subject ClassID) bool {
	if _, ok := t.Lookup(target); !ok {
		return false
	}
	steps := 0
	for cur := subject; cur != NoClassID; cur = t.Base(cur) {
		if _, ok := t.Lookup(cur); !ok {
			return false
		}
		if cur == target {
			return true
		}
		steps++
		t.checkWalk(steps)
	}
	return false
}

// IsAny reports whether at least one member of targets is an
// ancestor-or-self of subject.
func (t *Table) IsAny(targets []ClassID, subject ClassID) bool {
	for _, target := range targets {
		if t.IsA(target, subject) {
			return true
		}
	}
	return false
}

// checkWalk panics when a base walk takes more steps than the table has
// rows, which is impossible for any table built through Intern.
func (t *Table) checkWalk(steps int) {
	if steps > len(t.classes) {
		panic("classes: base chain longer than table; table is corrupted")
	}
}
