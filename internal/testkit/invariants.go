package testkit

import (
	"fmt"

	"github.com/gdzig/oopz/internal/classes"
)

// CheckTableInvariants runs a minimal set of structural invariants on
// an interned class table:
// 1) every row resolves through Lookup and carries a non-empty name
// 2) ByName round-trips each name to the same id
// 3) a base id resolves and is never the row itself
// 4) base chains terminate at a root within Len() steps
// 5) Depth agrees with the base chain: 0 for roots, Depth(base)+1 otherwise
// 6) rows backed by a Go type round-trip through ByType
func CheckTableInvariants(t *classes.Table) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	var firstErr error
	t.All(func(id classes.ClassID, c classes.Class) {
		if firstErr == nil {
			firstErr = checkRow(t, id)
		}
	})
	return firstErr
}

func checkRow(t *classes.Table, id classes.ClassID) error {
	// 1) row sanity
	row, ok := t.Lookup(id)
	if !ok {
		return fmt.Errorf("row %d not resolvable", id)
	}
	if row.Name == "" {
		return fmt.Errorf("row %d has an empty name", id)
	}

	// 2) name index round-trip
	back, ok := t.ByName(row.Name)
	if !ok {
		return fmt.Errorf("name %q missing from the index", row.Name)
	}
	if back != id {
		return fmt.Errorf("name %q resolves to id %d, want %d", row.Name, back, id)
	}

	// 3) base resolvable, never self
	if row.Base != classes.NoClassID {
		if row.Base == id {
			return fmt.Errorf("class %q is its own base", row.Name)
		}
		if _, ok := t.Lookup(row.Base); !ok {
			return fmt.Errorf("class %q has unresolvable base id %d", row.Name, row.Base)
		}
	}

	// 4) chain termination
	steps := 0
	for cur := row.Base; cur != classes.NoClassID; {
		steps++
		if steps > t.Len() {
			return fmt.Errorf("base chain from %q does not terminate", row.Name)
		}
		next, ok := t.Lookup(cur)
		if !ok {
			return fmt.Errorf("base chain from %q leaves the table at id %d", row.Name, cur)
		}
		cur = next.Base
	}

	// 5) depth consistency
	if row.Base == classes.NoClassID {
		if d := t.Depth(id); d != 0 {
			return fmt.Errorf("root %q has depth %d, want 0", row.Name, d)
		}
	} else if d, pd := t.Depth(id), t.Depth(row.Base); d != pd+1 {
		return fmt.Errorf("class %q has depth %d, base depth %d", row.Name, d, pd)
	}

	// 6) type index round-trip
	if row.GoType != nil {
		typeID, ok := t.ByType(row.GoType)
		if !ok {
			return fmt.Errorf("type %s missing from the index", row.GoType)
		}
		if typeID != id {
			return fmt.Errorf("type %s resolves to id %d, want %d", row.GoType, typeID, id)
		}
	}
	return nil
}

// CheckParentFirst verifies that an ordering visits every base before
// the classes that extend it, references only interned ids, and names
// each id at most once.
func CheckParentFirst(t *classes.Table, order []classes.ClassID) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	seen := make(map[classes.ClassID]bool, len(order))
	for i, id := range order {
		row, ok := t.Lookup(id)
		if !ok {
			return fmt.Errorf("order[%d] names unknown id %d", i, id)
		}
		if seen[id] {
			return fmt.Errorf("order[%d] repeats class %q", i, row.Name)
		}
		seen[id] = true
		if row.Base != classes.NoClassID && !seen[row.Base] {
			return fmt.Errorf("order[%d] places %q before its base %q", i, row.Name, t.NameOf(row.Base))
		}
	}
	return nil
}
