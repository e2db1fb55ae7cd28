package testkit

import (
	"strings"
	"testing"

	"github.com/gdzig/oopz/internal/classes"
)

func buildTable(t *testing.T) (*classes.Table, []classes.ClassID) {
	t.Helper()
	table := classes.NewTable()
	var order []classes.ClassID
	base := classes.NoClassID
	for _, name := range []string{"Object", "Node", "Node3D"} {
		id, err := table.Intern(classes.Class{Name: name, Form: classes.FormHandle, Base: base})
		if err != nil {
			t.Fatalf("Intern(%s): %v", name, err)
		}
		order = append(order, id)
		base = id
	}
	return table, order
}

func TestCheckTableInvariants(t *testing.T) {
	table, _ := buildTable(t)
	if err := CheckTableInvariants(table); err != nil {
		t.Fatalf("expected a clean table, got %v", err)
	}
	if err := CheckTableInvariants(nil); err == nil {
		t.Fatal("expected an error for a nil table")
	}
	if err := CheckTableInvariants(classes.NewTable()); err != nil {
		t.Fatalf("expected an empty table to pass, got %v", err)
	}
}

func TestCheckParentFirst(t *testing.T) {
	table, order := buildTable(t)
	if err := CheckParentFirst(table, order); err != nil {
		t.Fatalf("expected parent-first order accepted, got %v", err)
	}

	scrambled := []classes.ClassID{order[2], order[0], order[1]}
	err := CheckParentFirst(table, scrambled)
	if err == nil || !strings.Contains(err.Error(), "before its base") {
		t.Fatalf("expected a parent-first violation, got %v", err)
	}

	repeated := []classes.ClassID{order[0], order[0]}
	err = CheckParentFirst(table, repeated)
	if err == nil || !strings.Contains(err.Error(), "repeats") {
		t.Fatalf("expected a repeat violation, got %v", err)
	}

	err = CheckParentFirst(table, []classes.ClassID{99})
	if err == nil || !strings.Contains(err.Error(), "unknown id") {
		t.Fatalf("expected an unknown-id violation, got %v", err)
	}
}
