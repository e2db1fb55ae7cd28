package inspect

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
	"github.com/gdzig/oopz/internal/testkit"
)

func TestRegistryRegistersWholeChain(t *testing.T) {
	reg := NewRegistry()
	id, err := reg.Register(typeOf[myNode]())
	if err != nil {
		t.Fatalf("Register(myNode): %v", err)
	}
	if reg.Len() != 4 {
		t.Fatalf("expected 4 classes (myNode chain), got %d", reg.Len())
	}
	if got := reg.Depth(id); got != 3 {
		t.Fatalf("Depth(myNode) = %d, want 3", got)
	}
	objID, ok := reg.IDOf(typeOf[object]())
	if !ok {
		t.Fatalf("object was not registered transitively")
	}
	if !reg.IsA(objID, id) {
		t.Fatalf("myNode must be an object")
	}
	if reg.IsA(id, objID) {
		t.Fatalf("object must not be a myNode")
	}
	if err := testkit.CheckTableInvariants(reg.table); err != nil {
		t.Fatalf("table invariants: %v", err)
	}
}

func TestRegistryIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	first, err := reg.Register(typeOf[node3D]())
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}
	second, err := reg.Register(typeOf[node3D]())
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if first != second {
		t.Fatalf("ids differ across registrations: %d vs %d", first, second)
	}
	if reg.Len() != 3 {
		t.Fatalf("re-registration must not grow the table, got %d", reg.Len())
	}
}

type cycleA struct{ extends[cycleB] }
type cycleB struct{ extends[cycleA] }

func TestRegistryDetectsMarkerCycle(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(typeOf[cycleA]())
	if !errors.Is(err, ErrHierarchyCycle) {
		t.Fatalf("expected ErrHierarchyCycle, got %v", err)
	}
	var cerr *ClassError
	if !errors.As(err, &cerr) || cerr.Code != diag.ClsBaseCycle {
		t.Fatalf("expected ClsBaseCycle, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("a rejected chain must intern nothing, got %d rows", reg.Len())
	}
}

type selfRef struct {
	Base *selfRef
}

func TestRegistryDetectsSelfCycle(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(typeOf[selfRef]())
	if !errors.Is(err, ErrHierarchyCycle) {
		t.Fatalf("expected ErrHierarchyCycle, got %v", err)
	}
}

type notAClassParent struct{ X int }

type badChild struct {
	Base *notAClassParent
}

func TestRegistryRejectsNonClassBase(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(typeOf[badChild]())
	if !errors.Is(err, ErrMalformedClass) {
		t.Fatalf("expected ErrMalformedClass, got %v", err)
	}
	var cerr *ClassError
	if !errors.As(err, &cerr) || cerr.Code != diag.ClsBaseNotClass {
		t.Fatalf("expected ClsBaseNotClass, got %v", err)
	}
}

func TestMustRegisterPanicsOnRejection(t *testing.T) {
	reg := NewRegistry()
	defer func() {
		if recover() == nil {
			t.Fatalf("MustRegister must panic for a malformed class")
		}
	}()
	reg.MustRegister(reflect.TypeOf(42))
}

func TestRegistryChain(t *testing.T) {
	reg := NewRegistry()
	id, err := reg.Register(typeOf[myNode]())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	chain := reg.Chain(id)
	if len(chain) != 4 {
		t.Fatalf("chain length = %d, want 4", len(chain))
	}
	if chain[0].GoType != typeOf[myNode]() || chain[3].GoType != typeOf[object]() {
		t.Fatalf("chain order wrong: %s ... %s", chain[0].Name, chain[3].Name)
	}
	if chain[0].Form != classes.FormExtension {
		t.Fatalf("myNode row must be extension form")
	}
	if chain[1].Form != classes.FormHandle {
		t.Fatalf("node3D row must be handle form")
	}
}

func TestRegistryConcurrentRegistration(t *testing.T) {
	reg := NewRegistry()
	ids := make([]classes.ClassID, 8)
	var g errgroup.Group
	for i := range ids {
		g.Go(func() error {
			id, err := reg.Register(typeOf[myNode]())
			ids[i] = id
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Register: %v", err)
	}
	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("concurrent registrations disagree: %v", ids)
		}
	}
	if reg.Len() != 4 {
		t.Fatalf("expected 4 classes, got %d", reg.Len())
	}
}
