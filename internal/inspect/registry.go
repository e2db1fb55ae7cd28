package inspect

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
)

// Registry owns the table of live Go classes. Types are classified and
// interned on first use, together with their whole base chain; every
// later query is a read-only lookup. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	table *classes.Table
}

func NewRegistry() *Registry {
	return &Registry{table: classes.NewTable()}
}

// Register classifies t and interns it with all its ancestors.
// Registering an already known type is a cheap lookup.
func (r *Registry) Register(t reflect.Type) (classes.ClassID, error) {
	r.mu.RLock()
	id, ok := r.table.ByType(t)
	r.mu.RUnlock()
	if ok {
		return id, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(t, nil)
}

// MustRegister is Register panicking on rejection. Intended for package
// init blocks, where a malformed hierarchy should stop the program the
// way a build break would.
func (r *Registry) MustRegister(t reflect.Type) classes.ClassID {
	id, err := r.Register(t)
	if err != nil {
		panic(err)
	}
	return id
}

func (r *Registry) register(t reflect.Type, trail []reflect.Type) (classes.ClassID, error) {
	if id, ok := r.table.ByType(t); ok {
		return id, nil
	}
	for _, prev := range trail {
		if prev == t {
			return classes.NoClassID, cycleError(append(trail, t))
		}
	}
	info, err := Classify(t)
	if err != nil {
		return classes.NoClassID, err
	}
	base := classes.NoClassID
	if info.Base != nil {
		base, err = r.register(info.Base, append(trail, t))
		if err != nil {
			if errors.Is(err, ErrHierarchyCycle) {
				return classes.NoClassID, err
			}
			return classes.NoClassID, malformed(diag.ClsBaseNotClass, t,
				fmt.Sprintf("declared base %s is not a class: %v", info.Base.String(), err))
		}
	}
	id, err := r.table.Intern(classes.Class{
		Name:       t.String(),
		Form:       info.Form,
		Base:       base,
		GoType:     t,
		BaseOffset: info.BaseOffset,
	})
	if err != nil {
		if errors.Is(err, classes.ErrDuplicateName) {
			return classes.NoClassID, malformed(diag.ClsDuplicateName, t,
				fmt.Sprintf("another type already registered the name %s", t.String()))
		}
		return classes.NoClassID, err
	}
	return id, nil
}

func cycleError(trail []reflect.Type) *ClassError {
	names := make([]string, len(trail))
	for i, t := range trail {
		names[i] = t.String()
	}
	return &ClassError{
		Code:     diag.ClsBaseCycle,
		Type:     trail[0],
		Msg:      fmt.Sprintf("base chain forms a cycle: %s", strings.Join(names, " -> ")),
		sentinel: ErrHierarchyCycle,
	}
}

// IDOf returns the interned id without registering.
func (r *Registry) IDOf(t reflect.Type) (classes.ClassID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.ByType(t)
}

// Lookup returns the interned descriptor for id.
func (r *Registry) Lookup(id classes.ClassID) (classes.Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Lookup(id)
}

func (r *Registry) NameOf(id classes.ClassID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.NameOf(id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Len()
}

func (r *Registry) Base(id classes.ClassID) classes.ClassID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Base(id)
}

func (r *Registry) Depth(id classes.ClassID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Depth(id)
}

func (r *Registry) Ancestors(id classes.ClassID) []classes.ClassID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Ancestors(id)
}

func (r *Registry) SelfAndAncestors(id classes.ClassID) []classes.ClassID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.SelfAndAncestors(id)
}

func (r *Registry) IsA(target, subject classes.ClassID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.IsA(target, subject)
}

func (r *Registry) IsAny(targets []classes.ClassID, subject classes.ClassID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.IsAny(targets, subject)
}

func (r *Registry) FormatShape(s classes.Shape) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.FormatShape(s)
}

// Chain returns the descriptor rows for id and all its ancestors,
// nearest first. The slice is freshly allocated on every call.
func (r *Registry) Chain(id classes.ClassID) []classes.Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.table.SelfAndAncestors(id)
	out := make([]classes.Class, 0, len(ids))
	for _, cid := range ids {
		c, ok := r.table.Lookup(cid)
		if !ok {
			panic("inspect: registry chain references unknown class")
		}
		out = append(out, c)
	}
	return out
}
