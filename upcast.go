package oopz

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/gdzig/oopz/internal/cast"
)

type planKey struct {
	from reflect.Type
	to   reflect.Type
}

// loadStep is one Base-pointer dereference of a verified plan. owner
// names the extension class whose Base is read, for the panic message
// when a broken construction left it nil.
type loadStep struct {
	offset uintptr
	owner  string
}

type compiledPlan struct {
	loads []loadStep
}

var (
	planMu    sync.RWMutex
	planCache = make(map[planKey]*compiledPlan)
)

// planFor verifies the pair on first use and caches the compiled
// steps. Verification failures panic: an invalid cast pair is a defect
// in the program, not a runtime condition.
func planFor(to, from reflect.Type) *compiledPlan {
	key := planKey{from: from, to: to}
	planMu.RLock()
	p := planCache[key]
	planMu.RUnlock()
	if p != nil {
		return p
	}

	toID := classIDFor(to)
	fromID := classIDFor(from)
	plan, err := cast.Build(defaultRegistry, toID, fromID)
	if err != nil {
		panic(err)
	}
	built := &compiledPlan{}
	for _, s := range plan.Steps {
		if s.Kind == cast.StepLoad {
			built.loads = append(built.loads, loadStep{
				offset: s.Offset,
				owner:  defaultRegistry.NameOf(s.From),
			})
		}
	}

	planMu.Lock()
	if cached := planCache[key]; cached != nil {
		planMu.Unlock()
		return cached
	}
	planCache[key] = built
	planMu.Unlock()
	return built
}

func (p *compiledPlan) run(addr unsafe.Pointer) unsafe.Pointer {
	for _, ld := range p.loads {
		next := *(*unsafe.Pointer)(unsafe.Add(addr, ld.offset))
		if next == nil {
			panic(fmt.Sprintf("oopz: %s holds a nil Base; the instance was not constructed through its parent", ld.owner))
		}
		addr = next
	}
	return addr
}

// Upcast converts a *From to the *To it contains, where To is From or
// any of its bases. The result addresses the same instance: handle
// hops reinterpret the pointer, extension hops read the borrowed Base
// field. Nothing is allocated or copied and ownership is untouched.
//
// The pair is verified on first use; an unrelated or malformed pair
// panics then and never again varies. v must not be nil, a maybe-absent
// value goes through UpcastOptional.
func Upcast[To, From any](v *From) *To {
	if v == nil {
		panic(fmt.Sprintf("oopz: Upcast of nil *%s; use UpcastOptional for values that may be absent",
			TypeOf[From]().String()))
	}
	p := planFor(TypeOf[To](), TypeOf[From]())
	return (*To)(p.run(unsafe.Pointer(v)))
}

// UpcastOptional is Upcast for values that may be absent: a nil input
// short-circuits to a nil output without touching the plan.
func UpcastOptional[To, From any](v *From) *To {
	if v == nil {
		return nil
	}
	p := planFor(TypeOf[To](), TypeOf[From]())
	return (*To)(p.run(unsafe.Pointer(v)))
}
