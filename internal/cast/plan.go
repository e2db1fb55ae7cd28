package cast

import (
	"fmt"
	"strings"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
)

type StepKind uint8

const (
	// StepRelabel reinterprets the same address as the base class.
	// Free at runtime; recorded so plans stay inspectable.
	StepRelabel StepKind = iota
	// StepLoad reads the borrowed Base pointer stored at Offset bytes
	// into the current struct. The only step that touches memory.
	StepLoad
)

func (k StepKind) String() string {
	switch k {
	case StepRelabel:
		return "relabel"
	case StepLoad:
		return "load"
	}
	return fmt.Sprintf("StepKind(%d)", k)
}

type Step struct {
	Kind   StepKind
	From   classes.ClassID
	To     classes.ClassID
	Offset uintptr
}

// Plan is the verified route from a class to one of its ancestors,
// one step per inheritance edge. An identity cast has no steps.
type Plan struct {
	From  classes.ClassID
	To    classes.ClassID
	Steps []Step
}

// Loads counts the steps that dereference memory.
func (p Plan) Loads() int {
	n := 0
	for _, s := range p.Steps {
		if s.Kind == StepLoad {
			n++
		}
	}
	return n
}

// Describe renders the plan for humans, one line per step.
func (p Plan) Describe(h Hierarchy) string {
	if len(p.Steps) == 0 {
		return fmt.Sprintf("%s: identity", h.NameOf(p.From))
	}
	var b strings.Builder
	for i, s := range p.Steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch s.Kind {
		case StepLoad:
			fmt.Fprintf(&b, "load   %s -> %s (Base at +%d)", h.NameOf(s.From), h.NameOf(s.To), s.Offset)
		default:
			fmt.Fprintf(&b, "relabel %s -> %s", h.NameOf(s.From), h.NameOf(s.To))
		}
	}
	return b.String()
}

// Build compiles the step plan carrying a *source up to *target. The
// pair must already have passed Check; an unrelated pair comes back as
// the same ErrUnrelatedClasses failure Check would have produced.
func Build(h Hierarchy, target, source classes.ClassID) (Plan, error) {
	chain := h.SelfAndAncestors(source)
	steps := make([]Step, 0, len(chain))
	for i, id := range chain {
		if id == target {
			return Plan{From: source, To: target, Steps: steps[:len(steps):len(steps)]}, nil
		}
		if i+1 == len(chain) {
			break
		}
		row, ok := h.Lookup(id)
		if !ok {
			panic(fmt.Sprintf("cast: chain references unknown class %d", id))
		}
		step := Step{Kind: StepRelabel, From: id, To: chain[i+1]}
		if row.Form == classes.FormExtension {
			step.Kind = StepLoad
			step.Offset = row.BaseOffset
		}
		steps = append(steps, step)
	}
	return Plan{}, failed(h, diag.CastUnrelated,
		classes.PtrShape(target), classes.PtrShape(source), ErrUnrelatedClasses,
		fmt.Sprintf("%s is not derived from %s", h.NameOf(source), h.NameOf(target)))
}
