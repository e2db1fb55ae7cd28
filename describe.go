package oopz

import (
	"fmt"
	"strings"

	"github.com/gdzig/oopz/internal/cast"
	"github.com/gdzig/oopz/internal/classes"
)

// Describe renders T's place in the hierarchy: its form, its chain up
// to the root, and the step plan of its longest upcast. Unlike the
// generic query functions it reports classification failures as errors
// instead of panicking.
func Describe[T any]() (string, error) {
	id, err := defaultRegistry.Register(TypeOf[T]())
	if err != nil {
		return "", err
	}
	chain := defaultRegistry.Chain(id)

	var b strings.Builder
	self := chain[0]
	switch {
	case self.IsRoot():
		fmt.Fprintf(&b, "class %s (root)\n", self.Name)
	case self.Form == classes.FormExtension:
		fmt.Fprintf(&b, "class %s (extension of %s)\n", self.Name, chain[1].Name)
	default:
		fmt.Fprintf(&b, "class %s (handle, base %s)\n", self.Name, chain[1].Name)
	}
	fmt.Fprintf(&b, "depth %d\n", defaultRegistry.Depth(id))
	b.WriteString("chain:\n")
	for _, c := range chain {
		switch {
		case c.Form == classes.FormExtension:
			fmt.Fprintf(&b, "  %s (extension, Base at +%d)\n", c.Name, c.BaseOffset)
		case c.IsRoot():
			fmt.Fprintf(&b, "  %s (root handle)\n", c.Name)
		default:
			fmt.Fprintf(&b, "  %s (handle)\n", c.Name)
		}
	}
	if len(chain) > 1 {
		rootID := defaultRegistry.SelfAndAncestors(id)[len(chain)-1]
		plan, err := cast.Build(defaultRegistry, rootID, id)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "upcast to %s:\n", defaultRegistry.NameOf(rootID))
		for _, line := range strings.Split(plan.Describe(defaultRegistry), "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	return b.String(), nil
}
