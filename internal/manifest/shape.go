package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// shapeLit is the syntactic form of a cast operand in a [[check]]
// entry, before its class name is resolved against a table.
type shapeLit struct {
	Optional bool
	Pointer  bool
	ReadOnly bool
	Name     string
}

// parseShape reads the `?*const Name` grammar: "?" marks optionality,
// "*" a pointer, the word "const" a read-only view, then the class
// name. The attributes are fixed in exactly that order, matching how
// Table.FormatShape renders them back.
func parseShape(s string) (shapeLit, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return shapeLit{}, errors.New("shape is empty")
	}
	var lit shapeLit
	if after, ok := strings.CutPrefix(rest, "?"); ok {
		lit.Optional = true
		rest = after
	}
	if after, ok := strings.CutPrefix(rest, "*"); ok {
		lit.Pointer = true
		rest = after
	}
	if after, ok := strings.CutPrefix(rest, "const "); ok {
		lit.ReadOnly = true
		rest = strings.TrimSpace(after)
	}
	if rest == "" || rest == "const" {
		return shapeLit{}, fmt.Errorf("shape %q names no class", s)
	}
	lit.Name = canonicalName(rest)
	if !validClassName(lit.Name) {
		return shapeLit{}, fmt.Errorf("shape %q does not end in a class name", s)
	}
	return lit, nil
}
