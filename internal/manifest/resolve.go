package manifest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/diag"
)

// Resolved is the outcome of validating a manifest's class declarations.
// Order and Batches are parent-first: a class appears only after its
// base, and every wave holds classes whose bases all sit in earlier
// waves. Entries that failed validation are missing from the table, so
// a Resolved is only complete when no error diagnostics were reported.
type Resolved struct {
	Package Package
	Table   *classes.Table
	Order   []classes.ClassID
	Batches [][]classes.ClassID
}

// Resolve validates the declared classes, orders them parent-first and
// interns the valid subset into a fresh table. Every problem is
// reported through rep; callers decide whether a partial result is
// still useful.
func Resolve(m *Manifest, rep diag.Reporter) *Resolved {
	n := len(m.Classes)
	subject := func(class string) diag.Subject {
		return diag.Subject{File: m.Path, Class: class}
	}

	if n == 0 {
		diag.ReportWarning(rep, diag.ManInfo, subject(""), "manifest declares no classes").Emit()
	}

	// Pass 1: names. Invalid and duplicate entries drop out of the
	// graph here; only the first declaration of a name owns it.
	firstByName := make(map[string]declID, n)
	present := make([]bool, n)
	for i, c := range m.Classes {
		if c.Name == "" {
			diag.ReportError(rep, diag.ManBadClassName, subject(""),
				fmt.Sprintf("class entry %d has no name", i+1)).Emit()
			continue
		}
		if !validClassName(c.Name) {
			b := diag.ReportError(rep, diag.ManBadClassName, subject(c.Name),
				fmt.Sprintf("class name %q is not an exported Go identifier", c.Name))
			if fixed, ok := exportedName(c.Name); ok {
				b.WithHint("export the class name", fixed)
			}
			b.Emit()
			continue
		}
		if prev, dup := firstByName[c.Name]; dup {
			diag.ReportError(rep, diag.ManDuplicate, subject(c.Name),
				fmt.Sprintf("duplicate class %q", c.Name)).
				WithNote(subject(c.Name),
					fmt.Sprintf("previous declaration is class entry %d", int(prev)+1)).
				Emit()
			continue
		}
		firstByName[c.Name] = declID(i)
		present[i] = true
	}

	// Pass 2: base edges, parent → child. A class whose base does not
	// resolve leaves the graph entirely; its descendants then surface
	// as leftovers below and stay unreported, the cause already is.
	g := classGraph{
		Edges:   make([][]declID, n),
		Indeg:   make([]int, n),
		Present: present,
	}
	for i, c := range m.Classes {
		if !g.Present[i] || c.Base == "" {
			continue
		}
		if c.Base == c.Name {
			diag.ReportError(rep, diag.ManBaseCycle, subject(c.Name),
				fmt.Sprintf("class %q extends itself", c.Name)).Emit()
			g.Present[i] = false
			continue
		}
		parent, ok := firstByName[c.Base]
		if !ok {
			diag.ReportError(rep, diag.ManUnknownBase, subject(c.Name),
				fmt.Sprintf("class %q extends unknown class %q", c.Name, c.Base)).Emit()
			g.Present[i] = false
			continue
		}
		g.Edges[int(parent)] = append(g.Edges[int(parent)], declID(i))
		g.Indeg[i]++
	}

	t := toposortKahn(g)
	if t.Cyclic {
		reportCycles(m, g, t, firstByName, rep)
	}

	// Pass 3: intern wave by wave. Bases were interned in an earlier
	// wave, so every lookup below must hit.
	res := &Resolved{Package: m.Package, Table: classes.NewTable()}
	ids := make([]classes.ClassID, n)
	for _, wave := range t.Batches {
		batch := make([]classes.ClassID, 0, len(wave))
		for _, id := range wave {
			c := m.Classes[int(id)]
			base := classes.NoClassID
			if c.Base != "" {
				base = ids[int(firstByName[c.Base])]
			}
			cid, err := res.Table.Intern(classes.Class{
				Name: c.Name,
				Form: classes.FormHandle,
				Base: base,
				Doc:  c.Doc,
			})
			if err != nil {
				panic(fmt.Errorf("intern %q after validation: %w", c.Name, err))
			}
			ids[int(id)] = cid
			res.Order = append(res.Order, cid)
			batch = append(batch, cid)
		}
		res.Batches = append(res.Batches, batch)
	}
	return res
}

// reportCycles separates the toposort leftovers into true base cycles
// and casualties. Cycle members each get a diagnostic naming the full
// loop; entries that merely hang below a cycle or below an absent
// parent stay silent, their cause is already reported.
func reportCycles(m *Manifest, g classGraph, t *topo, byName map[string]declID, rep diag.Reporter) {
	handled := make(map[declID]bool, len(t.Cycles))
	for _, id := range t.Cycles {
		if handled[id] {
			continue
		}
		seen := make(map[declID]int)
		trail := make([]declID, 0, 4)
		cur := id
		for {
			if handled[cur] {
				// The walk ran into a loop already reported; everything
				// on this trail just hangs below it.
				break
			}
			if pos, ok := seen[cur]; ok {
				members := trail[pos:]
				names := make([]string, 0, len(members)+1)
				for _, mid := range members {
					names = append(names, m.Classes[int(mid)].Name)
				}
				names = append(names, names[0])
				summary := strings.Join(names, " -> ")
				for _, mid := range members {
					name := m.Classes[int(mid)].Name
					diag.ReportError(rep, diag.ManBaseCycle,
						diag.Subject{File: m.Path, Class: name},
						fmt.Sprintf("class %q participates in a base cycle: %s", name, summary)).Emit()
				}
				break
			}
			seen[cur] = len(trail)
			trail = append(trail, cur)
			next, ok := byName[m.Classes[int(cur)].Base]
			if !ok || !g.Present[int(next)] {
				break
			}
			cur = next
		}
		for _, tid := range trail {
			handled[tid] = true
		}
	}
}

// validClassName reports whether s works as an exported Go type name.
func validClassName(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsUpper(r) || !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return s != ""
}

// exportedName uppercases the first rune when that alone repairs the
// name, yielding a hint replacement.
func exportedName(s string) (string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) || unicode.IsUpper(r) {
		return "", false
	}
	fixed := string(unicode.ToUpper(r)) + s[size:]
	if !validClassName(fixed) {
		return "", false
	}
	return fixed, true
}
