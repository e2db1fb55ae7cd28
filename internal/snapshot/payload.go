package snapshot

import (
	"github.com/gdzig/oopz/internal/classes"
	"github.com/gdzig/oopz/internal/manifest"
)

// Payload is the disk form of one cleanly validated manifest. Classes
// are stored parent-first, so restoring is a straight re-intern with
// no second validation pass; Waves records the batch sizes the
// resolver produced over that order.
type Payload struct {
	Schema  uint16
	Path    string
	Package string
	PkgDoc  string
	Classes []PayloadClass
	Waves   []int
	Checks  []PayloadCheck
}

// PayloadClass is one table row. Base is empty for roots.
type PayloadClass struct {
	Name string
	Base string
	Doc  string
}

// PayloadCheck mirrors manifest.Check.
type PayloadCheck struct {
	Kind   string
	Class  string
	Target string
	From   string
	To     string
	Error  string
}

// Encode converts a manifest and its resolution into a payload.
// Callers should only cache results that resolved without diagnostics;
// a partial table would silently lose its dropped entries here.
func Encode(m *manifest.Manifest, r *manifest.Resolved) *Payload {
	p := &Payload{
		Schema:  schemaVersion,
		Path:    m.Path,
		Package: r.Package.Name,
		PkgDoc:  r.Package.Doc,
		Classes: make([]PayloadClass, 0, len(r.Order)),
		Waves:   make([]int, 0, len(r.Batches)),
		Checks:  make([]PayloadCheck, 0, len(m.Checks)),
	}
	for _, id := range r.Order {
		row := r.Table.MustLookup(id)
		base := ""
		if row.Base != classes.NoClassID {
			base = r.Table.NameOf(row.Base)
		}
		p.Classes = append(p.Classes, PayloadClass{Name: row.Name, Base: base, Doc: row.Doc})
	}
	for _, wave := range r.Batches {
		p.Waves = append(p.Waves, len(wave))
	}
	for _, c := range m.Checks {
		p.Checks = append(p.Checks, PayloadCheck(c))
	}
	return p
}

// Restore rebuilds the manifest and its resolution from a payload.
// It reports false when the payload comes from another schema version
// or does not re-intern cleanly; the caller then falls back to a full
// parse.
func (p *Payload) Restore() (*manifest.Manifest, *manifest.Resolved, bool) {
	if p == nil || p.Schema != schemaVersion {
		return nil, nil, false
	}
	total := 0
	for _, w := range p.Waves {
		if w <= 0 {
			return nil, nil, false
		}
		total += w
	}
	if total != len(p.Classes) {
		return nil, nil, false
	}

	m := &manifest.Manifest{
		Path:    p.Path,
		Package: manifest.Package{Name: p.Package, Doc: p.PkgDoc},
	}
	r := &manifest.Resolved{
		Package: m.Package,
		Table:   classes.NewTable(),
		Order:   make([]classes.ClassID, 0, len(p.Classes)),
	}
	for _, row := range p.Classes {
		m.Classes = append(m.Classes, manifest.Class{Name: row.Name, Base: row.Base, Doc: row.Doc})
		base := classes.NoClassID
		if row.Base != "" {
			id, ok := r.Table.ByName(row.Base)
			if !ok {
				return nil, nil, false
			}
			base = id
		}
		id, err := r.Table.Intern(classes.Class{
			Name: row.Name,
			Form: classes.FormHandle,
			Base: base,
			Doc:  row.Doc,
		})
		if err != nil {
			return nil, nil, false
		}
		r.Order = append(r.Order, id)
	}
	next := 0
	for _, w := range p.Waves {
		r.Batches = append(r.Batches, r.Order[next:next+w])
		next += w
	}
	for _, c := range p.Checks {
		m.Checks = append(m.Checks, manifest.Check(c))
	}
	return m, r, true
}
