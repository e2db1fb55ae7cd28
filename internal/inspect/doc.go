// Package inspect decides which Go types are classes and keeps the
// registry of every class seen so far.
//
// A class is declared in one of two forms. A handle class embeds a
// base marker (oopz.Root or oopz.Extends[B]) as its only field; an
// extension class borrows its parent through a field named Base of
// type *Parent and may carry any data it wants. Classify recognises
// both forms and rejects everything else with a correction hint.
//
// Registry interns classified types into a classes.Table, pulling in
// the whole base chain transitively and refusing chains that loop.
// Registration happens once per type under a write lock; all queries
// afterwards take the read lock only.
package inspect
