// Package gen renders Go declarations for a resolved class table:
// handle-form structs carrying the marker embeds, plus an optional
// init battery that registers every class and asserts the declared
// relations at program start.
package gen

import (
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"

	"github.com/gdzig/oopz/internal/classes"
)

const (
	// ClassesFile is the conventional output name for the declarations.
	ClassesFile = "classes.gen.go"
	// AssertsFile is the conventional output name for the init battery.
	AssertsFile = "asserts.gen.go"

	markerImport = "github.com/gdzig/oopz"
)

// ErrBadPackage rejects a target package name that is not a plain
// lower-case Go identifier.
var ErrBadPackage = errors.New("invalid package name")

// Options configure one generated file.
type Options struct {
	Package string // target package name
	Doc     string // package doc from the manifest, may be empty
	Source  string // display name of the manifest, lands in the header
}

// Emit renders the declarations for every class in order. The order
// must be parent-first; base names are referenced, never forward
// declared. Output is go/format-clean and deterministic.
func Emit(table *classes.Table, order []classes.ClassID, opts Options) ([]byte, error) {
	if err := checkPackageName(opts.Package); err != nil {
		return nil, err
	}
	var buf strings.Builder
	writeHeader(&buf, opts, true)
	writeImport(&buf, len(order) > 0)
	for _, id := range order {
		row, ok := table.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("generate %s: unknown class id %d", opts.Package, id)
		}
		buf.WriteString("\n")
		writeDoc(&buf, row.Doc)
		if row.Base == classes.NoClassID {
			fmt.Fprintf(&buf, "type %s struct {\n\toopz.Root\n}\n", row.Name)
		} else {
			fmt.Fprintf(&buf, "type %s struct {\n\toopz.Extends[%s]\n}\n", row.Name, table.NameOf(row.Base))
		}
	}
	out, err := format.Source([]byte(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated declarations: %w", err)
	}
	return out, nil
}

// EmitAsserts renders the init battery: MustRegister for every class
// in order, then AssertIsA for every declared base edge. Registering
// parents first keeps the first panic, if any, at the class that
// actually broke.
func EmitAsserts(table *classes.Table, order []classes.ClassID, opts Options) ([]byte, error) {
	if err := checkPackageName(opts.Package); err != nil {
		return nil, err
	}
	var buf strings.Builder
	writeHeader(&buf, opts, false)
	writeImport(&buf, len(order) > 0)
	if len(order) > 0 {
		buf.WriteString("\nfunc init() {\n")
		for _, id := range order {
			fmt.Fprintf(&buf, "\toopz.MustRegister[%s]()\n", table.NameOf(id))
		}
		for _, id := range order {
			row, ok := table.Lookup(id)
			if !ok {
				return nil, fmt.Errorf("generate %s: unknown class id %d", opts.Package, id)
			}
			if row.Base != classes.NoClassID {
				fmt.Fprintf(&buf, "\toopz.AssertIsA[%s, %s]()\n", table.NameOf(row.Base), row.Name)
			}
		}
		buf.WriteString("}\n")
	}
	out, err := format.Source([]byte(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated asserts: %w", err)
	}
	return out, nil
}

func writeHeader(buf *strings.Builder, opts Options, withDoc bool) {
	source := opts.Source
	if source == "" {
		source = "a registry manifest"
	}
	fmt.Fprintf(buf, "// Code generated by oopz from %s. DO NOT EDIT.\n\n", source)
	if withDoc && opts.Doc != "" {
		writeDoc(buf, opts.Doc)
	}
	fmt.Fprintf(buf, "package %s\n", opts.Package)
}

func writeImport(buf *strings.Builder, used bool) {
	if !used {
		return
	}
	fmt.Fprintf(buf, "\nimport (\n\t%q\n)\n", markerImport)
}

func writeDoc(buf *strings.Builder, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			buf.WriteString("//\n")
			continue
		}
		fmt.Fprintf(buf, "// %s\n", line)
	}
}

func checkPackageName(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrBadPackage)
	}
	if token.IsKeyword(s) {
		return fmt.Errorf("%w: %q is a Go keyword", ErrBadPackage, s)
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLower(r) || !unicode.IsLetter(r) {
				return fmt.Errorf("%w: %q must start with a lower-case letter", ErrBadPackage, s)
			}
			continue
		}
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '_' {
			return fmt.Errorf("%w: %q may only contain lower-case letters, digits and underscores", ErrBadPackage, s)
		}
	}
	return nil
}
