package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

// Manifest is one parsed registry manifest. Class and check entries keep
// their file order; names are NFC-normalized and trimmed at parse time so
// every later comparison works on canonical spellings.
type Manifest struct {
	Path    string
	Package Package
	Classes []Class
	Checks  []Check
}

// Package names the generation target.
type Package struct {
	Name string
	Doc  string
}

// Class is one [[class]] entry. Base is empty for roots.
type Class struct {
	Name string
	Base string
	Doc  string
}

// Check is one [[check]] entry. Kind selects which fields matter:
// "isa" and "not-isa" read Class and Target, "cast" and "cast-error"
// read From and To, and "cast-error" additionally names the expected
// rule in Error ("pointer", "optionality", "readonly" or "unrelated").
type Check struct {
	Kind   string
	Class  string
	Target string
	From   string
	To     string
	Error  string
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

type rawManifest struct {
	Package struct {
		Name string `toml:"name"`
		Doc  string `toml:"doc"`
	} `toml:"package"`
	Classes []rawClass `toml:"class"`
	Checks  []rawCheck `toml:"check"`
}

type rawClass struct {
	Name string `toml:"name"`
	Base string `toml:"base"`
	Doc  string `toml:"doc"`
}

type rawCheck struct {
	Kind   string `toml:"kind"`
	Class  string `toml:"class"`
	Target string `toml:"target"`
	From   string `toml:"from"`
	To     string `toml:"to"`
	Error  string `toml:"error"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse decodes manifest content. Only structural failures surface as
// errors here (TOML syntax, a missing or unnamed [package] section);
// everything about the declared classes and checks is validated later,
// during Resolve, where it becomes diagnostics instead.
func Parse(path string, data []byte) (*Manifest, error) {
	var raw rawManifest
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(raw.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}

	m := &Manifest{
		Path: path,
		Package: Package{
			Name: name,
			Doc:  strings.TrimSpace(raw.Package.Doc),
		},
	}
	for _, c := range raw.Classes {
		m.Classes = append(m.Classes, Class{
			Name: canonicalName(c.Name),
			Base: canonicalName(c.Base),
			Doc:  strings.TrimSpace(c.Doc),
		})
	}
	for _, c := range raw.Checks {
		m.Checks = append(m.Checks, Check{
			Kind:   strings.TrimSpace(c.Kind),
			Class:  canonicalName(c.Class),
			Target: canonicalName(c.Target),
			From:   strings.TrimSpace(c.From),
			To:     strings.TrimSpace(c.To),
			Error:  strings.TrimSpace(c.Error),
		})
	}
	return m, nil
}

// canonicalName trims and NFC-normalizes a class name so that visually
// identical spellings land on one table row.
func canonicalName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
