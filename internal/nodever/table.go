package nodever

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/saga95/amplify-doctor/pkg/fileutil"
)

// Class is the compatibility classification of a resolved Node version.
type Class string

const (
	// ClassLTS marks a supported long-term-support line.
	ClassLTS Class = "lts"

	// ClassCurrent marks a supported current (non-LTS) line.
	ClassCurrent Class = "current"

	// ClassDeprecated marks a line the build platform has deprecated.
	ClassDeprecated Class = "deprecated"

	// ClassExperimental marks a line not yet recommended for builds.
	ClassExperimental Class = "experimental"

	// ClassUnsupported marks anything the table does not recognize.
	ClassUnsupported Class = "unsupported"
)

// Table is the static Node version compatibility table. The four sets are
// disjoint; classification is a pure lookup. Support sets change as the
// platform evolves, so the table is loadable from a YAML file without code
// changes.
type Table struct {
	// LTS lists supported long-term-support major versions.
	LTS []string `yaml:"lts" json:"lts"`

	// Current lists supported non-LTS major versions.
	Current []string `yaml:"current" json:"current"`

	// Deprecated lists majors the platform still runs but has deprecated.
	Deprecated []string `yaml:"deprecated" json:"deprecated"`

	// Experimental lists majors too new to recommend.
	Experimental []string `yaml:"experimental" json:"experimental"`

	// Default is the major assumed when a project specifies nothing.
	Default string `yaml:"default" json:"default"`

	// Recommended is the major suggested by remediations and used to
	// normalize "lts/*" aliases.
	Recommended string `yaml:"recommended" json:"recommended"`
}

// DefaultTable returns the compatibility table shipped with the binary.
func DefaultTable() *Table {
	return &Table{
		LTS:          []string{"18", "20", "22"},
		Current:      []string{"24"},
		Deprecated:   []string{"12", "14", "16"},
		Experimental: []string{"25"},
		Default:      "20",
		Recommended:  "22",
	}
}

// LoadTable reads a table override from path. A missing file falls back to
// the default table; a present but invalid file is an error so a typo does
// not silently change classifications.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTable(), nil
		}
		return nil, errors.Wrapf(err, "reading compat table %s", path)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrapf(err, "parsing compat table %s", path)
	}
	if err := t.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating compat table %s", path)
	}
	return &t, nil
}

// Save writes the table to path atomically, creating a starting point for
// local overrides.
func (t *Table) Save(path string) error {
	return fileutil.AtomicWriteYAML(path, t)
}

// Validate checks the table is usable.
func (t *Table) Validate() error {
	if t.Default == "" {
		return errors.New("compat table: default version is required")
	}
	if t.Recommended == "" {
		return errors.New("compat table: recommended version is required")
	}
	if len(t.LTS) == 0 && len(t.Current) == 0 {
		return errors.New("compat table: at least one supported version is required")
	}
	return nil
}

// Classify looks up a normalized major version. The four sets are checked
// in a fixed order; anything unmatched is unsupported.
func (t *Table) Classify(major string) Class {
	if contains(t.LTS, major) {
		return ClassLTS
	}
	if contains(t.Current, major) {
		return ClassCurrent
	}
	if contains(t.Deprecated, major) {
		return ClassDeprecated
	}
	if contains(t.Experimental, major) {
		return ClassExperimental
	}
	return ClassUnsupported
}

// Supported returns true for classes safe to build with.
func (c Class) Supported() bool {
	return c == ClassLTS || c == ClassCurrent
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
