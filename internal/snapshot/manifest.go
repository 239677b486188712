package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Manifest holds the package.json fields the checks care about.
type Manifest struct {
	// Name is the package name.
	Name string `json:"name"`

	// Scripts maps script names to their command lines.
	Scripts map[string]string `json:"scripts"`

	// Dependencies maps runtime dependency names to version ranges.
	Dependencies map[string]string `json:"dependencies"`

	// DevDependencies maps development dependency names to version ranges.
	DevDependencies map[string]string `json:"devDependencies"`

	// Engines holds the declared runtime constraints.
	Engines Engines `json:"engines"`
}

// Engines holds the engines block of package.json.
type Engines struct {
	// Node is the declared Node version range, empty when unset.
	Node string `json:"node"`
}

// HasScript returns true if the manifest declares the named script.
func (m *Manifest) HasScript(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Scripts[name]
	return ok
}

// HasDependency returns true if name appears in dependencies or
// devDependencies.
func (m *Manifest) HasDependency(name string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// readManifest parses package.json at root. A missing or unparsable file is
// an absent facet: the parse note is returned for check messages, the error
// never propagates.
func readManifest(root string) (*Manifest, string) {
	path := filepath.Join(root, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "package.json not found"
		}
		return nil, fmt.Sprintf("package.json unreadable: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Sprintf("package.json is not valid JSON: %v", err)
	}
	return &m, ""
}
