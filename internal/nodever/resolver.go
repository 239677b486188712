// Package nodever resolves the authoritative Node version for a project
// from its conflicting configuration sources and classifies the result
// against a compatibility table.
package nodever

import (
	"fmt"
	"strings"
)

// Origin identifies where a version value was read from.
type Origin string

const (
	// OriginCIConfig is the nvm pragma inside amplify.yml.
	OriginCIConfig Origin = "amplify.yml"

	// OriginNvmrc is the .nvmrc file.
	OriginNvmrc Origin = ".nvmrc"

	// OriginNodeVersionFile is the .node-version file.
	OriginNodeVersionFile Origin = ".node-version"

	// OriginManifest is package.json engines.node.
	OriginManifest Origin = "package.json"

	// OriginNetlify is NODE_VERSION in netlify.toml.
	OriginNetlify Origin = "netlify.toml"

	// OriginDockerfile is the node image tag of the Dockerfile FROM line.
	OriginDockerfile Origin = "Dockerfile"

	// OriginLocal is the locally installed node runtime. It is
	// informational only and never participates in resolution.
	OriginLocal Origin = "local runtime"
)

// priority is the fixed authority order. The first origin with a value
// wins regardless of how many lower-priority sources disagree.
var priority = []Origin{
	OriginCIConfig,
	OriginNvmrc,
	OriginNodeVersionFile,
	OriginManifest,
	OriginNetlify,
	OriginDockerfile,
}

// Source is one possible origin of a Node version value, produced fresh on
// every analysis. Raw is empty when the origin exists but carries no value.
type Source struct {
	// Origin identifies the configuration surface.
	Origin Origin `json:"origin"`

	// Raw is the value as written, empty for a valueless origin.
	Raw string `json:"raw"`

	// File is the file the value was read from, when applicable.
	File string `json:"file,omitempty"`

	// Line is the 1-based line number within File, when known.
	Line int `json:"line,omitempty"`
}

// Resolution is the outcome of resolving all sources.
type Resolution struct {
	// Resolved is the normalized winning value, empty when no source
	// carried a value.
	Resolved string `json:"resolved"`

	// ResolvedOrigin is the origin the winning value came from.
	ResolvedOrigin Origin `json:"resolved_origin,omitempty"`

	// Conflicts describes each disagreeing source as "origin wants X".
	// Empty when all valued sources agree on one major.
	Conflicts []string `json:"conflicts,omitempty"`

	// Class is the compatibility classification of the resolved value.
	Class Class `json:"class"`

	// LocalMismatch is set when the local runtime exists and its major
	// differs from the resolved value.
	LocalMismatch string `json:"local_mismatch,omitempty"`
}

// Conflicted returns true when valued sources disagree on the major.
func (r Resolution) Conflicted() bool {
	return len(r.Conflicts) > 0
}

// Normalize reduces a raw version string to its major version.
// ">=18.0.0" and "18.x" become "18"; "lts/*" becomes the table's
// recommended version. A string with no digit run normalizes to itself so
// bad values surface in messages instead of disappearing.
func Normalize(raw string, table *Table) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(strings.ToLower(trimmed), "lts/") {
		return table.Recommended
	}

	start := strings.IndexFunc(trimmed, isDigit)
	if start < 0 {
		return trimmed
	}

	end := start
	for end < len(trimmed) && isDigit(rune(trimmed[end])) {
		end++
	}
	return trimmed[start:end]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Resolve picks the authoritative version from sources by priority order,
// detects conflicts among non-local sources, and classifies the result.
// It is referentially transparent: same input, same output, no I/O.
func Resolve(sources []Source, table *Table) Resolution {
	bySrc := make(map[Origin]Source, len(sources))
	for _, s := range sources {
		if s.Raw == "" {
			continue
		}
		// First occurrence wins within a single origin.
		if _, ok := bySrc[s.Origin]; !ok {
			bySrc[s.Origin] = s
		}
	}

	var res Resolution
	for _, origin := range priority {
		if s, ok := bySrc[origin]; ok {
			res.Resolved = Normalize(s.Raw, table)
			res.ResolvedOrigin = origin
			break
		}
	}

	// Conflict iff the normalized majors of valued non-local sources have
	// cardinality above one. The local runtime is excluded here and
	// compared separately below.
	majors := make(map[string]bool)
	for _, origin := range priority {
		if s, ok := bySrc[origin]; ok {
			majors[Normalize(s.Raw, table)] = true
		}
	}
	if len(majors) > 1 {
		for _, origin := range priority {
			if s, ok := bySrc[origin]; ok {
				res.Conflicts = append(res.Conflicts,
					fmt.Sprintf("%s wants %s", origin, Normalize(s.Raw, table)))
			}
		}
	}

	if res.Resolved != "" {
		res.Class = table.Classify(res.Resolved)
	}

	for _, s := range sources {
		if s.Origin != OriginLocal || s.Raw == "" {
			continue
		}
		local := Normalize(s.Raw, table)
		if res.Resolved != "" && local != res.Resolved {
			res.LocalMismatch = local
		}
		break
	}

	return res
}
