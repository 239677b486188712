package checks

import (
	"context"
	"fmt"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// BuildScript verifies package.json declares a build script. The build
// platform runs it unconditionally; without one the deploy fails at the
// build phase, so a missing script blocks.
type BuildScript struct{}

// ID implements engine.Check.
func (BuildScript) ID() string { return "build.script" }

// Name implements engine.Check.
func (BuildScript) Name() string { return "Build script" }

// Category implements engine.Check.
func (BuildScript) Category() engine.Category { return engine.CategoryBuild }

// Run implements engine.Check.
func (c BuildScript) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}

	switch {
	case snap.Manifest == nil:
		f.Status = engine.StatusFail
		f.Blocking = true
		f.Impact = engine.ImpactHigh
		f.Message = "package.json missing or unreadable"
		if snap.ManifestErr != "" {
			f.Details = []string{snap.ManifestErr}
		}
	case !snap.Manifest.HasScript("build"):
		f.Status = engine.StatusFail
		f.Blocking = true
		f.Impact = engine.ImpactHigh
		f.Message = "package.json has no build script"
	default:
		f.Status = engine.StatusPass
		f.Message = fmt.Sprintf("build script: %s", snap.Manifest.Scripts["build"])
	}

	return []engine.Finding{f}
}
