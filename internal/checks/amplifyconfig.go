package checks

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// AmplifyConfig verifies amplify.yml parses when present. The file is
// optional; the platform falls back to console-side build settings, so
// absence is informational. A file that exists but does not parse takes
// the build down with it and blocks.
type AmplifyConfig struct{}

// ID implements engine.Check.
func (AmplifyConfig) ID() string { return "config.amplify" }

// Name implements engine.Check.
func (AmplifyConfig) Name() string { return "Amplify build spec" }

// Category implements engine.Check.
func (AmplifyConfig) Category() engine.Category { return engine.CategoryConfig }

// Run implements engine.Check.
func (c AmplifyConfig) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}

	if snap.AmplifyConfig == nil {
		f.Status = engine.StatusInfo
		f.Message = "no amplify.yml; console build settings apply"
		return []engine.Finding{f}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(snap.AmplifyConfig.Raw), &doc); err != nil {
		f.Status = engine.StatusFail
		f.Blocking = true
		f.Impact = engine.ImpactHigh
		f.Message = snap.AmplifyConfig.Path + " is not valid YAML"
		f.Details = []string{err.Error()}
		return []engine.Finding{f}
	}

	f.Status = engine.StatusPass
	f.Message = snap.AmplifyConfig.Path + " parses"
	return []engine.Finding{f}
}
