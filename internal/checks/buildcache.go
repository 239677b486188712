package checks

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// cacheSection is the amplify.yml fragment the remediation appends. The
// marker keys re-application off the "cache:" line so a hand-edited cache
// block is never duplicated.
const cacheSection = "cache:\n  paths:\n    - node_modules/**/*\n"

// BuildCache verifies amplify.yml declares cache paths. Builds work
// without a cache, they are just slow, so an absent section warns rather
// than fails.
type BuildCache struct{}

// ID implements engine.Check.
func (BuildCache) ID() string { return "build.cache" }

// Name implements engine.Check.
func (BuildCache) Name() string { return "Build cache" }

// Category implements engine.Check.
func (BuildCache) Category() engine.Category { return engine.CategoryBuild }

// Run implements engine.Check.
func (c BuildCache) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	if snap.AmplifyConfig == nil {
		return nil
	}

	var spec struct {
		Cache struct {
			Paths []string `yaml:"paths"`
		} `yaml:"cache"`
	}
	if err := yaml.Unmarshal([]byte(snap.AmplifyConfig.Raw), &spec); err != nil {
		// The config check reports the syntax error; nothing to say here.
		return nil
	}

	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}
	if len(spec.Cache.Paths) > 0 {
		f.Status = engine.StatusPass
		f.Message = "build cache paths configured"
	} else {
		f.Status = engine.StatusWarn
		f.Impact = engine.ImpactLow
		f.Message = snap.AmplifyConfig.Path + " has no cache paths; every build reinstalls dependencies"
		f.Remediation = &engine.RemediationRef{
			ActionID: remedy.ActionAppendFile,
			Params: map[string]string{
				remedy.ParamPath:    snap.AmplifyConfig.Path,
				remedy.ParamContent: cacheSection,
				remedy.ParamMarker:  "cache:",
			},
		}
	}
	return []engine.Finding{f}
}
