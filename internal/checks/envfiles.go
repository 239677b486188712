package checks

import (
	"context"
	"fmt"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// EnvIgnored verifies every .env file is covered by .gitignore. A tracked
// env file is one commit away from leaking credentials; the fix appends
// the file name to .gitignore, which does not untrack an already committed
// file but stops the bleeding.
type EnvIgnored struct{}

// ID implements engine.Check.
func (EnvIgnored) ID() string { return "env.ignored" }

// Name implements engine.Check.
func (EnvIgnored) Name() string { return "Env files ignored" }

// Category implements engine.Check.
func (EnvIgnored) Category() engine.Category { return engine.CategoryEnv }

// Run implements engine.Check.
func (c EnvIgnored) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	if len(snap.EnvFiles) == 0 {
		return nil
	}

	var findings []engine.Finding
	for _, ef := range snap.EnvFiles {
		if ef.Ignored {
			continue
		}
		findings = append(findings, engine.Finding{
			ID:       c.ID() + "." + ef.Name,
			Category: c.Category(),
			Name:     c.Name(),
			Status:   engine.StatusWarn,
			Impact:   engine.ImpactHigh,
			Message:  fmt.Sprintf("%s is not covered by .gitignore", ef.Name),
			Remediation: &engine.RemediationRef{
				ActionID: remedy.ActionAppendFile,
				Params: map[string]string{
					remedy.ParamPath:    ".gitignore",
					remedy.ParamContent: ef.Name + "\n",
					remedy.ParamMarker:  ef.Name,
				},
			},
		})
	}

	if len(findings) == 0 {
		findings = append(findings, engine.Finding{
			ID:       c.ID(),
			Category: c.Category(),
			Name:     c.Name(),
			Status:   engine.StatusPass,
			Message:  fmt.Sprintf("all %d env files are gitignored", len(snap.EnvFiles)),
		})
	}
	return findings
}
