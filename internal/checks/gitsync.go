package checks

import (
	"context"
	"fmt"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// GitSync verifies the working tree matches what the platform will build.
// Deploys build the remote head; local-only work silently missing from the
// deployed build is the single most confusing failure mode, so divergent
// heads block. A dirty tree or a missing upstream only warns: the remote
// build is still well-defined in both cases.
type GitSync struct{}

// ID implements engine.Check.
func (GitSync) ID() string { return "git.sync" }

// Name implements engine.Check.
func (GitSync) Name() string { return "Git sync" }

// Category implements engine.Check.
func (GitSync) Category() engine.Category { return engine.CategoryGit }

// Run implements engine.Check.
func (c GitSync) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	base := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}

	if !snap.Git.IsRepo {
		base.Status = engine.StatusSkip
		base.Message = "not a git repository"
		return []engine.Finding{base}
	}

	var findings []engine.Finding

	if snap.Git.Dirty {
		f := base
		f.ID = c.ID() + ".dirty"
		f.Status = engine.StatusWarn
		f.Impact = engine.ImpactMedium
		f.Message = "working tree has uncommitted changes; the deploy will not include them"
		f.Remediation = &engine.RemediationRef{
			ActionID: remedy.ActionRunCommand,
			Params: map[string]string{
				remedy.ParamCommand: `git add -A && git commit -m "sync before deploy"`,
			},
		}
		findings = append(findings, f)
	}

	switch {
	case !snap.Git.HasUpstream:
		f := base
		f.Status = engine.StatusWarn
		f.Impact = engine.ImpactMedium
		f.Message = "no upstream branch; cannot compare against the deployed ref"
		findings = append(findings, f)
	case !snap.Git.InSync():
		f := base
		f.Status = engine.StatusFail
		f.Blocking = true
		f.Impact = engine.ImpactHigh
		f.Message = fmt.Sprintf("local and remote heads differ (ahead %d, behind %d)",
			snap.Git.Ahead, snap.Git.Behind)
		if snap.Git.Behind == 0 {
			f.Remediation = &engine.RemediationRef{
				ActionID: remedy.ActionRunCommand,
				Params: map[string]string{
					remedy.ParamCommand: "git push",
				},
			}
		}
		findings = append(findings, f)
	default:
		f := base
		f.Status = engine.StatusPass
		f.Message = "local head matches the upstream"
		findings = append(findings, f)
	}

	return findings
}
