package nodever

import (
	"context"
	"fmt"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// Check surfaces the version resolution as findings. The heavy lifting is
// in Resolve; this adapter only translates a Resolution into report
// entries and remediation references.
type Check struct {
	table *Table
}

// NewCheck creates the version check against the given compatibility
// table. A nil table uses the built-in default.
func NewCheck(table *Table) *Check {
	if table == nil {
		table = DefaultTable()
	}
	return &Check{table: table}
}

// ID implements engine.Check.
func (c *Check) ID() string { return "config.node-version" }

// Name implements engine.Check.
func (c *Check) Name() string { return "Node version" }

// Category implements engine.Check.
func (c *Check) Category() engine.Category { return engine.CategoryConfig }

// Run implements engine.Check.
func (c *Check) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	res := Resolve(CollectSources(snap), c.table)

	if res.Resolved == "" {
		return []engine.Finding{{
			ID:       c.ID(),
			Category: c.Category(),
			Name:     c.Name(),
			Status:   engine.StatusWarn,
			Message:  fmt.Sprintf("no Node version specified; the build platform will assume Node %s", c.table.Default),
			Impact:   engine.ImpactMedium,
			Remediation: &engine.RemediationRef{
				ActionID: remedy.ActionWriteFile,
				Params: map[string]string{
					remedy.ParamPath:    ".nvmrc",
					remedy.ParamContent: c.table.Recommended + "\n",
				},
			},
		}}
	}

	var findings []engine.Finding

	if res.Conflicted() {
		findings = append(findings, engine.Finding{
			ID:       c.ID() + ".conflict",
			Category: c.Category(),
			Name:     c.Name(),
			Status:   engine.StatusWarn,
			Message: fmt.Sprintf("Node version sources disagree; %s wins with Node %s",
				res.ResolvedOrigin, res.Resolved),
			Details: res.Conflicts,
			Impact:  engine.ImpactMedium,
			Remediation: &engine.RemediationRef{
				ActionID: remedy.ActionWriteFile,
				Params: map[string]string{
					remedy.ParamPath:    ".nvmrc",
					remedy.ParamContent: res.Resolved + "\n",
				},
			},
		})
	}

	findings = append(findings, c.classFinding(res))

	if res.LocalMismatch != "" {
		findings = append(findings, engine.Finding{
			ID:       c.ID() + ".local",
			Category: c.Category(),
			Name:     c.Name(),
			Status:   engine.StatusWarn,
			Message: fmt.Sprintf("local runtime is Node %s but the project resolves to Node %s",
				res.LocalMismatch, res.Resolved),
			Impact: engine.ImpactLow,
		})
	}

	return findings
}

// classFinding maps the compatibility class of the resolved version to a
// verdict. Deprecated and unsupported lines fail without blocking: the
// build may still run today, but depending on it is a defect.
func (c *Check) classFinding(res Resolution) engine.Finding {
	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}

	switch res.Class {
	case ClassLTS, ClassCurrent:
		f.Status = engine.StatusPass
		f.Message = fmt.Sprintf("Node %s (%s, from %s)", res.Resolved, res.Class, res.ResolvedOrigin)
	case ClassExperimental:
		f.Status = engine.StatusWarn
		f.Impact = engine.ImpactMedium
		f.Message = fmt.Sprintf("Node %s (from %s) is experimental and not recommended for builds",
			res.Resolved, res.ResolvedOrigin)
		f.Remediation = c.recommendNvmrc()
	case ClassDeprecated:
		f.Status = engine.StatusFail
		f.Impact = engine.ImpactHigh
		f.Message = fmt.Sprintf("Node %s (from %s) is deprecated on the build platform",
			res.Resolved, res.ResolvedOrigin)
		f.Remediation = c.recommendNvmrc()
	default:
		f.Status = engine.StatusFail
		f.Impact = engine.ImpactHigh
		f.Message = fmt.Sprintf("Node %q (from %s) is not a supported version",
			res.Resolved, res.ResolvedOrigin)
		f.Remediation = c.recommendNvmrc()
	}
	return f
}

func (c *Check) recommendNvmrc() *engine.RemediationRef {
	return &engine.RemediationRef{
		ActionID: remedy.ActionWriteFile,
		Params: map[string]string{
			remedy.ParamPath:    ".nvmrc",
			remedy.ParamContent: c.table.Recommended + "\n",
		},
	}
}
