package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// Lockfile verifies exactly one package manager lock file exists.
//
// With none, installs float and builds are unreproducible. With more than
// one, the build platform may pick a different manager than the developer
// did. Both conditions block. The two-lockfile case only gets an automatic
// fix when package-lock.json is one of them: npm is then assumed canonical
// and the extras are removed. Any other combination is ambiguous and left
// to the developer.
type Lockfile struct{}

// ID implements engine.Check.
func (Lockfile) ID() string { return "deps.lockfile" }

// Name implements engine.Check.
func (Lockfile) Name() string { return "Lock file" }

// Category implements engine.Check.
func (Lockfile) Category() engine.Category { return engine.CategoryDependencies }

// Run implements engine.Check.
func (c Lockfile) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}

	if snap.Manifest == nil && len(snap.LockFiles) == 0 {
		f.Status = engine.StatusSkip
		f.Message = "no package.json; not a Node project"
		return []engine.Finding{f}
	}

	switch len(snap.LockFiles) {
	case 0:
		f.Status = engine.StatusFail
		f.Blocking = true
		f.Impact = engine.ImpactHigh
		f.Message = "no lock file; installs are unreproducible"
		f.Remediation = &engine.RemediationRef{
			ActionID: remedy.ActionRunCommand,
			Params: map[string]string{
				remedy.ParamCommand: "npm install --package-lock-only",
			},
		}
	case 1:
		f.Status = engine.StatusPass
		f.Message = fmt.Sprintf("one lock file (%s)", snap.LockFiles[0])
	default:
		f.Status = engine.StatusFail
		f.Blocking = true
		f.Impact = engine.ImpactHigh
		f.Message = fmt.Sprintf("multiple lock files: %s", strings.Join(snap.LockFiles, ", "))

		if len(snap.LockFiles) == 2 && contains(snap.LockFiles, "package-lock.json") {
			var extras []string
			for _, l := range snap.LockFiles {
				if l != "package-lock.json" {
					extras = append(extras, l)
				}
			}
			f.Details = []string{"package-lock.json present; treating npm as the package manager"}
			f.Remediation = &engine.RemediationRef{
				ActionID: remedy.ActionRunCommand,
				Params: map[string]string{
					remedy.ParamCommand: "rm " + strings.Join(extras, " "),
				},
			}
		}
	}

	return []engine.Finding{f}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
