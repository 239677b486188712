package checks

import (
	"context"
	"testing"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

func gitSnap(facts snapshot.GitFacts) *snapshot.Snapshot {
	return &snapshot.Snapshot{Git: facts}
}

func TestGitSync(t *testing.T) {
	t.Run("not a repo skips", func(t *testing.T) {
		findings := GitSync{}.Run(context.Background(), gitSnap(snapshot.GitFacts{}))
		if len(findings) != 1 || findings[0].Status != engine.StatusSkip {
			t.Errorf("findings = %+v, want single skip", findings)
		}
	})

	t.Run("clean and in sync passes", func(t *testing.T) {
		findings := GitSync{}.Run(context.Background(), gitSnap(snapshot.GitFacts{
			IsRepo:      true,
			HasUpstream: true,
			LocalHead:   "abc",
			RemoteHead:  "abc",
		}))
		if len(findings) != 1 || findings[0].Status != engine.StatusPass {
			t.Errorf("findings = %+v, want single pass", findings)
		}
	})

	t.Run("dirty tree warns with commit fix", func(t *testing.T) {
		findings := GitSync{}.Run(context.Background(), gitSnap(snapshot.GitFacts{
			IsRepo:      true,
			Dirty:       true,
			HasUpstream: true,
			LocalHead:   "abc",
			RemoteHead:  "abc",
		}))

		if len(findings) != 2 {
			t.Fatalf("got %d findings, want dirty warn plus sync pass", len(findings))
		}
		dirty := findings[0]
		if dirty.Status != engine.StatusWarn {
			t.Errorf("dirty Status = %v, want warn", dirty.Status)
		}
		if dirty.Remediation == nil || dirty.Remediation.ActionID != remedy.ActionRunCommand {
			t.Errorf("dirty remediation = %+v, want run command", dirty.Remediation)
		}
	})

	t.Run("diverged heads block with push fix", func(t *testing.T) {
		findings := GitSync{}.Run(context.Background(), gitSnap(snapshot.GitFacts{
			IsRepo:      true,
			HasUpstream: true,
			Ahead:       2,
			LocalHead:   "abc",
			RemoteHead:  "def",
		}))

		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		f := findings[0]
		if f.Status != engine.StatusFail || !f.Blocking {
			t.Errorf("Status = %v, Blocking = %v, want blocking fail", f.Status, f.Blocking)
		}
		if f.Remediation == nil || f.Remediation.Params[remedy.ParamCommand] != "git push" {
			t.Errorf("remediation = %+v, want git push", f.Remediation)
		}
	})

	t.Run("behind upstream has no push fix", func(t *testing.T) {
		findings := GitSync{}.Run(context.Background(), gitSnap(snapshot.GitFacts{
			IsRepo:      true,
			HasUpstream: true,
			Ahead:       1,
			Behind:      3,
			LocalHead:   "abc",
			RemoteHead:  "def",
		}))

		f := findings[0]
		if f.Status != engine.StatusFail || !f.Blocking {
			t.Errorf("Status = %v, Blocking = %v, want blocking fail", f.Status, f.Blocking)
		}
		if f.Remediation != nil {
			t.Errorf("remediation = %+v, want none when behind", f.Remediation)
		}
	})

	t.Run("no upstream warns and never fails", func(t *testing.T) {
		findings := GitSync{}.Run(context.Background(), gitSnap(snapshot.GitFacts{
			IsRepo:    true,
			LocalHead: "abc",
		}))

		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		if findings[0].Status != engine.StatusWarn {
			t.Errorf("Status = %v, want warn", findings[0].Status)
		}
	})
}
