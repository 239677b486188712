package checks

import (
	"context"
	"testing"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

func TestEnvIgnored(t *testing.T) {
	t.Run("no env files", func(t *testing.T) {
		if findings := (EnvIgnored{}).Run(context.Background(), &snapshot.Snapshot{}); findings != nil {
			t.Errorf("findings = %+v, want none", findings)
		}
	})

	t.Run("all ignored passes", func(t *testing.T) {
		snap := &snapshot.Snapshot{
			EnvFiles: []snapshot.EnvFile{
				{Name: ".env", Ignored: true},
				{Name: ".env.local", Ignored: true},
			},
		}

		findings := EnvIgnored{}.Run(context.Background(), snap)
		if len(findings) != 1 || findings[0].Status != engine.StatusPass {
			t.Errorf("findings = %+v, want single pass", findings)
		}
	})

	t.Run("unignored file warns with gitignore fix", func(t *testing.T) {
		snap := &snapshot.Snapshot{
			EnvFiles: []snapshot.EnvFile{
				{Name: ".env", Ignored: false},
				{Name: ".env.local", Ignored: true},
			},
		}

		findings := EnvIgnored{}.Run(context.Background(), snap)
		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		f := findings[0]
		if f.Status != engine.StatusWarn {
			t.Errorf("Status = %v, want warn", f.Status)
		}
		if f.Blocking {
			t.Error("env hygiene finding must not block")
		}
		if f.Remediation == nil {
			t.Fatal("no remediation")
		}
		if f.Remediation.ActionID != remedy.ActionAppendFile {
			t.Errorf("ActionID = %q", f.Remediation.ActionID)
		}
		if got := f.Remediation.Params[remedy.ParamPath]; got != ".gitignore" {
			t.Errorf("path = %q, want .gitignore", got)
		}
		if got := f.Remediation.Params[remedy.ParamContent]; got != ".env\n" {
			t.Errorf("content = %q, want .env newline", got)
		}
	})

	t.Run("one finding per unignored file", func(t *testing.T) {
		snap := &snapshot.Snapshot{
			EnvFiles: []snapshot.EnvFile{
				{Name: ".env"},
				{Name: ".env.production"},
			},
		}

		findings := EnvIgnored{}.Run(context.Background(), snap)
		if len(findings) != 2 {
			t.Fatalf("got %d findings, want 2", len(findings))
		}
		if findings[0].ID == findings[1].ID {
			t.Errorf("findings share id %q", findings[0].ID)
		}
	})
}
