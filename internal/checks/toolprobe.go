package checks

import (
	"context"
	"strings"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/execx"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// TypeScript compiles the project with tsc when a tsconfig.json exists.
// The probe needs the local toolchain; a missing npx or an overrun of the
// check deadline is an environment limitation and reports Skip, never Fail.
type TypeScript struct{}

// ID implements engine.Check.
func (TypeScript) ID() string { return "config.typescript" }

// Name implements engine.Check.
func (TypeScript) Name() string { return "TypeScript" }

// Category implements engine.Check.
func (TypeScript) Category() engine.Category { return engine.CategoryConfig }

// Run implements engine.Check.
func (c TypeScript) Run(ctx context.Context, snap *snapshot.Snapshot) []engine.Finding {
	if !snap.HasTSConfig {
		return nil
	}

	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}

	res, _ := execx.Run(ctx, "npx", []string{"--no-install", "tsc", "--noEmit"}, snap.Root)
	switch {
	case res.TimedOut():
		f.Status = engine.StatusSkip
		f.Message = "tsc did not finish in time"
	case res.NotFound():
		f.Status = engine.StatusSkip
		f.Message = "tsc not available"
	case res.ExitCode == 0:
		f.Status = engine.StatusPass
		f.Message = "tsc --noEmit reports no errors"
	default:
		f.Status = engine.StatusFail
		f.Impact = engine.ImpactHigh
		f.Message = "tsc --noEmit reports errors"
		f.Details = firstLines(res.Stdout+res.Stderr, 5)
	}
	return []engine.Finding{f}
}

// ESLint lints the project when an ESLint config exists. Lint findings do
// not break the deploy, so failures warn rather than fail; availability is
// handled the same way as the TypeScript probe.
type ESLint struct{}

// ID implements engine.Check.
func (ESLint) ID() string { return "config.eslint" }

// Name implements engine.Check.
func (ESLint) Name() string { return "ESLint" }

// Category implements engine.Check.
func (ESLint) Category() engine.Category { return engine.CategoryConfig }

// Run implements engine.Check.
func (c ESLint) Run(ctx context.Context, snap *snapshot.Snapshot) []engine.Finding {
	if !snap.HasESLintConfig {
		return nil
	}

	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}

	res, _ := execx.Run(ctx, "npx", []string{"--no-install", "eslint", "."}, snap.Root)
	switch {
	case res.TimedOut():
		f.Status = engine.StatusSkip
		f.Message = "eslint did not finish in time"
	case res.NotFound():
		f.Status = engine.StatusSkip
		f.Message = "eslint not available"
	case res.ExitCode == 0:
		f.Status = engine.StatusPass
		f.Message = "eslint reports no problems"
	default:
		f.Status = engine.StatusWarn
		f.Impact = engine.ImpactMedium
		f.Message = "eslint reports problems"
		f.Details = firstLines(res.Stdout+res.Stderr, 5)
	}
	return []engine.Finding{f}
}

// firstLines returns up to n non-empty lines of out.
func firstLines(out string, n int) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}
