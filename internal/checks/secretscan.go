package checks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/secrets"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// scanExtensions limits the secret scan to file types that plausibly hold
// configuration or source. Binaries and assets are never worth scanning.
var scanExtensions = map[string]bool{
	".js":   true,
	".jsx":  true,
	".ts":   true,
	".tsx":  true,
	".mjs":  true,
	".cjs":  true,
	".json": true,
	".yml":  true,
	".yaml": true,
	".toml": true,
	".sh":   true,
	".env":  true,
}

// skipDirs are never descended into during the scan.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".next":        true,
}

const (
	scanMaxDepth    = 3
	scanMaxFileSize = 1 << 20
)

// SecretScan looks for credential-shaped content in project files. The
// scan is shallow and stops at the first hit per file: one leaked value is
// enough to flag the file, and full enumeration would slow every run for
// no extra signal. Hits warn without blocking; a committed secret is a
// hygiene problem, not a build breaker.
type SecretScan struct {
	// Depth bounds the directory depth; zero means scanMaxDepth.
	Depth int
}

func (c SecretScan) depth() int {
	if c.Depth > 0 {
		return c.Depth
	}
	return scanMaxDepth
}

// ID implements engine.Check.
func (SecretScan) ID() string { return "env.secret-scan" }

// Name implements engine.Check.
func (SecretScan) Name() string { return "Secret scan" }

// Category implements engine.Check.
func (SecretScan) Category() engine.Category { return engine.CategoryEnv }

// Run implements engine.Check.
func (c SecretScan) Run(ctx context.Context, snap *snapshot.Snapshot) []engine.Finding {
	hits := scanTree(ctx, snap.Root, c.depth())

	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}
	if len(hits) == 0 {
		f.Status = engine.StatusPass
		f.Message = "no credential-shaped content found"
		return []engine.Finding{f}
	}

	sort.Strings(hits)
	f.Status = engine.StatusWarn
	f.Impact = engine.ImpactHigh
	f.Message = fmt.Sprintf("possible secrets in %d files", len(hits))
	f.Details = hits
	return []engine.Finding{f}
}

// scanTree walks root up to maxDepth and returns "file: pattern" hits,
// one per file at most.
func scanTree(ctx context.Context, root string, maxDepth int) []string {
	var hits []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator))

		if d.IsDir() {
			if skipDirs[d.Name()] || depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !scannable(d.Name()) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > scanMaxFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if name := secrets.MatchValue(data); name != "" {
			hits = append(hits, fmt.Sprintf("%s: %s", rel, name))
		}
		return nil
	})
	return hits
}

// scannable reports whether the file name is worth reading. Extensionless
// env files like ".env" and ".env.local" count.
func scannable(name string) bool {
	if strings.HasPrefix(name, ".env") {
		return true
	}
	return scanExtensions[filepath.Ext(name)]
}
