// Package snapshot captures an immutable, point-in-time view of a project
// directory. All file and git I/O happens here; checks read the resulting
// value and never touch the filesystem for project facts themselves.
//
// A facet that cannot be read (missing file, permission error, git not
// installed) is recorded as absent, never as a capture failure. Capture only
// fails when the root itself is unusable.
package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/saga95/amplify-doctor/internal/execx"
)

// Lock files recognized per package manager, in probe order.
var lockFileNames = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
}

// ConfigFile holds the raw text of a build/CI configuration file.
type ConfigFile struct {
	// Path is the location relative to the project root.
	Path string `json:"path"`

	// Raw is the file content as read at capture time.
	Raw string `json:"raw"`
}

// EnvFile records one environment file and whether git ignores it.
type EnvFile struct {
	// Name is the file name relative to the project root.
	Name string `json:"name"`

	// Ignored is true if a .gitignore pattern covers the file.
	Ignored bool `json:"ignored"`
}

// Snapshot is an immutable, point-in-time read of project configuration
// facts. It is re-created on every analysis run and never mutated in place,
// so concurrent checks always observe a consistent view.
type Snapshot struct {
	// Root is the absolute project root path.
	Root string `json:"root"`

	// TakenAt is when the capture started.
	TakenAt time.Time `json:"taken_at"`

	// Manifest is the parsed package.json, nil when missing or unparsable.
	Manifest *Manifest `json:"manifest,omitempty"`

	// ManifestErr notes why the manifest is absent, for check messages.
	ManifestErr string `json:"manifest_err,omitempty"`

	// LockFiles lists the lock files present, in probe order.
	LockFiles []string `json:"lock_files,omitempty"`

	// AmplifyConfig is the raw amplify.yml, nil when absent.
	AmplifyConfig *ConfigFile `json:"amplify_config,omitempty"`

	// NetlifyConfig is the raw netlify.toml, nil when absent.
	NetlifyConfig *ConfigFile `json:"netlify_config,omitempty"`

	// Nvmrc is the trimmed .nvmrc content, nil when absent.
	Nvmrc *string `json:"nvmrc,omitempty"`

	// NodeVersionFile is the trimmed .node-version content, nil when absent.
	NodeVersionFile *string `json:"node_version_file,omitempty"`

	// DockerfileFrom is the image reference of the first Dockerfile FROM
	// line, nil when no Dockerfile exists.
	DockerfileFrom *string `json:"dockerfile_from,omitempty"`

	// LocalNodeVersion is the version reported by the local node binary,
	// nil when node is not installed. Informational only; never
	// authoritative for version resolution.
	LocalNodeVersion *string `json:"local_node_version,omitempty"`

	// EnvFiles lists .env* files present and their ignore state.
	EnvFiles []EnvFile `json:"env_files,omitempty"`

	// HasTSConfig is true when tsconfig.json exists.
	HasTSConfig bool `json:"has_tsconfig"`

	// HasESLintConfig is true when an ESLint configuration file exists.
	HasESLintConfig bool `json:"has_eslint_config"`

	// Git holds the repository sync facts.
	Git GitFacts `json:"git"`
}

// Provider captures snapshots. The zero value is not usable; use NewProvider.
type Provider struct {
	// ToolTimeout bounds each external process the capture runs.
	ToolTimeout time.Duration
}

// NewProvider creates a Provider with default timeouts.
func NewProvider() *Provider {
	return &Provider{ToolTimeout: 10 * time.Second}
}

// Capture reads the project at root and returns its snapshot.
// It returns an error only when root does not exist or is not a directory;
// every per-facet failure degrades to an absent facet.
func (p *Provider) Capture(ctx context.Context, root string) (*Snapshot, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving project root")
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "reading project root %s", abs)
	}
	if !info.IsDir() {
		return nil, errors.Newf("project root %s is not a directory", abs)
	}

	snap := &Snapshot{
		Root:    abs,
		TakenAt: time.Now().UTC(),
	}

	snap.Manifest, snap.ManifestErr = readManifest(abs)

	for _, name := range lockFileNames {
		if fileExists(filepath.Join(abs, name)) {
			snap.LockFiles = append(snap.LockFiles, name)
		}
	}

	snap.AmplifyConfig = readConfigFile(abs, "amplify.yml")
	snap.NetlifyConfig = readConfigFile(abs, "netlify.toml")
	snap.Nvmrc = readTrimmedFile(abs, ".nvmrc")
	snap.NodeVersionFile = readTrimmedFile(abs, ".node-version")
	snap.DockerfileFrom = readDockerfileFrom(abs)
	snap.LocalNodeVersion = p.localNodeVersion(ctx)
	snap.EnvFiles = readEnvFiles(abs)
	snap.HasTSConfig = fileExists(filepath.Join(abs, "tsconfig.json"))
	snap.HasESLintConfig = hasESLintConfig(abs)
	snap.Git = p.captureGit(ctx, abs)

	return snap, nil
}

// localNodeVersion runs node --version, returning nil when node is missing.
func (p *Provider) localNodeVersion(ctx context.Context) *string {
	res, err := execx.RunTimeout(ctx, p.ToolTimeout, "node", []string{"--version"}, "")
	if err != nil {
		return nil
	}
	v := strings.TrimSpace(res.Stdout)
	if v == "" {
		return nil
	}
	return &v
}

// readConfigFile reads a config file's raw text, nil when absent or unreadable.
func readConfigFile(root, name string) *ConfigFile {
	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		return nil
	}
	return &ConfigFile{Path: name, Raw: string(data)}
}

// readTrimmedFile reads a one-value file like .nvmrc, nil when absent.
func readTrimmedFile(root, name string) *string {
	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		return nil
	}
	v := strings.TrimSpace(string(data))
	return &v
}

// readDockerfileFrom extracts the image reference from the first FROM line.
func readDockerfileFrom(root string) *string {
	data, err := os.ReadFile(filepath.Join(root, "Dockerfile"))
	if err != nil {
		return nil
	}
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToUpper(trimmed), "FROM ") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		image := fields[1]
		return &image
	}
	return nil
}

// readEnvFiles lists .env* files in the root and whether .gitignore covers them.
func readEnvFiles(root string) []EnvFile {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	patterns := gitignorePatterns(root)

	var envFiles []EnvFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name != ".env" && !strings.HasPrefix(name, ".env.") {
			continue
		}
		envFiles = append(envFiles, EnvFile{
			Name:    name,
			Ignored: matchesIgnore(patterns, name),
		})
	}
	return envFiles
}

// gitignorePatterns returns the non-comment lines of .gitignore.
func gitignorePatterns(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, trimmed)
	}
	return patterns
}

// matchesIgnore reports whether any gitignore pattern covers the file name.
// Only root-level glob patterns are evaluated; that is all the env files
// check needs, and it avoids reimplementing full gitignore semantics.
func matchesIgnore(patterns []string, name string) bool {
	for _, pattern := range patterns {
		p := strings.TrimSuffix(strings.TrimPrefix(pattern, "/"), "/")
		if p == name {
			return true
		}
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// hasESLintConfig probes the config file names ESLint recognizes.
func hasESLintConfig(root string) bool {
	names := []string{
		".eslintrc",
		".eslintrc.json",
		".eslintrc.js",
		".eslintrc.cjs",
		".eslintrc.yml",
		".eslintrc.yaml",
		"eslint.config.js",
		"eslint.config.mjs",
		"eslint.config.cjs",
	}
	for _, name := range names {
		if fileExists(filepath.Join(root, name)) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
