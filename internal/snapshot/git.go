package snapshot

import (
	"context"
	"strconv"
	"strings"

	"github.com/saga95/amplify-doctor/internal/execx"
)

// GitFacts holds the repository sync state at capture time. When git is not
// installed or the directory is not a repository, IsRepo stays false and the
// remaining fields are zero.
type GitFacts struct {
	// IsRepo is true when root is inside a git work tree.
	IsRepo bool `json:"is_repo"`

	// Dirty is true when the work tree has uncommitted changes.
	Dirty bool `json:"dirty"`

	// HasUpstream is true when the current branch tracks a remote branch.
	HasUpstream bool `json:"has_upstream"`

	// Ahead is the number of local commits the upstream lacks.
	Ahead int `json:"ahead"`

	// Behind is the number of upstream commits the local branch lacks.
	Behind int `json:"behind"`

	// LocalHead is the local HEAD commit hash.
	LocalHead string `json:"local_head,omitempty"`

	// RemoteHead is the upstream head commit hash, empty without upstream.
	RemoteHead string `json:"remote_head,omitempty"`
}

// InSync returns true when local and upstream heads match.
func (g GitFacts) InSync() bool {
	return g.HasUpstream && g.LocalHead != "" && g.LocalHead == g.RemoteHead
}

// captureGit gathers repository facts via git subprocesses. Every git
// failure degrades to unknown facts; checks turn the absence into Skip or
// Warn findings as their policy dictates.
func (p *Provider) captureGit(ctx context.Context, root string) GitFacts {
	var facts GitFacts

	out, ok := p.git(ctx, root, "rev-parse", "--is-inside-work-tree")
	if !ok || strings.TrimSpace(out) != "true" {
		return facts
	}
	facts.IsRepo = true

	if out, ok := p.git(ctx, root, "status", "--porcelain"); ok {
		facts.Dirty = strings.TrimSpace(out) != ""
	}

	if out, ok := p.git(ctx, root, "rev-parse", "HEAD"); ok {
		facts.LocalHead = strings.TrimSpace(out)
	}

	// Upstream queries fail on branches without a tracking ref; that is a
	// fact, not an error.
	if out, ok := p.git(ctx, root, "rev-parse", "@{upstream}"); ok {
		facts.HasUpstream = true
		facts.RemoteHead = strings.TrimSpace(out)
	}

	if facts.HasUpstream {
		if out, ok := p.git(ctx, root, "rev-list", "--left-right", "--count", "HEAD...@{upstream}"); ok {
			facts.Ahead, facts.Behind = parseAheadBehind(out)
		}
	}

	return facts
}

// git runs one git subcommand in root, returning stdout and success.
func (p *Provider) git(ctx context.Context, root string, args ...string) (string, bool) {
	res, err := execx.RunTimeout(ctx, p.ToolTimeout, "git", args, root)
	if err != nil {
		return "", false
	}
	return res.Stdout, true
}

// parseAheadBehind parses "N\tM" from git rev-list --left-right --count.
func parseAheadBehind(out string) (ahead, behind int) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) != 2 {
		return 0, 0
	}
	ahead, _ = strconv.Atoi(fields[0])
	behind, _ = strconv.Atoi(fields[1])
	return ahead, behind
}
