package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// Check inspects one aspect of a project snapshot. Most checks derive
// their findings from the snapshot alone and are reproducible for a given
// snapshot; environment probes (tool versions, tree scans) honor the
// context deadline and report Skip when the environment cannot answer.
type Check interface {
	// ID is the stable identifier, also used as the finding id prefix.
	ID() string

	// Name is the human-readable check name.
	Name() string

	// Category places the check's findings in the report.
	Category() Category

	// Run produces the check's findings for the snapshot. A nil or empty
	// slice is valid and contributes nothing to the report.
	Run(ctx context.Context, snap *snapshot.Snapshot) []Finding
}

const (
	defaultWorkers      = 4
	defaultCheckTimeout = 15 * time.Second
)

// Engine executes registered checks against a snapshot and assembles a
// report. Checks run concurrently but the report order is deterministic:
// findings are grouped by category, and within a category they follow
// check registration order.
type Engine struct {
	mu           sync.Mutex
	checks       []Check
	logger       *slog.Logger
	workers      int
	checkTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-check progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithWorkers bounds how many checks run concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithCheckTimeout bounds how long a single check may run.
func WithCheckTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.checkTimeout = d
		}
	}
}

// New creates an engine with no checks registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:       slog.Default(),
		workers:      defaultWorkers,
		checkTimeout: defaultCheckTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds a check. Registration order is the tie-break order for
// findings within a category.
func (e *Engine) Register(checks ...Check) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checks = append(e.checks, checks...)
}

// Checks returns the registered checks in registration order.
func (e *Engine) Checks() []Check {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Check, len(e.checks))
	copy(out, e.checks)
	return out
}

// RunAnalysis executes every registered check against the snapshot and
// returns the assembled report. Runs are serialized; concurrent callers
// queue rather than interleave.
func (e *Engine) RunAnalysis(ctx context.Context, snap *snapshot.Snapshot) *Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	results := make([][]Finding, len(e.checks))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)
	for i, c := range e.checks {
		wg.Add(1)
		go func(i int, c Check) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = e.runCheck(ctx, c, snap)
		}(i, c)
	}
	wg.Wait()

	report := NewReport(e.merge(results), started)
	e.logger.Debug("analysis complete",
		"checks", len(e.checks),
		"findings", len(report.Findings),
		"score", report.Score,
		"duration", time.Since(started))
	return report
}

// runCheck executes one check under its own timeout, converting a panic
// into a skip finding so one broken check cannot take down the run.
func (e *Engine) runCheck(ctx context.Context, c Check, snap *snapshot.Snapshot) (findings []Finding) {
	ctx, cancel := context.WithTimeout(ctx, e.checkTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("check panicked", "check", c.ID(), "panic", r)
			findings = []Finding{{
				ID:       c.ID(),
				Category: c.Category(),
				Name:     c.Name(),
				Status:   StatusSkip,
				Message:  fmt.Sprintf("check crashed: %v", r),
			}}
		}
	}()

	e.logger.Debug("running check", "check", c.ID())
	return c.Run(ctx, snap)
}

// merge flattens per-check findings into report order: categories in the
// fixed Categories order, and within each category the checks' findings in
// registration order. Findings with an unlisted category sort last.
func (e *Engine) merge(results [][]Finding) []Finding {
	known := make(map[Category]bool, len(Categories()))
	var merged []Finding
	for _, cat := range Categories() {
		known[cat] = true
		for _, findings := range results {
			for _, f := range findings {
				if f.Category == cat {
					merged = append(merged, f)
				}
			}
		}
	}
	for _, findings := range results {
		for _, f := range findings {
			if !known[f.Category] {
				merged = append(merged, f)
			}
		}
	}
	return merged
}
