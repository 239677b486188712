package engine

import (
	"math"
	"time"
)

// Summary aggregates counts of findings by status. Info findings count as
// passed: they describe non-problems, and folding them keeps
// passed+warnings+failed+skipped equal to the number of findings.
type Summary struct {
	// Passed is the count of pass and info findings.
	Passed int `json:"passed"`

	// Warnings is the count of warn findings.
	Warnings int `json:"warnings"`

	// Failed is the count of fail findings, blocking or not.
	Failed int `json:"failed"`

	// Skipped is the count of findings whose check could not run.
	Skipped int `json:"skipped"`
}

// Report aggregates all findings of one analysis run. It is a plain,
// serializable value recomputed wholesale each run; no UI types leak in.
type Report struct {
	// Findings lists every finding in deterministic order.
	Findings []Finding `json:"findings"`

	// Summary contains counts by status.
	Summary Summary `json:"summary"`

	// Score is the 0-100 health score. Skipped findings do not count
	// against the project: an environment limitation is not a defect.
	Score int `json:"score"`

	// CanProceed is false iff at least one finding is a blocking failure.
	CanProceed bool `json:"can_proceed"`

	// GeneratedAt is when the analysis run started.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReport computes summary, score, and verdict from findings.
func NewReport(findings []Finding, generatedAt time.Time) *Report {
	r := &Report{
		Findings:    findings,
		CanProceed:  true,
		GeneratedAt: generatedAt,
	}
	if r.Findings == nil {
		r.Findings = []Finding{}
	}

	for _, f := range findings {
		switch f.Status {
		case StatusPass, StatusInfo:
			r.Summary.Passed++
		case StatusWarn:
			r.Summary.Warnings++
		case StatusFail:
			r.Summary.Failed++
		case StatusSkip:
			r.Summary.Skipped++
		}

		if f.IsBlockingFailure() {
			r.CanProceed = false
		}
	}

	r.Score = score(r.Summary)
	return r
}

// score computes round(100 * passed / total) where total excludes skipped
// findings. No scoreable findings means nothing to object to: score 100.
func score(s Summary) int {
	total := s.Passed + s.Warnings + s.Failed
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(s.Passed) / float64(total)))
}

// BlockingFailures returns the findings that prevent deployment.
func (r *Report) BlockingFailures() []Finding {
	var blocking []Finding
	for _, f := range r.Findings {
		if f.IsBlockingFailure() {
			blocking = append(blocking, f)
		}
	}
	return blocking
}

// Fixable returns the findings that carry a remediation reference.
func (r *Report) Fixable() []Finding {
	var fixable []Finding
	for _, f := range r.Findings {
		if f.Fixable() {
			fixable = append(fixable, f)
		}
	}
	return fixable
}

// FindingByID returns the finding with the given stable id, if present.
func (r *Report) FindingByID(id string) (Finding, bool) {
	for _, f := range r.Findings {
		if f.ID == id {
			return f, true
		}
	}
	return Finding{}, false
}
