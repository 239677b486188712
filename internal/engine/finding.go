// Package engine runs configuration health checks over a project snapshot
// and aggregates their findings into a scored report.
package engine

import "github.com/cockroachdb/errors"

// Status indicates the verdict of a single finding.
type Status int

const (
	// StatusPass indicates the checked aspect is healthy.
	StatusPass Status = iota

	// StatusInfo indicates informational output, not a problem.
	StatusInfo

	// StatusWarn indicates a potential issue that doesn't prevent deployment.
	StatusWarn

	// StatusFail indicates a defect; combined with Blocking it prevents deployment.
	StatusFail

	// StatusSkip indicates the check could not run in this environment.
	// Skipped findings are excluded from scoring.
	StatusSkip
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusInfo:
		return "info"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	case StatusSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status as its string form so persisted reports
// stay readable and stable across releases.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes the string form written by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"pass"`:
		*s = StatusPass
	case `"info"`:
		*s = StatusInfo
	case `"warn"`:
		*s = StatusWarn
	case `"fail"`:
		*s = StatusFail
	case `"skip"`:
		*s = StatusSkip
	default:
		return errors.Newf("unknown status %s", data)
	}
	return nil
}

// Impact describes how strongly a finding affects deployment health.
type Impact int

const (
	// ImpactLow findings are cosmetic or advisory.
	ImpactLow Impact = iota

	// ImpactMedium findings degrade the build or developer experience.
	ImpactMedium

	// ImpactHigh findings are likely to break the deployment.
	ImpactHigh
)

// String returns the string representation of the impact level.
func (i Impact) String() string {
	switch i {
	case ImpactLow:
		return "low"
	case ImpactMedium:
		return "medium"
	case ImpactHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the impact as its string form.
func (i Impact) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON decodes the string form written by MarshalJSON.
func (i *Impact) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"low"`:
		*i = ImpactLow
	case `"medium"`:
		*i = ImpactMedium
	case `"high"`:
		*i = ImpactHigh
	default:
		return errors.Newf("unknown impact %s", data)
	}
	return nil
}

// Category groups related checks. Reports list findings grouped by category
// in the order returned by Categories.
type Category string

const (
	// CategoryBuild covers build scripts and build settings.
	CategoryBuild Category = "build"

	// CategoryDependencies covers package management and lock files.
	CategoryDependencies Category = "dependencies"

	// CategoryConfig covers project and service configuration files.
	CategoryConfig Category = "config"

	// CategoryEnv covers environment files and secret hygiene.
	CategoryEnv Category = "env"

	// CategoryGit covers repository sync state.
	CategoryGit Category = "git"
)

// Categories returns all categories in report order. The order is fixed so
// two analyses of the same snapshot serialize identically.
func Categories() []Category {
	return []Category{
		CategoryBuild,
		CategoryDependencies,
		CategoryConfig,
		CategoryEnv,
		CategoryGit,
	}
}

// RemediationRef names a remediation action a finding can be fixed with.
// It is plain data rather than a closure so findings stay serializable and
// actions can be listed, inspected, and dispatched by id.
type RemediationRef struct {
	// ActionID identifies the registered remediation action.
	ActionID string `json:"action_id"`

	// Params carries the action's parameters (paths, content, command line).
	Params map[string]string `json:"params,omitempty"`
}

// Finding is one check's verdict about one aspect of the project.
// Findings are immutable once produced; the ID is stable across runs so a
// re-analysis replaces rather than accumulates entries.
type Finding struct {
	// ID is the stable identifier for this aspect (e.g. "deps.lockfile").
	ID string `json:"id"`

	// Category groups the finding for report ordering.
	Category Category `json:"category"`

	// Name is the human-readable check name.
	Name string `json:"name"`

	// Status is the verdict.
	Status Status `json:"status"`

	// Message describes the verdict in one line.
	Message string `json:"message"`

	// Details carries additional context lines.
	Details []string `json:"details,omitempty"`

	// Impact describes how strongly this finding affects deployment health.
	Impact Impact `json:"impact"`

	// Blocking marks a Fail finding that alone prevents deployment.
	// It is only meaningful when Status is StatusFail.
	Blocking bool `json:"blocking,omitempty"`

	// Remediation references an auto-fix for this finding, if one exists.
	Remediation *RemediationRef `json:"remediation,omitempty"`
}

// IsBlockingFailure returns true if this finding alone prevents deployment.
func (f Finding) IsBlockingFailure() bool {
	return f.Status == StatusFail && f.Blocking
}

// Fixable returns true if the finding carries a remediation reference.
func (f Finding) Fixable() bool {
	return f.Remediation != nil
}
