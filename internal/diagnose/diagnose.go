// Package diagnose invokes the external diagnosis CLI and decodes its
// JSON output. The CLI owns all AWS access; this side only marshals
// arguments and parses results.
package diagnose

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/execx"
)

// DefaultTimeout bounds a diagnosis run when the client has none set.
const DefaultTimeout = 60 * time.Second

// ErrCLINotFound indicates the diagnosis binary is not installed.
var ErrCLINotFound = errors.New("diagnosis CLI not found")

// Request identifies the deployment to diagnose.
type Request struct {
	// AppID is the Amplify application id.
	AppID string `json:"app_id"`

	// Branch is the deployed branch name.
	Branch string `json:"branch"`

	// JobID optionally narrows the diagnosis to one build job.
	JobID string `json:"job_id,omitempty"`
}

// Validate checks the request names a diagnosable deployment.
func (r Request) Validate() error {
	if r.AppID == "" {
		return errors.New("app id is required")
	}
	if r.Branch == "" {
		return errors.New("branch is required")
	}
	return nil
}

// Issue is one problem the diagnosis CLI reported.
type Issue struct {
	// Severity is the CLI's severity label (error, warning, info).
	Severity string `json:"severity"`

	// Message describes the problem.
	Message string `json:"message"`

	// Suggestion is the CLI's proposed next step, when it has one.
	Suggestion string `json:"suggestion,omitempty"`
}

// Diagnosis is the decoded CLI output.
type Diagnosis struct {
	// AppID echoes the diagnosed application.
	AppID string `json:"app_id"`

	// Branch echoes the diagnosed branch.
	Branch string `json:"branch"`

	// JobID echoes the diagnosed job, when one was requested.
	JobID string `json:"job_id,omitempty"`

	// Status is the CLI's overall verdict.
	Status string `json:"status"`

	// Summary is the CLI's one-line explanation.
	Summary string `json:"summary"`

	// Issues lists the problems found, most severe first.
	Issues []Issue `json:"issues,omitempty"`
}

// ProfileSource supplies the AWS profile passed to the CLI. Keeping it an
// interface lets callers plug in credential helpers without this package
// knowing about them.
type ProfileSource interface {
	// Profile returns the profile name to use.
	Profile() (string, error)
}

// StaticProfile is a ProfileSource for a flag- or config-supplied name.
type StaticProfile string

// Profile implements ProfileSource.
func (p StaticProfile) Profile() (string, error) {
	return string(p), nil
}

// Client runs the diagnosis CLI.
type Client struct {
	// Binary is the CLI executable name or path.
	Binary string

	// Region is passed through as --region.
	Region string

	// Profiles supplies the --profile value.
	Profiles ProfileSource

	// Timeout bounds one invocation; zero means DefaultTimeout.
	Timeout time.Duration

	// Logger receives invocation progress; nil uses slog.Default.
	Logger *slog.Logger
}

// Run invokes the CLI for the request and decodes its JSON output.
func (c *Client) Run(ctx context.Context, req Request) (*Diagnosis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	args := []string{
		"diagnose",
		"--app-id", req.AppID,
		"--branch", req.Branch,
		"--region", c.Region,
		"--format", "json",
	}
	if req.JobID != "" {
		args = append(args, "--job-id", req.JobID)
	}
	if c.Profiles != nil {
		profile, err := c.Profiles.Profile()
		if err != nil {
			return nil, errors.Wrap(err, "resolving profile")
		}
		if profile != "" {
			args = append(args, "--profile", profile)
		}
	}

	logger.Debug("running diagnosis CLI", "binary", c.Binary, "app_id", req.AppID, "branch", req.Branch)

	res, err := execx.RunTimeout(ctx, timeout, c.Binary, args, "")
	switch {
	case res.NotFound():
		return nil, errors.Wrapf(ErrCLINotFound, "%s", c.Binary)
	case res.TimedOut():
		return nil, errors.Newf("diagnosis did not finish within %s", timeout)
	case err != nil:
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(res.Stdout)
		}
		return nil, errors.Wrapf(err, "diagnosis failed: %s", detail)
	}

	var d Diagnosis
	if err := json.Unmarshal([]byte(res.Stdout), &d); err != nil {
		return nil, errors.Wrap(err, "decoding diagnosis output")
	}

	logger.Debug("diagnosis complete", "status", d.Status, "issues", len(d.Issues), "duration", res.Duration)
	return &d, nil
}
