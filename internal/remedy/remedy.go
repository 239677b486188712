// Package remedy applies the named remediation actions findings reference.
//
// Actions form a small closed set keyed by id, with parameters carried as
// plain data on the finding. File-mutating actions are idempotent: applying
// the same action twice leaves the file byte-identical to applying it once.
// Shell actions are fire-and-forget; callers re-run analysis afterwards.
package remedy

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Action ids for the closed set of remediation kinds.
const (
	// ActionWriteFile writes params["content"] to params["path"].
	ActionWriteFile = "write-file"

	// ActionAppendFile appends params["content"] to params["path"] unless
	// params["marker"] (default: the content) is already present.
	ActionAppendFile = "append-to-file"

	// ActionRegexReplace replaces params["pattern"] matches with
	// params["replacement"] in params["path"].
	ActionRegexReplace = "regex-replace-in-file"

	// ActionRunCommand starts params["command"] in a shell without waiting
	// for completion. Best effort: re-analysis may observe a snapshot taken
	// before the command finished.
	ActionRunCommand = "run-shell-command"
)

// Parameter keys used by the built-in actions.
const (
	ParamPath        = "path"
	ParamContent     = "content"
	ParamMarker      = "marker"
	ParamPattern     = "pattern"
	ParamReplacement = "replacement"
	ParamCommand     = "command"
)

// Error describes a failed remediation. It wraps the underlying cause and
// names the action so callers can surface both.
type Error struct {
	// ActionID is the action that failed.
	ActionID string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("remediation %s: %v", e.ActionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps err as a remediation failure for actionID.
func newError(actionID string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{ActionID: actionID, Err: err}
}

// missingParam builds the error for a required parameter that is absent.
func missingParam(actionID, key string) error {
	return newError(actionID, errors.Newf("missing required parameter %q", key))
}
