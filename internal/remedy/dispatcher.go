package remedy

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	cerrors "github.com/cockroachdb/errors"

	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/execx"
	"github.com/saga95/amplify-doctor/pkg/fileutil"
)

// handler applies one action kind. Handlers receive resolved absolute paths
// through resolvePath and must be idempotent for file mutations.
type handler func(ctx context.Context, d *Dispatcher, params map[string]string) error

// Dispatcher executes remediation actions against a project root.
type Dispatcher struct {
	root     string
	logger   *slog.Logger
	handlers map[string]handler
}

// NewDispatcher creates a dispatcher rooted at the project directory with
// the built-in action set registered.
func NewDispatcher(root string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		root:   root,
		logger: logger,
	}
	d.handlers = map[string]handler{
		ActionWriteFile:    applyWriteFile,
		ActionAppendFile:   applyAppendFile,
		ActionRegexReplace: applyRegexReplace,
		ActionRunCommand:   applyRunCommand,
	}
	return d
}

// Actions returns the registered action ids, sorted.
func (d *Dispatcher) Actions() []string {
	ids := make([]string, 0, len(d.handlers))
	for id := range d.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Mutating reports whether the action changes project files. Callers re-run
// analysis after a successful mutating action; shell actions are
// fire-and-forget and need a manual re-run once the command finishes.
func Mutating(actionID string) bool {
	switch actionID {
	case ActionWriteFile, ActionAppendFile, ActionRegexReplace:
		return true
	default:
		return false
	}
}

// Apply executes the named action. Unknown ids fail with ErrUnknownAction;
// all other failures are returned as a remediation Error. Nothing retries
// automatically, and a failure leaves the previously computed report valid.
func (d *Dispatcher) Apply(ctx context.Context, actionID string, params map[string]string) error {
	h, ok := d.handlers[actionID]
	if !ok {
		return cerrors.Wrapf(errors.ErrUnknownAction, "%q", actionID)
	}

	d.logger.Debug("applying remediation", "action", actionID)
	if err := h(ctx, d, params); err != nil {
		d.logger.Debug("remediation failed", "action", actionID, "error", err)
		return err
	}
	return nil
}

// resolvePath joins a relative parameter path against the project root and
// rejects escapes. Remediations only ever touch files inside the project.
func (d *Dispatcher) resolvePath(actionID, rel string) (string, error) {
	if rel == "" {
		return "", missingParam(actionID, ParamPath)
	}
	if filepath.IsAbs(rel) {
		return "", newError(actionID, cerrors.Newf("path %q must be relative to the project root", rel))
	}

	joined := filepath.Clean(filepath.Join(d.root, rel))
	rootPrefix := filepath.Clean(d.root) + string(filepath.Separator)
	if joined != filepath.Clean(d.root) && !strings.HasPrefix(joined, rootPrefix) {
		return "", newError(actionID, cerrors.Newf("path %q escapes the project root", rel))
	}
	return joined, nil
}

// applyWriteFile writes content to path. Re-applying converges: when the
// file already holds the desired bytes nothing is written.
func applyWriteFile(_ context.Context, d *Dispatcher, params map[string]string) error {
	path, err := d.resolvePath(ActionWriteFile, params[ParamPath])
	if err != nil {
		return err
	}
	content, ok := params[ParamContent]
	if !ok {
		return missingParam(ActionWriteFile, ParamContent)
	}

	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		return nil
	}
	return newError(ActionWriteFile, fileutil.AtomicWriteFile(path, []byte(content), 0o644))
}

// applyAppendFile appends content to path unless the marker text is already
// present. The marker defaults to the content itself, which is what makes
// "add cache section" safe to apply twice.
func applyAppendFile(_ context.Context, d *Dispatcher, params map[string]string) error {
	path, err := d.resolvePath(ActionAppendFile, params[ParamPath])
	if err != nil {
		return err
	}
	content, ok := params[ParamContent]
	if !ok {
		return missingParam(ActionAppendFile, ParamContent)
	}
	marker := params[ParamMarker]
	if marker == "" {
		marker = strings.TrimSpace(content)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return newError(ActionAppendFile, cerrors.Wrapf(err, "reading %s", path))
	}
	if strings.Contains(string(existing), marker) {
		return nil
	}

	updated := string(existing)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += content
	if !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	return newError(ActionAppendFile, fileutil.AtomicWriteFile(path, []byte(updated), 0o644))
}

// applyRegexReplace replaces all pattern matches in path with the
// replacement. When the replacement leaves the content unchanged (including
// on a second application) the file is not rewritten.
func applyRegexReplace(_ context.Context, d *Dispatcher, params map[string]string) error {
	path, err := d.resolvePath(ActionRegexReplace, params[ParamPath])
	if err != nil {
		return err
	}
	pattern, ok := params[ParamPattern]
	if !ok {
		return missingParam(ActionRegexReplace, ParamPattern)
	}
	replacement, ok := params[ParamReplacement]
	if !ok {
		return missingParam(ActionRegexReplace, ParamReplacement)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return newError(ActionRegexReplace, cerrors.Wrapf(err, "compiling pattern %q", pattern))
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return newError(ActionRegexReplace, cerrors.Wrapf(err, "reading %s", path))
	}

	updated := re.ReplaceAll(existing, []byte(replacement))
	if string(updated) == string(existing) {
		return nil
	}
	return newError(ActionRegexReplace, fileutil.AtomicWriteFile(path, updated, 0o644))
}

// applyRunCommand starts the command in a shell rooted at the project and
// returns without waiting. The engine never blocks on completion; the
// caller re-runs analysis manually once the command has done its work.
func applyRunCommand(_ context.Context, d *Dispatcher, params map[string]string) error {
	command, ok := params[ParamCommand]
	if !ok || command == "" {
		return missingParam(ActionRunCommand, ParamCommand)
	}

	d.logger.Info("starting remediation command", "command", command)
	return newError(ActionRunCommand, execx.Start("sh", []string{"-c", command}, d.root))
}
