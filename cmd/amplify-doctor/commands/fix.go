package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/remedy"
	"github.com/saga95/amplify-doctor/internal/reportstore"
)

var fixList bool

func init() {
	fixCmd.Flags().BoolVar(&fixList, "list", false,
		"list fixable findings without applying anything")
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix [finding-id]",
	Short: "Apply a remediation from the last report",
	Long: `Apply the remediation attached to a finding of the last cached
report. With no argument an interactive picker lists the fixable
findings; with a finding id the remediation is applied directly.

File remediations are applied atomically and re-analyze the project
afterwards. Shell remediations are started and left running; re-run
'amplify-doctor check' once the command has finished.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	report, err := reportstore.New().Load()
	if err != nil {
		if errors.Is(err, errors.ErrNoReport) {
			return errors.NewUserError(err, "Run: amplify-doctor check")
		}
		return err
	}

	fixable := report.Fixable()
	if len(fixable) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to fix.")
		return nil
	}

	if fixList {
		for _, f := range fixable {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n", f.ID, f.Message, f.Remediation.ActionID)
		}
		return nil
	}

	finding, err := selectFinding(fixable, args)
	if err != nil {
		return err
	}
	if finding == nil {
		return nil // picker aborted
	}

	dispatcher := remedy.NewDispatcher(projectDir, slog.Default())
	if err := dispatcher.Apply(cmd.Context(), finding.Remediation.ActionID, finding.Remediation.Params); err != nil {
		return errors.NewSystemError(err, "The report may be stale; run: amplify-doctor check")
	}

	if !remedy.Mutating(finding.Remediation.ActionID) {
		fmt.Fprintf(cmd.OutOrStdout(), "Started: %s\n", finding.Remediation.Params[remedy.ParamCommand])
		fmt.Fprintln(cmd.OutOrStdout(), "Re-run 'amplify-doctor check' once the command has finished.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %s for %s\n", finding.Remediation.ActionID, finding.ID)

	// Re-analyze so the cached report reflects the mutation.
	fresh, err := analyze(cmd)
	if err != nil {
		return err
	}
	if err := reportstore.New().Save(fresh); err != nil {
		slog.Warn("could not cache report", "error", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/100\n", fresh.Score)
	return nil
}

// selectFinding resolves the finding to fix, either from the argument or
// interactively. A nil finding with nil error means the picker was aborted.
func selectFinding(fixable []engine.Finding, args []string) (*engine.Finding, error) {
	if len(args) == 1 {
		for i := range fixable {
			if fixable[i].ID == args[0] {
				return &fixable[i], nil
			}
		}
		var ids []string
		for _, f := range fixable {
			ids = append(ids, f.ID)
		}
		err := errors.Newf("finding %q is not fixable or not in the last report", args[0])
		return nil, errors.NewUserError(err, "Fixable findings: "+strings.Join(ids, ", "))
	}

	idx, err := fuzzyfinder.Find(
		fixable,
		func(i int) string {
			return fmt.Sprintf("%s: %s", fixable[i].ID, fixable[i].Message)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			f := fixable[i]
			return fmt.Sprintf("Status: %s\nImpact: %s\nAction: %s\n\n%s",
				f.Status, f.Impact, f.Remediation.ActionID, f.Message)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &fixable[idx], nil
}
