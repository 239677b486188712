package commands

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/saga95/amplify-doctor/internal/checks"
	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/nodever"
	"github.com/saga95/amplify-doctor/internal/reportstore"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

var (
	checkJSON    bool
	checkQuiet   bool
	checkVerbose bool
)

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"output the report as JSON")
	checkCmd.Flags().BoolVar(&checkQuiet, "quiet", false,
		"suppress output, exit code only")
	checkCmd.Flags().BoolVar(&checkVerbose, "verbose", false,
		"show all findings including passed ones")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Analyze the project and report deploy readiness",
	Long: `Run every health check against the project and print the scored
report. The report is also cached so 'amplify-doctor fix' can apply
remediations without re-analyzing.

Output modes (mutually exclusive):
  (default)   Show warnings and failures
  --verbose   Show every finding including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON report

Exit codes:
  0 - Healthy, deploy can proceed
  1 - Warnings present, no failures
  2 - Failures present or deploy blocked`,
	PreRunE: validateCheckFlags,
	RunE:    runCheck,
}

// validateCheckFlags ensures output flags are mutually exclusive.
func validateCheckFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if checkJSON {
		count++
	}
	if checkQuiet {
		count++
	}
	if checkVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}
	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	report, err := analyze(cmd)
	if err != nil {
		return err
	}

	if err := reportstore.New().Save(report); err != nil {
		slog.Warn("could not cache report", "error", err)
	}

	if err := outputReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if code := reportExitCode(report); code != errors.ExitSuccess {
		return errors.NewExitError(nil, code)
	}
	return nil
}

// analyze captures a snapshot and runs the full check set over it.
func analyze(cmd *cobra.Command) (*engine.Report, error) {
	table, err := nodever.LoadTable(cfg.CompatTable)
	if err != nil {
		return nil, errors.NewUserError(err, "Fix or remove the compatibility table override")
	}

	snap, err := snapshot.NewProvider().Capture(cmd.Context(), projectDir)
	if err != nil {
		err = errors.Wrap(errors.ErrSnapshotFailed, err.Error())
		return nil, errors.NewUserError(err, "Pass the project directory with -C")
	}

	e := engine.New(
		engine.WithLogger(slog.Default()),
		engine.WithCheckTimeout(cfg.CheckTimeout),
	)
	e.Register(checks.All(table, cfg.ScanDepth)...)

	return e.RunAnalysis(cmd.Context(), snap), nil
}

func outputReport(w io.Writer, report *engine.Report) error {
	if checkQuiet {
		return nil
	}
	if checkJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}
	return renderText(w, report, checkVerbose)
}

// reportExitCode maps a report onto the documented exit code contract.
func reportExitCode(report *engine.Report) int {
	switch {
	case report.Summary.Failed > 0 || !report.CanProceed:
		return errors.ExitSystem
	case report.Summary.Warnings > 0:
		return errors.ExitUser
	default:
		return errors.ExitSuccess
	}
}
