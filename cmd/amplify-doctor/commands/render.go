package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/saga95/amplify-doctor/internal/engine"
)

var (
	passMark = color.New(color.FgGreen).Sprint("✓")
	infoMark = color.New(color.FgCyan).Sprint("ℹ")
	warnMark = color.New(color.FgYellow).Sprint("⚠")
	failMark = color.New(color.FgRed).Sprint("✗")
	skipMark = color.New(color.FgHiBlack).Sprint("-")
)

func statusMark(s engine.Status) string {
	switch s {
	case engine.StatusPass:
		return passMark
	case engine.StatusInfo:
		return infoMark
	case engine.StatusWarn:
		return warnMark
	case engine.StatusFail:
		return failMark
	case engine.StatusSkip:
		return skipMark
	default:
		return "?"
	}
}

// renderText prints the report for humans. In normal mode only warnings
// and failures are listed; verbose mode lists every finding.
func renderText(w io.Writer, report *engine.Report, showAll bool) error {
	hasOutput := false
	for _, f := range report.Findings {
		if !showAll && f.Status != engine.StatusWarn && f.Status != engine.StatusFail {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusMark(f.Status), f.Category, f.Name, f.Message)
		for _, d := range f.Details {
			fmt.Fprintf(w, "    %s\n", d)
		}
		if f.Fixable() && (f.Status == engine.StatusWarn || f.Status == engine.StatusFail) {
			fmt.Fprintf(w, "    fix: amplify-doctor fix %s\n", f.ID)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d failed, %d skipped\n",
		report.Summary.Passed, report.Summary.Warnings, report.Summary.Failed, report.Summary.Skipped)
	fmt.Fprintf(w, "Score: %d/100\n", report.Score)

	if report.CanProceed {
		fmt.Fprintf(w, "%s deploy can proceed\n", passMark)
	} else {
		fmt.Fprintf(w, "%s deploy blocked by %d failure(s)\n", failMark, len(report.BlockingFailures()))
	}
	return nil
}
