package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/saga95/amplify-doctor/internal/diagnose"
	"github.com/saga95/amplify-doctor/internal/errors"
)

var (
	diagnoseAppID  string
	diagnoseBranch string
	diagnoseJobID  string
	diagnoseJSON   bool
)

func init() {
	diagnoseCmd.Flags().StringVar(&diagnoseAppID, "app-id", "", "Amplify application id")
	diagnoseCmd.Flags().StringVar(&diagnoseBranch, "branch", "", "deployed branch name")
	diagnoseCmd.Flags().StringVar(&diagnoseJobID, "job-id", "", "build job id (default: latest)")
	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false, "output the diagnosis as JSON")
	rootCmd.AddCommand(diagnoseCmd)
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose a failed cloud deployment",
	Long: `Hand off to the external diagnosis CLI for a deployment that
already failed in the cloud. The CLI owns all AWS access; region,
profile, and binary name come from the configuration.`,
	RunE: runDiagnose,
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	if diagnoseAppID == "" || diagnoseBranch == "" {
		err := errors.New("--app-id and --branch are required")
		return errors.NewUserError(err, "Find both in the Amplify console URL")
	}

	client := &diagnose.Client{
		Binary:   cfg.DiagnoseBinary,
		Region:   cfg.Region,
		Profiles: diagnose.StaticProfile(cfg.Profile),
		Logger:   slog.Default(),
	}

	d, err := client.Run(cmd.Context(), diagnose.Request{
		AppID:  diagnoseAppID,
		Branch: diagnoseBranch,
		JobID:  diagnoseJobID,
	})
	if err != nil {
		if errors.Is(err, diagnose.ErrCLINotFound) {
			return errors.NewUserError(err, "Install the diagnosis CLI or set diagnose_binary in the config")
		}
		return errors.NewSystemError(err, "")
	}

	if diagnoseJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(d), "encoding JSON")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "App %s, branch %s", d.AppID, d.Branch)
	if d.JobID != "" {
		fmt.Fprintf(out, ", job %s", d.JobID)
	}
	fmt.Fprintf(out, "\nStatus: %s\n%s\n", d.Status, d.Summary)

	for _, issue := range d.Issues {
		fmt.Fprintf(out, "\n[%s] %s\n", issue.Severity, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(out, "  hint: %s\n", issue.Suggestion)
		}
	}
	return nil
}
