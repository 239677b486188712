// Package commands implements the CLI commands for amplify-doctor.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/saga95/amplify-doctor/cmd"
	"github.com/saga95/amplify-doctor/internal/config"
	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/logging"
)

// projectDir holds the value of the -C/--project flag.
var projectDir string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the loaded configuration, available after initConfig runs.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".",
		"project directory to analyze")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: config.yaml in the XDG config dir)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("amplify-doctor version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "amplify-doctor",
	Short: "Configuration health checks for Amplify deployments",
	Long: `amplify-doctor analyzes a frontend project before it is handed to
AWS Amplify Hosting: build settings, lock file hygiene, Node version
resolution, environment and secret hygiene, and git sync state.

Findings carry remediation references; run 'amplify-doctor fix' to apply
them. The 'diagnose' command hands off to the external diagnosis CLI for
deployments that already failed in the cloud.`,
	Example: `  # Analyze the current directory
  amplify-doctor check

  # Analyze another project, machine readable
  amplify-doctor check -C ../shop --json

  # Apply a remediation from the last report
  amplify-doctor fix

  # Diagnose a failed cloud deployment
  amplify-doctor diagnose --app-id d1abc --branch main`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("AMPLIFY_DOCTOR_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 1
				case "2":
					v = 2
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// checkConfig surfaces config load and validation problems before any
// subcommand runs.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		err := errors.Wrapf(errors.ErrInvalidConfig, "%v", errs[0])
		return errors.NewUserError(err, "Fix the configuration file or unset the offending environment variable")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
