// Package logging provides structured logging for the amplify-doctor CLI
// using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. The text handler colorizes output when
// the writer is a color-capable TTY and masks attribute values that look
// like credentials.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("analysis complete", "score", 92)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
