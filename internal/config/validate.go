package config

import (
	"fmt"

	"github.com/saga95/amplify-doctor/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidTimeout indicates a non-positive check timeout.
	ErrInvalidTimeout = errors.New("check_timeout must be positive")

	// ErrInvalidScanDepth indicates a scan depth below 1.
	ErrInvalidScanDepth = errors.New("scan_depth must be >= 1")

	// ErrMissingBinary indicates the diagnosis binary name is empty.
	ErrMissingBinary = errors.New("diagnose_binary must not be empty")
)

// FieldError wraps a validation error with the offending field and value.
type FieldError struct {
	Field string
	Value any
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s=%v: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, &FieldError{Field: "version", Value: cfg.Version, Err: ErrVersionTooLow})
	}
	if cfg.CheckTimeout <= 0 {
		errs = append(errs, &FieldError{Field: "check_timeout", Value: cfg.CheckTimeout, Err: ErrInvalidTimeout})
	}
	if cfg.ScanDepth < 1 {
		errs = append(errs, &FieldError{Field: "scan_depth", Value: cfg.ScanDepth, Err: ErrInvalidScanDepth})
	}
	if cfg.DiagnoseBinary == "" {
		errs = append(errs, &FieldError{Field: "diagnose_binary", Value: cfg.DiagnoseBinary, Err: ErrMissingBinary})
	}

	return errs
}
