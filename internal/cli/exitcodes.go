package cli

import (
	"errors"

	"github.com/yaklabco/checkmark/pkg/runner"
)

// Exit codes for checkmark.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitIssuesFound indicates the run completed and reported issues.
	ExitIssuesFound = 1

	// ExitUsageError indicates invalid command-line usage or configuration.
	ExitUsageError = 2

	// ExitRuntimeError indicates a check could not complete.
	ExitRuntimeError = 3
)

// ErrIssuesFound is returned when a command reported issues.
var ErrIssuesFound = errors.New("issues found")

// ExitError carries an exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsageError, Err: err}
}

func runtimeError(err error) error {
	return &ExitError{Code: ExitRuntimeError, Err: err}
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrIssuesFound) {
		return ExitIssuesFound
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitRuntimeError
}

// ExitCodeFromResult determines the exit code of a completed run. A file
// whose check failed outranks issues found elsewhere.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitRuntimeError
	case result.HasIssues():
		return ExitIssuesFound
	default:
		return ExitSuccess
	}
}

// resultError converts a run result into the error cobra returns.
func resultError(result *runner.Result) error {
	switch ExitCodeFromResult(result) {
	case ExitRuntimeError:
		return runtimeError(errors.New("some files could not be checked"))
	case ExitIssuesFound:
		return ErrIssuesFound
	default:
		return nil
	}
}
