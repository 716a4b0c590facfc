package cli

import (
	stderrors "errors"
	"fmt"

	clierrors "github.com/pianorhythm/changelog-publisher/internal/errors"
)

// Exit codes for the changelog-publisher CLI
// These codes support CI/CD integration
const (
	// ExitSuccess indicates successful command execution, including a build
	// that fell back to previously published entries
	ExitSuccess = 0

	// ExitFailure indicates drift found by check, invalid configuration or a
	// failed write
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates the changelog source is missing
	ExitMissingDependencies = 4
)

// ExitError carries an exit code for a failure that has already been reported.
type ExitError struct {
	Code int
}

// NewExitError returns an ExitError with code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitCodeFor maps an error category to an exit code.
func exitCodeFor(category clierrors.ErrorCategory) int {
	switch category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Prerequisite:
		return ExitMissingDependencies
	default:
		return ExitFailure
	}
}

// exitCodeOf returns the exit code err maps to, without reporting it.
func exitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return exitCodeFor(cliErr.Category)
	}
	return ExitFailure
}
