package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ht-tools/commitlog/internal/errors"
)

// Exit codes for the commitlog CLIs
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure such as a failed git call
	ExitFailure = 1

	// ExitInvalidConfig indicates the configuration could not be loaded
	ExitInvalidConfig = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates required history or files are missing
	ExitMissingDependencies = 4
)

// ExitError carries an explicit exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error that exits with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitInvalidConfig
		case clierrors.Prerequisite:
			return ExitMissingDependencies
		}
	}

	return ExitFailure
}
