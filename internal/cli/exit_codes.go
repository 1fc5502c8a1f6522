package cli

import "errors"

// Exit codes for the hookcfg CLI. The distinct codes support
// programmatic composition and CI integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates one or more structural checks failed
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitMissingFile indicates a required configuration file was absent
	ExitMissingFile = 3
)

// ExitError carries a process exit code through the error return path.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new exit error wrapping err with the given code.
func NewExitError(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode returns the exit code for an error returned by Execute.
// Command handlers wrap everything in ExitError, so an unwrapped error
// comes from cobra's flag and argument parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInvalidArguments
}
