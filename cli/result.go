package cli

// CommandError signals a command failure with a specific exit code.
// Commands return it after printing their own diagnostics, so main only has to
// translate it into the process exit code.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// CommandResult is the outcome of a single check. In watch mode results are
// reported and the command keeps running; otherwise Err is returned to main.
type CommandResult struct {
	// ExitCode is 0 when the audit file is valid.
	ExitCode int

	// Err is set for every non-zero exit code.
	Err error
}

// Success returns a CommandResult indicating successful execution.
func Success() CommandResult {
	return CommandResult{ExitCode: 0}
}

// Failure returns a CommandResult indicating failure with the given error.
// A CommandError carries its own exit code.
func Failure(err error) CommandResult {
	if cmdErr, ok := err.(*CommandError); ok {
		return CommandResult{ExitCode: cmdErr.ExitCode(), Err: err}
	}
	return CommandResult{ExitCode: 1, Err: err}
}
