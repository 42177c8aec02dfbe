package cli

import (
	"errors"
	"fmt"
)

// ExitError asks [Execute] to leave with a non-zero code.
//
// Commands report a rejected action (a locked stage, a closed gate, an
// unknown id) by printing the reason and returning an ExitError, so tests can
// check the code without the process exiting. Only [Execute] calls os.Exit.
type ExitError struct {
	// Code is the process exit code: 1 for a rejected action.
	Code int
}

// Error returns "exit status N".
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError extracts the code of an [ExitError] anywhere in err's chain.
// It returns (0, false) for nil and for any other error, which [RunWithConfig]
// prints and maps to exit code 1.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// fail prints err as a warning and returns an [ExitError] with code 1.
func (app *App) fail(err error) error {
	app.Printer.Warning("%v", err)
	return NewExitError(1)
}
