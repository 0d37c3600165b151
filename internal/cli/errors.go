package cli

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ltl2nba/internal/config"
	"github.com/katalvlaran/ltl2nba/ltl"
)

// Exit codes.
const (
	exitOK    = 0
	exitBuild = 1
	exitUsage = 2
)

// ExitError is an error that carries a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: exitUsage, Message: fmt.Sprintf(format, args...)}
}

// exitCode maps err to a process exit code: 2 for usage, configuration and
// formula syntax errors, 1 for everything else.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	if errors.Is(err, ltl.ErrSyntax) || errors.Is(err, config.ErrInvalid) {
		return exitUsage
	}
	return exitBuild
}
