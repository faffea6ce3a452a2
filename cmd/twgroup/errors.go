package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/aledsdavies/twgroup/core/errors"
	"github.com/aledsdavies/twgroup/runtime/rewrite"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitInvalidArgs     = 1
	ExitIOError         = 2
	ExitUnbalanced      = 3
	ExitConfigError     = 4
	ExitRewriteRequired = 5
)

// CLIError represents a formatted CLI error with a fix-it hint
type CLIError struct {
	Message string
	Hint    string
	Code    int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	var cliErr *CLIError
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.As(err, &cliErr):
		return cliErr.Code
	case errors.IsErrorType(err, errors.ErrUnbalancedGrouping):
		return ExitUnbalanced
	case errors.IsErrorType(err, errors.ErrConfigInvalid):
		return ExitConfigError
	case errors.IsErrorType(err, errors.ErrInputRead):
		return ExitIOError
	default:
		return ExitInvalidArgs
	}
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var cliErr *CLIError
	var failure rewrite.Failure
	var groupErr *errors.GroupError
	switch {
	case stderrors.As(err, &cliErr):
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), cliErr.Message)
		if cliErr.Hint != "" {
			_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), cliErr.Hint)
		}
	case stderrors.As(err, &failure):
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
		_, _ = fmt.Fprintf(w, "%s\n", Colorize(fmt.Sprintf("  value: %q", failure.Value), ColorGray, useColor))
	case stderrors.As(err, &groupErr):
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), groupErr.Message)
		if groupErr.Cause != nil {
			_, _ = fmt.Fprintf(w, "%s\n", Colorize(fmt.Sprintf("  cause: %v", groupErr.Cause), ColorGray, useColor))
		}
		keys := make([]string, 0, len(groupErr.Context))
		for k := range groupErr.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "%s\n", Colorize(fmt.Sprintf("  %s: %v", k, groupErr.Context[k]), ColorGray, useColor))
		}
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
	}
}
