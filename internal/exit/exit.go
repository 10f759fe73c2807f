package exit

import (
	"fmt"
	"io"
	"os"
)

const (
	// CodeMatched is returned when at least one path selected a node, or
	// always when match checking is off.
	CodeMatched = 0
	// CodeFailure is returned on usage, input or path errors.
	CodeFailure = 1
	// CodeNoMatch is returned with -exit-status when nothing was selected.
	CodeNoMatch = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a result that writes to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeMatched,
		Message:  message,
	}
}

// Error creates a result that writes to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  message,
	}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// NoMatch creates a result for a run in which no path selected anything.
func NoMatch(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeNoMatch,
		Message:  message,
	}
}
