package jsonpath

import (
	"log/slog"
)

// Delegate receives diagnostics that evaluation otherwise swallows.
type Delegate interface {
	// FunctionArgumentTypeMismatch is called when argument index of fn does
	// not have the declared type. The call then evaluates to its no-match
	// result.
	FunctionArgumentTypeMismatch(fn *Function, index int, expected ArgumentType, actual Argument)
}

// FailureDelegate is a Delegate that also wants to hear about calls that ran
// and failed, or that had the wrong number of arguments.
type FailureDelegate interface {
	Delegate
	FunctionEvaluationFailed(fn *Function, args []Argument, err error)
}

// LogDelegate writes diagnostics to Logger at debug level, or to the default
// logger when Logger is nil.
type LogDelegate struct {
	Logger *slog.Logger
}

func (d LogDelegate) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d LogDelegate) FunctionArgumentTypeMismatch(fn *Function, index int, expected ArgumentType, actual Argument) {
	d.logger().Debug("function argument type mismatch",
		slog.String("function", fn.Name()),
		slog.Int("argument", index),
		slog.String("expected", expected.String()),
		slog.String("actual", actual.Kind().String()),
	)
}

func (d LogDelegate) FunctionEvaluationFailed(fn *Function, args []Argument, err error) {
	d.logger().Debug("function evaluation failed",
		slog.String("function", fn.Name()),
		slog.Int("arguments", len(args)),
		slog.Any("error", err),
	)
}
