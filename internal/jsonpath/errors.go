package jsonpath

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every *ParserError.
var ErrSyntax = errors.New("jsonpath: syntax error")

var (
	// ErrArgumentCount is reported when a call does not match the function's arity.
	ErrArgumentCount = errors.New("jsonpath: wrong number of arguments")

	// ErrResultType is reported when a function returns a result of the wrong type.
	ErrResultType = errors.New("jsonpath: function result does not match its declared type")
)

// ErrorKind classifies a ParserError.
type ErrorKind uint8

const (
	UnexpectedToken ErrorKind = iota + 1
	UnexpectedEndOfInput
	UnexpectedCharacter
	InvalidEscapeSequence
	InvalidNumber
	NonSingularQuery
	NestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case UnexpectedCharacter:
		return "unexpected character"
	case InvalidEscapeSequence:
		return "invalid escape sequence"
	case InvalidNumber:
		return "invalid number"
	case NonSingularQuery:
		return "non-singular query in comparison"
	case NestingTooDeep:
		return "expression nested too deeply"
	default:
		return "unknown error"
	}
}

// Location is a 1-based line and column in the path source.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// ParserError reports the first problem found while compiling a path.
type ParserError struct {
	Kind     ErrorKind
	Text     string // offending token, character, escape or query
	Location Location
}

func (e *ParserError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("jsonpath: %s at %s", e.Kind, e.Location)
	}
	return fmt.Sprintf("jsonpath: %s %q at %s", e.Kind, e.Text, e.Location)
}

func (e *ParserError) Unwrap() error {
	return ErrSyntax
}

func newError(kind ErrorKind, text string, loc Location) *ParserError {
	return &ParserError{Kind: kind, Text: text, Location: loc}
}
