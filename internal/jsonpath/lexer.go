package jsonpath

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cockroachdb/apd"
)

const eof = -1

// lexer produces tokens one at a time, tracking line and column in runes.
type lexer struct {
	input  string
	pos    int
	line   int
	column int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, column: 1}
}

func (l *lexer) location() Location {
	return Location{Line: l.line, Column: l.column}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, width := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += width
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// match consumes r if it is next and reports whether it did.
func (l *lexer) match(r rune) bool {
	if l.peek() != r {
		return false
	}
	l.advance()
	return true
}

// consume requires r to be next.
func (l *lexer) consume(r rune) error {
	if l.match(r) {
		return nil
	}
	next := l.peek()
	if next == eof {
		return newError(UnexpectedEndOfInput, "", l.location())
	}
	return newError(UnexpectedCharacter, string(next), l.location())
}

func (l *lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()

	loc := l.location()
	single := func(kind tokenKind) (token, error) {
		l.advance()
		return token{kind: kind, loc: loc}, nil
	}
	compare := func(op CompareOp) (token, error) {
		return token{kind: tokenCompare, op: op, loc: loc}, nil
	}

	switch r := l.peek(); r {
	case eof:
		return token{kind: tokenEOF, loc: loc}, nil
	case '$':
		return single(tokenRoot)
	case '@':
		return single(tokenCurrent)
	case '*':
		return single(tokenWildcard)
	case '?':
		return single(tokenQuestion)
	case ':':
		return single(tokenColon)
	case ';':
		return single(tokenSemicolon)
	case '[':
		return single(tokenLBracket)
	case ']':
		return single(tokenRBracket)
	case '(':
		return single(tokenLParen)
	case ')':
		return single(tokenRParen)
	case ',':
		return single(tokenComma)
	case '.':
		l.advance()
		if l.match('.') {
			return token{kind: tokenDotDot, loc: loc}, nil
		}
		return token{kind: tokenDot, loc: loc}, nil
	case '!':
		l.advance()
		if l.match('=') {
			return compare(OpNotEqual)
		}
		return token{kind: tokenNot, loc: loc}, nil
	case '&':
		l.advance()
		if err := l.consume('&'); err != nil {
			return token{}, err
		}
		return token{kind: tokenAnd, loc: loc}, nil
	case '|':
		l.advance()
		if err := l.consume('|'); err != nil {
			return token{}, err
		}
		return token{kind: tokenOr, loc: loc}, nil
	case '=':
		l.advance()
		if err := l.consume('='); err != nil {
			return token{}, err
		}
		return compare(OpEqual)
	case '<':
		l.advance()
		if l.match('=') {
			return compare(OpLessOrEqual)
		}
		return compare(OpLess)
	case '>':
		l.advance()
		if l.match('=') {
			return compare(OpGreaterOrEqual)
		}
		return compare(OpGreater)
	case '"', '\'':
		return l.lexString(loc)
	default:
		if r == '-' || isDigit(r) {
			return l.lexNumber(loc)
		}
		if isNameChar(r) {
			return l.lexName(loc), nil
		}
		return token{}, newError(UnexpectedToken, string(r), loc)
	}
}

func (l *lexer) lexString(loc Location) (token, error) {
	quote := l.advance()

	var b strings.Builder
	for {
		switch r := l.peek(); r {
		case eof:
			return token{}, newError(UnexpectedEndOfInput, "", l.location())
		case quote:
			l.advance()
			return token{kind: tokenString, text: b.String(), quote: byte(quote), loc: loc}, nil
		case '\\':
			l.advance()
			decoded, err := l.lexEscape()
			if err != nil {
				return token{}, err
			}
			b.WriteRune(decoded)
		default:
			l.advance()
			b.WriteRune(r)
		}
	}
}

// lexEscape decodes the escape whose backslash was just consumed. Errors are
// reported at the character following the backslash.
func (l *lexer) lexEscape() (rune, error) {
	loc := l.location()

	switch r := l.advance(); r {
	case eof:
		return 0, newError(UnexpectedEndOfInput, "", loc)
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '"', '\'', '\\', '/':
		return r, nil
	case 'u':
		code, err := l.lexHex4(loc)
		if err != nil {
			return 0, err
		}
		if !utf16.IsSurrogate(code) {
			return code, nil
		}
		// A high surrogate must be followed by an escaped low surrogate.
		if code <= 0xDBFF && strings.HasPrefix(l.input[l.pos:], `\u`) {
			l.advance()
			l.advance()
			low, err := l.lexHex4(loc)
			if err != nil {
				return 0, err
			}
			if combined := utf16.DecodeRune(code, low); combined != unicode.ReplacementChar {
				return combined, nil
			}
		}
		return 0, newError(InvalidEscapeSequence, fmt.Sprintf(`\u%04X`, code), loc)
	default:
		return 0, newError(InvalidEscapeSequence, `\`+string(r), loc)
	}
}

func (l *lexer) lexHex4(loc Location) (rune, error) {
	var code rune
	for range 4 {
		r := l.advance()
		var digit rune
		switch {
		case r == eof:
			return 0, newError(UnexpectedEndOfInput, "", l.location())
		case r >= '0' && r <= '9':
			digit = r - '0'
		case r >= 'a' && r <= 'f':
			digit = r - 'a' + 10
		case r >= 'A' && r <= 'F':
			digit = r - 'A' + 10
		default:
			return 0, newError(InvalidEscapeSequence, string(r), loc)
		}
		code = code<<4 | digit
	}
	return code, nil
}

func (l *lexer) lexNumber(loc Location) (token, error) {
	start := l.pos
	l.match('-')
	for r := l.peek(); isDigit(r) || r == '.'; r = l.peek() {
		l.advance()
	}

	text := l.input[start:l.pos]
	d, _, err := apd.NewFromString(text)
	if err != nil || d.Form != apd.Finite {
		return token{}, newError(InvalidNumber, text, loc)
	}
	return token{kind: tokenNumber, text: text, num: d, loc: loc}, nil
}

func (l *lexer) lexName(loc Location) token {
	start := l.pos
	for isNameChar(l.peek()) {
		l.advance()
	}

	text := l.input[start:l.pos]
	kind := tokenName
	switch text {
	case "true":
		kind = tokenTrue
	case "false":
		kind = tokenFalse
	case "null":
		kind = tokenNull
	}
	return token{kind: kind, text: text, loc: loc}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameChar(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
