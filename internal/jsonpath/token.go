package jsonpath

import (
	"strconv"

	"github.com/cockroachdb/apd"
)

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenRoot
	tokenCurrent
	tokenDot
	tokenDotDot
	tokenWildcard
	tokenQuestion
	tokenColon
	tokenSemicolon
	tokenLBracket
	tokenRBracket
	tokenLParen
	tokenRParen
	tokenComma
	tokenNot
	tokenAnd
	tokenOr
	tokenCompare
	tokenName
	tokenNumber
	tokenString
	tokenTrue
	tokenFalse
	tokenNull
)

var tokenText = [...]string{
	tokenEOF:       "end of input",
	tokenRoot:      "$",
	tokenCurrent:   "@",
	tokenDot:       ".",
	tokenDotDot:    "..",
	tokenWildcard:  "*",
	tokenQuestion:  "?",
	tokenColon:     ":",
	tokenSemicolon: ";",
	tokenLBracket:  "[",
	tokenRBracket:  "]",
	tokenLParen:    "(",
	tokenRParen:    ")",
	tokenComma:     ",",
	tokenNot:       "!",
	tokenAnd:       "&&",
	tokenOr:        "||",
	tokenCompare:   "comparison",
	tokenName:      "name",
	tokenNumber:    "number",
	tokenString:    "string",
	tokenTrue:      "true",
	tokenFalse:     "false",
	tokenNull:      "null",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenText) {
		return tokenText[k]
	}
	return "token(" + strconv.Itoa(int(k)) + ")"
}

type token struct {
	kind  tokenKind
	text  string // name, decoded string contents or number literal
	quote byte   // string delimiter
	op    CompareOp
	num   *apd.Decimal
	loc   Location
}

// String renders the token the way it appeared in the source.
func (t token) String() string {
	switch t.kind {
	case tokenName, tokenNumber:
		return t.text
	case tokenString:
		return quoteString(t.text, t.quote)
	case tokenCompare:
		return t.op.String()
	default:
		return t.kind.String()
	}
}

func (t token) isLiteral() bool {
	switch t.kind {
	case tokenNumber, tokenString, tokenTrue, tokenFalse, tokenNull:
		return true
	default:
		return false
	}
}

// isMemberName reports whether the token can follow '.' or '..' as a name.
func (t token) isMemberName() bool {
	switch t.kind {
	case tokenName, tokenTrue, tokenFalse, tokenNull:
		return true
	default:
		return false
	}
}
