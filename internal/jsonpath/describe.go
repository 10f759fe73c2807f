package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jacoelho/jpq/internal/value"
)

// String renders the canonical source form of the path.
func (p *Path) String() string {
	var b strings.Builder
	b.WriteString(p.Identifier.String())
	for _, seg := range p.Segments {
		b.WriteString(seg.String())
	}
	return b.String()
}

func (s Segment) String() string {
	prefix := ""
	if s.Kind == DescendantSegment {
		prefix = ".."
	}

	if s.Shorthand && len(s.Selectors) == 1 {
		switch sel := s.Selectors[0].(type) {
		case WildcardSelector:
			if s.Kind == DescendantSegment {
				return "..*"
			}
			return ".*"
		case NameSelector:
			if isShorthandName(sel.Name) {
				if s.Kind == DescendantSegment {
					return ".." + sel.Name
				}
				return "." + sel.Name
			}
		}
	}

	parts := make([]string, len(s.Selectors))
	for i, sel := range s.Selectors {
		parts[i] = sel.String()
	}
	return prefix + "[" + strings.Join(parts, ", ") + "]"
}

func isShorthandName(name string) bool {
	if name == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	if first == '-' || unicode.IsDigit(first) {
		return false
	}
	for _, r := range name {
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func (s NameSelector) String() string {
	quote := s.Quote
	if quote == 0 {
		quote = '\''
	}
	return quoteString(s.Name, quote)
}

func (WildcardSelector) String() string {
	return "*"
}

func (s IndexSelector) String() string {
	return strconv.Itoa(s.Index)
}

func (s SliceSelector) String() string {
	var b strings.Builder
	if s.Start != nil {
		b.WriteString(strconv.Itoa(*s.Start))
	}
	b.WriteByte(':')
	if s.End != nil {
		b.WriteString(strconv.Itoa(*s.End))
	}
	if s.Step != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*s.Step))
	}
	return b.String()
}

func (s FilterSelector) String() string {
	return "?" + s.Expr.String()
}

// quoteString delimits s with quote, escaping what the lexer would not read
// back verbatim.
func quoteString(s string, quote byte) string {
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case r == rune(quote):
				b.WriteByte('\\')
				b.WriteByte(quote)
			case r < 0x20:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// Binding strength of expressions when printed; higher binds tighter.
const (
	precOr = iota + 1
	precAnd
	precUnary
	precPrimary
)

func precedence(e Expression) int {
	if l, ok := e.(*LogicalExpr); ok {
		switch l.Op {
		case LogicalOr:
			return precOr
		case LogicalAnd:
			return precAnd
		default:
			return precUnary
		}
	}
	return precPrimary
}

func (e *LiteralExpr) String() string {
	switch e.Value.Kind() {
	case value.KindString:
		s, _ := e.Value.AsString()
		quote := e.Quote
		if quote == 0 {
			quote = '\''
		}
		return quoteString(s, quote)
	case value.KindNumber:
		d, _ := e.Value.AsNumber()
		return d.Text('f')
	default:
		return e.Value.String()
	}
}

func (e *QueryExpr) String() string {
	return e.Query.String()
}

func (e *SingularQueryExpr) String() string {
	return e.Query.String()
}

func (e *ComparisonExpr) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

func (e *LogicalExpr) String() string {
	if e.Op == LogicalNot {
		if len(e.Operands) != 1 {
			return "!()"
		}
		switch operand := e.Operands[0].(type) {
		case *TestExpr, *ParenExpr:
			return "!" + operand.String()
		case *LogicalExpr:
			if operand.Op == LogicalNot {
				return "!" + operand.String()
			}
		}
		return "!(" + e.Operands[0].String() + ")"
	}

	sep, prec := " && ", precAnd
	if e.Op == LogicalOr {
		sep, prec = " || ", precOr
	}
	parts := make([]string, len(e.Operands))
	for i, operand := range e.Operands {
		parts[i] = operand.String()
		if precedence(operand) <= prec {
			parts[i] = "(" + parts[i] + ")"
		}
	}
	return strings.Join(parts, sep)
}

func (e *TestExpr) String() string {
	return e.Expr.String()
}

func (e *FunctionExpr) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

func (e *ParenExpr) String() string {
	return "(" + e.Expr.String() + ")"
}
