package jsonpath

import (
	"github.com/jacoelho/jpq/internal/value"
)

// DefaultMaxDepth bounds the nesting of filter expressions.
const DefaultMaxDepth = 256

// maxSafeInteger is the I-JSON bound on indices and slice parameters.
const maxSafeInteger = 1<<53 - 1

type parseOptions struct {
	captureParentheses bool
	maxDepth           int
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

// CaptureParentheses keeps source parentheses in the tree as ParenExpr so
// that String reproduces the source exactly.
func CaptureParentheses() ParseOption {
	return func(o *parseOptions) {
		o.captureParentheses = true
	}
}

// WithMaxDepth sets the maximum nesting of filter expressions, parentheses
// and negations. Values below one select DefaultMaxDepth.
func WithMaxDepth(depth int) ParseOption {
	return func(o *parseOptions) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		o.maxDepth = depth
	}
}

type parser struct {
	lex   *lexer
	ahead []token
	opts  parseOptions
	depth int
}

// Parse compiles a path expression. It fails with a *ParserError describing
// the first problem found.
func Parse(source string, opts ...ParseOption) (*Path, error) {
	o := parseOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{lex: newLexer(source), opts: o}
	path, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenEOF); err != nil {
		return nil, err
	}
	return path, nil
}

// MustParse is like Parse but panics if the expression cannot be compiled.
func MustParse(source string, opts ...ParseOption) *Path {
	path, err := Parse(source, opts...)
	if err != nil {
		panic(err)
	}
	return path
}

func (p *parser) peekAt(n int) (token, error) {
	for len(p.ahead) <= n {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.ahead = append(p.ahead, tok)
	}
	return p.ahead[n], nil
}

func (p *parser) peek() (token, error) {
	return p.peekAt(0)
}

func (p *parser) next() (token, error) {
	tok, err := p.peek()
	if err != nil {
		return token{}, err
	}
	p.ahead = p.ahead[1:]
	return tok, nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok, err := p.next()
	if err != nil {
		return token{}, err
	}
	if tok.kind != kind {
		return token{}, unexpected(tok)
	}
	return tok, nil
}

func unexpected(tok token) error {
	if tok.kind == tokenEOF {
		return newError(UnexpectedEndOfInput, "", tok.loc)
	}
	return newError(UnexpectedToken, tok.String(), tok.loc)
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opts.maxDepth {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		return newError(NestingTooDeep, "", tok.loc)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseQuery() (*Path, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	path := &Path{}
	switch tok.kind {
	case tokenRoot:
		path.Identifier = Root
	case tokenCurrent:
		path.Identifier = Current
	default:
		return nil, unexpected(tok)
	}

	path.Segments, err = p.parseSegments()
	if err != nil {
		return nil, err
	}
	return path, nil
}

func (p *parser) parseSegments() ([]Segment, error) {
	var segments []Segment
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		var seg Segment
		switch tok.kind {
		case tokenDot:
			p.next()
			seg, err = p.parseShorthand(ChildSegment)
		case tokenDotDot:
			p.next()
			nextTok, peekErr := p.peek()
			if peekErr != nil {
				return nil, peekErr
			}
			if nextTok.kind == tokenLBracket {
				seg.Kind = DescendantSegment
				seg.Selectors, err = p.parseBracketed()
			} else {
				seg, err = p.parseShorthand(DescendantSegment)
			}
		case tokenLBracket:
			seg.Kind = ChildSegment
			seg.Selectors, err = p.parseBracketed()
		default:
			return segments, nil
		}
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
}

func (p *parser) parseShorthand(kind SegmentKind) (Segment, error) {
	tok, err := p.next()
	if err != nil {
		return Segment{}, err
	}

	switch {
	case tok.kind == tokenWildcard:
		return Segment{Kind: kind, Selectors: []Selector{WildcardSelector{}}, Shorthand: true}, nil
	case tok.isMemberName():
		return Segment{Kind: kind, Selectors: []Selector{NameSelector{Name: tok.text}}, Shorthand: true}, nil
	default:
		return Segment{}, unexpected(tok)
	}
}

func (p *parser) parseBracketed() ([]Selector, error) {
	if _, err := p.expect(tokenLBracket); err != nil {
		return nil, err
	}

	var selectors []Selector
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenComma:
		case tokenRBracket:
			return selectors, nil
		default:
			return nil, unexpected(tok)
		}
	}
}

func (p *parser) parseSelector() (Selector, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokenString:
		p.next()
		return NameSelector{Name: tok.text, Quote: tok.quote}, nil
	case tokenWildcard:
		p.next()
		return WildcardSelector{}, nil
	case tokenQuestion:
		p.next()
		expr, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		return FilterSelector{Expr: expr}, nil
	case tokenNumber, tokenColon:
		return p.parseIndexOrSlice()
	default:
		p.next()
		return nil, unexpected(tok)
	}
}

func (p *parser) parseIndexOrSlice() (Selector, error) {
	var slice SliceSelector

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenNumber {
		p.next()
		n, err := integer(tok)
		if err != nil {
			return nil, err
		}
		after, err := p.peek()
		if err != nil {
			return nil, err
		}
		if after.kind != tokenColon {
			return IndexSelector{Index: n}, nil
		}
		slice.Start = &n
	}

	if _, err := p.expect(tokenColon); err != nil {
		return nil, err
	}
	if slice.End, err = p.optionalInteger(); err != nil {
		return nil, err
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenColon {
		p.next()
		if slice.Step, err = p.optionalInteger(); err != nil {
			return nil, err
		}
	}
	return slice, nil
}

func (p *parser) optionalInteger() (*int, error) {
	tok, err := p.peek()
	if err != nil || tok.kind != tokenNumber {
		return nil, err
	}
	p.next()
	n, err := integer(tok)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func integer(tok token) (int, error) {
	i, err := tok.num.Int64()
	if err != nil || i > maxSafeInteger || i < -maxSafeInteger {
		return 0, newError(InvalidNumber, tok.text, tok.loc)
	}
	return int(i), nil
}

func (p *parser) parseLogicalOr() (Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.parseLogical(LogicalOr, tokenOr, p.parseLogicalAnd)
}

func (p *parser) parseLogicalAnd() (Expression, error) {
	return p.parseLogical(LogicalAnd, tokenAnd, p.parseUnary)
}

// parseLogical collects operands separated by sep into one flat node.
func (p *parser) parseLogical(op LogicalOp, sep tokenKind, operand func() (Expression, error)) (Expression, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}

	operands := []Expression{first}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind != sep {
			break
		}
		p.next()

		expr, err := operand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, expr)
	}

	if len(operands) == 1 {
		return first, nil
	}
	return &LogicalExpr{Op: op, Operands: operands}, nil
}

func (p *parser) parseUnary() (Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokenNot:
		p.next()
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &LogicalExpr{Op: LogicalNot, Operands: []Expression{operand}}, nil
	case tokenLParen:
		p.next()
		inner, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		if p.opts.captureParentheses {
			return &ParenExpr{Expr: inner}, nil
		}
		return inner, nil
	default:
		return p.parseComparison()
	}
}

func (p *parser) parseComparison() (Expression, error) {
	start, err := p.peek()
	if err != nil {
		return nil, err
	}
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenCompare {
		if _, ok := left.(*LiteralExpr); ok {
			return nil, unexpected(tok)
		}
		return &TestExpr{Expr: left}, nil
	}
	p.next()

	rightStart, err := p.peek()
	if err != nil {
		return nil, err
	}
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if left, err = comparable(left, start.loc); err != nil {
		return nil, err
	}
	if right, err = comparable(right, rightStart.loc); err != nil {
		return nil, err
	}
	return &ComparisonExpr{Left: left, Op: tok.op, Right: right}, nil
}

// comparable narrows a query operand to a singular query.
func comparable(e Expression, loc Location) (Expression, error) {
	q, ok := e.(*QueryExpr)
	if !ok {
		return e, nil
	}
	if !q.Query.IsSingular() {
		return nil, newError(NonSingularQuery, q.Query.String(), loc)
	}
	return &SingularQueryExpr{Query: q.Query}, nil
}

func (p *parser) parsePrimary() (Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokenNumber, tokenString, tokenTrue, tokenFalse, tokenNull:
		return literal(tok), nil
	case tokenRoot, tokenCurrent:
		query := &Path{Identifier: Root}
		if tok.kind == tokenCurrent {
			query.Identifier = Current
		}
		if query.Segments, err = p.parseSegments(); err != nil {
			return nil, err
		}
		return &QueryExpr{Query: query}, nil
	case tokenName:
		return p.parseFunction(tok)
	default:
		return nil, unexpected(tok)
	}
}

func literal(tok token) *LiteralExpr {
	switch tok.kind {
	case tokenNumber:
		return &LiteralExpr{Value: value.Number(tok.num)}
	case tokenString:
		return &LiteralExpr{Value: value.String(tok.text), Quote: tok.quote}
	case tokenTrue:
		return &LiteralExpr{Value: value.Bool(true)}
	case tokenFalse:
		return &LiteralExpr{Value: value.Bool(false)}
	default:
		return &LiteralExpr{Value: value.Null()}
	}
}

func (p *parser) parseFunction(name token) (Expression, error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	fn := &FunctionExpr{Name: name.text}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenRParen {
		p.next()
		return fn, nil
	}

	for {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, arg)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenComma:
		case tokenRParen:
			return fn, nil
		default:
			return nil, unexpected(tok)
		}
	}
}

// parseArgument reads a function argument: a literal, a query, a nested
// call or a logical expression.
func (p *parser) parseArgument() (Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.isLiteral() {
		after, err := p.peekAt(1)
		if err != nil {
			return nil, err
		}
		if after.kind != tokenCompare {
			p.next()
			return literal(tok), nil
		}
	}

	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	test, ok := expr.(*TestExpr)
	if !ok {
		return expr, nil
	}
	if q, ok := test.Expr.(*QueryExpr); ok && q.Query.IsSingular() {
		return &SingularQueryExpr{Query: q.Query}, nil
	}
	return test.Expr, nil
}
