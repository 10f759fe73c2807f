package jsonpath

// Equal reports whether two paths have the same structure. Quote characters,
// shorthand notation and captured parentheses are presentation only and are
// ignored.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Identifier != other.Identifier || len(p.Segments) != len(other.Segments) {
		return false
	}
	for i := range p.Segments {
		if !equalSegment(p.Segments[i], other.Segments[i]) {
			return false
		}
	}
	return true
}

func equalSegment(a, b Segment) bool {
	if a.Kind != b.Kind || len(a.Selectors) != len(b.Selectors) {
		return false
	}
	for i := range a.Selectors {
		if !equalSelector(a.Selectors[i], b.Selectors[i]) {
			return false
		}
	}
	return true
}

func equalSelector(a, b Selector) bool {
	switch x := a.(type) {
	case NameSelector:
		y, ok := b.(NameSelector)
		return ok && x.Name == y.Name
	case WildcardSelector:
		_, ok := b.(WildcardSelector)
		return ok
	case IndexSelector:
		y, ok := b.(IndexSelector)
		return ok && x.Index == y.Index
	case SliceSelector:
		y, ok := b.(SliceSelector)
		return ok && equalBound(x.Start, y.Start) && equalBound(x.End, y.End) && equalBound(x.Step, y.Step)
	case FilterSelector:
		y, ok := b.(FilterSelector)
		return ok && EqualExpression(x.Expr, y.Expr)
	default:
		return false
	}
}

func equalBound(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// EqualExpression compares filter expressions structurally, looking through
// ParenExpr grouping markers.
func EqualExpression(a, b Expression) bool {
	a, b = unwrapParens(a), unwrapParens(b)

	switch x := a.(type) {
	case *LiteralExpr:
		y, ok := b.(*LiteralExpr)
		return ok && x.Value.Kind() == y.Value.Kind() && x.Value.Equal(y.Value)
	case *QueryExpr:
		y, ok := b.(*QueryExpr)
		return ok && x.Query.Equal(y.Query)
	case *SingularQueryExpr:
		y, ok := b.(*SingularQueryExpr)
		return ok && x.Query.Equal(y.Query)
	case *ComparisonExpr:
		y, ok := b.(*ComparisonExpr)
		return ok && x.Op == y.Op && EqualExpression(x.Left, y.Left) && EqualExpression(x.Right, y.Right)
	case *LogicalExpr:
		y, ok := b.(*LogicalExpr)
		return ok && x.Op == y.Op && equalExpressions(x.Operands, y.Operands)
	case *TestExpr:
		y, ok := b.(*TestExpr)
		return ok && EqualExpression(x.Expr, y.Expr)
	case *FunctionExpr:
		y, ok := b.(*FunctionExpr)
		return ok && x.Name == y.Name && equalExpressions(x.Args, y.Args)
	default:
		return false
	}
}

func equalExpressions(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpression(a[i], b[i]) {
			return false
		}
	}
	return true
}

func unwrapParens(e Expression) Expression {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.Expr
	}
}
