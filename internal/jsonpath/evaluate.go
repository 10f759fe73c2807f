package jsonpath

import (
	"github.com/jacoelho/jpq/internal/stack"
	"github.com/jacoelho/jpq/internal/value"
)

var builtinRegistry = NewRegistry()

// Query evaluates paths with a function registry and an optional delegate.
// The zero Query uses the built-in functions and reports nothing.
type Query struct {
	Functions *Registry
	Delegate  Delegate
}

// Evaluate selects the nodes of root matched by p. It never fails: absent
// data and ill-typed function calls simply match nothing.
func (q Query) Evaluate(p *Path, root value.Value) NodeList {
	functions := q.Functions
	if functions == nil {
		functions = builtinRegistry
	}

	e := &evaluator{
		functions: functions,
		delegate:  q.Delegate,
		root:      Node{Value: root, Path: NormalizedPath{}},
	}
	nodes := e.query(p, e.root)
	if nodes == nil {
		return NodeList{}
	}
	return nodes
}

// Evaluate runs p against root with the built-in functions.
func Evaluate(p *Path, root value.Value) NodeList {
	return Query{}.Evaluate(p, root)
}

type evaluator struct {
	functions *Registry
	delegate  Delegate
	root      Node
}

func (e *evaluator) query(p *Path, current Node) NodeList {
	start := e.root
	if p.Identifier == Current {
		start = current
	}

	nodes := NodeList{start}
	for _, seg := range p.Segments {
		var next NodeList
		for _, n := range nodes {
			if seg.Kind == DescendantSegment {
				next = e.descend(seg.Selectors, n, next)
			} else {
				next = e.selectAll(seg.Selectors, n, next)
			}
		}
		if len(next) == 0 {
			return nil
		}
		nodes = next
	}
	return nodes
}

// descend applies selectors to n and to each of its descendants in
// pre-order.
func (e *evaluator) descend(selectors []Selector, n Node, out NodeList) NodeList {
	work := stack.New[Node]()
	work.Push(n)
	for !work.IsEmpty() {
		node, _ := work.Pop()
		out = e.selectAll(selectors, node, out)
		work.PushReversed(children(node)...)
	}
	return out
}

func children(n Node) []Node {
	switch n.Value.Kind() {
	case value.KindArray:
		items := n.Value.Items()
		nodes := make([]Node, len(items))
		for i, item := range items {
			nodes[i] = Node{Value: item, Path: n.Path.Element(i)}
		}
		return nodes
	case value.KindObject:
		members := n.Value.Members()
		nodes := make([]Node, len(members))
		for i, m := range members {
			nodes[i] = Node{Value: m.Value, Path: n.Path.Child(m.Key)}
		}
		return nodes
	default:
		return nil
	}
}

func (e *evaluator) selectAll(selectors []Selector, n Node, out NodeList) NodeList {
	for _, sel := range selectors {
		out = e.selectOne(sel, n, out)
	}
	return out
}

func (e *evaluator) selectOne(sel Selector, n Node, out NodeList) NodeList {
	switch s := sel.(type) {
	case NameSelector:
		if v, ok := n.Value.Get(s.Name); ok {
			out = append(out, Node{Value: v, Path: n.Path.Child(s.Name)})
		}
	case WildcardSelector:
		out = append(out, children(n)...)
	case IndexSelector:
		i := s.Index
		if i < 0 {
			i += n.Value.Len()
		}
		if v, ok := n.Value.Index(i); ok {
			out = append(out, Node{Value: v, Path: n.Path.Element(i)})
		}
	case SliceSelector:
		if n.Value.Kind() == value.KindArray {
			for _, i := range sliceIndices(s, n.Value.Len()) {
				v, _ := n.Value.Index(i)
				out = append(out, Node{Value: v, Path: n.Path.Element(i)})
			}
		}
	case FilterSelector:
		for _, child := range children(n) {
			if e.test(s.Expr, child) {
				out = append(out, child)
			}
		}
	}
	return out
}

// sliceIndices lists the indices selected by s in an array of length n.
func sliceIndices(s SliceSelector, n int) []int {
	step := 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 || n == 0 {
		return nil
	}

	normalize := func(i int) int {
		if i < 0 {
			return n + i
		}
		return i
	}

	var indices []int
	if step > 0 {
		start, end := 0, n
		if s.Start != nil {
			start = normalize(*s.Start)
		}
		if s.End != nil {
			end = normalize(*s.End)
		}
		lower := min(max(start, 0), n)
		upper := min(max(end, 0), n)
		for i := lower; i < upper; i += step {
			indices = append(indices, i)
		}
		return indices
	}

	start, end := n-1, -n-1
	if s.Start != nil {
		start = normalize(*s.Start)
	}
	if s.End != nil {
		end = normalize(*s.End)
	}
	upper := min(max(start, -1), n-1)
	lower := min(max(end, -1), n-1)
	for i := upper; i > lower; i += step {
		indices = append(indices, i)
	}
	return indices
}

// test evaluates a filter expression to a logical.
func (e *evaluator) test(expr Expression, current Node) bool {
	switch x := expr.(type) {
	case *ParenExpr:
		return e.test(x.Expr, current)
	case *LogicalExpr:
		switch x.Op {
		case LogicalNot:
			return len(x.Operands) == 1 && !e.test(x.Operands[0], current)
		case LogicalAnd:
			for _, operand := range x.Operands {
				if !e.test(operand, current) {
					return false
				}
			}
			return true
		default:
			for _, operand := range x.Operands {
				if e.test(operand, current) {
					return true
				}
			}
			return false
		}
	case *ComparisonExpr:
		return e.compare(x, current)
	case *TestExpr:
		return e.test(x.Expr, current)
	case *QueryExpr:
		return len(e.query(x.Query, current)) > 0
	case *SingularQueryExpr:
		return len(e.query(x.Query, current)) > 0
	case *FunctionExpr:
		result := e.call(x, current)
		if b, ok := result.Logical(); ok {
			return b
		}
		nodes, _ := result.Nodes()
		return len(nodes) > 0
	default:
		return false
	}
}

// operand reduces a comparison side to a value; false stands for Nothing.
func (e *evaluator) operand(expr Expression, current Node) (value.Value, bool) {
	switch x := expr.(type) {
	case *ParenExpr:
		return e.operand(x.Expr, current)
	case *LiteralExpr:
		return x.Value, true
	case *SingularQueryExpr:
		return e.singular(x.Query, current)
	case *QueryExpr:
		return e.singular(x.Query, current)
	case *FunctionExpr:
		return e.call(x, current).Value()
	default:
		return value.Value{}, false
	}
}

func (e *evaluator) singular(p *Path, current Node) (value.Value, bool) {
	nodes := e.query(p, current)
	if len(nodes) != 1 {
		return value.Value{}, false
	}
	return nodes[0].Value, true
}

func (e *evaluator) compare(c *ComparisonExpr, current Node) bool {
	left, lok := e.operand(c.Left, current)
	right, rok := e.operand(c.Right, current)
	return compareOperands(c.Op, left, lok, right, rok)
}

// call evaluates a function expression, reporting unusable arguments to the
// delegate.
func (e *evaluator) call(fx *FunctionExpr, current Node) Argument {
	fn, ok := e.functions.Lookup(fx.Name)
	if !ok {
		return Nothing()
	}

	if len(fx.Args) != len(fn.params) {
		e.failed(fn, nil, fn.arityError(len(fx.Args)))
		return fn.noMatch()
	}

	args := make([]Argument, len(fx.Args))
	for i, expr := range fx.Args {
		arg, ok := e.argument(expr, fn.params[i], current)
		if !ok {
			if e.delegate != nil {
				e.delegate.FunctionArgumentTypeMismatch(fn, i, fn.params[i], arg)
			}
			return fn.noMatch()
		}
		args[i] = arg
	}

	result, err := fn.Call(args)
	if err != nil {
		e.failed(fn, args, err)
	}
	return result
}

func (e *evaluator) failed(fn *Function, args []Argument, err error) {
	if d, ok := e.delegate.(FailureDelegate); ok {
		d.FunctionEvaluationFailed(fn, args, err)
	}
}

// argument evaluates expr for a parameter of type want. The second result is
// false when expr cannot produce that type; the argument is then the value
// expr did produce.
func (e *evaluator) argument(expr Expression, want ArgumentType, current Node) (Argument, bool) {
	expr = unwrapArgument(expr)

	switch want {
	case ValueType:
		switch x := expr.(type) {
		case *LiteralExpr:
			return ValueOf(x.Value), true
		case *SingularQueryExpr:
			return e.singularArgument(x.Query, current), true
		case *QueryExpr:
			if x.Query.IsSingular() {
				return e.singularArgument(x.Query, current), true
			}
			return NodesOf(e.query(x.Query, current)), false
		case *FunctionExpr:
			result := e.call(x, current)
			return result, result.conforms(ValueType)
		default:
			return LogicalOf(e.test(expr, current)), false
		}

	case NodesType:
		switch x := expr.(type) {
		case *SingularQueryExpr:
			return NodesOf(e.query(x.Query, current)), true
		case *QueryExpr:
			return NodesOf(e.query(x.Query, current)), true
		case *FunctionExpr:
			result := e.call(x, current)
			return result, result.conforms(NodesType)
		case *LiteralExpr:
			return ValueOf(x.Value), false
		default:
			return LogicalOf(e.test(expr, current)), false
		}

	case LogicalType:
		switch x := expr.(type) {
		case *LiteralExpr:
			return ValueOf(x.Value), false
		case *FunctionExpr:
			result := e.call(x, current)
			if nodes, ok := result.Nodes(); ok {
				return LogicalOf(len(nodes) > 0), true
			}
			return result, result.conforms(LogicalType)
		default:
			return LogicalOf(e.test(expr, current)), true
		}
	}

	return Nothing(), false
}

func (e *evaluator) singularArgument(p *Path, current Node) Argument {
	nodes := e.query(p, current)
	if len(nodes) == 0 {
		return Nothing()
	}
	return ValueAt(nodes[0].Value, nodes[0].Path)
}

// unwrapArgument strips grouping and test wrappers so that f((@.a)) and
// f(@.a) are the same call.
func unwrapArgument(expr Expression) Expression {
	for {
		switch x := expr.(type) {
		case *ParenExpr:
			expr = x.Expr
		case *TestExpr:
			expr = x.Expr
		default:
			return expr
		}
	}
}
