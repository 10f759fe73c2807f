package jsonpath

import (
	"github.com/jacoelho/jpq/internal/value"
)

// Identifier is the node a path starts from.
type Identifier uint8

const (
	Root    Identifier = iota // $
	Current                   // @
)

func (i Identifier) String() string {
	if i == Current {
		return "@"
	}
	return "$"
}

// Path is a compiled query. It is immutable once parsed and safe to share.
type Path struct {
	Identifier Identifier
	Segments   []Segment
}

// IsSingular reports whether the path selects at most one node: every
// segment is a child segment with a single name or index selector.
func (p *Path) IsSingular() bool {
	for _, seg := range p.Segments {
		if seg.Kind != ChildSegment || len(seg.Selectors) != 1 {
			return false
		}
		switch seg.Selectors[0].(type) {
		case NameSelector, IndexSelector:
		default:
			return false
		}
	}
	return true
}

type SegmentKind uint8

const (
	ChildSegment SegmentKind = iota
	DescendantSegment
)

// Segment applies its selectors to a node (child) or to a node and all of
// its descendants (descendant).
type Segment struct {
	Kind      SegmentKind
	Selectors []Selector
	Shorthand bool // written as .name, .*, ..name or ..*
}

// Selector is one of NameSelector, WildcardSelector, IndexSelector,
// SliceSelector or FilterSelector.
type Selector interface {
	String() string
	selector()
}

type NameSelector struct {
	Name  string
	Quote byte // source quote character, zero for shorthand names
}

type WildcardSelector struct{}

type IndexSelector struct {
	Index int
}

// SliceSelector selects array elements start:end:step. A nil bound is
// absent and takes its default from the sign of the step.
type SliceSelector struct {
	Start *int
	End   *int
	Step  *int
}

type FilterSelector struct {
	Expr Expression
}

func (NameSelector) selector()     {}
func (WildcardSelector) selector() {}
func (IndexSelector) selector()    {}
func (SliceSelector) selector()    {}
func (FilterSelector) selector()   {}

// CompareOp is a comparison operator of the filter grammar.
type CompareOp uint8

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpLess
	OpLessOrEqual
	OpGreater
	OpGreaterOrEqual
)

func (op CompareOp) String() string {
	switch op {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

type LogicalOp uint8

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
	LogicalNot
)

// Expression is a node of the filter grammar: *LiteralExpr, *QueryExpr,
// *SingularQueryExpr, *ComparisonExpr, *LogicalExpr, *TestExpr,
// *FunctionExpr or *ParenExpr.
type Expression interface {
	String() string
	expression()
}

type LiteralExpr struct {
	Value value.Value
	Quote byte // source quote character of a string literal
}

// QueryExpr is a nested path evaluated to a node list.
type QueryExpr struct {
	Query *Path
}

// SingularQueryExpr is a nested path known at parse time to select at most
// one node.
type SingularQueryExpr struct {
	Query *Path
}

type ComparisonExpr struct {
	Left  Expression
	Op    CompareOp
	Right Expression
}

// LogicalExpr combines operands with && or ||. LogicalNot takes exactly
// one operand.
type LogicalExpr struct {
	Op       LogicalOp
	Operands []Expression
}

// TestExpr is true when its query selects nodes or its function call is
// truthy.
type TestExpr struct {
	Expr Expression
}

type FunctionExpr struct {
	Name string
	Args []Expression
}

// ParenExpr marks source parentheses kept by CaptureParentheses.
type ParenExpr struct {
	Expr Expression
}

func (*LiteralExpr) expression()       {}
func (*QueryExpr) expression()         {}
func (*SingularQueryExpr) expression() {}
func (*ComparisonExpr) expression()    {}
func (*LogicalExpr) expression()       {}
func (*TestExpr) expression()          {}
func (*FunctionExpr) expression()      {}
func (*ParenExpr) expression()         {}
