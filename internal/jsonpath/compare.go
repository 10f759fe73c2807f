package jsonpath

import (
	"github.com/jacoelho/jpq/internal/value"
)

// compareOperands applies op to two comparison operands. An operand whose ok
// flag is false is Nothing, which equals only Nothing and is never ordered.
func compareOperands(op CompareOp, left value.Value, lok bool, right value.Value, rok bool) bool {
	switch op {
	case OpEqual:
		return equalOperands(left, lok, right, rok)
	case OpNotEqual:
		return !equalOperands(left, lok, right, rok)
	}

	if !lok || !rok {
		return false
	}
	c, ok := left.Compare(right)
	if !ok {
		return false
	}

	switch op {
	case OpLess:
		return c < 0
	case OpLessOrEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGreaterOrEqual:
		return c >= 0
	default:
		return false
	}
}

func equalOperands(left value.Value, lok bool, right value.Value, rok bool) bool {
	if !lok || !rok {
		return lok == rok
	}
	return left.Equal(right)
}
