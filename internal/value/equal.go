package value

import (
	"bytes"
	"strings"
)

// Equal reports deep structural equality. Numbers compare by numeric value,
// arrays element by element in order and objects by key set regardless of
// member order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number.Cmp(other.number) == 0
	case KindString:
		return v.text == other.text
	case KindBytes:
		return bytes.Equal(v.data, other.data)
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for _, m := range v.members {
			o, ok := other.Get(m.Key)
			if !ok || !m.Value.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two numbers or two strings. Strings compare by code point,
// which for valid UTF-8 is their byte order. The second result is false for
// any other pairing.
func (v Value) Compare(other Value) (int, bool) {
	switch {
	case v.kind == KindNumber && other.kind == KindNumber:
		return v.number.Cmp(other.number), true
	case v.kind == KindString && other.kind == KindString:
		return strings.Compare(v.text, other.text), true
	default:
		return 0, false
	}
}
