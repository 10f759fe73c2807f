// Package value implements the ordered tree value queried by jsonpath.
//
// A Value is one of null, bool, number, string, bytes, array or object.
// Objects keep their members in insertion order and numbers are
// arbitrary-precision decimals. Values are immutable once built: accessors
// that return slices hand out the underlying storage, which callers must
// treat as read-only.
package value

import (
	"github.com/cockroachdb/apd"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindBytes
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a tree value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	number  *apd.Decimal
	text    string
	data    []byte
	items   []Value
	members []Member
	index   map[string]int
}

func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number wraps d. The decimal must not be modified afterwards.
func Number(d *apd.Decimal) Value {
	if d == nil {
		d = apd.New(0, 0)
	}
	return Value{kind: KindNumber, number: d}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, number: apd.New(i, 0)}
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func Bytes(b []byte) Value {
	return Value{kind: KindBytes, data: b}
}

func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object builds an object from members in order. A repeated key keeps the
// position of its first occurrence and the value of its last.
func Object(members ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(members)), index: make(map[string]int, len(members))}
	for _, m := range members {
		if i, ok := v.index[m.Key]; ok {
			v.members[i].Value = m.Value
			continue
		}
		v.index[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}
	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

func (v Value) AsNumber() (*apd.Decimal, bool) {
	if v.kind != KindNumber {
		return nil, false
	}
	return v.number, true
}

func (v Value) AsString() (string, bool) {
	return v.text, v.kind == KindString
}

func (v Value) AsBytes() ([]byte, bool) {
	return v.data, v.kind == KindBytes
}

// Len reports the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the array element at i.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Items returns the elements of an array, nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Members returns the members of an object in insertion order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Get looks up an object member by exact key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// String renders v as JSON text.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<" + v.kind.String() + ">"
	}
	return string(data)
}
