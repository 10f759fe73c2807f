package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cockroachdb/apd"
	"github.com/jacoelho/jpq/internal/stack"
)

const (
	kindObj containerKind = iota
	kindArr
)

type containerKind uint8

// containerFrame accumulates a container while its tokens are read.
type containerFrame struct {
	kind    containerKind
	items   []Value
	members []Member
	key     string
	needKey bool // true if the object expects a key next
}

// Decoder reads a stream of JSON documents, such as newline delimited JSON.
type Decoder struct {
	dec *json.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

// Decode reads the next document. It returns io.EOF once the stream is
// exhausted.
func (d *Decoder) Decode() (Value, error) {
	frames := stack.New[containerFrame]()

	for {
		tok, err := d.dec.Token()
		if errors.Is(err, io.EOF) && !frames.IsEmpty() {
			return Value{}, fmt.Errorf("%w: unexpected end of input", ErrMalformed)
		}
		if err != nil {
			return Value{}, err
		}

		var v Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				frames.Push(containerFrame{kind: kindObj, needKey: true})
				continue
			case '[':
				frames.Push(containerFrame{kind: kindArr})
				continue
			case '}':
				frame, _ := frames.Pop()
				v = Object(frame.members...)
			case ']':
				frame, _ := frames.Pop()
				v = Array(frame.items...)
			}
		case string:
			if top := frames.PeekRef(); top != nil && top.kind == kindObj && top.needKey {
				top.key = t
				top.needKey = false
				continue
			}
			v = String(t)
		case json.Number:
			v, err = ParseNumber(t.String())
			if err != nil {
				return Value{}, err
			}
		case bool:
			v = Bool(t)
		case nil:
			v = Null()
		default:
			return Value{}, fmt.Errorf("%w: unexpected token %v", ErrMalformed, tok)
		}

		top := frames.PeekRef()
		if top == nil {
			return v, nil
		}
		if top.kind == kindArr {
			top.items = append(top.items, v)
			continue
		}
		top.members = append(top.members, Member{Key: top.key, Value: v})
		top.needKey = true
	}
}

// ParseJSON decodes a single JSON document.
func ParseJSON(data []byte) (Value, error) {
	dec := NewDecoder(bytes.NewReader(data))
	v, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Decode(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}
	return v, nil
}

// MustParseJSON is like ParseJSON but panics on error.
func MustParseJSON(text string) Value {
	v, err := ParseJSON([]byte(text))
	if err != nil {
		panic(err)
	}
	return v
}

// ParseNumber parses the textual form of a finite decimal.
func ParseNumber(s string) (Value, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil || d.Form != apd.Finite {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return Number(d), nil
}
