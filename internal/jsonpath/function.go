package jsonpath

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jacoelho/jpq/internal/value"
)

// ArgumentType is the declared type of a function parameter or result.
type ArgumentType uint8

const (
	ValueType ArgumentType = iota
	NodesType
	LogicalType
)

func (t ArgumentType) String() string {
	switch t {
	case ValueType:
		return "value"
	case NodesType:
		return "nodes"
	case LogicalType:
		return "logical"
	default:
		return "unknown"
	}
}

// ArgumentKind tells which payload an Argument carries.
type ArgumentKind uint8

const (
	NothingArgument ArgumentKind = iota
	ValueArgument
	NodesArgument
	LogicalArgument
)

func (k ArgumentKind) String() string {
	switch k {
	case ValueArgument:
		return "value"
	case NodesArgument:
		return "nodes"
	case LogicalArgument:
		return "logical"
	default:
		return "nothing"
	}
}

// Argument is a function argument or result: Nothing, a value (optionally
// with the location it was read from), a node list or a logical.
type Argument struct {
	kind    ArgumentKind
	value   value.Value
	path    NormalizedPath
	hasPath bool
	nodes   NodeList
	logical bool
}

// Nothing is the absence of a value.
func Nothing() Argument {
	return Argument{}
}

func ValueOf(v value.Value) Argument {
	return Argument{kind: ValueArgument, value: v}
}

// ValueAt is a value that was selected at path.
func ValueAt(v value.Value, path NormalizedPath) Argument {
	return Argument{kind: ValueArgument, value: v, path: path, hasPath: true}
}

func NodesOf(nodes NodeList) Argument {
	return Argument{kind: NodesArgument, nodes: nodes}
}

func LogicalOf(b bool) Argument {
	return Argument{kind: LogicalArgument, logical: b}
}

func (a Argument) Kind() ArgumentKind {
	return a.kind
}

func (a Argument) IsNothing() bool {
	return a.kind == NothingArgument
}

func (a Argument) Value() (value.Value, bool) {
	return a.value, a.kind == ValueArgument
}

// Path returns where a value argument was found; false for literals and
// computed values.
func (a Argument) Path() (NormalizedPath, bool) {
	return a.path, a.kind == ValueArgument && a.hasPath
}

func (a Argument) Nodes() (NodeList, bool) {
	return a.nodes, a.kind == NodesArgument
}

func (a Argument) Logical() (bool, bool) {
	return a.logical, a.kind == LogicalArgument
}

func (a Argument) String() string {
	switch a.kind {
	case ValueArgument:
		return a.value.String()
	case NodesArgument:
		parts := make([]string, len(a.nodes))
		for i, n := range a.nodes {
			parts[i] = n.Value.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case LogicalArgument:
		if a.logical {
			return "true"
		}
		return "false"
	default:
		return "nothing"
	}
}

// conforms reports whether a can stand for a parameter or result of type t.
func (a Argument) conforms(t ArgumentType) bool {
	switch t {
	case ValueType:
		return a.kind == ValueArgument || a.kind == NothingArgument
	case NodesType:
		return a.kind == NodesArgument
	case LogicalType:
		return a.kind == LogicalArgument
	default:
		return false
	}
}

// Body implements a function. Arguments already match the declared
// parameter types.
type Body func(args []Argument) (Argument, error)

// Function is a named, typed filter function.
type Function struct {
	name   string
	params []ArgumentType
	result ArgumentType
	body   Body
}

func NewFunction(name string, params []ArgumentType, result ArgumentType, body Body) *Function {
	return &Function{
		name:   name,
		params: slices.Clone(params),
		result: result,
		body:   body,
	}
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) Parameters() []ArgumentType {
	return slices.Clone(f.params)
}

func (f *Function) Result() ArgumentType {
	return f.result
}

// Call runs the body and checks the result against the declared type.
func (f *Function) Call(args []Argument) (Argument, error) {
	if len(args) != len(f.params) {
		return f.noMatch(), f.arityError(len(args))
	}

	result, err := f.body(args)
	if err != nil {
		return f.noMatch(), err
	}
	if !result.conforms(f.result) {
		return f.noMatch(), fmt.Errorf("%w: %s returned %s, declared %s", ErrResultType, f.name, result.kind, f.result)
	}
	return result, nil
}

func (f *Function) arityError(n int) error {
	return fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, f.name, len(f.params), n)
}

// noMatch is what a call evaluates to when it cannot run.
func (f *Function) noMatch() Argument {
	switch f.result {
	case LogicalType:
		return LogicalOf(false)
	case NodesType:
		return NodesOf(nil)
	default:
		return Nothing()
	}
}

func (f *Function) String() string {
	params := make([]string, len(f.params))
	for i, p := range f.params {
		params[i] = p.String()
	}
	return f.name + "(" + strings.Join(params, ", ") + ") " + f.result.String()
}

// Registry maps function names to functions. A later registration under the
// same name replaces the earlier one. Registries are not synchronized.
type Registry struct {
	functions map[string]*Function
}

// NewRegistry returns a registry holding the built-in functions followed by
// fns.
func NewRegistry(fns ...*Function) *Registry {
	r := &Registry{functions: make(map[string]*Function)}
	r.Register(Builtins()...)
	r.Register(fns...)
	return r
}

func (r *Registry) Register(fns ...*Function) {
	for _, fn := range fns {
		if fn != nil {
			r.functions[fn.name] = fn
		}
	}
}

func (r *Registry) Lookup(name string) (*Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Names lists the registered functions in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
