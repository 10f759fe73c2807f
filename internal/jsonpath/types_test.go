package jsonpath

import (
	"testing"

	"github.com/jacoelho/jpq/internal/value"
)

func TestNormalizedPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    NormalizedPath
		str     string
		pointer string
	}{
		{name: "root", path: NormalizedPath{}, str: "$", pointer: ""},
		{name: "member_and_index", path: NormalizedPath{}.Child("a").Element(9), str: "$['a'][9]", pointer: "/a/9"},
		{name: "escapes", path: NormalizedPath{}.Child("it's").Child("a/b~c"), str: `$['it\'s']['a/b~c']`, pointer: "/it's/a~1b~0c"},
		{name: "control_character", path: NormalizedPath{}.Child("\n\x01"), str: `$['\n\u0001']`, pointer: "/\n\x01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.path.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.path.Pointer(); got != tt.pointer {
				t.Errorf("Pointer() = %q, want %q", got, tt.pointer)
			}
		})
	}
}

func TestNormalizedPathSharing(t *testing.T) {
	t.Parallel()

	base := NormalizedPath{}.Child("a")
	left := base.Child("l")
	right := base.Child("r")
	if left.String() != "$['a']['l']" || right.String() != "$['a']['r']" {
		t.Errorf("siblings share storage: %s %s", left, right)
	}
}

func TestNormalizedPathAsQuery(t *testing.T) {
	t.Parallel()

	doc := value.MustParseJSON(`{"a":[{"b c":1},{"b c":2}]}`)
	for _, n := range Evaluate(MustParse("$..*"), doc) {
		p := n.Path.Path()
		if !p.IsSingular() {
			t.Fatalf("%s is not singular", p)
		}
		again := Evaluate(p, doc)
		if len(again) != 1 || !again[0].Value.Equal(n.Value) {
			t.Errorf("%s selected %v, want %s", p, results(again), n.Value)
		}

		reparsed, err := Parse(p.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", p.String(), err)
		}
		if !reparsed.Equal(p) {
			t.Errorf("%q does not reparse to itself", p.String())
		}
	}
}

func TestNodeListAccessors(t *testing.T) {
	t.Parallel()

	nodes := Evaluate(MustParse("$[*]"), value.MustParseJSON(`[1,"x"]`))
	values := nodes.Values()
	paths := nodes.Paths()
	if len(values) != 2 || !values[1].Equal(value.String("x")) {
		t.Errorf("Values() = %v", values)
	}
	if len(paths) != 2 || paths[0].String() != "$[0]" {
		t.Errorf("Paths() = %v", paths)
	}
	if last, ok := paths[1].Last(); !ok || !last.IsIndex || last.Index != 1 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}
