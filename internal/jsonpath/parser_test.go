package jsonpath

import (
	"errors"
	"strings"
	"testing"

	"github.com/jacoelho/jpq/internal/value"
)

func intp(n int) *int {
	return &n
}

func child(selectors ...Selector) Segment {
	return Segment{Kind: ChildSegment, Selectors: selectors}
}

func currentQuery(segments ...Segment) *Path {
	return &Path{Identifier: Current, Segments: segments}
}

func TestParseStructure(t *testing.T) {
	t.Parallel()

	fooEq := func(op CompareOp) Expression {
		return &ComparisonExpr{
			Left:  &SingularQueryExpr{Query: currentQuery(child(NameSelector{Name: "foo"}))},
			Op:    op,
			Right: &LiteralExpr{Value: value.Int(42)},
		}
	}
	fooOrBar := func(op LogicalOp) Expression {
		return &LogicalExpr{Op: op, Operands: []Expression{
			&TestExpr{Expr: &QueryExpr{Query: currentQuery(child(NameSelector{Name: "foo"}))}},
			&TestExpr{Expr: &QueryExpr{Query: currentQuery(child(NameSelector{Name: "bar"}))}},
		}}
	}

	tests := []struct {
		name     string
		input    string
		segments []Segment
	}{
		{name: "root", input: "$"},
		{name: "child_member", input: "$.foo", segments: []Segment{child(NameSelector{Name: "foo"})}},
		{name: "child_wildcard", input: "$.*", segments: []Segment{child(WildcardSelector{})}},
		{name: "child_index", input: "$[0]", segments: []Segment{child(IndexSelector{Index: 0})}},
		{name: "negative_index", input: "$[-1]", segments: []Segment{child(IndexSelector{Index: -1})}},
		{name: "keyword_member", input: "$.null", segments: []Segment{child(NameSelector{Name: "null"})}},
		{name: "slice", input: "$[:]", segments: []Segment{child(SliceSelector{})}},
		{name: "slice_start", input: "$[1:]", segments: []Segment{child(SliceSelector{Start: intp(1)})}},
		{name: "slice_end", input: "$[:2]", segments: []Segment{child(SliceSelector{End: intp(2)})}},
		{name: "slice_start_end", input: "$[1:2]", segments: []Segment{child(SliceSelector{Start: intp(1), End: intp(2)})}},
		{name: "slice_step", input: "$[::2]", segments: []Segment{child(SliceSelector{Step: intp(2)})}},
		{name: "slice_start_step", input: "$[1::2]", segments: []Segment{child(SliceSelector{Start: intp(1), Step: intp(2)})}},
		{name: "slice_end_step", input: "$[:2:2]", segments: []Segment{child(SliceSelector{End: intp(2), Step: intp(2)})}},
		{name: "slice_all", input: "$[1:2:2]", segments: []Segment{child(SliceSelector{Start: intp(1), End: intp(2), Step: intp(2)})}},
		{
			name:  "descendant_bracketed",
			input: "$..[0, 'a']",
			segments: []Segment{{
				Kind:      DescendantSegment,
				Selectors: []Selector{IndexSelector{Index: 0}, NameSelector{Name: "a"}},
			}},
		},
		{name: "filter_eq", input: "$[?@.foo == 42]", segments: []Segment{child(FilterSelector{Expr: fooEq(OpEqual)})}},
		{name: "filter_ne", input: "$[?@.foo != 42]", segments: []Segment{child(FilterSelector{Expr: fooEq(OpNotEqual)})}},
		{name: "filter_lt", input: "$[?@.foo < 42]", segments: []Segment{child(FilterSelector{Expr: fooEq(OpLess)})}},
		{name: "filter_le", input: "$[?@.foo <= 42]", segments: []Segment{child(FilterSelector{Expr: fooEq(OpLessOrEqual)})}},
		{name: "filter_gt", input: "$[?@.foo > 42]", segments: []Segment{child(FilterSelector{Expr: fooEq(OpGreater)})}},
		{name: "filter_ge", input: "$[?@.foo >= 42]", segments: []Segment{child(FilterSelector{Expr: fooEq(OpGreaterOrEqual)})}},
		{name: "filter_or", input: "$[?@.foo || @.bar]", segments: []Segment{child(FilterSelector{Expr: fooOrBar(LogicalOr)})}},
		{name: "filter_and", input: "$[?@.foo && @.bar]", segments: []Segment{child(FilterSelector{Expr: fooOrBar(LogicalAnd)})}},
		{
			name:  "filter_not",
			input: "$[?!(1 == 2)]",
			segments: []Segment{child(FilterSelector{Expr: &LogicalExpr{Op: LogicalNot, Operands: []Expression{
				&ComparisonExpr{Left: &LiteralExpr{Value: value.Int(1)}, Op: OpEqual, Right: &LiteralExpr{Value: value.Int(2)}},
			}}})},
		},
		{
			name:  "function_arguments",
			input: "$[?match(@.b, 'k')]",
			segments: []Segment{child(FilterSelector{Expr: &TestExpr{Expr: &FunctionExpr{Name: "match", Args: []Expression{
				&SingularQueryExpr{Query: currentQuery(child(NameSelector{Name: "b"}))},
				&LiteralExpr{Value: value.String("k")},
			}}}})},
		},
		{
			name:  "function_nodes_argument",
			input: "$[?count(@.*) == 1]",
			segments: []Segment{child(FilterSelector{Expr: &ComparisonExpr{
				Left:  &FunctionExpr{Name: "count", Args: []Expression{&QueryExpr{Query: currentQuery(child(WildcardSelector{}))}}},
				Op:    OpEqual,
				Right: &LiteralExpr{Value: value.Int(1)},
			}})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := &Path{Identifier: Root, Segments: tt.segments}
			for _, opts := range [][]ParseOption{nil, {CaptureParentheses()}} {
				got, err := Parse(tt.input, opts...)
				if err != nil {
					t.Fatalf("Parse(%q) error = %v", tt.input, err)
				}
				if !got.Equal(want) {
					t.Errorf("Parse(%q) = %s, want %s", tt.input, got, want)
				}
			}
		})
	}
}

func TestParseFlattensLogical(t *testing.T) {
	t.Parallel()

	p := MustParse("$[?@.a && @.b && @.c || @.d]")
	filter := p.Segments[0].Selectors[0].(FilterSelector)
	or, ok := filter.Expr.(*LogicalExpr)
	if !ok || or.Op != LogicalOr || len(or.Operands) != 2 {
		t.Fatalf("top = %#v, want two operand ||", filter.Expr)
	}
	and, ok := or.Operands[0].(*LogicalExpr)
	if !ok || and.Op != LogicalAnd || len(and.Operands) != 3 {
		t.Fatalf("left = %#v, want three operand &&", or.Operands[0])
	}
}

func TestParseCaptureParentheses(t *testing.T) {
	t.Parallel()

	captured := MustParse("$[?(@.a)]", CaptureParentheses())
	filter := captured.Segments[0].Selectors[0].(FilterSelector)
	if _, ok := filter.Expr.(*ParenExpr); !ok {
		t.Errorf("captured expression = %T, want *ParenExpr", filter.Expr)
	}

	plain := MustParse("$[?(@.a)]")
	filter = plain.Segments[0].Selectors[0].(FilterSelector)
	if _, ok := filter.Expr.(*TestExpr); !ok {
		t.Errorf("plain expression = %T, want *TestExpr", filter.Expr)
	}

	if !captured.Equal(plain) {
		t.Error("captured and plain parses differ")
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  []ParseOption
	}{
		{name: "root", input: "$"},
		{name: "shorthand", input: "$.foo.bar"},
		{name: "quoted_name", input: "$.o['j j']['k.k']"},
		{name: "double_quoted_name", input: `$.o["j j"]["k.k"]`},
		{name: "quote_in_name", input: `$["'"]["@"]`},
		{name: "escaped_name", input: `$['a\'b\n']`},
		{name: "wildcards", input: "$.*[*]..*"},
		{name: "indices", input: "$[0, -1, 3]"},
		{name: "slices", input: "$[1:5:2, ::-1, :3, 5:, :]"},
		{name: "descendant_name", input: "$..j"},
		{name: "descendant_brackets", input: "$.a..[0, 1]"},
		{name: "filter_comparison", input: "$.a[?@.b == 'kilo']"},
		{name: "filter_parens", input: "$.a[?(@.b == 'kilo')]", opts: []ParseOption{CaptureParentheses()}},
		{name: "filter_number", input: "$.a[?@ > 3.5]"},
		{name: "filter_negative_number", input: "$[?@['k.k'] == -1.5]"},
		{name: "filter_keywords", input: "$[?@.a == true || @.b == false || @.c == null]"},
		{name: "filter_precedence", input: "$[?@.a && @.b || @.c]"},
		{name: "filter_grouping", input: "$[?@.a && (@.b || @.c)]", opts: []ParseOption{CaptureParentheses()}},
		{name: "filter_not_test", input: "$[?!@.a]"},
		{name: "filter_not_group", input: "$[?!(@.a == 1)]", opts: []ParseOption{CaptureParentheses()}},
		{name: "filter_nested", input: "$[?@[?@.b]]"},
		{name: "filter_list", input: "$.o[?@ < 3, ?@ < 3]"},
		{name: "filter_absolute", input: "$[?$.absent1 == $.absent2]"},
		{name: "functions", input: `$.a[?match(@.b, "[jk]")]`},
		{name: "function_comparison", input: "$[?length(@) < 3]"},
		{name: "nested_functions", input: `$[?match(key(@), "a")]`},
		{name: "mixed_selectors", input: `$['b', ?key(@) == "a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(tt.input, tt.opts...)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got := p.String(); got != tt.input {
				t.Errorf("String() = %q, want %q", got, tt.input)
			}

			again, err := Parse(p.String())
			if err != nil {
				t.Fatalf("reparse %q error = %v", p.String(), err)
			}
			if !again.Equal(p) {
				t.Errorf("reparse of %q is not equal", p.String())
			}
		})
	}
}

func TestPathStringCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "$[ 0 , 1 ]", want: "$[0, 1]"},
		{input: "$['foo']", want: "$['foo']"},
		{input: "$[?(@.b == 'kilo')]", want: "$[?@.b == 'kilo']"},
		{input: "$[?(@.a || @.b) && @.c]", want: "$[?(@.a || @.b) && @.c]"},
		{input: "$[?!(@.a)]", want: "$[?!@.a]"},
		{input: "$[?@.a==1.0]", want: "$[?@.a == 1.0]"},
		{input: "@.a", want: "@.a"},
	}

	for _, tt := range tests {
		p, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.input, err)
		}
		if got := p.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  []ParseOption
		want  ParserError
	}{
		{
			name: "empty",
			want: ParserError{Kind: UnexpectedEndOfInput, Location: Location{1, 1}},
		},
		{
			name:  "missing_identifier",
			input: "a",
			want:  ParserError{Kind: UnexpectedToken, Text: "a", Location: Location{1, 1}},
		},
		{
			name:  "dangling_dot",
			input: "$.",
			want:  ParserError{Kind: UnexpectedEndOfInput, Location: Location{1, 3}},
		},
		{
			name:  "unclosed_bracket",
			input: "$[0",
			want:  ParserError{Kind: UnexpectedEndOfInput, Location: Location{1, 4}},
		},
		{
			name:  "trailing_token",
			input: "$.a b",
			want:  ParserError{Kind: UnexpectedToken, Text: "b", Location: Location{1, 5}},
		},
		{
			name:  "non_singular_comparison",
			input: "$[?@.* == 1]",
			want:  ParserError{Kind: NonSingularQuery, Text: "@.*", Location: Location{1, 4}},
		},
		{
			name:  "non_singular_right_operand",
			input: "$[?1 == $..a]",
			want:  ParserError{Kind: NonSingularQuery, Text: "$..a", Location: Location{1, 9}},
		},
		{
			name:  "bare_literal",
			input: "$[?1]",
			want:  ParserError{Kind: UnexpectedToken, Text: "]", Location: Location{1, 5}},
		},
		{
			name:  "index_too_large",
			input: "$[9007199254740992]",
			want:  ParserError{Kind: InvalidNumber, Text: "9007199254740992", Location: Location{1, 3}},
		},
		{
			name:  "fractional_index",
			input: "$[1.5]",
			want:  ParserError{Kind: InvalidNumber, Text: "1.5", Location: Location{1, 3}},
		},
		{
			name:  "single_equals",
			input: "$[?@.a = 1]",
			want:  ParserError{Kind: UnexpectedCharacter, Text: " ", Location: Location{1, 9}},
		},
		{
			name:  "nesting_limit",
			input: "$[?((@.a))]",
			opts:  []ParseOption{WithMaxDepth(2)},
			want:  ParserError{Kind: NestingTooDeep, Location: Location{1, 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(tt.input, tt.opts...)
			if p != nil {
				t.Errorf("Parse(%q) returned a path alongside the error", tt.input)
			}
			var perr *ParserError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *ParserError", tt.input, err)
			}
			if *perr != tt.want {
				t.Errorf("Parse(%q) error = %+v, want %+v", tt.input, *perr, tt.want)
			}
		})
	}
}

func TestParseDefaultDepth(t *testing.T) {
	t.Parallel()

	deep := "$[?" + strings.Repeat("(", DefaultMaxDepth+1) + "@" + strings.Repeat(")", DefaultMaxDepth+1) + "]"
	_, err := Parse(deep)
	var perr *ParserError
	if !errors.As(err, &perr) || perr.Kind != NestingTooDeep {
		t.Fatalf("error = %v, want NestingTooDeep", err)
	}

	shallow := "$[?" + strings.Repeat("(", 10) + "@" + strings.Repeat(")", 10) + "]"
	if _, err := Parse(shallow); err != nil {
		t.Fatalf("Parse(shallow) error = %v", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	MustParse("$[")
}

func TestIsSingular(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"$", true},
		{"$.a[0]['b']", true},
		{"$.a[-1]", true},
		{"$.*", false},
		{"$..a", false},
		{"$[0, 1]", false},
		{"$[0:1]", false},
		{"$[?@]", false},
	}

	for _, tt := range tests {
		if got := MustParse(tt.input).IsSingular(); got != tt.want {
			t.Errorf("IsSingular(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
