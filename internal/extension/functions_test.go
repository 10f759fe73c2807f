package extension

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/jacoelho/jpq/internal/jsonpath"
	"github.com/jacoelho/jpq/internal/value"
)

func selectValues(t *testing.T, query, doc string) []string {
	t.Helper()

	p, err := jsonpath.Parse(query)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", query, err)
	}
	nodes := jsonpath.Query{Functions: Registry()}.Evaluate(p, value.MustParseJSON(doc))
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value.String()
	}
	return out
}

func TestExtensionFunctions(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	tests := []struct {
		name  string
		query string
		doc   string
		want  []string
	}{
		{
			name:  "uuid",
			query: "$[?uuid(@)]",
			doc:   `["` + id + `","not-a-uuid",42]`,
			want:  []string{`"` + id + `"`},
		},
		{
			name:  "upper",
			query: "$[?upper(@.name) == 'ALICE']",
			doc:   `[{"name":"alice"},{"name":"bob"}]`,
			want:  []string{`{"name":"alice"}`},
		},
		{
			name:  "lower",
			query: "$[?lower(@) == 'mixed']",
			doc:   `["MiXeD","other"]`,
			want:  []string{`"MiXeD"`},
		},
		{
			name:  "title",
			query: "$[?title(@) == 'Hello World']",
			doc:   `["hello   world","hello"]`,
			want:  []string{`"hello   world"`},
		},
		{
			name:  "trim",
			query: "$[?trim(@) == 'x']",
			doc:   `["  x\t","y"]`,
			want:  []string{`"  x\t"`},
		},
		{
			name:  "base64",
			query: "$[?base64(@) == 'aGVsbG8=']",
			doc:   `["hello","world"]`,
			want:  []string{`"hello"`},
		},
		{
			name:  "non_string",
			query: "$[?upper(@) == upper(@)]",
			doc:   `[1]`,
			want:  []string{`1`},
		},
		{
			name:  "builtins_still_available",
			query: "$[?length(upper(@)) == 3]",
			doc:   `["abc","de"]`,
			want:  []string{`"abc"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, selectValues(t, tt.query, tt.doc)); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"hello", "Hello"},
		{"élan vital", "Élan Vital"},
		{"  spaced   out ", "Spaced Out"},
	}

	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBase64Bytes(t *testing.T) {
	t.Parallel()

	got, err := base64Encode([]jsonpath.Argument{jsonpath.ValueOf(value.Bytes([]byte{0xff, 0x00}))})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := got.Value()
	if !ok || !v.Equal(value.String("/wA=")) {
		t.Errorf("base64Encode(bytes) = %v", got)
	}
}
