package jsonpath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"

	"github.com/jacoelho/jpq/internal/value"
)

// ErrInvalidPattern is reported when match or search receive a pattern that
// does not compile.
var ErrInvalidPattern = errors.New("jsonpath: invalid regular expression")

// Builtins returns new instances of length, count, match, search, value and
// key.
func Builtins() []*Function {
	return []*Function{
		NewFunction("length", []ArgumentType{ValueType}, ValueType, length),
		NewFunction("count", []ArgumentType{NodesType}, ValueType, count),
		NewFunction("match", []ArgumentType{ValueType, ValueType}, LogicalType, matcher(true)),
		NewFunction("search", []ArgumentType{ValueType, ValueType}, LogicalType, matcher(false)),
		NewFunction("value", []ArgumentType{NodesType}, ValueType, single),
		NewFunction("key", []ArgumentType{ValueType}, ValueType, key),
	}
}

func length(args []Argument) (Argument, error) {
	v, ok := args[0].Value()
	if !ok {
		return Nothing(), nil
	}

	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return ValueOf(value.Int(int64(utf8.RuneCountInString(s)))), nil
	case value.KindArray, value.KindObject:
		return ValueOf(value.Int(int64(v.Len()))), nil
	default:
		return Nothing(), nil
	}
}

func count(args []Argument) (Argument, error) {
	nodes, _ := args[0].Nodes()
	return ValueOf(value.Int(int64(len(nodes)))), nil
}

func single(args []Argument) (Argument, error) {
	nodes, _ := args[0].Nodes()
	if len(nodes) != 1 {
		return Nothing(), nil
	}
	return ValueAt(nodes[0].Value, nodes[0].Path), nil
}

// key yields the member name the argument was selected under.
func key(args []Argument) (Argument, error) {
	path, ok := args[0].Path()
	if !ok {
		return Nothing(), nil
	}
	last, ok := path.Last()
	if !ok || last.IsIndex {
		return Nothing(), nil
	}
	return ValueOf(value.String(last.Name)), nil
}

func matcher(anchored bool) Body {
	return func(args []Argument) (Argument, error) {
		subject, ok := stringArgument(args[0])
		if !ok {
			return LogicalOf(false), nil
		}
		pattern, ok := stringArgument(args[1])
		if !ok {
			return LogicalOf(false), nil
		}

		re, err := compilePattern(pattern, anchored)
		if err != nil {
			return LogicalOf(false), err
		}
		return LogicalOf(re.MatchString(subject)), nil
	}
}

func stringArgument(a Argument) (string, bool) {
	v, ok := a.Value()
	if !ok {
		return "", false
	}
	return v.AsString()
}

const patternCacheSize = 512

type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

var patterns = mustPatternCache()

func mustPatternCache() *lru.Cache {
	c, err := lru.New(patternCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// compilePattern translates an I-Regexp to Go syntax and memoizes the
// result, failures included.
func compilePattern(pattern string, anchored bool) (*regexp.Regexp, error) {
	cacheKey := "s" + pattern
	if anchored {
		cacheKey = "m" + pattern
	}
	if cached, ok := patterns.Get(cacheKey); ok {
		c := cached.(compiledPattern)
		return c.re, c.err
	}

	expr := translatePattern(pattern)
	if anchored {
		expr = `^(?:` + expr + `)$`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		err = fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	patterns.Add(cacheKey, compiledPattern{re: re, err: err})
	return re, err
}

// translatePattern rewrites the I-Regexp wildcard, which excludes only line
// terminators, into an explicit class. Escapes and bracket expressions are
// copied as they are.
func translatePattern(pattern string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
		case inClass:
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)
		case c == '[':
			inClass = true
			b.WriteByte(c)
			// A leading ']' (or '^]') is a literal member of the class.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		case c == '.':
			b.WriteString(`[^\n\r]`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
