// Package extension provides filter functions beyond the JSONPath built-ins.
package extension

import (
	"encoding/base64"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jacoelho/jpq/internal/jsonpath"
	"github.com/jacoelho/jpq/internal/value"
)

// Functions returns the extension functions, ready for jsonpath.NewRegistry.
func Functions() []*jsonpath.Function {
	return []*jsonpath.Function{
		logical("uuid", isUUID),

		text("upper", strings.ToUpper),
		text("lower", strings.ToLower),
		text("title", titleCase),
		text("trim", strings.TrimSpace),

		jsonpath.NewFunction("base64", []jsonpath.ArgumentType{jsonpath.ValueType}, jsonpath.ValueType, base64Encode),
	}
}

// Registry returns the built-ins together with the extension functions.
func Registry() *jsonpath.Registry {
	return jsonpath.NewRegistry(Functions()...)
}

// text lifts a string transform to a Value -> Value function. Non-string
// arguments yield Nothing.
func text(name string, fn func(string) string) *jsonpath.Function {
	return jsonpath.NewFunction(name, []jsonpath.ArgumentType{jsonpath.ValueType}, jsonpath.ValueType,
		func(args []jsonpath.Argument) (jsonpath.Argument, error) {
			s, ok := stringArg(args[0])
			if !ok {
				return jsonpath.Nothing(), nil
			}
			return jsonpath.ValueOf(value.String(fn(s))), nil
		})
}

func logical(name string, fn func(string) bool) *jsonpath.Function {
	return jsonpath.NewFunction(name, []jsonpath.ArgumentType{jsonpath.ValueType}, jsonpath.LogicalType,
		func(args []jsonpath.Argument) (jsonpath.Argument, error) {
			s, ok := stringArg(args[0])
			return jsonpath.LogicalOf(ok && fn(s)), nil
		})
}

func stringArg(a jsonpath.Argument) (string, bool) {
	v, ok := a.Value()
	if !ok {
		return "", false
	}
	return v.AsString()
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// titleCase uses proper Unicode word boundaries.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// base64Encode accepts strings and raw bytes.
func base64Encode(args []jsonpath.Argument) (jsonpath.Argument, error) {
	v, ok := args[0].Value()
	if !ok {
		return jsonpath.Nothing(), nil
	}

	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return jsonpath.ValueOf(value.String(base64.StdEncoding.EncodeToString([]byte(s)))), nil
	case value.KindBytes:
		b, _ := v.AsBytes()
		return jsonpath.ValueOf(value.String(base64.StdEncoding.EncodeToString(b))), nil
	default:
		return jsonpath.Nothing(), nil
	}
}
