// Package jsonpath compiles and evaluates JSONPath expressions (RFC 9535)
// against value.Value trees.
//
// Parse turns an expression into an immutable *Path; Query.Evaluate walks a
// value and returns every matching node with its normalized location.
//
// Supported syntax:
//   - Child `.name`, `['name']`, `[*]` and descendant `..` segments
//   - Index `[i]` (negative counts from the end), slice `[start:end:step]`
//     and selector lists `[a, b]`
//   - Filters `[?expr]` with `==  !=  <  <=  >  >=`, `&&  ||  !`,
//     parentheses, existence tests and function calls
//   - Functions length, count, match, search, value and key, plus any
//     registered through a Registry
//
// Compilation reports the first problem as a *ParserError. Evaluation never
// fails: absent data compares as Nothing and ill-typed function calls match
// nothing, optionally reported to a Delegate.
package jsonpath
