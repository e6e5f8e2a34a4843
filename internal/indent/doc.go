// Package indent computes the indentation of a new line.
//
// A Calculator receives a Request describing where the line break happens
// and returns the whitespace to place after it. Calculators never fail: a
// problem inside one yields the empty string.
//
// HeuristicCalculator implements the built-in strategies:
//
//   - none: no indentation
//   - keep: copy the leading whitespace of the line being broken
//   - brackets: keep, plus one unit after an opening bracket and minus one
//     unit before a closing bracket
//
// ScriptCalculator runs a sandboxed Lua function so users can supply their
// own rules.
package indent
