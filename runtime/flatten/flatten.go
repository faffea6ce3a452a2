// Package flatten turns a grouping tree into fully-qualified class tokens.
package flatten

import (
	"strings"

	"github.com/aledsdavies/twgroup/core/ast"
	"github.com/aledsdavies/twgroup/core/invariant"
)

// Separator joins flattened tokens in the output string.
const Separator = " "

// Flatten walks node depth-first and returns one entry per Word leaf. Each
// entry is prefix, then every enclosing group prefix from outermost to
// innermost, then the word text, concatenated with nothing in between.
// Empty groups contribute no entries.
func Flatten(node ast.Node, prefix string) []string {
	invariant.NotNil(node, "node")
	out := make([]string, 0, ast.CountWords(node))
	return flatten(node, prefix, out)
}

// flatten appends to out; prefix is passed by value so siblings never see
// each other's accumulated prefix.
func flatten(node ast.Node, prefix string, out []string) []string {
	switch n := node.(type) {
	case *ast.Word:
		return append(out, prefix+n.Text)
	case *ast.Group:
		combined := prefix + n.Prefix
		for _, child := range n.Children {
			out = flatten(child, combined, out)
		}
		return out
	default:
		invariant.Unreachable("ast node of type %T", node)
		return out
	}
}

// Join renders flattened tokens as a single class string.
func Join(tokens []string) string {
	return strings.Join(tokens, Separator)
}
