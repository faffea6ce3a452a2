// Package ast defines the tree produced by the grouping parser.
//
// The tree has exactly two node shapes. A *Word is a leaf holding one class
// token. A *Group holds a prefix and its ordered children; the synthetic root
// is a Group with an empty prefix. Node is sealed: no other package can add a
// shape, so a type switch over *Word and *Group is exhaustive.
package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/aledsdavies/twgroup/core/invariant"
)

// Node represents any node in the AST
type Node interface {
	String() string
	Column() int
	node()
}

// Word is a leaf class token. Text is trimmed and never empty.
type Word struct {
	Text string
	Col  int // 1-based rune column of the token in the source
}

// Group applies Prefix to every node in Children. Children keep source order.
type Group struct {
	Prefix   string
	Children []Node
	Col      int // column of the prefix word; 0 for the synthetic root
}

func (*Word) node()  {}
func (*Group) node() {}

// Column returns the 1-based source column of the word.
func (w *Word) Column() int { return w.Col }

// Column returns the source column of the group's prefix word.
func (g *Group) Column() int { return g.Col }

// String renders the word as it appeared in the source.
func (w *Word) String() string {
	return w.Text
}

// String renders the group back into grouped notation. The synthetic root
// renders without parentheses.
func (g *Group) String() string {
	parts := make([]string, 0, len(g.Children))
	for _, child := range g.Children {
		parts = append(parts, child.String())
	}
	if g.IsRoot() {
		return strings.Join(parts, " ")
	}
	return g.Prefix + "(" + strings.Join(parts, " ") + ")"
}

// IsRoot reports whether g is the synthetic root group.
func (g *Group) IsRoot() bool {
	return g.Prefix == "" && g.Col == 0
}

// NewRoot returns an empty synthetic root group.
func NewRoot() *Group {
	return &Group{}
}

// Append adds child to the end of the group's children.
func (g *Group) Append(child Node) {
	invariant.NotNil(child, "child")
	g.Children = append(g.Children, child)
}

// Walk visits node and its descendants in pre-order. depth is 0 for node
// itself. Returning false from fn skips the children of a group.
func Walk(node Node, fn func(n Node, depth int) bool) {
	walk(node, 0, fn)
}

func walk(node Node, depth int, fn func(Node, int) bool) {
	switch n := node.(type) {
	case *Word:
		fn(n, depth)
	case *Group:
		if !fn(n, depth) {
			return
		}
		for _, child := range n.Children {
			walk(child, depth+1, fn)
		}
	default:
		invariant.Unreachable("ast node of type %T", node)
	}
}

// CountWords returns the number of Word leaves under node.
func CountWords(node Node) int {
	count := 0
	Walk(node, func(n Node, _ int) bool {
		if _, ok := n.(*Word); ok {
			count++
		}
		return true
	})
	return count
}

// Fprint writes an indented dump of the tree to w, one node per line.
func Fprint(w io.Writer, node Node) error {
	var err error
	Walk(node, func(n Node, depth int) bool {
		if err != nil {
			return false
		}
		indent := strings.Repeat("  ", depth)
		switch n := n.(type) {
		case *Word:
			_, err = fmt.Fprintf(w, "%sWord %q\n", indent, n.Text)
		case *Group:
			if n.IsRoot() {
				_, err = fmt.Fprintf(w, "%sRoot\n", indent)
			} else {
				_, err = fmt.Fprintf(w, "%sGroup %q\n", indent, n.Prefix)
			}
		}
		return true
	})
	return err
}
