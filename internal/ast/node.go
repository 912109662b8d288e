// Package ast provides the syntax tree produced by the Block-ASM parser.
//
// The tree is a pure ownership tree: every Node owns its children, there are
// no back references and no sharing. Children appear in source order, which
// carries meaning (block chains, list item order).
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeData is the tagged payload of a node. Value is only meaningful for
// leaf data kinds other than NullData.
type NodeData struct {
	Kind  Kind
	Value string
}

// Node is one element of the syntax tree.
type Node struct {
	Data     NodeData
	Children []*Node
	Line     int // line of the token that introduced the node
}

// NewRoot creates the document root.
func NewRoot() *Node {
	return &Node{Data: NodeData{Kind: KindRoot}}
}

// NewNode creates a structural node with no children yet.
func NewNode(kind Kind, line int) *Node {
	if kind.IsLeaf() {
		panic(fmt.Sprintf("ast: NewNode called with leaf kind %s", kind))
	}
	return &Node{Data: NodeData{Kind: kind}, Line: line}
}

// NewLeaf creates a leaf data node.
func NewLeaf(kind Kind, value string, line int) *Node {
	if !kind.IsLeaf() {
		panic(fmt.Sprintf("ast: NewLeaf called with structural kind %s", kind))
	}
	if kind == KindNullData {
		value = ""
	}
	return &Node{Data: NodeData{Kind: kind, Value: value}, Line: line}
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	return n.Data.Kind
}

// Append adds a child at the end. Leaf nodes never take children.
func (n *Node) Append(child *Node) {
	if n.Data.Kind.IsLeaf() {
		panic(fmt.Sprintf("ast: cannot append to leaf %s", n.Data.Kind))
	}
	n.Children = append(n.Children, child)
}

// Last returns the most recently appended child, or nil.
func (n *Node) Last() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Walk visits n and its descendants depth-first in source order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Find returns the direct children of the given kind in order.
func (n *Node) Find(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Data.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Outline renders the subtree as a compact s-expression, e.g.
// (Root (SemVer (StringData "3.0.0"))). Lines are omitted.
func (n *Node) Outline() string {
	var b strings.Builder
	n.outline(&b)
	return b.String()
}

func (n *Node) outline(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Data.Kind.String())
	if n.Data.Kind.HasPayload() {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(n.Data.Value))
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.outline(b)
	}
	b.WriteByte(')')
}

// String renders the subtree as an indented listing with lines.
func (n *Node) String() string {
	var b strings.Builder
	n.Walk(func(node *Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(node.Data.Kind.String())
		if node.Data.Kind.HasPayload() {
			b.WriteByte(' ')
			b.WriteString(strconv.Quote(node.Data.Value))
		}
		if node.Data.Kind != KindRoot {
			fmt.Fprintf(&b, " @%d", node.Line)
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
