// Package ast defines the single generic tree node used to represent
// parsed script source (spec.md §3, §9). Unlike a typed-variant AST,
// every construct — literal, identifier, operator, statement, virtual
// grouping — is the same Node shape: an anchor token plus an ordered
// list of children. Operator arity and operand order are read off the
// children slice by the token kind of the node itself.
package ast

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/scriptlab/eidos/token"
)

// Value is a pre-evaluated constant cached on a node by OptimizeTree.
// Only NUMBER, STRING, and the boolean/null language constants ever
// carry a cached value.
type Value struct {
	Kind token.Kind
	Num  float64
	Str  string
	Bool bool
}

// Node is a tree node: its anchor token and an ordered list of
// children. Children order is semantically significant (spec.md §3).
// A node owns its children; the root is owned by the enclosing
// Script or ScriptBlock.
type Node struct {
	Token    token.Token
	Children []*Node

	Cached    *Value
	IsVirtual bool
}

// New builds a node anchored on tok with no children.
func New(tok token.Token) *Node {
	return &Node{Token: tok}
}

// NewVirtual builds a synthetic grouping node (ContextFile or
// ContextBlock) with no backing source token.
func NewVirtual(kind token.Kind, at int) *Node {
	if !kind.IsVirtual() {
		panic(fmt.Sprintf("ast: %s is not a virtual kind", kind))
	}
	return &Node{Token: token.NewVirtual(kind, at), IsVirtual: true}
}

// AddChild appends a child node, preserving order.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// AddChildren appends children in the given order.
func (n *Node) AddChildren(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Kind is a convenience accessor for the anchor token's kind.
func (n *Node) Kind() token.Kind { return n.Token.Kind }

// Start returns the node's starting source offset: the smaller of the
// anchor token's start and the leftmost child's start, so that a
// binary operator's span covers its left operand.
func (n *Node) Start() int {
	start := n.Token.Start
	if len(n.Children) > 0 {
		if c := n.Children[0].Start(); start == token.NoPosition || (c != token.NoPosition && c < start) {
			start = c
		}
	}
	return start
}

// End returns the node's ending source offset: the rightmost child's
// end if any children exist, else the anchor token's end.
func (n *Node) End() int {
	if len(n.Children) > 0 {
		return n.Children[len(n.Children)-1].End()
	}
	return n.Token.End
}

// Child returns the i'th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IsConstant reports whether the node carries a cached constant value.
// Only OptimizeTree sets one (on NUMBER/STRING literals and on folded
// arithmetic), so a literal node is not constant until it has run.
func (n *Node) IsConstant() bool {
	return n.Cached != nil
}

// OptimizeTree walks the tree bottom-up, folding constant
// sub-expressions (literal operands to +, -, *, /, %, ^ and unary -)
// into a cached Value on the node. It returns the (possibly
// unchanged) node so callers can chain it onto a freshly parsed tree.
func OptimizeTree(n *Node) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		OptimizeTree(c)
	}

	switch n.Kind() {
	case token.NUMBER:
		n.Cached = numberLiteral(n.Token.Text)
		return n
	case token.STRING:
		decoded, err := token.UnescapeString(n.Token.Text)
		if err == nil {
			n.Cached = &Value{Kind: token.STRING, Str: decoded}
		}
		return n
	}

	if len(n.Children) == 1 && isArithmeticUnary(n.Kind()) {
		operand := n.Children[0].Cached
		if operand != nil && operand.Kind == token.NUMBER {
			n.Cached = &Value{Kind: token.NUMBER, Num: -operand.Num}
		}
		return n
	}

	if len(n.Children) == 2 && isArithmeticBinary(n.Kind()) {
		left, right := n.Children[0].Cached, n.Children[1].Cached
		if left != nil && right != nil && left.Kind == token.NUMBER && right.Kind == token.NUMBER {
			if v, ok := foldArithmetic(n.Kind(), left.Num, right.Num); ok {
				n.Cached = &Value{Kind: token.NUMBER, Num: v}
			}
		}
	}

	return n
}

func numberLiteral(text string) *Value {
	var num float64
	if _, err := fmt.Sscanf(text, "%g", &num); err != nil {
		return nil
	}
	return &Value{Kind: token.NUMBER, Num: num}
}

func (v Value) String() string {
	switch v.Kind {
	case token.NUMBER:
		return cast.ToString(v.Num)
	case token.STRING:
		return v.Str
	default:
		return cast.ToString(v.Bool)
	}
}

func isArithmeticUnary(kind token.Kind) bool {
	return kind == token.MINUS
}

func isArithmeticBinary(kind token.Kind) bool {
	switch kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.CARET:
		return true
	}
	return false
}

func foldArithmetic(kind token.Kind, l, r float64) (float64, bool) {
	switch kind {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case token.PERCENT:
		if r == 0 {
			return 0, false
		}
		return math.Mod(l, r), true
	case token.CARET:
		return math.Pow(l, r), true
	}
	return 0, false
}

// Print writes an indented tree dump to w, one node per line: kind,
// text, the anchor token's [start,end) range, and any cached value,
// matching the style of the original implementation's node-printer
// (used for debugging, not for source reconstruction).
func (n *Node) Print(w io.Writer) {
	n.print(w, 0)
}

func (n *Node) print(w io.Writer, depth int) {
	fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), n.Kind())
	if n.Token.Text != "" {
		fmt.Fprintf(w, " %q", n.Token.Text)
	}
	fmt.Fprintf(w, " @[%d,%d)", n.Token.Start, n.Token.End)
	if n.Cached != nil {
		fmt.Fprintf(w, " =%v", n.Cached)
	}
	fmt.Fprintln(w)
	for _, c := range n.Children {
		c.print(w, depth+1)
	}
}
