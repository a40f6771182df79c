package syntax

import (
	"errors"
	"fmt"
)

// ErrSyntax is returned by parsers that were asked not to ignore errors.
var ErrSyntax = errors.New("syntax error")

type Flags uint8

const (
	// FlagDotted marks a broadcast operator such as .+ or .=
	FlagDotted Flags = 1 << iota
)

// Node is an immutable tree node spanning [Start, End) bytes of the source.
type Node struct {
	Kind     Kind
	Start    int
	End      int
	Flags    Flags
	Children []*Node
}

func (n *Node) Len() int {
	return n.End - n.Start
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) Has(f Flags) bool {
	return n.Flags&f != 0
}

// Text returns the slice of src covered by n, or "" when the span does not fit.
func (n *Node) Text(src string) string {
	if n.Start < 0 || n.End > len(src) || n.Start > n.End {
		return ""
	}
	return src[n.Start:n.End]
}

func (n *Node) String() string {
	return fmt.Sprintf("%s[%d:%d]", n.Kind, n.Start, n.End)
}

type Tree struct {
	Root *Node
}

// HasErrors reports whether any error node is present.
func (t *Tree) HasErrors() bool {
	return t.FirstError() != nil
}

func (t *Tree) FirstError() *Node {
	if t == nil || t.Root == nil {
		return nil
	}
	var found *Node
	Walk(t.Root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == KindError {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

type ParseOptions struct {
	// IgnoreErrors asks for a best-effort tree with embedded error nodes
	// instead of a failure.
	IgnoreErrors bool
}

type Parser interface {
	Parse(text string, opts ParseOptions) (*Tree, error)
}

// CheckErrors returns a wrapped ErrSyntax for the first error node of t.
func CheckErrors(t *Tree) error {
	if n := t.FirstError(); n != nil {
		return fmt.Errorf("at byte %d: %w", n.Start, ErrSyntax)
	}
	return nil
}
