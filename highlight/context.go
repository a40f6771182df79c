package highlight

import (
	"juliahl/syntax"
)

// frame is one level of lineage: a container and the index of the child
// currently being visited.
type frame struct {
	node  *syntax.Node
	child int
}

// hlContext is the per-call traversal state. It is never shared between calls.
type hlContext struct {
	text   string
	offset int

	depth [delimCount]int
	// offsets of opening delimiters not yet closed, per family
	open [delimCount][]int

	lineage []frame

	syntaxErrors bool
}

func newContext(text string, syntaxErrors bool) *hlContext {
	return &hlContext{
		text:         text,
		syntaxErrors: syntaxErrors,
		lineage:      make([]frame, 0, 16),
	}
}

func (c *hlContext) enter(n *syntax.Node) {
	c.lineage = append(c.lineage, frame{node: n})
}

func (c *hlContext) leave() {
	c.lineage = c.lineage[:len(c.lineage)-1]
}

// at records which child of the innermost container is being visited.
func (c *hlContext) at(i int) {
	c.lineage[len(c.lineage)-1].child = i
}

func (c *hlContext) advance(n int) {
	c.offset += n
}

func (c *hlContext) depthFor(d Delim) int {
	return c.depth[d]
}

func (c *hlContext) bump(d Delim, delta int) {
	c.depth[d] += delta
}

// parent returns the innermost frame, if any.
func (c *hlContext) parent() (frame, bool) {
	if len(c.lineage) == 0 {
		return frame{}, false
	}
	return c.lineage[len(c.lineage)-1], true
}

// enclosingLiteral returns the kind of the nearest literal container, or
// KindInvalid when the node is not inside one. Interpolated groups end the
// search.
func (c *hlContext) enclosingLiteral() syntax.Kind {
	for i := len(c.lineage) - 1; i >= 0; i-- {
		k := c.lineage[i].node.Kind
		if k.IsLiteralContainer() {
			return k
		}
		if k != syntax.KindError {
			return syntax.KindInvalid
		}
	}
	return syntax.KindInvalid
}

// roleLevel climbs out of the positions that do not change an identifier's
// role: the head of a parametric type (T in T{...}) and the last name of a
// field access (c in a.b.c). It returns the lineage level that decides the
// role, or -1.
func (c *hlContext) roleLevel() int {
	level := len(c.lineage) - 1
	for level >= 0 {
		f := c.lineage[level]
		switch {
		case f.node.Kind == syntax.KindParametric && f.child == 0:
		case f.node.Kind == syntax.KindField && f.child == len(f.node.Children)-1:
		default:
			return level
		}
		level--
	}
	return -1
}

// isCallee reports whether the node under visit is the function of a call.
func (c *hlContext) isCallee() bool {
	level := c.roleLevel()
	if level < 0 {
		return false
	}
	f := c.lineage[level]
	return (f.node.Kind == syntax.KindCall || f.node.Kind == syntax.KindDotCall) && f.child == 0
}

// isTypedec reports whether the node under visit directly follows a ::.
func (c *hlContext) isTypedec() bool {
	level := c.roleLevel()
	if level < 0 {
		return false
	}
	f := c.lineage[level]
	for i := f.child - 1; i >= 0; i-- {
		prev := f.node.Children[i]
		if prev.Kind.IsTrivia() {
			continue
		}
		return prev.Kind == syntax.KindDeclOp
	}
	return false
}
