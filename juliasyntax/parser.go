package juliasyntax

import (
	"juliahl/syntax"
)

// Parser is the default syntax.Parser. It keeps no state between calls and
// is safe for concurrent use.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse builds a tree whose root spans all of text. Without IgnoreErrors a
// tree containing error nodes is reported as syntax.ErrSyntax.
func (p *Parser) Parse(text string, opts syntax.ParseOptions) (*syntax.Tree, error) {
	toks, err := Lex(text)
	if err != nil {
		return nil, err
	}

	b := &builder{toks: toks, src: text}
	root := &syntax.Node{
		Kind:     syntax.KindToplevel,
		Start:    0,
		End:      len(text),
		Children: b.parseSeq(),
	}
	tree := &syntax.Tree{Root: root}

	if !opts.IgnoreErrors {
		if err := syntax.CheckErrors(tree); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// ParseAll parses text ignoring errors.
func ParseAll(text string) *syntax.Tree {
	tree, err := New().Parse(text, syntax.ParseOptions{IgnoreErrors: true})
	if err != nil {
		return &syntax.Tree{Root: &syntax.Node{
			Kind: syntax.KindToplevel,
			End:  len(text),
			Children: []*syntax.Node{
				{Kind: syntax.KindError, Start: 0, End: len(text)},
			},
		}}
	}
	return tree
}

type builder struct {
	toks []Token
	pos  int
	src  string
	// closers of the groups currently open, innermost last
	open []syntax.Kind
}

func (b *builder) peek() (Token, bool) {
	if b.pos >= len(b.toks) {
		return Token{}, false
	}
	return b.toks[b.pos], true
}

func (b *builder) next() Token {
	t := b.toks[b.pos]
	b.pos++
	return t
}

func (b *builder) isOpen(closer syntax.Kind) bool {
	for _, k := range b.open {
		if k == closer {
			return true
		}
	}
	return false
}

// parseSeq consumes tokens until the input ends or a closer of an enclosing
// group shows up.
func (b *builder) parseSeq() []*syntax.Node {
	var out []*syntax.Node
	for {
		t, ok := b.peek()
		if !ok {
			return groupPostfix(out, b.src)
		}

		switch {
		case isOpener(t.Kind):
			out = append(out, b.parseGroup())
		case isCloser(t.Kind):
			if b.isOpen(t.Kind) {
				return groupPostfix(out, b.src)
			}
			b.pos++
			out = append(out, wrapError(leaf(t)))
		case t.Kind == syntax.KindStringDelim || t.Kind == syntax.KindCharDelim:
			out = append(out, b.parseLiteral(false))
		case t.Kind == syntax.KindStringMacro && b.delimFollows():
			out = append(out, b.parseLiteral(true))
		default:
			b.pos++
			out = append(out, leaf(t))
		}
	}
}

func (b *builder) delimFollows() bool {
	if b.pos+1 >= len(b.toks) {
		return false
	}
	cur, nxt := b.toks[b.pos], b.toks[b.pos+1]
	return nxt.Kind == syntax.KindStringDelim && nxt.Start == cur.End
}

func (b *builder) parseGroup() *syntax.Node {
	open := b.next()
	closer := closerFor(open.Kind)

	b.open = append(b.open, closer)
	inner := b.parseSeq()
	b.open = b.open[:len(b.open)-1]

	children := append([]*syntax.Node{leaf(open)}, inner...)
	kind := groupKind(open.Kind)

	if t, ok := b.peek(); ok && t.Kind == closer {
		b.pos++
		return container(kind, append(children, leaf(t)))
	}
	return wrapError(container(kind, children))
}

// parseLiteral consumes a quoted literal, optionally introduced by a string
// macro prefix. $( ... ) interpolations are parsed as ordinary groups.
func (b *builder) parseLiteral(prefixed bool) *syntax.Node {
	var children []*syntax.Node
	kind := syntax.KindStringLiteral

	if prefixed {
		prefix := b.next()
		if prefix.Text == "r" {
			kind = syntax.KindRegexLiteral
		}
		children = append(children, leaf(prefix))
	}

	open := b.next()
	children = append(children, leaf(open))
	switch {
	case open.Kind == syntax.KindCharDelim:
		kind = syntax.KindCharLiteral
	case !prefixed && (open.Text == "`" || open.Text == "```"):
		kind = syntax.KindCmdLiteral
	}

	for {
		t, ok := b.peek()
		if !ok {
			return wrapError(container(kind, children))
		}
		switch {
		case t.Kind == open.Kind && t.Text == open.Text:
			b.pos++
			children = append(children, leaf(t))
			// regex flags trail the closing quote
			if f, ok := b.peek(); ok && kind == syntax.KindRegexLiteral && f.Kind == syntax.KindRegex && f.Start == t.End {
				b.pos++
				children = append(children, leaf(f))
			}
			return container(kind, children)
		case t.Kind == syntax.KindLParen:
			children = append(children, b.parseGroup())
		case isCloser(t.Kind) && b.isOpen(t.Kind):
			return wrapError(container(kind, children))
		default:
			b.pos++
			children = append(children, leaf(t))
		}
	}
}

// groupPostfix folds adjacent nodes into field access, parametric types and
// calls: a.b, T{...}, f(...), f.(...).
func groupPostfix(in []*syntax.Node, src string) []*syntax.Node {
	out := make([]*syntax.Node, 0, len(in))
	for i := 0; i < len(in); i++ {
		out = append(out, in[i])
		for {
			last := out[len(out)-1]
			next := at(in, i+1)
			after := at(in, i+2)

			switch {
			case isDot(next, src) && adjacent(last, next) && after != nil && adjacent(next, after) &&
				after.Kind == syntax.KindIdentifier && (last.Kind == syntax.KindIdentifier || last.Kind == syntax.KindField):
				if last.Kind == syntax.KindField {
					out[len(out)-1] = container(syntax.KindField, append(append([]*syntax.Node{}, last.Children...), next, after))
				} else {
					out[len(out)-1] = container(syntax.KindField, []*syntax.Node{last, next, after})
				}
				i += 2
				continue
			case isDot(next, src) && adjacent(last, next) && after != nil && adjacent(next, after) &&
				after.Kind == syntax.KindParens && canCall(last):
				out[len(out)-1] = container(syntax.KindDotCall, []*syntax.Node{last, next, after})
				i += 2
				continue
			case next != nil && next.Kind == syntax.KindBraces && adjacent(last, next) &&
				(last.Kind == syntax.KindIdentifier || last.Kind == syntax.KindField):
				out[len(out)-1] = container(syntax.KindParametric, []*syntax.Node{last, next})
				i++
				continue
			case next != nil && next.Kind == syntax.KindParens && adjacent(last, next) && canCall(last):
				out[len(out)-1] = container(syntax.KindCall, []*syntax.Node{last, next})
				i++
				continue
			}
			break
		}
	}
	return out
}

func canCall(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.KindIdentifier, syntax.KindField, syntax.KindParametric, syntax.KindCall:
		return true
	}
	return false
}

func at(nodes []*syntax.Node, i int) *syntax.Node {
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

func adjacent(a, b *syntax.Node) bool {
	return a != nil && b != nil && a.End == b.Start
}

func isDot(n *syntax.Node, src string) bool {
	return n != nil && n.Kind == syntax.KindOperator && n.Len() == 1 && src[n.Start] == '.'
}

func leaf(t Token) *syntax.Node {
	return &syntax.Node{Kind: t.Kind, Start: t.Start, End: t.End, Flags: t.Flags}
}

func container(kind syntax.Kind, children []*syntax.Node) *syntax.Node {
	n := &syntax.Node{Kind: kind, Children: children}
	if len(children) > 0 {
		n.Start = children[0].Start
		n.End = children[len(children)-1].End
	}
	return n
}

func wrapError(n *syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindError, Start: n.Start, End: n.End, Children: []*syntax.Node{n}}
}

func isOpener(k syntax.Kind) bool {
	return k == syntax.KindLParen || k == syntax.KindLBracket || k == syntax.KindLBrace
}

func isCloser(k syntax.Kind) bool {
	return k == syntax.KindRParen || k == syntax.KindRBracket || k == syntax.KindRBrace
}

func closerFor(open syntax.Kind) syntax.Kind {
	switch open {
	case syntax.KindLParen:
		return syntax.KindRParen
	case syntax.KindLBracket:
		return syntax.KindRBracket
	default:
		return syntax.KindRBrace
	}
}

func groupKind(open syntax.Kind) syntax.Kind {
	switch open {
	case syntax.KindLParen:
		return syntax.KindParens
	case syntax.KindLBracket:
		return syntax.KindBrackets
	default:
		return syntax.KindBraces
	}
}
