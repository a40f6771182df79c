package highlight

import (
	"fmt"

	"juliahl/face"
	"juliahl/syntax"
)

// Annotation is a face over the half-open byte range [Start, End).
type Annotation struct {
	Start int       `yaml:"start"`
	End   int       `yaml:"end"`
	Face  face.Name `yaml:"face"`
}

func (a Annotation) String() string {
	return fmt.Sprintf("[%d,%d) %s", a.Start, a.End, a.Face)
}

type DiagnosticKind string

const (
	// DiagSpan marks a subtree skipped because its span does not fit its
	// parent or its preceding siblings.
	DiagSpan DiagnosticKind = "inconsistent_span"
	// DiagCoverage marks a tree whose root does not cover the text.
	DiagCoverage DiagnosticKind = "incomplete_coverage"
)

// Diagnostic reports a tree problem the engine worked around.
type Diagnostic struct {
	Start   int            `yaml:"start"`
	End     int            `yaml:"end"`
	Kind    DiagnosticKind `yaml:"kind"`
	Message string         `yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at [%d,%d): %s", d.Kind, d.Start, d.End, d.Message)
}

// walker runs one annotation pass.
type walker struct {
	cfg   *Config
	ctx   *hlContext
	out   []Annotation
	diags []Diagnostic
}

func (w *walker) emit(start, end int, name face.Name) {
	if start < 0 || end > len(w.ctx.text) || start >= end {
		return
	}
	w.out = append(w.out, Annotation{Start: start, End: end, Face: name})
}

func (w *walker) diagnose(n *syntax.Node, kind DiagnosticKind, format string, args ...any) {
	w.diags = append(w.diags, Diagnostic{
		Start:   n.Start,
		End:     n.End,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (w *walker) run(root *syntax.Node) {
	if root == nil {
		return
	}
	text := w.ctx.text
	if root.Start < 0 || root.End > len(text) || root.Start > root.End {
		w.diagnose(root, DiagSpan, "root %s does not fit text of length %d", root, len(text))
		return
	}

	w.ctx.advance(root.Start)
	w.visit(root)

	if w.ctx.offset != len(text) {
		w.diagnose(root, DiagCoverage, "traversal consumed %d of %d bytes", w.ctx.offset, len(text))
		w.ctx.advance(len(text) - w.ctx.offset)
	}
	w.closeUnpaired()
}

func (w *walker) visit(n *syntax.Node) {
	if n.IsLeaf() {
		w.leaf(n)
		w.ctx.advance(n.Len())
		return
	}

	if n.Kind == syntax.KindError && w.ctx.syntaxErrors {
		w.emit(n.Start, n.End, face.Error)
	}

	w.ctx.enter(n)
	for i, c := range n.Children {
		if c.Start < w.ctx.offset || c.End > n.End || c.Start > c.End {
			w.diagnose(c, DiagSpan, "child %s of %s at cursor %d", c, n, w.ctx.offset)
			continue
		}
		// gaps between children are consumed without a face
		w.ctx.advance(c.Start - w.ctx.offset)
		w.ctx.at(i)
		w.visit(c)
	}
	w.ctx.leave()

	w.ctx.advance(n.End - w.ctx.offset)
}

func (w *walker) leaf(n *syntax.Node) {
	start, end := w.ctx.offset, w.ctx.offset+n.Len()

	switch n.Kind {
	case syntax.KindLParen, syntax.KindRParen, syntax.KindLBracket,
		syntax.KindRBracket, syntax.KindLBrace, syntax.KindRBrace:
		w.delimiter(n, start, end)

	case syntax.KindIdentifier:
		w.identifier(n, start, end)

	case syntax.KindInteger, syntax.KindFloat:
		w.emit(start, end, face.Number)
	case syntax.KindBool:
		w.emit(start, end, face.Bool)
	case syntax.KindString:
		w.emit(start, end, w.literalFace(face.String))
	case syntax.KindChar:
		w.emit(start, end, face.Char)
	case syntax.KindCmdString:
		w.emit(start, end, face.CmdString)
	case syntax.KindRegex:
		w.emit(start, end, face.Regex)
	case syntax.KindEscape:
		w.emit(start, end, face.BackslashLiteral)
	case syntax.KindStringDelim:
		w.emit(start, end, w.literalFace(face.String))
		w.emit(start, end, face.StringDelim)
	case syntax.KindCharDelim:
		w.emit(start, end, face.Char)
		w.emit(start, end, face.CharDelim)

	case syntax.KindStringMacro, syntax.KindMacroName:
		w.emit(start, end, face.Macro)
	case syntax.KindSymbol:
		w.emit(start, end, face.Symbol)
	case syntax.KindComment:
		w.emit(start, end, face.Comment)
	case syntax.KindKeyword:
		w.emit(start, end, face.Keyword)

	case syntax.KindOperator, syntax.KindDeclOp:
		w.emit(start, end, face.Operator)
		w.broadcast(n, start, end)
	case syntax.KindComparison:
		w.emit(start, end, face.Comparator)
		w.broadcast(n, start, end)
	case syntax.KindAssignment:
		w.emit(start, end, face.Assignment)
		w.broadcast(n, start, end)

	case syntax.KindError:
		if !w.ctx.syntaxErrors {
			break
		}
		// an enclosing error node already covers this leaf
		if p, ok := w.ctx.parent(); ok && p.node.Kind == syntax.KindError {
			break
		}
		w.emit(start, end, face.Error)

	case syntax.KindInvalid, syntax.KindWhitespace, syntax.KindComma, syntax.KindSemicolon:
		// no face

	default:
		// a container without children, nothing to consume
	}
}

// literalFace picks the content face from the enclosing literal container.
func (w *walker) literalFace(fallback face.Name) face.Name {
	switch w.ctx.enclosingLiteral() {
	case syntax.KindCmdLiteral:
		return face.CmdString
	case syntax.KindRegexLiteral:
		return face.Regex
	case syntax.KindCharLiteral:
		return face.Char
	}
	return fallback
}

// broadcast layers the broadcast face over dotted operators and the dot of
// f.(x).
func (w *walker) broadcast(n *syntax.Node, start, end int) {
	if n.Has(syntax.FlagDotted) {
		w.emit(start, end, face.Broadcast)
		return
	}
	if p, ok := w.ctx.parent(); ok && p.node.Kind == syntax.KindDotCall && p.child == 1 {
		w.emit(start, end, face.Broadcast)
	}
}

func (w *walker) delimiter(n *syntax.Node, start, end int) {
	delta, d := ClassifyDelimiter(n.Kind)
	if d == DelimNone {
		return
	}

	if delta > 0 {
		w.emit(start, end, w.delimFace(d, w.ctx.depthFor(d)))
		w.ctx.open[d] = append(w.ctx.open[d], start)
		w.ctx.bump(d, delta)
		return
	}

	w.ctx.bump(d, delta)
	if stack := w.ctx.open[d]; len(stack) > 0 {
		w.ctx.open[d] = stack[:len(stack)-1]
	}
	depth := w.ctx.depthFor(d)
	if depth < 0 && w.cfg.Unmatched {
		w.emit(start, end, face.Parentheses)
		w.emit(start, end, face.UnpairedParentheses)
		return
	}
	w.emit(start, end, w.delimFace(d, depth))
}

func (w *walker) delimFace(d Delim, depth int) face.Name {
	if !w.cfg.Rainbow {
		return face.Parentheses
	}
	period := w.cfg.MaxDepth
	idx := ((depth % period) + period) % period
	return face.Rainbow(d.String(), idx+1)
}

// closeUnpaired marks openers left without a closer once the walk is over.
func (w *walker) closeUnpaired() {
	if !w.cfg.Unmatched {
		return
	}
	for d := DelimParen; d < delimCount; d++ {
		for _, start := range w.ctx.open[d] {
			w.emit(start, start+1, face.UnpairedParentheses)
		}
	}
}

// identifier applies, in order of precedence: type declaration, singleton,
// base type, builtin. Base types and builtins in callee position also get
// the funcall face; unknown callees get only funcall.
func (w *walker) identifier(n *syntax.Node, start, end int) {
	if w.ctx.isTypedec() {
		w.emit(start, end, face.Typedec)
		return
	}

	name := n.Text(w.ctx.text)
	callee := w.ctx.isCallee()

	switch {
	case IsSingleton(name):
		w.emit(start, end, face.SingletonIdentifier)
		return
	case IsBaseType(name):
		w.emit(start, end, face.Type)
	case IsBuiltin(name):
		w.emit(start, end, face.Builtin)
	}
	if callee {
		w.emit(start, end, face.Funcall)
	}
}
