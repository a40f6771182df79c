// Package tsjulia builds syntax trees from the tree-sitter Julia grammar.
// It is an alternative to juliasyntax for callers that prefer a full
// grammar over the hand-written recovering parser.
package tsjulia

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	juliagrammar "github.com/tree-sitter/tree-sitter-julia/bindings/go"

	"juliahl/syntax"
)

var language = sitter.NewLanguage(juliagrammar.Language())

// Parser is safe for concurrent use; tree-sitter parsers are pooled.
type Parser struct {
	parsers sync.Pool
}

func New() *Parser {
	p := &Parser{}
	p.parsers.New = func() any {
		parser := sitter.NewParser()
		parser.SetLanguage(language)
		return parser
	}
	return p
}

func (p *Parser) Parse(text string, opts syntax.ParseOptions) (*syntax.Tree, error) {
	return p.ParseCtx(context.Background(), text, opts)
}

func (p *Parser) ParseCtx(ctx context.Context, text string, opts syntax.ParseOptions) (*syntax.Tree, error) {
	parser := p.parsers.Get().(*sitter.Parser)
	defer p.parsers.Put(parser)

	src := []byte(text)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse: no tree")
	}
	defer tree.Close()

	b := &builder{src: text}
	root := &syntax.Node{Kind: syntax.KindToplevel, End: len(text)}
	if n := tree.RootNode(); n != nil {
		root.Children = b.children(n)
	}

	out := &syntax.Tree{Root: root}
	if !opts.IgnoreErrors {
		if err := syntax.CheckErrors(out); err != nil {
			return out, err
		}
	}
	return out, nil
}

var containerKinds = map[string]syntax.Kind{
	"call_expression":              syntax.KindCall,
	"broadcast_call_expression":    syntax.KindDotCall,
	"field_expression":             syntax.KindField,
	"parametrized_type_expression": syntax.KindParametric,
	"argument_list":                syntax.KindParens,
	"parenthesized_expression":     syntax.KindParens,
	"tuple_expression":             syntax.KindParens,
	"vector_expression":            syntax.KindBrackets,
	"matrix_expression":            syntax.KindBrackets,
	"comprehension_expression":     syntax.KindBrackets,
	"index_expression":             syntax.KindBlock,
	"curly_expression":             syntax.KindBraces,
}

// Nodes whose whole span becomes one leaf, whatever their children are.
var leafKinds = map[string]syntax.Kind{
	"identifier":       syntax.KindIdentifier,
	"integer_literal":  syntax.KindInteger,
	"float_literal":    syntax.KindFloat,
	"boolean_literal":  syntax.KindBool,
	"true":             syntax.KindBool,
	"false":            syntax.KindBool,
	"comment":          syntax.KindComment,
	"line_comment":     syntax.KindComment,
	"block_comment":    syntax.KindComment,
	"escape_sequence":  syntax.KindEscape,
	"macro_identifier": syntax.KindMacroName,
	"(":                syntax.KindLParen,
	")":                syntax.KindRParen,
	"[":                syntax.KindLBracket,
	"]":                syntax.KindRBracket,
	"{":                syntax.KindLBrace,
	"}":                syntax.KindRBrace,
}

var keywords = map[string]bool{
	"abstract": true, "baremodule": true, "begin": true, "break": true,
	"catch": true, "const": true, "continue": true, "do": true, "else": true,
	"elseif": true, "end": true, "export": true, "finally": true, "for": true,
	"function": true, "global": true, "if": true, "import": true, "let": true,
	"local": true, "macro": true, "module": true, "mutable": true,
	"outer": true, "primitive": true, "public": true, "quote": true,
	"return": true, "struct": true, "try": true, "type": true, "using": true,
	"where": true, "while": true, "as": true,
}

type builder struct {
	src string
}

func (b *builder) children(n *sitter.Node) []*syntax.Node {
	count := int(n.ChildCount())
	out := make([]*syntax.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := b.node(n.Child(i)); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (b *builder) node(n *sitter.Node) *syntax.Node {
	if n == nil || n.IsMissing() {
		return nil
	}
	start, end := int(n.StartByte()), int(n.EndByte())
	if start >= end || end > len(b.src) {
		return nil
	}

	typ := n.Type()
	switch typ {
	case "ERROR":
		if n.ChildCount() == 0 {
			return leaf(syntax.KindError, start, end)
		}
		return container(syntax.KindError, start, end, b.children(n))
	case "string_literal":
		return b.literal(n, syntax.KindStringLiteral, syntax.KindString, nil)
	case "command_literal":
		return b.literal(n, syntax.KindCmdLiteral, syntax.KindCmdString, nil)
	case "character_literal":
		return b.literal(n, syntax.KindCharLiteral, syntax.KindChar, nil)
	case "prefixed_string_literal", "prefixed_command_literal":
		return b.prefixed(n)
	case "quote_expression":
		if sym := b.symbol(n); sym != nil {
			return sym
		}
	}

	if k, ok := leafKinds[typ]; ok {
		return leaf(k, start, end)
	}
	if n.ChildCount() > 0 {
		kind, ok := containerKinds[typ]
		if !ok {
			kind = syntax.KindBlock
		}
		return container(kind, start, end, b.children(n))
	}

	text := b.src[start:end]
	if n.IsNamed() && typ != "operator" {
		// Named leaves outside the tables carry no face of their own.
		return leaf(syntax.KindIdentifier, start, end)
	}
	if keywords[text] {
		return leaf(syntax.KindKeyword, start, end)
	}
	kind, flags := syntax.ClassifyOperator(text)
	l := leaf(kind, start, end)
	l.Flags = flags
	return l
}

// symbol collapses :name into a single symbol leaf.
func (b *builder) symbol(n *sitter.Node) *syntax.Node {
	if n.ChildCount() != 2 {
		return nil
	}
	colon, name := n.Child(0), n.Child(1)
	if colon.Type() != ":" || name.Type() != "identifier" || colon.EndByte() != name.StartByte() {
		return nil
	}
	return leaf(syntax.KindSymbol, int(n.StartByte()), int(n.EndByte()))
}

func (b *builder) prefixed(n *sitter.Node) *syntax.Node {
	prefix := n.Child(0)
	if prefix == nil || prefix.Type() != "identifier" {
		return container(syntax.KindBlock, int(n.StartByte()), int(n.EndByte()), b.children(n))
	}
	p := leaf(syntax.KindStringMacro, int(prefix.StartByte()), int(prefix.EndByte()))

	kind, content := syntax.KindStringLiteral, syntax.KindString
	switch {
	case n.Type() == "prefixed_command_literal":
		kind, content = syntax.KindCmdLiteral, syntax.KindCmdString
	case p.Text(b.src) == "r":
		kind, content = syntax.KindRegexLiteral, syntax.KindRegex
	}
	return b.literal(n, kind, content, p)
}

// literal rebuilds a quoted literal as delimiter, content and delimiter
// leaves. The grammar hides its quote tokens, so they are recovered from
// the source text; interpolations and escapes keep their own nodes.
func (b *builder) literal(n *sitter.Node, kind, content syntax.Kind, prefix *syntax.Node) *syntax.Node {
	start, end := int(n.StartByte()), int(n.EndByte())
	body := start
	var kids []*syntax.Node
	if prefix != nil {
		kids = append(kids, prefix)
		body = prefix.End
	}

	delimKind := syntax.KindStringDelim
	if kind == syntax.KindCharLiteral {
		delimKind = syntax.KindCharDelim
	}
	quote := quoteAt(b.src[body:end])
	if quote == "" {
		return container(kind, start, end, append(kids, leaf(content, body, end)))
	}
	kids = append(kids, leaf(delimKind, body, body+len(quote)))
	cursor := body + len(quote)

	var inner []*syntax.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if !c.IsNamed() || strings.Contains(c.Type(), "content") {
			continue
		}
		if int(c.StartByte()) < cursor {
			continue
		}
		if x := b.node(c); x != nil {
			inner = append(inner, x)
		}
	}

	closeAt := -1
	lastInner := cursor
	if len(inner) > 0 {
		lastInner = inner[len(inner)-1].End
	}
	if i := strings.LastIndex(b.src[lastInner:end], quote); i >= 0 && lastInner+i >= cursor {
		closeAt = lastInner + i
	}

	limit := end
	if closeAt >= 0 {
		limit = closeAt
	}
	for _, x := range inner {
		if x.Start >= limit {
			break
		}
		if x.Start > cursor {
			kids = append(kids, leaf(content, cursor, x.Start))
		}
		kids = append(kids, x)
		cursor = x.End
	}
	if cursor < limit {
		kids = append(kids, leaf(content, cursor, limit))
	}
	if closeAt >= 0 {
		kids = append(kids, leaf(delimKind, closeAt, closeAt+len(quote)))
		if suffix := closeAt + len(quote); suffix < end {
			kids = append(kids, leaf(content, suffix, end))
		}
	}
	return container(kind, start, end, kids)
}

func quoteAt(s string) string {
	for _, q := range []string{`"""`, "```", `"`, "`", "'"} {
		if strings.HasPrefix(s, q) {
			return q
		}
	}
	return ""
}

func leaf(kind syntax.Kind, start, end int) *syntax.Node {
	return &syntax.Node{Kind: kind, Start: start, End: end}
}

func container(kind syntax.Kind, start, end int, children []*syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: kind, Start: start, End: end, Children: children}
}
