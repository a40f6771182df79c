package tsjulia

import (
	"testing"

	"juliahl/face"
	"juliahl/highlight"
	"juliahl/syntax"
)

func parse(t *testing.T, text string) *syntax.Tree {
	t.Helper()
	tree, err := New().Parse(text, syntax.ParseOptions{IgnoreErrors: true})
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return tree
}

func find(tree *syntax.Tree, kind syntax.Kind) *syntax.Node {
	var found *syntax.Node
	syntax.Walk(tree.Root, func(n *syntax.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestSpansNestAndStayOrdered(t *testing.T) {
	inputs := []string{
		"sum(1:8)",
		"x::Int = 1 # note",
		"f.(a, b) .+ [1 2; 3 4]",
		`println("a $b \n c")`,
		`r"a+b"i`,
		"'x'",
		"Vector{Int}(undef, 3)",
		"f(x",
	}
	for _, text := range inputs {
		tree := parse(t, text)
		if tree.Root.Start != 0 || tree.Root.End != len(text) {
			t.Fatalf("%q: root %s does not cover the text", text, tree.Root)
		}
		syntax.Walk(tree.Root, func(n *syntax.Node) bool {
			prev := n.Start
			for _, c := range n.Children {
				if c.Start < prev || c.End > n.End || c.Start >= c.End {
					t.Fatalf("%q: child %s of %s out of order", text, c, n)
				}
				prev = c.End
			}
			return true
		})
	}
}

func TestCallShape(t *testing.T) {
	tree := parse(t, "sum(1:8)")
	call := find(tree, syntax.KindCall)
	if call == nil {
		t.Fatalf("no call in %v", tree.Root.Children)
	}
	if len(call.Children) < 2 {
		t.Fatalf("call children = %v", call.Children)
	}
	callee := call.Children[0]
	if callee.Kind != syntax.KindIdentifier || callee.Start != 0 || callee.End != 3 {
		t.Fatalf("callee = %s, want identifier[0:3]", callee)
	}
	if call.Children[1].Kind != syntax.KindParens {
		t.Fatalf("arguments = %s, want parens", call.Children[1])
	}
}

func TestStringDelimitersRecovered(t *testing.T) {
	text := `"hi"`
	tree := parse(t, text)
	lit := find(tree, syntax.KindStringLiteral)
	if lit == nil {
		t.Fatalf("no string literal in %v", tree.Root.Children)
	}
	first, last := lit.Children[0], lit.Children[len(lit.Children)-1]
	if first.Kind != syntax.KindStringDelim || first.Start != 0 || first.End != 1 {
		t.Fatalf("opening = %s", first)
	}
	if last.Kind != syntax.KindStringDelim || last.Start != 3 || last.End != 4 {
		t.Fatalf("closing = %s", last)
	}
}

func TestQuoteAt(t *testing.T) {
	cases := map[string]string{
		`"""x"""`: `"""`,
		`"x"`:     `"`,
		"`ls`":    "`",
		"'a'":     "'",
		"abc":     "",
	}
	for in, want := range cases {
		if got := quoteAt(in); got != want {
			t.Fatalf("quoteAt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHighlightWithGrammar(t *testing.T) {
	cfg := highlight.DefaultConfig()
	cfg.Parser = New()
	h, err := highlight.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := h.Annotations(highlight.Request{Text: "sum(1:8)"})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}

	want := map[face.Name]bool{
		face.Funcall:                      false,
		face.Number:                       false,
		face.Rainbow(face.FamilyParen, 1): false,
	}
	for _, a := range res.Annotations {
		if _, ok := want[a.Face]; ok {
			want[a.Face] = true
		}
		if a.Start < 0 || a.End > len("sum(1:8)") {
			t.Fatalf("annotation %s out of bounds", a)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("face %s missing from %v", name, res.Annotations)
		}
	}
}

func TestStrictParseReportsErrors(t *testing.T) {
	_, err := New().Parse("f(x", syntax.ParseOptions{})
	if err == nil {
		t.Skip("grammar recovered without an error node")
	}
	tree, err := New().Parse("f(x)", syntax.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse(valid): %v", err)
	}
	if tree.HasErrors() {
		t.Fatalf("valid input produced error nodes")
	}
}
