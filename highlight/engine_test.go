package highlight

import (
	"reflect"
	"testing"

	"juliahl/face"
	"juliahl/syntax"
)

func annotate(t *testing.T, text string, syntaxErrors bool) Result {
	t.Helper()

	res, err := Default().Annotations(Request{Text: text, SyntaxErrors: syntaxErrors})
	if err != nil {
		t.Fatalf("Annotations(%q): %v", text, err)
	}
	return res
}

// facesAt returns the faces emitted for exactly [start, end), in order.
func facesAt(res Result, start, end int) []face.Name {
	var out []face.Name
	for _, a := range res.Annotations {
		if a.Start == start && a.End == end {
			out = append(out, a.Face)
		}
	}
	return out
}

func hasFace(res Result, name face.Name) bool {
	for _, a := range res.Annotations {
		if a.Face == name {
			return true
		}
	}
	return false
}

func TestSumExample(t *testing.T) {
	res := annotate(t, "sum(1:8)", false)

	want := []Annotation{
		{Start: 0, End: 3, Face: face.Funcall},
		{Start: 3, End: 4, Face: "julia_rainbow_paren_1"},
		{Start: 4, End: 5, Face: face.Number},
		{Start: 5, End: 6, Face: face.Operator},
		{Start: 6, End: 7, Face: face.Number},
		{Start: 7, End: 8, Face: "julia_rainbow_paren_1"},
	}
	if !reflect.DeepEqual(res.Annotations, want) {
		t.Fatalf("annotations =\n  %v\nwant\n  %v", res.Annotations, want)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestUnmatchedCloser(t *testing.T) {
	res := annotate(t, ")", false)
	want := []face.Name{face.Parentheses, face.UnpairedParentheses}
	if got := facesAt(res, 0, 1); !reflect.DeepEqual(got, want) {
		t.Fatalf("faces of ) = %v, want %v", got, want)
	}

	cfg := DefaultConfig()
	cfg.Unmatched = false
	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err = h.Annotations(Request{Text: ")"})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	if got := facesAt(res, 0, 1); !reflect.DeepEqual(got, []face.Name{"julia_rainbow_paren_6"}) {
		t.Fatalf("faces of ) without unmatched marking = %v", got)
	}
}

func TestUnclosedOpener(t *testing.T) {
	res := annotate(t, "f(x", false)
	want := []face.Name{"julia_rainbow_paren_1", face.UnpairedParentheses}
	if got := facesAt(res, 1, 2); !reflect.DeepEqual(got, want) {
		t.Fatalf("faces of ( = %v, want %v", got, want)
	}
}

func TestRainbowCycling(t *testing.T) {
	text := "(((((((x)))))))"
	res := annotate(t, text, false)

	for i := 0; i < 7; i++ {
		want := face.Rainbow(face.FamilyParen, i%face.RainbowDepth+1)
		if got := facesAt(res, i, i+1); !reflect.DeepEqual(got, []face.Name{want}) {
			t.Fatalf("opener at depth %d = %v, want %s", i, got, want)
		}
		closeAt := len(text) - 1 - i
		if got := facesAt(res, closeAt, closeAt+1); !reflect.DeepEqual(got, []face.Name{want}) {
			t.Fatalf("closer matching depth %d = %v, want %s", i, got, want)
		}
	}

	if facesAt(res, 6, 7)[0] != facesAt(res, 0, 1)[0] {
		t.Fatalf("depth 6 should reuse the depth 0 face")
	}
}

func TestRainbowFamiliesAreIndependent(t *testing.T) {
	res := annotate(t, "[{(x)}]", false)
	tests := []struct {
		at   int
		want face.Name
	}{
		{0, "julia_rainbow_bracket_1"},
		{1, "julia_rainbow_curly_1"},
		{2, "julia_rainbow_paren_1"},
		{4, "julia_rainbow_paren_1"},
		{5, "julia_rainbow_curly_1"},
		{6, "julia_rainbow_bracket_1"},
	}
	for _, tt := range tests {
		if got := facesAt(res, tt.at, tt.at+1); !reflect.DeepEqual(got, []face.Name{tt.want}) {
			t.Fatalf("faces at %d = %v, want %s", tt.at, got, tt.want)
		}
	}
}

func TestRainbowDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rainbow = false
	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := h.Annotations(Request{Text: "[(x)]"})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	for _, at := range []int{0, 1, 3, 4} {
		if got := facesAt(res, at, at+1); !reflect.DeepEqual(got, []face.Name{face.Parentheses}) {
			t.Fatalf("faces at %d = %v, want parentheses", at, got)
		}
	}
}

func TestIdentifierClassification(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		want       []face.Name
	}{
		{"builtin callee", "typeof(x)", 0, 6, []face.Name{face.Builtin, face.Funcall}},
		{"builtin value", "f(typeof)", 2, 8, []face.Name{face.Builtin}},
		{"base type callee", "Int(x)", 0, 3, []face.Name{face.Type, face.Funcall}},
		{"base type value", "T = Int", 4, 7, []face.Name{face.Type}},
		{"singleton", "x = nothing", 4, 11, []face.Name{face.SingletonIdentifier}},
		{"singleton callee", "missing(1)", 0, 7, []face.Name{face.SingletonIdentifier}},
		{"plain callee", "foo(1)", 0, 3, []face.Name{face.Funcall}},
		{"plain name", "foo + 1", 0, 3, nil},
		{"typedec", "x::Int", 3, 6, []face.Name{face.Typedec}},
		{"typedec user type", "x::Foo", 3, 6, []face.Name{face.Typedec}},
		{"typedec parametric head", "x::Vector{Int}", 3, 9, []face.Name{face.Typedec}},
		{"typedec parameter", "x::Vector{Int}", 10, 13, []face.Name{face.Type}},
		{"typedec qualified", "x::Base.Int", 8, 11, []face.Name{face.Typedec}},
		{"qualifier", "x::Base.Int", 3, 7, nil},
		{"return type", "f(x)::Bool", 6, 10, []face.Name{face.Typedec}},
		{"field callee", "Base.sum(x)", 5, 8, []face.Name{face.Funcall}},
		{"field receiver", "Base.sum(x)", 0, 4, nil},
		{"parametric callee", "Vector{Int}(undef, 3)", 0, 6, []face.Name{face.Type, face.Funcall}},
		{"dotcall", "f.(x)", 0, 1, []face.Name{face.Funcall}},
		{"curried call", "f(x)(y)", 0, 1, []face.Name{face.Funcall}},
		{"spaced call is not a call", "f (x)", 0, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := annotate(t, tt.text, false)
			if got := facesAt(res, tt.start, tt.end); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("faces of %q in %q = %v, want %v", tt.text[tt.start:tt.end], tt.text, got, tt.want)
			}
		})
	}
}

func TestLeafFaces(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		want       []face.Name
	}{
		{"integer", "x = 42", 4, 6, []face.Name{face.Number}},
		{"float", "1.5", 0, 3, []face.Name{face.Number}},
		{"bool", "true", 0, 4, []face.Name{face.Bool}},
		{"keyword", "return x", 0, 6, []face.Name{face.Keyword}},
		{"comment", "x # note", 2, 8, []face.Name{face.Comment}},
		{"macro", "@show x", 0, 5, []face.Name{face.Macro}},
		{"symbol", "f(:a)", 2, 4, []face.Name{face.Symbol}},
		{"assignment", "x = 1", 2, 3, []face.Name{face.Assignment}},
		{"update assignment", "x += 1", 2, 4, []face.Name{face.Assignment}},
		{"comparison", "a == b", 2, 4, []face.Name{face.Comparator}},
		{"word comparison", "a in b", 2, 4, []face.Name{face.Comparator}},
		{"declaration operator", "x::Int", 1, 3, []face.Name{face.Operator}},
		{"dotted operator", "a .+ b", 2, 4, []face.Name{face.Operator, face.Broadcast}},
		{"dotted assignment", "a .= b", 2, 4, []face.Name{face.Assignment, face.Broadcast}},
		{"dotcall dot", "f.(x)", 1, 2, []face.Name{face.Operator, face.Broadcast}},
		{"field dot", "a.b", 1, 2, []face.Name{face.Operator}},
		{"comma", "(a, b)", 2, 3, nil},
		{"string open", `"a\n"`, 0, 1, []face.Name{face.String, face.StringDelim}},
		{"string body", `"a\n"`, 1, 2, []face.Name{face.String}},
		{"escape", `"a\n"`, 2, 4, []face.Name{face.BackslashLiteral}},
		{"string close", `"a\n"`, 4, 5, []face.Name{face.String, face.StringDelim}},
		{"interpolation", `"$x"`, 1, 2, []face.Name{face.Operator}},
		{"char delim", "'c'", 0, 1, []face.Name{face.Char, face.CharDelim}},
		{"char body", "'c'", 1, 2, []face.Name{face.Char}},
		{"command delim", "`ls`", 0, 1, []face.Name{face.CmdString, face.StringDelim}},
		{"command body", "`ls`", 1, 3, []face.Name{face.CmdString}},
		{"regex prefix", `r"a"i`, 0, 1, []face.Name{face.Macro}},
		{"regex delim", `r"a"i`, 1, 2, []face.Name{face.Regex, face.StringDelim}},
		{"regex body", `r"a"i`, 2, 3, []face.Name{face.Regex}},
		{"regex flags", `r"a"i`, 4, 5, []face.Name{face.Regex}},
		{"string macro", `raw"a"`, 0, 3, []face.Name{face.Macro}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := annotate(t, tt.text, false)
			if got := facesAt(res, tt.start, tt.end); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("faces of %q in %q = %v, want %v", tt.text[tt.start:tt.end], tt.text, got, tt.want)
			}
		})
	}
}

func TestSyntaxErrorsToggle(t *testing.T) {
	text := "f(x"

	on := annotate(t, text, true)
	if got := facesAt(on, 1, 3); !reflect.DeepEqual(got, []face.Name{face.Error}) {
		t.Fatalf("error face over the unclosed call = %v", got)
	}

	off := annotate(t, text, false)
	if hasFace(off, face.Error) {
		t.Fatalf("error face emitted without syntax errors: %v", off.Annotations)
	}

	// the children of an error node keep their faces
	if got := facesAt(on, 2, 3); len(got) != 0 {
		t.Fatalf("plain identifier in error node got %v", got)
	}
	if got := facesAt(on, 1, 2); !reflect.DeepEqual(got, []face.Name{"julia_rainbow_paren_1", face.UnpairedParentheses}) {
		t.Fatalf("opener inside error node = %v", got)
	}
}

func TestErrorLeaf(t *testing.T) {
	res := annotate(t, "§", true)
	if got := facesAt(res, 0, len("§")); !reflect.DeepEqual(got, []face.Name{face.Error}) {
		t.Fatalf("unknown input faces = %v, want error", got)
	}
	if len(annotate(t, "§", false).Annotations) != 0 {
		t.Fatalf("unknown input highlighted without syntax errors")
	}
}

func TestErrorLeafInsideErrorNode(t *testing.T) {
	tree := &syntax.Tree{Root: &syntax.Node{Kind: syntax.KindToplevel, End: 1, Children: []*syntax.Node{
		{Kind: syntax.KindError, Start: 0, End: 1, Children: []*syntax.Node{
			{Kind: syntax.KindError, Start: 0, End: 1},
		}},
	}}}

	res, err := Default().Annotations(Request{Text: "\xff", Tree: tree, SyntaxErrors: true})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	if got := facesAt(res, 0, 1); !reflect.DeepEqual(got, []face.Name{face.Error}) {
		t.Fatalf("faces = %v, want a single error face", got)
	}
}

func TestInvalidUTF8KeepsOffsets(t *testing.T) {
	res := annotate(t, "\xff\xfe(", false)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	if got := facesAt(res, 2, 3); !reflect.DeepEqual(got, []face.Name{"julia_rainbow_paren_1", face.UnpairedParentheses}) {
		t.Fatalf("opener after invalid bytes = %v, all %v", got, res.Annotations)
	}

	text := "\xff sum(1:8)"
	res = annotate(t, text, true)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	if got := facesAt(res, 2, 5); !reflect.DeepEqual(got, []face.Name{face.Funcall}) {
		t.Fatalf("sum after invalid byte = %v, all %v", got, res.Annotations)
	}
	if got := facesAt(res, 0, 1); !reflect.DeepEqual(got, []face.Name{face.Error}) {
		t.Fatalf("invalid byte = %v", got)
	}
}

func TestInconsistentSpansAreSkipped(t *testing.T) {
	text := "a + 1"
	tree := &syntax.Tree{Root: &syntax.Node{Kind: syntax.KindToplevel, End: 5, Children: []*syntax.Node{
		{Kind: syntax.KindIdentifier, Start: 0, End: 1},
		{Kind: syntax.KindOperator, Start: 2, End: 3},
		{Kind: syntax.KindInteger, Start: 4, End: 9},
	}}}

	res, err := Default().Annotations(Request{Text: text, Tree: tree})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	if hasFace(res, face.Number) {
		t.Fatalf("out of range child was annotated: %v", res.Annotations)
	}
	if !hasFace(res, face.Operator) {
		t.Fatalf("consistent siblings lost their faces: %v", res.Annotations)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagSpan || res.Diagnostics[0].Start != 4 {
		t.Fatalf("diagnostics = %v, want one span diagnostic at 4", res.Diagnostics)
	}
}

func TestOverlappingSiblingIsSkipped(t *testing.T) {
	text := "abc"
	tree := &syntax.Tree{Root: &syntax.Node{Kind: syntax.KindToplevel, End: 3, Children: []*syntax.Node{
		{Kind: syntax.KindInteger, Start: 0, End: 3},
		{Kind: syntax.KindInteger, Start: 1, End: 2},
	}}}

	res, err := Default().Annotations(Request{Text: text, Tree: tree})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	if len(res.Annotations) != 1 || len(res.Diagnostics) != 1 {
		t.Fatalf("annotations %v diagnostics %v", res.Annotations, res.Diagnostics)
	}
}

func TestShortRootIsReported(t *testing.T) {
	tree := &syntax.Tree{Root: &syntax.Node{Kind: syntax.KindToplevel, End: 3, Children: []*syntax.Node{
		{Kind: syntax.KindInteger, Start: 0, End: 3},
	}}}
	res, err := Default().Annotations(Request{Text: "123 45", Tree: tree})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagCoverage {
		t.Fatalf("diagnostics = %v, want coverage", res.Diagnostics)
	}

	tree.Root.End = 40
	res, err = Default().Annotations(Request{Text: "123", Tree: tree})
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}
	if len(res.Annotations) != 0 || len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagSpan {
		t.Fatalf("oversized root: annotations %v diagnostics %v", res.Annotations, res.Diagnostics)
	}
}

func TestWellFormedInputsConsumeWholeText(t *testing.T) {
	inputs := []string{
		"",
		"function f(x::Vector{Int})\n    println(\"n = $(length(x))\") # log\nend\n",
		"struct P{T} <: AbstractPoint\n    x::T\nend",
		"@time map(x -> x^2, 1:10)",
		"x .= f.(y) .+ 1",
		"a[(]) + }",
		"#= block\n#= nested =# =# 'a' `echo $x` r\"\\d+\"m",
	}
	for _, text := range inputs {
		res := annotate(t, text, true)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("%q: diagnostics %v", text, res.Diagnostics)
		}
		for _, a := range res.Annotations {
			if a.Start < 0 || a.End > len(text) || a.Start >= a.End {
				t.Fatalf("%q: annotation %s out of bounds", text, a)
			}
		}
	}
}

func TestClassifyDelimiter(t *testing.T) {
	tests := []struct {
		kind  syntax.Kind
		delta int
		delim Delim
	}{
		{syntax.KindLParen, 1, DelimParen},
		{syntax.KindRParen, -1, DelimParen},
		{syntax.KindLBracket, 1, DelimBracket},
		{syntax.KindRBracket, -1, DelimBracket},
		{syntax.KindLBrace, 1, DelimCurly},
		{syntax.KindRBrace, -1, DelimCurly},
		{syntax.KindIdentifier, 0, DelimNone},
		{syntax.KindParens, 0, DelimNone},
	}
	for _, tt := range tests {
		delta, d := ClassifyDelimiter(tt.kind)
		if delta != tt.delta || d != tt.delim {
			t.Fatalf("ClassifyDelimiter(%s) = (%d, %s), want (%d, %s)", tt.kind, delta, d, tt.delta, tt.delim)
		}
	}
}

func TestTables(t *testing.T) {
	if !IsSingleton("nothing") || !IsSingleton("missing") || IsSingleton("Nothing") {
		t.Fatalf("singleton table mismatch")
	}
	if !IsBaseType("Int") || IsBaseType("int") {
		t.Fatalf("base type lookup is not exact")
	}
	if !IsBuiltin("typeof") || IsBuiltin("sum") {
		t.Fatalf("builtin table mismatch")
	}
}
