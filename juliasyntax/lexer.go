// Package juliasyntax turns Julia source into a best-effort syntax.Tree.
// Tokens come from a chroma RegexLexer; a small recovering builder groups
// them into delimiter, literal and call nodes.
package juliasyntax

import (
	"fmt"
	"unicode/utf8"

	chroma "github.com/alecthomas/chroma/v2"

	"juliahl/syntax"
)

const (
	identChar = `[\p{L}\p{N}_′]|!(?!=)`
	ident     = `[\p{L}_](?:` + identChar + `)*`
	notIdent  = `(?![\p{L}\p{N}_!′])`

	escapeSeq = `\\(?:u[0-9a-fA-F]{1,4}|U[0-9a-fA-F]{1,8}|x[0-9a-fA-F]{1,2}|[0-7]{1,3}|[\s\S])`

	keywords = `(?:baremodule|begin|break|catch|const|continue|do|elseif|else|end|export|finally|for|function|global|if|import|let|local|macro|module|quote|return|struct|try|using|while|where)` + notIdent

	operators = `>>>=|===|!==|>>>|<<=|>>=|//=|->|=>|==|!=|<=|>=|<:|>:|\+=|-=|\*=|/=|\\=|\^=|%=|\|=|&=|÷=|⊻=|\$=|:=|&&|\|\||<<|>>|//|\|>|<\||[-+*/\\^%<>=!&|~?$÷≤≥≠≡≢∈∉⊆⊂⊇⊃∪∩√∛⊻∘×⋅≈]`
)

var juliaLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Julia (juliahl)",
		Aliases:   []string{"juliahl"},
		Filenames: []string{"*.jl"},
		MimeTypes: []string{"text/x-julia"},
	},
	juliaRules,
)

func juliaRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Whitespace, Mutator: nil},
			{Pattern: `#=`, Type: chroma.CommentMultiline, Mutator: chroma.Push("blockcomment")},
			{Pattern: `#[^\n]*`, Type: chroma.CommentSingle, Mutator: nil},

			// literals
			{Pattern: `"""`, Type: chroma.LiteralStringDelimiter, Mutator: chroma.Push("tqstring")},
			{Pattern: `"`, Type: chroma.LiteralStringDelimiter, Mutator: chroma.Push("string")},
			{Pattern: "```", Type: chroma.LiteralStringDelimiter, Mutator: chroma.Push("tqcommand")},
			{Pattern: "`", Type: chroma.LiteralStringDelimiter, Mutator: chroma.Push("command")},
			{Pattern: `(r)(""")`, Type: chroma.ByGroups(chroma.LiteralStringAffix, chroma.LiteralStringDelimiter), Mutator: chroma.Push("tqregex")},
			{Pattern: `(r)(")`, Type: chroma.ByGroups(chroma.LiteralStringAffix, chroma.LiteralStringDelimiter), Mutator: chroma.Push("regex")},
			{Pattern: `(` + ident + `)(""")`, Type: chroma.ByGroups(chroma.LiteralStringAffix, chroma.LiteralStringDelimiter), Mutator: chroma.Push("tqrawstring")},
			{Pattern: `(` + ident + `)(")`, Type: chroma.ByGroups(chroma.LiteralStringAffix, chroma.LiteralStringDelimiter), Mutator: chroma.Push("rawstring")},
			{Pattern: `(?<![\p{L}\p{N}_!′\)\]\}'.])(')(\\(?:u[0-9a-fA-F]{1,8}|U[0-9a-fA-F]{1,8}|x[0-9a-fA-F]{1,2}|[0-7]{1,3}|.)|[^\\'\n])(')`, Type: chroma.ByGroups(chroma.LiteralStringDelimiter, chroma.LiteralStringChar, chroma.LiteralStringDelimiter), Mutator: nil},
			{Pattern: `(?<![\p{L}\p{N}_!′\)\]\}'"` + "`" + `:.<>]):` + ident, Type: chroma.LiteralStringSymbol, Mutator: nil},

			// names
			{Pattern: `@(?:` + ident + `(?:\.` + ident + `)*|\.)`, Type: chroma.NameDecorator, Mutator: nil},
			{Pattern: `(mutable)(\s+)(struct)` + notIdent, Type: chroma.ByGroups(chroma.Keyword, chroma.Whitespace, chroma.Keyword), Mutator: nil},
			{Pattern: `(abstract|primitive)(\s+)(type)` + notIdent, Type: chroma.ByGroups(chroma.Keyword, chroma.Whitespace, chroma.Keyword), Mutator: nil},
			{Pattern: keywords, Type: chroma.Keyword, Mutator: nil},
			{Pattern: `(?:true|false)` + notIdent, Type: chroma.KeywordConstant, Mutator: nil},
			{Pattern: `(?:in|isa)` + notIdent, Type: chroma.OperatorWord, Mutator: nil},

			// numbers
			{Pattern: `0x[0-9a-fA-F](?:_?[0-9a-fA-F])*`, Type: chroma.LiteralNumberHex, Mutator: nil},
			{Pattern: `0b[01](?:_?[01])*`, Type: chroma.LiteralNumberBin, Mutator: nil},
			{Pattern: `0o[0-7](?:_?[0-7])*`, Type: chroma.LiteralNumberOct, Mutator: nil},
			{Pattern: `(?:\d(?:_?\d)*\.\d(?:_?\d)*|\.\d(?:_?\d)*)(?:[eEf][+-]?\d+)?|\d(?:_?\d)*[eEf][+-]?\d+|\d(?:_?\d)*\.(?![.\p{L}_\d])`, Type: chroma.LiteralNumberFloat, Mutator: nil},
			{Pattern: `\d(?:_?\d)*`, Type: chroma.LiteralNumberInteger, Mutator: nil},

			{Pattern: ident, Type: chroma.Name, Mutator: nil},

			// punctuation and operators
			{Pattern: `[()\[\]{},;]`, Type: chroma.Punctuation, Mutator: nil},
			{Pattern: `\.\.\.`, Type: chroma.Operator, Mutator: nil},
			{Pattern: `::`, Type: chroma.Operator, Mutator: nil},
			{Pattern: `\.(?:` + operators + `)`, Type: chroma.Operator, Mutator: nil},
			{Pattern: operators, Type: chroma.Operator, Mutator: nil},
			{Pattern: `[:.']`, Type: chroma.Operator, Mutator: nil},
		},
		"string": quoted(
			chroma.Rule{Pattern: `"`, Type: chroma.LiteralStringDelimiter, Mutator: chroma.Pop(1)},
			chroma.Rule{Pattern: `[^"\\$]+`, Type: chroma.LiteralString, Mutator: nil},
			chroma.Rule{Pattern: `[\\$]`, Type: chroma.LiteralString, Mutator: nil},
		),
		"tqstring": quoted(
			chroma.Rule{Pattern: `"""`, Type: chroma.LiteralStringDelimiter, Mutator: chroma.Pop(1)},
			chroma.Rule{Pattern: `[^"\\$]+`, Type: chroma.LiteralString, Mutator: nil},
			chroma.Rule{Pattern: `["\\$]`, Type: chroma.LiteralString, Mutator: nil},
		),
		"command": quoted(
			chroma.Rule{Pattern: "`", Type: chroma.LiteralStringDelimiter, Mutator: chroma.Pop(1)},
			chroma.Rule{Pattern: "[^`\\\\$]+", Type: chroma.LiteralStringBacktick, Mutator: nil},
			chroma.Rule{Pattern: `[\\$]`, Type: chroma.LiteralStringBacktick, Mutator: nil},
		),
		"tqcommand": quoted(
			chroma.Rule{Pattern: "```", Type: chroma.LiteralStringDelimiter, Mutator: chroma.Pop(1)},
			chroma.Rule{Pattern: "[^`\\\\$]+", Type: chroma.LiteralStringBacktick, Mutator: nil},
			chroma.Rule{Pattern: "[`\\\\$]", Type: chroma.LiteralStringBacktick, Mutator: nil},
		),
		"regex": {
			{Pattern: `(")([imsxa]*)`, Type: chroma.ByGroups(chroma.LiteralStringDelimiter, chroma.LiteralStringRegex), Mutator: chroma.Pop(1)},
			{Pattern: `\\[\s\S]`, Type: chroma.LiteralStringRegex, Mutator: nil},
			{Pattern: `[^"\\]+`, Type: chroma.LiteralStringRegex, Mutator: nil},
		},
		"tqregex": {
			{Pattern: `(""")([imsxa]*)`, Type: chroma.ByGroups(chroma.LiteralStringDelimiter, chroma.LiteralStringRegex), Mutator: chroma.Pop(1)},
			{Pattern: `\\[\s\S]`, Type: chroma.LiteralStringRegex, Mutator: nil},
			{Pattern: `[^"\\]+`, Type: chroma.LiteralStringRegex, Mutator: nil},
			{Pattern: `"`, Type: chroma.LiteralStringRegex, Mutator: nil},
		},
		"rawstring": {
			{Pattern: `\\"`, Type: chroma.LiteralString, Mutator: nil},
			{Pattern: `"`, Type: chroma.LiteralStringDelimiter, Mutator: chroma.Pop(1)},
			{Pattern: `[^"\\]+`, Type: chroma.LiteralString, Mutator: nil},
			{Pattern: `\\`, Type: chroma.LiteralString, Mutator: nil},
		},
		"tqrawstring": {
			{Pattern: `"""`, Type: chroma.LiteralStringDelimiter, Mutator: chroma.Pop(1)},
			{Pattern: `[^"]+`, Type: chroma.LiteralString, Mutator: nil},
			{Pattern: `"`, Type: chroma.LiteralString, Mutator: nil},
		},
		"interp": {
			{Pattern: `\(`, Type: chroma.Punctuation, Mutator: chroma.Push("interp")},
			{Pattern: `\)`, Type: chroma.Punctuation, Mutator: chroma.Pop(1)},
			chroma.Include("root"),
		},
		"blockcomment": {
			{Pattern: `#=`, Type: chroma.CommentMultiline, Mutator: chroma.Push("blockcomment")},
			{Pattern: `=#`, Type: chroma.CommentMultiline, Mutator: chroma.Pop(1)},
			{Pattern: `[^#=]+`, Type: chroma.CommentMultiline, Mutator: nil},
			{Pattern: `[#=]`, Type: chroma.CommentMultiline, Mutator: nil},
		},
	}
}

// quoted builds an interpolating string state: the closing rule first, then
// escapes and $ interpolation, then the content rules.
func quoted(closing chroma.Rule, content ...chroma.Rule) []chroma.Rule {
	rules := []chroma.Rule{
		closing,
		{Pattern: escapeSeq, Type: chroma.LiteralStringEscape, Mutator: nil},
		{Pattern: `(\$)(\()`, Type: chroma.ByGroups(chroma.LiteralStringInterpol, chroma.Punctuation), Mutator: chroma.Push("interp")},
		{Pattern: `(\$)(` + ident + `)`, Type: chroma.ByGroups(chroma.LiteralStringInterpol, chroma.Name), Mutator: nil},
	}
	return append(rules, content...)
}

// Token is a lexed leaf with absolute byte offsets.
type Token struct {
	Kind  syntax.Kind
	Start int
	End   int
	Flags syntax.Flags
	Text  string
}

// mergeable kinds are coalesced when chroma splits them over several rules.
var mergeable = map[syntax.Kind]bool{
	syntax.KindWhitespace: true,
	syntax.KindComment:    true,
	syntax.KindString:     true,
	syntax.KindCmdString:  true,
	syntax.KindRegex:      true,
	syntax.KindError:      true,
}

// Lex tokenises text. Offsets always add up to len(text); input the rules
// do not recognise comes back as KindError tokens.
func Lex(text string) ([]Token, error) {
	it, err := juliaLexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}

	out := make([]Token, 0, len(text)/3+1)
	offset := 0
	push := func(kind syntax.Kind, flags syntax.Flags, end int) {
		start := offset
		offset = end
		if n := len(out); n > 0 && mergeable[kind] && out[n-1].Kind == kind && out[n-1].End == start {
			out[n-1].End = end
			out[n-1].Text = text[out[n-1].Start:end]
			return
		}
		out = append(out, Token{Kind: kind, Start: start, End: end, Flags: flags, Text: text[start:end]})
	}
	for tok := it(); tok != chroma.EOF; tok = it() {
		if tok.Value == "" || offset >= len(text) {
			continue
		}
		kind, flags := tokenKind(tok.Type, tok.Value)
		push(kind, flags, advance(text, offset, tok.Value))
	}
	if offset < len(text) {
		push(syntax.KindError, 0, len(text))
	}
	return out, nil
}

// advance returns the offset in text just past value, which chroma produced
// from text[offset:]. chroma works on runes, so each invalid byte comes
// back as one U+FFFD; stepping by the decoded width of the source keeps the
// offsets on the original bytes.
func advance(text string, offset int, value string) int {
	for range utf8.RuneCountInString(value) {
		if offset >= len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += size
	}
	return offset
}

func tokenKind(tt chroma.TokenType, value string) (syntax.Kind, syntax.Flags) {
	switch tt {
	case chroma.Whitespace, chroma.Text:
		return syntax.KindWhitespace, 0
	case chroma.CommentSingle, chroma.CommentMultiline:
		return syntax.KindComment, 0
	case chroma.Keyword:
		return syntax.KindKeyword, 0
	case chroma.KeywordConstant:
		return syntax.KindBool, 0
	case chroma.Name:
		return syntax.KindIdentifier, 0
	case chroma.NameDecorator:
		return syntax.KindMacroName, 0
	case chroma.LiteralNumberInteger, chroma.LiteralNumberHex, chroma.LiteralNumberBin, chroma.LiteralNumberOct:
		return syntax.KindInteger, 0
	case chroma.LiteralNumberFloat:
		return syntax.KindFloat, 0
	case chroma.LiteralString:
		return syntax.KindString, 0
	case chroma.LiteralStringBacktick:
		return syntax.KindCmdString, 0
	case chroma.LiteralStringRegex:
		return syntax.KindRegex, 0
	case chroma.LiteralStringChar:
		return syntax.KindChar, 0
	case chroma.LiteralStringEscape:
		return syntax.KindEscape, 0
	case chroma.LiteralStringAffix:
		return syntax.KindStringMacro, 0
	case chroma.LiteralStringSymbol:
		return syntax.KindSymbol, 0
	case chroma.LiteralStringDelimiter:
		if value == "'" {
			return syntax.KindCharDelim, 0
		}
		return syntax.KindStringDelim, 0
	case chroma.LiteralStringInterpol, chroma.Operator, chroma.OperatorWord:
		return syntax.ClassifyOperator(value)
	case chroma.Punctuation:
		switch value {
		case "(":
			return syntax.KindLParen, 0
		case ")":
			return syntax.KindRParen, 0
		case "[":
			return syntax.KindLBracket, 0
		case "]":
			return syntax.KindRBracket, 0
		case "{":
			return syntax.KindLBrace, 0
		case "}":
			return syntax.KindRBrace, 0
		}
		return syntax.ClassifyOperator(value)
	}
	return syntax.KindError, 0
}
