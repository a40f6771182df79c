// Package syntax defines the tree shape the highlighter consumes: a closed
// set of node kinds, byte-spanned nodes and the parser contract.
package syntax

type Kind uint16

const (
	KindInvalid Kind = iota

	// trivia
	KindWhitespace
	KindComment

	// delimiters
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindLBrace
	KindRBrace

	// names
	KindIdentifier
	KindMacroName
	KindStringMacro
	KindSymbol

	// literals
	KindInteger
	KindFloat
	KindBool
	KindString
	KindChar
	KindCmdString
	KindRegex
	KindEscape
	KindStringDelim
	KindCharDelim

	// operators and punctuation
	KindOperator
	KindComparison
	KindAssignment
	KindDeclOp
	KindComma
	KindSemicolon

	KindKeyword
	KindError

	// containers
	KindToplevel
	KindBlock
	KindCall
	KindDotCall
	KindField
	KindParametric
	KindParens
	KindBrackets
	KindBraces
	KindStringLiteral
	KindCharLiteral
	KindCmdLiteral
	KindRegexLiteral

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:       "invalid",
	KindWhitespace:    "whitespace",
	KindComment:       "comment",
	KindLParen:        "(",
	KindRParen:        ")",
	KindLBracket:      "[",
	KindRBracket:      "]",
	KindLBrace:        "{",
	KindRBrace:        "}",
	KindIdentifier:    "identifier",
	KindMacroName:     "macro_name",
	KindStringMacro:   "string_macro",
	KindSymbol:        "symbol",
	KindInteger:       "integer",
	KindFloat:         "float",
	KindBool:          "bool",
	KindString:        "string",
	KindChar:          "char",
	KindCmdString:     "cmdstring",
	KindRegex:         "regex",
	KindEscape:        "escape",
	KindStringDelim:   "string_delim",
	KindCharDelim:     "char_delim",
	KindOperator:      "operator",
	KindComparison:    "comparison",
	KindAssignment:    "assignment",
	KindDeclOp:        "::",
	KindComma:         ",",
	KindSemicolon:     ";",
	KindKeyword:       "keyword",
	KindError:         "error",
	KindToplevel:      "toplevel",
	KindBlock:         "block",
	KindCall:          "call",
	KindDotCall:       "dotcall",
	KindField:         "field",
	KindParametric:    "parametric",
	KindParens:        "parens",
	KindBrackets:      "brackets",
	KindBraces:        "braces",
	KindStringLiteral: "string_literal",
	KindCharLiteral:   "char_literal",
	KindCmdLiteral:    "cmd_literal",
	KindRegexLiteral:  "regex_literal",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// IsTrivia reports whether k carries no syntactic meaning of its own.
func (k Kind) IsTrivia() bool {
	return k == KindWhitespace || k == KindComment
}

func (k Kind) IsDelimiter() bool {
	return k >= KindLParen && k <= KindRBrace
}

func (k Kind) IsOperator() bool {
	return k >= KindOperator && k <= KindDeclOp
}

func (k Kind) IsContainer() bool {
	return k >= KindToplevel && k < kindCount
}

// IsLiteralContainer reports whether k wraps the pieces of a quoted literal.
func (k Kind) IsLiteralContainer() bool {
	return k >= KindStringLiteral && k <= KindRegexLiteral
}
