package highlight

import (
	"juliahl/face"
	"juliahl/syntax"
)

// Delim is the family of a bracketing delimiter.
type Delim uint8

const (
	DelimNone Delim = iota
	DelimParen
	DelimBracket
	DelimCurly

	delimCount
)

func (d Delim) String() string {
	switch d {
	case DelimParen:
		return face.FamilyParen
	case DelimBracket:
		return face.FamilyBracket
	case DelimCurly:
		return face.FamilyCurly
	}
	return "none"
}

// ClassifyDelimiter returns the nesting change caused by k and its family.
// Anything that is not a bracket is (0, DelimNone).
func ClassifyDelimiter(k syntax.Kind) (int, Delim) {
	switch k {
	case syntax.KindLParen:
		return 1, DelimParen
	case syntax.KindRParen:
		return -1, DelimParen
	case syntax.KindLBracket:
		return 1, DelimBracket
	case syntax.KindRBracket:
		return -1, DelimBracket
	case syntax.KindLBrace:
		return 1, DelimCurly
	case syntax.KindRBrace:
		return -1, DelimCurly
	}
	return 0, DelimNone
}
