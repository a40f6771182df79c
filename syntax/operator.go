package syntax

import "strings"

var assignmentOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "//=": true,
	"\\=": true, "^=": true, "%=": true, "|=": true, "&=": true, "⊻=": true,
	"÷=": true, "<<=": true, ">>=": true, ">>>=": true, ":=": true, "≔": true,
	"$=": true, "~": true,
}

var comparisonOps = map[string]bool{
	"==": true, "!=": true, "===": true, "!==": true, "<": true, "<=": true,
	">": true, ">=": true, "≤": true, "≥": true, "≠": true, "≡": true,
	"≢": true, "<:": true, ">:": true, "in": true, "isa": true, "∈": true,
	"∉": true, "∋": true, "∌": true, "⊆": true, "⊈": true, "⊂": true,
	"⊄": true, "⊇": true, "⊃": true, "≈": true, "≉": true,
}

// ClassifyOperator maps operator text to its kind. Assignment is checked
// before comparison. A leading dot on an operator marks it FlagDotted.
func ClassifyOperator(text string) (Kind, Flags) {
	switch text {
	case "::":
		return KindDeclOp, 0
	case ",":
		return KindComma, 0
	case ";":
		return KindSemicolon, 0
	}

	var flags Flags
	op := text
	if len(op) > 1 && op[0] == '.' && !strings.HasPrefix(op, "..") {
		op = op[1:]
		flags |= FlagDotted
	}

	if assignmentOps[op] {
		return KindAssignment, flags
	}
	if comparisonOps[op] {
		return KindComparison, flags
	}
	return KindOperator, flags
}
