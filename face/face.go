// Package face holds the named styles the highlighter emits and the registry
// that flattens their inheritance into effective styles.
package face

import "strconv"

type Name string

const (
	Macro               Name = "julia_macro"
	Symbol              Name = "julia_symbol"
	SingletonIdentifier Name = "julia_singleton_identifier"
	Type                Name = "julia_type"
	Typedec             Name = "julia_typedec"
	Comment             Name = "julia_comment"
	String              Name = "julia_string"
	Regex               Name = "julia_regex"
	BackslashLiteral    Name = "julia_backslash_literal"
	StringDelim         Name = "julia_string_delim"
	CmdString           Name = "julia_cmdstring"
	Char                Name = "julia_char"
	CharDelim           Name = "julia_char_delim"
	Number              Name = "julia_number"
	Bool                Name = "julia_bool"
	Funcall             Name = "julia_funcall"
	Broadcast           Name = "julia_broadcast"
	Builtin             Name = "julia_builtin"
	Operator            Name = "julia_operator"
	Comparator          Name = "julia_comparator"
	Assignment          Name = "julia_assignment"
	Keyword             Name = "julia_keyword"
	Parentheses         Name = "julia_parentheses"
	UnpairedParentheses Name = "julia_unpaired_parentheses"
	Error               Name = "julia_error"
)

// RainbowDepth is the number of rainbow faces registered per delimiter family.
const RainbowDepth = 6

// Rainbow delimiter families.
const (
	FamilyParen   = "paren"
	FamilyBracket = "bracket"
	FamilyCurly   = "curly"
)

var rainbowNames = map[string][]Name{
	FamilyParen:   rainbowFamily(FamilyParen, RainbowDepth),
	FamilyBracket: rainbowFamily(FamilyBracket, RainbowDepth),
	FamilyCurly:   rainbowFamily(FamilyCurly, RainbowDepth),
}

func rainbowFamily(family string, n int) []Name {
	out := make([]Name, n)
	for i := range out {
		out[i] = Name("julia_rainbow_" + family + "_" + strconv.Itoa(i+1))
	}
	return out
}

// Rainbow returns the face for a 1-based rainbow index of a delimiter family.
func Rainbow(family string, index int) Name {
	if names, ok := rainbowNames[family]; ok && index >= 1 && index <= len(names) {
		return names[index-1]
	}
	return Name("julia_rainbow_" + family + "_" + strconv.Itoa(index))
}

// Defaults returns the built-in face definitions. Callers own the slice.
func Defaults() []Definition {
	defs := []Definition{
		{Name: Macro, Style: Style{Foreground: "magenta"}},
		{Name: Symbol, Style: Style{Foreground: "magenta"}},
		{Name: SingletonIdentifier, Inherit: []Name{Symbol}},
		{Name: Type, Style: Style{Foreground: "yellow"}},
		{Name: Typedec, Style: Style{Foreground: "bright_blue"}},
		{Name: Comment, Style: Style{Foreground: "grey"}},
		{Name: String, Style: Style{Foreground: "green"}},
		{Name: Regex, Inherit: []Name{String}},
		{Name: BackslashLiteral, Style: Style{Foreground: "magenta"}, Inherit: []Name{String}},
		{Name: StringDelim, Style: Style{Foreground: "bright_green"}},
		{Name: CmdString, Inherit: []Name{String}},
		{Name: Char, Inherit: []Name{String}},
		{Name: CharDelim, Inherit: []Name{StringDelim}},
		{Name: Number, Style: Style{Foreground: "bright_magenta"}},
		{Name: Bool, Inherit: []Name{Number}},
		{Name: Funcall, Style: Style{Foreground: "cyan"}},
		{Name: Broadcast, Style: Style{Foreground: "bright_blue", Bold: On}},
		{Name: Builtin, Style: Style{Foreground: "bright_blue"}},
		{Name: Operator, Style: Style{Foreground: "blue"}},
		{Name: Comparator, Inherit: []Name{Operator}},
		{Name: Assignment, Style: Style{Foreground: "bright_red"}},
		{Name: Keyword, Style: Style{Foreground: "red"}},
		{Name: Parentheses},
		{Name: UnpairedParentheses, Inherit: []Name{Error, Parentheses}},
		{Name: Error, Style: Style{Background: "red"}},

		{Name: Rainbow(FamilyParen, 1), Style: Style{Foreground: "bright_green"}, Inherit: []Name{Parentheses}},
		{Name: Rainbow(FamilyParen, 2), Style: Style{Foreground: "bright_blue"}, Inherit: []Name{Parentheses}},
		{Name: Rainbow(FamilyParen, 3), Style: Style{Foreground: "bright_red"}, Inherit: []Name{Parentheses}},

		{Name: Rainbow(FamilyBracket, 1), Style: Style{Foreground: "blue"}, Inherit: []Name{Parentheses}},
		{Name: Rainbow(FamilyBracket, 2), Style: Style{Foreground: "bright_magenta"}, Inherit: []Name{Parentheses}},

		{Name: Rainbow(FamilyCurly, 1), Style: Style{Foreground: "bright_yellow"}, Inherit: []Name{Parentheses}},
		{Name: Rainbow(FamilyCurly, 2), Style: Style{Foreground: "yellow"}, Inherit: []Name{Parentheses}},
	}

	// parens repeat with period 3, brackets and curlies with period 2
	for i := 4; i <= RainbowDepth; i++ {
		defs = append(defs, Definition{Name: Rainbow(FamilyParen, i), Inherit: []Name{Rainbow(FamilyParen, i-3)}})
	}
	for _, family := range []string{FamilyBracket, FamilyCurly} {
		for i := 3; i <= RainbowDepth; i++ {
			defs = append(defs, Definition{Name: Rainbow(family, i), Inherit: []Name{Rainbow(family, (i-1)%2+1)}})
		}
	}
	return defs
}
