package face

import (
	"fmt"
	"sort"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// themeSources lists, per face, the chroma token types whose colour is used
// when a theme is applied. The first type with a colour wins.
var themeSources = []struct {
	name       Name
	background bool
	types      []chroma.TokenType
}{
	{name: Keyword, types: []chroma.TokenType{chroma.Keyword}},
	{name: Type, types: []chroma.TokenType{chroma.KeywordType, chroma.NameClass}},
	{name: Typedec, types: []chroma.TokenType{chroma.NameClass, chroma.KeywordType}},
	{name: Funcall, types: []chroma.TokenType{chroma.NameFunction}},
	{name: Builtin, types: []chroma.TokenType{chroma.NameBuiltin, chroma.NameFunction}},
	{name: Macro, types: []chroma.TokenType{chroma.NameDecorator, chroma.CommentPreproc}},
	{name: Symbol, types: []chroma.TokenType{chroma.LiteralStringSymbol, chroma.NameConstant}},
	{name: String, types: []chroma.TokenType{chroma.LiteralString}},
	{name: StringDelim, types: []chroma.TokenType{chroma.LiteralStringDelimiter}},
	{name: BackslashLiteral, types: []chroma.TokenType{chroma.LiteralStringEscape}},
	{name: Number, types: []chroma.TokenType{chroma.LiteralNumber}},
	{name: Comment, types: []chroma.TokenType{chroma.Comment}},
	{name: Operator, types: []chroma.TokenType{chroma.Operator}},
	{name: Error, background: true, types: []chroma.TokenType{chroma.Error}},
}

// ThemeOverlay derives face overrides from a chroma style. Faces the style
// has no colour for are left out so their defaults apply.
func ThemeOverlay(theme string) (map[Name]Style, error) {
	requested := strings.TrimSpace(theme)
	lookup := normalizeThemeName(requested)

	names := styles.Names()
	known := false
	for _, n := range names {
		if n == lookup {
			known = true
			break
		}
	}
	if !known {
		sort.Strings(names)
		return nil, fmt.Errorf("unknown theme %q. try one of: %s", requested, strings.Join(topThemeHints(names), ", "))
	}

	style := styles.Get(lookup)
	// token entries inherit the base text and background colours, which
	// would only wash out the defaults
	base := style.Get(chroma.Background)
	baseFG, baseBG := base.Colour.String(), base.Background.String()

	overlay := make(map[Name]Style, len(themeSources))
	for _, src := range themeSources {
		if src.background {
			if c := pickBackground(style, src.types...); c != "" && c != baseBG {
				overlay[src.name] = Style{Background: c}
			}
			continue
		}
		if c := pickForeground(style, src.types...); c != "" && c != baseFG {
			overlay[src.name] = Style{Foreground: c}
		}
	}
	return overlay, nil
}

// Themed returns the default registry with a chroma theme applied. An empty
// theme name returns the defaults unchanged.
func Themed(theme string) (*Registry, error) {
	if strings.TrimSpace(theme) == "" {
		return Default(), nil
	}
	overlay, err := ThemeOverlay(theme)
	if err != nil {
		return nil, err
	}
	return Default().WithOverrides(overlay)
}

func normalizeThemeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "solarized":
		return "solarized-dark"
	case "one-dark":
		return "onedark"
	default:
		return n
	}
}

func pickForeground(style *chroma.Style, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Colour.IsSet() {
			return entry.Colour.String()
		}
	}
	return ""
}

func pickBackground(style *chroma.Style, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Background.IsSet() {
			return entry.Background.String()
		}
	}
	return ""
}

func topThemeHints(all []string) []string {
	wanted := []string{"nord", "dracula", "monokai", "github", "github-dark", "solarized-dark", "solarized-light", "gruvbox", "onedark"}
	set := map[string]bool{}
	for _, n := range all {
		set[n] = true
	}
	out := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if set[name] {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		limit := min(8, len(all))
		return all[:limit]
	}
	return out
}
