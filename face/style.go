package face

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Attr is a tri-state text attribute. Unset attributes are taken from parents.
type Attr uint8

const (
	Unset Attr = iota
	On
	Off
)

func (a Attr) String() string {
	switch a {
	case On:
		return "on"
	case Off:
		return "off"
	}
	return "unset"
}

// ParseAttr accepts on/off, true/false, yes/no, 1/0 and an empty string
// for Unset.
func ParseAttr(v string) (Attr, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return Unset, nil
	case "on", "true", "yes", "1":
		return On, nil
	case "off", "false", "no", "0":
		return Off, nil
	}
	return Unset, fmt.Errorf("invalid attribute value %q", v)
}

func (a Attr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Attr) UnmarshalText(b []byte) error {
	v, err := ParseAttr(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Style is a set of display attributes. Colours are ANSI names such as
// "magenta" or "bright_blue", or "#rrggbb".
type Style struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Bold       Attr   `yaml:"bold,omitempty"`
	Italic     Attr   `yaml:"italic,omitempty"`
	Underline  Attr   `yaml:"underline,omitempty"`
	Inverse    Attr   `yaml:"inverse,omitempty"`
}

// Over fills the unset attributes of s from base.
func (s Style) Over(base Style) Style {
	if s.Foreground == "" {
		s.Foreground = base.Foreground
	}
	if s.Background == "" {
		s.Background = base.Background
	}
	if s.Bold == Unset {
		s.Bold = base.Bold
	}
	if s.Italic == Unset {
		s.Italic = base.Italic
	}
	if s.Underline == Unset {
		s.Underline = base.Underline
	}
	if s.Inverse == Unset {
		s.Inverse = base.Inverse
	}
	return s
}

func (s Style) IsZero() bool {
	return s == Style{}
}

var ansiColors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// Color converts a colour name to a lipgloss colour. ok is false for empty
// or unrecognised names.
func Color(name string) (lipgloss.Color, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	if strings.HasPrefix(n, "#") {
		if len(n) != 7 && len(n) != 4 {
			return "", false
		}
		return lipgloss.Color(n), true
	}

	switch n {
	case "grey", "gray":
		return lipgloss.Color("8"), true
	case "default":
		return "", false
	}

	n = strings.ReplaceAll(n, "-", "_")
	bright := false
	if rest, ok := strings.CutPrefix(n, "bright_"); ok {
		n, bright = rest, true
	} else if rest, ok := strings.CutPrefix(n, "bright"); ok {
		n, bright = rest, true
	}
	idx, ok := ansiColors[n]
	if !ok {
		return "", false
	}
	if bright {
		idx += 8
	}
	return lipgloss.Color(strconv.Itoa(idx)), true
}

// Lipgloss converts s to a lipgloss style. Unknown colours are ignored.
func (s Style) Lipgloss() lipgloss.Style {
	return s.LipglossWith(lipgloss.DefaultRenderer())
}

// LipglossWith is Lipgloss bound to a specific renderer and its colour profile.
func (s Style) LipglossWith(r *lipgloss.Renderer) lipgloss.Style {
	st := r.NewStyle()
	if c, ok := Color(s.Foreground); ok {
		st = st.Foreground(c)
	}
	if c, ok := Color(s.Background); ok {
		st = st.Background(c)
	}
	if s.Bold == On {
		st = st.Bold(true)
	}
	if s.Italic == On {
		st = st.Italic(true)
	}
	if s.Underline == On {
		st = st.Underline(true)
	}
	if s.Inverse == On {
		st = st.Reverse(true)
	}
	return st
}
