// Package render turns face annotations into ANSI styled terminal text.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"juliahl/annotated"
	"juliahl/face"
	"juliahl/highlight"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

type Options struct {
	// Width truncates every line to this many cells. Zero disables it.
	Width int
	Color ColorMode
	// Output is inspected for colour support in auto mode. Defaults to stdout.
	Output io.Writer
}

// Renderer caches lipgloss styles and is not safe for concurrent use.
type Renderer struct {
	faces  *face.Registry
	lg     *lipgloss.Renderer
	width  int
	plain  bool
	styles map[face.Style]lipgloss.Style
}

func New(faces *face.Registry, opts Options) *Renderer {
	if faces == nil {
		faces = face.Default()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	lg := lipgloss.NewRenderer(out)
	switch opts.Color {
	case ColorAlways:
		if lg.ColorProfile() == termenv.Ascii {
			lg.SetColorProfile(termenv.ANSI256)
		}
	case ColorNever:
		lg.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		faces:  faces,
		lg:     lg,
		width:  max(opts.Width, 0),
		plain:  opts.Color == ColorNever,
		styles: make(map[face.Style]lipgloss.Style),
	}
}

type span struct {
	start, end int
	style      face.Style
}

// Render styles text with anns. Faces are layered in annotation order,
// later faces overriding the attributes they set. Unknown faces panic.
func (r *Renderer) Render(text string, anns []highlight.Annotation) string {
	spans := make([]span, 0, len(anns))
	for _, a := range anns {
		spans = append(spans, span{start: a.Start, end: a.End, style: r.faces.MustResolve(a.Face)})
	}
	return r.render(text, spans)
}

// RenderString renders the face annotations of s. Faces the registry does
// not know and annotations with other labels are ignored.
func (r *Renderer) RenderString(s *annotated.String) string {
	var spans []span
	for _, a := range s.Annotations() {
		if a.Label != highlight.FaceLabel {
			continue
		}
		name, ok := a.Value.(face.Name)
		if !ok {
			continue
		}
		st, err := r.faces.Resolve(name)
		if err != nil {
			continue
		}
		spans = append(spans, span{start: a.Region.Start, end: a.Region.End, style: st})
	}
	return r.render(s.Text(), spans)
}

// Swatch renders name in its own face.
func (r *Renderer) Swatch(name face.Name) string {
	return r.styled(r.faces.MustResolve(name), string(name))
}

func (r *Renderer) render(text string, spans []span) string {
	cuts := boundaries(text, spans)

	var line, out strings.Builder
	lineStart := 0
	flush := func(end int) {
		out.WriteString(r.fit(line.String(), text[lineStart:end]))
		line.Reset()
	}

	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		if text[a:b] == "\n" {
			flush(a)
			out.WriteByte('\n')
			lineStart = b
			continue
		}

		var eff face.Style
		for _, s := range spans {
			if s.start <= a && b <= s.end {
				eff = s.style.Over(eff)
			}
		}
		line.WriteString(r.styled(eff, text[a:b]))
	}
	flush(len(text))
	return out.String()
}

// boundaries returns the sorted offsets at which the effective style may
// change. Newlines are isolated so no styled run crosses a line.
func boundaries(text string, spans []span) []int {
	set := map[int]struct{}{0: {}, len(text): {}}
	add := func(i int) {
		if i <= 0 || i >= len(text) || !utf8.RuneStart(text[i]) {
			return
		}
		set[i] = struct{}{}
	}
	for _, s := range spans {
		add(s.start)
		add(s.end)
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			add(i)
			add(i + 1)
		}
	}

	cuts := make([]int, 0, len(set))
	for i := range set {
		cuts = append(cuts, i)
	}
	sort.Ints(cuts)
	return cuts
}

func (r *Renderer) styled(st face.Style, s string) string {
	if s == "" {
		return ""
	}
	if r.plain || st.IsZero() {
		return s
	}
	ls, ok := r.styles[st]
	if !ok {
		ls = st.LipglossWith(r.lg).TabWidth(lipgloss.NoTabConversion)
		r.styles[st] = ls
	}
	return ls.Render(s)
}

// fit truncates a rendered line whose plain text is wider than the
// configured width.
func (r *Renderer) fit(rendered, plain string) string {
	if r.width <= 0 {
		return rendered
	}
	if runewidth.StringWidth(strings.ReplaceAll(plain, "\t", "    ")) <= r.width {
		return rendered
	}
	if r.width <= 3 {
		return truncate.String(rendered, uint(r.width))
	}
	return truncate.StringWithTail(rendered, uint(r.width), "...")
}
