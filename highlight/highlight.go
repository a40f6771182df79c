// Package highlight annotates Julia source with face names. A single
// recursive walk over a syntax.Tree classifies every node and emits
// (byte range, face) pairs; the facade attaches them to annotated text.
package highlight

import (
	"errors"
	"fmt"

	"juliahl/annotated"
	"juliahl/face"
	"juliahl/juliasyntax"
	"juliahl/syntax"
)

// FaceLabel is the annotation label carrying a face.Name value.
const FaceLabel = "face"

var ErrConfig = errors.New("invalid highlighter config")

type Config struct {
	// Rainbow cycles delimiter faces by nesting depth instead of using
	// julia_parentheses for all of them.
	Rainbow bool
	// Unmatched marks delimiters without a partner with
	// julia_unpaired_parentheses.
	Unmatched bool
	// MaxDepth is the number of rainbow faces cycled through per family.
	MaxDepth int

	Parser syntax.Parser
	Faces  *face.Registry
}

func DefaultConfig() Config {
	return Config{
		Rainbow:   true,
		Unmatched: true,
		MaxDepth:  face.RainbowDepth,
	}
}

type Request struct {
	Text string
	// Tree is used instead of parsing Text when set.
	Tree *syntax.Tree
	// SyntaxErrors applies julia_error over error nodes.
	SyntaxErrors bool
}

type Result struct {
	Annotations []Annotation `yaml:"annotations"`
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty"`
}

// Highlighter is immutable after New and safe for concurrent use when its
// parser is.
type Highlighter struct {
	cfg Config
}

func New(cfg Config) (*Highlighter, error) {
	if cfg.Parser == nil {
		cfg.Parser = juliasyntax.New()
	}
	if cfg.Faces == nil {
		cfg.Faces = face.Default()
	}
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("max depth %d: %w", cfg.MaxDepth, ErrConfig)
	}
	if cfg.Rainbow {
		for _, family := range []Delim{DelimParen, DelimBracket, DelimCurly} {
			for i := 1; i <= cfg.MaxDepth; i++ {
				if name := face.Rainbow(family.String(), i); !cfg.Faces.Has(name) {
					return nil, fmt.Errorf("max depth %d needs %s: %w", cfg.MaxDepth, name, face.ErrUnknownFace)
				}
			}
		}
	}
	return &Highlighter{cfg: cfg}, nil
}

func (h *Highlighter) Config() Config {
	return h.cfg
}

func (h *Highlighter) Faces() *face.Registry {
	return h.cfg.Faces
}

// Annotations runs the engine over req. Without a tree the text is parsed
// with error recovery, so parser failures are the only errors returned.
func (h *Highlighter) Annotations(req Request) (Result, error) {
	tree := req.Tree
	if tree == nil {
		t, err := h.cfg.Parser.Parse(req.Text, syntax.ParseOptions{IgnoreErrors: true})
		if err != nil {
			return Result{}, fmt.Errorf("parse: %w", err)
		}
		tree = t
	}

	w := &walker{
		cfg: &h.cfg,
		ctx: newContext(req.Text, req.SyntaxErrors),
		out: make([]Annotation, 0, len(req.Text)/2+1),
	}
	w.run(tree.Root)
	return Result{Annotations: w.out, Diagnostics: w.diags}, nil
}

// Highlight returns a new annotated copy of req.Text.
func (h *Highlighter) Highlight(req Request) (*annotated.String, error) {
	res, err := h.Annotations(req)
	if err != nil {
		return nil, err
	}
	s := annotated.New(req.Text)
	if err := attach(s, res.Annotations); err != nil {
		return nil, err
	}
	return s, nil
}

// HighlightInPlace replaces the faces this highlighter manages on target
// with fresh ones. Annotations with other labels or unmanaged faces stay.
func (h *Highlighter) HighlightInPlace(target annotated.Target, tree *syntax.Tree, syntaxErrors bool) error {
	res, err := h.Annotations(Request{Text: target.Text(), Tree: tree, SyntaxErrors: syntaxErrors})
	if err != nil {
		return err
	}
	target.RemoveIf(func(a annotated.Annotation) bool {
		if a.Label != FaceLabel {
			return false
		}
		name, ok := a.Value.(face.Name)
		return ok && h.cfg.Faces.Has(name)
	})
	return attach(target, res.Annotations)
}

// Annotated attaches r's faces to a new String over text, the text r was
// computed for.
func (r Result) Annotated(text string) (*annotated.String, error) {
	s := annotated.New(text)
	if err := attach(s, r.Annotations); err != nil {
		return nil, err
	}
	return s, nil
}

func attach(target annotated.Target, anns []Annotation) error {
	for _, a := range anns {
		if err := target.Annotate(annotated.Region{Start: a.Start, End: a.End}, FaceLabel, a.Face); err != nil {
			return fmt.Errorf("attach %s: %w", a, err)
		}
	}
	return nil
}

var defaultHighlighter = mustNew(DefaultConfig())

func mustNew(cfg Config) *Highlighter {
	h, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return h
}

// Default returns the highlighter built from DefaultConfig.
func Default() *Highlighter {
	return defaultHighlighter
}

// Highlight annotates text with the default highlighter.
func Highlight(text string) (*annotated.String, error) {
	return defaultHighlighter.Highlight(Request{Text: text})
}

// HighlightInPlace annotates target with the default highlighter.
func HighlightInPlace(target annotated.Target) error {
	return defaultHighlighter.HighlightInPlace(target, nil, false)
}
