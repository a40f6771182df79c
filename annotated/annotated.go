// Package annotated stores text together with labelled byte-range
// annotations, the form highlighted output is handed to renderers in.
package annotated

import (
	"errors"
	"fmt"
)

var ErrRegion = errors.New("annotation region out of bounds")

// Region is a half-open byte interval.
type Region struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

func (r Region) Len() int {
	return r.End - r.Start
}

func (r Region) Contains(o Region) bool {
	return o.Start >= r.Start && o.End <= r.End
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

type Annotation struct {
	Region Region `yaml:"region"`
	Label  string `yaml:"label"`
	Value  any    `yaml:"value"`
}

// Target is anything annotations can be attached to: a String or a
// Substring of one. Regions are relative to Text().
type Target interface {
	Text() string
	Annotate(r Region, label string, value any) error
	Annotations() []Annotation
	RemoveIf(drop func(Annotation) bool) int
}

// String is text plus annotations. The zero value is an empty string.
type String struct {
	text        string
	annotations []Annotation
}

func New(text string) *String {
	return &String{text: text}
}

func (s *String) Text() string {
	return s.text
}

func (s *String) Len() int {
	return len(s.text)
}

func checkRegion(r Region, n int) error {
	if r.Start < 0 || r.End > n || r.Start >= r.End {
		return fmt.Errorf("%s in text of length %d: %w", r, n, ErrRegion)
	}
	return nil
}

// Annotate appends an annotation. Empty or out of range regions are rejected.
func (s *String) Annotate(r Region, label string, value any) error {
	if err := checkRegion(r, len(s.text)); err != nil {
		return err
	}
	s.annotations = append(s.annotations, Annotation{Region: r, Label: label, Value: value})
	return nil
}

// Annotations returns a copy of the annotations in insertion order.
func (s *String) Annotations() []Annotation {
	return append([]Annotation(nil), s.annotations...)
}

// RemoveIf drops the annotations for which drop returns true and reports how
// many were removed. Order of the rest is kept.
func (s *String) RemoveIf(drop func(Annotation) bool) int {
	kept := s.annotations[:0]
	removed := 0
	for _, a := range s.annotations {
		if drop(a) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	clear(s.annotations[len(kept):])
	s.annotations = kept
	return removed
}

// Substring returns a view of s[start:end]. Annotations made through the
// view land on s.
func (s *String) Substring(start, end int) (*Substring, error) {
	r := Region{Start: start, End: end}
	if start < 0 || end > len(s.text) || start > end {
		return nil, fmt.Errorf("substring %s in text of length %d: %w", r, len(s.text), ErrRegion)
	}
	return &Substring{parent: s, offset: start, end: end}, nil
}

// Substring is a window onto a String.
type Substring struct {
	parent *String
	offset int
	end    int
}

func (s *Substring) Text() string {
	return s.parent.text[s.offset:s.end]
}

func (s *Substring) Parent() *String {
	return s.parent
}

func (s *Substring) Offset() int {
	return s.offset
}

func (s *Substring) window() Region {
	return Region{Start: s.offset, End: s.end}
}

func (s *Substring) Annotate(r Region, label string, value any) error {
	if err := checkRegion(r, s.end-s.offset); err != nil {
		return err
	}
	return s.parent.Annotate(Region{Start: r.Start + s.offset, End: r.End + s.offset}, label, value)
}

// Annotations returns the parent's annotations that lie inside the window,
// translated to window offsets.
func (s *Substring) Annotations() []Annotation {
	var out []Annotation
	w := s.window()
	for _, a := range s.parent.annotations {
		if !w.Contains(a.Region) {
			continue
		}
		a.Region.Start -= s.offset
		a.Region.End -= s.offset
		out = append(out, a)
	}
	return out
}

// RemoveIf only considers annotations inside the window.
func (s *Substring) RemoveIf(drop func(Annotation) bool) int {
	w := s.window()
	return s.parent.RemoveIf(func(a Annotation) bool {
		if !w.Contains(a.Region) {
			return false
		}
		a.Region.Start -= s.offset
		a.Region.End -= s.offset
		return drop(a)
	})
}
