package face

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFace   = errors.New("unknown face")
	ErrInheritCycle  = errors.New("face inheritance cycle")
	ErrEmptyFaceName = errors.New("empty face name")
)

// Definition is a face as registered: its own attributes and the faces it
// inherits from. Earlier parents take precedence over later ones.
type Definition struct {
	Name    Name   `yaml:"name"`
	Style   Style  `yaml:"style,omitempty"`
	Inherit []Name `yaml:"inherit,omitempty"`
}

// Registry maps face names to effective styles. It is immutable once built
// and safe for concurrent reads.
type Registry struct {
	defs   map[Name]Definition
	order  []Name
	styles map[Name]Style
}

// NewRegistry flattens defs into effective styles. A later definition with
// the same name replaces an earlier one.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs:   make(map[Name]Definition, len(defs)),
		styles: make(map[Name]Style, len(defs)),
	}
	for _, d := range defs {
		if strings.TrimSpace(string(d.Name)) == "" {
			return nil, ErrEmptyFaceName
		}
		if _, ok := r.defs[d.Name]; !ok {
			r.order = append(r.order, d.Name)
		}
		d.Inherit = append([]Name(nil), d.Inherit...)
		r.defs[d.Name] = d
	}

	visiting := make(map[Name]bool, len(r.defs))
	for _, name := range r.order {
		if _, err := r.flatten(name, visiting, nil); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) flatten(name Name, visiting map[Name]bool, chain []Name) (Style, error) {
	if st, ok := r.styles[name]; ok {
		return st, nil
	}
	def, ok := r.defs[name]
	if !ok {
		return Style{}, fmt.Errorf("%s inherits %s: %w", chain[len(chain)-1], name, ErrUnknownFace)
	}
	if visiting[name] {
		return Style{}, fmt.Errorf("%s: %w", formatChain(append(chain, name)), ErrInheritCycle)
	}

	visiting[name] = true
	defer delete(visiting, name)

	st := def.Style
	for _, parent := range def.Inherit {
		ps, err := r.flatten(parent, visiting, append(chain, name))
		if err != nil {
			return Style{}, err
		}
		st = st.Over(ps)
	}
	r.styles[name] = st
	return st, nil
}

func formatChain(chain []Name) string {
	parts := make([]string, len(chain))
	for i, n := range chain {
		parts[i] = string(n)
	}
	return strings.Join(parts, " -> ")
}

// Resolve returns the effective style of name.
func (r *Registry) Resolve(name Name) (Style, error) {
	st, ok := r.styles[name]
	if !ok {
		return Style{}, fmt.Errorf("%q: %w", name, ErrUnknownFace)
	}
	return st, nil
}

// MustResolve is Resolve for names the caller knows are registered.
func (r *Registry) MustResolve(name Name) Style {
	st, err := r.Resolve(name)
	if err != nil {
		panic(err)
	}
	return st
}

func (r *Registry) Has(name Name) bool {
	_, ok := r.styles[name]
	return ok
}

// Names returns the registered faces in registration order.
func (r *Registry) Names() []Name {
	return append([]Name(nil), r.order...)
}

// Definitions returns a copy of the registered definitions in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		d := r.defs[name]
		d.Inherit = append([]Name(nil), d.Inherit...)
		out = append(out, d)
	}
	return out
}

// WithOverrides returns a new registry whose own styles are overlaid by
// overrides. Inheritance is kept, so an override of julia_string also
// reaches julia_char unless julia_char sets the attribute itself.
func (r *Registry) WithOverrides(overrides map[Name]Style) (*Registry, error) {
	defs := r.Definitions()
	for i, d := range defs {
		if o, ok := overrides[d.Name]; ok {
			defs[i].Style = o.Over(d.Style)
		}
	}
	for name := range overrides {
		if _, ok := r.defs[name]; !ok {
			return nil, fmt.Errorf("override %q: %w", name, ErrUnknownFace)
		}
	}
	return NewRegistry(defs)
}

var defaultRegistry = mustRegistry(Defaults())

func mustRegistry(defs []Definition) *Registry {
	r, err := NewRegistry(defs)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the registry of built-in faces. It must not be modified.
func Default() *Registry {
	return defaultRegistry
}
