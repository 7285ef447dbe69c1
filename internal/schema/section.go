package schema

import (
	"fmt"
	"strings"
)

// Section is a named node of the static configuration tree. Sections are
// built once before marshaling; afterwards only the provided flag (and the
// slots behind its properties) change.
type Section struct {
	name string
	path string

	props    []Property
	children []*Section
	byName   map[string]any

	provided bool
	notify   *bool
}

type Option func(*Section)

// WithNotify mirrors the provided flag into a host-owned bool.
func WithNotify(flag *bool) Option {
	return func(s *Section) { s.notify = flag }
}

// NewSection creates a root section.
func NewSection(name string, opts ...Option) *Section {
	return newSection(name, name, opts)
}

func newSection(name, path string, opts []Option) *Section {
	s := &Section{name: name, path: path, byName: make(map[string]any)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends properties in order. A duplicate name or a property with an
// unusable slot is a schema construction bug and panics.
func (s *Section) Add(props ...Property) *Section {
	for _, p := range props {
		if p == nil {
			panic(fmt.Sprintf("schema: nil property in section %q", s.path))
		}
		s.claim(p.Name())
		if err := p.check(); err != nil {
			panic(fmt.Sprintf("schema: property %q of section %q: %v", p.Name(), s.path, err))
		}
		s.props = append(s.props, p)
		s.byName[p.Name()] = p
	}
	return s
}

// Section creates a child section and returns it.
func (s *Section) Section(name string, opts ...Option) *Section {
	s.claim(name)
	child := newSection(name, s.path+"."+name, opts)
	s.children = append(s.children, child)
	s.byName[name] = child
	return child
}

func (s *Section) claim(name string) {
	if name == "" {
		panic(fmt.Sprintf("schema: empty name in section %q", s.path))
	}
	if _, dup := s.byName[name]; dup {
		panic(fmt.Sprintf("schema: duplicate name %q in section %q", name, s.path))
	}
}

func (s *Section) Name() string { return s.name }

// Path is the dotted path from the root, e.g. "root.potential.threebody".
func (s *Section) Path() string { return s.path }

func (s *Section) Properties() []Property { return s.props }

func (s *Section) Children() []*Section { return s.children }

func (s *Section) Property(name string) (Property, bool) {
	p, ok := s.byName[name].(Property)
	return p, ok
}

func (s *Section) Child(name string) (*Section, bool) {
	c, ok := s.byName[name].(*Section)
	return c, ok
}

// Lookup resolves a dotted path relative to s, e.g. "pair.nbins".
func (s *Section) Lookup(path string) (Property, bool) {
	parts := strings.Split(path, ".")
	cur := s
	for _, part := range parts[:len(parts)-1] {
		child, ok := cur.Child(part)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur.Property(parts[len(parts)-1])
}

func (s *Section) Provided() bool { return s.provided }

// MarkProvided sets the provided flag and its notification mirror.
func (s *Section) MarkProvided() {
	s.provided = true
	if s.notify != nil {
		*s.notify = true
	}
}

// Reset clears provided flags and their mirrors in the whole subtree.
func (s *Section) Reset() {
	s.provided = false
	if s.notify != nil {
		*s.notify = false
	}
	for _, c := range s.children {
		c.Reset()
	}
}

// Walk visits s and its descendants depth-first, parents before children.
func (s *Section) Walk(fn func(sec *Section, depth int)) {
	s.walk(fn, 0)
}

func (s *Section) walk(fn func(*Section, int), depth int) {
	fn(s, depth)
	for _, c := range s.children {
		c.walk(fn, depth+1)
	}
}
