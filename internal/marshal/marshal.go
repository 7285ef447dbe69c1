package marshal

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/san-kum/mdconf/internal/dynval"
	applog "github.com/san-kum/mdconf/internal/log"
	"github.com/san-kum/mdconf/internal/schema"
)

// DefaultReservedPrefix marks keys that are accepted and ignored.
const DefaultReservedPrefix = "__"

type Marshaler struct {
	log      zerolog.Logger
	reserved string
}

type Option func(*Marshaler)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Marshaler) { m.log = l }
}

// WithReservedPrefix changes the ignored-key prefix. An empty prefix
// disables the escape hatch.
func WithReservedPrefix(prefix string) Option {
	return func(m *Marshaler) { m.reserved = prefix }
}

func New(opts ...Option) *Marshaler {
	m := &Marshaler{
		log:      applog.WithComponent("marshal"),
		reserved: DefaultReservedPrefix,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Marshal populates the slots of s from the map v using a default Marshaler.
func Marshal(v dynval.Value, s *schema.Section) error {
	return New().Marshal(v, s)
}

// Marshal walks v and writes every matched key into the schema rooted at s.
// It stops at the first failure and returns it as an *Error. Slots written
// and sections marked provided before the failure stay as they are.
func (m *Marshaler) Marshal(v dynval.Value, s *schema.Section) error {
	entries, ok := v.Entries()
	if !ok {
		return &Error{
			Section:  s.Name(),
			Path:     s.Path(),
			Expected: "a map",
			Got:      v.TypeName(),
			Wrapped:  ErrExpectedSection,
		}
	}
	return m.section(entries, s)
}

func (m *Marshaler) section(entries []dynval.Entry, s *schema.Section) error {
	for _, e := range entries {
		key, ok := e.Key.Str()
		if !ok {
			return &Error{
				Key:     e.Key.String(),
				Section: s.Name(),
				Path:    s.Path(),
				Got:     e.Key.TypeName(),
				Wrapped: ErrInvalidKeyType,
			}
		}

		if p, ok := s.Property(key); ok {
			m.log.Debug().
				Str("section", s.Path()).
				Str("property", key).
				Stringer("kind", p.Kind()).
				Msg("property")
			if err := coerce(p, e.Value); err != nil {
				err.Key, err.Section, err.Path = key, s.Name(), s.Path()
				return err
			}
			continue
		}

		if child, ok := s.Child(key); ok {
			sub, ok := e.Value.Entries()
			if !ok {
				return &Error{
					Key:      key,
					Section:  s.Name(),
					Path:     s.Path(),
					Expected: "a map",
					Got:      e.Value.TypeName(),
					Wrapped:  ErrExpectedSection,
				}
			}
			m.log.Debug().Str("section", child.Path()).Msg("section")
			child.MarkProvided()
			if err := m.section(sub, child); err != nil {
				return err
			}
			continue
		}

		if m.reserved != "" && strings.HasPrefix(key, m.reserved) {
			m.log.Debug().Str("section", s.Path()).Str("key", key).Msg("reserved key ignored")
			continue
		}

		return &Error{
			Key:     key,
			Section: s.Name(),
			Path:    s.Path(),
			Wrapped: ErrUnknownKey,
		}
	}
	return nil
}
