package marshal

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes. Every error returned by the marshaler is an *Error that
// wraps exactly one of these.
var (
	// ErrInvalidKeyType indicates a map key that is not a string.
	ErrInvalidKeyType = errors.New("marshal: dictionary key needs to be a string")

	// ErrUnknownKey indicates a key that names neither a property nor a child section.
	ErrUnknownKey = errors.New("marshal: unknown key")

	// ErrExpectedSection indicates a section key whose value is not a map.
	ErrExpectedSection = errors.New("marshal: section value needs to be a map")

	// ErrTypeMismatch indicates a value of the wrong type for a property.
	ErrTypeMismatch = errors.New("marshal: type mismatch")

	// ErrShapeMismatch indicates a tuple arity or array rank/shape that does
	// not match the property.
	ErrShapeMismatch = errors.New("marshal: shape mismatch")

	// ErrUnsupportedElementType indicates an array element type with no
	// conversion to the destination type.
	ErrUnsupportedElementType = errors.New("marshal: unsupported array element type")

	// ErrCapacityOverflow indicates input larger than the destination slot.
	ErrCapacityOverflow = errors.New("marshal: destination capacity exceeded")

	// ErrInternalSchema indicates an unrecognised property variant. It is
	// raised as a panic, never returned.
	ErrInternalSchema = errors.New("marshal: internal schema error")
)

// Error carries the context of the first marshaling failure.
type Error struct {
	Key      string // offending key
	Section  string // name of the enclosing section
	Path     string // dotted path of the enclosing section
	Expected string // accepted input, e.g. "a 3-tuple of floats"
	Got      string // type of the rejected value
	Detail   string
	Wrapped  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("marshal: ")
	switch {
	case errors.Is(e.Wrapped, ErrInvalidKeyType):
		fmt.Fprintf(&b, "key %s of section '%s' needs to be a string", e.Key, e.Path)
	case errors.Is(e.Wrapped, ErrUnknownKey):
		fmt.Fprintf(&b, "could not find property '%s' of section '%s'", e.Key, e.Path)
	case errors.Is(e.Wrapped, ErrExpectedSection) && e.Key == "":
		fmt.Fprintf(&b, "section '%s' should be a map", e.Path)
	case errors.Is(e.Wrapped, ErrExpectedSection):
		fmt.Fprintf(&b, "section '%s' of section '%s' should be a map", e.Key, e.Path)
	case errors.Is(e.Wrapped, ErrInternalSchema):
		fmt.Fprintf(&b, "internal error: property '%s' of section '%s'", e.Key, e.Path)
	default:
		fmt.Fprintf(&b, "property '%s' of section '%s' should be %s", e.Key, e.Path, e.Expected)
	}
	if e.Got != "" {
		fmt.Fprintf(&b, " (got %s)", e.Got)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
