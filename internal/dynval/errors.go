package dynval

import "errors"

var (
	// ErrShape indicates array data whose length does not match the shape.
	ErrShape = errors.New("dynval: data length does not match shape")

	// ErrElemData indicates array data of the wrong Go type for the element type,
	// or values that do not fit the declared element width.
	ErrElemData = errors.New("dynval: data does not match element type")

	// ErrRaggedArray indicates nested sequences with inconsistent lengths.
	ErrRaggedArray = errors.New("dynval: ragged nested sequence")

	// ErrUnsupportedTag indicates a YAML node with a tag the adapter does not know.
	ErrUnsupportedTag = errors.New("dynval: unsupported yaml tag")

	// ErrUnsupportedGoType indicates a native Go value FromAny cannot represent.
	ErrUnsupportedGoType = errors.New("dynval: unsupported go type")
)
