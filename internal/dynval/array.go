package dynval

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Array is a rank-N homogeneous array stored in row-major order.
// Elements are kept in a canonical wide representation per class
// (int64, uint64, float64, complex128); the source element type is
// preserved in Elem for validation.
type Array struct {
	elem  ElemType
	shape []int

	ints   []int64
	uints  []uint64
	floats []float64
	cplx   []complex128
	bools  []bool
	strs   []string
	objs   []Value
}

// NewArray validates and copies data into a new array. The Go type of data
// must match the class of elem: []int64 for signed integers, []uint64 for
// unsigned integers, []float64 for floats, []complex128 for complex numbers,
// []bool, []string, and []Value for object arrays.
func NewArray(elem ElemType, shape []int, data any) (*Array, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension in %v", ErrShape, shape)
		}
		n *= d
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: rank 0", ErrShape)
	}

	a := &Array{elem: elem, shape: slices.Clone(shape)}
	var got int
	switch {
	case elem.IsSigned():
		d, ok := data.([]int64)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs []int64, got %T", ErrElemData, elem, data)
		}
		lo, hi := signedRange(elem)
		for i, v := range d {
			if v < lo || v > hi {
				return nil, fmt.Errorf("%w: element %d (%d) overflows %s", ErrElemData, i, v, elem)
			}
		}
		a.ints, got = slices.Clone(d), len(d)
	case elem.IsUnsigned():
		d, ok := data.([]uint64)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs []uint64, got %T", ErrElemData, elem, data)
		}
		hi := unsignedMax(elem)
		for i, v := range d {
			if v > hi {
				return nil, fmt.Errorf("%w: element %d (%d) overflows %s", ErrElemData, i, v, elem)
			}
		}
		a.uints, got = slices.Clone(d), len(d)
	case elem.IsFloat():
		d, ok := data.([]float64)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs []float64, got %T", ErrElemData, elem, data)
		}
		a.floats, got = slices.Clone(d), len(d)
	case elem.IsComplex():
		d, ok := data.([]complex128)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs []complex128, got %T", ErrElemData, elem, data)
		}
		a.cplx, got = slices.Clone(d), len(d)
	case elem == ElemBool:
		d, ok := data.([]bool)
		if !ok {
			return nil, fmt.Errorf("%w: bool needs []bool, got %T", ErrElemData, data)
		}
		a.bools, got = slices.Clone(d), len(d)
	case elem == ElemString:
		d, ok := data.([]string)
		if !ok {
			return nil, fmt.Errorf("%w: string needs []string, got %T", ErrElemData, data)
		}
		a.strs, got = slices.Clone(d), len(d)
	case elem == ElemObject:
		d, ok := data.([]Value)
		if !ok {
			return nil, fmt.Errorf("%w: object needs []Value, got %T", ErrElemData, data)
		}
		a.objs, got = slices.Clone(d), len(d)
	default:
		return nil, fmt.Errorf("%w: %s", ErrElemData, elem)
	}

	if got != n {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrShape, got, shape)
	}
	return a, nil
}

// MustArray is like NewArray but panics on invalid input.
func MustArray(elem ElemType, shape []int, data any) *Array {
	a, err := NewArray(elem, shape, data)
	if err != nil {
		panic(err)
	}
	return a
}

func signedRange(e ElemType) (int64, int64) {
	switch e {
	case ElemInt8:
		return math.MinInt8, math.MaxInt8
	case ElemInt16:
		return math.MinInt16, math.MaxInt16
	case ElemInt32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func unsignedMax(e ElemType) uint64 {
	switch e {
	case ElemUint8:
		return math.MaxUint8
	case ElemUint16:
		return math.MaxUint16
	case ElemUint32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

func shapeOf(n int, shape []int) []int {
	if len(shape) == 0 {
		return []int{n}
	}
	return shape
}

// FloatArray builds a float64 array. With no shape the array is 1-D.
func FloatArray(data []float64, shape ...int) Value {
	return ArrayOf(MustArray(ElemFloat64, shapeOf(len(data), shape), data))
}

// Float32Array builds an array whose source element type is float32.
func Float32Array(data []float32, shape ...int) Value {
	wide := make([]float64, len(data))
	for i, v := range data {
		wide[i] = float64(v)
	}
	return ArrayOf(MustArray(ElemFloat32, shapeOf(len(data), shape), wide))
}

func IntArray(data []int64, shape ...int) Value {
	return ArrayOf(MustArray(ElemInt64, shapeOf(len(data), shape), data))
}

func Int32Array(data []int32, shape ...int) Value {
	wide := make([]int64, len(data))
	for i, v := range data {
		wide[i] = int64(v)
	}
	return ArrayOf(MustArray(ElemInt32, shapeOf(len(data), shape), wide))
}

func Uint8Array(data []uint8, shape ...int) Value {
	wide := make([]uint64, len(data))
	for i, v := range data {
		wide[i] = uint64(v)
	}
	return ArrayOf(MustArray(ElemUint8, shapeOf(len(data), shape), wide))
}

func StringArray(data []string, shape ...int) Value {
	return ArrayOf(MustArray(ElemString, shapeOf(len(data), shape), data))
}

func BoolArray(data []bool, shape ...int) Value {
	return ArrayOf(MustArray(ElemBool, shapeOf(len(data), shape), data))
}

func ComplexArray(data []complex128, shape ...int) Value {
	return ArrayOf(MustArray(ElemComplex128, shapeOf(len(data), shape), data))
}

func (a *Array) Elem() ElemType { return a.elem }

func (a *Array) Rank() int { return len(a.shape) }

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

func (a *Array) Dim(axis int) int { return a.shape[axis] }

// Len is the total number of elements.
func (a *Array) Len() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// Float returns element i (row-major) promoted to float64. It panics unless
// the element type is an integer or float type.
func (a *Array) Float(i int) float64 {
	switch {
	case a.elem.IsSigned():
		return float64(a.ints[i])
	case a.elem.IsUnsigned():
		return float64(a.uints[i])
	case a.elem.IsFloat():
		return a.floats[i]
	}
	panic(fmt.Sprintf("dynval: Float on %s array", a.elem))
}

// Int returns element i as int64. ok is false when an unsigned element does
// not fit. It panics unless the element type is an integer type.
func (a *Array) Int(i int) (v int64, ok bool) {
	switch {
	case a.elem.IsSigned():
		return a.ints[i], true
	case a.elem.IsUnsigned():
		u := a.uints[i]
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	panic(fmt.Sprintf("dynval: Int on %s array", a.elem))
}

// Str returns element i of a string array.
func (a *Array) Str(i int) string {
	if a.elem != ElemString {
		panic(fmt.Sprintf("dynval: Str on %s array", a.elem))
	}
	return a.strs[i]
}

// At returns element i as a scalar Value.
func (a *Array) At(i int) Value {
	switch {
	case a.elem.IsSigned():
		return Int(a.ints[i])
	case a.elem.IsUnsigned():
		if v, ok := a.Int(i); ok {
			return Int(v)
		}
		return Float(float64(a.uints[i]))
	case a.elem.IsFloat():
		return Float(a.floats[i])
	case a.elem == ElemBool:
		return Bool(a.bools[i])
	case a.elem == ElemString:
		return String(a.strs[i])
	case a.elem == ElemObject:
		return a.objs[i]
	}
	// complex elements have no scalar kind
	return Null()
}

func (a *Array) shapeString() string {
	dims := make([]string, len(a.shape))
	for i, d := range a.shape {
		dims[i] = strconv.Itoa(d)
	}
	return strings.Join(dims, "x")
}
