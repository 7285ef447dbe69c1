package marshal

import (
	"fmt"
	"math"

	"github.com/san-kum/mdconf/internal/dynval"
	"github.com/san-kum/mdconf/internal/schema"
)

// coerce validates v against p and writes it into p's slot. Nothing is
// written unless the whole value is accepted. The returned error lacks the
// key and section context, which the caller fills in.
func coerce(p schema.Property, v dynval.Value) *Error {
	switch p := p.(type) {
	case *schema.Int:
		i, err := toInt32(p, v)
		if err != nil {
			return err
		}
		*p.Slot() = i
	case *schema.Double:
		f, ok := toFloat(v)
		if !ok {
			return mismatch(p, v, ErrTypeMismatch, "")
		}
		*p.Slot() = f
	case *schema.Bool:
		b, ok := v.Bool()
		if !ok {
			return mismatch(p, v, ErrTypeMismatch, "")
		}
		*p.Slot() = b
	case *schema.String:
		return setString(p, v)
	case *schema.FixedString:
		s, ok := v.Str()
		if !ok {
			return mismatch(p, v, ErrTypeMismatch, "")
		}
		if len(s) > p.Width() {
			return mismatch(p, v, ErrCapacityOverflow, fmt.Sprintf("%d bytes for width %d", len(s), p.Width()))
		}
		pad(p.Buf(), s)
	case *schema.Point3:
		return setPoint3(p, v)
	case *schema.IntPoint3:
		return setIntPoint3(p, v)
	case *schema.FloatList:
		return setFloatList(p, v)
	case *schema.IntList:
		return setIntList(p, v)
	case *schema.StringList:
		return setStringList(p, v)
	case *schema.Array2D:
		return setArray2D(p, v)
	case *schema.Array3D:
		return setArray3D(p, v)
	default:
		panic(&Error{
			Key:     propName(p),
			Detail:  fmt.Sprintf("unknown property type %T", p),
			Wrapped: ErrInternalSchema,
		})
	}
	return nil
}

func propName(p schema.Property) string {
	if p == nil {
		return "<nil>"
	}
	return p.Name()
}

func mismatch(p schema.Property, v dynval.Value, class error, detail string) *Error {
	return &Error{Expected: p.Expect(), Got: v.TypeName(), Detail: detail, Wrapped: class}
}

// toFloat accepts floats and promotes integers.
func toFloat(v dynval.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if i, ok := v.Int(); ok {
		return float64(i), true
	}
	return 0, false
}

func toInt32(p schema.Property, v dynval.Value) (int32, *Error) {
	i, ok := v.Int()
	if !ok {
		return 0, mismatch(p, v, ErrTypeMismatch, "")
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, mismatch(p, v, ErrTypeMismatch, fmt.Sprintf("%d overflows int32", i))
	}
	return int32(i), nil
}

func setString(p *schema.String, v dynval.Value) *Error {
	s, ok := v.Str()
	if !ok {
		return mismatch(p, v, ErrTypeMismatch, "")
	}
	if len(s) > p.MaxLen() {
		return mismatch(p, v, ErrCapacityOverflow, fmt.Sprintf("%d bytes for capacity %d", len(s), p.MaxLen()))
	}
	buf := p.Buf()
	n := copy(buf, s)
	clear(buf[n:])
	return nil
}

// pad copies s into a fixed-width field and blank-fills the remainder.
func pad(field []byte, s string) {
	n := copy(field, s)
	for i := n; i < len(field); i++ {
		field[i] = ' '
	}
}

func setPoint3(p *schema.Point3, v dynval.Value) *Error {
	items, ok := v.Items()
	if !ok {
		return mismatch(p, v, ErrTypeMismatch, "")
	}
	if len(items) != 3 {
		return mismatch(p, v, ErrShapeMismatch, "")
	}
	var pt [3]float64
	for i, it := range items {
		f, ok := it.Float()
		if !ok {
			return mismatch(p, v, ErrTypeMismatch, fmt.Sprintf("element %d is %s", i, it.TypeName()))
		}
		pt[i] = f
	}
	*p.Slot() = pt
	return nil
}

func setIntPoint3(p *schema.IntPoint3, v dynval.Value) *Error {
	items, ok := v.Items()
	if !ok {
		return mismatch(p, v, ErrTypeMismatch, "")
	}
	if len(items) != 3 {
		return mismatch(p, v, ErrShapeMismatch, "")
	}
	var pt [3]int32
	for i, it := range items {
		n, ok := it.Int()
		if !ok {
			return mismatch(p, v, ErrTypeMismatch, fmt.Sprintf("element %d is %s", i, it.TypeName()))
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return mismatch(p, v, ErrTypeMismatch, fmt.Sprintf("element %d (%d) overflows int32", i, n))
		}
		pt[i] = int32(n)
	}
	*p.Slot() = pt
	return nil
}

// elemClass maps an array element type the destination does not accept to
// a failure class: wrong numeric/string class is a type mismatch, anything
// else has no conversion at all.
func elemClass(e dynval.ElemType, accept func(dynval.ElemType) bool) error {
	if accept(e) {
		return nil
	}
	if e.IsInteger() || e.IsFloat() || e == dynval.ElemString {
		return ErrTypeMismatch
	}
	return ErrUnsupportedElementType
}

func realElem(e dynval.ElemType) bool { return e.IsInteger() || e.IsFloat() }

func stringElem(e dynval.ElemType) bool { return e == dynval.ElemString }

// list validates the common shape of a variable-length list input.
func list(p schema.Property, v dynval.Value, a *dynval.Array, accept func(dynval.ElemType) bool, capacity int) *Error {
	if class := elemClass(a.Elem(), accept); class != nil {
		return mismatch(p, v, class, "")
	}
	if a.Rank() != 1 {
		return mismatch(p, v, ErrShapeMismatch, "array needs to be scalar or one-dimensional")
	}
	if a.Len() > capacity {
		return mismatch(p, v, ErrCapacityOverflow, fmt.Sprintf("%d elements for capacity %d", a.Len(), capacity))
	}
	return nil
}

// setFloatList takes a float scalar or a 1-D numeric array. Integer arrays
// are promoted, integer scalars are not.
func setFloatList(p *schema.FloatList, v dynval.Value) *Error {
	if f, ok := v.Float(); ok {
		p.Buf()[0] = f
		*p.Length() = 1
		return nil
	}
	a, ok := v.Array()
	if !ok {
		return mismatch(p, v, ErrTypeMismatch, "")
	}
	if err := list(p, v, a, realElem, p.Capacity()); err != nil {
		return err
	}
	buf := p.Buf()
	for i := 0; i < a.Len(); i++ {
		buf[i] = a.Float(i)
	}
	*p.Length() = int32(a.Len())
	return nil
}

func setIntList(p *schema.IntList, v dynval.Value) *Error {
	if _, ok := v.Int(); ok {
		i, err := toInt32(p, v)
		if err != nil {
			return err
		}
		p.Buf()[0] = i
		*p.Length() = 1
		return nil
	}
	a, ok := v.Array()
	if !ok {
		return mismatch(p, v, ErrTypeMismatch, "")
	}
	if err := list(p, v, a, dynval.ElemType.IsInteger, p.Capacity()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		n, ok := a.Int(i)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return mismatch(p, v, ErrTypeMismatch, fmt.Sprintf("element %d overflows int32", i))
		}
	}
	buf := p.Buf()
	for i := 0; i < a.Len(); i++ {
		n, _ := a.Int(i)
		buf[i] = int32(n)
	}
	*p.Length() = int32(a.Len())
	return nil
}

func setStringList(p *schema.StringList, v dynval.Value) *Error {
	w := p.Width()
	if s, ok := v.Str(); ok {
		if len(s) > w {
			return mismatch(p, v, ErrCapacityOverflow, fmt.Sprintf("%d bytes for width %d", len(s), w))
		}
		pad(p.Buf()[:w], s)
		*p.Length() = 1
		return nil
	}
	a, ok := v.Array()
	if !ok {
		return mismatch(p, v, ErrTypeMismatch, "")
	}
	if err := list(p, v, a, stringElem, p.Capacity()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		if s := a.Str(i); len(s) > w {
			return mismatch(p, v, ErrCapacityOverflow, fmt.Sprintf("element %d has %d bytes for width %d", i, len(s), w))
		}
	}
	buf := p.Buf()
	for i := 0; i < a.Len(); i++ {
		pad(buf[i*w:(i+1)*w], a.Str(i))
	}
	*p.Length() = int32(a.Len())
	return nil
}

// grid validates a float array of exactly the declared dims.
func grid(p schema.Property, v dynval.Value, dims []int) (*dynval.Array, *Error) {
	a, ok := v.Array()
	if !ok {
		return nil, mismatch(p, v, ErrTypeMismatch, "")
	}
	if class := elemClass(a.Elem(), realElem); class != nil {
		return nil, mismatch(p, v, class, "")
	}
	if a.Rank() != len(dims) {
		return nil, mismatch(p, v, ErrShapeMismatch, fmt.Sprintf("array needs to be %d-dimensional", len(dims)))
	}
	for axis, d := range dims {
		if a.Dim(axis) != d {
			return nil, mismatch(p, v, ErrShapeMismatch, "wrong dimensions")
		}
	}
	return a, nil
}

// setArray2D stores the row-major source column-major: source [i][j] goes
// to destination i + j*d1.
func setArray2D(p *schema.Array2D, v dynval.Value) *Error {
	d := p.Dims()
	a, err := grid(p, v, d[:])
	if err != nil {
		return err
	}
	buf := p.Buf()
	for i := 0; i < d[0]; i++ {
		for j := 0; j < d[1]; j++ {
			buf[p.Index(i, j)] = a.Float(j + i*d[1])
		}
	}
	return nil
}

// setArray3D reverses the axis order: source [i][j][k] goes to destination
// i + (j + k*d2)*d1.
func setArray3D(p *schema.Array3D, v dynval.Value) *Error {
	d := p.Dims()
	a, err := grid(p, v, d[:])
	if err != nil {
		return err
	}
	buf := p.Buf()
	for i := 0; i < d[0]; i++ {
		for j := 0; j < d[1]; j++ {
			for k := 0; k < d[2]; k++ {
				buf[p.Index(i, j, k)] = a.Float(k + (j+i*d[1])*d[2])
			}
		}
	}
	return nil
}
