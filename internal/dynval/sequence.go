package dynval

import (
	"fmt"
)

// FromSequence turns the items of a host sequence into a value. Items that
// form a rectangular nest of homogeneous scalars become one rank-N array;
// anything heterogeneous becomes a tuple. A non-invalid force retypes the
// resulting numeric array (e.g. to ElemFloat32).
func FromSequence(items []Value, force ElemType) (Value, error) {
	if len(items) == 0 {
		elem := ElemFloat64
		if force != ElemInvalid {
			elem = force
		}
		a, err := NewArray(elem, []int{0}, emptyData(elem))
		if err != nil {
			return Value{}, err
		}
		return ArrayOf(a), nil
	}

	var (
		a   *Array
		err error
	)
	switch {
	case allKind(items, func(k Kind) bool { return k.IsScalar() }):
		a, err = scalarsToArray(items)
	case allKind(items, func(k Kind) bool { return k == ArrayKind }):
		a, err = stack(items)
	}
	if err != nil {
		return Value{}, err
	}
	if a == nil {
		if force != ElemInvalid {
			return Value{}, fmt.Errorf("%w: cannot force %s on a heterogeneous sequence", ErrElemData, force)
		}
		return TupleOf(items...), nil
	}
	if force != ElemInvalid && force != a.elem {
		if a, err = convert(a, force); err != nil {
			return Value{}, err
		}
	}
	return ArrayOf(a), nil
}

func allKind(items []Value, pred func(Kind) bool) bool {
	for _, it := range items {
		if !pred(it.kind) {
			return false
		}
	}
	return true
}

func emptyData(elem ElemType) any {
	switch {
	case elem.IsSigned():
		return []int64{}
	case elem.IsUnsigned():
		return []uint64{}
	case elem.IsFloat():
		return []float64{}
	case elem.IsComplex():
		return []complex128{}
	case elem == ElemBool:
		return []bool{}
	case elem == ElemString:
		return []string{}
	default:
		return []Value{}
	}
}

// scalarsToArray returns nil when the scalars are not one class.
func scalarsToArray(items []Value) (*Array, error) {
	var ints, floats, strs, bools int
	for _, it := range items {
		switch it.kind {
		case IntKind:
			ints++
		case FloatKind:
			floats++
		case StringKind:
			strs++
		case BoolKind:
			bools++
		}
	}
	n := len(items)
	shape := []int{n}

	switch {
	case ints == n:
		data := make([]int64, n)
		for i, it := range items {
			data[i] = it.i
		}
		return NewArray(ElemInt64, shape, data)
	case ints+floats == n:
		data := make([]float64, n)
		for i, it := range items {
			if it.kind == IntKind {
				data[i] = float64(it.i)
			} else {
				data[i] = it.f
			}
		}
		return NewArray(ElemFloat64, shape, data)
	case strs == n:
		data := make([]string, n)
		for i, it := range items {
			data[i] = it.s
		}
		return NewArray(ElemString, shape, data)
	case bools == n:
		data := make([]bool, n)
		for i, it := range items {
			data[i] = it.b
		}
		return NewArray(ElemBool, shape, data)
	}
	return nil, nil
}

// stack joins equally shaped arrays along a new leading axis. It returns nil
// when the element types cannot be joined.
func stack(items []Value) (*Array, error) {
	first := items[0].arr
	elem := first.elem
	for _, it := range items[1:] {
		if !sameShape(first.shape, it.arr.shape) {
			return nil, fmt.Errorf("%w: shapes %s and %s", ErrRaggedArray, first.shapeString(), it.arr.shapeString())
		}
		var ok bool
		if elem, ok = join(elem, it.arr.elem); !ok {
			return nil, nil
		}
	}

	parts := make([]*Array, len(items))
	for i, it := range items {
		p, err := convert(it.arr, elem)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}

	shape := append([]int{len(items)}, first.shape...)
	merged := &Array{elem: elem, shape: shape}
	for _, p := range parts {
		merged.ints = append(merged.ints, p.ints...)
		merged.uints = append(merged.uints, p.uints...)
		merged.floats = append(merged.floats, p.floats...)
		merged.cplx = append(merged.cplx, p.cplx...)
		merged.bools = append(merged.bools, p.bools...)
		merged.strs = append(merged.strs, p.strs...)
		merged.objs = append(merged.objs, p.objs...)
	}
	return merged, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func join(a, b ElemType) (ElemType, bool) {
	switch {
	case a == b:
		return a, true
	case a.IsFloat() && b.IsFloat():
		return ElemFloat64, true
	case a.IsSigned() && b.IsSigned():
		return max(a, b), true
	case a.IsUnsigned() && b.IsUnsigned():
		return max(a, b), true
	case a.IsInteger() && b.IsInteger():
		return ElemInt64, true
	case (a.IsInteger() || a.IsFloat()) && (b.IsInteger() || b.IsFloat()):
		return ElemFloat64, true
	}
	return ElemInvalid, false
}

// convert retypes an array, validating that every element fits.
func convert(a *Array, elem ElemType) (*Array, error) {
	if a.elem == elem {
		return a, nil
	}
	n := a.Len()
	switch {
	case elem.IsFloat() && (a.elem.IsInteger() || a.elem.IsFloat()):
		data := make([]float64, n)
		for i := range data {
			data[i] = a.Float(i)
		}
		if elem == ElemFloat32 {
			for i, v := range data {
				data[i] = float64(float32(v))
			}
		}
		return NewArray(elem, a.shape, data)
	case elem.IsSigned() && a.elem.IsInteger():
		data := make([]int64, n)
		for i := range data {
			v, ok := a.Int(i)
			if !ok {
				return nil, fmt.Errorf("%w: element %d overflows %s", ErrElemData, i, elem)
			}
			data[i] = v
		}
		return NewArray(elem, a.shape, data)
	case elem.IsUnsigned() && a.elem.IsInteger():
		data := make([]uint64, n)
		for i := range data {
			if a.elem.IsUnsigned() {
				data[i] = a.uints[i]
				continue
			}
			if a.ints[i] < 0 {
				return nil, fmt.Errorf("%w: element %d is negative for %s", ErrElemData, i, elem)
			}
			data[i] = uint64(a.ints[i])
		}
		return NewArray(elem, a.shape, data)
	}
	return nil, fmt.Errorf("%w: cannot convert %s array to %s", ErrElemData, a.elem, elem)
}
