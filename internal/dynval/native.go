package dynval

import (
	"fmt"
	"math"
	"sort"
)

// FromAny converts a native Go value graph. Go maps have no order, so map
// entries are sorted by key to keep iteration deterministic.
func FromAny(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: uint64 %d overflows int64", ErrUnsupportedGoType, v)
		}
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return String(v), nil
	case []float64:
		return FloatArray(v), nil
	case []float32:
		return Float32Array(v), nil
	case []int64:
		return IntArray(v), nil
	case []int32:
		return Int32Array(v), nil
	case []int:
		wide := make([]int64, len(v))
		for i, e := range v {
			wide[i] = int64(e)
		}
		return IntArray(wide), nil
	case []string:
		return StringArray(v), nil
	case []bool:
		return BoolArray(v), nil
	case [][]float64:
		return nestedFloats2(v)
	case [][][]float64:
		return nestedFloats3(v)
	case []any:
		items := make([]Value, len(v))
		for i, e := range v {
			it, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = it
		}
		return FromSequence(items, ElemInvalid)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(v))
		for _, k := range keys {
			ev, err := FromAny(v[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			entries = append(entries, Pair(k, ev))
		}
		return Value{kind: MapKind, entries: entries}, nil
	case map[any]any:
		keys := make([]any, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})
		entries := make([]Entry, 0, len(v))
		for _, k := range keys {
			kv, err := FromAny(k)
			if err != nil {
				return Value{}, fmt.Errorf("key %v: %w", k, err)
			}
			ev, err := FromAny(v[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %v: %w", k, err)
			}
			entries = append(entries, Entry{Key: kv, Value: ev})
		}
		return Value{kind: MapKind, entries: entries}, nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedGoType, x)
}

func nestedFloats2(rows [][]float64) (Value, error) {
	items := make([]Value, len(rows))
	for i, r := range rows {
		items[i] = FloatArray(r)
	}
	return FromSequence(items, ElemInvalid)
}

func nestedFloats3(planes [][][]float64) (Value, error) {
	items := make([]Value, len(planes))
	for i, p := range planes {
		v, err := nestedFloats2(p)
		if err != nil {
			return Value{}, fmt.Errorf("plane %d: %w", i, err)
		}
		items[i] = v
	}
	return FromSequence(items, ElemInvalid)
}

// Interface converts the value back into plain Go values: nil, int64,
// float64, bool, string, []any for tuples and arrays (nested per axis) and
// map[string]any for maps. Non-string map keys are formatted with fmt.
func (v Value) Interface() any {
	switch v.kind {
	case IntKind:
		return v.i
	case FloatKind:
		return v.f
	case BoolKind:
		return v.b
	case StringKind:
		return v.s
	case TupleKind:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	case ArrayKind:
		return nestedAny(v.arr, 0, 0)
	case MapKind:
		out := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			k, ok := e.Key.Str()
			if !ok {
				k = e.Key.String()
			}
			out[k] = e.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

func nestedAny(a *Array, axis, offset int) []any {
	n := a.shape[axis]
	out := make([]any, n)
	if axis == len(a.shape)-1 {
		for i := 0; i < n; i++ {
			if a.elem.IsComplex() {
				out[i] = a.cplx[offset+i]
				continue
			}
			out[i] = a.At(offset + i).Interface()
		}
		return out
	}
	stride := 1
	for _, d := range a.shape[axis+1:] {
		stride *= d
	}
	for i := 0; i < n; i++ {
		out[i] = nestedAny(a, axis+1, offset+i*stride)
	}
	return out
}
