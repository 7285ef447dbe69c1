package dynval

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is an immutable dynamically typed value. The zero Value is null.
type Value struct {
	kind    Kind
	i       int64
	f       float64
	b       bool
	s       string
	items   []Value
	arr     *Array
	entries []Entry
}

// Entry is one key/value pair of a map. Keys are values so that hosts can
// hand over non-string keys; the marshaler rejects them.
type Entry struct {
	Key   Value
	Value Value
}

func Null() Value { return Value{} }

func Int(v int64) Value { return Value{kind: IntKind, i: v} }

func Float(v float64) Value { return Value{kind: FloatKind, f: v} }

func Bool(v bool) Value { return Value{kind: BoolKind, b: v} }

func String(v string) Value { return Value{kind: StringKind, s: v} }

func TupleOf(items ...Value) Value {
	return Value{kind: TupleKind, items: append([]Value(nil), items...)}
}

// ArrayOf wraps an array. A nil array yields null.
func ArrayOf(a *Array) Value {
	if a == nil {
		return Null()
	}
	return Value{kind: ArrayKind, arr: a}
}

func MapOf(entries ...Entry) Value {
	return Value{kind: MapKind, entries: append([]Entry{}, entries...)}
}

// Pair builds a map entry with a string key.
func Pair(key string, v Value) Entry {
	return Entry{Key: String(key), Value: v}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == NullKind }

func (v Value) IsMap() bool { return v.kind == MapKind }

func (v Value) Int() (int64, bool) {
	return v.i, v.kind == IntKind
}

// Float returns the value of a float scalar. Int scalars are not promoted.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == FloatKind
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

func (v Value) Str() (string, bool) {
	return v.s, v.kind == StringKind
}

func (v Value) Items() ([]Value, bool) {
	return v.items, v.kind == TupleKind
}

func (v Value) Array() (*Array, bool) {
	return v.arr, v.kind == ArrayKind
}

// Entries returns the map entries in host order.
func (v Value) Entries() ([]Entry, bool) {
	return v.entries, v.kind == MapKind
}

// Get looks up a string key in a map value.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.entries {
		if k, ok := e.Key.Str(); ok && k == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Len is the number of tuple items, array elements or map entries.
func (v Value) Len() int {
	switch v.kind {
	case TupleKind:
		return len(v.items)
	case ArrayKind:
		return v.arr.Len()
	case MapKind:
		return len(v.entries)
	default:
		return 0
	}
}

// TypeName describes the value's type and shape for diagnostics,
// e.g. "float64 array of shape 3x3" or "tuple of 2".
func (v Value) TypeName() string {
	switch v.kind {
	case TupleKind:
		return fmt.Sprintf("tuple of %d", len(v.items))
	case ArrayKind:
		return fmt.Sprintf("%s array of shape %s", v.arr.elem, v.arr.shapeString())
	default:
		return v.kind.String()
	}
}

func (v Value) String() string {
	var b strings.Builder
	v.format(&b)
	return b.String()
}

func (v Value) format(b *strings.Builder) {
	switch v.kind {
	case NullKind:
		b.WriteString("null")
	case IntKind:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case FloatKind:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case BoolKind:
		b.WriteString(strconv.FormatBool(v.b))
	case StringKind:
		b.WriteString(strconv.Quote(v.s))
	case TupleKind:
		b.WriteByte('(')
		for i, it := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			it.format(b)
		}
		b.WriteByte(')')
	case ArrayKind:
		fmt.Fprintf(b, "array<%s>[%s]", v.arr.elem, v.arr.shapeString())
	case MapKind:
		b.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				b.WriteString(", ")
			}
			if k, ok := e.Key.Str(); ok {
				b.WriteString(k)
			} else {
				e.Key.format(b)
			}
			b.WriteString(": ")
			e.Value.format(b)
		}
		b.WriteByte('}')
	}
}
