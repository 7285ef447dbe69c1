package schema

import (
	"errors"
	"fmt"
)

// Property is one configurable leaf: a name, a kind and a typed destination
// slot owned by the host engine. The set of variants is closed; only the
// constructors in this package produce them.
type Property interface {
	Name() string
	Kind() Kind
	// Expect describes the accepted input, e.g. "a 3-tuple of floats".
	Expect() string

	check() error
}

var errNilSlot = errors.New("nil slot")

type base struct {
	name string
}

func (b base) Name() string { return b.name }

type Int struct {
	base
	slot *int32
}

func NewInt(name string, slot *int32) *Int {
	return &Int{base: base{name}, slot: slot}
}

func (p *Int) Kind() Kind     { return KindInt }
func (p *Int) Expect() string { return "an integer" }
func (p *Int) Slot() *int32   { return p.slot }
func (p *Int) check() error   { return nonNil(p.slot == nil) }

type Double struct {
	base
	slot *float64
}

func NewDouble(name string, slot *float64) *Double {
	return &Double{base: base{name}, slot: slot}
}

func (p *Double) Kind() Kind     { return KindDouble }
func (p *Double) Expect() string { return "a double" }
func (p *Double) Slot() *float64 { return p.slot }
func (p *Double) check() error   { return nonNil(p.slot == nil) }

type Bool struct {
	base
	slot *bool
}

func NewBool(name string, slot *bool) *Bool {
	return &Bool{base: base{name}, slot: slot}
}

func (p *Bool) Kind() Kind     { return KindBool }
func (p *Bool) Expect() string { return "a boolean" }
func (p *Bool) Slot() *bool    { return p.slot }
func (p *Bool) check() error   { return nonNil(p.slot == nil) }

// String is a NUL-terminated string slot. At most len(buf)-1 bytes of text fit.
type String struct {
	base
	buf []byte
}

func NewString(name string, buf []byte) *String {
	return &String{base: base{name}, buf: buf}
}

func (p *String) Kind() Kind  { return KindString }
func (p *String) Buf() []byte { return p.buf }

// MaxLen is the longest string the slot holds.
func (p *String) MaxLen() int { return len(p.buf) - 1 }

func (p *String) Expect() string {
	return fmt.Sprintf("a string of at most %d bytes", p.MaxLen())
}

func (p *String) check() error {
	if len(p.buf) < 1 {
		return errors.New("string buffer needs room for the terminator")
	}
	return nil
}

// FixedString is a blank-padded fixed-width string slot with no terminator.
type FixedString struct {
	base
	buf []byte
}

func NewFixedString(name string, buf []byte) *FixedString {
	return &FixedString{base: base{name}, buf: buf}
}

func (p *FixedString) Kind() Kind  { return KindFixedString }
func (p *FixedString) Buf() []byte { return p.buf }
func (p *FixedString) Width() int  { return len(p.buf) }

func (p *FixedString) Expect() string {
	return fmt.Sprintf("a string of at most %d bytes", p.Width())
}

func (p *FixedString) check() error {
	if len(p.buf) == 0 {
		return errors.New("zero width")
	}
	return nil
}

type Point3 struct {
	base
	slot *[3]float64
}

func NewPoint3(name string, slot *[3]float64) *Point3 {
	return &Point3{base: base{name}, slot: slot}
}

func (p *Point3) Kind() Kind        { return KindPoint3 }
func (p *Point3) Expect() string    { return "a 3-tuple of floats" }
func (p *Point3) Slot() *[3]float64 { return p.slot }
func (p *Point3) check() error      { return nonNil(p.slot == nil) }

type IntPoint3 struct {
	base
	slot *[3]int32
}

func NewIntPoint3(name string, slot *[3]int32) *IntPoint3 {
	return &IntPoint3{base: base{name}, slot: slot}
}

func (p *IntPoint3) Kind() Kind      { return KindIntPoint3 }
func (p *IntPoint3) Expect() string  { return "a 3-tuple of integers" }
func (p *IntPoint3) Slot() *[3]int32 { return p.slot }
func (p *IntPoint3) check() error    { return nonNil(p.slot == nil) }

// FloatList is a variable-length list of doubles. The number of elements
// written is stored in the length slot.
type FloatList struct {
	base
	buf    []float64
	length *int32
}

func NewFloatList(name string, buf []float64, length *int32) *FloatList {
	return &FloatList{base: base{name}, buf: buf, length: length}
}

func (p *FloatList) Kind() Kind     { return KindFloatList }
func (p *FloatList) Buf() []float64 { return p.buf }
func (p *FloatList) Length() *int32 { return p.length }
func (p *FloatList) Capacity() int  { return len(p.buf) }

func (p *FloatList) Expect() string {
	return fmt.Sprintf("a float or a list of at most %d floats", p.Capacity())
}

func (p *FloatList) check() error {
	if p.length == nil {
		return errors.New("nil length slot")
	}
	return nonEmpty(len(p.buf))
}

type IntList struct {
	base
	buf    []int32
	length *int32
}

func NewIntList(name string, buf []int32, length *int32) *IntList {
	return &IntList{base: base{name}, buf: buf, length: length}
}

func (p *IntList) Kind() Kind     { return KindIntList }
func (p *IntList) Buf() []int32   { return p.buf }
func (p *IntList) Length() *int32 { return p.length }
func (p *IntList) Capacity() int  { return len(p.buf) }

func (p *IntList) Expect() string {
	return fmt.Sprintf("an integer or a list of at most %d integers", p.Capacity())
}

func (p *IntList) check() error {
	if p.length == nil {
		return errors.New("nil length slot")
	}
	return nonEmpty(len(p.buf))
}

// StringList lays strings out in contiguous blank-padded fields of Width bytes.
type StringList struct {
	base
	buf    []byte
	width  int
	length *int32
}

func NewStringList(name string, buf []byte, width int, length *int32) *StringList {
	return &StringList{base: base{name}, buf: buf, width: width, length: length}
}

func (p *StringList) Kind() Kind     { return KindStringList }
func (p *StringList) Buf() []byte    { return p.buf }
func (p *StringList) Width() int     { return p.width }
func (p *StringList) Length() *int32 { return p.length }

// Capacity is the number of fields that fit in the buffer.
func (p *StringList) Capacity() int {
	if p.width <= 0 {
		return 0
	}
	return len(p.buf) / p.width
}

func (p *StringList) Expect() string {
	return fmt.Sprintf("a string or a list of at most %d strings of at most %d bytes", p.Capacity(), p.width)
}

func (p *StringList) check() error {
	if p.length == nil {
		return errors.New("nil length slot")
	}
	if p.width <= 0 {
		return fmt.Errorf("field width %d", p.width)
	}
	return nonEmpty(p.Capacity())
}

// Array2D is a d1 x d2 matrix of doubles stored column-major: element
// (i, j) lives at Buf[i + j*d1].
type Array2D struct {
	base
	buf  []float64
	dims [2]int
}

func NewArray2D(name string, buf []float64, d1, d2 int) *Array2D {
	return &Array2D{base: base{name}, buf: buf, dims: [2]int{d1, d2}}
}

func (p *Array2D) Kind() Kind     { return KindArray2D }
func (p *Array2D) Buf() []float64 { return p.buf }
func (p *Array2D) Dims() [2]int   { return p.dims }

// Index is the linear destination index of element (i, j).
func (p *Array2D) Index(i, j int) int { return i + j*p.dims[0] }

func (p *Array2D) Expect() string {
	return fmt.Sprintf("a %dx%d array of floats", p.dims[0], p.dims[1])
}

func (p *Array2D) check() error {
	return dimsFit(len(p.buf), p.dims[:])
}

// Array3D is a d1 x d2 x d3 array of doubles stored with the first axis
// fastest: element (i, j, k) lives at Buf[i + (j + k*d2)*d1].
type Array3D struct {
	base
	buf  []float64
	dims [3]int
}

func NewArray3D(name string, buf []float64, d1, d2, d3 int) *Array3D {
	return &Array3D{base: base{name}, buf: buf, dims: [3]int{d1, d2, d3}}
}

func (p *Array3D) Kind() Kind     { return KindArray3D }
func (p *Array3D) Buf() []float64 { return p.buf }
func (p *Array3D) Dims() [3]int   { return p.dims }

func (p *Array3D) Index(i, j, k int) int {
	return i + (j+k*p.dims[1])*p.dims[0]
}

func (p *Array3D) Expect() string {
	return fmt.Sprintf("a %dx%dx%d array of floats", p.dims[0], p.dims[1], p.dims[2])
}

func (p *Array3D) check() error {
	return dimsFit(len(p.buf), p.dims[:])
}

func nonNil(isNil bool) error {
	if isNil {
		return errNilSlot
	}
	return nil
}

func nonEmpty(capacity int) error {
	if capacity == 0 {
		return errors.New("zero capacity")
	}
	return nil
}

func dimsFit(n int, dims []int) error {
	need := 1
	for _, d := range dims {
		if d <= 0 {
			return fmt.Errorf("dimension %d in %v", d, dims)
		}
		need *= d
	}
	if n < need {
		return fmt.Errorf("buffer of %d holds fewer than %d elements", n, need)
	}
	return nil
}
