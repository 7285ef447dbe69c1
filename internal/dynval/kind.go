package dynval

type Kind int

const (
	NullKind Kind = iota
	IntKind
	FloatKind
	BoolKind
	StringKind
	TupleKind
	ArrayKind
	MapKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:   "null",
		IntKind:    "int",
		FloatKind:  "float",
		BoolKind:   "bool",
		StringKind: "string",
		TupleKind:  "tuple",
		ArrayKind:  "array",
		MapKind:    "map",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) IsScalar() bool {
	switch k {
	case IntKind, FloatKind, BoolKind, StringKind:
		return true
	default:
		return false
	}
}

// ElemType is the source element type of an array.
type ElemType int

const (
	ElemInvalid ElemType = iota
	ElemInt8
	ElemInt16
	ElemInt32
	ElemInt64
	ElemUint8
	ElemUint16
	ElemUint32
	ElemUint64
	ElemFloat32
	ElemFloat64
	ElemComplex64
	ElemComplex128
	ElemBool
	ElemString
	ElemObject
)

var elemNames = map[ElemType]string{
	ElemInt8:       "int8",
	ElemInt16:      "int16",
	ElemInt32:      "int32",
	ElemInt64:      "int64",
	ElemUint8:      "uint8",
	ElemUint16:     "uint16",
	ElemUint32:     "uint32",
	ElemUint64:     "uint64",
	ElemFloat32:    "float32",
	ElemFloat64:    "float64",
	ElemComplex64:  "complex64",
	ElemComplex128: "complex128",
	ElemBool:       "bool",
	ElemString:     "string",
	ElemObject:     "object",
}

func (e ElemType) String() string {
	if s, ok := elemNames[e]; ok {
		return s
	}
	return "<invalid elem>"
}

func (e ElemType) IsSigned() bool {
	return e >= ElemInt8 && e <= ElemInt64
}

func (e ElemType) IsUnsigned() bool {
	return e >= ElemUint8 && e <= ElemUint64
}

func (e ElemType) IsInteger() bool {
	return e.IsSigned() || e.IsUnsigned()
}

func (e ElemType) IsFloat() bool {
	return e == ElemFloat32 || e == ElemFloat64
}

func (e ElemType) IsComplex() bool {
	return e == ElemComplex64 || e == ElemComplex128
}

func (e ElemType) IsNumeric() bool {
	return e.IsInteger() || e.IsFloat() || e.IsComplex()
}

// Bits is the storage width of numeric element types, 0 otherwise.
func (e ElemType) Bits() int {
	switch e {
	case ElemInt8, ElemUint8:
		return 8
	case ElemInt16, ElemUint16:
		return 16
	case ElemInt32, ElemUint32, ElemFloat32:
		return 32
	case ElemInt64, ElemUint64, ElemFloat64, ElemComplex64:
		return 64
	case ElemComplex128:
		return 128
	default:
		return 0
	}
}
