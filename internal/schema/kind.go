package schema

// Kind tags a property variant.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindBool
	KindString
	KindFixedString
	KindPoint3
	KindIntPoint3
	KindFloatList
	KindIntList
	KindStringList
	KindArray2D
	KindArray3D

	// KindTotal is the number of property kinds.
	KindTotal = int(iota)
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindInt:         "int",
		KindDouble:      "double",
		KindBool:        "bool",
		KindString:      "string",
		KindFixedString: "fixed-string",
		KindPoint3:      "point3",
		KindIntPoint3:   "int-point3",
		KindFloatList:   "float-list",
		KindIntList:     "int-list",
		KindStringList:  "string-list",
		KindArray2D:     "array2d",
		KindArray3D:     "array3d",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}
