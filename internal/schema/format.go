package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders the current content of p's slot.
func Format(p Property) string {
	switch p := p.(type) {
	case *Int:
		return strconv.FormatInt(int64(*p.slot), 10)
	case *Double:
		return formatFloat(*p.slot)
	case *Bool:
		return strconv.FormatBool(*p.slot)
	case *String:
		return strconv.Quote(CString(p.buf))
	case *FixedString:
		return strconv.Quote(FString(p.buf))
	case *Point3:
		return fmt.Sprintf("(%s, %s, %s)", formatFloat(p.slot[0]), formatFloat(p.slot[1]), formatFloat(p.slot[2]))
	case *IntPoint3:
		return fmt.Sprintf("(%d, %d, %d)", p.slot[0], p.slot[1], p.slot[2])
	case *FloatList:
		return list(int(*p.length), func(i int) string { return formatFloat(p.buf[i]) })
	case *IntList:
		return list(int(*p.length), func(i int) string { return strconv.FormatInt(int64(p.buf[i]), 10) })
	case *StringList:
		names := FStrings(p.buf, p.width, int(*p.length))
		return list(len(names), func(i int) string { return strconv.Quote(names[i]) })
	case *Array2D:
		rows := make([]string, p.dims[0])
		for i := range rows {
			rows[i] = list(p.dims[1], func(j int) string { return formatFloat(p.buf[p.Index(i, j)]) })
		}
		return "[" + strings.Join(rows, ", ") + "]"
	case *Array3D:
		return fmt.Sprintf("<%dx%dx%d array>", p.dims[0], p.dims[1], p.dims[2])
	default:
		return "<?>"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func list(n int, item func(int) string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = item(i)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
