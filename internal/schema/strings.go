package schema

import (
	"bytes"
	"strings"
)

// CString reads a NUL-terminated string slot.
func CString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

// FString reads a blank-padded fixed-width slot, dropping trailing blanks.
func FString(buf []byte) string {
	return strings.TrimRight(string(buf), " ")
}

// FStrings reads n fields of width bytes from a string list slot.
func FStrings(buf []byte, width, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n && (i+1)*width <= len(buf); i++ {
		out = append(out, FString(buf[i*width:(i+1)*width]))
	}
	return out
}
