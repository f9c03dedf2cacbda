package ir

import (
	"math"
	"slices"
)

// Equal reports whether a and b are the same tree. Floats compare by bit
// pattern so that NaN payloads survive a round trip. A list variant of
// length zero is not equal to EmptyList: they differ on the wire.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case Byte, Short, Int, Long, String:
		return a == b
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return slices.Equal(x, b.(ByteArray))
	case IntArray:
		return slices.Equal(x, b.(IntArray))
	case LongArray:
		return slices.Equal(x, b.(LongArray))
	case Compound:
		return equalCompounds(x, b.(Compound))
	case List:
		return equalLists(x, b.(List))
	default:
		panic("type")
	}
}

func equalCompounds(a, b Compound) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func equalLists(a, b List) bool {
	if a.ElemType() != b.ElemType() {
		return false
	}
	n := a.Len()
	if n != b.Len() {
		return false
	}
	for i := range n {
		if !Equal(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}

// EqualDocs reports whether two root documents have the same name and tree.
func EqualDocs(a, b Doc) bool {
	return a.Name == b.Name && Equal(a.Value, b.Value)
}
