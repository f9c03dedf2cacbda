package ir

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Values of different kinds order by tag id. Lists order by element tag,
// then element-wise. Compounds compare their sorted entries pairwise, key
// before value. Floats order as cmp.Compare does, with NaN first; two
// floats with different bit patterns but equal values (0 and -0) compare
// by bits so that Compare agrees with Equal.
func Compare(a, b Value) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.Type(), b.Type()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case Byte:
		return cmp.Compare(x, b.(Byte))
	case Short:
		return cmp.Compare(x, b.(Short))
	case Int:
		return cmp.Compare(x, b.(Int))
	case Long:
		return cmp.Compare(x, b.(Long))
	case Float:
		y := b.(Float)
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
		return cmp.Compare(math.Float32bits(float32(x)), math.Float32bits(float32(y)))
	case Double:
		y := b.(Double)
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
		return cmp.Compare(math.Float64bits(float64(x)), math.Float64bits(float64(y)))
	case String:
		return strings.Compare(string(x), string(b.(String)))
	case ByteArray:
		return slices.Compare(x, b.(ByteArray))
	case IntArray:
		return slices.Compare(x, b.(IntArray))
	case LongArray:
		return slices.Compare(x, b.(LongArray))
	case Compound:
		return compareCompounds(x, b.(Compound))
	case List:
		return compareLists(x, b.(List))
	default:
		panic("type")
	}
}

func compareLists(a, b List) int {
	if c := cmp.Compare(a.ElemType(), b.ElemType()); c != 0 {
		return c
	}
	lenA, lenB := a.Len(), b.Len()
	for i := range min(lenA, lenB) {
		if c := Compare(a.At(i), b.At(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareCompounds(a, b Compound) int {
	ka, kb := sortedKeys(a), sortedKeys(b)
	for i := range min(len(ka), len(kb)) {
		if c := strings.Compare(ka[i], kb[i]); c != 0 {
			return c
		}
		if c := Compare(a[ka[i]], b[kb[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ka), len(kb))
}
