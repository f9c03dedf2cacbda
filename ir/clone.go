package ir

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of v. The copy shares no mutable state with v.
func Clone(v Value) Value {
	switch x := v.(type) {
	case nil:
		return nil
	case Byte, Short, Int, Long, Float, Double, String, EmptyList:
		return x
	case ByteArray:
		return slices.Clone(x)
	case IntArray:
		return slices.Clone(x)
	case LongArray:
		return slices.Clone(x)
	case Compound:
		return CloneCompound(x)
	case ByteList:
		return slices.Clone(x)
	case ShortList:
		return slices.Clone(x)
	case IntList:
		return slices.Clone(x)
	case LongList:
		return slices.Clone(x)
	case FloatList:
		return slices.Clone(x)
	case DoubleList:
		return slices.Clone(x)
	case StringList:
		return slices.Clone(x)
	case ByteArrayList:
		return cloneEach(x, func(e ByteArray) ByteArray { return slices.Clone(e) })
	case IntArrayList:
		return cloneEach(x, func(e IntArray) IntArray { return slices.Clone(e) })
	case LongArrayList:
		return cloneEach(x, func(e LongArray) LongArray { return slices.Clone(e) })
	case ListList:
		return cloneEach(x, func(e List) List {
			if e == nil {
				return nil
			}
			return Clone(e).(List)
		})
	case CompoundList:
		return cloneEach(x, CloneCompound)
	default:
		panic("type")
	}
}

// CloneCompound returns a deep copy of c.
func CloneCompound(c Compound) Compound {
	if c == nil {
		return nil
	}
	res := make(Compound, len(c))
	for k, v := range c {
		res[k] = Clone(v)
	}
	return res
}

func cloneEach[E any, L ~[]E](l L, f func(E) E) L {
	if l == nil {
		return nil
	}
	res := make(L, len(l))
	for i, e := range l {
		res[i] = f(e)
	}
	return res
}

func sortedKeys(c Compound) []string {
	return slices.Sorted(maps.Keys(c))
}
