package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of v, consistent with Equal within one
// process. It panics if v is nil.
func Hash(v Value) uint64 {
	if v == nil {
		panic("ir: Hash called on nil value")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	hashInto(&h, v)
	return h.Sum64()
}

func hashInto(h *maphash.Hash, v Value) {
	var b [8]byte
	putU64 := func(u uint64) {
		binary.LittleEndian.PutUint64(b[:], u)
		h.Write(b[:])
	}
	h.WriteByte(byte(v.Type()))
	switch x := v.(type) {
	case Byte, Short, Int, Long:
		i, _ := AsInt64(x)
		putU64(uint64(i))
	case Float:
		putU64(uint64(math.Float32bits(float32(x))))
	case Double:
		putU64(math.Float64bits(float64(x)))
	case String:
		h.WriteString(string(x))
	case ByteArray:
		putU64(uint64(len(x)))
		for _, e := range x {
			h.WriteByte(byte(e))
		}
	case IntArray:
		putU64(uint64(len(x)))
		for _, e := range x {
			putU64(uint64(e))
		}
	case LongArray:
		putU64(uint64(len(x)))
		for _, e := range x {
			putU64(uint64(e))
		}
	case List:
		h.WriteByte(byte(x.ElemType()))
		n := x.Len()
		putU64(uint64(n))
		for i := range n {
			hashInto(h, x.At(i))
		}
	case Compound:
		// key order is not significant, so entries go in sorted
		putU64(uint64(len(x)))
		for _, k := range sortedKeys(x) {
			h.WriteString(k)
			h.WriteByte(0)
			hashInto(h, x[k])
		}
	default:
		panic("type")
	}
}
