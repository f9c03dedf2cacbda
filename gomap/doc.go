// Package gomap maps Go values to and from trees.
//
// # Usage
//
//	type Player struct {
//	    Name   string    `nbt:"name"`
//	    Health float32   `nbt:"Health"`
//	    Pos    []float64 `nbt:"Pos"`
//	    Seeds  []int64   `nbt:"Seeds,omitempty"`
//	}
//	v, err := gomap.ToValue(p)
//	err = gomap.FromValue(v, &p)
//
//	// straight to and from the binary format
//	d, err := gomap.Marshal("player", p)
//	name, err := gomap.Unmarshal(d, &p)
//
// Struct fields are named by their nbt tag, or the Go field name without
// one. The tag "-" skips a field and the option omitempty leaves out zero
// values. Embedded structs without a tag are flattened.
//
// Go kinds map to tree kinds by size: bool and int8 to Byte, int16 and
// uint8 to Short, int, int32 and uint16 to Int, int64 and the wider
// unsigned kinds to Long, float32 to Float, float64 to Double. Slices of
// int8 (or byte), int32 and int64 become ByteArray, IntArray and
// LongArray; other slices become lists and maps with string keys become
// compounds. Fields already holding tree values are copied as they are.
//
// Any mismatch is an nbterr.Custom error naming the path where it was
// found.
//
// # Related Packages
//
//   - github.com/signadot/nbt-format/go-nbt/ir - the tree
//   - github.com/signadot/nbt-format/go-nbt/interchange - untyped projections
package gomap
