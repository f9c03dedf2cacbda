// Package ir provides the in-memory value model for named binary tag
// documents.
//
// # Overview
//
// A document is a single named root value. Values form a tree of a closed
// set of kinds, each bound to the tag id used on the wire:
//
//	1  Byte       int8
//	2  Short      int16
//	3  Int        int32
//	4  Long       int64
//	5  Float      float32
//	6  Double     float64
//	7  ByteArray  []int8
//	8  String     UTF-8 text
//	9  List       homogeneous sequence, see below
//	10 Compound   map[string]Value
//	11 IntArray   []int32
//	12 LongArray  []int64
//
// Tag 0 (End) is never a value: it terminates a compound on the wire and is
// the element tag of an empty list.
//
// # Lists
//
// List is itself a closed set of variants, one per element kind (ByteList,
// IntList, CompoundList, ListList, ...) plus EmptyList. A list variant can
// only hold elements of its kind, so heterogeneous lists cannot be built.
// Use NewList to build a list from generic values; it checks the kinds.
//
// A zero length IntList and EmptyList are different values: the first is
// written with element tag Int, the second with element tag End.
//
// # Ownership
//
// Each node is owned by its parent. Get and Select return values that alias
// the tree; use Clone before handing a subtree to another owner. Nothing in
// this package locks; see package handle for a tree shared between
// goroutines.
//
// # Paths
//
// Get, Set, Delete and Select address values with paths of the form
//
//	$.Level.Player.Inventory[0].id
//
// where quoted fields ($.'a.b') allow keys containing path punctuation.
//
// # Related Packages
//
//   - github.com/signadot/nbt-format/go-nbt/decode - binary to tree
//   - github.com/signadot/nbt-format/go-nbt/encode - tree to binary
//   - github.com/signadot/nbt-format/go-nbt/snbt - textual projection
package ir
