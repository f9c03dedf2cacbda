// Package nbt reads and writes named binary tag documents.
//
// A document is a single named root value: a tree of integers, floats,
// strings, fixed-width arrays, homogeneous lists and compounds, encoded
// with big-endian tag-prefixed framing and usually wrapped in gzip.
//
// # Usage
//
//	name, v, err := nbt.DecodeCompressed(r)
//	...
//	v, err = ir.Set(v, "$.Data.Player.Health", ir.Float(20))
//	err = nbt.EncodeCompressed(name, v, w)
//
//	// files, detecting compression
//	doc, err := nbt.ReadFile("level.dat", compression.Auto)
//
// # Related Packages
//
//   - github.com/signadot/nbt-format/go-nbt/ir - the value model and paths
//   - github.com/signadot/nbt-format/go-nbt/decode - the raw decoder and its options
//   - github.com/signadot/nbt-format/go-nbt/encode - the raw encoder and its options
//   - github.com/signadot/nbt-format/go-nbt/snbt - the textual projection
//   - github.com/signadot/nbt-format/go-nbt/handle - a tree shared between goroutines
package nbt
