// Package encode writes named binary tag documents.
//
// # Usage
//
//	root := ir.Compound{"Nice": ir.Byte(-69)}
//	d, err := encode.EncodeBytes("root", root)
//
//	// or to a writer
//	err = encode.Encode("root", root, w)
//
// The encoder is the structural mirror of package decode: for any value it
// accepts, decoding its output yields the same name and tree. Values that
// cannot be represented (strings longer than 65535 bytes, invalid UTF-8,
// nil entries, arrays longer than MaxInt32) are rejected before anything is
// written.
//
// # Related Packages
//
//   - github.com/signadot/nbt-format/go-nbt/decode - the inverse
//   - github.com/signadot/nbt-format/go-nbt/ir - the value model
package encode
