// Package format names the document formats read and written by the nbt
// command: the binary format itself, its textual projection and the
// interchange formats.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f = format.FromPath("level.dat") // NBTFormat
//
// # Related Packages
//
//   - github.com/signadot/nbt-format/go-nbt/snbt - textual projection
//   - github.com/signadot/nbt-format/go-nbt/interchange - JSON, YAML, CBOR, MessagePack
package format
