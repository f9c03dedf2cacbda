// Package snbt provides the textual form of tag trees.
//
// Every kind stays distinguishable in text, so Parse(Print(v)) is v:
//
//	-69b  3s  3  3L  1.5f  1.5d        Byte Short Int Long Float Double
//	NaNf  Inff  -Inff  NaNd  Infd       non-finite floats
//	"text"                              String
//	[B;1b,2b]  [I;1,2]  [L;1L,2L]       ByteArray IntArray LongArray
//	[1,2,3]  [{a:1b},{}]                lists
//	[]                                  the empty list
//	[Int;]  [Compound;]                 zero length lists of a given kind
//	{key:1b,"odd key":"v"}              Compound
//
// The parser also accepts single quoted strings, unquoted words as strings,
// true and false as bytes, and unsuffixed decimals as doubles.
//
// # Usage
//
//	fmt.Println(snbt.String(v))
//	err := snbt.Print(v, os.Stdout, snbt.Indent(2), snbt.PrintColors(snbt.NewColors()))
//	v, err := snbt.Parse(`{Health:20f,Pos:[0.5d,64d,-12.25d]}`)
//
// # Related Packages
//
//   - github.com/signadot/nbt-format/go-nbt/interchange - JSON, YAML, CBOR, MessagePack
package snbt
