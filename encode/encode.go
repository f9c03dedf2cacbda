package encode

import (
	"encoding/binary"
	"io"
	"maps"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/signadot/nbt-format/go-nbt/debug"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

type EncState struct {
	buf      []byte
	depth    int
	maxDepth int
	sortKeys bool
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{sortKeys: true, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes the document (name, v) to w. Nothing is written if v
// cannot be encoded.
func Encode(name string, v ir.Value, w io.Writer, opts ...EncodeOption) error {
	d, err := EncodeBytes(name, v, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return nbterr.NewIO("write", -1, err)
	}
	return nil
}

// EncodeBytes returns the encoding of the document (name, v).
func EncodeBytes(name string, v ir.Value, opts ...EncodeOption) ([]byte, error) {
	es := newEncState(opts)
	return es.AppendDoc(nil, name, v)
}

// AppendDoc appends the encoding of (name, v) to dst.
func (es *EncState) AppendDoc(dst []byte, name string, v ir.Value) ([]byte, error) {
	es.buf = dst
	if v == nil {
		return nil, es.errf("root", "nil root value")
	}
	if debug.Encode() {
		debug.Logf("encode: root %s %q\n", v.Type(), name)
	}
	es.buf = append(es.buf, byte(v.Type()))
	if err := es.string("root name", name); err != nil {
		return nil, err
	}
	if err := es.payload(v); err != nil {
		return nil, err
	}
	return es.buf, nil
}

func (es *EncState) errf(rule, format string, args ...any) error {
	return nbterr.NewMalformed(rule, int64(len(es.buf)), format, args...)
}

func (es *EncState) string(rule, s string) error {
	if len(s) > math.MaxUint16 {
		return es.errf(rule, "string of %d bytes exceeds %d", len(s), math.MaxUint16)
	}
	if !utf8.ValidString(s) {
		return es.errf(rule, "invalid UTF-8")
	}
	es.buf = binary.BigEndian.AppendUint16(es.buf, uint16(len(s)))
	es.buf = append(es.buf, s...)
	return nil
}

func (es *EncState) length(rule string, n int) error {
	if n > math.MaxInt32 {
		return es.errf(rule, "length %d exceeds %d", n, math.MaxInt32)
	}
	es.buf = binary.BigEndian.AppendUint32(es.buf, uint32(n))
	return nil
}

func (es *EncState) push(rule string) error {
	es.depth++
	if es.depth > es.maxDepth {
		return es.errf("depth", "%s nested deeper than %d", rule, es.maxDepth)
	}
	return nil
}

func (es *EncState) pop() {
	es.depth--
}

func (es *EncState) payload(v ir.Value) error {
	switch x := v.(type) {
	case ir.Byte:
		es.buf = append(es.buf, byte(x))
	case ir.Short:
		es.buf = binary.BigEndian.AppendUint16(es.buf, uint16(x))
	case ir.Int:
		es.buf = binary.BigEndian.AppendUint32(es.buf, uint32(x))
	case ir.Long:
		es.buf = binary.BigEndian.AppendUint64(es.buf, uint64(x))
	case ir.Float:
		es.buf = binary.BigEndian.AppendUint32(es.buf, math.Float32bits(float32(x)))
	case ir.Double:
		es.buf = binary.BigEndian.AppendUint64(es.buf, math.Float64bits(float64(x)))
	case ir.ByteArray:
		return es.byteArray(x)
	case ir.String:
		return es.string("String", string(x))
	case ir.IntArray:
		return es.intArray(x)
	case ir.LongArray:
		return es.longArray(x)
	case ir.Compound:
		return es.compound(x)
	case ir.List:
		return es.list(x)
	case nil:
		return es.errf("value", "nil value")
	default:
		panic("type")
	}
	return nil
}

func (es *EncState) byteArray(x ir.ByteArray) error {
	if err := es.length("ByteArray length", len(x)); err != nil {
		return err
	}
	for _, b := range x {
		es.buf = append(es.buf, byte(b))
	}
	return nil
}

func (es *EncState) intArray(x ir.IntArray) error {
	if err := es.length("IntArray length", len(x)); err != nil {
		return err
	}
	for _, e := range x {
		es.buf = binary.BigEndian.AppendUint32(es.buf, uint32(e))
	}
	return nil
}

func (es *EncState) longArray(x ir.LongArray) error {
	if err := es.length("LongArray length", len(x)); err != nil {
		return err
	}
	for _, e := range x {
		es.buf = binary.BigEndian.AppendUint64(es.buf, uint64(e))
	}
	return nil
}

func (es *EncState) compound(c ir.Compound) error {
	if err := es.push("Compound"); err != nil {
		return err
	}
	defer es.pop()
	keys := slices.Collect(maps.Keys(c))
	if es.sortKeys {
		slices.Sort(keys)
	}
	for _, k := range keys {
		v := c[k]
		if v == nil {
			return es.errf("Compound entry", "nil value for key %q", k)
		}
		es.buf = append(es.buf, byte(v.Type()))
		if err := es.string("Compound key", k); err != nil {
			return err
		}
		if err := es.payload(v); err != nil {
			return err
		}
	}
	es.buf = append(es.buf, byte(ir.EndType))
	return nil
}

func (es *EncState) list(l ir.List) error {
	if err := es.push("List"); err != nil {
		return err
	}
	defer es.pop()
	es.buf = append(es.buf, byte(l.ElemType()))
	n := l.Len()
	if err := es.length("List length", n); err != nil {
		return err
	}
	switch x := l.(type) {
	case ir.EmptyList:
	case ir.ListList:
		for i, e := range x {
			if e == nil {
				return es.errf("List element", "nil list at %d", i)
			}
			if err := es.list(e); err != nil {
				return err
			}
		}
	case ir.CompoundList:
		for _, e := range x {
			if err := es.compound(e); err != nil {
				return err
			}
		}
	case ir.ByteList, ir.ShortList, ir.IntList, ir.LongList, ir.FloatList,
		ir.DoubleList, ir.ByteArrayList, ir.StringList, ir.IntArrayList, ir.LongArrayList:
		for i := range n {
			if err := es.payload(x.At(i)); err != nil {
				return err
			}
		}
	default:
		panic("list type")
	}
	return nil
}
