package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"unicode/utf8"

	"github.com/signadot/nbt-format/go-nbt/debug"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

// maxPrealloc caps the capacity reserved from a declared length, so that
// a large count on a short stream fails by truncation before allocating.
const maxPrealloc = 1 << 12

type decState struct {
	r     io.ByteReader
	rd    io.Reader
	off   int64
	depth int
	buf   [8]byte
	opts  decOpts
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// singleByteReader gives a plain io.Reader a ReadByte method without
// buffering, so nothing past the document is consumed.
type singleByteReader struct {
	io.Reader
	b [1]byte
}

func (r *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.Reader, r.b[:]); err != nil {
		return 0, err
	}
	return r.b[0], nil
}

// Decode reads one root document from r. Exactly the bytes of the
// document are consumed, so consecutive documents may be read from one
// stream; callers wanting buffering should pass a *bufio.Reader, which is
// used as is.
func Decode(r io.Reader, opts ...DecodeOption) (string, ir.Value, error) {
	ds := &decState{opts: decOpts{maxDepth: DefaultMaxDepth}}
	for _, opt := range opts {
		opt(&ds.opts)
	}
	br, ok := r.(byteReader)
	if !ok {
		br = &singleByteReader{Reader: r}
	}
	ds.r = br
	ds.rd = br
	return ds.root()
}

// DecodeBytes reads one root document from d.
func DecodeBytes(d []byte, opts ...DecodeOption) (string, ir.Value, error) {
	return Decode(bytes.NewReader(d), opts...)
}

func (ds *decState) root() (string, ir.Value, error) {
	t, err := ds.tag("root tag")
	if err != nil {
		return "", nil, err
	}
	if !t.IsValue() {
		return "", nil, nbterr.NewMalformed("root tag", ds.off-1, "tag %d cannot start a document", byte(t))
	}
	if ds.opts.compoundRoot && t != ir.CompoundType {
		return "", nil, nbterr.NewMalformed("root kind", ds.off-1, "root is %s, not Compound", t)
	}
	name, err := ds.string("root name")
	if err != nil {
		return "", nil, err
	}
	if debug.Decode() {
		debug.Logf("decode: root %s %q\n", t, name)
	}
	v, err := ds.payload(t)
	if err != nil {
		return "", nil, err
	}
	if ds.opts.strict {
		if _, err := ds.r.ReadByte(); err == nil {
			return "", nil, nbterr.NewMalformed("end of document", ds.off, "trailing data")
		} else if err != io.EOF {
			return "", nil, ds.ioErr("end of document", err)
		}
	}
	return name, v, nil
}

func (ds *decState) ioErr(rule string, err error) error {
	var ne *nbterr.Error
	if errors.As(err, &ne) {
		return err
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nbterr.NewMalformed(rule, ds.off, "unexpected end of input")
	}
	return nbterr.NewIO(rule, ds.off, err)
}

func (ds *decState) read(rule string, n int) ([]byte, error) {
	b := ds.buf[:n]
	if _, err := io.ReadFull(ds.rd, b); err != nil {
		return nil, ds.ioErr(rule, err)
	}
	ds.off += int64(n)
	return b, nil
}

func (ds *decState) tag(rule string) (ir.Type, error) {
	c, err := ds.r.ReadByte()
	if err != nil {
		return 0, ds.ioErr(rule, err)
	}
	ds.off++
	t := ir.Type(c)
	if !t.Valid() {
		return 0, nbterr.NewMalformed(rule, ds.off-1, "unknown tag %d", c)
	}
	return t, nil
}

func (ds *decState) i8(rule string) (int8, error) {
	c, err := ds.r.ReadByte()
	if err != nil {
		return 0, ds.ioErr(rule, err)
	}
	ds.off++
	return int8(c), nil
}

func (ds *decState) u16(rule string) (uint16, error) {
	b, err := ds.read(rule, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (ds *decState) i16(rule string) (int16, error) {
	u, err := ds.u16(rule)
	return int16(u), err
}

func (ds *decState) i32(rule string) (int32, error) {
	b, err := ds.read(rule, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (ds *decState) i64(rule string) (int64, error) {
	b, err := ds.read(rule, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (ds *decState) f32(rule string) (float32, error) {
	b, err := ds.read(rule, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (ds *decState) f64(rule string) (float64, error) {
	b, err := ds.read(rule, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (ds *decState) length(rule string) (int, error) {
	start := ds.off
	n, err := ds.i32(rule)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, nbterr.NewMalformed(rule, start, "negative length %d", n)
	}
	return int(n), nil
}

func (ds *decState) string(rule string) (string, error) {
	n, err := ds.u16(rule + " length")
	if err != nil {
		return "", err
	}
	start := ds.off
	b := make([]byte, n)
	if _, err := io.ReadFull(ds.rd, b); err != nil {
		return "", ds.ioErr(rule, err)
	}
	ds.off += int64(n)
	if !utf8.Valid(b) {
		return "", nbterr.NewMalformed(rule, start, "invalid UTF-8")
	}
	return string(b), nil
}

func (ds *decState) push(rule string) error {
	ds.depth++
	if ds.depth > ds.opts.maxDepth {
		return nbterr.NewMalformed("depth", ds.off, "%s nested deeper than %d", rule, ds.opts.maxDepth)
	}
	return nil
}

func (ds *decState) pop() {
	ds.depth--
}

func (ds *decState) payload(t ir.Type) (ir.Value, error) {
	switch t {
	case ir.ByteType:
		v, err := ds.i8("Byte")
		return ir.Byte(v), err
	case ir.ShortType:
		v, err := ds.i16("Short")
		return ir.Short(v), err
	case ir.IntType:
		v, err := ds.i32("Int")
		return ir.Int(v), err
	case ir.LongType:
		v, err := ds.i64("Long")
		return ir.Long(v), err
	case ir.FloatType:
		v, err := ds.f32("Float")
		return ir.Float(v), err
	case ir.DoubleType:
		v, err := ds.f64("Double")
		return ir.Double(v), err
	case ir.ByteArrayType:
		return ds.byteArray()
	case ir.StringType:
		v, err := ds.string("String")
		return ir.String(v), err
	case ir.ListType:
		return ds.list()
	case ir.CompoundType:
		return ds.compound()
	case ir.IntArrayType:
		return ds.intArray()
	case ir.LongArrayType:
		return ds.longArray()
	default:
		return nil, nbterr.NewMalformed("value tag", ds.off-1, "tag %d is not a value", byte(t))
	}
}

func (ds *decState) byteArray() (ir.ByteArray, error) {
	n, err := ds.length("ByteArray length")
	if err != nil {
		return nil, err
	}
	res := make(ir.ByteArray, 0, min(n, maxPrealloc))
	chunk := make([]byte, min(n, maxPrealloc))
	for n > 0 {
		c := chunk[:min(n, len(chunk))]
		if _, err := io.ReadFull(ds.rd, c); err != nil {
			return nil, ds.ioErr("ByteArray", err)
		}
		ds.off += int64(len(c))
		for _, b := range c {
			res = append(res, int8(b))
		}
		n -= len(c)
	}
	return res, nil
}

func (ds *decState) intArray() (ir.IntArray, error) {
	n, err := ds.length("IntArray length")
	if err != nil {
		return nil, err
	}
	return readN[ir.IntArray](n, func() (int32, error) { return ds.i32("IntArray") })
}

func (ds *decState) longArray() (ir.LongArray, error) {
	n, err := ds.length("LongArray length")
	if err != nil {
		return nil, err
	}
	return readN[ir.LongArray](n, func() (int64, error) { return ds.i64("LongArray") })
}

func readN[L ~[]E, E any](n int, f func() (E, error)) (L, error) {
	res := make(L, 0, min(n, maxPrealloc))
	for range n {
		e, err := f()
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

func (ds *decState) compound() (ir.Compound, error) {
	if err := ds.push("Compound"); err != nil {
		return nil, err
	}
	defer ds.pop()
	res := ir.Compound{}
	for {
		t, err := ds.tag("Compound entry tag")
		if err != nil {
			return nil, err
		}
		if t == ir.EndType {
			return res, nil
		}
		key, err := ds.string("Compound key")
		if err != nil {
			return nil, err
		}
		v, err := ds.payload(t)
		if err != nil {
			return nil, err
		}
		res[key] = v
	}
}

func (ds *decState) list() (ir.List, error) {
	if err := ds.push("List"); err != nil {
		return nil, err
	}
	defer ds.pop()
	elem, err := ds.tag("List element tag")
	if err != nil {
		return nil, err
	}
	start := ds.off
	count, err := ds.i32("List length")
	if err != nil {
		return nil, err
	}
	if elem == ir.EndType {
		return ir.EmptyList{}, nil
	}
	if count < 0 {
		return nil, nbterr.NewMalformed("List length", start, "negative length %d", count)
	}
	n := int(count)
	switch elem {
	case ir.ByteType:
		return readN[ir.ByteList](n, func() (ir.Byte, error) {
			v, err := ds.i8("Byte")
			return ir.Byte(v), err
		})
	case ir.ShortType:
		return readN[ir.ShortList](n, func() (ir.Short, error) {
			v, err := ds.i16("Short")
			return ir.Short(v), err
		})
	case ir.IntType:
		return readN[ir.IntList](n, func() (ir.Int, error) {
			v, err := ds.i32("Int")
			return ir.Int(v), err
		})
	case ir.LongType:
		return readN[ir.LongList](n, func() (ir.Long, error) {
			v, err := ds.i64("Long")
			return ir.Long(v), err
		})
	case ir.FloatType:
		return readN[ir.FloatList](n, func() (ir.Float, error) {
			v, err := ds.f32("Float")
			return ir.Float(v), err
		})
	case ir.DoubleType:
		return readN[ir.DoubleList](n, func() (ir.Double, error) {
			v, err := ds.f64("Double")
			return ir.Double(v), err
		})
	case ir.ByteArrayType:
		return readN[ir.ByteArrayList](n, ds.byteArray)
	case ir.StringType:
		return readN[ir.StringList](n, func() (ir.String, error) {
			v, err := ds.string("String")
			return ir.String(v), err
		})
	case ir.ListType:
		return readN[ir.ListList](n, ds.list)
	case ir.CompoundType:
		return readN[ir.CompoundList](n, ds.compound)
	case ir.IntArrayType:
		return readN[ir.IntArrayList](n, ds.intArray)
	case ir.LongArrayType:
		return readN[ir.LongArrayList](n, ds.longArray)
	}
	panic("list element tag")
}
