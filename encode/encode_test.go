package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nbt-format/go-nbt/decode"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

func TestEncodeNice(t *testing.T) {
	got, err := EncodeBytes("root", ir.Compound{"Nice": ir.Byte(-69)})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x0A, 0x00, 0x04, 'r', 'o', 'o', 't',
		0x01, 0x00, 0x04, 'N', 'i', 'c', 'e', 0xBB,
		0x00,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeWire(t *testing.T) {
	tests := []struct {
		name string
		v    ir.Value
		want []byte
	}{
		{"nums", ir.Compound{"nums": ir.IntList{1, 2, 3}}, []byte{
			0x0A, 0, 0,
			0x09, 0, 4, 'n', 'u', 'm', 's', 0x03, 0, 0, 0, 3,
			0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3,
			0x00,
		}},
		{"long array tag", ir.LongArray{1}, []byte{
			0x0C, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1,
		}},
		{"empty list", ir.EmptyList{}, []byte{0x09, 0, 0, 0x00, 0, 0, 0, 0}},
		{"zero int list", ir.IntList{}, []byte{0x09, 0, 0, 0x03, 0, 0, 0, 0}},
		{"array list lengths", ir.ByteArrayList{{1}, {2, 3, 4}}, []byte{
			0x09, 0, 0, 0x07, 0, 0, 0, 2,
			0, 0, 0, 1, 1,
			0, 0, 0, 3, 2, 3, 4,
		}},
		{"long array list", ir.LongArrayList{{}, {9}}, []byte{
			0x09, 0, 0, 0x0C, 0, 0, 0, 2,
			0, 0, 0, 0,
			0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 9,
		}},
		{"sorted keys", ir.Compound{"b": ir.Byte(2), "a": ir.Byte(1)}, []byte{
			0x0A, 0, 0,
			0x01, 0, 1, 'a', 1,
			0x01, 0, 1, 'b', 2,
			0x00,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBytes("", tt.v)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	v := ir.Compound{
		"byte":   ir.Byte(math.MinInt8),
		"short":  ir.Short(math.MaxInt16),
		"int":    ir.Int(-1),
		"long":   ir.Long(math.MinInt64),
		"float":  ir.Float(float32(math.Inf(-1))),
		"double": ir.Double(math.NaN()),
		"bytes":  ir.ByteArray{-1, 0, 1},
		"str":    ir.String("héllo ✓"),
		"ints":   ir.IntArray{math.MaxInt32},
		"longs":  ir.LongArray{math.MaxInt64, 0},
		"empty":  ir.EmptyList{},
		"zero":   ir.DoubleList{},
		"nested": ir.ListList{ir.StringList{"x"}, ir.EmptyList{}, ir.CompoundList{{"k": ir.Short(3)}}},
		"arrs":   ir.IntArrayList{{1, 2}, {}, {3}},
		"deep":   ir.Compound{"a": ir.Compound{"b": ir.FloatList{0.5}}},
	}
	d, err := EncodeBytes("level", v)
	if err != nil {
		t.Fatal(err)
	}
	name, got, err := decode.DecodeBytes(d, decode.Strict())
	if err != nil {
		t.Fatal(err)
	}
	if name != "level" {
		t.Errorf("name = %q", name)
	}
	if !ir.Equal(v, got) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, v)
	}
	again, err := EncodeBytes(name, got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d, again) {
		t.Error("re-encoding is not byte identical")
	}
}

func TestUnsorted(t *testing.T) {
	v := ir.Compound{"b": ir.Byte(2), "a": ir.Byte(1), "c": ir.Byte(3)}
	d, err := EncodeBytes("", v, SortKeys(false))
	if err != nil {
		t.Fatal(err)
	}
	_, got, err := decode.DecodeBytes(d)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(v, got) {
		t.Errorf("got %#v", got)
	}
}

func TestRejected(t *testing.T) {
	long := strings.Repeat("x", math.MaxUint16+1)
	tests := []struct {
		name string
		root string
		v    ir.Value
		opts []EncodeOption
		rule string
	}{
		{"nil root", "", nil, nil, "root"},
		{"long name", long, ir.Byte(0), nil, "root name"},
		{"long string", "", ir.String(long), nil, "String"},
		{"long key", "", ir.Compound{long: ir.Byte(0)}, nil, "Compound key"},
		{"bad utf8", "", ir.String("\xff"), nil, "String"},
		{"bad utf8 name", "\xc0", ir.Byte(0), nil, "root name"},
		{"nil entry", "", ir.Compound{"a": nil}, nil, "Compound entry"},
		{"nil nested list", "", ir.ListList{nil}, nil, "List element"},
		{"bad string in list", "", ir.StringList{"ok", "\xfe"}, nil, "String"},
		{"depth", "", ir.Compound{"a": ir.Compound{"b": ir.Compound{}}}, []EncodeOption{MaxDepth(2)}, "depth"},
		{"default depth", "", nested(600), nil, "depth"},
		{"zero restores default", "", nested(DefaultMaxDepth + 1), []EncodeOption{MaxDepth(0)}, "depth"},
		{"deep lists", "", nestedLists(DefaultMaxDepth + 1), nil, "depth"},
		{"cycle", "", cyclic(), nil, "depth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(tt.root, tt.v, &buf, tt.opts...)
			var ne *nbterr.Error
			if !errors.As(err, &ne) {
				t.Fatalf("got %v, want *nbterr.Error", err)
			}
			if ne.Kind != nbterr.Malformed || ne.Rule != tt.rule {
				t.Errorf("got %s %q, want malformed %q", ne.Kind, ne.Rule, tt.rule)
			}
			if buf.Len() != 0 {
				t.Errorf("%d bytes written on failure", buf.Len())
			}
		})
	}
}

func nested(n int) ir.Value {
	var v ir.Value = ir.Compound{}
	for range n - 1 {
		v = ir.Compound{"x": v}
	}
	return v
}

func nestedLists(n int) ir.Value {
	var v ir.Value = ir.EmptyList{}
	for range n - 1 {
		v = ir.ListList{v.(ir.List)}
	}
	return v
}

func cyclic() ir.Value {
	c := ir.Compound{}
	c["x"] = c
	return c
}

func TestDepthWithinLimit(t *testing.T) {
	d, err := EncodeBytes("", nested(DefaultMaxDepth))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := decode.DecodeBytes(d); err != nil {
		t.Fatal(err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	err := Encode("", ir.Int(1), failWriter{})
	if !errors.Is(err, nbterr.ErrIO) {
		t.Fatalf("got %v, want io error", err)
	}
}
