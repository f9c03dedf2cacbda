package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nbt-format/go-nbt/format"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

func testDoc() *ir.Doc {
	return &ir.Doc{
		Name: "level",
		Value: ir.Compound{
			"byte":   ir.Byte(math.MinInt8),
			"short":  ir.Short(math.MaxInt16),
			"int":    ir.Int(math.MinInt32),
			"long":   ir.Long(math.MinInt64),
			"maxl":   ir.Long(math.MaxInt64),
			"float":  ir.Float(0.1),
			"whole":  ir.Float(20),
			"double": ir.Double(-12.25),
			"small":  ir.Double(2e-05),
			"big":    ir.Double(1e300),
			"f20":    ir.Float(1e20),
			"tiny":   ir.Float(1e-07),
			"nan":    ir.Float(float32(math.NaN())),
			"inf":    ir.Double(math.Inf(-1)),
			"str":    ir.String("minecraft:stone"),
			"bytes":  ir.ByteArray{-1, 0, 1},
			"ints":   ir.IntArray{},
			"longs":  ir.LongArray{math.MaxInt64},
			"el":     ir.EmptyList{},
			"zl":     ir.ShortList{},
			"pos":    ir.DoubleList{0.5, 64, -1},
			"inv":    ir.CompoundList{{"id": ir.String("x"), "Count": ir.Byte(3)}},
			"nested": ir.ListList{ir.EmptyList{}, ir.LongArrayList{{1, 2}}},
			"a.b":    ir.Compound{},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	want := testDoc()
	for _, f := range Formats() {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(f, want)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Unmarshal(f, d)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.EqualDocs(*got, *want) {
				t.Errorf("round trip mismatch: %#v", got)
			}
		})
	}
}

func TestJSONShape(t *testing.T) {
	doc := &ir.Doc{Name: "n", Value: ir.Compound{
		"a": ir.Byte(1),
		"f": ir.Float(0.1),
		"l": ir.IntList{1},
		"x": ir.Double(math.NaN()),
	}}
	d, err := Marshal(format.JSONFormat, doc)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, d); err != nil {
		t.Fatal(err)
	}
	want := `{"name":"n","type":"Compound","value":{` +
		`"a":{"type":"Byte","value":1},` +
		`"f":{"type":"Float","value":0.1},` +
		`"l":{"type":"List","value":{"elem":"Int","items":[1]}},` +
		`"x":{"type":"Double","value":"NaN"}}}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNegativeZero(t *testing.T) {
	want := &ir.Doc{Value: ir.Double(math.Copysign(0, -1))}
	for _, f := range []format.Format{format.JSONFormat, format.CBORFormat, format.MsgpackFormat} {
		d, err := Marshal(f, want)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Unmarshal(f, d)
		if err != nil {
			t.Fatal(err)
		}
		if !ir.EqualDocs(*got, *want) {
			t.Errorf("%s: got %v", f, got.Value)
		}
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		rule string
	}{
		{"not object", `[1]`, "value"},
		{"no name", `{"type":"Int","value":1}`, "name"},
		{"bad kind", `{"name":"","type":"Bool","value":1}`, "type"},
		{"end root", `{"name":"","type":"End","value":1}`, "type"},
		{"byte range", `{"name":"","type":"Byte","value":300}`, "value"},
		{"int as string", `{"name":"","type":"Int","value":"1"}`, "value"},
		{"fraction", `{"name":"","type":"Long","value":1.5}`, "value"},
		{"float range", `{"name":"","type":"Float","value":1e39}`, "value"},
		{"bad float word", `{"name":"","type":"Double","value":"nope"}`, "value"},
		{"float string range", `{"name":"","type":"Float","value":"1e39"}`, "value"},
		{"string kind", `{"name":"","type":"String","value":1}`, "value"},
		{"entry", `{"name":"","type":"Compound","value":{"a":1}}`, "value"},
		{"list elem", `{"name":"","type":"List","value":{"items":[]}}`, "elem"},
		{"end list items", `{"name":"","type":"List","value":{"elem":"End","items":[1]}}`, "type"},
		{"array", `{"name":"","type":"IntArray","value":{}}`, "value"},
		{"syntax", `{"name":`, "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(format.JSONFormat, []byte(tt.in))
			var ne *nbterr.Error
			if !errors.As(err, &ne) {
				t.Fatalf("got %v, want *nbterr.Error", err)
			}
			if ne.Kind != nbterr.Custom || ne.Rule != tt.rule {
				t.Errorf("got %s %q (%v), want custom %q", ne.Kind, ne.Rule, err, tt.rule)
			}
		})
	}
}

func TestFloatStrings(t *testing.T) {
	tests := []struct {
		in   string
		want ir.Value
	}{
		{`{"name":"","type":"Double","value":"2e-05"}`, ir.Double(2e-05)},
		{`{"name":"","type":"Double","value":"1E+300"}`, ir.Double(1e300)},
		{`{"name":"","type":"Float","value":"1e20"}`, ir.Float(1e20)},
		{`{"name":"","type":"Float","value":"-Inf"}`, ir.Float(float32(math.Inf(-1)))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Unmarshal(format.JSONFormat, []byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got.Value, tt.want) {
				t.Errorf("got %v, want %v", got.Value, tt.want)
			}
		})
	}
}

func TestNotInterchange(t *testing.T) {
	if _, err := Marshal(format.NBTFormat, testDoc()); !errors.Is(err, nbterr.ErrCustom) {
		t.Errorf("marshal nbt: %v", err)
	}
	if _, err := Unmarshal(format.SNBTFormat, nil); !errors.Is(err, nbterr.ErrCustom) {
		t.Errorf("unmarshal snbt: %v", err)
	}
	if _, err := Marshal(format.JSONFormat, &ir.Doc{Value: ir.Compound{"x": nil}}); !errors.Is(err, nbterr.ErrCustom) {
		t.Errorf("nil value: %v", err)
	}
}

func TestPlain(t *testing.T) {
	v := ir.Compound{
		"b":  ir.Byte(1),
		"l":  ir.IntList{1, 2},
		"a":  ir.LongArray{7},
		"el": ir.EmptyList{},
		"c":  ir.Compound{"s": ir.String("x"), "f": ir.Float(2)},
	}
	want := map[string]any{
		"b":  int8(1),
		"l":  []any{int32(1), int32(2)},
		"a":  []int64{7},
		"el": []any{},
		"c":  map[string]any{"s": "x", "f": float32(2)},
	}
	got := ToAny(v)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	back, err := FromAny(got)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(back, v) {
		t.Errorf("FromAny(ToAny(v)) = %#v", back)
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		in   any
		want ir.Value
	}{
		{true, ir.Byte(1)},
		{1, ir.Int(1)},
		{1 << 40, ir.Long(1 << 40)},
		{uint8(200), ir.Short(200)},
		{2.5, ir.Double(2.5)},
		{[]any{1, 2}, ir.IntList{1, 2}},
		{[]string{"a"}, ir.StringList{"a"}},
		{[]any{[]any{}}, ir.ListList{ir.EmptyList{}}},
		{ir.Short(4), ir.Short(4)},
	}
	for _, tt := range tests {
		got, err := FromAny(tt.in)
		if err != nil {
			t.Fatalf("%#v: %v", tt.in, err)
		}
		if !ir.Equal(got, tt.want) {
			t.Errorf("FromAny(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
	for _, in := range []any{nil, []any{1, "x"}, struct{}{}, uint64(math.MaxUint64)} {
		if _, err := FromAny(in); !errors.Is(err, nbterr.ErrCustom) {
			t.Errorf("FromAny(%#v): got %v, want custom error", in, err)
		}
	}
}
