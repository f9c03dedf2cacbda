package libdiff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nbt-format/go-nbt/ir"
)

type opPath struct {
	Op   string
	Path string
}

func summarize(cs []Change) []opPath {
	res := make([]opPath, len(cs))
	for i, c := range cs {
		res[i] = opPath{c.Op.String(), c.Path}
	}
	return res
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to ir.Value
		want     []opPath
	}{
		{
			name: "equal",
			from: ir.Compound{"a": ir.Int(1)},
			to:   ir.Compound{"a": ir.Int(1)},
			want: []opPath{},
		},
		{
			name: "keys",
			from: ir.Compound{"a": ir.Int(1), "b": ir.Int(2), "c": ir.Int(3)},
			to:   ir.Compound{"b": ir.Int(2), "c": ir.Int(4), "d": ir.Int(5)},
			want: []opPath{{"delete", "$.a"}, {"replace", "$.c"}, {"insert", "$.d"}},
		},
		{
			name: "kind change",
			from: ir.Compound{"a": ir.Int(1)},
			to:   ir.Compound{"a": ir.Long(1)},
			want: []opPath{{"replace", "$.a"}},
		},
		{
			name: "list insert middle",
			from: ir.IntList{1, 2, 3},
			to:   ir.IntList{1, 9, 2, 3},
			want: []opPath{{"insert", "$[1]"}},
		},
		{
			name: "list delete",
			from: ir.StringList{"a", "b", "c"},
			to:   ir.StringList{"a", "c"},
			want: []opPath{{"delete", "$[1]"}},
		},
		{
			name: "list replace",
			from: ir.IntList{1, 2, 3},
			to:   ir.IntList{1, 5, 3},
			want: []opPath{{"replace", "$[1]"}},
		},
		{
			name: "list elem kind",
			from: ir.IntList{1},
			to:   ir.LongList{1},
			want: []opPath{{"replace", "$"}},
		},
		{
			name: "empty list vs zero list",
			from: ir.EmptyList{},
			to:   ir.IntList{},
			want: []opPath{{"replace", "$"}},
		},
		{
			name: "nested compound in list",
			from: ir.CompoundList{{"id": ir.String("stone")}, {"id": ir.String("dirt")}},
			to:   ir.CompoundList{{"id": ir.String("stone")}, {"id": ir.String("sand")}},
			want: []opPath{{"replace", "$[1].id"}},
		},
		{
			name: "quoted key",
			from: ir.Compound{"a.b": ir.Byte(1)},
			to:   ir.Compound{"a.b": ir.Byte(2)},
			want: []opPath{{"replace", "$.'a.b'"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(Diff(tt.from, tt.to))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatchReverse(t *testing.T) {
	pairs := []struct {
		from, to ir.Value
	}{
		{
			ir.Compound{"a": ir.Int(1), "l": ir.IntList{1, 2, 3, 4}},
			ir.Compound{"b": ir.Int(1), "l": ir.IntList{0, 2, 4, 5, 6}},
		},
		{
			ir.Compound{"inv": ir.CompoundList{{"n": ir.Byte(1)}, {"n": ir.Byte(2)}}},
			ir.Compound{"inv": ir.CompoundList{{"n": ir.Byte(3)}}},
		},
		{
			ir.ListList{ir.IntList{1}, ir.EmptyList{}},
			ir.ListList{ir.EmptyList{}, ir.IntList{1, 2}, ir.StringList{"x"}},
		},
		{
			ir.StringList{"a", "b", "c", "d"},
			ir.StringList{"x", "y"},
		},
		{ir.Int(1), ir.String("one")},
	}
	for i, p := range pairs {
		cs := Diff(p.from, p.to)
		got, err := Patch(p.from, cs)
		if err != nil {
			t.Fatalf("%d: patch: %v", i, err)
		}
		if !ir.Equal(got, p.to) {
			t.Errorf("%d: patch gave %#v, want %#v", i, got, p.to)
		}
		back, err := Patch(p.to, Reverse(cs))
		if err != nil {
			t.Fatalf("%d: reverse patch: %v", i, err)
		}
		if !ir.Equal(back, p.from) {
			t.Errorf("%d: reverse gave %#v, want %#v", i, back, p.from)
		}
	}
}

func TestPatchConflict(t *testing.T) {
	cs := Diff(ir.Compound{"a": ir.Int(1)}, ir.Compound{"a": ir.Int(2)})
	_, err := Patch(ir.Compound{"a": ir.Int(3)}, cs)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want conflict", err)
	}
}

func TestPatchDoesNotMutate(t *testing.T) {
	from := ir.Compound{"a": ir.Int(1)}
	cs := Diff(from, ir.Compound{"a": ir.Int(2)})
	if _, err := Patch(from, cs); err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(from, ir.Compound{"a": ir.Int(1)}) {
		t.Errorf("input mutated: %#v", from)
	}
}

func TestTextDiff(t *testing.T) {
	c := &Change{Op: Replace, From: ir.String("hello world"), To: ir.String("hello there")}
	if TextDiff(c) == "" {
		t.Error("expected text diff")
	}
	if TextDiff(&Change{Op: Replace, From: ir.Int(1), To: ir.Int(2)}) != "" {
		t.Error("unexpected text diff for ints")
	}
}
