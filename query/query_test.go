package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

func testDoc() *ir.Doc {
	return &ir.Doc{Name: "lvl", Value: ir.Compound{
		"Data": ir.Compound{
			"Player": ir.Compound{
				"Health": ir.Float(20),
				"Pos":    ir.DoubleList{0.5, 64, -1},
			},
			"Seeds": ir.LongArray{1, -1},
			"Rain":  ir.EmptyList{},
			"Name":  ir.String("world"),
		},
	}}
}

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`Data.Player.Health > 10`, true},
		{`Data.Name + "!"`, "world!"},
		{`len(Data.Player.Pos)`, 3},
		{`Data.Player.Pos[1]`, float64(64)},
		{`get("$.Data.Seeds")[1]`, int64(-1)},
		{`kind("$.Data.Rain")`, "List"},
		{`has("$.Data.Nope")`, false},
		{`has("$.Data.Name")`, true},
		{`docname()`, "lvl"},
		{`isarray("$.Data.Seeds")`, true},
		{`isarray("$.Data.Rain")`, false},
		{`truthy("$.Data.Rain")`, false},
		{`truthy("$.Data.Name")`, true},
		{`truthy("$.Data.Nope")`, false},
		{`num("$.Data.Player.Health") * 2`, float64(40)},
		{`num("$.Data.Player.Pos[2]")`, float64(-1)},
		{`cmp("$.Data.Player.Pos[0]", "$.Data.Player.Pos[1]")`, -1},
		{`cmp("$.Data.Name", "$.Data.Name")`, 0},
		{`paths("$.Data.Player")`, []any{
			"$.Data.Player", "$.Data.Player.Health", "$.Data.Player.Pos",
			"$.Data.Player.Pos[0]", "$.Data.Player.Pos[1]", "$.Data.Player.Pos[2]",
		}},
	}
	doc := testDoc()
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(tt.src, doc)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalValue(t *testing.T) {
	doc := testDoc()
	tests := []struct {
		src  string
		want ir.Value
	}{
		{`[1, 2]`, ir.IntList{1, 2}},
		{`{"a": Data.Name}`, ir.Compound{"a": ir.String("world")}},
		{`get("$.Data.Player")`, ir.Compound{"Health": ir.Float(20), "Pos": ir.DoubleList{0.5, 64, -1}}},
		{`Data.Rain`, ir.EmptyList{}},
	}
	for _, tt := range tests {
		got, err := EvalValue(tt.src, doc)
		if err != nil {
			t.Fatalf("%s: %v", tt.src, err)
		}
		if !ir.Equal(got, tt.want) {
			t.Errorf("%s: got %#v, want %#v", tt.src, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	ok, err := Match(`Data.Player.Health == 20 && has("$.Data.Seeds")`, testDoc())
	if err != nil || !ok {
		t.Errorf("got %v, %v", ok, err)
	}
	if _, err := Match(`Data.Name`, testDoc()); !errors.Is(err, nbterr.ErrCustom) {
		t.Errorf("non boolean: %v", err)
	}
}

func TestErrors(t *testing.T) {
	for _, src := range []string{`Nope + 1`, `Data.Name +`, `get("$.Data.Nope")`, `get("bad")`, `num("$.Data.Name")`, `truthy("bad")`} {
		if _, err := Eval(src, testDoc()); !errors.Is(err, nbterr.ErrCustom) {
			t.Errorf("%s: got %v, want custom error", src, err)
		}
	}
}

func TestNonCompoundRoot(t *testing.T) {
	got, err := Eval(`get("$")[0]`, &ir.Doc{Value: ir.IntArray{5}})
	if err != nil {
		t.Fatal(err)
	}
	if got != int32(5) {
		t.Errorf("got %#v", got)
	}
}
