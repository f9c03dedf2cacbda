package handle

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

func testHandle() *Handle {
	return New("level", ir.Compound{
		"Data": ir.Compound{
			"Name": ir.String("world"),
			"Pos":  ir.DoubleList{1, 2, 3},
			"Ids":  ir.IntArray{7, 8},
		},
	})
}

func TestGetReturnsCopy(t *testing.T) {
	h := testHandle()
	v, err := h.Get("$.Data")
	if err != nil {
		t.Fatal(err)
	}
	v.(ir.Compound)["Name"] = ir.String("changed")
	got, err := h.Get("$.Data.Name")
	if err != nil {
		t.Fatal(err)
	}
	if got != ir.String("world") {
		t.Errorf("tree changed through returned value: %v", got)
	}
}

func TestGetIntoSetFrom(t *testing.T) {
	type data struct {
		Name string    `nbt:"Name"`
		Pos  []float64 `nbt:"Pos"`
		Ids  []int32   `nbt:"Ids"`
	}
	h := testHandle()
	var d data
	if err := h.GetInto("$.Data", &d); err != nil {
		t.Fatal(err)
	}
	want := data{Name: "world", Pos: []float64{1, 2, 3}, Ids: []int32{7, 8}}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	d.Name = "other"
	if err := h.SetFrom("$.Copy", d); err != nil {
		t.Fatal(err)
	}
	got, err := h.Get("$.Copy.Name")
	if err != nil {
		t.Fatal(err)
	}
	if got != ir.String("other") {
		t.Errorf("Copy.Name = %v", got)
	}
	if err := h.GetInto("$.Data.Name", &d); !errors.Is(err, nbterr.ErrCustom) {
		t.Errorf("string into struct: %v", err)
	}
}

func TestNewCopies(t *testing.T) {
	c := ir.Compound{"a": ir.Int(1)}
	h := New("", c)
	c["a"] = ir.Int(2)
	if got, _ := h.Get("$.a"); got != ir.Int(1) {
		t.Errorf("got %v", got)
	}
}

func TestEdits(t *testing.T) {
	h := testHandle()
	steps := []struct {
		op   string
		path string
		v    ir.Value
	}{
		{"set", "$.Data.Level", ir.Byte(3)},
		{"set", "$.Data.Pos[1]", ir.Double(9)},
		{"set", "$.Data.Pos[3]", ir.Double(4)},
		{"insert", "$.Data.Pos[0]", ir.Double(0)},
		{"delete", "$.Data.Ids", nil},
		{"insert", "$.Data.Tags", ir.EmptyList{}},
	}
	for _, s := range steps {
		var err error
		switch s.op {
		case "set":
			err = h.Set(s.path, s.v)
		case "insert":
			err = h.Insert(s.path, s.v)
		case "delete":
			err = h.Delete(s.path)
		}
		if err != nil {
			t.Fatalf("%s %s: %v", s.op, s.path, err)
		}
	}
	want := ir.Compound{"Data": ir.Compound{
		"Name":  ir.String("world"),
		"Pos":   ir.DoubleList{0, 1, 9, 3, 4},
		"Level": ir.Byte(3),
		"Tags":  ir.EmptyList{},
	}}
	if got := h.Doc().Value; !ir.Equal(got, want) {
		t.Errorf("got %#v", got)
	}
}

func TestFailedEditLeavesTree(t *testing.T) {
	h := testHandle()
	before := h.Doc()
	errs := []error{
		h.Set("$.Data.Pos[0]", ir.String("x")),
		h.Set("$.Data.Pos[9]", ir.Double(1)),
		h.Set("$.Missing.a", ir.Int(1)),
		h.Delete("$"),
		h.Delete("$.Data.Nope"),
		h.Insert("$.Data.Ids[0]", ir.Long(1)),
	}
	for i, err := range errs {
		if err == nil {
			t.Errorf("edit %d: expected error", i)
		}
	}
	if !ir.EqualDocs(*h.Doc(), *before) {
		t.Errorf("failed edits changed the tree: %#v", h.Doc())
	}
}

func TestKeysLen(t *testing.T) {
	h := testHandle()
	keys, err := h.Keys("$.Data")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Ids", "Name", "Pos"}, keys); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := h.Keys("$.Data.Pos"); !errors.Is(err, ir.ErrKind) {
		t.Errorf("keys of list: %v", err)
	}
	for path, want := range map[string]int{"$.Data": 3, "$.Data.Pos": 3, "$.Data.Ids": 2} {
		n, err := h.Len(path)
		if err != nil || n != want {
			t.Errorf("Len(%s) = %d, %v; want %d", path, n, err, want)
		}
	}
	if _, err := h.Len("$.Data.Name"); !errors.Is(err, ir.ErrKind) {
		t.Errorf("len of string: %v", err)
	}
}

func TestRange(t *testing.T) {
	h := testHandle()
	var got []string
	err := h.Range("$.Data.Ids", func(k string, v ir.Value) error {
		got = append(got, fmt.Sprintf("%s=%v", k, v))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"0=7", "1=8"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// fn may write through the handle
	err = h.Range("$.Data", func(k string, v ir.Value) error {
		return h.Set("$.Seen."+k, ir.Byte(1))
	})
	if err == nil {
		t.Fatal("expected error setting below missing Seen")
	}
	if err := h.Set("$.Seen", ir.Compound{}); err != nil {
		t.Fatal(err)
	}
	err = h.Range("$.Data", func(k string, v ir.Value) error {
		return h.Set("$.Seen."+k, ir.Byte(1))
	})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := h.Len("$.Seen"); n != 3 {
		t.Errorf("seen %d keys", n)
	}

	stop := errors.New("stop")
	calls := 0
	err = h.Range("$.Data.Pos", func(string, ir.Value) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("got %v after %d calls", err, calls)
	}
}

func TestWalk(t *testing.T) {
	h := testHandle()
	var got []string
	err := h.Walk("$.Data", func(p string, v ir.Value) error {
		got = append(got, p+" "+v.Type().String())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"$.Data Compound",
		"$.Data.Ids IntArray",
		"$.Data.Name String",
		"$.Data.Pos List",
		"$.Data.Pos[0] Double",
		"$.Data.Pos[1] Double",
		"$.Data.Pos[2] Double",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := h.Walk("$.Nope", func(string, ir.Value) error { return nil }); !errors.Is(err, ir.ErrNotFound) {
		t.Errorf("missing path: %v", err)
	}
}

func TestViewUpdate(t *testing.T) {
	h := testHandle()
	err := h.Update(func(v ir.Value) (ir.Value, error) {
		v.(ir.Compound)["x"] = ir.Int(1)
		return v, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	err = h.Update(func(v ir.Value) (ir.Value, error) {
		v.(ir.Compound)["y"] = ir.Int(1)
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	err = h.View(func(name string, v ir.Value) error {
		c := v.(ir.Compound)
		if name != "level" || c["x"] != ir.Int(1) || c["y"] != nil {
			return fmt.Errorf("unexpected tree %q %#v", name, v)
		}
		return nil
	})
	if err != nil {
		t.Error(err)
	}
}

func TestConcurrent(t *testing.T) {
	h := New("", ir.Compound{"n": ir.IntList{}})
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				n, err := h.Len("$.n")
				if err != nil {
					t.Error(err)
					return
				}
				_ = n
				if err := h.Update(func(v ir.Value) (ir.Value, error) {
					return ir.Set(v, "$.n[100000]", ir.Int(0))
				}); err == nil {
					t.Error("expected index error")
				}
				if err := h.Insert("$.n[0]", ir.Int(int32(i*100+j))); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if n, _ := h.Len("$.n"); n != 400 {
		t.Errorf("got %d elements, want 400", n)
	}
}

func TestOpenSave(t *testing.T) {
	p := filepath.Join(t.TempDir(), "level.dat")
	h := testHandle()
	if err := h.Save(p, compression.Gzip); err != nil {
		t.Fatal(err)
	}
	got, err := Open(p, compression.Auto)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.EqualDocs(*got.Doc(), *h.Doc()) {
		t.Errorf("got %#v", got.Doc())
	}
	got.SetName("other")
	if got.Name() != "other" {
		t.Errorf("name %q", got.Name())
	}
}
