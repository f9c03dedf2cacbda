package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nbt-format/go-nbt/encode"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "docs.db"), NoSync())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTest(t)
	v := ir.Compound{"Pos": ir.DoubleList{1, 2, 3}, "Name": ir.String("x")}
	before := time.Now().UTC().Add(-time.Second)
	if err := s.Put("player/1", "p", v); err != nil {
		t.Fatal(err)
	}
	name, got, err := s.Get("player/1")
	if err != nil {
		t.Fatal(err)
	}
	if name != "p" || !ir.Equal(got, v) {
		t.Errorf("got %q %#v", name, got)
	}
	m, err := s.Meta("player/1")
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := encode.EncodeBytes("p", v)
	if m.Name != "p" || m.Root != "Compound" || m.Size != len(raw) || m.Stored.Before(before) {
		t.Errorf("unexpected meta %+v", m)
	}
}

func TestReplace(t *testing.T) {
	s := openTest(t)
	for _, v := range []ir.Value{ir.Int(1), ir.String("two")} {
		if err := s.Put("k", "", v); err != nil {
			t.Fatal(err)
		}
	}
	_, got, err := s.Get("k")
	if err != nil || got != ir.String("two") {
		t.Errorf("got %#v, %v", got, err)
	}
}

func TestKeysDelete(t *testing.T) {
	s := openTest(t)
	for _, k := range []string{"b", "a", "c"} {
		if err := s.Put(k, k, ir.Compound{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Delete("b"); err != nil {
		t.Fatal(err)
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, keys); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := s.Delete("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
	if _, _, err := s.Get("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted: %v", err)
	}
	if _, err := s.Meta("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("meta deleted: %v", err)
	}
}

func TestPutInvalid(t *testing.T) {
	s := openTest(t)
	if err := s.Put("k", "", ir.String("\xff")); !errors.Is(err, nbterr.ErrMalformed) {
		t.Errorf("got %v", err)
	}
	if err := s.Put("", "", ir.Int(1)); err == nil {
		t.Error("expected error for empty key")
	}
	keys, _ := s.Keys()
	if len(keys) != 0 {
		t.Errorf("failed puts stored %v", keys)
	}
}

func TestReopen(t *testing.T) {
	p := filepath.Join(t.TempDir(), "docs.db")
	s, err := Open(p, NoSync())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("level", "", ir.LongArray{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	s, err = Open(p, Timeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	_, got, err := s.Get("level")
	if err != nil || !ir.Equal(got, ir.LongArray{1, 2}) {
		t.Errorf("got %#v, %v", got, err)
	}
}

func TestUnsortedEncoding(t *testing.T) {
	p := filepath.Join(t.TempDir(), "docs.db")
	s, err := Open(p, NoSync(), EncodeOptions(encode.SortKeys(false)))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	v := ir.Compound{"a": ir.Byte(1), "b": ir.Byte(2)}
	if err := s.Put("k", "", v); err != nil {
		t.Fatal(err)
	}
	if _, got, err := s.Get("k"); err != nil || !ir.Equal(got, v) {
		t.Errorf("got %#v, %v", got, err)
	}
}

func TestOpenError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "docs.db"))
	if !errors.Is(err, nbterr.ErrIO) {
		t.Errorf("got %v", err)
	}
}
