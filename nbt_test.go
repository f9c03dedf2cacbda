package nbt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/libdiff"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

func testTree() ir.Compound {
	return ir.Compound{
		"Data": ir.Compound{
			"LevelName": ir.String("world"),
			"Time":      ir.Long(123456789),
			"Player": ir.Compound{
				"Pos":       ir.DoubleList{0.5, 64, -12.25},
				"Health":    ir.Float(20),
				"Inventory": ir.CompoundList{{"id": ir.String("minecraft:stone"), "Count": ir.Byte(64)}},
			},
			"Seeds": ir.LongArray{1, -1},
			"Rain":  ir.EmptyList{},
		},
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	v := testTree()
	var buf bytes.Buffer
	if err := EncodeCompressed("", v, &buf); err != nil {
		t.Fatal(err)
	}
	if got := compression.Detect(buf.Bytes()); got != compression.Gzip {
		t.Errorf("detected %s, want gzip", got)
	}
	name, got, err := DecodeCompressed(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if name != "" || !ir.Equal(got, v) {
		t.Errorf("round trip mismatch: %q %#v", name, got)
	}
}

func TestUncompressedRoundTrip(t *testing.T) {
	v := testTree()
	var buf bytes.Buffer
	if err := Encode("root", v, &buf); err != nil {
		t.Fatal(err)
	}
	name, got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if name != "root" || !ir.Equal(got, v) {
		t.Errorf("round trip mismatch: %q %#v", name, got)
	}
}

func TestCompressedTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCompressed("x", testTree(), &buf); err != nil {
		t.Fatal(err)
	}
	d := buf.Bytes()
	for _, n := range []int{0, 5, len(d) / 2, len(d) - 4, len(d) - 1} {
		_, _, err := DecodeCompressed(bytes.NewReader(d[:n]))
		if !errors.Is(err, nbterr.ErrCompression) {
			t.Errorf("prefix %d: got %v, want compression error", n, err)
		}
	}
}

func TestCompressedMalformed(t *testing.T) {
	var buf bytes.Buffer
	w, err := compression.NewWriter(&buf, compression.Gzip)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte{0x0D, 0, 0})
	w.Close()
	_, _, err = DecodeCompressed(&buf)
	if !errors.Is(err, nbterr.ErrMalformed) {
		t.Fatalf("got %v, want malformed", err)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	doc := &ir.Doc{Name: "level", Value: testTree()}
	for _, k := range []compression.Kind{compression.None, compression.Gzip, compression.Zlib} {
		t.Run(k.String(), func(t *testing.T) {
			p := filepath.Join(dir, "level"+k.Suffix())
			if err := WriteFile(p, doc, k); err != nil {
				t.Fatal(err)
			}
			got, err := ReadFile(p, compression.Auto)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.EqualDocs(*got, *doc) {
				t.Errorf("got %#v", got)
			}
		})
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 3 {
		t.Errorf("got %d files, want 3: temporary file left behind", len(ents))
	}
}

func TestReplaceFileMode(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		prev os.FileMode
		want os.FileMode
	}{
		{"new", 0, 0644},
		{"keeps 0640", 0640, 0640},
		{"keeps 0600", 0600, 0600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, tt.name+".nbt")
			if tt.prev != 0 {
				if err := os.WriteFile(p, []byte("old"), tt.prev); err != nil {
					t.Fatal(err)
				}
				if err := os.Chmod(p, tt.prev); err != nil {
					t.Fatal(err)
				}
			}
			if err := ReplaceFile(p, []byte("new")); err != nil {
				t.Fatal(err)
			}
			fi, err := os.Stat(p)
			if err != nil {
				t.Fatal(err)
			}
			if got := fi.Mode().Perm(); got != tt.want {
				t.Errorf("mode %v, want %v", got, tt.want)
			}
			d, err := os.ReadFile(p)
			if err != nil {
				t.Fatal(err)
			}
			if string(d) != "new" {
				t.Errorf("content %q", d)
			}
		})
	}
}

func TestWriteFileInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.nbt")
	err := WriteFile(p, &ir.Doc{Value: ir.String("\xff")}, compression.Gzip)
	if !errors.Is(err, nbterr.ErrMalformed) {
		t.Fatalf("got %v, want malformed", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("file created on failure: %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope"), compression.Auto)
	if !errors.Is(err, nbterr.ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
}

func TestDiff(t *testing.T) {
	a := testTree()
	b := ir.CloneCompound(a)
	var err error
	if _, err = ir.Set(b, "$.Data.Player.Health", ir.Float(3.5)); err != nil {
		t.Fatal(err)
	}
	cs := Diff(a, b)
	if len(cs) != 1 || cs[0].Path != "$.Data.Player.Health" || cs[0].Op != libdiff.Replace {
		t.Fatalf("unexpected diff %v", cs)
	}
}
