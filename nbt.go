package nbt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/decode"
	"github.com/signadot/nbt-format/go-nbt/encode"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/libdiff"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

// Decode reads an uncompressed document from r.
func Decode(r io.Reader, opts ...decode.DecodeOption) (string, ir.Value, error) {
	return decode.Decode(r, opts...)
}

// Encode writes an uncompressed document to w.
func Encode(name string, v ir.Value, w io.Writer, opts ...encode.EncodeOption) error {
	return encode.Encode(name, v, w, opts...)
}

// DecodeCompressed reads a gzip compressed document from r.
func DecodeCompressed(r io.Reader, opts ...decode.DecodeOption) (string, ir.Value, error) {
	return DecodeWith(r, compression.Gzip, opts...)
}

// EncodeCompressed writes a gzip compressed document to w.
func EncodeCompressed(name string, v ir.Value, w io.Writer, opts ...encode.EncodeOption) error {
	return EncodeWith(name, v, w, compression.Gzip, opts...)
}

// DecodeWith reads a document compressed with k from r; k may be
// compression.Auto.
func DecodeWith(r io.Reader, k compression.Kind, opts ...decode.DecodeOption) (string, ir.Value, error) {
	zr, detected, err := compression.NewReader(r, k)
	if err != nil {
		return "", nil, err
	}
	name, v, err := decode.Decode(zr, opts...)
	if err == nil && detected != compression.None {
		// reading to the end verifies the stream checksum
		_, err = io.Copy(io.Discard, zr)
	}
	if cerr := zr.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return "", nil, err
	}
	return name, v, nil
}

// EncodeWith writes a document compressed with k to w. Nothing reaches the
// compressor if v cannot be encoded.
func EncodeWith(name string, v ir.Value, w io.Writer, k compression.Kind, opts ...encode.EncodeOption) error {
	d, err := encode.EncodeBytes(name, v, opts...)
	if err != nil {
		return err
	}
	zw, err := compression.NewWriter(w, k)
	if err != nil {
		return err
	}
	if _, err := zw.Write(d); err != nil {
		zw.Close()
		return nbterr.NewIO("write", -1, err)
	}
	if err := zw.Close(); err != nil {
		return nbterr.NewIO("write", -1, err)
	}
	return nil
}

// ReadFile reads the document in the file at path.
func ReadFile(path string, k compression.Kind, opts ...decode.DecodeOption) (*ir.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nbterr.NewIO("open", -1, err)
	}
	defer f.Close()
	name, v, err := DecodeWith(f, k, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ir.Doc{Name: name, Value: v}, nil
}

// WriteFile writes doc to the file at path, replacing it with ReplaceFile.
func WriteFile(path string, doc *ir.Doc, k compression.Kind, opts ...encode.EncodeOption) error {
	var buf bytes.Buffer
	if err := EncodeWith(doc.Name, doc.Value, &buf, k, opts...); err != nil {
		return err
	}
	return ReplaceFile(path, buf.Bytes())
}

// ReplaceFile writes d to a temporary file next to path and renames it
// over path, so a failed write leaves the previous content in place. An
// existing file keeps its permissions; a new one is created 0644.
func ReplaceFile(path string, d []byte) error {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nbterr.NewIO("create", -1, err)
	}
	_, err = tmp.Write(d)
	if err == nil {
		err = tmp.Chmod(mode)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nbterr.NewIO("write", -1, errors.Join(err, os.Remove(tmp.Name())))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nbterr.NewIO("rename", -1, errors.Join(err, os.Remove(tmp.Name())))
	}
	return nil
}

// Diff returns the changes turning a into b.
func Diff(a, b ir.Value) []libdiff.Change {
	return libdiff.Diff(a, b)
}
