package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	nbt "github.com/signadot/nbt-format/go-nbt"
	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/decode"
	"github.com/signadot/nbt-format/go-nbt/encode"
	"github.com/signadot/nbt-format/go-nbt/format"
	"github.com/signadot/nbt-format/go-nbt/interchange"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/snbt"

	"github.com/scott-cotton/cli"
)

// docFile is a document read from a file or standard input ("-"), with
// what was detected about its encoding.
type docFile struct {
	Path        string
	Format      format.Format
	Compression compression.Kind
	Doc         *ir.Doc
}

func readDoc(cfg *MainConfig, cc *cli.Context, path string) (*docFile, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	f := cfg.inFormat(path)
	doc, k, err := decodeDoc(d, f, cfg.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	theLog.Debug("read document", "path", path, "format", f, "compression", k, "name", doc.Name)
	return &docFile{Path: path, Format: f, Compression: k, Doc: doc}, nil
}

// decodeDoc decompresses d, whatever its compression, and decodes it in
// format f.
func decodeDoc(d []byte, f format.Format, maxDepth int) (*ir.Doc, compression.Kind, error) {
	zr, k, err := compression.NewReader(bytes.NewReader(d), compression.Auto)
	if err != nil {
		return nil, k, err
	}
	raw, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, k, err
	}
	switch f {
	case format.NBTFormat:
		name, v, err := decode.DecodeBytes(raw, decode.MaxDepth(maxDepth))
		if err != nil {
			return nil, k, err
		}
		return &ir.Doc{Name: name, Value: v}, k, nil
	case format.SNBTFormat:
		name, v, err := snbt.ParseDocument(string(raw), snbt.MaxDepth(maxDepth))
		if err != nil {
			return nil, k, err
		}
		return &ir.Doc{Name: name, Value: v}, k, nil
	default:
		doc, err := interchange.Unmarshal(f, raw)
		return doc, k, err
	}
}

// encodeDoc writes doc in format f, uncompressed, refusing trees nested
// deeper than maxDepth. SNBT output uses popts.
func encodeDoc(doc *ir.Doc, f format.Format, maxDepth int, popts ...snbt.PrintOption) ([]byte, error) {
	switch f {
	case format.NBTFormat:
		return encode.EncodeBytes(doc.Name, doc.Value, encode.MaxDepth(maxDepth))
	case format.SNBTFormat:
		var buf bytes.Buffer
		popts = append(popts, snbt.PrintMaxDepth(maxDepth))
		if err := snbt.PrintDocument(doc.Name, doc.Value, &buf, popts...); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return interchange.Marshal(f, doc)
	}
}

func compress(d []byte, k compression.Kind) ([]byte, error) {
	if k == compression.None {
		return d, nil
	}
	var buf bytes.Buffer
	zw, err := compression.NewWriter(&buf, k)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(d); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeDoc writes doc to the output of cc in the output format, falling
// back to def. Binary output is refused on a terminal.
func writeDoc(cfg *MainConfig, cc *cli.Context, doc *ir.Doc, def format.Format, in compression.Kind) error {
	f := cfg.outFormat(def)
	k := cfg.outCompression(f, in)
	if (f.IsBinary() || k != compression.None) && isTerminal(cc.Out) {
		return fmt.Errorf("%w: refusing to write %s to a terminal, use -o or -O", cli.ErrUsage, f)
	}
	var popts []snbt.PrintOption
	if f == format.SNBTFormat && k == compression.None {
		popts = cfg.printOpts(cc.Out)
	} else {
		popts = []snbt.PrintOption{snbt.Indent(cfg.Indent)}
	}
	d, err := encodeDoc(doc, f, cfg.MaxDepth, popts...)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", f, err)
	}
	if d, err = compress(d, k); err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}

// saveDoc replaces df's file with doc in df's own format and compression,
// or writes to the output when -o was given or df is standard input.
func saveDoc(cfg *MainConfig, cc *cli.Context, df *docFile, doc *ir.Doc) error {
	if cfg.Out != "" || df.Path == "-" {
		return writeDoc(cfg, cc, doc, df.Format, df.Compression)
	}
	k := df.Compression
	if cfg.Compression != nil && *cfg.Compression != compression.Auto {
		k = *cfg.Compression
	}
	d, err := encodeDoc(doc, df.Format, cfg.MaxDepth, snbt.Indent(cfg.Indent))
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", df.Path, err)
	}
	if d, err = compress(d, k); err != nil {
		return err
	}
	if err := nbt.ReplaceFile(df.Path, d); err != nil {
		return err
	}
	theLog.Debug("saved document", "path", df.Path, "format", df.Format, "compression", k)
	return nil
}
