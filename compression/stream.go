package compression

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

// Level is the compression level used by NewWriter. Documents are written
// once and read many times, so the default favours ratio over speed.
const Level = gzip.BestCompression

// NewReader returns a reader of the decompressed content of r. With Auto the
// compression is detected from the first bytes of r; the detected kind is
// returned.
//
// Failures of the decompressor, including a truncated stream, are reported
// as nbterr.Compression errors. Failures of r itself are reported as
// nbterr.IO errors.
func NewReader(r io.Reader, k Kind) (io.ReadCloser, Kind, error) {
	src := &srcReader{r: r}
	br := bufio.NewReader(src)
	if k == Auto {
		prefix, err := br.Peek(2)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, None, err
		}
		k = Detect(prefix)
	}
	switch k {
	case None:
		return io.NopCloser(br), None, nil
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, Gzip, streamErr(err)
		}
		return &errReader{rc: zr}, Gzip, nil
	case Zlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, Zlib, streamErr(err)
		}
		return &errReader{rc: zr}, Zlib, nil
	default:
		return nil, k, fmt.Errorf("compression %s: %w", k, errors.ErrUnsupported)
	}
}

// NewWriter returns a writer compressing into w. Close must be called to
// flush the stream; it does not close w.
func NewWriter(w io.Writer, k Kind) (io.WriteCloser, error) {
	switch k {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriterLevel(w, Level)
	case Zlib:
		return zlib.NewWriterLevel(w, Level)
	default:
		return nil, fmt.Errorf("compression %s: %w", k, errors.ErrUnsupported)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// srcReader marks failures of the underlying source so that they are not
// mistaken for decompression failures.
type srcReader struct {
	r io.Reader
}

func (s *srcReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		err = nbterr.NewIO("read", -1, err)
	}
	return n, err
}

type errReader struct {
	rc io.ReadCloser
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.rc.Read(p)
	if err != nil && err != io.EOF {
		err = streamErr(err)
	}
	return n, err
}

func (e *errReader) Close() error {
	if err := e.rc.Close(); err != nil {
		return streamErr(err)
	}
	return nil
}

func streamErr(err error) error {
	var ne *nbterr.Error
	if errors.As(err, &ne) {
		return err
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nbterr.NewCompression(err)
}
