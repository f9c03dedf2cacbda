package nbterr

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
		want error
		msg  string
	}{
		{NewMalformed("tag", 3, "bad tag %d", 13), Malformed, ErrMalformed, "malformed input: tag at offset 3: bad tag 13"},
		{NewCompression(io.ErrUnexpectedEOF), Compression, ErrCompression, "compression error: unexpected EOF"},
		{NewIO("read", 10, io.ErrClosedPipe), IO, ErrIO, "io error: read at offset 10: io: read/write on closed pipe"},
		{NewCustom("list", "mixed kinds"), Custom, ErrCustom, "custom error: list: mixed kinds"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			wrapped := fmt.Errorf("level.dat: %w", tt.err)
			if !errors.Is(wrapped, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.want)
			}
			if got := KindOf(wrapped); got != tt.kind {
				t.Errorf("KindOf = %s, want %s", got, tt.kind)
			}
			if got := tt.err.Error(); got != tt.msg {
				t.Errorf("Error() = %q, want %q", got, tt.msg)
			}
			for _, other := range []error{ErrMalformed, ErrCompression, ErrIO, ErrCustom} {
				if other != tt.want && errors.Is(tt.err, other) {
					t.Errorf("%v matches %v", tt.err, other)
				}
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NewIO("write", -1, io.ErrShortWrite)
	if !errors.Is(err, io.ErrShortWrite) {
		t.Error("underlying error not reachable")
	}
	if KindOf(io.EOF) != 0 {
		t.Error("plain error has a kind")
	}
}
