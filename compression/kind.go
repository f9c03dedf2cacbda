package compression

import (
	"fmt"
	"strings"
)

// Kind is a stream compression applied around an encoded document.
type Kind int

const (
	None Kind = iota
	Gzip
	Zlib
	// Auto detects the compression of an input from its first bytes. It is
	// not a valid output compression.
	Auto
)

var kindNames = [...]string{
	None: "none",
	Gzip: "gzip",
	Zlib: "zlib",
	Auto: "auto",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("<compression %d>", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(i), nil
		}
	}
	return None, fmt.Errorf("unknown compression %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid compression %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	v, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Suffix returns the conventional file suffix for k, or "".
func (k Kind) Suffix() string {
	switch k {
	case Gzip:
		return ".gz"
	case Zlib:
		return ".zz"
	}
	return ""
}

// Detect returns the compression indicated by the first bytes of a stream.
// Two bytes are enough; fewer yield None.
func Detect(prefix []byte) Kind {
	if len(prefix) < 2 {
		return None
	}
	if prefix[0] == 0x1f && prefix[1] == 0x8b {
		return Gzip
	}
	// deflate with a 32K window and a valid header checksum; 0x78 is not a
	// tag, so uncompressed documents never match
	if prefix[0] == 0x78 && (uint16(prefix[0])<<8|uint16(prefix[1]))%31 == 0 {
		return Zlib
	}
	return None
}
