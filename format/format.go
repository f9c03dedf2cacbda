package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	NBTFormat Format = iota
	SNBTFormat
	JSONFormat
	YAMLFormat
	CBORFormat
	MsgpackFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"n":       NBTFormat,
		"nbt":     NBTFormat,
		"s":       SNBTFormat,
		"snbt":    SNBTFormat,
		"j":       JSONFormat,
		"json":    JSONFormat,
		"y":       YAMLFormat,
		"yaml":    YAMLFormat,
		"c":       CBORFormat,
		"cbor":    CBORFormat,
		"m":       MsgpackFormat,
		"msgpack": MsgpackFormat,
	}[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case NBTFormat:
		return []byte("nbt"), nil
	case SNBTFormat:
		return []byte("snbt"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case CBORFormat:
		return []byte("cbor"), nil
	case MsgpackFormat:
		return []byte("msgpack"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// IsBinary reports whether documents of f are not text.
func (f Format) IsBinary() bool {
	return f == NBTFormat || f == CBORFormat || f == MsgpackFormat
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case NBTFormat:
		return ".nbt"
	case SNBTFormat:
		return ".snbt"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case CBORFormat:
		return ".cbor"
	case MsgpackFormat:
		return ".msgpack"
	default:
		return ""
	}
}

// FromPath guesses the format of a file from its name, ignoring a
// compression suffix. Unknown names, including the common .dat and .mca
// region names, are NBT.
func FromPath(p string) Format {
	base := filepath.Base(p)
	for _, z := range []string{".gz", ".zz"} {
		base = strings.TrimSuffix(base, z)
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".snbt":
		return SNBTFormat
	case ".json":
		return JSONFormat
	case ".yaml", ".yml":
		return YAMLFormat
	case ".cbor":
		return CBORFormat
	case ".msgpack", ".mpk":
		return MsgpackFormat
	}
	return NBTFormat
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{NBTFormat, SNBTFormat, JSONFormat, YAMLFormat, CBORFormat, MsgpackFormat}
}
