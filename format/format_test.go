package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		var got Format
		if err := got.UnmarshalText([]byte(f.String())); err != nil {
			t.Fatal(err)
		}
		if got != f {
			t.Errorf("got %s, want %s", got, f)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v, want ErrBadFormat", err)
	}
}

func TestFromPath(t *testing.T) {
	tests := map[string]Format{
		"level.dat":        NBTFormat,
		"servers.dat.gz":   NBTFormat,
		"player.snbt":      SNBTFormat,
		"dump.json":        JSONFormat,
		"dir/Config.YML":   YAMLFormat,
		"x.cbor.gz":        CBORFormat,
		"blob.mpk":         MsgpackFormat,
		"region/r.0.0.mca": NBTFormat,
	}
	for p, want := range tests {
		if got := FromPath(p); got != want {
			t.Errorf("FromPath(%q) = %s, want %s", p, got, want)
		}
	}
}
