package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/signadot/nbt-format/go-nbt/format"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("interchange: cbor enc mode: %v", err))
	}
	cborEncMode = em
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("interchange: cbor dec mode: %v", err))
	}
	cborDecMode = dm
}

// Formats returns the formats handled by Marshal and Unmarshal.
func Formats() []format.Format {
	return []format.Format{format.JSONFormat, format.YAMLFormat, format.CBORFormat, format.MsgpackFormat}
}

// Marshal writes the typed projection of d in format f.
func Marshal(f format.Format, d *ir.Doc) ([]byte, error) {
	t, err := ToTyped(d)
	if err != nil {
		return nil, err
	}
	var res []byte
	switch f {
	case format.JSONFormat:
		res, err = json.MarshalIndent(t, "", "  ")
		if err == nil {
			res = append(res, '\n')
		}
	case format.YAMLFormat:
		res, err = yaml.Marshal(t)
	case format.CBORFormat:
		res, err = cborEncMode.Marshal(t)
	case format.MsgpackFormat:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetSortMapKeys(true)
		enc.UseCompactInts(true)
		err = enc.Encode(t)
		res = buf.Bytes()
	default:
		return nil, nbterr.NewCustom(f.String(), "not an interchange format")
	}
	if err != nil {
		return nil, codecErr(f, err)
	}
	return res, nil
}

// Unmarshal reads a document written by Marshal in format f.
func Unmarshal(f format.Format, data []byte) (*ir.Doc, error) {
	var (
		x   any
		err error
	)
	switch f {
	case format.JSONFormat:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&x)
	case format.YAMLFormat:
		err = yaml.Unmarshal(data, &x)
	case format.CBORFormat:
		err = cborDecMode.Unmarshal(data, &x)
	case format.MsgpackFormat:
		err = msgpack.Unmarshal(data, &x)
	default:
		return nil, nbterr.NewCustom(f.String(), "not an interchange format")
	}
	if err != nil {
		return nil, codecErr(f, err)
	}
	return FromTyped(x)
}

func codecErr(f format.Format, err error) error {
	return &nbterr.Error{Kind: nbterr.Custom, Rule: f.String(), Offset: -1, Err: err}
}
