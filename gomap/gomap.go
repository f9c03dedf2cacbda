package gomap

import (
	"fmt"
	"reflect"

	"github.com/signadot/nbt-format/go-nbt/decode"
	"github.com/signadot/nbt-format/go-nbt/encode"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

// maxDepth bounds the nesting of pointers, slices, maps and structs, so
// that cyclic values fail instead of recursing forever.
const maxDepth = encode.DefaultMaxDepth

var valueType = reflect.TypeFor[ir.Value]()

// ToValue converts x to a tree.
func ToValue(x any) (ir.Value, error) {
	ms := &mapState{}
	return ms.toValue(reflect.ValueOf(x), "$")
}

// FromValue stores v in the value dst points to. Compound entries with no
// matching struct field are ignored; fields with no matching entry are left
// as they are.
func FromValue(v ir.Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errf("$", "destination must be a non-nil pointer, got %T", dst)
	}
	if v == nil {
		return errf("$", "nil value")
	}
	ms := &mapState{}
	return ms.fromValue(v, rv.Elem(), "$")
}

// Marshal encodes x as a binary document named name.
func Marshal(name string, x any, opts ...encode.EncodeOption) ([]byte, error) {
	v, err := ToValue(x)
	if err != nil {
		return nil, err
	}
	return encode.EncodeBytes(name, v, opts...)
}

// Unmarshal decodes the binary document d into dst and returns the
// document's name.
func Unmarshal(d []byte, dst any, opts ...decode.DecodeOption) (string, error) {
	name, v, err := decode.DecodeBytes(d, opts...)
	if err != nil {
		return "", err
	}
	if err := FromValue(v, dst); err != nil {
		return "", err
	}
	return name, nil
}

type mapState struct {
	depth int
}

func (ms *mapState) push(path string) error {
	ms.depth++
	if ms.depth > maxDepth {
		return nbterr.NewCustom("depth", "%s: nested deeper than %d", path, maxDepth)
	}
	return nil
}

func (ms *mapState) pop() {
	ms.depth--
}

func errf(path, format string, args ...any) error {
	return nbterr.NewCustom("gomap", "%s: %s", path, fmt.Sprintf(format, args...))
}

// kindOf is the tree kind a Go type maps to, when the type alone tells.
func kindOf(t reflect.Type) (ir.Type, bool) {
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && t.Implements(valueType) {
		return reflect.Zero(t).Interface().(ir.Value).Type(), true
	}
	switch t.Kind() {
	case reflect.Pointer:
		return kindOf(t.Elem())
	case reflect.Bool, reflect.Int8:
		return ir.ByteType, true
	case reflect.Int16, reflect.Uint8:
		return ir.ShortType, true
	case reflect.Int, reflect.Int32, reflect.Uint16:
		return ir.IntType, true
	case reflect.Int64, reflect.Uint32, reflect.Uint, reflect.Uint64:
		return ir.LongType, true
	case reflect.Float32:
		return ir.FloatType, true
	case reflect.Float64:
		return ir.DoubleType, true
	case reflect.String:
		return ir.StringType, true
	case reflect.Slice, reflect.Array:
		if t, ok := arrayKind(t.Elem()); ok {
			return t, true
		}
		return ir.ListType, true
	case reflect.Map, reflect.Struct:
		return ir.CompoundType, true
	}
	return 0, false
}

// arrayKind reports whether a sequence of et is an array kind.
func arrayKind(et reflect.Type) (ir.Type, bool) {
	if et.Implements(valueType) {
		return 0, false
	}
	switch et.Kind() {
	case reflect.Int8, reflect.Uint8:
		return ir.ByteArrayType, true
	case reflect.Int32:
		return ir.IntArrayType, true
	case reflect.Int64:
		return ir.LongArrayType, true
	}
	return 0, false
}
