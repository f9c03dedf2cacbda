package gomap

import (
	"reflect"
	"strconv"

	"github.com/signadot/nbt-format/go-nbt/interchange"
	"github.com/signadot/nbt-format/go-nbt/ir"
)

func (ms *mapState) fromValue(v ir.Value, rv reflect.Value, path string) error {
	if v == nil {
		return errf(path, "nil value")
	}
	t := rv.Type()
	switch {
	case t.Kind() == reflect.Interface:
		if t.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(interchange.ToAny(v)))
			return nil
		}
		if reflect.TypeOf(v).AssignableTo(t) {
			rv.Set(reflect.ValueOf(ir.Clone(v)))
			return nil
		}
		return ms.mismatch(v, t, path)
	case t.Kind() != reflect.Pointer && t.Implements(valueType):
		if reflect.TypeOf(v) != t {
			return ms.mismatch(v, t, path)
		}
		rv.Set(reflect.ValueOf(ir.Clone(v)))
		return nil
	}
	switch t.Kind() {
	case reflect.Pointer:
		if err := ms.push(path); err != nil {
			return err
		}
		defer ms.pop()
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return ms.fromValue(v, rv.Elem(), path)
	case reflect.Bool:
		n, ok := ir.AsInt64(v)
		if !ok {
			return ms.mismatch(v, t, path)
		}
		rv.SetBool(n != 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := ir.AsInt64(v)
		if !ok {
			return ms.mismatch(v, t, path)
		}
		if rv.OverflowInt(n) {
			return errf(path, "%d overflows %s", n, t)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := ir.AsInt64(v)
		if !ok {
			return ms.mismatch(v, t, path)
		}
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return errf(path, "%d overflows %s", n, t)
		}
		rv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, ok := ir.AsFloat64(v)
		if !ok {
			return ms.mismatch(v, t, path)
		}
		if rv.OverflowFloat(f) {
			return errf(path, "%v overflows %s", f, t)
		}
		rv.SetFloat(f)
	case reflect.String:
		s, ok := v.(ir.String)
		if !ok {
			return ms.mismatch(v, t, path)
		}
		rv.SetString(string(s))
	case reflect.Slice, reflect.Array:
		return ms.fromSequence(v, rv, path)
	case reflect.Map:
		return ms.fromCompound(v, rv, path)
	case reflect.Struct:
		return ms.fromStruct(v, rv, path)
	default:
		return errf(path, "unsupported type %s", t)
	}
	return nil
}

func (ms *mapState) mismatch(v ir.Value, t reflect.Type, path string) error {
	return errf(path, "cannot store %s in %s", v.Type(), t)
}

// elements returns the elements of a list or array.
func elements(v ir.Value) ([]ir.Value, bool) {
	switch x := v.(type) {
	case ir.List:
		return ir.Values(x), true
	case ir.ByteArray:
		res := make([]ir.Value, len(x))
		for i, e := range x {
			res[i] = ir.Byte(e)
		}
		return res, true
	case ir.IntArray:
		res := make([]ir.Value, len(x))
		for i, e := range x {
			res[i] = ir.Int(e)
		}
		return res, true
	case ir.LongArray:
		res := make([]ir.Value, len(x))
		for i, e := range x {
			res[i] = ir.Long(e)
		}
		return res, true
	}
	return nil, false
}

func (ms *mapState) fromSequence(v ir.Value, rv reflect.Value, path string) error {
	t := rv.Type()
	// byte sequences take the bits of a ByteArray as they are
	if b, ok := v.(ir.ByteArray); ok && t.Elem().Kind() == reflect.Uint8 && !t.Elem().Implements(valueType) {
		if t.Kind() == reflect.Slice {
			rv.Set(reflect.MakeSlice(t, len(b), len(b)))
		} else if len(b) > t.Len() {
			return errf(path, "%d elements do not fit in %s", len(b), t)
		}
		for i, e := range b {
			rv.Index(i).SetUint(uint64(uint8(e)))
		}
		return nil
	}
	vs, ok := elements(v)
	if !ok {
		return ms.mismatch(v, t, path)
	}
	if err := ms.push(path); err != nil {
		return err
	}
	defer ms.pop()
	if t.Kind() == reflect.Array {
		if len(vs) > t.Len() {
			return errf(path, "%d elements do not fit in %s", len(vs), t)
		}
	} else {
		rv.Set(reflect.MakeSlice(t, len(vs), len(vs)))
	}
	for i, e := range vs {
		if err := ms.fromValue(e, rv.Index(i), path+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}

func (ms *mapState) fromCompound(v ir.Value, rv reflect.Value, path string) error {
	t := rv.Type()
	c, ok := v.(ir.Compound)
	if !ok {
		return ms.mismatch(v, t, path)
	}
	if t.Key().Kind() != reflect.String {
		return errf(path, "map key %s is not a string", t.Key())
	}
	if err := ms.push(path); err != nil {
		return err
	}
	defer ms.pop()
	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(t, len(c)))
	}
	for _, k := range c.Keys() {
		ev := reflect.New(t.Elem()).Elem()
		if err := ms.fromValue(c[k], ev, path+"."+ir.PathField(k)); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
	}
	return nil
}

func (ms *mapState) fromStruct(v ir.Value, rv reflect.Value, path string) error {
	c, ok := v.(ir.Compound)
	if !ok {
		return ms.mismatch(v, rv.Type(), path)
	}
	if err := ms.push(path); err != nil {
		return err
	}
	defer ms.pop()
	for _, f := range fieldsOf(rv.Type()) {
		ev, ok := c[f.name]
		if !ok {
			continue
		}
		if err := ms.fromValue(ev, rv.FieldByIndex(f.index), path+"."+ir.PathField(f.name)); err != nil {
			return err
		}
	}
	return nil
}
