package gomap

import (
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/nbt-format/go-nbt/ir"
)

func (ms *mapState) toValue(rv reflect.Value, path string) (ir.Value, error) {
	if !rv.IsValid() {
		return nil, errf(path, "nil has no kind")
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil, errf(path, "nil has no kind")
		}
		return ms.toValue(rv.Elem(), path)
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, errf(path, "nil has no kind")
		}
		if err := ms.push(path); err != nil {
			return nil, err
		}
		defer ms.pop()
		return ms.toValue(rv.Elem(), path)
	}
	if rv.Type().Implements(valueType) {
		return ir.Clone(rv.Interface().(ir.Value)), nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return ir.Byte(1), nil
		}
		return ir.Byte(0), nil
	case reflect.Int8:
		return ir.Byte(rv.Int()), nil
	case reflect.Int16:
		return ir.Short(rv.Int()), nil
	case reflect.Int32:
		return ir.Int(rv.Int()), nil
	case reflect.Int:
		n := rv.Int()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, errf(path, "%d out of range for Int", n)
		}
		return ir.Int(n), nil
	case reflect.Int64:
		return ir.Long(rv.Int()), nil
	case reflect.Uint8:
		return ir.Short(rv.Uint()), nil
	case reflect.Uint16:
		return ir.Int(rv.Uint()), nil
	case reflect.Uint32:
		return ir.Long(rv.Uint()), nil
	case reflect.Uint, reflect.Uint64:
		n := rv.Uint()
		if n > math.MaxInt64 {
			return nil, errf(path, "%d out of range for Long", n)
		}
		return ir.Long(n), nil
	case reflect.Float32:
		return ir.Float(rv.Float()), nil
	case reflect.Float64:
		return ir.Double(rv.Float()), nil
	case reflect.String:
		return ir.String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		return ms.sequence(rv, path)
	case reflect.Map:
		return ms.mapping(rv, path)
	case reflect.Struct:
		return ms.structure(rv, path)
	}
	return nil, errf(path, "unsupported type %s", rv.Type())
}

func (ms *mapState) sequence(rv reflect.Value, path string) (ir.Value, error) {
	n := rv.Len()
	et := rv.Type().Elem()
	if t, ok := arrayKind(et); ok {
		switch t {
		case ir.ByteArrayType:
			res := make(ir.ByteArray, n)
			for i := range n {
				if et.Kind() == reflect.Uint8 {
					res[i] = int8(rv.Index(i).Uint())
				} else {
					res[i] = int8(rv.Index(i).Int())
				}
			}
			return res, nil
		case ir.IntArrayType:
			res := make(ir.IntArray, n)
			for i := range n {
				res[i] = int32(rv.Index(i).Int())
			}
			return res, nil
		default:
			res := make(ir.LongArray, n)
			for i := range n {
				res[i] = rv.Index(i).Int()
			}
			return res, nil
		}
	}
	if err := ms.push(path); err != nil {
		return nil, err
	}
	defer ms.pop()
	vs := make([]ir.Value, n)
	for i := range n {
		v, err := ms.toValue(rv.Index(i), path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	elem := ir.EndType
	if n > 0 {
		elem = vs[0].Type()
	} else if t, ok := kindOf(et); ok {
		elem = t
	}
	l, err := ir.NewList(elem, vs)
	if err != nil {
		return nil, errf(path, "%v", err)
	}
	return l, nil
}

func (ms *mapState) mapping(rv reflect.Value, path string) (ir.Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, errf(path, "map key %s is not a string", rv.Type().Key())
	}
	if err := ms.push(path); err != nil {
		return nil, err
	}
	defer ms.pop()
	res := make(ir.Compound, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		v, err := ms.toValue(iter.Value(), path+"."+ir.PathField(k))
		if err != nil {
			return nil, err
		}
		res[k] = v
	}
	return res, nil
}

func (ms *mapState) structure(rv reflect.Value, path string) (ir.Value, error) {
	if err := ms.push(path); err != nil {
		return nil, err
	}
	defer ms.pop()
	res := ir.Compound{}
	for _, f := range fieldsOf(rv.Type()) {
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		// nil pointers and interfaces have no kind to encode
		if (fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface) && fv.IsNil() {
			continue
		}
		v, err := ms.toValue(fv, path+"."+ir.PathField(f.name))
		if err != nil {
			return nil, err
		}
		res[f.name] = v
	}
	return res, nil
}
