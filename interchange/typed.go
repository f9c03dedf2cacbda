package interchange

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

const (
	nameKey  = "name"
	typeKey  = "type"
	valueKey = "value"
	elemKey  = "elem"
	itemsKey = "items"
)

// ToTyped returns the typed projection of d.
func ToTyped(d *ir.Doc) (map[string]any, error) {
	if d.Value == nil {
		return nil, errf("$", "value", "nil value")
	}
	p, err := payload(d.Value, "$")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		nameKey:  d.Name,
		typeKey:  d.Value.Type().String(),
		valueKey: p,
	}, nil
}

func payload(v ir.Value, path string) (any, error) {
	switch x := v.(type) {
	case ir.Byte:
		return int64(x), nil
	case ir.Short:
		return int64(x), nil
	case ir.Int:
		return int64(x), nil
	case ir.Long:
		return int64(x), nil
	case ir.Float:
		if s, ok := nonFinite(float64(x)); ok {
			return s, nil
		}
		return float32(x), nil
	case ir.Double:
		if s, ok := nonFinite(float64(x)); ok {
			return s, nil
		}
		return float64(x), nil
	case ir.String:
		return string(x), nil
	case ir.ByteArray:
		return ints(x), nil
	case ir.IntArray:
		return ints(x), nil
	case ir.LongArray:
		return ints(x), nil
	case ir.Compound:
		res := make(map[string]any, len(x))
		for k, e := range x {
			kp := path + "." + ir.PathField(k)
			if e == nil {
				return nil, errf(kp, "value", "nil value")
			}
			ep, err := payload(e, kp)
			if err != nil {
				return nil, err
			}
			res[k] = map[string]any{typeKey: e.Type().String(), valueKey: ep}
		}
		return res, nil
	case ir.List:
		n := x.Len()
		items := make([]any, n)
		for i := range n {
			e := x.At(i)
			ip := path + "[" + strconv.Itoa(i) + "]"
			if e == nil {
				return nil, errf(ip, "value", "nil value")
			}
			ep, err := payload(e, ip)
			if err != nil {
				return nil, err
			}
			items[i] = ep
		}
		return map[string]any{elemKey: x.ElemType().String(), itemsKey: items}, nil
	default:
		panic("type")
	}
}

func ints[E int8 | int32 | int64](a []E) []any {
	res := make([]any, len(a))
	for i, e := range a {
		res[i] = int64(e)
	}
	return res
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Inf", true
	case math.IsInf(f, -1):
		return "-Inf", true
	}
	return "", false
}

// FromTyped rebuilds a document from its typed projection as decoded by a
// generic unmarshaler.
func FromTyped(x any) (*ir.Doc, error) {
	m, err := object(x, "$")
	if err != nil {
		return nil, err
	}
	name, ok := m[nameKey].(string)
	if !ok {
		return nil, errf("$", nameKey, "expected string, got %T", m[nameKey])
	}
	t, err := typeField(m, typeKey, "$", false)
	if err != nil {
		return nil, err
	}
	v, err := value(t, m[valueKey], "$")
	if err != nil {
		return nil, err
	}
	return &ir.Doc{Name: name, Value: v}, nil
}

func value(t ir.Type, x any, path string) (ir.Value, error) {
	switch t {
	case ir.ByteType:
		n, err := toInt(x, math.MinInt8, math.MaxInt8, path)
		return ir.Byte(n), err
	case ir.ShortType:
		n, err := toInt(x, math.MinInt16, math.MaxInt16, path)
		return ir.Short(n), err
	case ir.IntType:
		n, err := toInt(x, math.MinInt32, math.MaxInt32, path)
		return ir.Int(n), err
	case ir.LongType:
		n, err := toInt(x, math.MinInt64, math.MaxInt64, path)
		return ir.Long(n), err
	case ir.FloatType:
		f, err := toFloat(x, 32, path)
		return ir.Float(f), err
	case ir.DoubleType:
		f, err := toFloat(x, 64, path)
		return ir.Double(f), err
	case ir.StringType:
		s, ok := x.(string)
		if !ok {
			return nil, errf(path, valueKey, "expected string, got %T", x)
		}
		return ir.String(s), nil
	case ir.ByteArrayType:
		return intArray[ir.ByteArray](x, math.MinInt8, math.MaxInt8, path)
	case ir.IntArrayType:
		return intArray[ir.IntArray](x, math.MinInt32, math.MaxInt32, path)
	case ir.LongArrayType:
		return intArray[ir.LongArray](x, math.MinInt64, math.MaxInt64, path)
	case ir.CompoundType:
		m, err := object(x, path)
		if err != nil {
			return nil, err
		}
		res := make(ir.Compound, len(m))
		for k, e := range m {
			kp := path + "." + ir.PathField(k)
			em, err := object(e, kp)
			if err != nil {
				return nil, err
			}
			et, err := typeField(em, typeKey, kp, false)
			if err != nil {
				return nil, err
			}
			ev, err := value(et, em[valueKey], kp)
			if err != nil {
				return nil, err
			}
			res[k] = ev
		}
		return res, nil
	case ir.ListType:
		m, err := object(x, path)
		if err != nil {
			return nil, err
		}
		et, err := typeField(m, elemKey, path, true)
		if err != nil {
			return nil, err
		}
		items, err := array(m[itemsKey], path)
		if err != nil {
			return nil, err
		}
		vs := make([]ir.Value, len(items))
		for i, item := range items {
			vs[i], err = value(et, item, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
		}
		l, err := ir.NewList(et, vs)
		if err != nil {
			return nil, errf(path, itemsKey, "%v", err)
		}
		return l, nil
	default:
		return nil, errf(path, typeKey, "%s is not a value kind", t)
	}
}

// typeField reads a kind name. End is only accepted as a list element kind.
func typeField(m map[string]any, key, path string, end bool) (ir.Type, error) {
	s, ok := m[key].(string)
	if !ok {
		return 0, errf(path, key, "expected kind name, got %T", m[key])
	}
	t, err := ir.ParseType(s)
	if err != nil {
		return 0, errf(path, key, "%v", err)
	}
	if !t.IsValue() && !(end && t == ir.EndType) {
		return 0, errf(path, key, "%s is not a value kind", t)
	}
	return t, nil
}

func intArray[L ~[]E, E int8 | int32 | int64](x any, lo, hi int64, path string) (ir.Value, error) {
	items, err := array(x, path)
	if err != nil {
		return nil, err
	}
	res := make(L, len(items))
	for i, item := range items {
		n, err := toInt(item, lo, hi, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		res[i] = E(n)
	}
	return any(res).(ir.Value), nil
}

func object(x any, path string) (map[string]any, error) {
	switch m := x.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		res := make(map[string]any, len(m))
		for k, v := range m {
			s, ok := k.(string)
			if !ok {
				return nil, errf(path, "key", "expected string key, got %T", k)
			}
			res[s] = v
		}
		return res, nil
	}
	return nil, errf(path, valueKey, "expected object, got %T", x)
}

func array(x any, path string) ([]any, error) {
	switch a := x.(type) {
	case nil:
		return nil, nil
	case []any:
		return a, nil
	}
	return nil, errf(path, valueKey, "expected array, got %T", x)
}

func toInt(x any, lo, hi int64, path string) (int64, error) {
	var n int64
	switch v := x.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, errf(path, valueKey, "%d out of range", v)
		}
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0, errf(path, valueKey, "%d out of range", v)
		}
		n = int64(v)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, errf(path, valueKey, "expected integer, got %v", v)
		}
		n = int64(v)
	case json.Number:
		i, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, errf(path, valueKey, "expected integer, got %s", v)
		}
		n = i
	default:
		return 0, errf(path, valueKey, "expected integer, got %T", x)
	}
	if n < lo || n > hi {
		return 0, errf(path, valueKey, "%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func toFloat(x any, bits int, path string) (float64, error) {
	var f float64
	switch v := x.(type) {
	case string:
		switch v {
		case "NaN":
			return math.NaN(), nil
		case "Inf", "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		p, err := strconv.ParseFloat(v, bits)
		if err != nil {
			return 0, errf(path, valueKey, "expected number, got %q", v)
		}
		f = p
	case json.Number:
		p, err := strconv.ParseFloat(string(v), bits)
		if err != nil {
			return 0, errf(path, valueKey, "bad number %s", v)
		}
		return p, nil
	case float32:
		return float64(v), nil
	case float64:
		f = v
	default:
		n, err := toInt(x, math.MinInt64, math.MaxInt64, path)
		if err != nil {
			return 0, errf(path, valueKey, "expected number, got %T", x)
		}
		f = float64(n)
	}
	if bits == 32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, errf(path, valueKey, "%v out of range for Float", f)
	}
	return f, nil
}

func errf(path, rule, format string, args ...any) error {
	return nbterr.NewCustom(rule, "%s: %s", path, fmt.Sprintf(format, args...))
}
