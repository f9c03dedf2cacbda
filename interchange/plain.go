package interchange

import (
	"math"
	"slices"

	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

// ToAny returns the plain projection of v. Lists become []any, arrays
// copies of their element slices and compounds map[string]any.
func ToAny(v ir.Value) any {
	switch x := v.(type) {
	case nil:
		return nil
	case ir.Byte:
		return int8(x)
	case ir.Short:
		return int16(x)
	case ir.Int:
		return int32(x)
	case ir.Long:
		return int64(x)
	case ir.Float:
		return float32(x)
	case ir.Double:
		return float64(x)
	case ir.String:
		return string(x)
	case ir.ByteArray:
		return slices.Clone([]int8(x))
	case ir.IntArray:
		return slices.Clone([]int32(x))
	case ir.LongArray:
		return slices.Clone([]int64(x))
	case ir.Compound:
		res := make(map[string]any, len(x))
		for k, e := range x {
			res[k] = ToAny(e)
		}
		return res
	case ir.List:
		n := x.Len()
		res := make([]any, n)
		for i := range n {
			res[i] = ToAny(x.At(i))
		}
		return res
	default:
		panic("type")
	}
}

// FromAny converts a plain value back to a tree. Kinds follow the Go type:
// int8 gives Byte, int32 Int, float64 Double and so on. Untyped ints give
// Int when they fit and Long otherwise, booleans give Byte. A slice gives
// a list of its first element's kind, or EmptyList when it is empty.
func FromAny(x any) (ir.Value, error) {
	switch v := x.(type) {
	case ir.Value:
		return ir.Clone(v), nil
	case bool:
		if v {
			return ir.Byte(1), nil
		}
		return ir.Byte(0), nil
	case int8:
		return ir.Byte(v), nil
	case int16:
		return ir.Short(v), nil
	case int32:
		return ir.Int(v), nil
	case int64:
		return ir.Long(v), nil
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return ir.Int(v), nil
		}
		return ir.Long(v), nil
	case uint8:
		return ir.Short(v), nil
	case uint16:
		return ir.Int(v), nil
	case uint32:
		return ir.Long(v), nil
	case uint, uint64:
		n, err := toInt(v, math.MinInt64, math.MaxInt64, "$")
		if err != nil {
			return nil, err
		}
		return ir.Long(n), nil
	case float32:
		return ir.Float(v), nil
	case float64:
		return ir.Double(v), nil
	case string:
		return ir.String(v), nil
	case []int8:
		return ir.ByteArray(slices.Clone(v)), nil
	case []int32:
		return ir.IntArray(slices.Clone(v)), nil
	case []int64:
		return ir.LongArray(slices.Clone(v)), nil
	case []string:
		return ir.StringList(fromStrings(v)), nil
	case []any:
		if len(v) == 0 {
			return ir.EmptyList{}, nil
		}
		vs := make([]ir.Value, len(v))
		for i, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vs[i] = ev
		}
		l, err := ir.NewList(vs[0].Type(), vs)
		if err != nil {
			return nil, nbterr.NewCustom("list", "%v", err)
		}
		return l, nil
	case map[string]any:
		res := make(ir.Compound, len(v))
		for k, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res[k] = ev
		}
		return res, nil
	case nil:
		return nil, nbterr.NewCustom("value", "nil has no kind")
	default:
		return nil, nbterr.NewCustom("value", "unsupported type %T", x)
	}
}

func fromStrings(ss []string) []ir.String {
	res := make([]ir.String, len(ss))
	for i, s := range ss {
		res[i] = ir.String(s)
	}
	return res
}
