package ir

import (
	"math"
	"testing"
)

func TestCompare(t *testing.T) {
	nan := Float(float32(math.NaN()))
	tests := []struct {
		name     string
		a, b     Value
		expected int
	}{
		// kinds order by tag id
		{"Byte < Short", Byte(100), Short(1), -1},
		{"Int < Long", Int(5), Long(1), -1},
		{"Double < ByteArray", Double(1), ByteArray{}, -1},
		{"List < Compound", IntList{9}, Compound{}, -1},
		{"Compound < IntArray", Compound{"a": Byte(1)}, IntArray{}, -1},
		{"nil < Byte", nil, Byte(0), -1},

		{"Byte == Byte", Byte(3), Byte(3), 0},
		{"Long < Long", Long(math.MinInt64), Long(0), -1},
		{"Float < Float", Float(1), Float(2), -1},
		{"NaN first", nan, Float(float32(math.Inf(-1))), -1},
		{"NaN == NaN", nan, nan, 0},
		{"0 < -0", Double(0), Double(math.Copysign(0, -1)), -1},
		{"String < String", String("a"), String("b"), -1},
		{"prefix String", String("ab"), String("abc"), -1},

		{"ByteArray elements", ByteArray{1, 2}, ByteArray{1, 3}, -1},
		{"short LongArray", LongArray{1}, LongArray{1, 0}, -1},

		{"EmptyList < IntList", EmptyList{}, IntList{}, -1},
		{"by elem kind", ByteList{100}, IntList{1}, -1},
		{"list elements", IntList{1, 2}, IntList{1, 3}, -1},
		{"short list", StringList{"a"}, StringList{"a", "b"}, -1},
		{"nested list", ListList{IntList{1}}, ListList{IntList{2}}, -1},

		{"empty compounds", Compound{}, Compound{}, 0},
		{"compound keys", Compound{"a": Int(9)}, Compound{"b": Int(1)}, -1},
		{"compound values", Compound{"a": Int(1)}, Compound{"a": Int(2)}, -1},
		{"short compound", Compound{"a": Int(1)}, Compound{"a": Int(1), "b": Int(0)}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestCompareAgreesWithEqual(t *testing.T) {
	vs := []Value{
		Byte(0), Float(0), Float(float32(math.Copysign(0, -1))),
		Double(math.NaN()), EmptyList{}, IntList{}, Compound{},
		Compound{"k": EmptyList{}}, Compound{"k": ShortList{}},
	}
	for _, a := range vs {
		for _, b := range vs {
			if (Compare(a, b) == 0) != Equal(a, b) {
				t.Errorf("Compare(%#v, %#v) = %d, Equal = %v", a, b, Compare(a, b), Equal(a, b))
			}
		}
	}
}
