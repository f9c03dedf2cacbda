package ir

import "fmt"

// List is a homogeneous sequence of values. Each variant fixes the element
// kind for its whole length; EmptyList carries no element kind and is
// written with the End tag.
type List interface {
	Value
	ElemType() Type
	Len() int
	At(i int) Value
	isList()
}

type (
	ByteList      []Byte
	ShortList     []Short
	IntList       []Int
	LongList      []Long
	FloatList     []Float
	DoubleList    []Double
	ByteArrayList []ByteArray
	StringList    []String
	ListList      []List
	CompoundList  []Compound
	IntArrayList  []IntArray
	LongArrayList []LongArray

	EmptyList struct{}
)

func (ByteList) Type() Type      { return ListType }
func (ShortList) Type() Type     { return ListType }
func (IntList) Type() Type       { return ListType }
func (LongList) Type() Type      { return ListType }
func (FloatList) Type() Type     { return ListType }
func (DoubleList) Type() Type    { return ListType }
func (ByteArrayList) Type() Type { return ListType }
func (StringList) Type() Type    { return ListType }
func (ListList) Type() Type      { return ListType }
func (CompoundList) Type() Type  { return ListType }
func (IntArrayList) Type() Type  { return ListType }
func (LongArrayList) Type() Type { return ListType }
func (EmptyList) Type() Type     { return ListType }

func (ByteList) ElemType() Type      { return ByteType }
func (ShortList) ElemType() Type     { return ShortType }
func (IntList) ElemType() Type       { return IntType }
func (LongList) ElemType() Type      { return LongType }
func (FloatList) ElemType() Type     { return FloatType }
func (DoubleList) ElemType() Type    { return DoubleType }
func (ByteArrayList) ElemType() Type { return ByteArrayType }
func (StringList) ElemType() Type    { return StringType }
func (ListList) ElemType() Type      { return ListType }
func (CompoundList) ElemType() Type  { return CompoundType }
func (IntArrayList) ElemType() Type  { return IntArrayType }
func (LongArrayList) ElemType() Type { return LongArrayType }
func (EmptyList) ElemType() Type     { return EndType }

func (l ByteList) Len() int      { return len(l) }
func (l ShortList) Len() int     { return len(l) }
func (l IntList) Len() int       { return len(l) }
func (l LongList) Len() int      { return len(l) }
func (l FloatList) Len() int     { return len(l) }
func (l DoubleList) Len() int    { return len(l) }
func (l ByteArrayList) Len() int { return len(l) }
func (l StringList) Len() int    { return len(l) }
func (l ListList) Len() int      { return len(l) }
func (l CompoundList) Len() int  { return len(l) }
func (l IntArrayList) Len() int  { return len(l) }
func (l LongArrayList) Len() int { return len(l) }
func (EmptyList) Len() int       { return 0 }

func (l ByteList) At(i int) Value      { return l[i] }
func (l ShortList) At(i int) Value     { return l[i] }
func (l IntList) At(i int) Value       { return l[i] }
func (l LongList) At(i int) Value      { return l[i] }
func (l FloatList) At(i int) Value     { return l[i] }
func (l DoubleList) At(i int) Value    { return l[i] }
func (l ByteArrayList) At(i int) Value { return l[i] }
func (l StringList) At(i int) Value    { return l[i] }
func (l ListList) At(i int) Value      { return l[i] }
func (l CompoundList) At(i int) Value  { return l[i] }
func (l IntArrayList) At(i int) Value  { return l[i] }
func (l LongArrayList) At(i int) Value { return l[i] }
func (EmptyList) At(i int) Value {
	panic(fmt.Sprintf("ir: index %d of empty list", i))
}

func (ByteList) isValue()      {}
func (ShortList) isValue()     {}
func (IntList) isValue()       {}
func (LongList) isValue()      {}
func (FloatList) isValue()     {}
func (DoubleList) isValue()    {}
func (ByteArrayList) isValue() {}
func (StringList) isValue()    {}
func (ListList) isValue()      {}
func (CompoundList) isValue()  {}
func (IntArrayList) isValue()  {}
func (LongArrayList) isValue() {}
func (EmptyList) isValue()     {}

func (ByteList) isList()      {}
func (ShortList) isList()     {}
func (IntList) isList()       {}
func (LongList) isList()      {}
func (FloatList) isList()     {}
func (DoubleList) isList()    {}
func (ByteArrayList) isList() {}
func (StringList) isList()    {}
func (ListList) isList()      {}
func (CompoundList) isList()  {}
func (IntArrayList) isList()  {}
func (LongArrayList) isList() {}
func (EmptyList) isList()     {}

// Values returns the elements of l as a slice of values.
func Values(l List) []Value {
	n := l.Len()
	res := make([]Value, n)
	for i := range n {
		res[i] = l.At(i)
	}
	return res
}

// NewList builds the list variant for elem from vs. Every element must
// have kind elem. An elem of EndType requires vs to be empty and yields
// EmptyList.
func NewList(elem Type, vs []Value) (List, error) {
	for i, v := range vs {
		if v == nil {
			return nil, fmt.Errorf("%w: nil list element %d", ErrKind, i)
		}
		if v.Type() != elem {
			return nil, fmt.Errorf("%w: list of %s has %s element at %d", ErrKind, elem, v.Type(), i)
		}
	}
	switch elem {
	case EndType:
		if len(vs) != 0 {
			return nil, fmt.Errorf("%w: End list with %d elements", ErrKind, len(vs))
		}
		return EmptyList{}, nil
	case ByteType:
		return fill[Byte, ByteList](vs), nil
	case ShortType:
		return fill[Short, ShortList](vs), nil
	case IntType:
		return fill[Int, IntList](vs), nil
	case LongType:
		return fill[Long, LongList](vs), nil
	case FloatType:
		return fill[Float, FloatList](vs), nil
	case DoubleType:
		return fill[Double, DoubleList](vs), nil
	case ByteArrayType:
		return fill[ByteArray, ByteArrayList](vs), nil
	case StringType:
		return fill[String, StringList](vs), nil
	case ListType:
		return fill[List, ListList](vs), nil
	case CompoundType:
		return fill[Compound, CompoundList](vs), nil
	case IntArrayType:
		return fill[IntArray, IntArrayList](vs), nil
	case LongArrayType:
		return fill[LongArray, LongArrayList](vs), nil
	default:
		return nil, fmt.Errorf("%w: list element tag %d", ErrType, byte(elem))
	}
}

func fill[E Value, L ~[]E](vs []Value) L {
	res := make(L, len(vs))
	for i, v := range vs {
		res[i] = v.(E)
	}
	return res
}

// SetAt replaces element i of l with v in place. v must match the element
// kind of l.
func SetAt(l List, i int, v Value) error {
	if i < 0 || i >= l.Len() {
		return fmt.Errorf("%w: %d (len %d)", ErrIndex, i, l.Len())
	}
	if v == nil || v.Type() != l.ElemType() {
		return fmt.Errorf("%w: cannot store %s in list of %s", ErrKind, typeOf(v), l.ElemType())
	}
	switch x := l.(type) {
	case ByteList:
		x[i] = v.(Byte)
	case ShortList:
		x[i] = v.(Short)
	case IntList:
		x[i] = v.(Int)
	case LongList:
		x[i] = v.(Long)
	case FloatList:
		x[i] = v.(Float)
	case DoubleList:
		x[i] = v.(Double)
	case ByteArrayList:
		x[i] = v.(ByteArray)
	case StringList:
		x[i] = v.(String)
	case ListList:
		x[i] = v.(List)
	case CompoundList:
		x[i] = v.(Compound)
	case IntArrayList:
		x[i] = v.(IntArray)
	case LongArrayList:
		x[i] = v.(LongArray)
	default:
		panic("list type")
	}
	return nil
}

// Append returns l with v appended. Appending to EmptyList produces the
// list variant for v's kind.
func Append(l List, v Value) (List, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil list element", ErrKind)
	}
	if _, ok := l.(EmptyList); ok {
		return NewList(v.Type(), []Value{v})
	}
	if v.Type() != l.ElemType() {
		return nil, fmt.Errorf("%w: cannot append %s to list of %s", ErrKind, v.Type(), l.ElemType())
	}
	return NewList(l.ElemType(), append(Values(l), v))
}

// RemoveAt returns l without element i. Removing the last element yields
// an empty list of the same element kind, not EmptyList.
func RemoveAt(l List, i int) (List, error) {
	if i < 0 || i >= l.Len() {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndex, i, l.Len())
	}
	vs := Values(l)
	return NewList(l.ElemType(), append(vs[:i:i], vs[i+1:]...))
}

func typeOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type().String()
}
