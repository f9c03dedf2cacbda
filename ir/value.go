package ir

// Value is a node of a tag tree. The set of implementations is closed: the
// scalar and array kinds below, Compound, and the List variants in list.go.
// Every type switch over Value in this module lists all of them and panics
// in its default branch.
type Value interface {
	Type() Type
	isValue()
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []int8
	String    string
	IntArray  []int32
	LongArray []int64

	// Compound maps keys to values. Key order is not significant.
	Compound map[string]Value
)

func (Byte) Type() Type      { return ByteType }
func (Short) Type() Type     { return ShortType }
func (Int) Type() Type       { return IntType }
func (Long) Type() Type      { return LongType }
func (Float) Type() Type     { return FloatType }
func (Double) Type() Type    { return DoubleType }
func (ByteArray) Type() Type { return ByteArrayType }
func (String) Type() Type    { return StringType }
func (IntArray) Type() Type  { return IntArrayType }
func (LongArray) Type() Type { return LongArrayType }
func (Compound) Type() Type  { return CompoundType }

func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Long) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (ByteArray) isValue() {}
func (String) isValue()    {}
func (IntArray) isValue()  {}
func (LongArray) isValue() {}
func (Compound) isValue()  {}

// Doc is a root document: the single named value of a stream.
type Doc struct {
	Name  string
	Value Value
}

// Keys returns the keys of c in sorted order.
func (c Compound) Keys() []string {
	return sortedKeys(c)
}

// AsInt64 returns the integer payload of v for the integer scalar kinds.
func AsInt64(v Value) (int64, bool) {
	switch x := v.(type) {
	case Byte:
		return int64(x), true
	case Short:
		return int64(x), true
	case Int:
		return int64(x), true
	case Long:
		return int64(x), true
	}
	return 0, false
}

// AsFloat64 returns the numeric payload of v for any numeric scalar kind.
func AsFloat64(v Value) (float64, bool) {
	switch x := v.(type) {
	case Float:
		return float64(x), true
	case Double:
		return float64(x), true
	}
	i, ok := AsInt64(v)
	return float64(i), ok
}

// Truth reports whether v is non-zero/non-empty.
func Truth(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case Byte, Short, Int, Long:
		i, _ := AsInt64(x)
		return i != 0
	case Float:
		return x != 0
	case Double:
		return x != 0
	case String:
		return x != ""
	case ByteArray:
		return len(x) != 0
	case IntArray:
		return len(x) != 0
	case LongArray:
		return len(x) != 0
	case Compound:
		return len(x) != 0
	case List:
		return x.Len() != 0
	default:
		panic("type")
	}
}
