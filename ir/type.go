package ir

import "fmt"

// Type is the tag id identifying a value kind on the wire.
type Type byte

const (
	EndType Type = iota
	ByteType
	ShortType
	IntType
	LongType
	FloatType
	DoubleType
	ByteArrayType
	StringType
	ListType
	CompoundType
	IntArrayType
	LongArrayType
)

var typeNames = [...]string{
	EndType:       "End",
	ByteType:      "Byte",
	ShortType:     "Short",
	IntType:       "Int",
	LongType:      "Long",
	FloatType:     "Float",
	DoubleType:    "Double",
	ByteArrayType: "ByteArray",
	StringType:    "String",
	ListType:      "List",
	CompoundType:  "Compound",
	IntArrayType:  "IntArray",
	LongArrayType: "LongArray",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("<unknown type %d>", byte(t))
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tag %d", ErrType, byte(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// ParseType returns the type named v, as produced by Type.String.
func ParseType(v string) (Type, error) {
	for i, name := range typeNames {
		if name == v {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unrecognized type %q", ErrType, v)
}

// Types returns every value type, excluding End.
func Types() []Type {
	return []Type{
		ByteType,
		ShortType,
		IntType,
		LongType,
		FloatType,
		DoubleType,
		ByteArrayType,
		StringType,
		ListType,
		CompoundType,
		IntArrayType,
		LongArrayType,
	}
}

// Valid reports whether t is one of the defined tag ids, End included.
func (t Type) Valid() bool {
	return t <= LongArrayType
}

// IsValue reports whether t may tag a value, that is Valid and not End.
func (t Type) IsValue() bool {
	return t != EndType && t.Valid()
}

func (t Type) IsLeaf() bool {
	switch t {
	case ListType, CompoundType:
		return false
	default:
		return true
	}
}

func (t Type) IsArray() bool {
	switch t {
	case ByteArrayType, IntArrayType, LongArrayType:
		return true
	default:
		return false
	}
}
