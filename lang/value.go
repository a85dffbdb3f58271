package lang

import (
	"strconv"
)

// ValueType identifies the runtime type of a [Value].
type ValueType int

const (
	// TypeNull is the type of an uninitialized or absent value.
	TypeNull ValueType = iota

	// TypeInt is a 64-bit signed integer.
	TypeInt

	// TypeFloat is a 64-bit IEEE 754 floating-point number.
	TypeFloat

	// TypeString is an immutable UTF-8 string.
	TypeString

	// TypeBool is a boolean.
	TypeBool
)

// String returns the source-level name of the type.
func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeNull:
		return "null"
	default:
		return "unknown"
	}
}

// ParseValueType maps a type keyword to its [ValueType].
// Unrecognized names map to [TypeNull].
func ParseValueType(name string) ValueType {
	switch name {
	case "int":
		return TypeInt
	case "float":
		return TypeFloat
	case "string":
		return TypeString
	case "bool":
		return TypeBool
	default:
		return TypeNull
	}
}

// Value is a scalar runtime value. It is a closed sum over the four scalar
// types plus null. The zero value is null.
type Value struct {
	strVal   string
	intVal   int64
	floatVal float64
	boolVal  bool
	typ      ValueType
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// NewInt returns an integer value.
func NewInt(v int64) Value {
	return Value{typ: TypeInt, intVal: v}
}

// NewFloat returns a floating-point value.
func NewFloat(v float64) Value {
	return Value{typ: TypeFloat, floatVal: v}
}

// NewStr returns a string value.
func NewStr(v string) Value {
	return Value{typ: TypeString, strVal: v}
}

// NewBool returns a boolean value.
func NewBool(v bool) Value {
	return Value{typ: TypeBool, boolVal: v}
}

// Type returns the runtime type of the value.
func (v Value) Type() ValueType {
	return v.typ
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.typ == TypeNull
}

// IsNumeric reports whether the value is an int or a float.
func (v Value) IsNumeric() bool {
	return v.typ == TypeInt || v.typ == TypeFloat
}

// Int returns the integer payload. It is zero for non-integer values.
func (v Value) Int() int64 {
	return v.intVal
}

// Float returns the value as a float64, promoting integers.
// It is zero for non-numeric values.
func (v Value) Float() float64 {
	if v.typ == TypeInt {
		return float64(v.intVal)
	}

	return v.floatVal
}

// Str returns the string payload. It is empty for non-string values.
func (v Value) Str() string {
	return v.strVal
}

// Bool returns the boolean payload. It is false for non-boolean values.
func (v Value) Bool() bool {
	return v.boolVal
}

// Native returns the payload as a plain Go value for marshaling.
// Null values map to nil.
func (v Value) Native() any {
	switch v.typ {
	case TypeInt:
		return v.intVal
	case TypeFloat:
		return v.floatVal
	case TypeString:
		return v.strVal
	case TypeBool:
		return v.boolVal
	case TypeNull:
		return nil
	default:
		return nil
	}
}

// String renders the value the way it appears in source text and in
// inspect output. Floats always carry a fractional component so they
// remain distinguishable from integers.
func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return strconv.FormatInt(v.intVal, 10)

	case TypeFloat:
		s := strconv.FormatFloat(v.floatVal, 'g', -1, 64)
		if !hasFractionMarker(s) {
			s += ".0"
		}

		return s

	case TypeString:
		return v.strVal

	case TypeBool:
		return strconv.FormatBool(v.boolVal)

	case TypeNull:
		return "null"

	default:
		return "null"
	}
}

func hasFractionMarker(s string) bool {
	for i := range len(s) {
		switch s[i] {
		case '.', 'e', 'E', 'i', 'n': // covers Inf and NaN
			return true
		}
	}

	return false
}
