// Package flat implements the canonical flat object serialization used
// inside payment request payloads: a single-line, JSON-like object whose
// values are scalars only and whose keys are emitted in ascending order.
package flat

import (
	"math"
	"sort"
	"strconv"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a scalar: exactly one of the fields is meaningful, selected by kind.
type Value struct {
	kind    Kind
	boolVal bool
	intVal  int64
	realVal float64
	textVal string
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, boolVal: v}
}

// Int returns an integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, intVal: v}
}

// Real returns a floating point value.
func Real(v float64) Value {
	return Value{kind: KindReal, realVal: v}
}

// Text returns a string value.
func Text(v string) Value {
	return Value{kind: KindText, textVal: v}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload and whether v is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.boolVal, v.kind == KindBool
}

// AsInt returns the integer payload and whether v is an int.
func (v Value) AsInt() (int64, bool) {
	return v.intVal, v.kind == KindInt
}

// AsReal returns the floating point payload and whether v is a real.
func (v Value) AsReal() (float64, bool) {
	return v.realVal, v.kind == KindReal
}

// AsText returns the string payload and whether v is text.
func (v Value) AsText() (string, bool) {
	return v.textVal, v.kind == KindText
}

// String renders the value as plain text, the way it reads inside quotes.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindReal:
		return formatReal(v.realVal)
	case KindText:
		return v.textVal
	default:
		return ""
	}
}

// Int coerces v to an integer. Ints convert as is, reals only when they
// carry no fractional part, text when it holds a base-10 integer.
// Null and bool never convert.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.intVal, true
	case KindReal:
		if math.IsNaN(v.realVal) || math.IsInf(v.realVal, 0) || v.realVal != math.Trunc(v.realVal) {
			return 0, false
		}
		if v.realVal >= math.MaxInt64 || v.realVal < math.MinInt64 {
			return 0, false
		}
		return int64(v.realVal), true
	case KindText:
		n, err := strconv.ParseInt(v.textVal, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case KindNull, KindBool:
		return 0, false
	default:
		return 0, false
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindInt:
		return v.intVal == o.intVal
	case KindReal:
		return v.realVal == o.realVal
	case KindText:
		return v.textVal == o.textVal
	default:
		return false
	}
}

func formatReal(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Object is a flat mapping of keys to scalar values.
type Object map[string]Value

// Keys returns the keys in canonical (ascending byte) order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text returns the plain-text rendering of key, or "" when absent.
func (o Object) Text(key string) string {
	v, ok := o[key]
	if !ok {
		return ""
	}
	return v.String()
}
