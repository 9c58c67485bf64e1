package vm

import (
	"math"
	"strconv"
)

// ValueType identifies the variant a Value holds.
type ValueType uint8

const (
	VAL_NIL ValueType = iota
	VAL_BOOL
	VAL_NUM
	VAL_STR
)

// Value is a funlet runtime value: nil, boolean, 64-bit float or string.
// Booleans and numbers are stored inline in Data (0/1, float bits).
// Strings ride the Go string header in Str: immutable, shared between
// constant-pool slots, global entries and stack cells, O(1) to copy and
// compared by content.
type Value struct {
	Type ValueType
	Data uint64
	Str  string
}

func NilVal() Value {
	return Value{Type: VAL_NIL}
}

func BoolVal(b bool) Value {
	if b {
		return Value{Type: VAL_BOOL, Data: 1}
	}
	return Value{Type: VAL_BOOL}
}

func NumVal(f float64) Value {
	return Value{Type: VAL_NUM, Data: math.Float64bits(f)}
}

func StrVal(s string) Value {
	return Value{Type: VAL_STR, Str: s}
}

func (v Value) IsNil() bool  { return v.Type == VAL_NIL }
func (v Value) IsBool() bool { return v.Type == VAL_BOOL }
func (v Value) IsNum() bool  { return v.Type == VAL_NUM }
func (v Value) IsStr() bool  { return v.Type == VAL_STR }

func (v Value) AsBool() bool   { return v.Data != 0 }
func (v Value) AsNum() float64 { return math.Float64frombits(v.Data) }
func (v Value) AsStr() string  { return v.Str }

// IsFalsey reports whether v is nil or false. Everything else is truthy,
// zero and the empty string included.
func (v Value) IsFalsey() bool {
	switch v.Type {
	case VAL_NIL:
		return true
	case VAL_BOOL:
		return !v.AsBool()
	default:
		return false
	}
}

// Equals compares within a variant only; values of different variants are
// never equal.
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case VAL_NIL:
		return true
	case VAL_BOOL:
		return v.AsBool() == other.AsBool()
	case VAL_NUM:
		return v.AsNum() == other.AsNum()
	case VAL_STR:
		return v.Str == other.Str
	default:
		return false
	}
}

// Inspect renders v the way print displays it: numbers in their shortest
// decimal form, strings as raw content without quotes.
func (v Value) Inspect() string {
	switch v.Type {
	case VAL_NIL:
		return "nil"
	case VAL_BOOL:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case VAL_NUM:
		return strconv.FormatFloat(v.AsNum(), 'g', -1, 64)
	case VAL_STR:
		return v.Str
	default:
		return "unknown"
	}
}
