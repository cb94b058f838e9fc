// Package world provides the typed world-state model used by the planner.
//
// A State maps variable names to Variables. Variables are one of four kinds
// (bool, integer, decimal, text) and only compare against the same kind.
// Decimals are stored as fixed-point integers scaled by DecimalScale so that
// states can be compared and hashed exactly.
package world

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Variable.
type Kind string

// Variable kinds.
const (
	KindBool    Kind = "bool"
	KindInteger Kind = "integer"
	KindDecimal Kind = "decimal"
	KindText    Kind = "text"
)

// IsValid returns true if the kind is one of the known variants.
func (k Kind) IsValid() bool {
	switch k {
	case KindBool, KindInteger, KindDecimal, KindText:
		return true
	default:
		return false
	}
}

// IsNumeric returns true for kinds that support thresholds and arithmetic.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindDecimal
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// DecimalScale is the fixed-point scale applied to decimal values.
const DecimalScale = 1000

// FromFloat converts a float to its fixed-point representation. Values
// outside the int64 range saturate, and NaN maps to zero.
func FromFloat(x float64) int64 {
	scaled := math.Round(x * DecimalScale)
	switch {
	case math.IsNaN(scaled):
		return 0
	case scaled >= math.MaxInt64:
		return math.MaxInt64
	case scaled <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(scaled)
	}
}

// MaxDecimal is the largest magnitude a decimal can hold without saturating.
const MaxDecimal = float64(math.MaxInt64) / DecimalScale

// ToFloat converts a fixed-point value back to a float.
func ToFloat(v int64) float64 {
	return float64(v) / DecimalScale
}

// Variable is a single typed value in a world state.
// The zero Variable is invalid and never satisfies anything.
type Variable struct {
	kind Kind
	num  int64
	text string
}

// Bool creates a boolean variable.
func Bool(v bool) Variable {
	var n int64
	if v {
		n = 1
	}
	return Variable{kind: KindBool, num: n}
}

// Int creates an integer variable.
func Int(v int64) Variable {
	return Variable{kind: KindInteger, num: v}
}

// Decimal creates a decimal variable, rounding to three decimal places.
func Decimal(v float64) Variable {
	return Variable{kind: KindDecimal, num: FromFloat(v)}
}

// DecimalRaw creates a decimal variable from an already scaled value.
func DecimalRaw(scaled int64) Variable {
	return Variable{kind: KindDecimal, num: scaled}
}

// Text creates a text variable.
func Text(v string) Variable {
	return Variable{kind: KindText, text: v}
}

// Kind returns the variant of the variable.
func (v Variable) Kind() Kind {
	return v.kind
}

// IsValid returns true if the variable holds one of the known variants.
func (v Variable) IsValid() bool {
	return v.kind.IsValid()
}

// AsBool returns the boolean value if the variable is a bool.
func (v Variable) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.num != 0, true
}

// AsInt returns the integer value if the variable is an integer.
func (v Variable) AsInt() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.num, true
}

// AsFloat returns the decimal value as a float if the variable is a decimal.
func (v Variable) AsFloat() (float64, bool) {
	if v.kind != KindDecimal {
		return 0, false
	}
	return ToFloat(v.num), true
}

// Scaled returns the fixed-point value if the variable is a decimal.
func (v Variable) Scaled() (int64, bool) {
	if v.kind != KindDecimal {
		return 0, false
	}
	return v.num, true
}

// AsText returns the text value if the variable is text.
func (v Variable) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Distance returns how far apart two variables of the same kind are.
// Bool and text distances are 0 or 1; numeric distances are the absolute
// difference of the underlying integers. Different kinds yield a
// *MismatchError.
func (v Variable) Distance(other Variable) (uint64, error) {
	if v.kind != other.kind || !v.kind.IsValid() {
		return 0, &MismatchError{Have: v.kind, Want: other.kind}
	}

	switch v.kind {
	case KindInteger, KindDecimal:
		if v.num >= other.num {
			return uint64(v.num) - uint64(other.num), nil
		}
		return uint64(other.num) - uint64(v.num), nil
	case KindText:
		if v.text == other.text {
			return 0, nil
		}
		return 1, nil
	default:
		if v.num == other.num {
			return 0, nil
		}
		return 1, nil
	}
}

// meets reports whether v satisfies the requirement req.
// Numeric kinds use a threshold; bool and text require equality.
func (v Variable) meets(req Variable) bool {
	if v.kind != req.kind || !v.kind.IsValid() {
		return false
	}
	if v.kind.IsNumeric() {
		return v.num >= req.num
	}
	return v == req
}

// String renders the variable value.
func (v Variable) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindDecimal:
		return strconv.FormatFloat(ToFloat(v.num), 'f', 3, 64)
	case KindText:
		return v.text
	default:
		return "<invalid>"
	}
}

// GoString renders the variable with its kind, for debugging.
func (v Variable) GoString() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.String())
}

// encode writes an unambiguous representation used for keys and hashing.
func (v Variable) encode() string {
	switch v.kind {
	case KindBool:
		return "b:" + strconv.FormatInt(v.num, 10)
	case KindInteger:
		return "i:" + strconv.FormatInt(v.num, 10)
	case KindDecimal:
		return "d:" + strconv.FormatInt(v.num, 10)
	case KindText:
		return "t:" + strconv.Quote(v.text)
	default:
		return "?"
	}
}
