package world

import (
	"fmt"
	"math"
)

// Scalar is the set of Go types a variable can be read as.
type Scalar interface {
	bool | int | int64 | float64 | string
}

// Get reads name from the state as T. It returns false when the variable is
// missing or holds a different kind. It never panics.
func Get[T Scalar](s State, name string) (T, bool) {
	var zero T
	v, ok := s[name]
	if !ok {
		return zero, false
	}

	var out any
	switch any(zero).(type) {
	case bool:
		b, ok := v.AsBool()
		if !ok {
			return zero, false
		}
		out = b
	case int:
		n, ok := v.AsInt()
		if !ok || n < math.MinInt || n > math.MaxInt {
			return zero, false
		}
		out = int(n)
	case int64:
		n, ok := v.AsInt()
		if !ok {
			return zero, false
		}
		out = n
	case float64:
		f, ok := v.AsFloat()
		if !ok {
			return zero, false
		}
		out = f
	case string:
		t, ok := v.AsText()
		if !ok {
			return zero, false
		}
		out = t
	}
	return out.(T), true
}

// GetOr reads name as T, falling back to def.
func GetOr[T Scalar](s State, name string, def T) T {
	if v, ok := Get[T](s, name); ok {
		return v
	}
	return def
}

// From converts a Go value into a Variable. Booleans, signed and unsigned
// integers, floats, strings and fmt.Stringer values are supported.
func From(value any) (Variable, error) {
	switch v := value.(type) {
	case Variable:
		if !v.IsValid() {
			return Variable{}, fmt.Errorf("%w: invalid variable", ErrUnsupportedValue)
		}
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return fromUint(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case string:
		return Text(v), nil
	case fmt.Stringer:
		return Enum(v), nil
	default:
		return Variable{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

func fromUint(v uint64) (Variable, error) {
	if v > math.MaxInt64 {
		return Variable{}, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValue, v)
	}
	return Int(int64(v)), nil
}

func fromFloat(v float64) (Variable, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Variable{}, fmt.Errorf("%w: non-finite decimal %v", ErrUnsupportedValue, v)
	}
	if math.Abs(v) >= MaxDecimal {
		return Variable{}, fmt.Errorf("%w: decimal %v out of range", ErrUnsupportedValue, v)
	}
	return Decimal(v), nil
}
