package world

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Op is the operation an Effect performs.
type Op string

// Effect operations.
const (
	OpSet      Op = "set"
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
)

// Effect is a single mutation applied to one variable.
type Effect struct {
	op    Op
	value Variable
	delta int64
}

// Set returns an effect replacing the variable with v.
func Set(v Variable) Effect {
	return Effect{op: OpSet, value: v}
}

// Add returns an effect adding delta to an integer or decimal variable.
// For decimals the delta is applied to the scaled value.
func Add(delta int64) Effect {
	return Effect{op: OpAdd, delta: delta}
}

// Subtract returns an effect subtracting delta from an integer or decimal
// variable. For decimals the delta is applied to the scaled value.
func Subtract(delta int64) Effect {
	return Effect{op: OpSubtract, delta: delta}
}

// AddFloat returns an Add effect with a decimal delta.
func AddFloat(x float64) Effect {
	return Add(FromFloat(x))
}

// SubtractFloat returns a Subtract effect with a decimal delta.
func SubtractFloat(x float64) Effect {
	return Subtract(FromFloat(x))
}

// Op returns the effect operation.
func (e Effect) Op() Op {
	return e.op
}

// Value returns the variable assigned by a set effect.
func (e Effect) Value() Variable {
	return e.value
}

// Delta returns the amount of an add or subtract effect.
func (e Effect) Delta() int64 {
	return e.delta
}

// apply computes the new value of a variable. It returns false when the
// effect does not change anything: add and subtract on a missing or
// non-numeric variable are silently dropped.
func (e Effect) apply(cur Variable, present bool) (Variable, bool) {
	switch e.op {
	case OpSet:
		return e.value, true
	case OpAdd, OpSubtract:
		if !present || !cur.kind.IsNumeric() {
			return cur, false
		}
		d := e.delta
		if e.op == OpSubtract {
			d = -d
		}
		cur.num += d
		return cur, true
	default:
		return cur, false
	}
}

// String renders the effect.
func (e Effect) String() string {
	switch e.op {
	case OpSet:
		return "= " + e.value.String()
	case OpAdd:
		return "+= " + strconv.FormatInt(e.delta, 10)
	case OpSubtract:
		return "-= " + strconv.FormatInt(e.delta, 10)
	default:
		return "<invalid>"
	}
}

func (e Effect) encode() string {
	switch e.op {
	case OpSet:
		return "set:" + e.value.encode()
	default:
		return string(e.op) + ":" + strconv.FormatInt(e.delta, 10)
	}
}

// Effects maps variable names to the effect applied to them.
type Effects map[string]Effect

// Names returns the affected variable names in sorted order.
func (e Effects) Names() []string {
	return slices.Sorted(maps.Keys(e))
}

// Key returns a canonical encoding of the effects.
func (e Effects) Key() string {
	var b strings.Builder
	for _, name := range e.Names() {
		b.WriteString(strconv.Quote(name))
		b.WriteString(e[name].encode())
		b.WriteByte(';')
	}
	return b.String()
}
