package world

import (
	"errors"
	"math"
	"testing"
)

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected bool
	}{
		{KindBool, true},
		{KindInteger, true},
		{KindDecimal, true},
		{KindText, true},
		{Kind(""), false},
		{Kind("BOOL"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.expected {
				t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.expected)
			}
		})
	}
}

func TestDecimal_RoundTrip(t *testing.T) {
	t.Parallel()

	values := []float64{0, 1, -1, 0.001, -0.001, 3.14159, 2.5, 1234567.891, -98.7654, 0.0005}
	for _, x := range values {
		got := ToFloat(FromFloat(x))
		if math.Abs(got-x) > 0.0005+1e-9 {
			t.Errorf("ToFloat(FromFloat(%v)) = %v, differs by more than 3 decimals", x, got)
		}
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{1.5, 1500},
		{0.1, 100},
		{-2.25, -2250},
		{3.14159, 3142},
		{0.0004, 0},
		{1e16, math.MaxInt64},
		{1e18, math.MaxInt64},
		{-1e18, math.MinInt64},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := FromFloat(tt.in); got != tt.want {
			t.Errorf("FromFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFromFloat_SaturationKeepsSign(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{1e16, 1e18, math.MaxFloat64} {
		if got := ToFloat(FromFloat(x)); got <= 0 {
			t.Errorf("ToFloat(FromFloat(%v)) = %v, want a positive value", x, got)
		}
	}
	for _, x := range []float64{-1e16, -1e18, -math.MaxFloat64} {
		if got := ToFloat(FromFloat(x)); got >= 0 {
			t.Errorf("ToFloat(FromFloat(%v)) = %v, want a negative value", x, got)
		}
	}
	if got, _ := Decimal(1e16).AsFloat(); got < MaxDecimal-1 {
		t.Errorf("Decimal(1e16) = %v, want it saturated at %v", got, MaxDecimal)
	}
}

func TestVariable_Accessors(t *testing.T) {
	t.Parallel()

	if b, ok := Bool(true).AsBool(); !ok || !b {
		t.Errorf("Bool(true).AsBool() = %v, %v", b, ok)
	}
	if _, ok := Bool(true).AsInt(); ok {
		t.Error("Bool.AsInt() should fail")
	}
	if n, ok := Int(42).AsInt(); !ok || n != 42 {
		t.Errorf("Int(42).AsInt() = %v, %v", n, ok)
	}
	if f, ok := Decimal(1.25).AsFloat(); !ok || f != 1.25 {
		t.Errorf("Decimal(1.25).AsFloat() = %v, %v", f, ok)
	}
	if n, ok := Decimal(1.25).Scaled(); !ok || n != 1250 {
		t.Errorf("Decimal(1.25).Scaled() = %v, %v", n, ok)
	}
	if s, ok := Text("idle").AsText(); !ok || s != "idle" {
		t.Errorf("Text.AsText() = %v, %v", s, ok)
	}
	if (Variable{}).IsValid() {
		t.Error("zero Variable should be invalid")
	}
}

func TestVariable_Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Variable
		want uint64
	}{
		{"equal bools", Bool(true), Bool(true), 0},
		{"different bools", Bool(true), Bool(false), 1},
		{"equal text", Text("a"), Text("a"), 0},
		{"different text", Text("a"), Text("b"), 1},
		{"integers", Int(3), Int(10), 7},
		{"integers reversed", Int(10), Int(3), 7},
		{"negative integers", Int(-5), Int(5), 10},
		{"decimals", Decimal(1.5), Decimal(0.25), 1250},
		{"extreme integers", Int(math.MinInt64), Int(math.MaxInt64), math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Distance(tt.b)
			if err != nil {
				t.Fatalf("Distance() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Distance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVariable_DistanceMismatch(t *testing.T) {
	t.Parallel()

	_, err := Int(1).Distance(Text("1"))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Distance() error = %v, want ErrTypeMismatch", err)
	}

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
	if mismatch.Have != KindInteger || mismatch.Want != KindText {
		t.Errorf("mismatch = %+v", mismatch)
	}

	if _, err := Int(1).Distance(Decimal(1)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("integer vs decimal should mismatch, got %v", err)
	}
}

func TestVariable_String(t *testing.T) {
	tests := []struct {
		v    Variable
		want string
	}{
		{Bool(false), "false"},
		{Int(-7), "-7"},
		{Decimal(2.5), "2.500"},
		{Text("at_tree"), "at_tree"},
		{Variable{}, "<invalid>"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
