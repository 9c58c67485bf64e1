package vm

import "testing"

func TestValueFalsey(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		falsey bool
	}{
		{"nil", NilVal(), true},
		{"false", BoolVal(false), true},
		{"true", BoolVal(true), false},
		{"zero", NumVal(0), false},
		{"negative", NumVal(-1), false},
		{"empty string", StrVal(""), false},
		{"string", StrVal("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsFalsey(); got != tt.falsey {
				t.Errorf("IsFalsey() = %v, want %v", got, tt.falsey)
			}
		})
	}
}

func TestValueEquals(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"nil == nil", NilVal(), NilVal(), true},
		{"true == true", BoolVal(true), BoolVal(true), true},
		{"true != false", BoolVal(true), BoolVal(false), false},
		{"1 == 1", NumVal(1), NumVal(1), true},
		{"1 != 2", NumVal(1), NumVal(2), false},
		{"0 == -0", NumVal(0), NumVal(negZero()), true},
		{"same strings", StrVal("foo"), StrVal("foo"), true},
		{"different strings", StrVal("foo"), StrVal("bar"), false},
		// Cross-variant comparison is always false.
		{"nil != false", NilVal(), BoolVal(false), false},
		{"0 != false", NumVal(0), BoolVal(false), false},
		{"0 != nil", NumVal(0), NilVal(), false},
		{"empty string != nil", StrVal(""), NilVal(), false},
		{"1 != \"1\"", NumVal(1), StrVal("1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.equal {
				t.Errorf("Equals = %v, want %v", got, tt.equal)
			}
			if got := tt.b.Equals(tt.a); got != tt.equal {
				t.Errorf("Equals (flipped) = %v, want %v", got, tt.equal)
			}
		})
	}
}

func negZero() float64 {
	z := 0.0
	return -z
}

func TestValueInspect(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NilVal(), "nil"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{NumVal(7), "7"},
		{NumVal(3.5), "3.5"},
		{NumVal(-0.25), "-0.25"},
		{NumVal(100), "100"},
		{StrVal("hello"), "hello"},
		{StrVal(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.value.Inspect(); got != tt.want {
				t.Errorf("Inspect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueAccessors(t *testing.T) {
	if !NumVal(2.5).IsNum() || NumVal(2.5).AsNum() != 2.5 {
		t.Errorf("NumVal round trip failed")
	}
	if !BoolVal(true).IsBool() || !BoolVal(true).AsBool() {
		t.Errorf("BoolVal round trip failed")
	}
	if !StrVal("s").IsStr() || StrVal("s").AsStr() != "s" {
		t.Errorf("StrVal round trip failed")
	}
	if !NilVal().IsNil() {
		t.Errorf("NilVal().IsNil() = false")
	}
}
