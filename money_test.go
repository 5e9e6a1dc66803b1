package tracker

import "testing"

func TestMoney_String(t *testing.T) {
	if got := USD(60).String(); got != "$60.00" {
		t.Errorf("String() = %q, want %q", got, "$60.00")
	}
	if got := M(1234.5, "EUR").String(); got != "€1,234.50" {
		t.Errorf("String() = %q, want %q", got, "€1,234.50")
	}
}

func TestMoney_Accounting(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{11, "$11.00"},
		{-11, "($11.00)"},
		{0, "$0.00"},
	}
	for _, tc := range tests {
		if got := USD(tc.value).Accounting(); got != tc.want {
			t.Errorf("Accounting(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	cost := USD(5).Mul(Q(10)).Add(USD(1))
	if !cost.Equal(USD(51)) {
		t.Errorf("5*10+1 = %s, want $51.00", cost)
	}
	gain := USD(60).Sub(cost)
	if !gain.Equal(USD(9)) {
		t.Errorf("60-51 = %s, want $9.00", gain)
	}
	if got := gain.PercentOf(cost); !got.Equal(Percent(17.6470)) {
		t.Errorf("PercentOf = %v, want ≈17.65%%", got)
	}
}

func TestPercent_Strings(t *testing.T) {
	if got := Percent(17.647).String(); got != "17.65%" {
		t.Errorf("String() = %q, want %q", got, "17.65%")
	}
	if got := Percent(-3.2).SignedString(); got != "-3.20%" {
		t.Errorf("SignedString() = %q, want %q", got, "-3.20%")
	}
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want %q", got, "-")
	}
}
