package engine

import (
	"math"
	"testing"
)

func TestNormalizeRate(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"fraction scales to percent", 0.28, 28},
		{"fraction with rounding residue", 0.305, 30.5},
		{"percent passes through", 28, 28},
		{"one is a fraction boundary", 1, 100},
		{"zero stays zero", 0, 0},
		{"over hundred clamps", 150, 100},
		{"negative clamps to zero", -5, 0},
	}
	for _, tc := range cases {
		// the x100 scaling leaves float residue, so compare with a tolerance
		got := NormalizeRate(tc.in)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: NormalizeRate(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRateUnknown(t *testing.T) {
	if got := NormalizeRate(math.NaN()); got != RateUnknown {
		t.Fatalf("NormalizeRate(NaN) = %v, want RateUnknown", got)
	}
	if got := NormalizeRate(RateUnknown); got != RateUnknown {
		t.Fatalf("NormalizeRate(RateUnknown) = %v, want RateUnknown", got)
	}
	if KnownRate(RateUnknown) {
		t.Fatal("KnownRate(RateUnknown) = true")
	}
	if !KnownRate(28) {
		t.Fatal("KnownRate(28) = false")
	}
}

func TestNormalizeRateIdempotentOnPercentScale(t *testing.T) {
	// Once a value is on the percent scale, renormalizing must not move it.
	for _, v := range []float64{0, 1, 2.5, 30, 50, 85, 100} {
		once := NormalizeRate(v)
		twice := NormalizeRate(once)
		if once != twice {
			t.Fatalf("NormalizeRate not idempotent at %v: %v then %v", v, once, twice)
		}
	}
}
