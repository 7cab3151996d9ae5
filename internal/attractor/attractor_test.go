package attractor

import (
	"math"
	"testing"
)

func TestStaticBasinsIgnoreTime(t *testing.T) {
	g0 := Geometry(0)
	g1 := Geometry(137.5)

	for _, k := range []Kind{KindYangSpiral, KindYinSpiral, KindBalance} {
		if g0[k] != g1[k] {
			t.Errorf("%s basin changed over time: %+v vs %+v", k, g0[k], g1[k])
		}
	}
}

func TestStrangeBasinOrbits(t *testing.T) {
	g := Geometry(0)
	strange := g[KindStrange]

	// At t=0: x = 5·sin(0) = 0, y = 5·cos(0) = 5, z = 10·sin(0) = 0.
	if strange.Center.X != 0 || strange.Center.Y != 5 || strange.Center.Z != 0 {
		t.Errorf("strange center at t=0 = %+v, want (0,5,0)", strange.Center)
	}

	// The center must actually move.
	later := Geometry(10)[KindStrange]
	if later.Center == strange.Center {
		t.Error("strange basin center did not move between t=0 and t=10")
	}
}

func TestPolarityIntensityBounds(t *testing.T) {
	for _, tm := range []float64{0, 1, 7.85, 15.7, 31.4, 100, 1000} {
		g := Geometry(tm)
		for _, b := range g {
			if b.YangIntensity < 0 || b.YangIntensity > 1 {
				t.Errorf("t=%v %s yang intensity %v out of [0,1]", tm, b.Kind, b.YangIntensity)
			}
			if b.YinIntensity < 0 || b.YinIntensity > 1 {
				t.Errorf("t=%v %s yin intensity %v out of [0,1]", tm, b.Kind, b.YinIntensity)
			}
		}
	}
}

func TestStrangePolaritiesOppositePhase(t *testing.T) {
	// The strange basin's polarities oscillate around 0.5 in opposite
	// phase, so their sum stays constant.
	for _, tm := range []float64{0, 1, 2, 5, 13, 42} {
		b := Geometry(tm)[KindStrange]
		if math.Abs(b.YangIntensity+b.YinIntensity-1.0) > 1e-12 {
			t.Errorf("t=%v strange polarities sum %v, want 1.0", tm, b.YangIntensity+b.YinIntensity)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindYangSpiral, "yang_spiral"},
		{KindYinSpiral, "yin_spiral"},
		{KindBalance, "balance"},
		{KindStrange, "strange"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
