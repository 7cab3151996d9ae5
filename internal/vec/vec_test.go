package vec

import (
	"math"
	"testing"
)

func TestLength(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{}, 0},
		{"unit_x", Vec3{X: 1}, 1},
		{"pythagorean", Vec3{X: 3, Y: 4, Z: 0}, 5},
		{"negative", Vec3{X: -3, Y: -4, Z: 0}, 5},
		{"all_axes", Vec3{X: 2, Y: 3, Z: 6}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Length(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 6, Z: 3}
	if got := a.Distance(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance() = %v, want 5", got)
	}
	if got := a.Distance(a); got != 0 {
		t.Errorf("Distance to self = %v, want 0", got)
	}
}

func TestDot(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -5, Z: 6}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot() = %v, want 12", got)
	}

	// Orthogonal vectors.
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	if got := x.Dot(y); got != 0 {
		t.Errorf("orthogonal Dot() = %v, want 0", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 10, Y: 20, Z: 30}

	if got := a.Add(b); got != (Vec3{X: 11, Y: 22, Z: 33}) {
		t.Errorf("Add() = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{X: 9, Y: 18, Z: 27}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale() = %v", got)
	}
}
