package core

import (
	"math"
	"testing"
)

func TestVec3_DivideVec(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		divisor  Vec3
		expected Vec3
	}{
		{"uniform", NewVec3(2, 4, 6), NewVec3(2, 2, 2), NewVec3(1, 2, 3)},
		{"per axis", NewVec3(0, 1, 0), NewVec3(1, 2, 4), NewVec3(0, 0.5, 0)},
		{"negative", NewVec3(1, -1, 3), NewVec3(-1, 1, 3), NewVec3(-1, -1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.DivideVec(tt.divisor)
			if !result.ApproxEqual(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_DivideVecByZeroIsNotFinite(t *testing.T) {
	result := NewVec3(0, 1, 0).DivideVec(NewVec3(1, 0, 1))
	if result.IsFinite() {
		t.Errorf("Expected non-finite result for zero divisor, got %v", result)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestVec3_CrossAndDot(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected x cross y = z, got %v", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("Expected orthogonal dot product 0, got %f", got)
	}
	if got := NewVec3(3, 4, 0).Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Expected length 5, got %f", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 5, 0), NewVec3(0, -1, 0))
	if got := ray.At(5); !got.ApproxEqual(NewVec3(0, 0, 0), 1e-12) {
		t.Errorf("Expected origin, got %v", got)
	}
}
