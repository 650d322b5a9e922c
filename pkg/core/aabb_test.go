package core

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAABB_FromSize(t *testing.T) {
	box := NewAABBFromSize(NewVec3(-1, -2, -3), NewVec3(2, 4, 6))
	want := NewAABB(NewVec3(-1, -2, -3), NewVec3(1, 2, 3))
	if diff := cmp.Diff(want, box, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("NewAABBFromSize mismatch (-want +got):\n%s", diff)
	}
}

func TestAABB_FromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 2, 0), NewVec3(0, 0, -3))
	want := NewAABB(NewVec3(-1, -2, -3), NewVec3(1, 2, 3))
	if diff := cmp.Diff(want, box); diff != "" {
		t.Errorf("NewAABBFromPoints mismatch (-want +got):\n%s", diff)
	}
	if !box.IsValid() {
		t.Error("Expected box from points to be valid")
	}
	if (NewAABBFromPoints() != AABB{}) {
		t.Error("Expected zero box for no points")
	}
}

func TestAABB_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"unit", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), true},
		{"flat", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 0, 1)), true},
		{"inverted z", NewAABB(NewVec3(0, 0, 1), NewVec3(1, 1, 0)), false},
		{"nan", NewAABB(NewVec3(math.NaN(), 0, 0), NewVec3(1, 1, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.IsValid(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_Unbounded(t *testing.T) {
	box := UnboundedAABB()
	if !box.IsUnbounded() {
		t.Fatalf("Expected unbounded box, got %v", box)
	}
	if box.Min.X != -BoundHuge/2 || box.Max.X != BoundHuge/2 {
		t.Errorf("Expected symmetric +/-%g range, got [%g, %g]", BoundHuge/2, box.Min.X, box.Max.X)
	}
	if !box.Contains(NewVec3(1e9, -1e9, 0)) {
		t.Error("Expected unbounded box to contain large coordinates")
	}
	if NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).IsUnbounded() {
		t.Error("Expected unit box to be bounded")
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"through center", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), true},
		{"miss above", NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0)), false},
		{"parallel inside slab", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"pointing away", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, DepthTolerance, MaxDistance); got != tt.expected {
				t.Errorf("Expected hit=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_UnionAndAxis(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(4, -1, 0), NewVec3(5, 0, 1))
	u := a.Union(b)

	want := NewAABB(NewVec3(0, -1, 0), NewVec3(5, 1, 1))
	if diff := cmp.Diff(want, u); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
	if axis := u.LongestAxis(); axis != 0 {
		t.Errorf("Expected longest axis X, got %d", axis)
	}
}

func TestRayOctant(t *testing.T) {
	tests := []struct {
		direction Vec3
		expected  BBoxDirection
	}{
		{NewVec3(1, 1, 1), 0},
		{NewVec3(-1, 1, 1), 1},
		{NewVec3(1, -1, 1), 2},
		{NewVec3(-1, -1, -1), 7},
	}

	for _, tt := range tests {
		if got := RayOctant(NewRay(Vec3{}, tt.direction)); got != tt.expected {
			t.Errorf("Direction %v: expected octant %d, got %d", tt.direction, tt.expected, got)
		}
	}
}

func TestInverseDirection_SaturatesZero(t *testing.T) {
	inv := InverseDirection(NewRay(Vec3{}, NewVec3(0, 2, -4)))
	if inv.X != BoundHuge || inv.Y != 0.5 || inv.Z != -0.25 {
		t.Errorf("Unexpected inverse direction %v", inv)
	}
}
