package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromSize creates an AABB from its lower corner and its extent along each axis
func NewAABBFromSize(lower, size Vec3) AABB {
	return AABB{Min: lower, Max: lower.Add(size)}
}

// UnboundedAABB returns the box covering the whole representable coordinate range
func UnboundedAABB() AABB {
	const half = -BoundHuge / 2
	return NewAABBFromSize(NewVec3(half, half, half), NewVec3(BoundHuge, BoundHuge, BoundHuge))
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var min, max, origin, direction float64

		switch axis {
		case 0: // X axis
			min = aabb.Min.X
			max = aabb.Max.X
			origin = ray.Origin.X
			direction = ray.Direction.X
		case 1: // Y axis
			min = aabb.Min.Y
			max = aabb.Max.Y
			origin = ray.Origin.Y
			direction = ray.Direction.Y
		case 2: // Z axis
			min = aabb.Min.Z
			max = aabb.Max.Z
			origin = ray.Origin.Z
			direction = ray.Direction.Z
		}

		// Handle parallel rays (direction near zero)
		if math.Abs(direction) < Epsilon {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return false
		}
	}

	return true
}

// Contains reports whether point lies inside or on the box
func (aabb AABB) Contains(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// IsUnbounded reports whether the box spans the representable coordinate
// range on every axis
func (aabb AABB) IsUnbounded() bool {
	size := aabb.Size()
	return size.X >= BoundHuge && size.Y >= BoundHuge && size.Z >= BoundHuge
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// BBoxDirection is the octant of a ray direction: bit 0 set for negative X,
// bit 1 for negative Y, bit 2 for negative Z. Acceleration structures use it
// to pick near and far box corners without branching per axis.
type BBoxDirection uint8

// RayOctant returns the direction octant of ray
func RayOctant(ray Ray) BBoxDirection {
	var dir BBoxDirection
	if ray.Direction.X < 0 {
		dir |= 1
	}
	if ray.Direction.Y < 0 {
		dir |= 2
	}
	if ray.Direction.Z < 0 {
		dir |= 4
	}
	return dir
}

// InverseDirection returns the component-wise reciprocal of the ray
// direction, saturating near-zero components to +/-BoundHuge
func InverseDirection(ray Ray) Vec3 {
	inv := func(c float64) float64 {
		if math.Abs(c) < Epsilon {
			if math.Signbit(c) {
				return -BoundHuge
			}
			return BoundHuge
		}
		return 1 / c
	}
	return NewVec3(inv(ray.Direction.X), inv(ray.Direction.Y), inv(ray.Direction.Z))
}
