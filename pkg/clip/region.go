// Package clip restricts primitive surfaces to the intersection of a set of
// auxiliary solids.
package clip

import "github.com/df07/go-plane-raytracer/pkg/core"

// Solid is anything that can answer point membership and report a bound.
// Primitives used as clip members implement it.
type Solid interface {
	Inside(point core.Vec3, ctx *core.ThreadContext) bool
	BoundingBox() core.AABB
}

// Region is an ordered list of clip solids. Members are referenced, never
// owned: copying or dropping a Region does not affect them.
type Region []Solid

// Empty reports whether the region imposes no restriction
func (r Region) Empty() bool {
	return len(r) == 0
}

// Contains reports whether point lies inside every member. An empty region
// contains every point.
func (r Region) Contains(point core.Vec3, ctx *core.ThreadContext) bool {
	if len(r) == 0 {
		return true
	}
	ctx.Increment(core.ClipTests)
	for _, solid := range r {
		if !solid.Inside(point, ctx) {
			return false
		}
	}
	ctx.Increment(core.ClipTestsSucceeded)
	return true
}

// Bound returns the bounding box of the first member. Later members are not
// reflected in the bound. An inverted or NaN box yields no bound.
func (r Region) Bound() (core.AABB, bool) {
	if len(r) == 0 {
		return core.AABB{}, false
	}
	bound := r[0].BoundingBox()
	if !bound.IsValid() {
		return core.AABB{}, false
	}
	return bound, true
}

// Clone returns a new slice referencing the same members
func (r Region) Clone() Region {
	if r == nil {
		return nil
	}
	out := make(Region, len(r))
	copy(out, r)
	return out
}
