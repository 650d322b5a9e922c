package geometry

import (
	"github.com/df07/go-plane-raytracer/pkg/clip"
	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/transform"
)

// Primitive is the capability set every renderable shape provides.
//
// Queries (Intersect, AllIntersections, Inside, Normal, BoundingBox,
// IntersectsBoundingBox) may run concurrently from many workers, each with
// its own ThreadContext. Mutators run only during scene setup.
type Primitive interface {
	clip.Solid

	// Intersect returns the depth of the nearest crossing within
	// [core.DepthTolerance, core.MaxDistance], ignoring clipping.
	Intersect(ray core.Ray, ctx *core.ThreadContext) (float64, bool)
	// AllIntersections pushes every clipped crossing onto stack.
	AllIntersections(ray core.Ray, stack *core.IStack, ctx *core.ThreadContext) bool
	// Normal returns the unit world-space surface normal at point.
	Normal(point core.Vec3) core.Vec3

	Translate(v core.Vec3, tr *transform.Transform)
	Rotate(v core.Vec3, tr *transform.Transform)
	Scale(v core.Vec3, tr *transform.Transform)
	Invert()
	Transform(tr *transform.Transform)

	// Copy returns an independent primitive. Owned state is duplicated,
	// clip members are shared.
	Copy() Primitive

	ComputeBoundingBox()
	IntersectsBoundingBox(dir core.BBoxDirection, origin, invDirection core.Vec3, maxDistance float64) bool
}
