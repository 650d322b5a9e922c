package geometry

import (
	"math"

	"github.com/df07/go-plane-raytracer/pkg/clip"
	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/transform"
)

// Compile-time interface checks.
var (
	_ Primitive  = (*Plane)(nil)
	_ clip.Solid = (*Plane)(nil)
)

// Plane is an infinite half-space boundary: dot(normal, P) + distance = 0.
// Points with dot(normal, P) + distance < 0 are inside.
//
// Without a transform the normal and distance are in world space. Once a
// transform is attached they describe the plane in local space and every
// further mutation is composed into the transform instead.
type Plane struct {
	normal   core.Vec3
	distance float64
	trans    *transform.Transform
	clip     clip.Region
	bbox     core.AABB
}

// NewPlane creates the plane y = 0 with the inside below it
func NewPlane() *Plane {
	p := &Plane{
		normal:   core.NewVec3(0, 1, 0),
		distance: 0,
	}
	p.ComputeBoundingBox()
	return p
}

// NewPlaneFromEquation creates the plane dot(normal, P) + distance = 0.
// The equation is rescaled so the stored normal has unit length.
func NewPlaneFromEquation(normal core.Vec3, distance float64) *Plane {
	length := normal.Length()
	p := &Plane{
		normal:   normal.Divide(length),
		distance: distance / length,
	}
	p.ComputeBoundingBox()
	return p
}

// NormalVector returns the stored (local-space if transformed) normal
func (p *Plane) NormalVector() core.Vec3 {
	return p.normal
}

// Distance returns the stored (local-space if transformed) offset
func (p *Plane) Distance() float64 {
	return p.distance
}

// Trans returns the attached transform, or nil
func (p *Plane) Trans() *transform.Transform {
	return p.trans
}

// Clip returns the clip region
func (p *Plane) Clip() clip.Region {
	return p.clip
}

// SetClip replaces the clip region and recomputes the bound
func (p *Plane) SetClip(region clip.Region) {
	p.clip = region
	p.ComputeBoundingBox()
}

// AddClip appends a clip solid and recomputes the bound
func (p *Plane) AddClip(solid clip.Solid) {
	p.clip = append(p.clip, solid)
	p.ComputeBoundingBox()
}

// Intersect returns the depth at which ray crosses the plane
func (p *Plane) Intersect(ray core.Ray, ctx *core.ThreadContext) (float64, bool) {
	ctx.Increment(core.RayPlaneTests)

	origin, direction := ray.Origin, ray.Direction
	if p.trans != nil {
		origin = p.trans.InvPoint(origin)
		direction = p.trans.InvDirection(direction)
	}

	normalDotDirection := p.normal.Dot(direction)
	if math.Abs(normalDotDirection) < core.Epsilon {
		return 0, false
	}

	depth := -(p.normal.Dot(origin) + p.distance) / normalDotDirection

	if depth >= core.DepthTolerance && depth <= core.MaxDistance {
		ctx.Increment(core.RayPlaneTestsSucceeded)
		return depth, true
	}
	return 0, false
}

// AllIntersections pushes the crossing onto stack if it survives clipping
func (p *Plane) AllIntersections(ray core.Ray, stack *core.IStack, ctx *core.ThreadContext) bool {
	depth, ok := p.Intersect(ray, ctx)
	if !ok {
		return false
	}

	point := ray.At(depth)
	if !p.clip.Contains(point, ctx) {
		return false
	}

	stack.Push(core.Intersection{Depth: depth, Point: point, Object: p})
	return true
}

// Inside reports whether point lies in the plane's inside half-space
func (p *Plane) Inside(point core.Vec3, _ *core.ThreadContext) bool {
	if p.trans != nil {
		point = p.trans.InvPoint(point)
	}
	return point.Dot(p.normal)+p.distance < core.Epsilon
}

// Normal returns the world-space unit normal. The plane normal does not
// depend on the point.
func (p *Plane) Normal(_ core.Vec3) core.Vec3 {
	if p.trans == nil {
		return p.normal
	}
	return p.trans.Normal(p.normal).Normalize()
}

// Translate moves the plane by v. tr must be the equivalent translation.
func (p *Plane) Translate(v core.Vec3, tr *transform.Transform) {
	if p.trans != nil {
		p.Transform(tr)
		return
	}
	p.distance -= p.normal.Dot(v)
	p.ComputeBoundingBox()
}

// Rotate rotates the plane. tr must be the rotation described by v.
func (p *Plane) Rotate(_ core.Vec3, tr *transform.Transform) {
	if p.trans != nil {
		p.Transform(tr)
		return
	}
	p.normal = tr.Direction(p.normal)
	p.ComputeBoundingBox()
}

// Scale scales the plane by s per axis. tr must be the equivalent scale.
// Every component of s must be nonzero; a zero component leaves a NaN or
// infinite normal behind.
func (p *Plane) Scale(s core.Vec3, tr *transform.Transform) {
	if p.trans != nil {
		p.Transform(tr)
		return
	}
	// Normals scale by the inverse.
	p.normal = p.normal.DivideVec(s)
	length := p.normal.Length()
	p.normal = p.normal.Divide(length)
	p.distance /= length
	p.ComputeBoundingBox()
}

// Invert swaps the inside and outside half-spaces
func (p *Plane) Invert() {
	p.normal = p.normal.Negate()
	p.distance = -p.distance
}

// Transform composes tr onto the plane's transform, creating it on first use
func (p *Plane) Transform(tr *transform.Transform) {
	if p.trans == nil {
		p.trans = transform.New()
	}
	p.trans.Compose(tr)
	p.ComputeBoundingBox()
}

// Copy returns an independent plane. The transform is cloned; clip members
// are shared with the original.
func (p *Plane) Copy() Primitive {
	c := *p
	c.trans = p.trans.Clone()
	c.clip = p.clip.Clone()
	return &c
}

// Destroy releases the owned transform. Clip members are left untouched.
func (p *Plane) Destroy() {
	p.trans = nil
}

// ComputeBoundingBox recomputes the bound. A plane is infinite under any
// affine map, so only a clip region can narrow it.
func (p *Plane) ComputeBoundingBox() {
	p.bbox = core.UnboundedAABB()
	// TODO: bound by every clip member, not only the first, once the
	// intended combination (intersection of bounds) is confirmed.
	if bound, ok := p.clip.Bound(); ok {
		p.bbox = bound
	}
}

// BoundingBox returns the current bound
func (p *Plane) BoundingBox() core.AABB {
	return p.bbox
}

// IntersectsBoundingBox always reports true: the bound of a plane cannot
// reject a ray more cheaply than Intersect does.
func (p *Plane) IntersectsBoundingBox(core.BBoxDirection, core.Vec3, core.Vec3, float64) bool {
	return true
}
