package clip

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/df07/go-plane-raytracer/pkg/core"
)

// Compile-time interface check.
var _ Solid = (*SDFSolid)(nil)

// SDFSolid is a clip solid described by a signed distance field. A point is
// inside when the field is not positive.
type SDFSolid struct {
	s sdf.SDF3
}

// FromSDF wraps an existing sdf.SDF3
func FromSDF(s sdf.SDF3) *SDFSolid {
	return &SDFSolid{s: s}
}

// NewSphere creates a spherical clip solid
func NewSphere(center core.Vec3, radius float64) (*SDFSolid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, errors.Wrapf(err, "sphere radius %g", radius)
	}
	return FromSDF(placed(s, center)), nil
}

// NewBox creates an axis-aligned box clip solid centered on center
func NewBox(center, size core.Vec3) (*SDFSolid, error) {
	s, err := sdf.Box3D(toV3(size), 0)
	if err != nil {
		return nil, errors.Wrapf(err, "box size %v", size)
	}
	return FromSDF(placed(s, center)), nil
}

// NewCylinder creates a Z-aligned cylinder clip solid centered on center
func NewCylinder(center core.Vec3, height, radius float64) (*SDFSolid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "cylinder height %g radius %g", height, radius)
	}
	return FromSDF(placed(s, center)), nil
}

// Inside reports whether point is within the solid
func (c *SDFSolid) Inside(point core.Vec3, _ *core.ThreadContext) bool {
	return c.s.Evaluate(toV3(point)) <= 0
}

// BoundingBox returns the bound of the underlying field
func (c *SDFSolid) BoundingBox() core.AABB {
	bb := c.s.BoundingBox()
	return core.NewAABBFromPoints(fromV3(bb.Min), fromV3(bb.Max))
}

func placed(s sdf.SDF3, center core.Vec3) sdf.SDF3 {
	if center == (core.Vec3{}) {
		return s
	}
	return sdf.Transform3D(s, sdf.Translate3d(toV3(center)))
}

func toV3(v core.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromV3(v v3.Vec) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}
