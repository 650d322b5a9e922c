// Package transform implements invertible affine transforms used to place
// primitives in world space.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/df07/go-plane-raytracer/pkg/core"
)

// singularThreshold is the smallest |det| accepted for a raw matrix
const singularThreshold = 1e-12

// Transform holds an affine matrix together with its inverse. Matrices use
// the column-vector convention: p' = M * p.
type Transform struct {
	matrix  mgl64.Mat4
	inverse mgl64.Mat4
}

// New returns the identity transform
func New() *Transform {
	return &Transform{matrix: mgl64.Ident4(), inverse: mgl64.Ident4()}
}

// NewTranslation returns a transform moving points by v
func NewTranslation(v core.Vec3) *Transform {
	return &Transform{
		matrix:  mgl64.Translate3D(v.X, v.Y, v.Z),
		inverse: mgl64.Translate3D(-v.X, -v.Y, -v.Z),
	}
}

// NewScale returns a transform scaling each axis by the matching component
// of s. Every component must be nonzero.
func NewScale(s core.Vec3) *Transform {
	return &Transform{
		matrix:  mgl64.Scale3D(s.X, s.Y, s.Z),
		inverse: mgl64.Scale3D(1/s.X, 1/s.Y, 1/s.Z),
	}
}

// NewRotation returns a rotation by the given angles in degrees, applied
// about X first, then Y, then Z.
func NewRotation(degrees core.Vec3) *Transform {
	rx := mgl64.HomogRotate3DX(mgl64.DegToRad(degrees.X))
	ry := mgl64.HomogRotate3DY(mgl64.DegToRad(degrees.Y))
	rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(degrees.Z))
	m := rz.Mul4(ry).Mul4(rx)
	// Rotations are orthonormal, the transpose is the exact inverse.
	return &Transform{matrix: m, inverse: m.Transpose()}
}

// NewAxisRotation returns a rotation of degrees about axis
func NewAxisRotation(axis core.Vec3, degrees float64) *Transform {
	a := axis.Normalize()
	m := mgl64.HomogRotate3D(mgl64.DegToRad(degrees), mgl64.Vec3{a.X, a.Y, a.Z})
	return &Transform{matrix: m, inverse: m.Transpose()}
}

// NewFromMatrix wraps an arbitrary affine matrix. The bottom row must be
// (0, 0, 0, 1) and the matrix must be invertible.
func NewFromMatrix(m mgl64.Mat4) (*Transform, error) {
	if m.At(3, 0) != 0 || m.At(3, 1) != 0 || m.At(3, 2) != 0 || m.At(3, 3) != 1 {
		return nil, errors.Errorf("matrix is not affine: bottom row is %v", m.Row(3))
	}
	det := m.Det()
	if math.Abs(det) < singularThreshold || math.IsNaN(det) {
		return nil, errors.Errorf("matrix is singular (det=%g)", det)
	}
	return &Transform{matrix: m, inverse: m.Inv()}, nil
}

// Compose appends other to t: the result applies t first, then other.
func (t *Transform) Compose(other *Transform) {
	if other == nil {
		return
	}
	t.matrix = other.matrix.Mul4(t.matrix)
	t.inverse = t.inverse.Mul4(other.inverse)
}

// Clone returns an independent copy. Cloning a nil transform returns nil.
func (t *Transform) Clone() *Transform {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Matrix returns the forward matrix
func (t *Transform) Matrix() mgl64.Mat4 {
	return t.matrix
}

// Inverse returns the inverse matrix
func (t *Transform) Inverse() mgl64.Mat4 {
	return t.inverse
}

// IsIdentity reports whether t leaves every point unchanged
func (t *Transform) IsIdentity() bool {
	return t.matrix.ApproxEqual(mgl64.Ident4())
}

// Point maps a point into world space
func (t *Transform) Point(p core.Vec3) core.Vec3 {
	return mulPoint(t.matrix, p)
}

// Direction maps a direction into world space, ignoring translation
func (t *Transform) Direction(d core.Vec3) core.Vec3 {
	return mulDirection(t.matrix, d)
}

// Normal maps a surface normal into world space using the inverse
// transpose. The result is not renormalized.
func (t *Transform) Normal(n core.Vec3) core.Vec3 {
	return mulTransposed(t.inverse, n)
}

// InvPoint maps a world-space point into local space
func (t *Transform) InvPoint(p core.Vec3) core.Vec3 {
	return mulPoint(t.inverse, p)
}

// InvDirection maps a world-space direction into local space
func (t *Transform) InvDirection(d core.Vec3) core.Vec3 {
	return mulDirection(t.inverse, d)
}

// InvNormal maps a world-space normal into local space
func (t *Transform) InvNormal(n core.Vec3) core.Vec3 {
	return mulTransposed(t.matrix, n)
}

func mulPoint(m mgl64.Mat4, p core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return core.NewVec3(r[0], r[1], r[2])
}

func mulDirection(m mgl64.Mat4, d core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return core.NewVec3(r[0], r[1], r[2])
}

// mulTransposed multiplies by the transpose of the upper 3x3 block of m
func mulTransposed(m mgl64.Mat4, n core.Vec3) core.Vec3 {
	r := m.Mat3().Transpose().Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z})
	return core.NewVec3(r[0], r[1], r[2])
}
