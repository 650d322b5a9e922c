package geometry

import (
	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/transform"
)

// Translate moves p by v, building the matching transform
func Translate(p Primitive, v core.Vec3) {
	p.Translate(v, transform.NewTranslation(v))
}

// Rotate rotates p by the given angles in degrees (X, then Y, then Z)
func Rotate(p Primitive, degrees core.Vec3) {
	p.Rotate(degrees, transform.NewRotation(degrees))
}

// Scale scales p per axis. Every component of s must be nonzero.
func Scale(p Primitive, s core.Vec3) {
	p.Scale(s, transform.NewScale(s))
}

// TransformBy applies an arbitrary affine transform to p
func TransformBy(p Primitive, tr *transform.Transform) {
	p.Transform(tr)
}
