package scene

import (
	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Width       int                  // Image width
	Height      int                  // Image height
	Camera      CameraConfig         // Camera placement
	Light       core.Vec3            // Unit direction towards the light
	Primitives  []geometry.Primitive // Objects in the scene
	BVH         *geometry.BVH        // Acceleration structure for ray-object intersection
}

// Preprocess prepares the scene for rendering. It must run after the last
// mutation and before any concurrent query.
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVH(s.Primitives)
}

// Hit returns the closest intersection of ray with the scene and the world
// normal at that point. A scene that was never preprocessed has nothing to hit.
func (s *Scene) Hit(ray core.Ray, stack *core.IStack, ctx *core.ThreadContext) (core.Intersection, core.Vec3, bool) {
	if s.BVH == nil {
		return core.Intersection{}, core.Vec3{}, false
	}
	hit, ok := s.BVH.Hit(ray, stack, ctx)
	if !ok {
		return core.Intersection{}, core.Vec3{}, false
	}
	prim := hit.Object.(geometry.Primitive)
	return hit, prim.Normal(hit.Point), true
}
