package renderer

import (
	"math"

	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/scene"
)

// CameraConfig contains camera configuration parameters
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction (defaults to +Y when zero)
	AspectRatio float64   // Width / height
	VFov        float64   // Vertical field of view in degrees
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	forward         core.Vec3
}

// NewCamera creates a pinhole camera looking from Center towards LookAt
func NewCamera(config CameraConfig) *Camera {
	up := config.Up
	if up.LengthSquared() == 0 {
		up = core.NewVec3(0, 1, 0)
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		origin:          config.Center,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
		forward:         w.Negate(),
	}
}

// NewSceneCamera builds the camera described by a scene for an image of the given size
func NewSceneCamera(cfg scene.CameraConfig, width, height int) *Camera {
	return NewCamera(CameraConfig{
		Center:      core.NewVec3(cfg.Center[0], cfg.Center[1], cfg.Center[2]),
		LookAt:      core.NewVec3(cfg.LookAt[0], cfg.LookAt[1], cfg.LookAt[2]),
		Up:          core.NewVec3(cfg.Up[0], cfg.Up[1], cfg.Up[2]),
		AspectRatio: float64(width) / float64(height),
		VFov:        cfg.VFov,
	})
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0, 0) is the lower left corner of the viewport.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}
