package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/scene"
)

const ambient = 0.15

var (
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
)

// TileRenderer shades tiles for a single worker. It owns the worker's
// intersection stack and counters and must not be shared between goroutines.
type TileRenderer struct {
	scene  *scene.Scene
	camera *Camera
	width  int
	height int
	stack  *core.IStack
	ctx    *core.ThreadContext
}

// NewTileRenderer creates a tile renderer that records its counters in ctx
func NewTileRenderer(s *scene.Scene, camera *Camera, width, height int, ctx *core.ThreadContext) *TileRenderer {
	return &TileRenderer{
		scene:  s,
		camera: camera,
		width:  width,
		height: height,
		stack:  core.NewIStack(16),
		ctx:    ctx,
	}
}

// RenderTileBounds shades every pixel within bounds into img. Tiles never
// overlap, so concurrent calls on distinct bounds are safe.
func (tr *TileRenderer) RenderTileBounds(img *image.RGBA, bounds image.Rectangle) TileStats {
	var stats TileStats
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			// Image rows grow downwards, camera t grows upwards
			s := (float64(i) + 0.5) / float64(tr.width)
			t := 1 - (float64(j)+0.5)/float64(tr.height)

			colorVec, hit := tr.rayColor(tr.camera.GetRay(s, t))
			img.SetRGBA(i, j, vec3ToColor(colorVec))

			stats.Pixels++
			if hit {
				stats.Hits++
			}
		}
	}
	return stats
}

// rayColor shades the closest hit with a Lambert term against the scene
// light, or returns the background gradient on a miss
func (tr *TileRenderer) rayColor(ray core.Ray) (core.Vec3, bool) {
	hit, normal, ok := tr.scene.Hit(ray, tr.stack, tr.ctx)
	if !ok {
		return backgroundGradient(ray), false
	}

	// Planes are two-sided for shading: face the viewer
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	diffuse := math.Max(0, normal.Dot(tr.scene.Light))
	if diffuse > 0 && tr.inShadow(hit.Point) {
		diffuse = 0
	}

	albedo := albedoFor(normal)
	return albedo.Multiply(ambient + (1-ambient)*diffuse), true
}

// inShadow reports whether anything blocks the light from point. The surface
// the point lies on is skipped by the depth tolerance.
func (tr *TileRenderer) inShadow(point core.Vec3) bool {
	_, _, blocked := tr.scene.Hit(core.NewRay(point, tr.scene.Light), tr.stack, tr.ctx)
	return blocked
}

// albedoFor tints surfaces by orientation so differently facing planes stay distinguishable
func albedoFor(normal core.Vec3) core.Vec3 {
	tint := core.NewVec3(math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z))
	return core.NewVec3(0.45, 0.45, 0.45).Add(tint.Multiply(0.4))
}

// backgroundGradient returns a gradient color based on ray direction
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return skyBottom.Multiply(1.0 - t).Add(skyTop.Multiply(t))
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and gamma 2 correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	colorVec = core.NewVec3(math.Sqrt(colorVec.X), math.Sqrt(colorVec.Y), math.Sqrt(colorVec.Z))

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
