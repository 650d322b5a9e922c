package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/df07/go-plane-raytracer/pkg/clip"
	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/geometry"
	"github.com/df07/go-plane-raytracer/pkg/transform"
)

// Vec is a JSON 3-vector
type Vec [3]float64

func (v Vec) vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Config is the JSON scene description
type Config struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Camera      CameraConfig `json:"camera"`
	Light       Vec          `json:"light"` // Direction towards the light
	Planes      []PlaneCfg   `json:"planes"`
}

// CameraConfig places the pinhole camera
type CameraConfig struct {
	Center Vec     `json:"center"`
	LookAt Vec     `json:"lookAt"`
	Up     Vec     `json:"up"`
	VFov   float64 `json:"vfov"` // Vertical field of view in degrees
}

// PlaneCfg describes one plane. Ops are applied in order, then Invert.
type PlaneCfg struct {
	Normal   *Vec       `json:"normal,omitempty"` // Defaults to +Y
	Distance float64    `json:"distance"`
	Invert   bool       `json:"invert,omitempty"`
	Ops      []OpCfg    `json:"ops,omitempty"`
	Clip     []ClipCfg  `json:"clip,omitempty"`
	Repeat   *RepeatCfg `json:"repeat,omitempty"`
}

// OpCfg is a single geometric operation; exactly one field must be set
type OpCfg struct {
	Translate *Vec      `json:"translate,omitempty"`
	Rotate    *Vec      `json:"rotate,omitempty"` // Degrees about X, then Y, then Z
	Scale     *Vec      `json:"scale,omitempty"`
	Matrix    []float64 `json:"matrix,omitempty"` // 16 values, row-major
}

// ClipCfg is a single clip solid; exactly one field must be set
type ClipCfg struct {
	Sphere   *SphereCfg   `json:"sphere,omitempty"`
	Box      *BoxCfg      `json:"box,omitempty"`
	Cylinder *CylinderCfg `json:"cylinder,omitempty"`
	Plane    *PlaneCfg    `json:"plane,omitempty"`
}

type SphereCfg struct {
	Center Vec     `json:"center"`
	Radius float64 `json:"radius"`
}

type BoxCfg struct {
	Center Vec `json:"center"`
	Size   Vec `json:"size"`
}

type CylinderCfg struct {
	Center Vec     `json:"center"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

// RepeatCfg places Count copies of the plane, each shifted by Translate
// from the previous one
type RepeatCfg struct {
	Count     int `json:"count"`
	Translate Vec `json:"translate"`
}

// Load reads and builds a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening scene")
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return s, nil
}

// Parse decodes, validates and builds a scene
func Parse(r io.Reader) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	return cfg.Build()
}

// Validate reports every problem in the description at once
func (c Config) Validate() error {
	var err error
	if c.Width <= 0 || c.Height <= 0 {
		err = multierr.Append(err, errors.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Camera.VFov <= 0 || c.Camera.VFov >= 180 {
		err = multierr.Append(err, errors.Errorf("camera vfov must be in (0, 180), got %g", c.Camera.VFov))
	}
	if c.Camera.Center == c.Camera.LookAt {
		err = multierr.Append(err, errors.New("camera center and lookAt coincide"))
	}
	if c.Light.vec3().LengthSquared() == 0 {
		err = multierr.Append(err, errors.New("light direction must be nonzero"))
	}
	for i, p := range c.Planes {
		err = multierr.Append(err, p.validate(fmt.Sprintf("planes[%d]", i)))
	}
	return err
}

func (p PlaneCfg) validate(path string) error {
	var err error
	if p.Normal != nil && p.Normal.vec3().LengthSquared() == 0 {
		err = multierr.Append(err, errors.Errorf("%s: normal must be nonzero", path))
	}
	for i, op := range p.Ops {
		err = multierr.Append(err, op.validate(fmt.Sprintf("%s.ops[%d]", path, i)))
	}
	for i, c := range p.Clip {
		err = multierr.Append(err, c.validate(fmt.Sprintf("%s.clip[%d]", path, i)))
	}
	if p.Repeat != nil && p.Repeat.Count < 1 {
		err = multierr.Append(err, errors.Errorf("%s: repeat count must be at least 1, got %d", path, p.Repeat.Count))
	}
	return err
}

func (o OpCfg) validate(path string) error {
	set := 0
	if o.Translate != nil {
		set++
	}
	if o.Rotate != nil {
		set++
	}
	if o.Scale != nil {
		set++
		for axis, s := range o.Scale {
			if s == 0 {
				return errors.Errorf("%s: scale component %d is zero", path, axis)
			}
		}
	}
	if o.Matrix != nil {
		set++
		if len(o.Matrix) != 16 {
			return errors.Errorf("%s: matrix needs 16 values, got %d", path, len(o.Matrix))
		}
	}
	if set != 1 {
		return errors.Errorf("%s: exactly one of translate, rotate, scale, matrix must be set", path)
	}
	return nil
}

func (c ClipCfg) validate(path string) error {
	set := 0
	if c.Sphere != nil {
		set++
	}
	if c.Box != nil {
		set++
	}
	if c.Cylinder != nil {
		set++
	}
	if c.Plane != nil {
		set++
		if c.Plane.Repeat != nil {
			return errors.Errorf("%s: clip planes cannot repeat", path)
		}
		if err := c.Plane.validate(path + ".plane"); err != nil {
			return err
		}
	}
	if set != 1 {
		return errors.Errorf("%s: exactly one of sphere, box, cylinder, plane must be set", path)
	}
	return nil
}

// Build validates the description and constructs the scene
func (c Config) Build() (*Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		Name:        c.Name,
		Description: c.Description,
		Width:       c.Width,
		Height:      c.Height,
		Camera:      c.Camera,
		Light:       c.Light.vec3().Normalize(),
	}

	for i, pc := range c.Planes {
		plane, err := pc.build()
		if err != nil {
			return nil, errors.Wrapf(err, "planes[%d]", i)
		}
		s.Primitives = append(s.Primitives, plane)

		if pc.Repeat == nil {
			continue
		}
		prev := geometry.Primitive(plane)
		for n := 1; n < pc.Repeat.Count; n++ {
			next := prev.Copy()
			geometry.Translate(next, pc.Repeat.Translate.vec3())
			s.Primitives = append(s.Primitives, next)
			prev = next
		}
	}

	s.Preprocess()
	return s, nil
}

func (p PlaneCfg) build() (*geometry.Plane, error) {
	plane := geometry.NewPlane()
	if p.Normal != nil {
		plane = geometry.NewPlaneFromEquation(p.Normal.vec3(), p.Distance)
	} else if p.Distance != 0 {
		plane = geometry.NewPlaneFromEquation(core.NewVec3(0, 1, 0), p.Distance)
	}

	for i, op := range p.Ops {
		switch {
		case op.Translate != nil:
			geometry.Translate(plane, op.Translate.vec3())
		case op.Rotate != nil:
			geometry.Rotate(plane, op.Rotate.vec3())
		case op.Scale != nil:
			geometry.Scale(plane, op.Scale.vec3())
		case op.Matrix != nil:
			tr, err := matrixTransform(op.Matrix)
			if err != nil {
				return nil, errors.Wrapf(err, "ops[%d]", i)
			}
			geometry.TransformBy(plane, tr)
		}
	}

	if p.Invert {
		plane.Invert()
	}

	region := make(clip.Region, 0, len(p.Clip))
	for i, cc := range p.Clip {
		solid, err := cc.build()
		if err != nil {
			return nil, errors.Wrapf(err, "clip[%d]", i)
		}
		region = append(region, solid)
	}
	if len(region) > 0 {
		plane.SetClip(region)
	}
	return plane, nil
}

func (c ClipCfg) build() (clip.Solid, error) {
	switch {
	case c.Sphere != nil:
		return clip.NewSphere(c.Sphere.Center.vec3(), c.Sphere.Radius)
	case c.Box != nil:
		return clip.NewBox(c.Box.Center.vec3(), c.Box.Size.vec3())
	case c.Cylinder != nil:
		return clip.NewCylinder(c.Cylinder.Center.vec3(), c.Cylinder.Height, c.Cylinder.Radius)
	default:
		return c.Plane.build()
	}
}

func matrixTransform(values []float64) (*transform.Transform, error) {
	row := func(i int) mgl64.Vec4 {
		return mgl64.Vec4{values[4*i], values[4*i+1], values[4*i+2], values[4*i+3]}
	}
	return transform.NewFromMatrix(mgl64.Mat4FromRows(row(0), row(1), row(2), row(3)))
}
