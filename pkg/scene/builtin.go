package scene

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var builtins = map[string]func() Config{
	"default":     DefaultConfig,
	"transformed": TransformedConfig,
}

// BuiltinNames returns the names of the built-in scenes
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a built-in scene name or a path to a JSON scene file
func Lookup(name string) (*Scene, error) {
	if cfg, ok := builtins[name]; ok {
		return cfg().Build()
	}
	if strings.HasSuffix(name, ".json") {
		return Load(name)
	}
	return nil, errors.Errorf("unknown scene %q (built-in scenes: %s)", name, strings.Join(BuiltinNames(), ", "))
}

// NewDefaultScene builds the default scene
func NewDefaultScene() *Scene {
	s, err := DefaultConfig().Build()
	if err != nil {
		panic(errors.Wrap(err, "default scene"))
	}
	return s
}

// NewTransformedScene builds the scene whose planes all carry transforms
func NewTransformedScene() *Scene {
	s, err := TransformedConfig().Build()
	if err != nil {
		panic(errors.Wrap(err, "transformed scene"))
	}
	return s
}

// DefaultConfig is a ground plane, a back wall, a clipped side wall and a
// tilted disc cut from a plane by a sphere
func DefaultConfig() Config {
	return Config{
		Name:        "Default",
		Description: "Ground, back wall, clipped side wall and a tilted disc",
		Width:       320,
		Height:      180,
		Camera: CameraConfig{
			Center: Vec{0, 2, 6},
			LookAt: Vec{0, 0.5, 0},
			Up:     Vec{0, 1, 0},
			VFov:   45,
		},
		Light: Vec{1, 2, 1},
		Planes: []PlaneCfg{
			{}, // ground, y = 0
			{Normal: &Vec{0, 0, 1}, Distance: 8},
			{
				Normal:   &Vec{1, 0, 0},
				Distance: 3,
				Clip:     []ClipCfg{{Box: &BoxCfg{Center: Vec{-3, 1, -3}, Size: Vec{0.5, 2, 6}}}},
			},
			{
				Ops: []OpCfg{
					{Rotate: &Vec{0, 0, 30}},
					{Translate: &Vec{0, 1, 0}},
				},
				Clip: []ClipCfg{{Sphere: &SphereCfg{Center: Vec{0, 1, 0}, Radius: 1}}},
			},
		},
	}
}

// TransformedConfig exercises planes that carry transforms: a ground placed
// by a raw matrix, a sphere sliced by repeated planes and a stretched,
// inverted wall clipped by another plane
func TransformedConfig() Config {
	return Config{
		Name:        "Transformed",
		Description: "Matrix-placed ground, sliced sphere and a stretched wall",
		Width:       320,
		Height:      180,
		Camera: CameraConfig{
			Center: Vec{0, 3, 7},
			LookAt: Vec{0, 1, 0},
			Up:     Vec{0, 1, 0},
			VFov:   40,
		},
		Light: Vec{-1, 3, 2},
		Planes: []PlaneCfg{
			{
				Ops: []OpCfg{{Matrix: []float64{
					1, 0, 0, 0,
					0, 1, 0, -0.5,
					0, 0, 1, 0,
					0, 0, 0, 1,
				}}},
			},
			{
				// Copies share the sphere, so each slice is a disc of a
				// different radius
				Distance: -0.1,
				Clip:     []ClipCfg{{Sphere: &SphereCfg{Center: Vec{0, 1.5, 0}, Radius: 1.5}}},
				Repeat:   &RepeatCfg{Count: 8, Translate: Vec{0, 0.4, 0}},
			},
			{
				Normal: &Vec{0, 0, 1},
				Invert: true,
				Ops: []OpCfg{
					{Matrix: []float64{
						1, 0, 0, 0,
						0, 1, 0, 0,
						0, 0, 1, 0,
						0, 0, 0, 1,
					}},
					{Rotate: &Vec{0, 20, 0}},
					{Scale: &Vec{1, 2, 1}},
					{Translate: &Vec{0, 0, -4}},
				},
				Clip: []ClipCfg{{Plane: &PlaneCfg{Normal: &Vec{0, 1, 0}, Distance: -4}}},
			},
		},
	}
}
