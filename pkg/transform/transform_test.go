package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-plane-raytracer/pkg/core"
)

const tolerance = 1e-9

func TestTransform_Translation(t *testing.T) {
	tr := NewTranslation(core.NewVec3(1, 2, 3))

	if got := tr.Point(core.NewVec3(0, 0, 0)); !got.ApproxEqual(core.NewVec3(1, 2, 3), tolerance) {
		t.Errorf("Expected translated point (1,2,3), got %v", got)
	}
	if got := tr.Direction(core.NewVec3(0, 1, 0)); !got.ApproxEqual(core.NewVec3(0, 1, 0), tolerance) {
		t.Errorf("Directions must ignore translation, got %v", got)
	}
	if got := tr.InvPoint(core.NewVec3(1, 2, 3)); !got.ApproxEqual(core.NewVec3(0, 0, 0), tolerance) {
		t.Errorf("Expected inverse to undo translation, got %v", got)
	}
}

func TestTransform_Rotation(t *testing.T) {
	tests := []struct {
		name     string
		degrees  core.Vec3
		input    core.Vec3
		expected core.Vec3
	}{
		{"90 about Z", core.NewVec3(0, 0, 90), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		{"90 about Y", core.NewVec3(0, 90, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1)},
		{"90 about X", core.NewVec3(90, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)},
		{"X then Z", core.NewVec3(90, 0, 90), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewRotation(tt.degrees)
			if got := tr.Direction(tt.input); !got.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if got := tr.InvDirection(tt.expected); !got.ApproxEqual(tt.input, tolerance) {
				t.Errorf("Expected inverse %v, got %v", tt.input, got)
			}
		})
	}
}

func TestTransform_AxisRotationMatchesEuler(t *testing.T) {
	a := NewAxisRotation(core.NewVec3(0, 0, 2), 90)
	b := NewRotation(core.NewVec3(0, 0, 90))
	if !a.Matrix().ApproxEqualThreshold(b.Matrix(), tolerance) {
		t.Errorf("Expected axis rotation to match Euler rotation:\n%v\n%v", a.Matrix(), b.Matrix())
	}
}

func TestTransform_NormalUsesInverseTranspose(t *testing.T) {
	// A 45 degree plane x = y has normal (1,-1,0)/sqrt2. Stretching X by 2
	// moves the surface to x = 2y whose normal is proportional to (1,-2,0).
	tr := NewScale(core.NewVec3(2, 1, 1))
	n := tr.Normal(core.NewVec3(1, -1, 0)).Normalize()
	expected := core.NewVec3(1, -2, 0).Normalize()
	if !n.ApproxEqual(expected, tolerance) {
		t.Errorf("Expected normal %v, got %v", expected, n)
	}

	// Applying the point matrix instead would give (2,-1,0), which is wrong.
	wrong := tr.Direction(core.NewVec3(1, -1, 0)).Normalize()
	if wrong.ApproxEqual(expected, 1e-3) {
		t.Error("Direction mapping unexpectedly matched the normal mapping")
	}

	if back := tr.InvNormal(tr.Normal(core.NewVec3(0, 0, 1))); !back.ApproxEqual(core.NewVec3(0, 0, 1), tolerance) {
		t.Errorf("Expected InvNormal to undo Normal, got %v", back)
	}
}

func TestTransform_ComposeOrder(t *testing.T) {
	tr := NewScale(core.NewVec3(2, 2, 2))
	tr.Compose(NewTranslation(core.NewVec3(1, 0, 0)))

	// Scale first, then translate.
	if got := tr.Point(core.NewVec3(1, 0, 0)); !got.ApproxEqual(core.NewVec3(3, 0, 0), tolerance) {
		t.Errorf("Expected (3,0,0), got %v", got)
	}
	if got := tr.InvPoint(core.NewVec3(3, 0, 0)); !got.ApproxEqual(core.NewVec3(1, 0, 0), tolerance) {
		t.Errorf("Expected inverse (1,0,0), got %v", got)
	}
	if !tr.Matrix().Mul4(tr.Inverse()).ApproxEqualThreshold(mgl64.Ident4(), tolerance) {
		t.Error("Expected matrix * inverse to be identity after compose")
	}

	tr.Compose(nil)
	if got := tr.Point(core.NewVec3(1, 0, 0)); !got.ApproxEqual(core.NewVec3(3, 0, 0), tolerance) {
		t.Errorf("Composing nil must be a no-op, got %v", got)
	}
}

func TestTransform_CloneIsIndependent(t *testing.T) {
	original := NewTranslation(core.NewVec3(0, 1, 0))
	clone := original.Clone()
	clone.Compose(NewTranslation(core.NewVec3(0, 1, 0)))

	if got := original.Point(core.Vec3{}); !got.ApproxEqual(core.NewVec3(0, 1, 0), tolerance) {
		t.Errorf("Mutating the clone changed the original: %v", got)
	}
	if got := clone.Point(core.Vec3{}); !got.ApproxEqual(core.NewVec3(0, 2, 0), tolerance) {
		t.Errorf("Expected clone at (0,2,0), got %v", got)
	}

	var absent *Transform
	if absent.Clone() != nil {
		t.Error("Expected clone of nil transform to be nil")
	}
}

func TestNewFromMatrix(t *testing.T) {
	m := mgl64.Translate3D(1, 0, 0).Mul4(mgl64.Scale3D(1, 2, 1))
	tr, err := NewFromMatrix(m)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := tr.InvPoint(tr.Point(core.NewVec3(3, 4, 5))); !got.ApproxEqual(core.NewVec3(3, 4, 5), tolerance) {
		t.Errorf("Expected round trip, got %v", got)
	}

	if _, err := NewFromMatrix(mgl64.Scale3D(1, 0, 1)); err == nil {
		t.Error("Expected error for singular matrix")
	}

	projective := mgl64.Ident4()
	projective.Set(3, 0, 1)
	if _, err := NewFromMatrix(projective); err == nil {
		t.Error("Expected error for non-affine matrix")
	}
}

func TestTransform_IsIdentity(t *testing.T) {
	if !New().IsIdentity() {
		t.Error("Expected New() to be identity")
	}
	if NewTranslation(core.NewVec3(1, 0, 0)).IsIdentity() {
		t.Error("Expected translation not to be identity")
	}
}
