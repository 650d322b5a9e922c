package core

// Numeric policy shared by every primitive. Acceptance boundaries are
// inclusive: a depth equal to DepthTolerance or MaxDistance is a hit.
const (
	// Epsilon guards near-parallel rays and biases half-space membership
	// so points on the boundary classify consistently.
	Epsilon = 1e-10

	// DepthTolerance is the smallest depth reported as a hit. It keeps a
	// ray leaving a surface from re-hitting that surface.
	DepthTolerance = 1e-6

	// MaxDistance is the largest depth reported as a hit.
	MaxDistance = 1e7

	// BoundHuge is the extent of the representable coordinate range used
	// for unbounded boxes.
	BoundHuge = 2e10
)
