package geometry

import (
	"github.com/df07/go-plane-raytracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Primitives  []Primitive // Primitives for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of primitives
func NewBVH(primitives []Primitive) *BVH {
	if len(primitives) == 0 {
		return &BVH{Root: nil}
	}

	// Copy so partitioning never reorders the caller's slice
	primitivesCopy := make([]Primitive, len(primitives))
	copy(primitivesCopy, primitives)

	return &BVH{Root: buildBVH(primitivesCopy)}
}

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH using median splitting along the longest axis
func buildBVH(primitives []Primitive) *BVHNode {
	boundingBox := primitives[0].BoundingBox()
	for i := 1; i < len(primitives); i++ {
		boundingBox = boundingBox.Union(primitives[i].BoundingBox())
	}

	if len(primitives) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Primitives:  primitives,
		}
	}

	axis, splitPos := findSplit(boundingBox)
	if axis == -1 {
		return &BVHNode{BoundingBox: boundingBox, Primitives: primitives}
	}

	left, right := partition(primitives, axis, splitPos)

	// Unbounded primitives all share one center and cannot be separated
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Primitives: primitives}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(left),
		Right:       buildBVH(right),
	}
}

// findSplit returns the longest axis and its midpoint, or -1 if the box is flat
func findSplit(boundingBox core.AABB) (int, float64) {
	axis := boundingBox.LongestAxis()
	minVal, maxVal := axisValue(boundingBox.Min, axis), axisValue(boundingBox.Max, axis)
	if maxVal <= minVal {
		return -1, 0
	}
	return axis, (minVal + maxVal) * 0.5
}

func partition(primitives []Primitive, axis int, splitPos float64) ([]Primitive, []Primitive) {
	var left, right []Primitive
	for _, prim := range primitives {
		if axisValue(prim.BoundingBox().Center(), axis) < splitPos {
			left = append(left, prim)
		} else {
			right = append(right, prim)
		}
	}
	return left, right
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// AllIntersections pushes every clipped hit of ray onto stack
func (bvh *BVH) AllIntersections(ray core.Ray, stack *core.IStack, ctx *core.ThreadContext) bool {
	if bvh.Root == nil {
		return false
	}
	octant := core.RayOctant(ray)
	invDirection := core.InverseDirection(ray)
	return bvh.collect(bvh.Root, ray, octant, invDirection, stack, ctx)
}

// Hit returns the closest clipped intersection of ray with the scene.
// stack is scratch space owned by the caller's worker.
func (bvh *BVH) Hit(ray core.Ray, stack *core.IStack, ctx *core.ThreadContext) (core.Intersection, bool) {
	stack.Reset()
	if !bvh.AllIntersections(ray, stack, ctx) {
		return core.Intersection{}, false
	}
	return stack.Closest()
}

func (bvh *BVH) collect(node *BVHNode, ray core.Ray, octant core.BBoxDirection, invDirection core.Vec3, stack *core.IStack, ctx *core.ThreadContext) bool {
	if !node.BoundingBox.Hit(ray, core.DepthTolerance, core.MaxDistance) {
		return false
	}

	if node.Primitives != nil {
		found := false
		for _, prim := range node.Primitives {
			if !prim.IntersectsBoundingBox(octant, ray.Origin, invDirection, core.MaxDistance) {
				continue
			}
			if prim.AllIntersections(ray, stack, ctx) {
				found = true
			}
		}
		return found
	}

	found := false
	if node.Left != nil && bvh.collect(node.Left, ray, octant, invDirection, stack, ctx) {
		found = true
	}
	if node.Right != nil && bvh.collect(node.Right, ray, octant, invDirection, stack, ctx) {
		found = true
	}
	return found
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes      int
	leafNodes       int
	maxDepth        int
	totalPrimitives int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.Root != nil {
		bvh.collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	if node.Primitives != nil {
		stats.leafNodes++
		stats.totalPrimitives += len(node.Primitives)
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
