package core

// Intersection records one ray/surface crossing
type Intersection struct {
	Depth  float64 // Distance along the ray, in units of its direction
	Point  Vec3    // World-space hit point
	Object any     // Primitive that produced the hit; not owned
}

// IStack collects the intersections found for a single ray. It is owned by
// one worker and reused between rays via Reset.
type IStack struct {
	items []Intersection
}

// NewIStack creates a collector with room for capacity hits
func NewIStack(capacity int) *IStack {
	return &IStack{items: make([]Intersection, 0, capacity)}
}

// Push records an intersection
func (s *IStack) Push(hit Intersection) {
	s.items = append(s.items, hit)
}

// Len returns the number of recorded intersections
func (s *IStack) Len() int {
	return len(s.items)
}

// Items returns the recorded intersections in push order
func (s *IStack) Items() []Intersection {
	return s.items
}

// Closest returns the intersection with the smallest depth
func (s *IStack) Closest() (Intersection, bool) {
	if len(s.items) == 0 {
		return Intersection{}, false
	}
	best := s.items[0]
	for _, hit := range s.items[1:] {
		if hit.Depth < best.Depth {
			best = hit
		}
	}
	return best, true
}

// Reset empties the collector, keeping its storage
func (s *IStack) Reset() {
	s.items = s.items[:0]
}
