package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestThreadContext_IncrementAndMerge(t *testing.T) {
	a := NewThreadContext(0)
	b := NewThreadContext(1)

	a.Increment(RayPlaneTests)
	a.Increment(RayPlaneTests)
	a.Increment(RayPlaneTestsSucceeded)
	b.Increment(RayPlaneTests)

	a.Merge(b)

	if got := a.Count(RayPlaneTests); got != 3 {
		t.Errorf("Expected 3 plane tests, got %d", got)
	}
	if got := a.Count(RayPlaneTestsSucceeded); got != 1 {
		t.Errorf("Expected 1 successful plane test, got %d", got)
	}
	if got := b.Count(RayPlaneTests); got != 1 {
		t.Errorf("Merge must not modify its argument, got %d", got)
	}

	a.Reset()
	if got := a.Count(RayPlaneTests); got != 0 {
		t.Errorf("Expected 0 after reset, got %d", got)
	}
}

func TestThreadContext_NilIsNoop(t *testing.T) {
	var tc *ThreadContext
	tc.Increment(RayPlaneTests)
	tc.Merge(NewThreadContext(1))
	tc.Reset()
	if got := tc.Count(RayPlaneTests); got != 0 {
		t.Errorf("Expected nil context to report 0, got %d", got)
	}
}

func TestThreadContext_Snapshot(t *testing.T) {
	tc := NewThreadContext(3)
	tc.Increment(ClipTests)

	want := map[string]int64{
		"ray_plane_tests":           0,
		"ray_plane_tests_succeeded": 0,
		"clip_tests":                1,
		"clip_tests_succeeded":      0,
	}
	if diff := cmp.Diff(want, tc.Snapshot()); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}
	if Counter(99).String() != "unknown" {
		t.Errorf("Expected unknown name for out of range counter")
	}
}

func TestIStack_Closest(t *testing.T) {
	stack := NewIStack(4)
	if _, ok := stack.Closest(); ok {
		t.Fatal("Expected empty stack to have no closest hit")
	}

	stack.Push(Intersection{Depth: 3})
	stack.Push(Intersection{Depth: 1})
	stack.Push(Intersection{Depth: 2})

	hit, ok := stack.Closest()
	if !ok || hit.Depth != 1 {
		t.Errorf("Expected closest depth 1, got %v (ok=%v)", hit.Depth, ok)
	}

	stack.Reset()
	if stack.Len() != 0 {
		t.Errorf("Expected empty stack after reset, got %d", stack.Len())
	}
}
