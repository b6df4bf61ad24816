package depth

import (
	"testing"
)

type countingTransform struct{ calls int }

func (c *countingTransform) Transform(f *Frame) { c.calls++ }

func TestFixedSizeTransform_SkipsMismatchedFrames(t *testing.T) {
	inner := &countingTransform{}
	fixed := NewFixedSizeTransform(640, 480, inner)

	fixed.Transform(NewFrame(320, 240))
	fixed.Transform(nil)
	fixed.Transform(&Frame{Width: 640, Height: 480, Values: make([]uint16, 10)})
	if inner.calls != 0 {
		t.Fatalf("inner transform called %d times for malformed frames", inner.calls)
	}
	if fixed.Skipped() != 3 {
		t.Fatalf("Skipped() = %d, want 3", fixed.Skipped())
	}

	fixed.Transform(NewFrame(640, 480))
	if inner.calls != 1 {
		t.Fatalf("inner transform called %d times, want 1", inner.calls)
	}
}

func TestClipTransform(t *testing.T) {
	f, err := FrameFrom(5, 1, []uint16{0, 100, 500, 1000, 5000})
	if err != nil {
		t.Fatal(err)
	}
	ClipTransform{Near: 200, Far: 1000}.Transform(f)
	want := []uint16{0, 0, 500, 1000, 0}
	for i := range want {
		if f.Values[i] != want[i] {
			t.Fatalf("Values = %v, want %v", f.Values, want)
		}
	}
}

func TestClipTransform_ZeroBoundsDisabled(t *testing.T) {
	f, _ := FrameFrom(3, 1, []uint16{1, 2, 65535})
	ClipTransform{}.Transform(f)
	if f.CountNonZero() != 3 {
		t.Fatalf("clip with zero bounds altered frame: %v", f.Values)
	}
}

func TestPipeline_RunsInOrder(t *testing.T) {
	var order []string
	p := Pipeline{
		TransformFunc(func(f *Frame) { order = append(order, "a") }),
		nil,
		TransformFunc(func(f *Frame) { order = append(order, "b") }),
	}
	p.Transform(NewFrame(1, 1))
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v", order)
	}

	order = nil
	p.Transform(nil)
	if len(order) != 0 {
		t.Fatalf("pipeline ran on nil frame: %v", order)
	}
}
