package depth

// Transform is an in-place filter over a depth frame. Implementations treat a
// nil or malformed frame as a no-op: a sensor occasionally delivers a broken
// frame and it must pass through unfiltered rather than fail the caller.
type Transform interface {
	Transform(f *Frame)
}

// TransformFunc adapts a plain function to Transform.
type TransformFunc func(f *Frame)

// Transform calls fn(f).
func (fn TransformFunc) Transform(f *Frame) {
	fn(f)
}

// Pipeline runs transforms in order on the same frame.
type Pipeline []Transform

// Transform applies every stage in sequence.
func (p Pipeline) Transform(f *Frame) {
	if !f.Valid() {
		return
	}
	for _, t := range p {
		if t != nil {
			t.Transform(f)
		}
	}
}

// FixedSizeTransform only forwards frames matching the expected dimensions.
// Anything else is left untouched.
type FixedSizeTransform struct {
	Width  int
	Height int
	Next   Transform

	skipped uint64
}

// NewFixedSizeTransform wraps next so it only ever sees width×height frames.
func NewFixedSizeTransform(width, height int, next Transform) *FixedSizeTransform {
	return &FixedSizeTransform{Width: width, Height: height, Next: next}
}

// Transform forwards f to Next when its bounds match.
func (t *FixedSizeTransform) Transform(f *Frame) {
	if !f.Valid() || f.Width != t.Width || f.Height != t.Height {
		t.skipped++
		return
	}
	if t.Next != nil {
		t.Next.Transform(f)
	}
}

// Skipped returns how many frames were passed through unfiltered.
func (t *FixedSizeTransform) Skipped() uint64 {
	return t.skipped
}

// ClipTransform zeroes samples closer than Near or farther than Far.
// A zero bound disables that side.
type ClipTransform struct {
	Near uint16
	Far  uint16
}

// Transform applies the clip.
func (c ClipTransform) Transform(f *Frame) {
	if !f.Valid() {
		return
	}
	for i, v := range f.Values {
		if v == 0 {
			continue
		}
		if (c.Near != 0 && v < c.Near) || (c.Far != 0 && v > c.Far) {
			f.Values[i] = 0
		}
	}
}
