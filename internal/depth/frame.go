package depth

// Frame is one depth image. Samples are sensor units (millimetres for the
// Kinect), 0 means no return.
type Frame = Grid[uint16]

// NewFrame allocates an all-zero frame.
func NewFrame(width, height int) *Frame {
	return NewGrid[uint16](width, height)
}

// FrameFrom wraps an existing buffer; the filter will mutate it in place.
func FrameFrom(width, height int, data []uint16) (*Frame, error) {
	return GridFrom(width, height, data)
}
