package video

// FrameBuffer holds one frame of packed ARGB8888 pixels in row-major order.
type FrameBuffer struct {
	width  int
	height int
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the given visible dimensions.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, color uint32) {
	fb.buffer[y*fb.width+x] = color
}

// ToSlice exposes the backing pixel slice. Callers borrow it for the
// duration of one frame's reads or writes.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}
