package camera

// DepthFrame is one sensor frame: a row-major depth image in meters.
// Zero or negative values mark invalid pixels.
type DepthFrame struct {
	Width  int
	Height int
	Depth  []float64
	Time   float64
}

// NewDepthFrame allocates an all-invalid frame.
func NewDepthFrame(width, height int) *DepthFrame {
	return &DepthFrame{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
	}
}

// At returns the depth at pixel (u, v), or 0 for out-of-bounds reads.
func (f *DepthFrame) At(u, v int) float64 {
	if u < 0 || u >= f.Width || v < 0 || v >= f.Height {
		return 0
	}
	return f.Depth[v*f.Width+u]
}

// Set writes the depth at pixel (u, v); out-of-bounds writes are dropped.
func (f *DepthFrame) Set(u, v int, depth float64) {
	if u < 0 || u >= f.Width || v < 0 || v >= f.Height {
		return
	}
	f.Depth[v*f.Width+u] = depth
}
