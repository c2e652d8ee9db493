package camera

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Data carries the camera characteristics needed for likelihood
// evaluation: the 3x3 intrinsic matrix and the sensor resolution.
type Data struct {
	intrinsics *mat.Dense
	width      int
	height     int
}

// New builds camera data from pinhole intrinsics (focal lengths fx, fy
// and principal point cx, cy, all in pixels) and resolution.
func New(fx, fy, cx, cy float64, width, height int) (*Data, error) {
	if fx <= 0 || fy <= 0 {
		return nil, fmt.Errorf("camera: focal lengths must be positive, got fx=%f fy=%f", fx, fy)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera: resolution must be positive, got %dx%d", width, height)
	}
	k := mat.NewDense(3, 3, []float64{
		fx, 0, cx,
		0, fy, cy,
		0, 0, 1,
	})
	return &Data{intrinsics: k, width: width, height: height}, nil
}

func (d *Data) Width() int  { return d.width }
func (d *Data) Height() int { return d.height }

// Intrinsics returns a copy of the 3x3 intrinsic matrix.
func (d *Data) Intrinsics() *mat.Dense {
	return mat.DenseCopyOf(d.intrinsics)
}

// Project maps a camera-frame 3D point to pixel coordinates and depth.
// ok is false when the point is behind the camera or outside the image.
func (d *Data) Project(p [3]float64) (u, v int, depth float64, ok bool) {
	if p[2] <= 0 {
		return 0, 0, 0, false
	}
	fx := d.intrinsics.At(0, 0)
	fy := d.intrinsics.At(1, 1)
	cx := d.intrinsics.At(0, 2)
	cy := d.intrinsics.At(1, 2)

	u = int(fx*p[0]/p[2] + cx)
	v = int(fy*p[1]/p[2] + cy)
	if u < 0 || u >= d.width || v < 0 || v >= d.height {
		return 0, 0, 0, false
	}
	return u, v, p[2], true
}
