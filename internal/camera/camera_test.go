package camera

import (
	"math"
	"testing"
)

func TestNewRejectsBadIntrinsics(t *testing.T) {
	tests := []struct {
		name   string
		fx, fy float64
		w, h   int
	}{
		{"zero focal", 0, 525, 320, 240},
		{"negative focal", 525, -1, 320, 240},
		{"zero width", 525, 525, 0, 240},
		{"negative height", 525, 525, 320, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.fx, tt.fy, 160, 120, tt.w, tt.h); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestProject(t *testing.T) {
	cam, err := New(100, 100, 32, 24, 64, 48)
	if err != nil {
		t.Fatalf("new camera: %v", err)
	}

	// A point on the optical axis lands on the principal point.
	u, v, depth, ok := cam.Project([3]float64{0, 0, 2})
	if !ok {
		t.Fatal("expected projection to succeed")
	}
	if u != 32 || v != 24 {
		t.Errorf("expected principal point (32,24), got (%d,%d)", u, v)
	}
	if math.Abs(depth-2) > 1e-12 {
		t.Errorf("expected depth 2, got %f", depth)
	}

	// Behind the camera.
	if _, _, _, ok := cam.Project([3]float64{0, 0, -1}); ok {
		t.Error("points behind the camera must not project")
	}

	// Outside the image.
	if _, _, _, ok := cam.Project([3]float64{10, 0, 1}); ok {
		t.Error("points outside the image must not project")
	}
}

func TestIntrinsicsReturnsCopy(t *testing.T) {
	cam, err := New(100, 100, 32, 24, 64, 48)
	if err != nil {
		t.Fatalf("new camera: %v", err)
	}
	k := cam.Intrinsics()
	k.Set(0, 0, 999)
	if cam.Intrinsics().At(0, 0) == 999 {
		t.Error("Intrinsics must return a copy")
	}
}

func TestDepthFrameBounds(t *testing.T) {
	f := NewDepthFrame(4, 3)

	f.Set(1, 2, 1.5)
	if got := f.At(1, 2); got != 1.5 {
		t.Errorf("expected 1.5, got %f", got)
	}

	// Out-of-bounds reads and writes are dropped, not panics.
	f.Set(-1, 0, 9)
	f.Set(4, 0, 9)
	if f.At(-1, 0) != 0 || f.At(0, 3) != 0 {
		t.Error("out-of-bounds reads should return 0")
	}
}
