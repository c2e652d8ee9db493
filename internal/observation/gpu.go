//go:build gpu

package observation

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lobjkernels -lstdc++
#include <stdlib.h>

extern int gpu_device_count();
extern void* gpu_context_create(const float* vertices, int n_vertices, const float* intrinsics, int width, int height);
extern void gpu_context_destroy(void* ctx);
extern void gpu_set_observation(void* ctx, const float* depth);
extern void gpu_loglikes(void* ctx, const float* states, int n_states, int state_dim, float tail_weight, float model_sigma, float sigma_factor, float max_depth, float* out);
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/tracking"
)

// GPUModel evaluates the depth likelihood on the GPU. The device context
// is acquired once at construction and released by Close; a construction
// failure after acquisition releases the context before returning.
type GPUModel struct {
	params Params
	ctx    unsafe.Pointer
	width  int
	height int
}

func newGPUModel(model *objmodel.ObjectModel, cam *camera.Data, p Params) (Model, error) {
	if int(C.gpu_device_count()) == 0 {
		return nil, tracking.ErrNoGPUDevice
	}

	vertices := flattenVertices(model)
	k := cam.Intrinsics()
	intr := make([]float32, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			intr[i*3+j] = float32(k.At(i, j))
		}
	}

	ctx := C.gpu_context_create(
		(*C.float)(unsafe.Pointer(&vertices[0])),
		C.int(len(vertices)/3),
		(*C.float)(unsafe.Pointer(&intr[0])),
		C.int(cam.Width()),
		C.int(cam.Height()),
	)
	if ctx == nil {
		return nil, fmt.Errorf("observation: GPU context creation failed: %w", tracking.ErrNoGPUDevice)
	}

	return &GPUModel{
		params: p,
		ctx:    unsafe.Pointer(ctx),
		width:  cam.Width(),
		height: cam.Height(),
	}, nil
}

func (m *GPUModel) SetObservation(f *camera.DepthFrame) {
	depth := make([]float32, len(f.Depth))
	for i, d := range f.Depth {
		depth[i] = float32(d)
	}
	C.gpu_set_observation(m.ctx, (*C.float)(unsafe.Pointer(&depth[0])))
}

func (m *GPUModel) Loglikes(states []tracking.State) []float64 {
	lls := make([]float64, len(states))
	if len(states) == 0 {
		return lls
	}
	dim := len(states[0])
	flat := make([]float32, 0, len(states)*dim)
	for _, s := range states {
		for _, v := range s {
			flat = append(flat, float32(v))
		}
	}
	out := make([]float32, len(states))

	C.gpu_loglikes(
		m.ctx,
		(*C.float)(unsafe.Pointer(&flat[0])),
		C.int(len(states)),
		C.int(dim),
		C.float(m.params.TailWeight),
		C.float(m.params.ModelSigma),
		C.float(m.params.SigmaFactor),
		C.float(m.params.MaxDepth),
		(*C.float)(unsafe.Pointer(&out[0])),
	)

	for i, v := range out {
		lls[i] = float64(v)
	}
	return lls
}

func (m *GPUModel) Close() error {
	if m.ctx != nil {
		C.gpu_context_destroy(m.ctx)
		m.ctx = nil
	}
	return nil
}

func flattenVertices(model *objmodel.ObjectModel) []float32 {
	var out []float32
	for b := 0; b < model.BodyCount(); b++ {
		for _, v := range model.Body(b).Vertices {
			out = append(out, float32(v[0]), float32(v[1]), float32(v[2]))
		}
	}
	return out
}
