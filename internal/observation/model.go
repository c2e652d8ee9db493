package observation

import (
	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/tracking"
)

// Params tunes the depth likelihood shared by the CPU and GPU models.
type Params struct {
	TailWeight           float64 `yaml:"tail_weight"`
	ModelSigma           float64 `yaml:"model_sigma"`
	SigmaFactor          float64 `yaml:"sigma_factor"`
	MaxDepth             float64 `yaml:"max_depth"`
	InitialOcclusionProb float64 `yaml:"initial_occlusion_prob"`
	POccludedVisible     float64 `yaml:"p_occluded_visible"`
	POccludedOccluded    float64 `yaml:"p_occluded_occluded"`
}

// Model scores hypothesized joint states against the current sensor
// frame. Implementations are selected once at build time and never
// switched afterwards.
type Model interface {
	// SetObservation binds the frame scored by subsequent Loglikes calls.
	SetObservation(f *camera.DepthFrame)

	// Loglikes returns one log-likelihood per hypothesized state.
	Loglikes(states []tracking.State) []float64

	// Close releases any resources held by the model (GPU context).
	Close() error
}

// New selects and constructs the observation model. Requesting the GPU
// model on a binary built without the gpu tag fails with
// tracking.ErrNoGPUSupport before any resource is acquired.
func New(useGPU bool, model *objmodel.ObjectModel, cam *camera.Data, p Params) (Model, error) {
	if useGPU {
		return newGPUModel(model, cam, p)
	}
	return newCPUModel(model, cam, p), nil
}
