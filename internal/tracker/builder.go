package tracker

import (
	"fmt"

	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/filter"
	"github.com/objtrack/objtrack/internal/motion"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/observation"
	"github.com/objtrack/objtrack/internal/tracking"
)

// Builder assembles a Tracker from a static configuration and camera
// data. Both are captured at construction and read-only afterwards;
// Build is a pure function of them plus the loader it calls, so
// repeated builds with the same inputs reproduce the same sampling
// block partition and profile selection.
type Builder struct {
	params Params
	camera *camera.Data
	loader objmodel.Loader
}

// NewBuilder captures the configuration and camera data. The object
// model is resolved with a filesystem loader unless replaced by
// WithLoader.
func NewBuilder(params Params, cam *camera.Data) *Builder {
	return &Builder{
		params: params,
		camera: cam,
		loader: objmodel.NewFileLoader(),
	}
}

// WithLoader substitutes the object model loader.
func (b *Builder) WithLoader(l objmodel.Loader) *Builder {
	b.loader = l
	return b
}

// Build assembles the tracker: load the object model, compose the joint
// transition model, select and build the observation model, partition
// the sampling blocks, and bundle everything into a filter. Any failure
// aborts the build with no partially constructed tracker escaping;
// requesting GPU evaluation on a build without GPU support fails with
// tracking.ErrNoGPUSupport.
func (b *Builder) Build() (*Tracker, error) {
	if err := b.params.Validate(); err != nil {
		return nil, err
	}
	profile := b.params.SelectedProfile()

	model, err := b.loader.Load(b.params.Object)
	if err != nil {
		return nil, fmt.Errorf("tracker: load object model: %w", err)
	}

	transition := motion.NewLinearTransition(b.params.ObjectTransition, model.BodyCount())

	obsrv, err := observation.New(b.params.UseGPU, model, b.camera, b.params.Observation)
	if err != nil {
		return nil, fmt.Errorf("tracker: build observation model: %w", err)
	}

	blocks := filter.SamplingBlocks(model.BodyCount(), tracking.PoseDim)

	flt := filter.New(transition, obsrv, blocks,
		profile.EvaluationCount, profile.MaxSampleCount, profile.MaxKLDivergence)

	return &Tracker{
		filter:     flt,
		model:      model,
		updateRate: profile.UpdateRate,
	}, nil
}
