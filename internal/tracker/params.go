package tracker

import (
	"fmt"

	"github.com/objtrack/objtrack/internal/motion"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/observation"
	"github.com/objtrack/objtrack/internal/tracking"
)

// ProfileParams is one numeric tuning profile for the particle filter.
// The configuration carries one profile tuned for CPU evaluation and one
// for GPU evaluation; exactly one is authoritative per build.
type ProfileParams struct {
	EvaluationCount int     `yaml:"evaluation_count"`
	MaxSampleCount  int     `yaml:"max_sample_count"`
	UpdateRate      float64 `yaml:"update_rate"`
	MaxKLDivergence float64 `yaml:"max_kl_divergence"`
}

func (p ProfileParams) validate() error {
	if p.EvaluationCount <= 0 {
		return fmt.Errorf("evaluation_count must be positive, got %d: %w", p.EvaluationCount, tracking.ErrParameterBounds)
	}
	if p.MaxSampleCount <= 0 {
		return fmt.Errorf("max_sample_count must be positive, got %d: %w", p.MaxSampleCount, tracking.ErrParameterBounds)
	}
	if p.UpdateRate <= 0 {
		return fmt.Errorf("update_rate must be positive, got %f: %w", p.UpdateRate, tracking.ErrParameterBounds)
	}
	if p.MaxKLDivergence < 0 {
		return fmt.Errorf("max_kl_divergence must be non-negative, got %f: %w", p.MaxKLDivergence, tracking.ErrParameterBounds)
	}
	return nil
}

// Params is the full static configuration a tracker is built from.
type Params struct {
	UseGPU bool `yaml:"use_gpu"`

	CPU ProfileParams `yaml:"cpu"`
	GPU ProfileParams `yaml:"gpu"`

	Object             objmodel.ResourceIdentifier `yaml:"object"`
	Observation        observation.Params          `yaml:"observation"`
	ObjectTransition   motion.LinearParams         `yaml:"object_transition"`
	BrownianTransition motion.BrownianParams       `yaml:"brownian_transition"`
}

// SelectedProfile returns the profile the capability flag makes
// authoritative: GPU when UseGPU is set, CPU otherwise.
func (p Params) SelectedProfile() ProfileParams {
	if p.UseGPU {
		return p.GPU
	}
	return p.CPU
}

// Validate checks the numeric profiles and the object resource.
func (p Params) Validate() error {
	if err := p.CPU.validate(); err != nil {
		return fmt.Errorf("tracker: cpu profile: %w", err)
	}
	if err := p.GPU.validate(); err != nil {
		return fmt.Errorf("tracker: gpu profile: %w", err)
	}
	if p.Object.Count() == 0 {
		return fmt.Errorf("tracker: object resource names no meshes: %w", tracking.ErrParameterBounds)
	}
	if p.Observation.MaxDepth <= 0 {
		return fmt.Errorf("tracker: observation max_depth must be positive, got %f: %w",
			p.Observation.MaxDepth, tracking.ErrParameterBounds)
	}
	if p.ObjectTransition.DeltaTime <= 0 {
		return fmt.Errorf("tracker: object_transition delta_time must be positive, got %f: %w",
			p.ObjectTransition.DeltaTime, tracking.ErrParameterBounds)
	}
	return nil
}
