package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/objtrack/objtrack/internal/motion"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/observation"
	"github.com/objtrack/objtrack/internal/tracker"
)

// Default returns a complete parameter tree with workable tuning for a
// single-object desktop tracking setup. Loading a file overlays the
// file's values on top of these.
func Default() tracker.Params {
	return tracker.Params{
		UseGPU: false,
		CPU: tracker.ProfileParams{
			EvaluationCount: 100,
			MaxSampleCount:  1000,
			UpdateRate:      0.5,
			MaxKLDivergence: 2.0,
		},
		GPU: tracker.ProfileParams{
			EvaluationCount: 2000,
			MaxSampleCount:  200000,
			UpdateRate:      0.5,
			MaxKLDivergence: 2.0,
		},
		Object: objmodel.ResourceIdentifier{
			Directory: "meshes",
			Meshes:    []string{"object.obj"},
		},
		Observation: observation.Params{
			TailWeight:           0.01,
			ModelSigma:           0.003,
			SigmaFactor:          0.0014,
			MaxDepth:             6.0,
			InitialOcclusionProb: 0.1,
			POccludedVisible:     0.1,
			POccludedOccluded:    0.7,
		},
		ObjectTransition: motion.LinearParams{
			DeltaTime:      0.033,
			LinearSigma:    0.002,
			AngularSigma:   0.02,
			VelocityFactor: 0.8,
		},
		BrownianTransition: motion.BrownianParams{
			DeltaTime:    0.033,
			LinearSigma:  0.002,
			AngularSigma: 0.02,
			Damping:      0.5,
		},
	}
}

// Load reads a yaml parameter file on top of the defaults and validates
// the result.
func Load(path string) (tracker.Params, error) {
	params := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("config: %s: %w", path, err)
	}
	return params, nil
}

// Save writes the parameter tree as yaml.
func Save(path string, params tracker.Params) error {
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
