package motion

import "github.com/objtrack/objtrack/internal/tracking"

// LinearParams tunes the damped linear motion model applied to every
// tracked body.
type LinearParams struct {
	DeltaTime      float64 `yaml:"delta_time"`
	LinearSigma    float64 `yaml:"linear_sigma"`
	AngularSigma   float64 `yaml:"angular_sigma"`
	VelocityFactor float64 `yaml:"velocity_factor"`
}

// LinearTransition is the joint state transition for all tracked bodies:
// pose integrates the current velocity over one timestep, velocity is
// damped by VelocityFactor and perturbed by scaled noise plus control
// input.
type LinearTransition struct {
	params LinearParams
	bodies int
}

// NewLinearTransition composes the joint transition for the given number
// of rigid bodies. The same tuning is applied to every body.
func NewLinearTransition(p LinearParams, bodies int) *LinearTransition {
	return &LinearTransition{params: p, bodies: bodies}
}

func (t *LinearTransition) StateDim() int { return t.bodies * tracking.PoseDim }
func (t *LinearTransition) NoiseDim() int { return t.bodies * tracking.NoiseDimPerBody }
func (t *LinearTransition) InputDim() int { return t.bodies * tracking.NoiseDimPerBody }

func (t *LinearTransition) Propagate(x tracking.State, w tracking.Noise, u tracking.Input) tracking.State {
	next := x.Clone()
	dt := t.params.DeltaTime

	for b := 0; b < t.bodies; b++ {
		base := b * tracking.PoseDim
		nbase := b * tracking.NoiseDimPerBody

		// Layout per body: position 0:3, orientation 3:6,
		// linear velocity 6:9, angular velocity 9:12.
		for i := 0; i < 3; i++ {
			next[base+i] = x[base+i] + dt*x[base+6+i]
			next[base+3+i] = x[base+3+i] + dt*x[base+9+i]

			lv := t.params.VelocityFactor * x[base+6+i]
			av := t.params.VelocityFactor * x[base+9+i]
			lv += t.params.LinearSigma * at(w, nbase+i)
			av += t.params.AngularSigma * at(w, nbase+3+i)
			lv += at(u, nbase+i)
			av += at(u, nbase+3+i)
			next[base+6+i] = lv
			next[base+9+i] = av
		}
	}
	return next
}

// at reads index i of a possibly-nil vector; nil means zero.
func at(v []float64, i int) float64 {
	if v == nil || i >= len(v) {
		return 0
	}
	return v[i]
}
