package motion

import (
	"math"

	"github.com/objtrack/objtrack/internal/tracking"
)

// BrownianParams tunes the auxiliary Brownian motion model. The model is
// constructible on its own but is not wired into the tracker build path;
// the builder composes the linear model only.
type BrownianParams struct {
	DeltaTime    float64 `yaml:"delta_time"`
	LinearSigma  float64 `yaml:"linear_sigma"`
	AngularSigma float64 `yaml:"angular_sigma"`
	Damping      float64 `yaml:"damping"`
}

// BrownianTransition perturbs each body pose directly with a random walk
// scaled by sqrt(dt) while exponentially damping the velocities.
type BrownianTransition struct {
	params BrownianParams
	bodies int
}

func NewBrownianTransition(p BrownianParams, bodies int) *BrownianTransition {
	return &BrownianTransition{params: p, bodies: bodies}
}

func (t *BrownianTransition) StateDim() int { return t.bodies * tracking.PoseDim }
func (t *BrownianTransition) NoiseDim() int { return t.bodies * tracking.NoiseDimPerBody }
func (t *BrownianTransition) InputDim() int { return t.bodies * tracking.NoiseDimPerBody }

func (t *BrownianTransition) Propagate(x tracking.State, w tracking.Noise, u tracking.Input) tracking.State {
	next := x.Clone()
	sqrtDt := math.Sqrt(t.params.DeltaTime)
	decay := math.Exp(-t.params.Damping * t.params.DeltaTime)

	for b := 0; b < t.bodies; b++ {
		base := b * tracking.PoseDim
		nbase := b * tracking.NoiseDimPerBody

		for i := 0; i < 3; i++ {
			next[base+i] = x[base+i] + t.params.LinearSigma*sqrtDt*at(w, nbase+i) + t.params.DeltaTime*at(u, nbase+i)
			next[base+3+i] = x[base+3+i] + t.params.AngularSigma*sqrtDt*at(w, nbase+3+i) + t.params.DeltaTime*at(u, nbase+3+i)
			next[base+6+i] = decay * x[base+6+i]
			next[base+9+i] = decay * x[base+9+i]
		}
	}
	return next
}
