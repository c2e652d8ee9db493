package filter

import (
	"math"
	"math/rand"

	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/observation"
	"github.com/objtrack/objtrack/internal/tracking"
)

// Filter is a blockwise coordinate particle filter: each update step
// proposes and weights one sampling block of the joint state at a time
// instead of the full state vector. The bundle of transition model,
// observation model, sampling blocks and numeric tuning is fixed at
// construction.
type Filter struct {
	transition tracking.StateTransition
	obsrv      observation.Model
	blocks     [][]int

	evaluationCount int
	maxSampleCount  int
	maxKLDivergence float64

	particles  []tracking.State
	logWeights []float64
	rng        *rand.Rand
}

// New bundles the filter components. The caller guarantees that the
// sampling blocks cover exactly the transition's state dimension.
func New(transition tracking.StateTransition, obsrv observation.Model, blocks [][]int,
	evaluationCount, maxSampleCount int, maxKLDivergence float64) *Filter {
	return &Filter{
		transition:      transition,
		obsrv:           obsrv,
		blocks:          blocks,
		evaluationCount: evaluationCount,
		maxSampleCount:  maxSampleCount,
		maxKLDivergence: maxKLDivergence,
		rng:             rand.New(rand.NewSource(0)),
	}
}

func (f *Filter) EvaluationCount() int     { return f.evaluationCount }
func (f *Filter) MaxSampleCount() int      { return f.maxSampleCount }
func (f *Filter) MaxKLDivergence() float64 { return f.maxKLDivergence }
func (f *Filter) SampleCount() int         { return len(f.particles) }

// Blocks returns a copy of the sampling block partition.
func (f *Filter) Blocks() [][]int {
	out := make([][]int, len(f.blocks))
	for i, b := range f.blocks {
		out[i] = append([]int(nil), b...)
	}
	return out
}

// Init seeds the belief with evaluationCount particles replicated from
// the given initial states.
func (f *Filter) Init(initial []tracking.State, seed int64) error {
	if len(initial) == 0 {
		return tracking.ErrEmptyBelief
	}
	for _, s := range initial {
		if len(s) != f.transition.StateDim() {
			return tracking.ErrDimensionMismatch
		}
	}
	f.rng = rand.New(rand.NewSource(seed))
	f.particles = make([]tracking.State, f.evaluationCount)
	f.logWeights = make([]float64, f.evaluationCount)
	for i := range f.particles {
		f.particles[i] = initial[i%len(initial)].Clone()
	}
	return nil
}

// Update runs one filter step against the frame: per sampling block,
// propagate all particles with noise restricted to that block, reweight
// by the observation log-likelihood, and resample. The sample count
// adapts between evaluationCount and maxSampleCount driven by the
// KL divergence of the weights from uniform.
func (f *Filter) Update(frame *camera.DepthFrame) error {
	if len(f.particles) == 0 {
		return tracking.ErrEmptyBelief
	}
	f.obsrv.SetObservation(frame)

	noisePerBlock := f.transition.NoiseDim() / len(f.blocks)

	for bi := range f.blocks {
		for pi, p := range f.particles {
			w := make(tracking.Noise, f.transition.NoiseDim())
			for j := 0; j < noisePerBlock; j++ {
				w[bi*noisePerBlock+j] = f.rng.NormFloat64()
			}
			f.particles[pi] = f.propagateBlock(p, w, f.blocks[bi])
		}

		lls := f.obsrv.Loglikes(f.particles)
		for i := range f.logWeights {
			f.logWeights[i] += lls[i]
		}

		normalized := normalizeLogWeights(f.logWeights)
		divergence := klFromUniform(normalized)

		count := f.evaluationCount
		if divergence > f.maxKLDivergence {
			count = len(f.particles) * 2
			if count > f.maxSampleCount {
				count = f.maxSampleCount
			}
		}
		f.resample(normalized, count)
	}
	return nil
}

// Mean returns the weighted mean of the belief.
func (f *Filter) Mean() tracking.State {
	if len(f.particles) == 0 {
		return nil
	}
	weights := normalizeLogWeights(f.logWeights)
	mean := make(tracking.State, f.transition.StateDim())
	for i, p := range f.particles {
		for j, v := range p {
			mean[j] += weights[i] * v
		}
	}
	return mean
}

// Close releases the observation model.
func (f *Filter) Close() error {
	return f.obsrv.Close()
}

// propagateBlock applies the full transition but keeps coordinates
// outside the block at their previous values, so one step only moves
// one block of the joint state.
func (f *Filter) propagateBlock(x tracking.State, w tracking.Noise, block []int) tracking.State {
	next := f.transition.Propagate(x, w, nil)
	updated := x.Clone()
	for _, idx := range block {
		updated[idx] = next[idx]
	}
	return updated
}

func (f *Filter) resample(weights []float64, count int) {
	particles := make([]tracking.State, count)

	// Systematic resampling.
	step := 1.0 / float64(count)
	u := f.rng.Float64() * step
	cum := weights[0]
	j := 0
	for i := 0; i < count; i++ {
		for u > cum && j < len(weights)-1 {
			j++
			cum += weights[j]
		}
		particles[i] = f.particles[j].Clone()
		u += step
	}

	f.particles = particles
	f.logWeights = make([]float64, count)
}

// normalizeLogWeights converts log weights to normalized linear weights
// using the max-shift trick for numerical stability.
func normalizeLogWeights(logWeights []float64) []float64 {
	maxLW := math.Inf(-1)
	for _, lw := range logWeights {
		if lw > maxLW {
			maxLW = lw
		}
	}
	weights := make([]float64, len(logWeights))
	sum := 0.0
	for i, lw := range logWeights {
		weights[i] = math.Exp(lw - maxLW)
		sum += weights[i]
	}
	if sum == 0 {
		uniform := 1.0 / float64(len(weights))
		for i := range weights {
			weights[i] = uniform
		}
		return weights
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// klFromUniform estimates D(w || uniform) for a normalized weight
// vector; zero for uniform weights, log(N) for a degenerate belief.
func klFromUniform(weights []float64) float64 {
	n := float64(len(weights))
	d := 0.0
	for _, w := range weights {
		if w > 0 {
			d += w * math.Log(w*n)
		}
	}
	return d
}
