package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/motion"
	"github.com/objtrack/objtrack/internal/observation"
	"github.com/objtrack/objtrack/internal/tracking"
)

// flatObsrv assigns every hypothesis the same log-likelihood.
type flatObsrv struct {
	closed bool
}

func (o *flatObsrv) SetObservation(f *camera.DepthFrame) {}

func (o *flatObsrv) Loglikes(states []tracking.State) []float64 {
	return make([]float64, len(states))
}

func (o *flatObsrv) Close() error {
	o.closed = true
	return nil
}

// peakedObsrv strongly favors one particle per batch, forcing degenerate
// weights and with them the adaptive sample count.
type peakedObsrv struct{}

func (o *peakedObsrv) SetObservation(f *camera.DepthFrame) {}

func (o *peakedObsrv) Loglikes(states []tracking.State) []float64 {
	lls := make([]float64, len(states))
	for i := range lls {
		lls[i] = -1000.0
	}
	lls[0] = 0
	return lls
}

func (o *peakedObsrv) Close() error { return nil }

func newTestFilter(obsrv observation.Model, evaluationCount, maxSampleCount int, maxKL float64) *Filter {
	transition := motion.NewLinearTransition(motion.LinearParams{
		DeltaTime:      0.033,
		LinearSigma:    0.01,
		AngularSigma:   0.01,
		VelocityFactor: 0.9,
	}, 1)
	blocks := SamplingBlocks(1, tracking.PoseDim)
	return New(transition, obsrv, blocks, evaluationCount, maxSampleCount, maxKL)
}

func TestFilterUpdateBeforeInit(t *testing.T) {
	f := newTestFilter(&flatObsrv{}, 10, 100, 2.0)
	err := f.Update(camera.NewDepthFrame(4, 4))
	if !errors.Is(err, tracking.ErrEmptyBelief) {
		t.Fatalf("expected ErrEmptyBelief, got %v", err)
	}
}

func TestFilterInitDimensionMismatch(t *testing.T) {
	f := newTestFilter(&flatObsrv{}, 10, 100, 2.0)
	err := f.Init([]tracking.State{make(tracking.State, 5)}, 1)
	if !errors.Is(err, tracking.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFilterUpdateKeepsEvaluationCount(t *testing.T) {
	f := newTestFilter(&flatObsrv{}, 20, 100, 2.0)
	if err := f.Init([]tracking.State{tracking.NewState(1)}, 1); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := f.Update(camera.NewDepthFrame(4, 4)); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	// Uniform weights carry zero divergence, so the count stays put.
	if f.SampleCount() != 20 {
		t.Errorf("expected 20 samples, got %d", f.SampleCount())
	}
}

func TestFilterAdaptiveSampleCountBounded(t *testing.T) {
	f := newTestFilter(&peakedObsrv{}, 20, 50, 0.1)
	if err := f.Init([]tracking.State{tracking.NewState(1)}, 1); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := f.Update(camera.NewDepthFrame(4, 4)); err != nil {
			t.Fatalf("update %d failed: %v", i, err)
		}
		if f.SampleCount() > f.MaxSampleCount() {
			t.Fatalf("sample count %d exceeds max %d", f.SampleCount(), f.MaxSampleCount())
		}
	}
	if f.SampleCount() <= f.EvaluationCount() {
		t.Errorf("degenerate weights should have grown the sample count past %d, got %d",
			f.EvaluationCount(), f.SampleCount())
	}
}

func TestFilterMeanMatchesInitialPose(t *testing.T) {
	f := newTestFilter(&flatObsrv{}, 50, 100, 2.0)
	initial := tracking.NewState(1)
	initial[0] = 1.5
	initial[2] = 0.7
	if err := f.Init([]tracking.State{initial}, 1); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	mean := f.Mean()
	if math.Abs(mean[0]-1.5) > 1e-12 || math.Abs(mean[2]-0.7) > 1e-12 {
		t.Errorf("mean before update should equal initial pose, got %v", mean[:3])
	}
}

func TestFilterDeterministicWithSeed(t *testing.T) {
	run := func() tracking.State {
		f := newTestFilter(&flatObsrv{}, 30, 100, 2.0)
		if err := f.Init([]tracking.State{tracking.NewState(1)}, 42); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			if err := f.Update(camera.NewDepthFrame(4, 4)); err != nil {
				t.Fatalf("update failed: %v", err)
			}
		}
		return f.Mean()
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different means at index %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestFilterCloseReleasesObservationModel(t *testing.T) {
	obsrv := &flatObsrv{}
	f := newTestFilter(obsrv, 10, 100, 2.0)
	if err := f.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !obsrv.closed {
		t.Error("close should release the observation model")
	}
}

func TestFilterBlocksReturnsCopy(t *testing.T) {
	f := newTestFilter(&flatObsrv{}, 10, 100, 2.0)
	blocks := f.Blocks()
	blocks[0][0] = 99
	if f.Blocks()[0][0] == 99 {
		t.Error("Blocks should return a copy, not the internal partition")
	}
}

func TestNormalizeLogWeights(t *testing.T) {
	weights := normalizeLogWeights([]float64{0, 0, 0, 0})
	for _, w := range weights {
		if math.Abs(w-0.25) > 1e-12 {
			t.Fatalf("expected uniform 0.25, got %v", weights)
		}
	}

	weights = normalizeLogWeights([]float64{0, -1000})
	if weights[0] < 0.999 {
		t.Errorf("expected first weight ~1, got %f", weights[0])
	}
}

func TestKLFromUniform(t *testing.T) {
	uniform := []float64{0.25, 0.25, 0.25, 0.25}
	if d := klFromUniform(uniform); math.Abs(d) > 1e-12 {
		t.Errorf("uniform weights should have zero divergence, got %f", d)
	}

	degenerate := []float64{1, 0, 0, 0}
	want := math.Log(4)
	if d := klFromUniform(degenerate); math.Abs(d-want) > 1e-12 {
		t.Errorf("degenerate weights: expected %f, got %f", want, d)
	}
}
