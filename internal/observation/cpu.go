package observation

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/tracking"
)

// maxVerticesPerBody caps the number of vertices scored per body; dense
// meshes are strided down to keep evaluation cost bounded.
const maxVerticesPerBody = 256

// CPUModel scores hypothesized poses by projecting body vertices through
// the camera intrinsics and comparing predicted against observed depth
// with a tail-weighted Gaussian mixture. An aggregate occlusion
// probability, evolved per frame by a two-state Markov chain, blends the
// hit term with a uniform term.
type CPUModel struct {
	model  *objmodel.ObjectModel
	cam    *camera.Data
	params Params

	frame     *camera.DepthFrame
	occlusion float64
	stride    []int
}

func newCPUModel(model *objmodel.ObjectModel, cam *camera.Data, p Params) *CPUModel {
	stride := make([]int, model.BodyCount())
	for i := range stride {
		stride[i] = 1
		if n := len(model.Body(i).Vertices); n > maxVerticesPerBody {
			stride[i] = (n + maxVerticesPerBody - 1) / maxVerticesPerBody
		}
	}
	return &CPUModel{
		model:     model,
		cam:       cam,
		params:    p,
		occlusion: p.InitialOcclusionProb,
		stride:    stride,
	}
}

func (m *CPUModel) SetObservation(f *camera.DepthFrame) {
	if m.frame != nil {
		// Evolve the occlusion prior one step per observed frame.
		m.occlusion = m.params.POccludedOccluded*m.occlusion +
			m.params.POccludedVisible*(1-m.occlusion)
	}
	m.frame = f
}

func (m *CPUModel) Loglikes(states []tracking.State) []float64 {
	lls := make([]float64, len(states))
	if m.frame == nil {
		return lls
	}
	for i, s := range states {
		lls[i] = m.loglike(s)
	}
	return lls
}

func (m *CPUModel) Close() error { return nil }

func (m *CPUModel) loglike(s tracking.State) float64 {
	pRand := 1.0 / m.params.MaxDepth
	total := 0.0

	for b := 0; b < m.model.BodyCount(); b++ {
		body := m.model.Body(b)
		pose := s.BodyPose(b)
		rot := rotationMatrix(pose.Orientation)

		for vi := 0; vi < len(body.Vertices); vi += m.stride[b] {
			p := transform(rot, pose.Position, body.Vertices[vi])
			u, v, predicted, ok := m.cam.Project(p)
			if !ok {
				total += math.Log(m.params.TailWeight * pRand)
				continue
			}
			observed := m.frame.At(u, v)
			if observed <= 0 || observed > m.params.MaxDepth {
				total += math.Log(m.params.TailWeight * pRand)
				continue
			}

			sigma := m.params.ModelSigma + m.params.SigmaFactor*predicted
			hit := distuv.Normal{Mu: predicted, Sigma: sigma}.Prob(observed)
			prob := m.params.TailWeight*pRand +
				(1-m.params.TailWeight)*((1-m.occlusion)*hit+m.occlusion*pRand)
			total += math.Log(prob)
		}
	}
	return total
}

// rotationMatrix converts exponential coordinates to a rotation matrix
// via Rodrigues' formula.
func rotationMatrix(w [3]float64) [3][3]float64 {
	theta := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
	if theta < 1e-12 {
		return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
	kx, ky, kz := w[0]/theta, w[1]/theta, w[2]/theta
	c := math.Cos(theta)
	s := math.Sin(theta)
	t := 1 - c

	return [3][3]float64{
		{c + kx*kx*t, kx*ky*t - kz*s, kx*kz*t + ky*s},
		{ky*kx*t + kz*s, c + ky*ky*t, ky*kz*t - kx*s},
		{kz*kx*t - ky*s, kz*ky*t + kx*s, c + kz*kz*t},
	}
}

func transform(rot [3][3]float64, pos [3]float64, p [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = rot[i][0]*p[0] + rot[i][1]*p[1] + rot[i][2]*p[2] + pos[i]
	}
	return out
}
