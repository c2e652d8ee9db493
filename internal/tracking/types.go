package tracking

import "math"

// Per-body state layout: position (3), orientation in exponential
// coordinates (3), linear velocity (3), angular velocity (3).
const (
	PoseDim         = 12
	NoiseDimPerBody = 6

	posOffset = 0
	oriOffset = 3
)

// State is the joint pose state of all tracked rigid bodies,
// len(State) == bodies * PoseDim.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) BodyCount() int {
	return len(s) / PoseDim
}

// BodyPose returns the pose of body i.
func (s State) BodyPose(i int) Pose {
	base := i * PoseDim
	var p Pose
	copy(p.Position[:], s[base+posOffset:base+posOffset+3])
	copy(p.Orientation[:], s[base+oriOffset:base+oriOffset+3])
	return p
}

// SetBodyPose overwrites the pose of body i, leaving velocities untouched.
func (s State) SetBodyPose(i int, p Pose) {
	base := i * PoseDim
	copy(s[base+posOffset:base+posOffset+3], p.Position[:])
	copy(s[base+oriOffset:base+oriOffset+3], p.Orientation[:])
}

// Noise parameterizes the stochastic part of a state transition,
// len(Noise) == bodies * NoiseDimPerBody.
type Noise []float64

// Input is an external control input, same dimensionality as Noise.
type Input []float64

// Pose is the position and orientation (exponential coordinates) of a
// single rigid body.
type Pose struct {
	Position    [3]float64
	Orientation [3]float64
}

// StateTransition predicts the next joint state from the current state,
// a process noise sample and a control input.
type StateTransition interface {
	Propagate(x State, w Noise, u Input) State
	StateDim() int
	NoiseDim() int
	InputDim() int
}

// NewState returns a zero state for the given number of bodies.
func NewState(bodies int) State {
	return make(State, bodies*PoseDim)
}

// FromPoses builds a zero-velocity joint state from per-body poses.
func FromPoses(poses []Pose) State {
	s := NewState(len(poses))
	for i, p := range poses {
		s.SetBodyPose(i, p)
	}
	return s
}
