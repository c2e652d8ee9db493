// Package tracking defines the shared vocabulary of the pose tracker:
// the joint rigid-body state vector and its per-body layout, process
// noise and control input vectors, and the state transition contract
// implemented by the motion models.
package tracking
