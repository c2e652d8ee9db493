// Package tracker wires the pieces of the pose tracker together: it
// loads object geometry, composes the joint transition model, selects
// the CPU- or GPU-backed observation model, partitions the sampling
// blocks, and bundles everything into a running particle filter tracker.
package tracker
