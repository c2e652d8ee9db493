// Package filter implements the blockwise coordinate particle filter and
// the sampling-block partition it updates over. Sampling one contiguous
// block of state coordinates per step trades per-step cost for
// finer-grained proposals, which keeps the sample count low for
// multi-body states.
package filter
