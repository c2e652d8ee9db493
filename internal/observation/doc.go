// Package observation provides the likelihood models scoring hypothesized
// poses against depth frames.
//
// Two implementations satisfy the same Model contract:
//
//   - CPU: vertex-projection depth likelihood, always available
//   - GPU: batched device evaluation, compiled only with -tags gpu
//
// The selector in New rejects a GPU request on a non-gpu build with
// tracking.ErrNoGPUSupport instead of degrading silently.
package observation
