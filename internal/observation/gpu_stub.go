//go:build !gpu

package observation

import (
	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/tracking"
)

// newGPUModel on a build without the gpu tag rejects the request before
// touching any device state.
func newGPUModel(model *objmodel.ObjectModel, cam *camera.Data, p Params) (Model, error) {
	return nil, tracking.ErrNoGPUSupport
}
