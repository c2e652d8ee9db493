package tracker

import (
	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/filter"
	"github.com/objtrack/objtrack/internal/objmodel"
	"github.com/objtrack/objtrack/internal/tracking"
)

// Tracker is the finished product of a build: it owns the particle
// filter, the loaded object model, and the update rate used to smooth
// consecutive estimates.
type Tracker struct {
	filter     *filter.Filter
	model      *objmodel.ObjectModel
	updateRate float64

	estimate tracking.State
}

// Init seeds the filter belief with one initial pose per tracked body.
func (t *Tracker) Init(poses []tracking.Pose, seed int64) error {
	if len(poses) != t.model.BodyCount() {
		return tracking.ErrDimensionMismatch
	}
	t.estimate = nil
	return t.filter.Init([]tracking.State{tracking.FromPoses(poses)}, seed)
}

// Track runs one filter update against the frame and returns the
// smoothed joint state estimate. The estimate moves toward the filter
// mean at the configured update rate.
func (t *Tracker) Track(frame *camera.DepthFrame) (tracking.State, error) {
	if err := t.filter.Update(frame); err != nil {
		return nil, err
	}
	mean := t.filter.Mean()

	if t.estimate == nil {
		t.estimate = mean.Clone()
	} else {
		for i := range t.estimate {
			t.estimate[i] = (1-t.updateRate)*t.estimate[i] + t.updateRate*mean[i]
		}
	}
	return t.estimate.Clone(), nil
}

// Filter exposes the assembled filter bundle.
func (t *Tracker) Filter() *filter.Filter { return t.filter }

// ObjectModel returns the loaded geometry.
func (t *Tracker) ObjectModel() *objmodel.ObjectModel { return t.model }

// UpdateRate returns the smoothing rate of the selected profile.
func (t *Tracker) UpdateRate() float64 { return t.updateRate }

// Close releases the tracker's resources, including any GPU context held
// by the observation model.
func (t *Tracker) Close() error {
	return t.filter.Close()
}
