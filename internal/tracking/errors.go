package tracking

import "errors"

// Domain errors for tracker construction and filtering.
var (
	// ErrNoGPUSupport indicates a GPU-backed observation model was requested
	// but the binary was built without GPU support (build with -tags gpu).
	ErrNoGPUSupport = errors.New("tracking: built without GPU support (use -tags gpu)")

	// ErrNoGPUDevice indicates the binary has GPU support but no usable
	// device was found at construction time.
	ErrNoGPUDevice = errors.New("tracking: no usable GPU device found")

	// ErrDimensionMismatch indicates mismatched state, noise or input
	// dimensions between filter components.
	ErrDimensionMismatch = errors.New("tracking: dimension mismatch between filter components")

	// ErrEmptyBelief indicates the filter was updated before initialization.
	ErrEmptyBelief = errors.New("tracking: filter has no particles (call Init first)")

	// ErrParameterBounds indicates a configuration value outside its valid range.
	ErrParameterBounds = errors.New("tracking: parameter out of valid bounds")
)
