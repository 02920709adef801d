package backend

import (
	"errors"
)

// Backend name constants.
const (
	// BackendRecording is the name of the in-memory recording backend.
	BackendRecording = "recording"
	// BackendNative is the name of the GPU backend built on gogpu/wgpu hal.
	BackendNative = "native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidCount is returned when GenTextures is asked for a negative count.
	ErrInvalidCount = errors.New("backend: invalid texture count")
)
