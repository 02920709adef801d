package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned when a backend is created without a device.
	ErrNilDevice = errors.New("native: device is nil")

	// ErrClosed is returned when a texture operation runs after Close.
	ErrClosed = errors.New("native: backend closed")

	// ErrTextureStorage is returned when the device cannot allocate texture
	// storage or its view.
	ErrTextureStorage = errors.New("native: texture storage allocation failed")

	// ErrSamplerCreation is returned when the device cannot create a sampler.
	ErrSamplerCreation = errors.New("native: sampler creation failed")
)
