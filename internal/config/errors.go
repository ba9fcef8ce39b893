package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidTarget indicates a target SSIM outside (0, 1].
	ErrInvalidTarget = errors.New("invalid target SSIM")

	// ErrInvalidQPRange indicates QP bounds outside the encoder's range
	// or a min bound above the max bound.
	ErrInvalidQPRange = errors.New("invalid QP range")

	// ErrInvalidSamplePercent indicates a sample percent outside (0, 100].
	ErrInvalidSamplePercent = errors.New("invalid sample percent")

	// ErrInvalidSampleCount indicates a non-positive sample count.
	ErrInvalidSampleCount = errors.New("invalid sample count")

	// ErrInvalidSamplingMode indicates an unknown sampling mode name.
	ErrInvalidSamplingMode = errors.New("invalid sampling mode")

	// ErrInvalidMetric indicates an unknown metric name.
	ErrInvalidMetric = errors.New("invalid metric")

	// ErrInvalidSceneThreshold indicates a scene threshold outside (0, 1).
	ErrInvalidSceneThreshold = errors.New("invalid scene threshold")
)
