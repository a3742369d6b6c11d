package rasterkit

import "errors"

// Error kinds reported by the primitives. Call sites wrap them with context,
// so match with errors.Is.
var (
	// ErrInvalidDimension reports a non-positive width, height or channel count.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidParameter reports a non-positive filter size or sigma.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrShapeMismatch reports differently shaped operands, or a kernel whose
	// channel count does not fit the image.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrOutOfRange reports a direct write outside an image's extents.
	ErrOutOfRange = errors.New("out of range")
)
