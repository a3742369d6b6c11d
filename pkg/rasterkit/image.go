package rasterkit

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Image is a width x height x channels grid of float64 samples.
//
// Samples are stored planar: all of channel 0 row by row, then channel 1,
// and so on. Operations that derive a new image always allocate a fresh
// buffer, so an Image handed to an operation is never aliased by its result.
type Image struct {
	data     []float64
	width    int
	height   int
	channels int
}

// NewImage allocates a zero-filled image.
func NewImage(width, height, channels int) (*Image, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidDimension, width)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: height must be positive, got %d", ErrInvalidDimension, height)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channels must be positive, got %d", ErrInvalidDimension, channels)
	}
	return newImage(width, height, channels), nil
}

// newImage skips validation; callers guarantee positive extents.
func newImage(width, height, channels int) *Image {
	return &Image{
		data:     make([]float64, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}
}

// NewImageFromData builds an image from planar samples. The slice is copied.
func NewImageFromData(width, height, channels int, data []float64) (*Image, error) {
	im, err := NewImage(width, height, channels)
	if err != nil {
		return nil, err
	}
	if len(data) != len(im.data) {
		return nil, fmt.Errorf("%w: %dx%dx%d image needs %d samples, got %d",
			ErrShapeMismatch, width, height, channels, len(im.data), len(data))
	}
	copy(im.data, data)
	return im, nil
}

func (im *Image) Width() int    { return im.width }
func (im *Image) Height() int   { return im.height }
func (im *Image) Channels() int { return im.channels }

func (im *Image) String() string {
	return fmt.Sprintf("Image(%dx%dx%d)", im.width, im.height, im.channels)
}

// SameShape reports whether both images have identical width, height and channels.
func (im *Image) SameShape(other *Image) bool {
	return im.width == other.width && im.height == other.height && im.channels == other.channels
}

func (im *Image) index(x, y, c int) int {
	return c*im.width*im.height + y*im.width + x
}

// plane returns the backing samples of channel c.
func (im *Image) plane(c int) []float64 {
	n := im.width * im.height
	return im.data[c*n : (c+1)*n]
}

// Get returns the sample at (x, y, c). Each coordinate is clamped into the
// image independently, so Get never fails.
func (im *Image) Get(x, y, c int) float64 {
	x = clampIndex(x, im.width)
	y = clampIndex(y, im.height)
	c = clampIndex(c, im.channels)
	return im.data[im.index(x, y, c)]
}

// Set writes v at (x, y, c). Unlike Get it does not clamp: a coordinate
// outside the image is an error.
func (im *Image) Set(x, y, c int, v float64) error {
	if x < 0 || x >= im.width || y < 0 || y >= im.height || c < 0 || c >= im.channels {
		return fmt.Errorf("%w: (%d, %d, %d) outside %dx%dx%d image",
			ErrOutOfRange, x, y, c, im.width, im.height, im.channels)
	}
	im.data[im.index(x, y, c)] = v
	return nil
}

// Fill sets every sample to v.
func (im *Image) Fill(v float64) {
	for i := range im.data {
		im.data[i] = v
	}
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	out := newImage(im.width, im.height, im.channels)
	copy(out.data, im.data)
	return out
}

// Channel extracts channel c as a new single-channel image.
func (im *Image) Channel(c int) (*Image, error) {
	if c < 0 || c >= im.channels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrOutOfRange, c, im.channels)
	}
	out := newImage(im.width, im.height, 1)
	copy(out.data, im.plane(c))
	return out, nil
}

// Add returns a + b elementwise.
func Add(a, b *Image) (*Image, error) {
	if !a.SameShape(b) {
		return nil, shapeError("add", a, b)
	}
	out := newImage(a.width, a.height, a.channels)
	floats.AddTo(out.data, a.data, b.data)
	return out, nil
}

// Sub returns a - b elementwise.
func Sub(a, b *Image) (*Image, error) {
	if !a.SameShape(b) {
		return nil, shapeError("subtract", a, b)
	}
	out := newImage(a.width, a.height, a.channels)
	floats.SubTo(out.data, a.data, b.data)
	return out, nil
}

func shapeError(op string, a, b *Image) error {
	return fmt.Errorf("%w: cannot %s %dx%dx%d and %dx%dx%d", ErrShapeMismatch, op,
		a.width, a.height, a.channels, b.width, b.height, b.channels)
}

// NormalizeToDisplayRange rescales all samples in place so the minimum maps
// to 0 and the maximum to 1. A constant image becomes all zeros.
func (im *Image) NormalizeToDisplayRange() {
	lo := floats.Min(im.data)
	hi := floats.Max(im.data)
	span := hi - lo
	if span == 0 {
		im.Fill(0)
		return
	}
	floats.AddConst(-lo, im.data)
	floats.Scale(1/span, im.data)
}

// ClampInPlace clamps every sample to [lo, hi].
func (im *Image) ClampInPlace(lo, hi float64) {
	for i, v := range im.data {
		if v < lo {
			im.data[i] = lo
		} else if v > hi {
			im.data[i] = hi
		}
	}
}

// Shift adds v to every sample of channel c in place.
func (im *Image) Shift(c int, v float64) error {
	if c < 0 || c >= im.channels {
		return fmt.Errorf("%w: channel %d of %d", ErrOutOfRange, c, im.channels)
	}
	floats.AddConst(v, im.plane(c))
	return nil
}

// Scale multiplies every sample of channel c by v in place.
func (im *Image) Scale(c int, v float64) error {
	if c < 0 || c >= im.channels {
		return fmt.Errorf("%w: channel %d of %d", ErrOutOfRange, c, im.channels)
	}
	floats.Scale(v, im.plane(c))
	return nil
}

// clampIndex returns index clamped to [0, size-1].
func clampIndex(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}
