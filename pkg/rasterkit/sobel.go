package rasterkit

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// flatResponse is the rounding floor of a derivative response relative to
// the largest absolute input sample. Responses below it count as zero, so
// flat regions get magnitude 0 and direction 0 at any sample scale.
const flatResponse = 1e-12

// GradientPair holds per-pixel gradient magnitude and direction, both
// single-channel. Direction is atan2(gy, gx) in radians, in [-π, π].
type GradientPair struct {
	Magnitude *Image
	Direction *Image
}

// Sobel computes the gradient of im with the 3x3 Sobel operators. The
// responses of all channels are summed before combining, so a color image
// yields one scalar field.
func Sobel(im *Image) (GradientPair, error) {
	gx, err := Convolve(im, MakeSobelXFilter(), false)
	if err != nil {
		return GradientPair{}, fmt.Errorf("horizontal response: %w", err)
	}
	gy, err := Convolve(im, MakeSobelYFilter(), false)
	if err != nil {
		return GradientPair{}, fmt.Errorf("vertical response: %w", err)
	}

	floor := flatResponse * peakAbs(im.data)
	w := im.width
	mag := newImage(w, im.height, 1)
	dir := newImage(w, im.height, 1)
	parallelRows(im.height, func(start, end int) {
		for i := start * w; i < end*w; i++ {
			x, y := gx.data[i], gy.data[i]
			if math.Abs(x) <= floor {
				x = 0
			}
			if math.Abs(y) <= floor {
				y = 0
			}
			mag.data[i] = math.Hypot(x, y)
			dir.data[i] = math.Atan2(y, x)
		}
	})
	return GradientPair{Magnitude: mag, Direction: dir}, nil
}

// ColorizeParams controls the HSV mapping of ColorizeSobel.
type ColorizeParams struct {
	// Saturation applied to every pixel, in [0, 1].
	Saturation float64
	// HueOffsetDegrees rotates the direction-to-hue mapping.
	HueOffsetDegrees float64
}

// DefaultColorizeParams returns full saturation and no hue rotation.
func DefaultColorizeParams() ColorizeParams {
	return ColorizeParams{
		Saturation:       1.0,
		HueOffsetDegrees: 0,
	}
}

// ColorizeSobel renders the gradient of im as a 3-channel RGB image.
//
// Hue encodes direction: atan2 output in [-π, π] maps linearly onto
// [0°, 360°) plus p.HueOffsetDegrees, so -π and π share a hue. Value is
// the gradient magnitude rescaled to [0, 1]. Saturation is p.Saturation.
func ColorizeSobel(im *Image, p ColorizeParams) (*Image, error) {
	if p.Saturation < 0 || p.Saturation > 1 || math.IsNaN(p.Saturation) {
		return nil, fmt.Errorf("%w: saturation must be in [0, 1], got %g", ErrInvalidParameter, p.Saturation)
	}
	if math.IsNaN(p.HueOffsetDegrees) || math.IsInf(p.HueOffsetDegrees, 0) {
		return nil, fmt.Errorf("%w: hue offset must be finite, got %g", ErrInvalidParameter, p.HueOffsetDegrees)
	}
	g, err := Sobel(im)
	if err != nil {
		return nil, err
	}
	value := g.Magnitude.Clone()
	value.NormalizeToDisplayRange()

	w := im.width
	out := newImage(w, im.height, 3)
	r, gr, b := out.plane(0), out.plane(1), out.plane(2)
	parallelRows(im.height, func(start, end int) {
		for i := start * w; i < end*w; i++ {
			hue := directionHue(g.Direction.data[i], p.HueOffsetDegrees)
			c := colorful.Hsv(hue, p.Saturation, value.data[i])
			r[i], gr[i], b[i] = c.R, c.G, c.B
		}
	})
	return out, nil
}

// peakAbs returns the largest absolute value in v.
func peakAbs(v []float64) float64 {
	return math.Max(math.Abs(floats.Min(v)), math.Abs(floats.Max(v)))
}

// directionHue maps a direction in radians to a hue in [0, 360).
func directionHue(theta, offsetDegrees float64) float64 {
	return wrapDegrees((theta+math.Pi)/(2*math.Pi)*360 + offsetDegrees)
}

func wrapDegrees(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
