package rasterkit

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

func requireRGB(op string, im *Image) error {
	if im.channels < 3 {
		return fmt.Errorf("%w: %s needs at least 3 channels, got %d", ErrShapeMismatch, op, im.channels)
	}
	return nil
}

// Grayscale returns the luma of the first three channels as a
// single-channel image.
func Grayscale(im *Image) (*Image, error) {
	if err := requireRGB("grayscale", im); err != nil {
		return nil, err
	}
	out := newImage(im.width, im.height, 1)
	r, g, b := im.plane(0), im.plane(1), im.plane(2)
	dst := out.plane(0)
	for i := range dst {
		dst[i] = lumaR*r[i] + lumaG*g[i] + lumaB*b[i]
	}
	return out, nil
}

// RGBToHSV converts the first three channels to hue, saturation, value.
// Hue is stored as a fraction of a full turn in [0, 1). Extra channels are
// copied unchanged.
func RGBToHSV(im *Image) (*Image, error) {
	if err := requireRGB("rgb to hsv", im); err != nil {
		return nil, err
	}
	out := im.Clone()
	r, g, b := im.plane(0), im.plane(1), im.plane(2)
	h, s, v := out.plane(0), out.plane(1), out.plane(2)
	for i := range h {
		hue, sat, val := colorful.Color{R: r[i], G: g[i], B: b[i]}.Hsv()
		h[i], s[i], v[i] = hue/360, sat, val
	}
	return out, nil
}

// HSVToRGB is the inverse of RGBToHSV.
func HSVToRGB(im *Image) (*Image, error) {
	if err := requireRGB("hsv to rgb", im); err != nil {
		return nil, err
	}
	out := im.Clone()
	h, s, v := im.plane(0), im.plane(1), im.plane(2)
	r, g, b := out.plane(0), out.plane(1), out.plane(2)
	for i := range r {
		c := colorful.Hsv(wrapDegrees(h[i]*360), s[i], v[i])
		r[i], g[i], b[i] = c.R, c.G, c.B
	}
	return out, nil
}
