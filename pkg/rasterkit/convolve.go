package rasterkit

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ChannelMode says how a kernel's channels line up with an image's channels.
type ChannelMode int

const (
	// SharedKernel applies a single-channel kernel to every image channel.
	SharedKernel ChannelMode = iota
	// PerChannelKernel convolves image channel c with kernel channel c.
	PerChannelKernel
)

func (m ChannelMode) String() string {
	switch m {
	case SharedKernel:
		return "shared"
	case PerChannelKernel:
		return "per-channel"
	default:
		return "unknown"
	}
}

// ResolveChannelMode picks the mode for convolving im with k: SharedKernel
// for a one-channel kernel, PerChannelKernel when the channel counts match.
func ResolveChannelMode(im, k *Image) (ChannelMode, error) {
	switch {
	case k.channels == 1:
		return SharedKernel, nil
	case k.channels == im.channels:
		return PerChannelKernel, nil
	default:
		return 0, fmt.Errorf("%w: %d-channel kernel on %d-channel image",
			ErrShapeMismatch, k.channels, im.channels)
	}
}

// Convolve applies k to im with the mode from ResolveChannelMode.
func Convolve(im, k *Image, preserve bool) (*Image, error) {
	mode, err := ResolveChannelMode(im, k)
	if err != nil {
		return nil, err
	}
	return ConvolveMode(im, k, mode, preserve)
}

// ConvolveMode applies kernel k to im and returns an image of the same
// width and height.
//
// Tap (kx, ky) weighs input pixel (x+kx-kw/2, y+ky-kh/2); coordinates
// outside the image are clamped, which replicates the border. With preserve
// the output keeps one channel per input channel, otherwise the per-channel
// responses are summed into a single channel.
func ConvolveMode(im, k *Image, mode ChannelMode, preserve bool) (*Image, error) {
	switch mode {
	case SharedKernel:
		if k.channels != 1 {
			return nil, fmt.Errorf("%w: shared mode needs a 1-channel kernel, got %d",
				ErrShapeMismatch, k.channels)
		}
	case PerChannelKernel:
		if k.channels != im.channels {
			return nil, fmt.Errorf("%w: per-channel mode needs a %d-channel kernel, got %d",
				ErrShapeMismatch, im.channels, k.channels)
		}
	default:
		return nil, fmt.Errorf("%w: channel mode %d", ErrInvalidParameter, int(mode))
	}

	outChannels := 1
	if preserve {
		outChannels = im.channels
	}
	out := newImage(im.width, im.height, outChannels)

	var scratch []float64
	for c := 0; c < im.channels; c++ {
		weights := k.plane(0)
		if mode == PerChannelKernel {
			weights = k.plane(c)
		}
		dst := out.plane(0)
		switch {
		case preserve:
			dst = out.plane(c)
		case c > 0:
			if scratch == nil {
				scratch = make([]float64, im.width*im.height)
			}
			dst = scratch
		}
		if err := filterPlane(dst, im.plane(c), im.width, im.height, weights, k.width, k.height); err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
		if !preserve && c > 0 {
			floats.Add(out.plane(0), scratch)
		}
	}
	return out, nil
}
