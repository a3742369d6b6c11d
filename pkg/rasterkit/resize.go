package rasterkit

import (
	"fmt"
	"math"
)

// ResizeMethod selects the interpolation used by Resize.
type ResizeMethod int

const (
	ResizeNearest ResizeMethod = iota
	ResizeBilinear
)

func (m ResizeMethod) String() string {
	switch m {
	case ResizeNearest:
		return "nearest"
	case ResizeBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// ParseResizeMethod maps "nearest"/"nn" and "bilinear"/"bl" to a ResizeMethod.
func ParseResizeMethod(s string) (ResizeMethod, error) {
	switch s {
	case "nearest", "nn":
		return ResizeNearest, nil
	case "bilinear", "bl":
		return ResizeBilinear, nil
	default:
		return 0, fmt.Errorf("%w: unknown resize method %q", ErrInvalidParameter, s)
	}
}

// Resize resamples im to width x height using the given method.
func Resize(im *Image, width, height int, method ResizeMethod) (*Image, error) {
	switch method {
	case ResizeNearest:
		return NearestResize(im, width, height)
	case ResizeBilinear:
		return BilinearResize(im, width, height)
	default:
		return nil, fmt.Errorf("%w: resize method %d", ErrInvalidParameter, int(method))
	}
}

// NearestResize resamples im by copying the nearest source sample.
//
// Sample centers are aligned: output pixel o maps to source coordinate
// (o+0.5)*in/out - 0.5, which is then rounded and clamped. There is no
// prefilter, so heavy downscaling aliases.
func NearestResize(im *Image, width, height int) (*Image, error) {
	out, err := resizeTarget(im, width, height)
	if err != nil {
		return nil, err
	}
	xs := make([]int, width)
	for ox := range xs {
		xs[ox] = clampIndex(int(math.Round(sourceCoord(ox, im.width, width))), im.width)
	}

	parallelRows(height, func(start, end int) {
		for oy := start; oy < end; oy++ {
			sy := clampIndex(int(math.Round(sourceCoord(oy, im.height, height))), im.height)
			for c := 0; c < im.channels; c++ {
				src := im.plane(c)[sy*im.width : (sy+1)*im.width]
				dst := out.plane(c)[oy*width : (oy+1)*width]
				for ox, sx := range xs {
					dst[ox] = src[sx]
				}
			}
		}
	})
	return out, nil
}

// BilinearResize resamples im by interpolating the four source samples
// around each output pixel's center. Neighbors outside the source are
// clamped independently.
func BilinearResize(im *Image, width, height int) (*Image, error) {
	out, err := resizeTarget(im, width, height)
	if err != nil {
		return nil, err
	}
	x0s := make([]int, width)
	x1s := make([]int, width)
	fxs := make([]float64, width)
	for ox := 0; ox < width; ox++ {
		sx := sourceCoord(ox, im.width, width)
		fl := math.Floor(sx)
		fxs[ox] = sx - fl
		x0s[ox] = clampIndex(int(fl), im.width)
		x1s[ox] = clampIndex(int(fl)+1, im.width)
	}

	parallelRows(height, func(start, end int) {
		for oy := start; oy < end; oy++ {
			sy := sourceCoord(oy, im.height, height)
			fl := math.Floor(sy)
			fy := sy - fl
			y0 := clampIndex(int(fl), im.height)
			y1 := clampIndex(int(fl)+1, im.height)
			for c := 0; c < im.channels; c++ {
				p := im.plane(c)
				top := p[y0*im.width : (y0+1)*im.width]
				bottom := p[y1*im.width : (y1+1)*im.width]
				dst := out.plane(c)[oy*width : (oy+1)*width]
				for ox := range dst {
					fx := fxs[ox]
					t := (1-fx)*top[x0s[ox]] + fx*top[x1s[ox]]
					b := (1-fx)*bottom[x0s[ox]] + fx*bottom[x1s[ox]]
					dst[ox] = (1-fy)*t + fy*b
				}
			}
		}
	})
	return out, nil
}

func resizeTarget(im *Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size must be positive, got %dx%d",
			ErrInvalidDimension, width, height)
	}
	return newImage(width, height, im.channels), nil
}

// sourceCoord maps output index o of an axis of outN samples onto the
// continuous source axis of inN samples.
func sourceCoord(o, inN, outN int) float64 {
	return (float64(o)+0.5)*float64(inN)/float64(outN) - 0.5
}
