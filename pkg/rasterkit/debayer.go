package rasterkit

import "fmt"

// Debayer demosaics a single-channel RGGB Bayer mosaic into a 3-channel RGB
// image by bilinear interpolation.
//
// RGGB layout (row-major, 0-indexed):
//
//	(even row, even col) = R
//	(even row, odd  col) = G  (Gr)
//	(odd  row, even col) = G  (Gb)
//	(odd  row, odd  col) = B
//
// Neighbors outside the mosaic are read through Get, so edges replicate.
func Debayer(raw *Image) (*Image, error) {
	if raw.channels != 1 {
		return nil, fmt.Errorf("%w: bayer mosaic must have 1 channel, got %d", ErrShapeMismatch, raw.channels)
	}
	w, h := raw.width, raw.height
	out := newImage(w, h, 3)
	rp, gp, bp := out.plane(0), out.plane(1), out.plane(2)
	px := func(x, y int) float64 { return raw.Get(x, y, 0) }
	cross := func(x, y int) float64 {
		return (px(x-1, y) + px(x+1, y) + px(x, y-1) + px(x, y+1)) / 4
	}
	diagonal := func(x, y int) float64 {
		return (px(x-1, y-1) + px(x+1, y-1) + px(x-1, y+1) + px(x+1, y+1)) / 4
	}

	parallelRows(h, func(start, end int) {
		for y := start; y < end; y++ {
			evenRow := y%2 == 0
			for x := 0; x < w; x++ {
				evenCol := x%2 == 0
				var r, g, b float64

				switch {
				case evenRow && evenCol:
					r = px(x, y)
					g = cross(x, y)
					b = diagonal(x, y)
				case evenRow:
					r = (px(x-1, y) + px(x+1, y)) / 2
					g = px(x, y)
					b = (px(x, y-1) + px(x, y+1)) / 2
				case evenCol:
					r = (px(x, y-1) + px(x, y+1)) / 2
					g = px(x, y)
					b = (px(x-1, y) + px(x+1, y)) / 2
				default:
					r = diagonal(x, y)
					g = cross(x, y)
					b = px(x, y)
				}

				i := y*w + x
				rp[i], gp[i], bp[i] = r, g, b
			}
		}
	})
	return out, nil
}
