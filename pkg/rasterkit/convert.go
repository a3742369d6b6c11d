package rasterkit

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage converts a Go image to an Image with samples in [0, 1].
// Gray images become one channel; everything else becomes three RGB
// channels with alpha dropped.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty source bounds %v", ErrInvalidDimension, b)
	}

	switch src.(type) {
	case *image.Gray, *image.Gray16:
		out := newImage(w, h, 1)
		dst := out.plane(0)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				dst[y*w+x] = float64(g.Y) / 0xffff
			}
		}
		return out, nil
	}

	out := newImage(w, h, 3)
	r, g, bl := out.plane(0), out.plane(1), out.plane(2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA64Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			i := y*w + x
			r[i] = float64(c.R) / 0xffff
			g[i] = float64(c.G) / 0xffff
			bl[i] = float64(c.B) / 0xffff
		}
	}
	return out, nil
}

// ToImage converts im to an 8-bit Go image. One channel gives *image.Gray,
// three give opaque *image.NRGBA, four give *image.NRGBA with alpha.
// Samples are clamped to [0, 1] before quantizing.
func (im *Image) ToImage() (image.Image, error) {
	rect := image.Rect(0, 0, im.width, im.height)
	switch im.channels {
	case 1:
		out := image.NewGray(rect)
		p := im.plane(0)
		for y := 0; y < im.height; y++ {
			for x := 0; x < im.width; x++ {
				out.Pix[y*out.Stride+x] = quantize8(p[y*im.width+x])
			}
		}
		return out, nil
	case 3, 4:
		out := image.NewNRGBA(rect)
		for y := 0; y < im.height; y++ {
			for x := 0; x < im.width; x++ {
				i := y*im.width + x
				o := y*out.Stride + x*4
				out.Pix[o+0] = quantize8(im.plane(0)[i])
				out.Pix[o+1] = quantize8(im.plane(1)[i])
				out.Pix[o+2] = quantize8(im.plane(2)[i])
				if im.channels == 4 {
					out.Pix[o+3] = quantize8(im.plane(3)[i])
				} else {
					out.Pix[o+3] = 0xff
				}
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %d-channel image", ErrShapeMismatch, im.channels)
	}
}

func quantize8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}
