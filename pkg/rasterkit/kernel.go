package rasterkit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// gaussianTailSigmas is the kernel side length in units of sigma.
const gaussianTailSigmas = 6

// MakeBoxFilter returns a size x size single-channel kernel with every
// weight equal to 1/size².
func MakeBoxFilter(size int) (*Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: box filter size must be positive, got %d", ErrInvalidParameter, size)
	}
	k := newImage(size, size, 1)
	k.Fill(1 / float64(size*size))
	return k, nil
}

// MakeGaussianFilter returns a square single-channel Gaussian kernel.
//
// The side length is ceil(6*sigma), bumped to the next odd number so the
// kernel has a center tap. Weights are L1-normalized to sum to 1.
func MakeGaussianFilter(sigma float64) (*Image, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("%w: gaussian sigma must be positive and finite, got %g", ErrInvalidParameter, sigma)
	}
	size := GaussianFilterSize(sigma)
	k := newImage(size, size, 1)
	if size == 1 {
		// Identity tap; for tiny sigma 2σ² underflows and the formula is 0/0.
		k.data[0] = 1
		return k, nil
	}
	half := size / 2
	twoSigmaSq := 2 * sigma * sigma
	for y := 0; y < size; y++ {
		dy := float64(y - half)
		for x := 0; x < size; x++ {
			dx := float64(x - half)
			k.data[y*size+x] = math.Exp(-(dx*dx + dy*dy) / twoSigmaSq)
		}
	}
	floats.Scale(1/floats.Sum(k.data), k.data)
	return k, nil
}

// GaussianFilterSize returns the side length MakeGaussianFilter uses for sigma.
func GaussianFilterSize(sigma float64) int {
	size := int(math.Ceil(sigma * gaussianTailSigmas))
	if size%2 == 0 {
		size++
	}
	return size
}

// L1Normalize returns a copy of k scaled so its weights sum to 1.
func L1Normalize(k *Image) (*Image, error) {
	sum := floats.Sum(k.data)
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, fmt.Errorf("%w: cannot normalize kernel with weight sum %g", ErrInvalidParameter, sum)
	}
	out := k.Clone()
	floats.Scale(1/sum, out.data)
	return out, nil
}

// kernel3x3 builds a single-channel 3x3 kernel from row-major weights.
func kernel3x3(w [9]float64) *Image {
	k := newImage(3, 3, 1)
	copy(k.data, w[:])
	return k
}

// MakeHighpassFilter returns the 4-neighbor Laplacian edge kernel. Its
// weights sum to 0, so flat regions map to 0.
func MakeHighpassFilter() *Image {
	return kernel3x3([9]float64{
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0,
	})
}

// MakeSharpenFilter returns the highpass kernel plus identity.
func MakeSharpenFilter() *Image {
	return kernel3x3([9]float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

func MakeEmbossFilter() *Image {
	return kernel3x3([9]float64{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	})
}

// MakeSobelXFilter returns the horizontal Sobel derivative kernel.
func MakeSobelXFilter() *Image {
	return kernel3x3([9]float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
}

// MakeSobelYFilter returns the vertical Sobel derivative kernel.
func MakeSobelYFilter() *Image {
	return kernel3x3([9]float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}
