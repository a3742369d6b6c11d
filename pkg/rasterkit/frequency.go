package rasterkit

import "fmt"

// FrequencyPair holds the low (blurred) and high (residual) bands of an
// image. Low + High reproduces the source up to float rounding.
type FrequencyPair struct {
	Low  *Image
	High *Image
}

// Decompose splits im into bands using a Gaussian kernel of the given sigma.
func Decompose(im *Image, sigma float64) (FrequencyPair, error) {
	k, err := MakeGaussianFilter(sigma)
	if err != nil {
		return FrequencyPair{}, err
	}
	return DecomposeWithKernel(im, k)
}

// DecomposeWithKernel splits im into bands using blur kernel k.
func DecomposeWithKernel(im, k *Image) (FrequencyPair, error) {
	low, err := Convolve(im, k, true)
	if err != nil {
		return FrequencyPair{}, fmt.Errorf("low band: %w", err)
	}
	high, err := Sub(im, low)
	if err != nil {
		return FrequencyPair{}, fmt.Errorf("high band: %w", err)
	}
	return FrequencyPair{Low: low, High: high}, nil
}

// Reconstruct returns Low + High.
func (p FrequencyPair) Reconstruct() (*Image, error) {
	return Add(p.Low, p.High)
}

// HybridImage combines the low band of lowSrc with the high band of
// highSrc. Up close the high band dominates; from a distance the low band does.
func HybridImage(lowSrc, highSrc *Image, lowSigma, highSigma float64) (*Image, error) {
	if !lowSrc.SameShape(highSrc) {
		return nil, shapeError("hybridize", lowSrc, highSrc)
	}
	lowBands, err := Decompose(lowSrc, lowSigma)
	if err != nil {
		return nil, err
	}
	highBands, err := Decompose(highSrc, highSigma)
	if err != nil {
		return nil, err
	}
	return Add(lowBands.Low, highBands.High)
}
