package rasterkit

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// within compares float64 samples up to an absolute tolerance.
func within(tol float64) cmp.Option {
	return cmpopts.EquateApprox(0, tol)
}

func mustImage(t *testing.T, w, h, c int, data []float64) *Image {
	t.Helper()
	im, err := NewImageFromData(w, h, c, data)
	if err != nil {
		t.Fatalf("NewImageFromData(%d, %d, %d): %v", w, h, c, err)
	}
	return im
}

func uniformImage(t *testing.T, w, h, c int, v float64) *Image {
	t.Helper()
	im, err := NewImage(w, h, c)
	if err != nil {
		t.Fatalf("NewImage(%d, %d, %d): %v", w, h, c, err)
	}
	im.Fill(v)
	return im
}

// noiseImage returns a reproducible image with samples in [0, 1).
func noiseImage(t *testing.T, w, h, c int, seed int64) *Image {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, w*h*c)
	for i := range data {
		data[i] = rng.Float64()
	}
	return mustImage(t, w, h, c, data)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
