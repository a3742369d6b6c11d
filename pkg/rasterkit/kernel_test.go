package rasterkit

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestMakeBoxFilter(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 15} {
		k, err := MakeBoxFilter(size)
		if err != nil {
			t.Fatalf("MakeBoxFilter(%d): %v", size, err)
		}
		if k.Width() != size || k.Height() != size || k.Channels() != 1 {
			t.Errorf("MakeBoxFilter(%d) shape %v", size, k)
		}
		if sum := floats.Sum(k.data); !(math.Abs(sum-1) <= 1e-6) {
			t.Errorf("MakeBoxFilter(%d) sums to %v", size, sum)
		}
		if lo, hi := floats.Min(k.data), floats.Max(k.data); lo != hi {
			t.Errorf("MakeBoxFilter(%d) weights not uniform: [%v, %v]", size, lo, hi)
		}
	}
	for _, size := range []int{0, -3} {
		if _, err := MakeBoxFilter(size); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("MakeBoxFilter(%d): got %v, want ErrInvalidParameter", size, err)
		}
	}
}

func TestGaussianFilterSize(t *testing.T) {
	tests := []struct {
		sigma float64
		want  int
	}{
		{0.1, 1},
		{0.5, 3},
		{1, 7},
		{1.5, 9},
		{2, 13},
		{2.2, 15},
	}
	for _, tc := range tests {
		if got := GaussianFilterSize(tc.sigma); got != tc.want {
			t.Errorf("GaussianFilterSize(%v) = %d, want %d", tc.sigma, got, tc.want)
		}
	}
}

func TestMakeGaussianFilter(t *testing.T) {
	for _, sigma := range []float64{1e-200, 1e-3, 0.1, 0.5, 1, 2, 3.3} {
		k, err := MakeGaussianFilter(sigma)
		if err != nil {
			t.Fatalf("MakeGaussianFilter(%v): %v", sigma, err)
		}
		size := k.Width()
		if size%2 != 1 || k.Height() != size || k.Channels() != 1 {
			t.Fatalf("MakeGaussianFilter(%v) shape %v", sigma, k)
		}
		if sum := floats.Sum(k.data); !(math.Abs(sum-1) <= 1e-6) {
			t.Errorf("MakeGaussianFilter(%v) sums to %v", sigma, sum)
		}

		half := size / 2
		center := k.Get(half, half, 0)
		if center != floats.Max(k.data) {
			t.Errorf("sigma %v: center %v is not the peak %v", sigma, center, floats.Max(k.data))
		}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v := k.Get(x, y, 0)
				if m := k.Get(size-1-x, y, 0); math.Abs(v-m) > 1e-15 {
					t.Fatalf("sigma %v: not mirror symmetric at (%d, %d)", sigma, x, y)
				}
				if tr := k.Get(y, x, 0); math.Abs(v-tr) > 1e-15 {
					t.Fatalf("sigma %v: not transpose symmetric at (%d, %d)", sigma, x, y)
				}
			}
		}
	}
}

func TestMakeGaussianFilterTinySigma(t *testing.T) {
	// 2σ² underflows to zero here.
	k, err := MakeGaussianFilter(1e-200)
	if err != nil {
		t.Fatal(err)
	}
	if k.Width() != 1 || k.Height() != 1 || k.data[0] != 1 {
		t.Errorf("got %v with weights %v, want 1x1 unit kernel", k, k.data)
	}
}

func TestMakeGaussianFilterInvalid(t *testing.T) {
	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := MakeGaussianFilter(sigma); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("MakeGaussianFilter(%v): got %v, want ErrInvalidParameter", sigma, err)
		}
	}
}

func TestL1Normalize(t *testing.T) {
	k := mustImage(t, 2, 1, 1, []float64{1, 3})
	n, err := L1Normalize(k)
	if err != nil {
		t.Fatal(err)
	}
	if n.data[0] != 0.25 || n.data[1] != 0.75 {
		t.Errorf("got %v, want [0.25 0.75]", n.data)
	}
	if k.data[0] != 1 {
		t.Error("L1Normalize modified its input")
	}

	if _, err := L1Normalize(MakeHighpassFilter()); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero-sum kernel: got %v, want ErrInvalidParameter", err)
	}
}

func TestFixedKernelSums(t *testing.T) {
	tests := []struct {
		name string
		k    *Image
		want float64
	}{
		{"highpass", MakeHighpassFilter(), 0},
		{"sharpen", MakeSharpenFilter(), 1},
		{"emboss", MakeEmbossFilter(), 1},
		{"sobel-x", MakeSobelXFilter(), 0},
		{"sobel-y", MakeSobelYFilter(), 0},
	}
	for _, tc := range tests {
		if got := floats.Sum(tc.k.data); got != tc.want {
			t.Errorf("%s sums to %v, want %v", tc.name, got, tc.want)
		}
	}
}
