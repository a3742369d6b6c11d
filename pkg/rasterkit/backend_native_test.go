//go:build !purego && !js

package rasterkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gocv.io/x/gocv"
)

func TestPlaneFromMat(t *testing.T) {
	m, err := matFromPlane([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	dst := make([]float64, 6)
	if err := planeFromMat(dst, m); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{1, 2, 3, 4, 5, 6}, dst); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	if err := planeFromMat(make([]float64, 4), m); err == nil {
		t.Error("short destination: got nil error")
	}
}

func TestPlaneFromMatRejectsOtherTypes(t *testing.T) {
	m := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV32F)
	defer m.Close()
	if err := planeFromMat(make([]float64, 4), m); err == nil {
		t.Error("CV_32F mat: got nil error")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if err := planeFromMat(make([]float64, 4), empty); err == nil {
		t.Error("empty mat: got nil error")
	}
}
