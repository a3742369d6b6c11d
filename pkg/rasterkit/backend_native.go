//go:build !purego && !js

package rasterkit

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// --- OpenCV filtering ---

// filterPlane correlates one width x height plane with a kw x kh kernel,
// replicating border samples, and writes the result to dst.
func filterPlane(dst, src []float64, width, height int, k []float64, kw, kh int) error {
	srcMat, err := matFromPlane(src, height, width)
	if err != nil {
		return fmt.Errorf("source plane: %w", err)
	}
	defer srcMat.Close()
	kernel, err := matFromPlane(k, kh, kw)
	if err != nil {
		return fmt.Errorf("kernel: %w", err)
	}
	defer kernel.Close()
	dstMat := gocv.NewMat()
	defer dstMat.Close()

	gocv.Filter2D(srcMat, &dstMat, gocv.MatTypeCV64F, kernel, image.Pt(kw/2, kh/2), 0, gocv.BorderReplicate)

	if err := planeFromMat(dst, dstMat); err != nil {
		return fmt.Errorf("filter output: %w", err)
	}
	return nil
}

// matFromPlane copies a row-major plane into a new CV_64F Mat.
func matFromPlane(p []float64, rows, cols int) (gocv.Mat, error) {
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64F)
	data, err := m.DataPtrFloat64()
	if err != nil {
		m.Close()
		return gocv.Mat{}, err
	}
	copy(data, p)
	return m, nil
}

// planeFromMat copies a CV_64F Mat into dst, which must hold every sample.
func planeFromMat(dst []float64, m gocv.Mat) error {
	if m.Type() != gocv.MatTypeCV64F {
		return fmt.Errorf("mat type %v, want CV_64F", m.Type())
	}
	data, err := m.DataPtrFloat64()
	if err != nil {
		return err
	}
	if len(data) != len(dst) {
		return fmt.Errorf("mat holds %d samples, want %d", len(data), len(dst))
	}
	copy(dst, data)
	return nil
}
