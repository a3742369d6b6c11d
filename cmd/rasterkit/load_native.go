//go:build !purego && !js

package main

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	rk "rasterkit/pkg/rasterkit"
)

func loadRasterImage(path string) (*rk.Image, error) {
	src := gocv.IMRead(path, gocv.IMReadAnyColor)
	if src.Empty() {
		return nil, fmt.Errorf("could not load image: %s", path)
	}
	defer src.Close()

	img, err := src.ToImage()
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	return rk.FromImage(img)
}

func saveRasterImage(img image.Image, path string) error {
	var (
		mat gocv.Mat
		err error
	)
	if gray, ok := img.(*image.Gray); ok {
		mat, err = gocv.ImageGrayToMatGray(gray)
	} else {
		mat, err = gocv.ImageToMatRGB(img)
	}
	if err != nil {
		return err
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("could not write image: %s", path)
	}
	return nil
}
