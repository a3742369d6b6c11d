//go:build purego || js

package main

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	rk "rasterkit/pkg/rasterkit"
)

func loadRasterImage(path string) (*rk.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	return rk.FromImage(img)
}

func saveRasterImage(img image.Image, path string) error {
	return imaging.Save(img, path, imaging.JPEGQuality(95))
}
