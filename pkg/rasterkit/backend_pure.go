//go:build purego || js

package rasterkit

// --- Pure Go filtering ---

// filterPlane correlates one width x height plane with a kw x kh kernel,
// replicating border samples, and writes the result to dst.
func filterPlane(dst, src []float64, width, height int, k []float64, kw, kh int) error {
	ax, ay := kw/2, kh/2
	// Columns whose whole tap row lies inside the plane.
	interiorLo, interiorHi := ax, width-kw+ax

	parallelRows(height, func(start, end int) {
		rowOffs := make([]int, kh)
		for y := start; y < end; y++ {
			for ky := range rowOffs {
				rowOffs[ky] = clampIndex(y+ky-ay, height) * width
			}
			dstRow := dst[y*width : (y+1)*width]
			for x := range dstRow {
				var sum float64
				if x >= interiorLo && x <= interiorHi {
					base := x - ax
					for ky, off := range rowOffs {
						taps := k[ky*kw : (ky+1)*kw]
						row := src[off+base : off+base+kw]
						for kx, w := range taps {
							sum += w * row[kx]
						}
					}
				} else {
					for ky, off := range rowOffs {
						taps := k[ky*kw : (ky+1)*kw]
						for kx, w := range taps {
							sum += w * src[off+clampIndex(x+kx-ax, width)]
						}
					}
				}
				dstRow[x] = sum
			}
		}
	})
	return nil
}
