package rasterkit

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerWorker keeps tiny images on the calling goroutine.
const minRowsPerWorker = 16

// parallelRows calls fn over contiguous row ranges [start, end) covering
// [0, n). Ranges are disjoint, so fn may write its own output rows freely
// while reading shared input.
func parallelRows(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(runtime.GOMAXPROCS(0), (n+minRowsPerWorker-1)/minRowsPerWorker)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		start, end := start, min(start+chunkSize, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
