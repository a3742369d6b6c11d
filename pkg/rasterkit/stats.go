package rasterkit

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StatisticsFlags controls which statistics to compute.
type StatisticsFlags int

const (
	StatNone   StatisticsFlags = 0
	StatRange  StatisticsFlags = 1
	StatMedian StatisticsFlags = 2
	StatMean   StatisticsFlags = 4
	StatStdDev StatisticsFlags = 8
	StatAll    StatisticsFlags = StatRange | StatMedian | StatMean | StatStdDev
)

// ImageStatistics holds sample statistics of an image.
type ImageStatistics struct {
	Min    float64
	Max    float64
	Median float64
	Mean   float64
	StdDev float64
}

func (s ImageStatistics) String() string {
	return fmt.Sprintf("{Min=%f, Max=%f, Median=%f, Mean=%f, StdDev=%f}", s.Min, s.Max, s.Median, s.Mean, s.StdDev)
}

// CalculateStatistics computes the requested statistics over every sample
// of im, all channels together. StdDev is the unbiased sample deviation.
func CalculateStatistics(im *Image, flags StatisticsFlags) ImageStatistics {
	return sampleStatistics(im.data, flags)
}

// CalculateChannelStatistics is CalculateStatistics restricted to channel c.
func CalculateChannelStatistics(im *Image, c int, flags StatisticsFlags) (ImageStatistics, error) {
	if c < 0 || c >= im.channels {
		return ImageStatistics{}, fmt.Errorf("%w: channel %d of %d", ErrOutOfRange, c, im.channels)
	}
	return sampleStatistics(im.plane(c), flags), nil
}

func sampleStatistics(data []float64, flags StatisticsFlags) ImageStatistics {
	var result ImageStatistics
	if flags&StatRange != 0 {
		result.Min = floats.Min(data)
		result.Max = floats.Max(data)
	}
	if flags&StatMedian != 0 {
		sorted := slices.Clone(data)
		slices.Sort(sorted)
		result.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	if flags&StatStdDev != 0 {
		result.Mean, result.StdDev = stat.MeanStdDev(data, nil)
	} else if flags&StatMean != 0 {
		result.Mean = stat.Mean(data, nil)
	}
	return result
}
