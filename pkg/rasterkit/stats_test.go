package rasterkit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculateStatistics(t *testing.T) {
	im := mustImage(t, 5, 1, 1, []float64{3, 1, 2, 5, 4})

	got := CalculateStatistics(im, StatAll)
	want := ImageStatistics{Min: 1, Max: 5, Median: 3, Mean: 3, StdDev: math.Sqrt(2.5)}
	if d := cmp.Diff(want, got, within(1e-12)); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	// Only the requested fields are filled.
	got = CalculateStatistics(im, StatRange)
	if d := cmp.Diff(ImageStatistics{Min: 1, Max: 5}, got); d != "" {
		t.Errorf("StatRange (-want +got):\n%s", d)
	}
	got = CalculateStatistics(im, StatMean)
	if d := cmp.Diff(ImageStatistics{Mean: 3}, got, within(1e-12)); d != "" {
		t.Errorf("StatMean (-want +got):\n%s", d)
	}
	if got := CalculateStatistics(im, StatNone); got != (ImageStatistics{}) {
		t.Errorf("StatNone = %v, want zero", got)
	}
}

func TestCalculateStatisticsLeavesDataUnsorted(t *testing.T) {
	im := mustImage(t, 3, 1, 1, []float64{0.9, 0.1, 0.5})
	CalculateStatistics(im, StatMedian)
	if d := cmp.Diff([]float64{0.9, 0.1, 0.5}, im.data); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestCalculateChannelStatistics(t *testing.T) {
	im := mustImage(t, 3, 1, 2, []float64{
		0, 1, 2,
		10, 30, 20,
	})
	got, err := CalculateChannelStatistics(im, 1, StatRange|StatMedian)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ImageStatistics{Min: 10, Max: 30, Median: 20}, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	if _, err := CalculateChannelStatistics(im, 2, StatAll); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("got %v, want ErrOutOfRange", err)
	}
}
