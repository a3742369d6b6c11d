package rasterkit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewImageRejectsNonPositive(t *testing.T) {
	for _, tc := range []struct{ w, h, c int }{
		{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-3, 2, 1},
	} {
		if _, err := NewImage(tc.w, tc.h, tc.c); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("NewImage(%d, %d, %d): got %v, want ErrInvalidDimension", tc.w, tc.h, tc.c, err)
		}
	}
}

func TestNewImageFromDataLength(t *testing.T) {
	if _, err := NewImageFromData(2, 2, 1, []float64{1, 2, 3}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("got %v, want ErrShapeMismatch", err)
	}
}

func TestGetClamps(t *testing.T) {
	// 3x2, two channels: channel 1 is channel 0 plus 10.
	im := mustImage(t, 3, 2, 2, []float64{
		0, 1, 2,
		3, 4, 5,
		10, 11, 12,
		13, 14, 15,
	})

	tests := []struct {
		x, y, c int
		want    float64
	}{
		{0, 0, 0, 0},
		{2, 1, 0, 5},
		{-5, 0, 0, 0},
		{7, 0, 0, 2},
		{1, -1, 0, 1},
		{1, 9, 0, 4},
		{-1, 9, 0, 3},
		{1, 1, 1, 14},
		{1, 1, 5, 14},
		{1, 1, -2, 4},
	}
	for _, tc := range tests {
		if got := im.Get(tc.x, tc.y, tc.c); got != tc.want {
			t.Errorf("Get(%d, %d, %d) = %v, want %v", tc.x, tc.y, tc.c, got, tc.want)
		}
	}
}

func TestSetOutOfRange(t *testing.T) {
	im := uniformImage(t, 2, 2, 1, 0)
	for _, tc := range []struct{ x, y, c int }{
		{-1, 0, 0}, {2, 0, 0}, {0, -1, 0}, {0, 2, 0}, {0, 0, 1}, {0, 0, -1},
	} {
		if err := im.Set(tc.x, tc.y, tc.c, 1); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Set(%d, %d, %d): got %v, want ErrOutOfRange", tc.x, tc.y, tc.c, err)
		}
	}
	if d := cmp.Diff(constant(4, 0), im.data); d != "" {
		t.Errorf("failed Set mutated the image (-want +got):\n%s", d)
	}

	if err := im.Set(1, 0, 0, 0.25); err != nil {
		t.Fatal(err)
	}
	if got := im.Get(1, 0, 0); got != 0.25 {
		t.Errorf("Get after Set = %v, want 0.25", got)
	}
}

func TestAddSub(t *testing.T) {
	a := mustImage(t, 2, 1, 2, []float64{1, 2, 3, 4})
	b := mustImage(t, 2, 1, 2, []float64{0.5, 0.5, 1, 1})

	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{1.5, 2.5, 4, 5}, sum.data); d != "" {
		t.Errorf("Add (-want +got):\n%s", d)
	}

	diff, err := Sub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{0.5, 1.5, 2, 3}, diff.data); d != "" {
		t.Errorf("Sub (-want +got):\n%s", d)
	}

	// Operands are untouched and results are fresh buffers.
	if d := cmp.Diff([]float64{1, 2, 3, 4}, a.data); d != "" {
		t.Errorf("Add/Sub mutated input (-want +got):\n%s", d)
	}
	sum.data[0] = 99
	if a.data[0] == 99 || b.data[0] == 99 {
		t.Error("result aliases an operand")
	}
}

func TestAddSubShapeMismatch(t *testing.T) {
	a := uniformImage(t, 2, 2, 1, 0)
	for _, b := range []*Image{
		uniformImage(t, 3, 2, 1, 0),
		uniformImage(t, 2, 3, 1, 0),
		uniformImage(t, 2, 2, 3, 0),
	} {
		if _, err := Add(a, b); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("Add(%v, %v): got %v, want ErrShapeMismatch", a, b, err)
		}
		if _, err := Sub(a, b); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("Sub(%v, %v): got %v, want ErrShapeMismatch", a, b, err)
		}
	}
}

func TestNormalizeToDisplayRange(t *testing.T) {
	im := mustImage(t, 4, 1, 1, []float64{-2, 0, 2, 6})
	im.NormalizeToDisplayRange()
	if d := cmp.Diff([]float64{0, 0.25, 0.5, 1}, im.data, within(1e-12)); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	flat := uniformImage(t, 3, 3, 2, 0.7)
	flat.NormalizeToDisplayRange()
	if d := cmp.Diff(constant(18, 0), flat.data); d != "" {
		t.Errorf("constant image (-want +got):\n%s", d)
	}
}

func TestClampShiftScale(t *testing.T) {
	im := mustImage(t, 2, 1, 2, []float64{-0.5, 0.5, 1.5, 0.25})
	im.ClampInPlace(0, 1)
	if d := cmp.Diff([]float64{0, 0.5, 1, 0.25}, im.data); d != "" {
		t.Errorf("ClampInPlace (-want +got):\n%s", d)
	}

	if err := im.Shift(1, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := im.Scale(0, 2); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{0, 1, 1.5, 0.75}, im.data); d != "" {
		t.Errorf("Shift/Scale (-want +got):\n%s", d)
	}

	if err := im.Shift(2, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Shift on missing channel: got %v, want ErrOutOfRange", err)
	}
}

func TestChannelAndClone(t *testing.T) {
	im := mustImage(t, 2, 1, 2, []float64{1, 2, 3, 4})
	c1, err := im.Channel(1)
	if err != nil {
		t.Fatal(err)
	}
	if c1.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", c1.Channels())
	}
	if d := cmp.Diff([]float64{3, 4}, c1.data); d != "" {
		t.Errorf("Channel(1) (-want +got):\n%s", d)
	}
	if _, err := im.Channel(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Channel(2): got %v, want ErrOutOfRange", err)
	}

	cl := im.Clone()
	cl.data[0] = -1
	if im.data[0] != 1 {
		t.Error("Clone shares storage with its source")
	}
}
