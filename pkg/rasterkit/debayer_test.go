package rasterkit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDebayerConstant(t *testing.T) {
	got, err := Debayer(uniformImage(t, 5, 4, 1, 0.6))
	if err != nil {
		t.Fatal(err)
	}
	if got.Channels() != 3 || got.Width() != 5 || got.Height() != 4 {
		t.Fatalf("shape %v", got)
	}
	if d := cmp.Diff(constant(60, 0.6), got.data, within(1e-12)); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestDebayerRedSites(t *testing.T) {
	// Only red sites lit: interior pixels should be pure red.
	raw := uniformImage(t, 6, 6, 1, 0)
	for y := 0; y < 6; y += 2 {
		for x := 0; x < 6; x += 2 {
			if err := raw.Set(x, y, 0, 1); err != nil {
				t.Fatal(err)
			}
		}
	}
	got, err := Debayer(raw)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		r, g, b := got.Get(p[0], p[1], 0), got.Get(p[0], p[1], 1), got.Get(p[0], p[1], 2)
		if math.Abs(r-1) > 1e-12 || g != 0 || b != 0 {
			t.Errorf("pixel %v = (%v, %v, %v), want (1, 0, 0)", p, r, g, b)
		}
	}
}

func TestDebayerRejectsColor(t *testing.T) {
	if _, err := Debayer(uniformImage(t, 4, 4, 3, 0)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("got %v, want ErrShapeMismatch", err)
	}
}
