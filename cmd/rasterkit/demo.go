package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	rk "rasterkit/pkg/rasterkit"
)

// DemoParams configures the demo pipeline.
type DemoParams struct {
	SmallPath     string
	LargePath     string
	OutDir        string
	BoxSize       int
	Sigma         float64
	Upscale       int
	ThumbDivisor  int
	ContactSheet  bool
	SheetTileSize int
}

// NewDemoParams returns the defaults for the demo pipeline.
func NewDemoParams() DemoParams {
	return DemoParams{
		OutDir:        "result",
		BoxSize:       7,
		Sigma:         2,
		Upscale:       4,
		ThumbDivisor:  7,
		SheetTileSize: 240,
	}
}

func newDemoCmd(a *app) *cobra.Command {
	p := NewDemoParams()
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run every operation on sample images and save the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), a, p)
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.SmallPath, "small", "", "image to upscale")
	f.StringVar(&p.LargePath, "large", "", "image to filter")
	f.StringVarP(&p.OutDir, "out", "o", p.OutDir, "output directory")
	f.IntVar(&p.BoxSize, "box", p.BoxSize, "box filter side length")
	f.Float64Var(&p.Sigma, "sigma", p.Sigma, "gaussian standard deviation")
	f.IntVar(&p.Upscale, "upscale", p.Upscale, "upscale factor for the small image")
	f.IntVar(&p.ThumbDivisor, "thumb", p.ThumbDivisor, "thumbnail downscale divisor")
	f.BoolVar(&p.ContactSheet, "sheet", false, "also render a labeled contact sheet")
	f.IntVar(&p.SheetTileSize, "tile", p.SheetTileSize, "contact sheet tile width in pixels")
	_ = cmd.MarkFlagRequired("small")
	_ = cmd.MarkFlagRequired("large")
	return cmd
}

// demoStage produces one named output.
type demoStage struct {
	name string
	fn   func() (*rk.Image, error)
}

func runDemo(ctx context.Context, a *app, p DemoParams) error {
	if p.Upscale <= 0 || p.ThumbDivisor <= 0 {
		return fmt.Errorf("%w: upscale %d and thumbnail divisor %d must be positive",
			rk.ErrInvalidParameter, p.Upscale, p.ThumbDivisor)
	}

	fmt.Fprintf(a.out, "Loading: %s, %s\n", p.SmallPath, p.LargePath)
	small, err := a.load(p.SmallPath)
	if err != nil {
		return err
	}
	large, err := a.load(p.LargePath)
	if err != nil {
		return err
	}

	box, err := rk.MakeBoxFilter(p.BoxSize)
	if err != nil {
		return err
	}
	gauss, err := rk.MakeGaussianFilter(p.Sigma)
	if err != nil {
		return err
	}

	// The box blur feeds the thumbnail and the gaussian bands feed three
	// outputs, so both are computed once up front.
	var boxed *rk.Image
	var bands rk.FrequencyPair
	startTime := time.Now()
	var prep errgroup.Group
	prep.Go(func() error {
		return a.timed("box blur", func() (err error) {
			boxed, err = rk.Convolve(large, box, true)
			return err
		})
	})
	prep.Go(func() error {
		return a.timed("frequency bands", func() (err error) {
			bands, err = rk.DecomposeWithKernel(large, gauss)
			return err
		})
	})
	if err := prep.Wait(); err != nil {
		return err
	}

	stages := []demoStage{
		{fmt.Sprintf("dog%dx-nn", p.Upscale), func() (*rk.Image, error) {
			return rk.NearestResize(small, small.Width()*p.Upscale, small.Height()*p.Upscale)
		}},
		{fmt.Sprintf("dog%dx-bl", p.Upscale), func() (*rk.Image, error) {
			return rk.BilinearResize(small, small.Width()*p.Upscale, small.Height()*p.Upscale)
		}},
		{fmt.Sprintf("dog-box%d", p.BoxSize), func() (*rk.Image, error) {
			return boxed, nil
		}},
		{"dogthumb", func() (*rk.Image, error) {
			return rk.NearestResize(boxed, max(1, boxed.Width()/p.ThumbDivisor), max(1, boxed.Height()/p.ThumbDivisor))
		}},
		{fmt.Sprintf("dog-gauss%g", p.Sigma), func() (*rk.Image, error) {
			return bands.Low, nil
		}},
		{"low-frequency", func() (*rk.Image, error) {
			return bands.Low, nil
		}},
		{"high-frequency", func() (*rk.Image, error) {
			return bands.High, nil
		}},
		{"reconstruct", bands.Reconstruct},
		{"magnitude", func() (*rk.Image, error) {
			g, err := rk.Sobel(large)
			if err != nil {
				return nil, err
			}
			g.Magnitude.NormalizeToDisplayRange()
			return g.Magnitude, nil
		}},
		{"colorized", func() (*rk.Image, error) {
			return rk.ColorizeSobel(large, rk.DefaultColorizeParams())
		}},
	}

	var mu sync.Mutex
	results := make(map[string]*rk.Image, len(stages))
	g, gctx := errgroup.WithContext(ctx)
	for _, st := range stages {
		st := st
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var out *rk.Image
			err := a.timed(st.name, func() (err error) {
				out, err = st.fn()
				return err
			})
			if err != nil {
				return fmt.Errorf("%s: %w", st.name, err)
			}
			if err := saveImage(out, filepath.Join(p.OutDir, st.name+".jpg")); err != nil {
				return err
			}
			mu.Lock()
			results[st.name] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "=== Demo Results (%.1fs) ===\n", time.Since(startTime).Seconds())
	for _, name := range names {
		printStats(a.out, name, results[name])
	}
	fmt.Fprintln(a.out, "==============================")

	if !p.ContactSheet {
		return nil
	}
	panels := make([]rk.Panel, 0, len(stages))
	for _, st := range stages {
		panels = append(panels, rk.Panel{Label: st.name, Image: results[st.name]})
	}
	sheetPath := filepath.Join(p.OutDir, "contact-sheet.jpg")
	if err := rk.RenderContactSheet(panels, p.SheetTileSize, sheetPath); err != nil {
		return fmt.Errorf("rendering contact sheet: %w", err)
	}
	fmt.Fprintf(a.out, "Contact sheet: %s\n", sheetPath)
	return nil
}
