package main

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	rk "rasterkit/pkg/rasterkit"
)

func newResizeCmd(a *app) *cobra.Command {
	var (
		method        string
		width, height int
		scale         float64
	)
	cmd := &cobra.Command{
		Use:   "resize IN OUT",
		Short: "Resample an image with nearest-neighbor or bilinear interpolation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := rk.ParseResizeMethod(method)
			if err != nil {
				return err
			}
			im, err := a.load(args[0])
			if err != nil {
				return err
			}
			w, h := targetSize(im, width, height, scale)
			var out *rk.Image
			if err := a.timed("resize", func() error {
				out, err = rk.Resize(im, w, h, m)
				return err
			}); err != nil {
				return err
			}
			printStats(a.out, m.String(), out)
			return saveImage(out, args[1])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&method, "method", "m", rk.ResizeBilinear.String(), "interpolation: nearest|bilinear")
	f.IntVar(&width, "width", 0, "output width in pixels")
	f.IntVar(&height, "height", 0, "output height in pixels")
	f.Float64Var(&scale, "scale", 1, "scale factor used for any dimension not given explicitly")
	return cmd
}

// targetSize fills in unset dimensions from the scale factor.
func targetSize(im *rk.Image, width, height int, scale float64) (int, int) {
	if width == 0 {
		width = int(float64(im.Width()) * scale)
	}
	if height == 0 {
		height = int(float64(im.Height()) * scale)
	}
	return width, height
}

// filterFlags binds the mutually exclusive kernel choice of filter.
type filterFlags struct {
	box          int
	sigma        float64
	named        string
	weights      []float64
	weightsWidth int
	normalize    bool
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.box, "box", 0, "box filter side length")
	fs.Float64Var(&f.sigma, "sigma", 0, "gaussian standard deviation")
	fs.StringVar(&f.named, "kernel", "", "fixed 3x3 kernel: highpass|sharpen|emboss")
	fs.Float64SliceVar(&f.weights, "weights", nil, "custom kernel weights, row-major")
	fs.IntVar(&f.weightsWidth, "weights-width", 0, "custom kernel width (default: square)")
	fs.BoolVar(&f.normalize, "normalize", true, "L1-normalize custom weights")
}

// kernel builds the selected kernel. preserve is false for kernels whose
// per-channel responses read better summed into one edge map.
func (f *filterFlags) kernel() (k *rk.Image, name string, preserve bool, err error) {
	chosen := 0
	for _, set := range []bool{f.box != 0, f.sigma != 0, f.named != "", len(f.weights) > 0} {
		if set {
			chosen++
		}
	}
	if chosen != 1 {
		return nil, "", false, fmt.Errorf("%w: exactly one of --box, --sigma, --kernel or --weights is required",
			rk.ErrInvalidParameter)
	}

	switch {
	case f.box != 0:
		k, err = rk.MakeBoxFilter(f.box)
		return k, fmt.Sprintf("box%d", f.box), true, err
	case f.sigma != 0:
		k, err = rk.MakeGaussianFilter(f.sigma)
		return k, fmt.Sprintf("gauss%g", f.sigma), true, err
	case f.named != "":
		switch f.named {
		case "highpass":
			return rk.MakeHighpassFilter(), f.named, false, nil
		case "sharpen":
			return rk.MakeSharpenFilter(), f.named, true, nil
		case "emboss":
			return rk.MakeEmbossFilter(), f.named, true, nil
		}
		return nil, "", false, fmt.Errorf("%w: unknown kernel %q", rk.ErrInvalidParameter, f.named)
	default:
		k, err = f.customKernel()
		return k, "custom", true, err
	}
}

func (f *filterFlags) customKernel() (*rk.Image, error) {
	n := len(f.weights)
	w := f.weightsWidth
	if w == 0 {
		w = int(math.Round(math.Sqrt(float64(n))))
	}
	if w <= 0 || n%w != 0 {
		return nil, fmt.Errorf("%w: %d weights do not fill rows of width %d", rk.ErrInvalidParameter, n, w)
	}
	k, err := rk.NewImageFromData(w, n/w, 1, f.weights)
	if err != nil {
		return nil, err
	}
	if !f.normalize {
		return k, nil
	}
	return rk.L1Normalize(k)
}

func newFilterCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:     "filter IN OUT",
		Aliases: []string{"blur"},
		Short:   "Convolve an image with a box, gaussian, fixed or custom kernel",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, name, preserve, err := ff.kernel()
			if err != nil {
				return err
			}
			im, err := a.load(args[0])
			if err != nil {
				return err
			}
			var out *rk.Image
			if err := a.timed("filter", func() error {
				out, err = rk.Convolve(im, k, preserve)
				return err
			}); err != nil {
				return err
			}
			printStats(a.out, name, out)
			return saveImage(out, args[1])
		},
	}
	ff.register(cmd.Flags())
	return cmd
}

func newBandsCmd(a *app) *cobra.Command {
	var sigma float64
	cmd := &cobra.Command{
		Use:   "bands IN OUTDIR",
		Short: "Split an image into low and high frequency bands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := a.load(args[0])
			if err != nil {
				return err
			}
			var bands rk.FrequencyPair
			if err := a.timed("decompose", func() error {
				bands, err = rk.Decompose(im, sigma)
				return err
			}); err != nil {
				return err
			}
			back, err := bands.Reconstruct()
			if err != nil {
				return err
			}
			for _, o := range []struct {
				name string
				im   *rk.Image
			}{
				{"low-frequency", bands.Low},
				{"high-frequency", bands.High},
				{"reconstruct", back},
			} {
				printStats(a.out, o.name, o.im)
				if err := saveImage(o.im, filepath.Join(args[1], o.name+".jpg")); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&sigma, "sigma", 2, "gaussian standard deviation of the low band")
	return cmd
}

func newSobelCmd(a *app) *cobra.Command {
	var (
		colorize bool
		cp       = rk.DefaultColorizeParams()
	)
	cmd := &cobra.Command{
		Use:   "sobel IN OUT",
		Short: "Render the Sobel gradient magnitude, or its colorized direction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := a.load(args[0])
			if err != nil {
				return err
			}
			var out *rk.Image
			err = a.timed("sobel", func() error {
				if colorize {
					out, err = rk.ColorizeSobel(im, cp)
					return err
				}
				g, err := rk.Sobel(im)
				if err != nil {
					return err
				}
				out = g.Magnitude
				out.NormalizeToDisplayRange()
				return nil
			})
			if err != nil {
				return err
			}
			printStats(a.out, "sobel", out)
			return saveImage(out, args[1])
		},
	}
	f := cmd.Flags()
	f.BoolVar(&colorize, "colorize", false, "encode direction as hue and magnitude as value")
	f.Float64Var(&cp.Saturation, "saturation", cp.Saturation, "saturation of the colorized output, in [0, 1]")
	f.Float64Var(&cp.HueOffsetDegrees, "hue-offset", cp.HueOffsetDegrees, "rotation of the direction-to-hue mapping, in degrees")
	return cmd
}

func newHybridCmd(a *app) *cobra.Command {
	var lowSigma, highSigma float64
	cmd := &cobra.Command{
		Use:   "hybrid LOW HIGH OUT",
		Short: "Blend the low band of one image with the high band of another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lowSrc, err := a.load(args[0])
			if err != nil {
				return err
			}
			highSrc, err := a.load(args[1])
			if err != nil {
				return err
			}
			if !lowSrc.SameShape(highSrc) {
				// Match the detail image to the base image's geometry.
				if highSrc, err = rk.BilinearResize(highSrc, lowSrc.Width(), lowSrc.Height()); err != nil {
					return err
				}
			}
			var out *rk.Image
			if err := a.timed("hybrid", func() (err error) {
				out, err = rk.HybridImage(lowSrc, highSrc, lowSigma, highSigma)
				return err
			}); err != nil {
				return err
			}
			printStats(a.out, "hybrid", out)
			return saveImage(out, args[2])
		},
	}
	f := cmd.Flags()
	f.Float64Var(&lowSigma, "low-sigma", 4, "gaussian sigma of the low band")
	f.Float64Var(&highSigma, "high-sigma", 2, "gaussian sigma removed from the high band")
	return cmd
}

func newAdjustCmd(a *app) *cobra.Command {
	var hue, saturation, value float64
	cmd := &cobra.Command{
		Use:   "adjust IN OUT",
		Short: "Rotate hue and scale saturation and value of a color image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := a.load(args[0])
			if err != nil {
				return err
			}
			var out *rk.Image
			if err := a.timed("adjust", func() error {
				out, err = adjustHSV(im, hue, saturation, value)
				return err
			}); err != nil {
				return err
			}
			printStats(a.out, "adjust", out)
			return saveImage(out, args[1])
		},
	}
	f := cmd.Flags()
	f.Float64Var(&hue, "hue", 0, "hue rotation in degrees")
	f.Float64Var(&saturation, "saturation", 1, "saturation multiplier")
	f.Float64Var(&value, "value", 1, "value multiplier")
	return cmd
}

// adjustHSV shifts hue and scales saturation and value in HSV space, then
// clamps the result back into [0, 1].
func adjustHSV(im *rk.Image, hueDegrees, saturation, value float64) (*rk.Image, error) {
	hsv, err := rk.RGBToHSV(im)
	if err != nil {
		return nil, err
	}
	if err := hsv.Shift(0, hueDegrees/360); err != nil {
		return nil, err
	}
	if err := hsv.Scale(1, saturation); err != nil {
		return nil, err
	}
	if err := hsv.Scale(2, value); err != nil {
		return nil, err
	}
	out, err := rk.HSVToRGB(hsv)
	if err != nil {
		return nil, err
	}
	out.ClampInPlace(0, 1)
	return out, nil
}
