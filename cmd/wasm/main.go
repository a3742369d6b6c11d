//go:build js && wasm

package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	"github.com/disintegration/imaging"

	rk "rasterkit/pkg/rasterkit"
)

func main() {
	js.Global().Set("processImage", js.FuncOf(processImage))
	js.Global().Set("imageStatistics", js.FuncOf(imageStatistics))
	js.Global().Set("contactSheet", js.FuncOf(contactSheet))
	select {} // block forever
}

// processImage(fileBytes, op, param) runs one operation on an encoded image
// and returns the result as PNG bytes in a Uint8Array.
//
// Ops: "nearest" and "bilinear" (param is the scale factor), "box" (side
// length), "gauss", "low" and "high" (sigma), "highpass", "sharpen",
// "emboss", "sobel" and "colorize", and "hue" (rotation in degrees).
func processImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("usage: processImage(fileBytes, op, param)")
	}
	im, err := decodeArg(args[0])
	if err != nil {
		return errorResult("decode error: " + err.Error())
	}

	param := 0.0
	if len(args) >= 3 && args[2].Type() == js.TypeNumber {
		param = args[2].Float()
	}

	out, err := apply(im, args[1].String(), param)
	if err != nil {
		return errorResult(err.Error())
	}

	img, err := out.ToImage()
	if err != nil {
		return errorResult(err.Error())
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return errorResult("encode error: " + err.Error())
	}

	uint8Array := js.Global().Get("Uint8Array").New(buf.Len())
	js.CopyBytesToJS(uint8Array, buf.Bytes())
	return uint8Array
}

func apply(im *rk.Image, op string, param float64) (*rk.Image, error) {
	switch op {
	case "nearest", "bilinear":
		m, err := rk.ParseResizeMethod(op)
		if err != nil {
			return nil, err
		}
		if param == 0 {
			param = 1
		}
		return rk.Resize(im, int(float64(im.Width())*param), int(float64(im.Height())*param), m)
	case "box":
		k, err := rk.MakeBoxFilter(int(param))
		if err != nil {
			return nil, err
		}
		return rk.Convolve(im, k, true)
	case "gauss":
		k, err := rk.MakeGaussianFilter(param)
		if err != nil {
			return nil, err
		}
		return rk.Convolve(im, k, true)
	case "low", "high":
		bands, err := rk.Decompose(im, param)
		if err != nil {
			return nil, err
		}
		if op == "low" {
			return bands.Low, nil
		}
		return bands.High, nil
	case "highpass":
		return rk.Convolve(im, rk.MakeHighpassFilter(), false)
	case "sharpen", "emboss":
		k := rk.MakeSharpenFilter()
		if op == "emboss" {
			k = rk.MakeEmbossFilter()
		}
		out, err := rk.Convolve(im, k, true)
		if err != nil {
			return nil, err
		}
		out.ClampInPlace(0, 1)
		return out, nil
	case "hue":
		hsv, err := rk.RGBToHSV(im)
		if err != nil {
			return nil, err
		}
		if err := hsv.Shift(0, param/360); err != nil {
			return nil, err
		}
		return rk.HSVToRGB(hsv)
	case "sobel":
		g, err := rk.Sobel(im)
		if err != nil {
			return nil, err
		}
		g.Magnitude.NormalizeToDisplayRange()
		return g.Magnitude, nil
	case "colorize":
		return rk.ColorizeSobel(im, rk.DefaultColorizeParams())
	default:
		return nil, fmt.Errorf("unknown op %q", op)
	}
}

// contactSheet(fileBytes, tileWidth) renders the source next to every
// parameterless op and the default-sigma bands, returned as JPEG bytes.
func contactSheet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: contactSheet(fileBytes, tileWidth)")
	}
	im, err := decodeArg(args[0])
	if err != nil {
		return errorResult("decode error: " + err.Error())
	}
	tileWidth := 240
	if len(args) >= 2 && args[1].Type() == js.TypeNumber {
		tileWidth = args[1].Int()
	}

	panels := []rk.Panel{{Label: "source", Image: im}}
	for _, op := range []string{"low", "high", "sobel", "colorize"} {
		out, err := apply(im, op, 2)
		if err != nil {
			return errorResult(op + ": " + err.Error())
		}
		panels = append(panels, rk.Panel{Label: op, Image: out})
	}
	jpegBytes, err := rk.RenderContactSheetBytes(panels, tileWidth)
	if err != nil {
		return errorResult(err.Error())
	}

	uint8Array := js.Global().Get("Uint8Array").New(len(jpegBytes))
	js.CopyBytesToJS(uint8Array, jpegBytes)
	return uint8Array
}

// imageStatistics(fileBytes) returns min/max/median/mean/stddev of the
// decoded image.
func imageStatistics(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: imageStatistics(fileBytes)")
	}
	im, err := decodeArg(args[0])
	if err != nil {
		return errorResult("decode error: " + err.Error())
	}
	s := rk.CalculateStatistics(im, rk.StatAll)
	return js.ValueOf(map[string]interface{}{
		"width":    im.Width(),
		"height":   im.Height(),
		"channels": im.Channels(),
		"min":      s.Min,
		"max":      s.Max,
		"median":   s.Median,
		"mean":     s.Mean,
		"stddev":   s.StdDev,
	})
}

// decodeArg reads a Uint8Array holding a FITS file or any format imaging
// can decode.
func decodeArg(v js.Value) (*rk.Image, error) {
	fileBytes := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(fileBytes, v)

	if bytes.HasPrefix(fileBytes, []byte("SIMPLE")) {
		im, _, err := rk.DecodeFITSBytes(fileBytes)
		return im, err
	}
	img, err := imaging.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, err
	}
	return rk.FromImage(img)
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
