package rasterkit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	sheetPadding     = 8
	sheetLabelHeight = 18
	sheetFooter      = 24
)

// Panel is one labeled tile of a contact sheet.
type Panel struct {
	Label string
	Image *Image
}

// RenderContactSheet lays panels out on a grid, each scaled to tileWidth
// pixels wide with its label underneath, and writes the sheet as JPEG.
func RenderContactSheet(panels []Panel, tileWidth int, outputPath string) error {
	img, err := renderSheetImage(panels, tileWidth)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create contact sheet: %w", err)
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// RenderContactSheetBytes is RenderContactSheet returning the JPEG bytes.
func RenderContactSheetBytes(panels []Panel, tileWidth int) ([]byte, error) {
	img, err := renderSheetImage(panels, tileWidth)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderSheetImage(panels []Panel, tileWidth int) (*image.RGBA, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("%w: no panels", ErrInvalidParameter)
	}
	if tileWidth <= 0 {
		return nil, fmt.Errorf("%w: tile width must be positive, got %d", ErrInvalidDimension, tileWidth)
	}

	// Convert and measure every tile first; row height is the tallest tile.
	cols := int(math.Ceil(math.Sqrt(float64(len(panels)))))
	rows := (len(panels) + cols - 1) / cols
	tiles := make([]image.Image, len(panels))
	tileHeights := make([]int, len(panels))
	rowHeights := make([]int, rows)
	for i, p := range panels {
		if p.Image == nil {
			return nil, fmt.Errorf("%w: panel %q has no image", ErrInvalidParameter, p.Label)
		}
		tile, err := p.Image.ToImage()
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", p.Label, err)
		}
		tiles[i] = tile
		th := max(1, int(math.Round(float64(p.Image.height)*float64(tileWidth)/float64(p.Image.width))))
		tileHeights[i] = th
		rowHeights[i/cols] = max(rowHeights[i/cols], th)
	}

	cellW := tileWidth + sheetPadding
	totalW := cols*cellW + sheetPadding
	totalH := sheetPadding + sheetFooter
	rowTops := make([]int, rows)
	for r, h := range rowHeights {
		rowTops[r] = totalH - sheetFooter
		totalH += h + sheetLabelHeight + sheetPadding
	}

	img := image.NewRGBA(image.Rect(0, 0, totalW, totalH))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	labelColor := color.RGBA{255, 255, 255, 255}
	for i, tile := range tiles {
		col, row := i%cols, i/cols
		x0 := sheetPadding + col*cellW
		y0 := rowTops[row]
		dst := image.Rect(x0, y0, x0+tileWidth, y0+tileHeights[i])
		draw.ApproxBiLinear.Scale(img, dst, tile, tile.Bounds(), draw.Src, nil)
		drawCenteredText(img, face, panels[i].Label, x0+tileWidth/2, y0+rowHeights[row]+sheetLabelHeight-5, labelColor)
	}

	summary := fmt.Sprintf("%d panels, %dpx tiles", len(panels), tileWidth)
	drawText(img, face, summary, sheetPadding, totalH-sheetPadding, color.RGBA{220, 220, 220, 255})
	return img, nil
}

// drawText draws a string with its baseline starting at (x, y).
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCenteredText draws a string horizontally centered on cx.
func drawCenteredText(img *image.RGBA, face font.Face, s string, cx, y int, c color.RGBA) {
	advance := font.MeasureString(face, s)
	drawText(img, face, s, cx-advance.Round()/2, y, c)
}
