package matprint

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// loadImage reads the source file and reduces it to 8-bit greyscale. SVG
// input is rasterised at its view box size, anything else goes through
// whichever raster decoders are registered.
func loadImage(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src image.Image
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		src, err = decodeSVG(f)
	} else {
		src, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return grayscale(src), nil
}

// decodeSVG rasterises an SVG document onto a white background at its view
// box size.
func decodeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}

	width := int(icon.ViewBox.W)
	height := int(icon.ViewBox.H)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("svg has no usable view box")
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return img, nil
}

// grayscale reduces an image to single-channel intensity using the usual
// luma weights. Fully transparent pixels count as background.
func grayscale(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			if a == 0 {
				dst.SetGray(x, y, color.Gray{Y: 0xff})
				continue
			}

			// Undo the alpha premultiplication
			r = r * 0xffff / a
			g = g * 0xffff / a
			bl = bl * 0xffff / a

			dst.SetGray(x, y, color.Gray{Y: uint8(((299*r + 587*g + 114*bl) / 1000) >> 8)})
		}
	}

	return dst
}
