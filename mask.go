package matprint

import (
	"image"
	"image/color"
)

// Default classification thresholds. Pixels strictly darker than
// DefaultStiffBelow are stiff material, pixels strictly lighter than
// DefaultSoftAbove are soft material and everything in between is void.
const (
	DefaultStiffBelow uint8 = 35
	DefaultSoftAbove  uint8 = 225
)

func maskPalette() color.Palette {
	return color.Palette{color.Black, color.White}
}

// Mask is a two-color material mask over the source image grid. Pixels
// belonging to the material render white, everything else black.
type Mask struct {
	p *image.Paletted
}

var _ image.PalettedImage = &Mask{}

// NewMask returns an empty mask covering r.
func NewMask(r image.Rectangle) *Mask {
	return &Mask{
		p: image.NewPaletted(r, maskPalette()),
	}
}

func (m *Mask) ColorModel() color.Model {
	return m.p.ColorModel()
}

func (m *Mask) Bounds() image.Rectangle {
	return m.p.Bounds()
}

func (m *Mask) At(x, y int) color.Color {
	return m.p.At(x, y)
}

func (m *Mask) ColorIndexAt(x, y int) uint8 {
	return m.p.ColorIndexAt(x, y)
}

// On reports whether the pixel at (x, y) belongs to the material.
func (m *Mask) On(x, y int) bool {
	return m.p.ColorIndexAt(x, y) == 1
}

// Set marks or clears the pixel at (x, y).
func (m *Mask) Set(x, y int, on bool) {
	if on {
		m.p.SetColorIndex(x, y, 1)
	} else {
		m.p.SetColorIndex(x, y, 0)
	}
}

// Classify splits a greyscale image into its stiff and soft material masks.
// A pixel darker than stiffBelow is stiff, a pixel lighter than softAbove
// is soft, and mid-range pixels belong to neither mask.
func Classify(img *image.Gray, stiffBelow, softAbove uint8) (stiff, soft *Mask) {
	b := img.Bounds()
	stiff, soft = NewMask(b), NewMask(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch v := img.GrayAt(x, y).Y; {
			case v < stiffBelow:
				stiff.Set(x, y, true)
			case v > softAbove:
				soft.Set(x, y, true)
			}
		}
	}

	return stiff, soft
}
