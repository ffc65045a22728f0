package bmp

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	errNotPaletted   = errors.New("bmp: image is not two-color paletted")
	errBadResolution = errors.New("bmp: resolution must be positive")
)

type encoder struct {
	w   io.Writer
	m   image.PalettedImage
	res Resolution
}

func (e *encoder) writeHeaders() error {
	b := e.m.Bounds()
	stride := rowStride(b.Dx())

	fh := fileHeader{
		Type:    magic,
		Size:    uint32(dataOffset + stride*b.Dy()),
		OffBits: dataOffset,
	}
	if err := binary.Write(e.w, binary.LittleEndian, &fh); err != nil {
		return err
	}

	// Positive height means the rows are stored bottom-up
	ih := infoHeader{
		Size:          infoHeaderLen,
		Width:         int32(b.Dx()),
		Height:        int32(b.Dy()),
		Planes:        1,
		BitCount:      1,
		SizeImage:     uint32(stride * b.Dy()),
		XPelsPerMeter: e.res.X,
		YPelsPerMeter: e.res.Y,
		ColorsUsed:    numColors,
	}
	return binary.Write(e.w, binary.LittleEndian, &ih)
}

func (e *encoder) writePalette() error {
	p, _ := e.m.ColorModel().(color.Palette)
	var tmp [4]byte
	for i := 0; i < numColors; i++ {
		tmp = [4]byte{}
		if i < len(p) {
			r, g, b, _ := p[i].RGBA()

			// Entries are stored as BGRX
			tmp[0] = byte(b >> 8)
			tmp[1] = byte(g >> 8)
			tmp[2] = byte(r >> 8)
		}
		if _, err := e.w.Write(tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writePixels() error {
	b := e.m.Bounds()
	row := make([]byte, rowStride(b.Dx()))
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for i := range row {
			row[i] = 0
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			if e.m.ColorIndexAt(x, y)&1 != 0 {
				i := x - b.Min.X
				row[i>>3] |= 0x80 >> (i & 7)
			}
		}
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the two-color image m to w as a 1-bit bitmap with the given
// resolution metadata.
func Encode(w io.Writer, m image.Image, res Resolution) error {
	if res.X <= 0 || res.Y <= 0 {
		return errBadResolution
	}

	pm, ok := m.(image.PalettedImage)
	if !ok {
		return errNotPaletted
	}

	if p, ok := m.ColorModel().(color.Palette); !ok || len(p) > numColors {
		return errNotPaletted
	}

	e := encoder{w: w, m: pm, res: res}

	if err := e.writeHeaders(); err != nil {
		return err
	}
	if err := e.writePalette(); err != nil {
		return err
	}
	return e.writePixels()
}
