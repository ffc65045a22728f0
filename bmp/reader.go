package bmp

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	errBadMagic    = errors.New("bmp: not a bitmap file")
	errUnsupported = errors.New("bmp: unsupported bitmap variant")
	errNotEnough   = errors.New("bmp: not enough image data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	file fileHeader
	info infoHeader

	palette color.Palette
	image   *image.Paletted
}

func (d *decoder) readHeaders() error {
	if err := binary.Read(d.r, binary.LittleEndian, &d.file); err != nil {
		return err
	}
	if d.file.Type != magic {
		return errBadMagic
	}

	if err := binary.Read(d.r, binary.LittleEndian, &d.info); err != nil {
		return err
	}
	if d.info.Size != infoHeaderLen || d.info.Planes != 1 || d.info.BitCount != 1 || d.info.Compression != 0 {
		return errUnsupported
	}
	if d.info.Width <= 0 || d.info.Height <= 0 {
		return errUnsupported
	}
	if n := d.info.ColorsUsed; n != 0 && n != numColors {
		return errUnsupported
	}

	return nil
}

func (d *decoder) readPalette() error {
	var tmp [paletteLen]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		return err
	}

	d.palette = make(color.Palette, numColors)
	for i := range d.palette {
		// Entries are stored as BGRX
		d.palette[i] = color.RGBA{tmp[i*4+2], tmp[i*4+1], tmp[i*4], 0xff}
	}
	return nil
}

func (d *decoder) readPixels() error {
	w, h := int(d.info.Width), int(d.info.Height)
	d.image = image.NewPaletted(image.Rect(0, 0, w, h), d.palette)

	row := make([]byte, rowStride(w))
	for y := h - 1; y >= 0; y-- {
		if err := readFull(d.r, row); err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			if row[x>>3]&(0x80>>(x&7)) != 0 {
				d.image.SetColorIndex(x, y, 1)
			}
		}
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeaders(); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}

	if err := d.readPalette(); err != nil {
		if err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}

	if configOnly {
		return nil
	}

	// Skip any gap between the palette and the pixel rows
	if gap := int64(d.file.OffBits) - dataOffset; gap > 0 {
		if _, err := io.CopyN(io.Discard, d.r, gap); err != nil {
			return errNotEnough
		}
	}

	if err := d.readPixels(); err != nil {
		if err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}

	return nil
}

// Decode reads a 1-bit bitmap from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a 1-bit bitmap
// without decoding the pixel rows.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.palette,
		Width:      int(d.info.Width),
		Height:     int(d.info.Height),
	}, nil
}

// DecodeResolution returns the resolution metadata of a 1-bit bitmap in
// pixels per meter.
func DecodeResolution(r io.Reader) (Resolution, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Resolution{}, err
	}
	return Resolution{X: d.info.XPelsPerMeter, Y: d.info.YPelsPerMeter}, nil
}
