/*
Package matprint converts a greyscale source image into 1-bit material
bitmaps. Near-black pixels form the stiff material mask, near-white pixels
the soft one, and each mask is written once per configured resolution.
*/
package matprint

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/matprint/matprint/bmp"
)

// Processor converts one source image per call to Process. The thresholds
// and resolutions are fixed for the lifetime of the value.
type Processor struct {
	Primary    DPI
	Secondary  DPI
	StiffBelow uint8
	SoftAbove  uint8

	logger *log.Logger
}

// New returns a Processor emitting at the two given resolutions, using the
// default classification thresholds.
func New(primary, secondary DPI, logger *log.Logger) *Processor {
	return &Processor{
		Primary:    primary,
		Secondary:  secondary,
		StiffBelow: DefaultStiffBelow,
		SoftAbove:  DefaultSoftAbove,
		logger:     logger,
	}
}

// Process loads the source image, classifies it into the stiff and soft
// material masks and writes each mask to dir once per resolution. Any
// failure aborts the run; files already written stay on disk.
func (p *Processor) Process(input, dir string) error {
	img, err := loadImage(input)
	if err != nil {
		return err
	}

	stiff, soft := Classify(img, p.StiffBelow, p.SoftAbove)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, m := range []*Mask{stiff, soft} {
		for _, d := range []DPI{p.Primary, p.Secondary} {
			if err := p.emit(m, d, filepath.Join(dir, outputName(i+1, d))); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Processor) emit(m *Mask, d DPI, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	ppm := d.PixelsPerMeter()
	if err := bmp.Encode(f, m, bmp.Resolution{X: ppm, Y: ppm}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	p.logger.Printf("saved %s at %s dpi\n", path, d)

	return nil
}

func outputName(material int, d DPI) string {
	return fmt.Sprintf("mat_%02d_%s.bmp", material, d)
}
