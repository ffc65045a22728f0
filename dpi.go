package matprint

import (
	"fmt"
	"math/big"
	"strings"
)

// Default output resolutions, 63.5 and 31.75 dots per inch.
var (
	DefaultPrimaryDPI   = DPI{rat: big.NewRat(127, 2)}
	DefaultSecondaryDPI = DPI{rat: big.NewRat(127, 4)}
)

// ppm = dpi / 0.0254
var pixelsPerMeterPerInch = big.NewRat(5000, 127)

// DPI is an exact dots-per-inch resolution value.
type DPI struct {
	rat *big.Rat
}

// ParseDPI parses a positive resolution value given either as a decimal
// such as "63.5" or as a fraction such as "127/2".
func ParseDPI(s string) (DPI, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return DPI{}, fmt.Errorf("invalid DPI value %q", s)
	}
	if r.Sign() <= 0 {
		return DPI{}, fmt.Errorf("DPI must be positive, got %q", s)
	}
	return DPI{rat: r}, nil
}

// PixelsPerMeter converts the resolution to the pixels-per-meter unit used
// by bitmap metadata, rounded to the nearest integer.
func (d DPI) PixelsPerMeter() int32 {
	ppm := new(big.Rat).Mul(d.rat, pixelsPerMeterPerInch)

	// Round half up: floor((2n + d) / 2d)
	n := new(big.Int).Lsh(ppm.Num(), 1)
	n.Add(n, ppm.Denom())
	n.Quo(n, new(big.Int).Lsh(ppm.Denom(), 1))

	return int32(n.Int64())
}

// String renders the resolution as a decimal with at most two places and no
// trailing zeros, the form used in output filenames.
func (d DPI) String() string {
	s := strings.TrimRight(d.rat.FloatString(2), "0")
	return strings.TrimRight(s, ".")
}
