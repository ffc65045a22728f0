/*
Package bmp implements a 1-bit Windows bitmap encoder and decoder.

The file is written as a 14 byte file header, a 40 byte BITMAPINFOHEADER, a
two color palette of 4 byte BGRX entries and finally the pixel rows. Rows
are stored bottom-up and each row is padded to a multiple of four bytes,
with pixels packed eight to a byte starting at the most significant bit.
The info header carries the horizontal and vertical resolution in pixels
per meter. There is no compression.
*/
package bmp

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	numColors     = 2
	paletteLen    = numColors * 4
	dataOffset    = fileHeaderLen + infoHeaderLen + paletteLen
)

var magic = [2]byte{'B', 'M'}

// Field layout per the BITMAPFILEHEADER and BITMAPINFOHEADER structures,
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type fileHeader struct {
	Type      [2]byte
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

type infoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Resolution is the pixel density metadata embedded in a bitmap, expressed
// in pixels per meter for each axis.
type Resolution struct {
	X, Y int32
}

// Rows are padded to 32-bit boundaries
func rowStride(width int) int {
	return (width + 31) / 32 * 4
}
