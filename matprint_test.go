package matprint

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/matprint/matprint/bmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDPI(t *testing.T, s string) DPI {
	t.Helper()
	d, err := ParseDPI(s)
	require.NoError(t, err)
	return d
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func readOutputs(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	files := make(map[string][]byte, len(entries))
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = b
	}
	return files
}

func TestProcess(t *testing.T) {
	// Left column black, right column white
	input := writePNG(t, grayImage(2, 2, []uint8{0, 255, 0, 255}))
	dir := filepath.Join(t.TempDir(), "out")

	p := New(mustDPI(t, "63.5"), mustDPI(t, "31.75"), discardLogger())
	require.NoError(t, p.Process(input, dir))

	files := readOutputs(t, dir)
	require.Len(t, files, 4)

	tables := []struct {
		name string
		on   []bool
		ppm  int32
	}{
		{"mat_01_63.5.bmp", []bool{true, false, true, false}, 2500},
		{"mat_01_31.75.bmp", []bool{true, false, true, false}, 1250},
		{"mat_02_63.5.bmp", []bool{false, true, false, true}, 2500},
		{"mat_02_31.75.bmp", []bool{false, true, false, true}, 1250},
	}

	for _, table := range tables {
		raw, ok := files[table.name]
		require.True(t, ok, table.name)

		img, err := bmp.Decode(bytes.NewReader(raw))
		require.NoError(t, err)

		pm := img.(*image.Paletted)
		require.Equal(t, image.Rect(0, 0, 2, 2), pm.Bounds())

		for i, on := range table.on {
			x, y := i%2, i/2
			assert.Equal(t, on, pm.ColorIndexAt(x, y) == 1, "%s pixel (%d, %d)", table.name, x, y)
		}

		res, err := bmp.DecodeResolution(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, table.ppm, res.X, table.name)
		assert.Equal(t, table.ppm, res.Y, table.name)
	}
}

func TestProcessIdempotent(t *testing.T) {
	input := writePNG(t, grayImage(4, 4, []uint8{
		0, 0, 128, 255,
		0, 0, 128, 255,
		30, 40, 200, 230,
		30, 40, 200, 230,
	}))
	dir := filepath.Join(t.TempDir(), "out")

	p := New(DefaultPrimaryDPI, DefaultSecondaryDPI, discardLogger())

	require.NoError(t, p.Process(input, dir))
	first := readOutputs(t, dir)
	require.Len(t, first, 4)

	require.NoError(t, p.Process(input, dir))
	assert.Equal(t, first, readOutputs(t, dir))
}

func TestProcessFractionalFilenames(t *testing.T) {
	input := writePNG(t, grayImage(1, 1, []uint8{0}))
	dir := filepath.Join(t.TempDir(), "out")

	p := New(mustDPI(t, "300"), mustDPI(t, "635/20"), discardLogger())
	require.NoError(t, p.Process(input, dir))

	for _, name := range []string{"mat_01_300.bmp", "mat_01_31.75.bmp", "mat_02_300.bmp", "mat_02_31.75.bmp"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestProcessMissingInput(t *testing.T) {
	tmp := t.TempDir()

	p := New(DefaultPrimaryDPI, DefaultSecondaryDPI, discardLogger())

	err := p.Process(filepath.Join(tmp, "nonexistent.png"), filepath.Join(tmp, "out"))
	assert.Error(t, err)
}

func TestProcessUndecodable(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "garbage.png")
	require.NoError(t, os.WriteFile(input, []byte("this is not an image"), 0644))

	out := filepath.Join(tmp, "out")
	p := New(DefaultPrimaryDPI, DefaultSecondaryDPI, discardLogger())

	require.Error(t, p.Process(input, out))

	// Nothing should have been written
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSVG(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg" width="8" height="8" viewBox="0 0 8 8">` +
		`<rect x="0" y="0" width="8" height="8" fill="#000000"/></svg>`

	path := filepath.Join(t.TempDir(), "src.svg")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	img, err := loadImage(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	// Interior pixels are fully covered by the rect
	assert.Less(t, img.GrayAt(4, 4).Y, DefaultStiffBelow)
}

func TestGrayscaleTransparent(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{})
	src.SetRGBA(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	img := grayscale(src)
	assert.EqualValues(t, 255, img.GrayAt(0, 0).Y)
	assert.EqualValues(t, 255, img.GrayAt(1, 0).Y)
}
