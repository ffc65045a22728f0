package matprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDPI(t *testing.T) {
	tables := []struct {
		in  string
		out string
		ppm int32
	}{
		{"63.5", "63.5", 2500},
		{"127/2", "63.5", 2500},
		{"31.75", "31.75", 1250},
		{"635/20", "31.75", 1250},
		{"300", "300", 11811},
		{"96", "96", 3780},
		{"72", "72", 2835},
	}

	for _, table := range tables {
		d, err := ParseDPI(table.in)
		require.NoError(t, err, table.in)
		assert.Equal(t, table.out, d.String(), table.in)
		assert.Equal(t, table.ppm, d.PixelsPerMeter(), table.in)
	}
}

func TestParseDPIInvalid(t *testing.T) {
	for _, s := range []string{"", "abc", "0", "-63.5", "0/2", "-127/2", "1/0"} {
		_, err := ParseDPI(s)
		assert.Error(t, err, s)
	}
}

func TestDefaultDPI(t *testing.T) {
	assert.Equal(t, "63.5", DefaultPrimaryDPI.String())
	assert.Equal(t, "31.75", DefaultSecondaryDPI.String())
}
