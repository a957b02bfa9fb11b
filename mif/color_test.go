package mif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorRecordRoundTrip(t *testing.T) {
	rec := ColorRecord{
		Red: 0x1234, Green: 0x5678, Blue: 0x9ABC,
		L: 0xFFFF, A: 0x8000, B: 0x8000,
		Type:          ColorTypeRGB,
		Name:          "Denim",
		Description:   "indigo warp",
		ExtraDataSize: 12,
	}

	buf := NewBuffer(nil)
	c := NewCursor(buf)
	require.NoError(t, rec.Write(c))
	require.NoError(t, c.Seek(0))

	var got ColorRecord
	require.NoError(t, got.Read(c))
	assert.Equal(t, rec, got)
}

func TestColorRecordTagMismatch(t *testing.T) {
	buf := NewBuffer([]byte{'X', 'X', 'X', 'X', 0, 0, 0, 0})
	var rec ColorRecord
	err := rec.Read(NewCursor(buf))
	require.ErrorIs(t, err, ErrTagMismatch)
}

func TestDisplayRGBDirect(t *testing.T) {
	rec := ColorRecord{Type: ColorTypeRGB, Red: 0xFF00, Green: 0xFF00, Blue: 0xFF00}
	r, g, b := rec.DisplayRGB()
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	rec = ColorRecord{Type: ColorTypeRGB, Red: 0x1200, Green: 0x3400, Blue: 0x5600}
	r, g, b = rec.DisplayRGB()
	assert.Equal(t, [3]uint8{0x12, 0x34, 0x56}, [3]uint8{r, g, b})
}

func TestDisplayRGBLab(t *testing.T) {
	// full lightness, neutral a/b lands near white
	rec := ColorRecord{Type: ColorTypeLab, L: 0xFFFF, A: 0x8000, B: 0x8000}
	r, g, b := rec.DisplayRGB()
	assert.GreaterOrEqual(t, r, uint8(254))
	assert.GreaterOrEqual(t, g, uint8(254))
	assert.GreaterOrEqual(t, b, uint8(254))

	// zero lightness, neutral a/b lands near black
	rec = ColorRecord{Type: ColorTypeLab, L: 0, A: 0x8000, B: 0x8000}
	r, g, b = rec.DisplayRGB()
	assert.LessOrEqual(t, r, uint8(2))
	assert.LessOrEqual(t, g, uint8(2))
	assert.LessOrEqual(t, b, uint8(2))
}

func TestDisplayRGBUnknownTypeIsBlack(t *testing.T) {
	rec := ColorRecord{Type: 7, Red: 0xFFFF, L: 0xFFFF}
	r, g, b := rec.DisplayRGB()
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}
