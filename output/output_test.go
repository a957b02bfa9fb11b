package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miftools/mif-go/mif"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 31), G: uint8(y * 63), B: 200, A: 255})
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(testImage())
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
	assert.Equal(t, 4, decoded.Bounds().Dy())
}

func TestEncodeJPEGQualityDefault(t *testing.T) {
	data, err := EncodeJPEG(testImage(), JPEGOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestEncodeQOI(t *testing.T) {
	data, err := EncodeQOI(testImage())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestWriteImageByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.jpg", "out.qoi"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteImage(testImage(), path, 90))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	err := WriteImage(testImage(), filepath.Join(dir, "out.bmp"), 90)
	require.Error(t, err)
}

func TestMaskRoundTrip(t *testing.T) {
	ch := &mif.Channel{
		Width: 16, Height: 4,
		Data: bytes.Repeat([]byte{0, 64, 128, 255}, 16),
		Name: "Ground",
	}
	data, err := EncodeMask(ch)
	require.NoError(t, err)

	got, err := DecodeMask(data)
	require.NoError(t, err)
	assert.Equal(t, ch.Width, got.Width)
	assert.Equal(t, ch.Height, got.Height)
	assert.Equal(t, ch.Data, got.Data)
}

func TestDecodeMaskRejectsGarbage(t *testing.T) {
	_, err := DecodeMask([]byte("not a mask"))
	require.Error(t, err)
}

func TestWriteMasks(t *testing.T) {
	dir := t.TempDir()
	channels := []*mif.Channel{
		{Width: 2, Height: 2, Data: []byte{1, 2, 3, 4}, Name: "Ground/Main"},
		{Width: 2, Height: 2, Data: []byte{5, 6, 7, 8}, Name: ""},
	}
	require.NoError(t, WriteMasks(channels, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "00-Ground_Main.mask.zst", entries[0].Name())
	assert.Equal(t, "01-channel.mask.zst", entries[1].Name())
}
