package pipeline

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miftools/mif-go/mif"
)

// writeTestDesign builds a one-layer, two-variant design on disk. The
// single 2x2 channel is fully inked (value 255), so composing it is a
// no-op over the fabric color.
func writeTestDesign(t *testing.T) string {
	t.Helper()

	buf := mif.NewBuffer(nil)
	c := mif.NewCursor(buf)

	h := mif.Header{
		Version: 4, VariantCount: 2, ActiveVariant: 1,
		DesignName: "Stripe", DesignFileName: "stripe.mif", DesignType: "woven",
	}
	require.NoError(t, h.Write(c))

	for _, name := range []string{"Day", "Night"} {
		v := mif.Variant{
			Version:       4,
			Name:          name,
			Description:   "test colorway",
			EntryDate:     "2005-03-01",
			ChannelCount1: 1,
			ChannelCount2: 1,
			Specs: []mif.ChannelSpec{
				{Name: "Ground", Visible: true, Opacity: 1,
					Color: mif.ColorRecord{Type: mif.ColorTypeRGB, Red: 0x4000, Green: 0x8000, Blue: 0xC000}},
			},
			Preview: []byte{0xCA, 0xFE},
			Simulation: &mif.Simulation{
				FabricName: "linen",
				Fabric:     mif.ColorRecord{Type: mif.ColorTypeRGB, Red: 0xFFFF, Green: 0xFFFF, Blue: 0xFFFF},
			},
		}
		require.NoError(t, v.Write(c))
	}

	var table mif.ImageTagTable
	require.NoError(t, table.Write(c))
	require.NoError(t, mif.WriteSection(c, 2, 2,
		[][]byte{{255, 255}, {255, 255}}, []uint8{mif.LineRaw, mif.LineRaw}))

	path := filepath.Join(t.TempDir(), "stripe.mif")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestOpen(t *testing.T) {
	path := writeTestDesign(t)

	info, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Stripe", info.DesignName)
	assert.Equal(t, 4, info.Version)
	assert.Equal(t, 2, info.VariantCount)
	assert.Equal(t, 1, info.ActiveVariant)
	assert.Equal(t, 1, info.LayerCount)
}

func TestListVariants(t *testing.T) {
	path := writeTestDesign(t)

	infos, err := ListVariants(path)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 0, infos[0].Index)
	assert.Equal(t, "Day", infos[0].Name)
	assert.Equal(t, "Night", infos[1].Name)
	assert.Equal(t, 1, infos[0].ChannelCount)
	assert.Equal(t, []byte{0xCA, 0xFE}, infos[0].Preview)
}

func TestRenderProducesFabricColoredPNG(t *testing.T) {
	path := writeTestDesign(t)

	data, err := Render(path, 0, 0, 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	// fully inked channel means blend 0 everywhere: pure white fabric
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			assert.Equal(t, uint32(0xFFFF), r)
			assert.Equal(t, uint32(0xFFFF), g)
			assert.Equal(t, uint32(0xFFFF), b)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	path := writeTestDesign(t)

	a, err := Render(path, 0, 1, 1)
	require.NoError(t, err)
	b, err := Render(path, 0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectVariant(t *testing.T) {
	path := writeTestDesign(t)

	data, err := SelectVariant(path, 1)
	require.NoError(t, err)
	direct, err := Render(path, 0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, direct, data)
}

func TestRenderIndexOutOfRange(t *testing.T) {
	path := writeTestDesign(t)

	_, err := Render(path, 3, 0, 1)
	require.ErrorIs(t, err, mif.ErrIndexOutOfRange)
	_, err = Render(path, 0, 9, 1)
	require.ErrorIs(t, err, mif.ErrIndexOutOfRange)
	_, err = SelectVariant(path, -1)
	require.ErrorIs(t, err, mif.ErrIndexOutOfRange)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mif"))
	require.Error(t, err)
}
