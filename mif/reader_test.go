package mif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestDesign serializes a two-variant, one-layer design with two
// 4x2 channels.
func buildTestDesign(t *testing.T) []byte {
	t.Helper()

	buf := NewBuffer(nil)
	c := NewCursor(buf)

	h := Header{
		Version: 4, VariantCount: 2, ActiveVariant: 0,
		DesignName: "Paisley", DesignFileName: "paisley.mif", DesignType: "print",
		Parameters: []string{"warp"},
		Tags:       []RawTag{{ID: 1, Data: []byte{1, 0, 0, 0, 0, 0, 0, 0}}},
	}
	require.NoError(t, h.Write(c))

	for i, name := range []string{"Summer", "Winter"} {
		v := Variant{
			Version:       4,
			Name:          name,
			Description:   "colorway",
			EntryDate:     "2004-01-02",
			ChannelCount1: 2,
			ChannelCount2: 2,
			Specs: []ChannelSpec{
				{Name: "Ground", Visible: true, Opacity: 1,
					Color: ColorRecord{Type: ColorTypeRGB, Red: 0xFF00, Green: uint16(i) << 12}},
				{Name: "Motif", Visible: true, Opacity: 1,
					Color: ColorRecord{Type: ColorTypeRGB, Blue: 0xFF00}},
			},
			Preview: []byte{1, 2, 3},
			Simulation: &Simulation{
				FabricName: "cotton",
				Fabric:     ColorRecord{Type: ColorTypeRGB, Red: 0xFFFF, Green: 0xFFFF, Blue: 0xFFFF},
			},
		}
		require.NoError(t, v.Write(c))
	}

	table := ImageTagTable{Repeat: &RepeatTag{Mode: 1, Dir: 0, Offset: 4}}
	require.NoError(t, table.Write(c))

	// channel 0: fully inked, channel 1: empty
	require.NoError(t, WriteSection(c, 4, 2,
		[][]byte{{255, 255, 255, 255}, {255, 255, 255, 255}},
		[]uint8{LineRaw, LineRaw}))
	require.NoError(t, WriteSection(c, 4, 2,
		[][]byte{Compress([]byte{0, 0, 0, 0}), {0, 0, 0, 0}},
		[]uint8{LinePacked, LineRaw}))

	return buf.Bytes()
}

func TestReadDesign(t *testing.T) {
	f, err := Read(NewBuffer(buildTestDesign(t)))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 4, f.Header.Version)
	assert.Equal(t, "Paisley", f.Header.DesignName)
	require.Len(t, f.Variants, 2)
	assert.Equal(t, "Summer", f.Variants[0].Name)
	assert.Equal(t, "Winter", f.Variants[1].Name)
	require.Len(t, f.Layers, 1)
	require.Len(t, f.Layers[0].Sections, 2)
	require.NotNil(t, f.Layers[0].Tags.Repeat)
	assert.Equal(t, int32(4), f.Layers[0].Tags.Repeat.Offset)
}

func TestLoadChannels(t *testing.T) {
	f, err := Read(NewBuffer(buildTestDesign(t)))
	require.NoError(t, err)
	defer f.Close()

	channels, err := f.LoadChannels(0, 1)
	require.NoError(t, err)
	require.Len(t, channels, 2)

	ground := channels[0]
	assert.Equal(t, "Ground", ground.Name)
	assert.Equal(t, 4, ground.Width)
	assert.Equal(t, 2, ground.Height)
	assert.Equal(t, []byte{255, 255, 255, 255, 255, 255, 255, 255}, ground.Data)
	// the second variant tints the ground differently
	_, g, _ := ground.Color.DisplayRGB()
	assert.Equal(t, uint8(0x10), g)

	motif := channels[1]
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, motif.Data)
}

func TestLoadChannelsIndexOutOfRange(t *testing.T) {
	f, err := Read(NewBuffer(buildTestDesign(t)))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.LoadChannels(1, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = f.LoadChannels(0, 2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = f.Variant(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLoadChannelsMismatchedSections(t *testing.T) {
	buf := NewBuffer(nil)
	c := NewCursor(buf)

	h := Header{
		Version: 4, VariantCount: 1,
		DesignName: "Check", DesignFileName: "check.mif", DesignType: "print",
	}
	require.NoError(t, h.Write(c))

	v := Variant{
		Version: 4, Name: "Main", EntryDate: "2004-01-02",
		ChannelCount1: 2, ChannelCount2: 2,
		Specs: []ChannelSpec{
			{Name: "Ground", Visible: true, Opacity: 1, Color: ColorRecord{Type: ColorTypeRGB}},
			{Name: "Motif", Visible: true, Opacity: 1, Color: ColorRecord{Type: ColorTypeRGB}},
		},
		Simulation: &Simulation{
			Fabric: ColorRecord{Type: ColorTypeRGB, Red: 0xFFFF, Green: 0xFFFF, Blue: 0xFFFF},
		},
	}
	require.NoError(t, v.Write(c))

	var table ImageTagTable
	require.NoError(t, table.Write(c))
	// second section is smaller than the first
	require.NoError(t, WriteSection(c, 4, 2,
		[][]byte{{1, 1, 1, 1}, {1, 1, 1, 1}}, []uint8{LineRaw, LineRaw}))
	require.NoError(t, WriteSection(c, 2, 1,
		[][]byte{{2, 2}}, []uint8{LineRaw}))

	f, err := Read(NewBuffer(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.LoadChannels(0, 0)
	require.ErrorIs(t, err, ErrCorruptData)
}

func TestReadDesignTruncated(t *testing.T) {
	data := buildTestDesign(t)
	_, err := Read(NewBuffer(data[:len(data)-10]))
	require.Error(t, err)
}
