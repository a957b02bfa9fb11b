package mif

import (
	"fmt"
	"io"
	"os"
)

// Layer groups the channel bitmap sections stored for one printable
// layer, together with its image-system extension tags.
type Layer struct {
	Tags     ImageTagTable
	Sections []*ChannelSection
}

// File is a parsed design: header metadata, every variant block, and a
// lazy index over each layer's channel sections. The pixel data stays
// on disk until a channel is materialized.
type File struct {
	Header   *Header
	Variants []*Variant
	Layers   []*Layer

	cursor *Cursor
	store  Store
}

// Open opens a design file for reading.
func Open(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	d, err := Read(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

// Read parses a design from a byte store. The returned File keeps
// reading from the store when channels are materialized, so the store
// must stay open until Close.
func Read(s Store) (*File, error) {
	c := NewCursor(s)
	if err := c.Seek(0); err != nil {
		return nil, err
	}

	f := &File{cursor: c, store: s}

	f.Header = &Header{}
	if err := f.Header.Read(c); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if f.Header.VariantCount < 0 {
		return nil, fmt.Errorf("%w: variant count %d", ErrCorruptHeader, f.Header.VariantCount)
	}

	f.Variants = make([]*Variant, f.Header.VariantCount)
	for i := range f.Variants {
		v := &Variant{}
		if err := v.Read(c); err != nil {
			return nil, fmt.Errorf("failed to read variant %d: %w", i, err)
		}
		f.Variants[i] = v
	}

	if err := f.readLayers(); err != nil {
		return nil, fmt.Errorf("failed to read layers: %w", err)
	}
	return f, nil
}

// readLayers consumes the layer blocks that follow the variant records:
// each is an image-system tag table followed by one channel section per
// separation. Layers run to end of file.
func (f *File) readLayers() error {
	size, err := f.cursor.Size()
	if err != nil {
		return err
	}
	channels := 0
	if len(f.Variants) > 0 {
		channels = int(f.Variants[0].ChannelCount1)
	}
	for {
		pos, err := f.cursor.Pos()
		if err != nil {
			return err
		}
		if pos >= size {
			return nil
		}
		layer := &Layer{}
		if err := layer.Tags.Read(f.cursor); err != nil {
			return err
		}
		layer.Sections = make([]*ChannelSection, channels)
		for i := range layer.Sections {
			sec := &ChannelSection{}
			if err := sec.Read(f.cursor); err != nil {
				return fmt.Errorf("layer %d channel %d: %w", len(f.Layers), i, err)
			}
			layer.Sections[i] = sec
		}
		debug("parsed layer %d with %d channel sections", len(f.Layers), len(layer.Sections))
		f.Layers = append(f.Layers, layer)
	}
}

// Close releases the underlying store.
func (f *File) Close() error {
	if closer, ok := f.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Variant returns variant i.
func (f *File) Variant(i int) (*Variant, error) {
	if i < 0 || i >= len(f.Variants) {
		return nil, fmt.Errorf("%w: variant %d of %d", ErrIndexOutOfRange, i, len(f.Variants))
	}
	return f.Variants[i], nil
}

// LoadChannels materializes every channel of a layer, colored and
// flagged by the chosen variant. Channel order follows the variant's
// declared channel order, which is also the compositing order.
func (f *File) LoadChannels(layerIndex, variantIndex int) ([]*Channel, error) {
	if layerIndex < 0 || layerIndex >= len(f.Layers) {
		return nil, fmt.Errorf("%w: layer %d of %d", ErrIndexOutOfRange, layerIndex, len(f.Layers))
	}
	variant, err := f.Variant(variantIndex)
	if err != nil {
		return nil, err
	}
	layer := f.Layers[layerIndex]
	if len(layer.Sections) != len(variant.Specs) {
		return nil, fmt.Errorf("%w: layer has %d sections, variant %d specs",
			ErrCorruptData, len(layer.Sections), len(variant.Specs))
	}
	// every separation of a layer covers the same raster
	for i, sec := range layer.Sections {
		if sec.Width != layer.Sections[0].Width || sec.Height != layer.Sections[0].Height {
			return nil, fmt.Errorf("%w: channel %d is %dx%d, channel 0 is %dx%d",
				ErrCorruptData, i, sec.Width, sec.Height,
				layer.Sections[0].Width, layer.Sections[0].Height)
		}
	}

	channels := make([]*Channel, len(layer.Sections))
	for i, sec := range layer.Sections {
		plane, err := sec.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		spec := &variant.Specs[i]
		channels[i] = &Channel{
			Width:   int(sec.Width),
			Height:  int(sec.Height),
			Data:    plane,
			Name:    spec.Name,
			Visible: spec.Visible,
			Opacity: float64(spec.Opacity),
			Color:   spec.Color,
		}
	}
	return channels, nil
}
