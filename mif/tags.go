package mif

import "fmt"

// Extension tag tables: a run of (size, id, payload) records closed by a
// 32-bit zero size. The header keeps its tags opaque; the image system
// decodes a fixed vocabulary.

// RawTag is one opaque header-context extension tag.
type RawTag struct {
	ID   uint16
	Data []byte
}

// readRawTags parses a header-context tag table. Order is preserved.
func readRawTags(c *Cursor) ([]RawTag, error) {
	var tags []RawTag
	for {
		size, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return tags, nil
		}
		id, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		data, err := c.ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		tags = append(tags, RawTag{ID: id, Data: data})
	}
}

// writeRawTags emits each tag followed by the zero-size terminator.
func writeRawTags(c *Cursor, tags []RawTag) error {
	for _, t := range tags {
		if err := c.WriteU32(uint32(len(t.Data))); err != nil {
			return err
		}
		if err := c.WriteU16(t.ID); err != nil {
			return err
		}
		if err := c.WriteBytes(t.Data); err != nil {
			return err
		}
	}
	return c.WriteU32(0)
}

// RepeatTag describes how the design tiles when printed.
type RepeatTag struct {
	Mode   int16
	Dir    int16
	Offset int32
}

// HalftoneTag carries screening parameters.
type HalftoneTag struct {
	OutputResolution int32
	Enable           int16
}

// ChannelOffset is one per-channel registration shift.
type ChannelOffset struct {
	X, Y int16
}

// RenderingMethodTag selects a blend policy for the design.
type RenderingMethodTag struct {
	Method int32
}

// ImageTagTable is the decoded image-system extension tag table. Every
// tag is optional; on-disk order is not significant.
type ImageTagTable struct {
	Repeat          *RepeatTag
	Halftone        *HalftoneTag
	ChannelOffsets  []ChannelOffset
	RenderingMethod *RenderingMethodTag
}

// Read parses an image-system tag table.
//
// An unrecognized id resets the whole table and stops parsing without
// reporting an error. The original reader shipped with this behavior
// and files in the field depend on it, so it is preserved rather than
// surfaced as a parse failure.
func (t *ImageTagTable) Read(c *Cursor) error {
	*t = ImageTagTable{}
	for {
		size, err := c.ReadU32()
		if err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		id, err := c.ReadU16()
		if err != nil {
			return err
		}
		switch id {
		case TagIDRepeat:
			r := &RepeatTag{}
			if r.Mode, err = c.ReadI16(); err != nil {
				return err
			}
			if r.Dir, err = c.ReadI16(); err != nil {
				return err
			}
			if r.Offset, err = c.ReadI32(); err != nil {
				return err
			}
			t.Repeat = r
		case TagIDHalftone:
			h := &HalftoneTag{}
			if h.OutputResolution, err = c.ReadI32(); err != nil {
				return err
			}
			if h.Enable, err = c.ReadI16(); err != nil {
				return err
			}
			t.Halftone = h
		case TagIDChannelOffsets:
			count, err := c.ReadI16()
			if err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("%w: negative channel offset count %d", ErrCorruptData, count)
			}
			offsets := make([]ChannelOffset, count)
			for i := range offsets {
				if offsets[i].X, err = c.ReadI16(); err != nil {
					return err
				}
				if offsets[i].Y, err = c.ReadI16(); err != nil {
					return err
				}
			}
			t.ChannelOffsets = offsets
		case TagIDRenderingMethod:
			m := &RenderingMethodTag{}
			if m.Method, err = c.ReadI32(); err != nil {
				return err
			}
			t.RenderingMethod = m
		default:
			*t = ImageTagTable{}
			return nil
		}
	}
}

// Write emits every present tag with its known payload size, then the
// zero-size terminator.
func (t *ImageTagTable) Write(c *Cursor) error {
	if t.Repeat != nil {
		if err := c.WriteU32(8); err != nil {
			return err
		}
		if err := c.WriteU16(TagIDRepeat); err != nil {
			return err
		}
		if err := c.WriteI16(t.Repeat.Mode); err != nil {
			return err
		}
		if err := c.WriteI16(t.Repeat.Dir); err != nil {
			return err
		}
		if err := c.WriteI32(t.Repeat.Offset); err != nil {
			return err
		}
	}
	if t.Halftone != nil {
		if err := c.WriteU32(6); err != nil {
			return err
		}
		if err := c.WriteU16(TagIDHalftone); err != nil {
			return err
		}
		if err := c.WriteI32(t.Halftone.OutputResolution); err != nil {
			return err
		}
		if err := c.WriteI16(t.Halftone.Enable); err != nil {
			return err
		}
	}
	if t.ChannelOffsets != nil {
		size := uint32(2 + 4*len(t.ChannelOffsets))
		if err := c.WriteU32(size); err != nil {
			return err
		}
		if err := c.WriteU16(TagIDChannelOffsets); err != nil {
			return err
		}
		if len(t.ChannelOffsets) > 0x7fff {
			return fmt.Errorf("channel offset count %d exceeds int16", len(t.ChannelOffsets))
		}
		if err := c.WriteI16(int16(len(t.ChannelOffsets))); err != nil {
			return err
		}
		for _, o := range t.ChannelOffsets {
			if err := c.WriteI16(o.X); err != nil {
				return err
			}
			if err := c.WriteI16(o.Y); err != nil {
				return err
			}
		}
	}
	if t.RenderingMethod != nil {
		if err := c.WriteU32(4); err != nil {
			return err
		}
		if err := c.WriteU16(TagIDRenderingMethod); err != nil {
			return err
		}
		if err := c.WriteI32(t.RenderingMethod.Method); err != nil {
			return err
		}
	}
	return c.WriteU32(0)
}
