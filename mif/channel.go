package mif

import (
	"fmt"
	"strings"
)

// Scanline compression flags
const (
	LineRaw    uint8 = 0
	LinePacked uint8 = 1
)

// ChannelSection is the lazy index over one channel bitmap: the
// scanline size and compression tables plus the absolute offset of
// each stored line. It owns no decoded pixels.
type ChannelSection struct {
	Width  int32
	Height int32

	LineSizes   []uint16
	Compression []uint8

	cursor      *Cursor
	lineOffsets []int64
}

// Read parses the section index at the current cursor position and
// seeks past the line data. Scanlines decode on demand through the
// same cursor.
func (s *ChannelSection) Read(c *Cursor) error {
	tag, err := c.ReadTag(TagSize)
	if err != nil {
		return err
	}
	if !strings.EqualFold(tag, ImageDataTag) {
		return fmt.Errorf("%w: channel section tag %q", ErrTagMismatch, tag)
	}
	if s.Width, err = c.ReadI32(); err != nil {
		return err
	}
	if s.Height, err = c.ReadI32(); err != nil {
		return err
	}
	dataSize, err := c.ReadI32()
	if err != nil {
		return err
	}
	if s.Width < 0 || s.Height < 0 || dataSize < 0 {
		return fmt.Errorf("%w: channel dimensions %dx%d, data size %d",
			ErrCorruptData, s.Width, s.Height, dataSize)
	}

	s.LineSizes = make([]uint16, s.Height)
	for i := range s.LineSizes {
		if s.LineSizes[i], err = c.ReadU16(); err != nil {
			return err
		}
	}
	s.Compression = make([]uint8, s.Height)
	for i := range s.Compression {
		if s.Compression[i], err = c.ReadU8(); err != nil {
			return err
		}
	}

	origin, err := c.Pos()
	if err != nil {
		return err
	}
	s.lineOffsets = make([]int64, s.Height)
	for i := range s.lineOffsets {
		s.lineOffsets[i] = origin
		origin += int64(s.LineSizes[i])
	}
	s.cursor = c
	return c.Skip(int64(dataSize))
}

// ReadLine decodes scanline n into one intensity byte per pixel.
func (s *ChannelSection) ReadLine(n int) ([]byte, error) {
	if n < 0 || n >= int(s.Height) {
		return nil, fmt.Errorf("%w: scanline %d of %d", ErrCorruptData, n, s.Height)
	}
	if err := s.cursor.Seek(s.lineOffsets[n]); err != nil {
		return nil, err
	}
	line, err := s.cursor.ReadBytes(int(s.LineSizes[n]))
	if err != nil {
		return nil, err
	}
	if s.Compression[n] == LinePacked {
		if line, err = Decompress(line); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", n, err)
		}
	}
	return line, nil
}

// ReadAll materializes the whole channel as a width*height row-major
// intensity plane.
func (s *ChannelSection) ReadAll() ([]byte, error) {
	plane := make([]byte, int(s.Width)*int(s.Height))
	for y := 0; y < int(s.Height); y++ {
		line, err := s.ReadLine(y)
		if err != nil {
			return nil, err
		}
		if len(line) != int(s.Width) {
			return nil, fmt.Errorf("%w: scanline %d decoded to %d bytes, want %d",
				ErrCorruptData, y, len(line), s.Width)
		}
		copy(plane[y*int(s.Width):], line)
	}
	return plane, nil
}

// WriteSection emits a channel section. Lines are written verbatim, so
// the compression flags must describe the encoding the caller already
// applied; new files persist raw lines.
func WriteSection(c *Cursor, width, height int32, lines [][]byte, compression []uint8) error {
	if int(height) != len(lines) || len(lines) != len(compression) {
		return fmt.Errorf("%w: %d lines, %d flags for height %d",
			ErrCorruptData, len(lines), len(compression), height)
	}
	if err := c.WriteTag(ImageDataTag, TagSize); err != nil {
		return err
	}
	if err := c.WriteI32(width); err != nil {
		return err
	}
	if err := c.WriteI32(height); err != nil {
		return err
	}
	var dataSize int32
	for _, line := range lines {
		dataSize += int32(len(line))
	}
	if err := c.WriteI32(dataSize); err != nil {
		return err
	}
	for _, line := range lines {
		if err := c.WriteU16(uint16(len(line))); err != nil {
			return err
		}
	}
	for _, f := range compression {
		if err := c.WriteU8(f); err != nil {
			return err
		}
	}
	for _, line := range lines {
		if err := c.WriteBytes(line); err != nil {
			return err
		}
	}
	return nil
}

// Channel is a fully materialized separation: a row-major intensity
// plane (0 no ink, 255 full ink) plus the display attributes its
// variant assigns.
type Channel struct {
	Width   int
	Height  int
	Data    []byte
	Name    string
	Visible bool
	Opacity float64
	Color   ColorRecord
}
