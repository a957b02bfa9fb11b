package mif

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var le = binary.LittleEndian

// Store is the seekable byte store a Cursor operates on. *os.File and
// *Buffer both satisfy it. A Cursor owns exclusive access to its store;
// sharing one across goroutines needs external synchronization.
type Store interface {
	io.Reader
	io.Writer
	io.Seeker
}

// Cursor is a typed little-endian reader/writer with position tracking.
// All multi-byte integers are little-endian; there is no alignment.
type Cursor struct {
	s       Store
	scratch [8]byte
}

// NewCursor wraps a store in a cursor positioned wherever the store is.
func NewCursor(s Store) *Cursor {
	return &Cursor{s: s}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() (int64, error) {
	pos, err := c.s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("failed to query position: %w", err)
	}
	return pos, nil
}

// Seek moves to an absolute byte offset.
func (c *Cursor) Seek(offset int64) error {
	if _, err := c.s.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to %d: %w", offset, err)
	}
	return nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int64) error {
	if _, err := c.s.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to skip %d bytes: %w", n, err)
	}
	return nil
}

// Size returns the total store size without disturbing the position.
func (c *Cursor) Size() (int64, error) {
	pos, err := c.Pos()
	if err != nil {
		return 0, err
	}
	end, err := c.s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to seek to end: %w", err)
	}
	if err := c.Seek(pos); err != nil {
		return 0, err
	}
	return end, nil
}

func (c *Cursor) read(n int) ([]byte, error) {
	buf := c.scratch[:n]
	if _, err := io.ReadFull(c.s, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("short read: %w", err)
	}
	return buf, nil
}

// ReadBytes reads exactly n raw bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.s, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("short read of %d bytes: %w", n, err)
	}
	return buf, nil
}

func (c *Cursor) ReadU8() (uint8, error) {
	buf, err := c.read(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Cursor) ReadU16() (uint16, error) {
	buf, err := c.read(2)
	if err != nil {
		return 0, err
	}
	return le.Uint16(buf), nil
}

func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Cursor) ReadU32() (uint32, error) {
	buf, err := c.read(4)
	if err != nil {
		return 0, err
	}
	return le.Uint32(buf), nil
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	return math.Float32frombits(v), err
}

// ReadBool reads a single byte; any nonzero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	v, err := c.ReadU8()
	return v != 0, err
}

// ReadTag reads a fixed-width ASCII tag and trims trailing NULs.
func (c *Cursor) ReadTag(width int) (string, error) {
	buf, err := c.ReadBytes(width)
	if err != nil {
		return "", err
	}
	return string(trimTrailingNULs(buf)), nil
}

// ReadString reads a 16-bit length prefix followed by raw bytes. The
// bytes decode as UTF-8 when valid, otherwise byte-by-byte through the
// legacy code page.
func (c *Cursor) ReadString() (string, error) {
	n, err := c.ReadU16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	buf, err := c.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	buf = trimTrailingNULs(buf)
	if utf8.Valid(buf) {
		return string(buf), nil
	}
	return decodeLegacy(buf), nil
}

func (c *Cursor) write(buf []byte) error {
	if _, err := c.s.Write(buf); err != nil {
		return fmt.Errorf("short write: %w", err)
	}
	return nil
}

// WriteBytes writes raw bytes verbatim.
func (c *Cursor) WriteBytes(buf []byte) error {
	return c.write(buf)
}

func (c *Cursor) WriteU8(v uint8) error {
	c.scratch[0] = v
	return c.write(c.scratch[:1])
}

func (c *Cursor) WriteI8(v int8) error {
	return c.WriteU8(uint8(v))
}

func (c *Cursor) WriteU16(v uint16) error {
	le.PutUint16(c.scratch[:2], v)
	return c.write(c.scratch[:2])
}

func (c *Cursor) WriteI16(v int16) error {
	return c.WriteU16(uint16(v))
}

func (c *Cursor) WriteU32(v uint32) error {
	le.PutUint32(c.scratch[:4], v)
	return c.write(c.scratch[:4])
}

func (c *Cursor) WriteI32(v int32) error {
	return c.WriteU32(uint32(v))
}

func (c *Cursor) WriteF32(v float32) error {
	return c.WriteU32(math.Float32bits(v))
}

func (c *Cursor) WriteBool(v bool) error {
	if v {
		return c.WriteU8(1)
	}
	return c.WriteU8(0)
}

// WriteTag writes a fixed-width ASCII tag, NUL padded. Tags longer than
// the width are truncated.
func (c *Cursor) WriteTag(tag string, width int) error {
	buf := make([]byte, width)
	copy(buf, tag)
	return c.write(buf)
}

// WriteString writes a 16-bit length prefix followed by the raw bytes.
func (c *Cursor) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string of %d bytes exceeds length prefix", len(s))
	}
	if err := c.WriteU16(uint16(len(s))); err != nil {
		return err
	}
	return c.write([]byte(s))
}

func trimTrailingNULs(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

// decodeLegacy decodes bytes written by the original Windows authoring
// tool through its code page. Bytes the code page leaves undefined pass
// through as their raw numeric value. This is lossy compatibility
// behavior, not a general charset decoder.
func decodeLegacy(b []byte) string {
	runes := make([]rune, len(b))
	for i, v := range b {
		r := charmap.Windows1254.DecodeByte(v)
		if r == utf8.RuneError {
			r = rune(v)
		}
		runes[i] = r
	}
	return string(runes)
}
