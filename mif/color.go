package mif

import "fmt"

// Color encodings. Anything else renders as black.
const (
	ColorTypeLab int32 = 0 // perceptual triple
	ColorTypeRGB int32 = 1 // direct 16-bit RGB
)

// ColorRecord is a single color entry. Both encodings store all six
// component fields; Type selects which triple DisplayRGB projects.
type ColorRecord struct {
	Red, Green, Blue uint16
	L, A, B          uint16
	Type             int32
	Name             string
	Description      string
	ExtraDataSize    int32
}

// Read parses a color record at the current cursor position.
func (r *ColorRecord) Read(c *Cursor) error {
	tag, err := c.ReadTag(len(ColorTag))
	if err != nil {
		return err
	}
	if tag != ColorTag {
		return fmt.Errorf("%w: color record tag %q", ErrTagMismatch, tag)
	}
	fields := []*uint16{&r.Red, &r.Green, &r.Blue, &r.L, &r.A, &r.B}
	for _, f := range fields {
		if *f, err = c.ReadU16(); err != nil {
			return err
		}
	}
	if r.Type, err = c.ReadI32(); err != nil {
		return err
	}
	if r.Name, err = c.ReadString(); err != nil {
		return err
	}
	if r.Description, err = c.ReadString(); err != nil {
		return err
	}
	if r.ExtraDataSize, err = c.ReadI32(); err != nil {
		return err
	}
	return nil
}

// Write emits the record in the same field order Read consumes.
func (r *ColorRecord) Write(c *Cursor) error {
	if err := c.WriteTag(ColorTag, len(ColorTag)); err != nil {
		return err
	}
	for _, v := range []uint16{r.Red, r.Green, r.Blue, r.L, r.A, r.B} {
		if err := c.WriteU16(v); err != nil {
			return err
		}
	}
	if err := c.WriteI32(r.Type); err != nil {
		return err
	}
	if err := c.WriteString(r.Name); err != nil {
		return err
	}
	if err := c.WriteString(r.Description); err != nil {
		return err
	}
	return c.WriteI32(r.ExtraDataSize)
}

// DisplayRGB projects the record onto an 8-bit display color.
//
// The Lab path is the approximate mapping the original viewer shipped
// with, not a colorimetric Lab to sRGB transform: the stored triple is
// scaled into 0..100 and mixed linearly. Changing it would change the
// rendered colors of existing files.
func (r *ColorRecord) DisplayRGB() (uint8, uint8, uint8) {
	switch r.Type {
	case ColorTypeRGB:
		return uint8(r.Red >> 8), uint8(r.Green >> 8), uint8(r.Blue >> 8)
	case ColorTypeLab:
		l := float64(r.L) / 655.35
		a := float64(r.A)/655.35 - 50
		b := float64(r.B)/655.35 - 50
		return clamp8(2.55 * (l + 0.75*a)),
			clamp8(2.55 * (l - 0.375*a - 0.25*b)),
			clamp8(2.55 * (l - 0.75*b))
	default:
		return 0, 0, 0
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
