package mif

import "fmt"

// ChannelSpec binds a named separation to its display color within one
// variant.
type ChannelSpec struct {
	Name    string
	Visible bool
	Opacity float32
	Color   ColorRecord
}

// Simulation is the fabric simulation properties block carried by
// variant revisions 2 and later.
type Simulation struct {
	Name       string
	FabricName string
	Fabric     ColorRecord
	Linear     [3]int32
	Flags      [2]int32
	Reserved   [3][12]byte
	DataSize   int32
}

// Variant is one named colorway of a design.
type Variant struct {
	Version     int
	Name        string
	Description string
	EntryDate   string

	// Versions 1 through 3 repeat the design identity per variant.
	DesignName string
	DesignType string

	// Version 1 only.
	PrintType   string
	FactoryName string

	ChannelCount1 int16
	ChannelCount2 int16

	Specs      []ChannelSpec
	Preview    []byte
	Simulation *Simulation
	Parameters []string
}

// Read parses a complete variant block: the versioned descriptor, the
// channel specs, the preview blob, and the revision-dependent trailers.
func (v *Variant) Read(c *Cursor) error {
	if err := v.readDescriptor(c); err != nil {
		return err
	}
	if v.ChannelCount1 < 0 {
		return fmt.Errorf("%w: channel count %d", ErrCorruptData, v.ChannelCount1)
	}

	v.Specs = make([]ChannelSpec, v.ChannelCount1)
	for i := range v.Specs {
		s := &v.Specs[i]
		var err error
		if s.Name, err = c.ReadString(); err != nil {
			return err
		}
		if s.Visible, err = c.ReadBool(); err != nil {
			return err
		}
		if s.Opacity, err = c.ReadF32(); err != nil {
			return err
		}
		if err = s.Color.Read(c); err != nil {
			return err
		}
	}

	previewSize, err := c.ReadI32()
	if err != nil {
		return err
	}
	if previewSize < 0 {
		return fmt.Errorf("%w: preview size %d", ErrCorruptData, previewSize)
	}
	if previewSize > 0 {
		if v.Preview, err = c.ReadBytes(int(previewSize)); err != nil {
			return err
		}
	}

	if v.Version > 1 {
		v.Simulation = &Simulation{}
		if err := v.Simulation.Read(c); err != nil {
			return err
		}
	}

	if v.Version == 4 {
		count, err := c.ReadU16()
		if err != nil {
			return err
		}
		v.Parameters = make([]string, count)
		for i := range v.Parameters {
			if v.Parameters[i], err = c.ReadString(); err != nil {
				return err
			}
		}
	}
	return nil
}

// readDescriptor consumes the versioned metadata fields up to and
// including the two channel counts. The legacy revisions put the
// description before the name.
func (v *Variant) readDescriptor(c *Cursor) error {
	tag, err := c.ReadTag(TagSize)
	if err != nil {
		return err
	}
	version, ok := variantVersions[tag]
	if !ok {
		return fmt.Errorf("%w: variant tag %q", ErrUnsupportedVersion, tag)
	}
	v.Version = version

	if version < 4 {
		if v.Description, err = c.ReadString(); err != nil {
			return err
		}
		if v.Name, err = c.ReadString(); err != nil {
			return err
		}
		if v.EntryDate, err = c.ReadString(); err != nil {
			return err
		}
		if v.DesignName, err = c.ReadString(); err != nil {
			return err
		}
		if v.DesignType, err = c.ReadString(); err != nil {
			return err
		}
	} else {
		if v.Name, err = c.ReadString(); err != nil {
			return err
		}
		if v.Description, err = c.ReadString(); err != nil {
			return err
		}
		if v.EntryDate, err = c.ReadString(); err != nil {
			return err
		}
	}

	if version == 1 {
		if v.PrintType, err = c.ReadString(); err != nil {
			return err
		}
		if v.FactoryName, err = c.ReadString(); err != nil {
			return err
		}
	}

	if v.ChannelCount1, err = c.ReadI16(); err != nil {
		return err
	}
	if v.ChannelCount2, err = c.ReadI16(); err != nil {
		return err
	}
	return nil
}

// Write serializes the variant block, mirroring Read.
func (v *Variant) Write(c *Cursor) error {
	tag, ok := variantTags[v.Version]
	if !ok {
		return fmt.Errorf("%w: variant version %d", ErrUnsupportedVersion, v.Version)
	}
	if err := c.WriteTag(tag, TagSize); err != nil {
		return err
	}

	var fields []string
	if v.Version < 4 {
		fields = []string{v.Description, v.Name, v.EntryDate, v.DesignName, v.DesignType}
	} else {
		fields = []string{v.Name, v.Description, v.EntryDate}
	}
	if v.Version == 1 {
		fields = append(fields, v.PrintType, v.FactoryName)
	}
	for _, s := range fields {
		if err := c.WriteString(s); err != nil {
			return err
		}
	}

	if err := c.WriteI16(int16(len(v.Specs))); err != nil {
		return err
	}
	if err := c.WriteI16(v.ChannelCount2); err != nil {
		return err
	}

	for i := range v.Specs {
		s := &v.Specs[i]
		if err := c.WriteString(s.Name); err != nil {
			return err
		}
		if err := c.WriteBool(s.Visible); err != nil {
			return err
		}
		if err := c.WriteF32(s.Opacity); err != nil {
			return err
		}
		if err := s.Color.Write(c); err != nil {
			return err
		}
	}

	if err := c.WriteI32(int32(len(v.Preview))); err != nil {
		return err
	}
	if err := c.WriteBytes(v.Preview); err != nil {
		return err
	}

	if v.Version > 1 {
		sim := v.Simulation
		if sim == nil {
			sim = &Simulation{}
		}
		if err := sim.Write(c); err != nil {
			return err
		}
	}

	if v.Version == 4 {
		if err := c.WriteU16(uint16(len(v.Parameters))); err != nil {
			return err
		}
		for _, p := range v.Parameters {
			if err := c.WriteString(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// FabricRGB returns the display color compositing starts from. Variants
// without a simulation block render against white fabric.
func (v *Variant) FabricRGB() (uint8, uint8, uint8) {
	if v.Simulation == nil {
		return 255, 255, 255
	}
	return v.Simulation.Fabric.DisplayRGB()
}

// Read parses a simulation properties block.
func (s *Simulation) Read(c *Cursor) error {
	tag, err := c.ReadTag(TagSize)
	if err != nil {
		return err
	}
	if tag != SimulationTag {
		return fmt.Errorf("%w: simulation tag %q", ErrTagMismatch, tag)
	}
	if s.Name, err = c.ReadString(); err != nil {
		return err
	}
	if s.FabricName, err = c.ReadString(); err != nil {
		return err
	}
	if err = s.Fabric.Read(c); err != nil {
		return err
	}
	for i := range s.Linear {
		if s.Linear[i], err = c.ReadI32(); err != nil {
			return err
		}
	}
	for i := range s.Flags {
		if s.Flags[i], err = c.ReadI32(); err != nil {
			return err
		}
	}
	for i := range s.Reserved {
		buf, err := c.ReadBytes(len(s.Reserved[i]))
		if err != nil {
			return err
		}
		copy(s.Reserved[i][:], buf)
	}
	s.DataSize, err = c.ReadI32()
	return err
}

// Write serializes a simulation properties block.
func (s *Simulation) Write(c *Cursor) error {
	if err := c.WriteTag(SimulationTag, TagSize); err != nil {
		return err
	}
	if err := c.WriteString(s.Name); err != nil {
		return err
	}
	if err := c.WriteString(s.FabricName); err != nil {
		return err
	}
	if err := s.Fabric.Write(c); err != nil {
		return err
	}
	for _, v := range s.Linear {
		if err := c.WriteI32(v); err != nil {
			return err
		}
	}
	for _, v := range s.Flags {
		if err := c.WriteI32(v); err != nil {
			return err
		}
	}
	for i := range s.Reserved {
		if err := c.WriteBytes(s.Reserved[i][:]); err != nil {
			return err
		}
	}
	return c.WriteI32(s.DataSize)
}
