package mif

import "fmt"

// Header is the whole-design metadata record. Four on-disk revisions
// share one struct; Version selects the field layout.
type Header struct {
	Version       int
	VariantCount  int16
	ActiveVariant int16
	Flags         int16

	DesignName     string
	DesignFileName string
	DesignType     string

	Parameters []string

	// Password is left-filled with PasswordSize significant bytes and a
	// zero-padded tail. Versions 2 and 3 only.
	Password     [MaxPasswordSize]byte
	PasswordSize uint16

	RepeatMode   int16
	RepeatDir    int16
	RepeatOffset int32

	// Tags holds the header-context extension tags, opaque and in file
	// order. Never mutated after read.
	Tags []RawTag
}

// Read parses the header at the current cursor position. A successful
// recovery through the resync heuristic promotes Version to 4.
func (h *Header) Read(c *Cursor) error {
	tag, err := c.ReadTag(TagSize)
	if err != nil {
		return err
	}
	version, ok := headerVersions[tag]
	if !ok {
		return fmt.Errorf("%w: header tag %q", ErrUnsupportedVersion, tag)
	}
	h.Version = version

	if h.VariantCount, err = c.ReadI16(); err != nil {
		return err
	}
	if h.ActiveVariant, err = c.ReadI16(); err != nil {
		return err
	}
	if h.Flags, err = c.ReadI16(); err != nil {
		return err
	}

	if h.Version == 4 {
		return h.readBodyV4(c)
	}
	return h.readBodyLegacy(c)
}

// readBodyLegacy handles versions 1 through 3, plus headers promoted to
// version 4 by the resync heuristic.
func (h *Header) readBodyLegacy(c *Cursor) error {
	var err error
	if h.DesignName, err = c.ReadString(); err != nil {
		return err
	}
	if h.DesignFileName, err = c.ReadString(); err != nil {
		return err
	}
	if h.DesignType, err = c.ReadString(); err != nil {
		return err
	}

	count := int16(legacyParameterCount)
	if h.Version != 1 {
		if count, err = c.ReadI16(); err != nil {
			return err
		}
		if count < 1 || count > MaxParameters {
			// Resync heuristic: some producer emitted 254 extra bytes
			// here. The origin is unknown; preserved byte-for-byte, do
			// not "fix".
			if err = c.Skip(resyncSkip); err != nil {
				return err
			}
			if count, err = c.ReadI16(); err != nil {
				return err
			}
			if count < 1 || count > MaxParameters {
				return fmt.Errorf("%w: parameter count %d", ErrCorruptHeader, count)
			}
			debug("header resync recovered parameter count %d, promoting to version 4", count)
			h.Version = 4
		}
	}

	h.Parameters = make([]string, count)
	for i := range h.Parameters {
		if h.Parameters[i], err = c.ReadString(); err != nil {
			return err
		}
	}

	if h.Version != 4 {
		if h.PasswordSize, err = c.ReadU16(); err != nil {
			return err
		}
		if h.PasswordSize > MaxPasswordSize {
			return fmt.Errorf("%w: password length %d", ErrCorruptHeader, h.PasswordSize)
		}
		if h.PasswordSize > 0 {
			buf, err := c.ReadBytes(int(h.PasswordSize))
			if err != nil {
				return err
			}
			h.Password = [MaxPasswordSize]byte{}
			copy(h.Password[:], buf)
		}
	}

	if h.Version == 1 {
		return nil
	}

	if h.RepeatMode, err = c.ReadI16(); err != nil {
		return err
	}
	if h.RepeatDir, err = c.ReadI16(); err != nil {
		return err
	}
	if h.RepeatOffset, err = c.ReadI32(); err != nil {
		return err
	}

	if h.Version >= 3 {
		if h.Tags, err = readRawTags(c); err != nil {
			return err
		}
	}
	return nil
}

func (h *Header) readBodyV4(c *Cursor) error {
	var err error
	if h.DesignName, err = c.ReadString(); err != nil {
		return err
	}
	if h.DesignFileName, err = c.ReadString(); err != nil {
		return err
	}
	if h.DesignType, err = c.ReadString(); err != nil {
		return err
	}
	if err = c.Skip(reservedBlockSize); err != nil {
		return err
	}
	count, err := c.ReadI16()
	if err != nil {
		return err
	}
	if count < 0 || count > MaxParameters {
		return fmt.Errorf("%w: parameter count %d", ErrCorruptHeader, count)
	}
	h.Parameters = make([]string, count)
	for i := range h.Parameters {
		if h.Parameters[i], err = c.ReadString(); err != nil {
			return err
		}
	}
	h.Tags, err = readRawTags(c)
	return err
}

// Write serializes the header, mirroring the versioned read layout. A
// version 4 header always uses the version 4 body, including headers
// that were promoted during read.
func (h *Header) Write(c *Cursor) error {
	tag, ok := headerTags[h.Version]
	if !ok {
		return fmt.Errorf("%w: header version %d", ErrUnsupportedVersion, h.Version)
	}
	if err := c.WriteTag(tag, TagSize); err != nil {
		return err
	}
	if err := c.WriteI16(h.VariantCount); err != nil {
		return err
	}
	if err := c.WriteI16(h.ActiveVariant); err != nil {
		return err
	}
	if err := c.WriteI16(h.Flags); err != nil {
		return err
	}
	if h.Version == 4 {
		return h.writeBodyV4(c)
	}
	return h.writeBodyLegacy(c)
}

func (h *Header) writeBodyLegacy(c *Cursor) error {
	for _, s := range []string{h.DesignName, h.DesignFileName, h.DesignType} {
		if err := c.WriteString(s); err != nil {
			return err
		}
	}
	// the reader rejects counts outside this range, so refuse to emit them
	if h.Version == 1 {
		if len(h.Parameters) != legacyParameterCount {
			return fmt.Errorf("%w: version 1 carries %d parameters, want %d",
				ErrCorruptHeader, len(h.Parameters), legacyParameterCount)
		}
	} else {
		if len(h.Parameters) < 1 || len(h.Parameters) > MaxParameters {
			return fmt.Errorf("%w: parameter count %d", ErrCorruptHeader, len(h.Parameters))
		}
		if err := c.WriteI16(int16(len(h.Parameters))); err != nil {
			return err
		}
	}
	for _, p := range h.Parameters {
		if err := c.WriteString(p); err != nil {
			return err
		}
	}
	if err := c.WriteU16(h.PasswordSize); err != nil {
		return err
	}
	if h.PasswordSize > 0 {
		if err := c.WriteBytes(h.Password[:h.PasswordSize]); err != nil {
			return err
		}
	}
	if h.Version == 1 {
		return nil
	}
	if err := c.WriteI16(h.RepeatMode); err != nil {
		return err
	}
	if err := c.WriteI16(h.RepeatDir); err != nil {
		return err
	}
	if err := c.WriteI32(h.RepeatOffset); err != nil {
		return err
	}
	if h.Version >= 3 {
		return writeRawTags(c, h.Tags)
	}
	return nil
}

func (h *Header) writeBodyV4(c *Cursor) error {
	for _, s := range []string{h.DesignName, h.DesignFileName, h.DesignType} {
		if err := c.WriteString(s); err != nil {
			return err
		}
	}
	if err := c.WriteBytes(make([]byte, reservedBlockSize)); err != nil {
		return err
	}
	if err := c.WriteI16(int16(len(h.Parameters))); err != nil {
		return err
	}
	for _, p := range h.Parameters {
		if err := c.WriteString(p); err != nil {
			return err
		}
	}
	return writeRawTags(c, h.Tags)
}
