package output

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/miftools/mif-go/mif"
)

// EncodeMask serializes one decoded separation as a zstd-compressed raw
// intensity plane behind a small header: "MIFMASK0", then width and
// height as little-endian uint32.
func EncodeMask(ch *mif.Channel) ([]byte, error) {
	header := make([]byte, 16)
	copy(header, "MIFMASK0")
	binary.LittleEndian.PutUint32(header[8:], uint32(ch.Width))
	binary.LittleEndian.PutUint32(header[12:], uint32(ch.Height))

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(ch.Data, header), nil
}

// DecodeMask reverses EncodeMask.
func DecodeMask(data []byte) (*mif.Channel, error) {
	if len(data) < 16 || string(data[:8]) != "MIFMASK0" {
		return nil, fmt.Errorf("not a mask dump")
	}
	width := int(binary.LittleEndian.Uint32(data[8:]))
	height := int(binary.LittleEndian.Uint32(data[12:]))

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	plane, err := dec.DecodeAll(data[16:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress mask: %w", err)
	}
	if len(plane) != width*height {
		return nil, fmt.Errorf("mask plane is %d bytes, want %d", len(plane), width*height)
	}
	return &mif.Channel{Width: width, Height: height, Data: plane}, nil
}

// WriteMasks dumps every channel into dir as <index>-<name>.mask.zst.
func WriteMasks(channels []*mif.Channel, dir string) error {
	for i, ch := range channels {
		data, err := EncodeMask(ch)
		if err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
		name := sanitizeName(ch.Name)
		if name == "" {
			name = "channel"
		}
		path := filepath.Join(dir, fmt.Sprintf("%02d-%s.mask.zst", i, name))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
	}
	return nil
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
