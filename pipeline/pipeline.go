// Package pipeline exposes the boundary operations a host application
// invokes: open a design, enumerate its variants, and render composed
// previews as encoded rasters.
package pipeline

import (
	"fmt"

	"github.com/miftools/mif-go/compose"
	"github.com/miftools/mif-go/mif"
	"github.com/miftools/mif-go/output"
)

// Info is the design metadata returned by Open.
type Info struct {
	Version       int
	DesignName    string
	FileName      string
	DesignType    string
	VariantCount  int
	ActiveVariant int
	LayerCount    int
	Parameters    []string
}

// VariantInfo is one entry of a variant listing.
type VariantInfo struct {
	Index        int
	Name         string
	Description  string
	ChannelCount int
	Preview      []byte
}

// Open parses a design and returns its metadata.
func Open(path string) (*Info, error) {
	f, err := mif.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return &Info{
		Version:       f.Header.Version,
		DesignName:    f.Header.DesignName,
		FileName:      f.Header.DesignFileName,
		DesignType:    f.Header.DesignType,
		VariantCount:  len(f.Variants),
		ActiveVariant: int(f.Header.ActiveVariant),
		LayerCount:    len(f.Layers),
		Parameters:    f.Header.Parameters,
	}, nil
}

// ListVariants enumerates the colorways of a design in file order.
func ListVariants(path string) ([]VariantInfo, error) {
	f, err := mif.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	infos := make([]VariantInfo, len(f.Variants))
	for i, v := range f.Variants {
		infos[i] = VariantInfo{
			Index:        i,
			Name:         v.Name,
			Description:  v.Description,
			ChannelCount: int(v.ChannelCount1),
			Preview:      v.Preview,
		}
	}
	return infos, nil
}

// Render composes one layer of a design in the colors of one variant
// and returns the preview as PNG bytes.
func Render(path string, layerIndex, variantIndex, scale int) ([]byte, error) {
	f, err := mif.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	channels, err := f.LoadChannels(layerIndex, variantIndex)
	if err != nil {
		return nil, err
	}
	variant, err := f.Variant(variantIndex)
	if err != nil {
		return nil, err
	}
	img, err := compose.Compose(channels, variant, scale)
	if err != nil {
		return nil, fmt.Errorf("failed to compose: %w", err)
	}
	return output.EncodePNG(img)
}

// SelectVariant renders layer 0 of a design at full resolution in the
// colors of the chosen variant.
func SelectVariant(path string, variantIndex int) ([]byte, error) {
	return Render(path, 0, variantIndex, 1)
}
