package mif

import "strings"

// MIF format constants
const (
	// Fixed section tags are 8 bytes, NUL padded
	TagSize = 8

	// Header tags, one per on-disk format revision
	HeaderTagV1 = "MIFF001"
	HeaderTagV2 = "MIFF010"
	HeaderTagV3 = "MIFF020"
	HeaderTagV4 = "MIFF030"

	// Variant tags, one per variant record revision
	VariantTagV1 = "MIFV001"
	VariantTagV2 = "MIFV010"
	VariantTagV3 = "MIFV020"
	VariantTagV4 = "MIFV030"

	// Color record tag (4 bytes, no padding)
	ColorTag = "MIFC"

	// Channel bitmap section tag, matched case-insensitively
	ImageDataTag = "MIFIMAGE"

	// Simulation properties block tag
	SimulationTag = "MIFSIMPR"
)

// Image-system extension tag ids
const (
	TagIDRepeat          uint16 = 1
	TagIDHalftone        uint16 = 2
	TagIDChannelOffsets  uint16 = 3
	TagIDRenderingMethod uint16 = 4
)

// Structural limits
const (
	MaxParameters   = 20
	MaxPasswordSize = 100

	// Number of parameters implied by a version 1 header
	legacyParameterCount = 4

	// Bytes skipped by the header resync heuristic
	resyncSkip = 254

	// Reserved block between the type string and the parameter count in
	// version 4 headers
	reservedBlockSize = 256
)

// headerVersions maps header tags to format revisions.
var headerVersions = map[string]int{
	HeaderTagV1: 1,
	HeaderTagV2: 2,
	HeaderTagV3: 3,
	HeaderTagV4: 4,
}

// variantVersions maps variant tags to variant record revisions.
var variantVersions = map[string]int{
	VariantTagV1: 1,
	VariantTagV2: 2,
	VariantTagV3: 3,
	VariantTagV4: 4,
}

var headerTags = map[int]string{
	1: HeaderTagV1,
	2: HeaderTagV2,
	3: HeaderTagV3,
	4: HeaderTagV4,
}

var variantTags = map[int]string{
	1: VariantTagV1,
	2: VariantTagV2,
	3: VariantTagV3,
	4: VariantTagV4,
}

// processColorNames are the reserved process separation names. Invisible
// channels carrying one of these names are skipped during compositing.
var processColorNames = [3]string{"Cyan", "Magenta", "Yellow"}

// IsProcessColor reports whether name is a reserved process separation name.
func IsProcessColor(name string) bool {
	for _, p := range processColorNames {
		if strings.EqualFold(name, p) {
			return true
		}
	}
	return false
}
