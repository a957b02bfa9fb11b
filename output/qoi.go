package output

import (
	"bytes"
	"image"

	"github.com/xfmoulet/qoi"
)

// EncodeQOI encodes a composed raster as QOI bytes. QOI keeps the flat
// separation areas of textile previews small without JPEG artifacts.
func EncodeQOI(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := qoi.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
