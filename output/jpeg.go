package output

import (
	"bytes"
	"image"
	"image/jpeg"
)

// JPEGOptions holds JPEG output options.
type JPEGOptions struct {
	Quality int // 1-100, default 95
}

// EncodeJPEG encodes a composed raster as JPEG bytes.
func EncodeJPEG(img *image.RGBA, opts JPEGOptions) ([]byte, error) {
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 95
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
