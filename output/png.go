// Package output encodes composed preview rasters and exports decoded
// channel planes.
package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// EncodePNG encodes a composed raster as PNG bytes.
func EncodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteImage writes img to filename, choosing the encoder from the file
// extension: .png, .jpg/.jpeg, or .qoi.
func WriteImage(img *image.RGBA, filename string, jpegQuality int) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		data, err = EncodePNG(img)
	case ".jpg", ".jpeg":
		data, err = EncodeJPEG(img, JPEGOptions{Quality: jpegQuality})
	case ".qoi":
		data, err = EncodeQOI(img)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(filename))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
