// Package compose reconstructs a full-color preview raster from a
// variant's decoded channels by layering them over the fabric color in
// subtractive CMY space.
package compose

import (
	"fmt"
	"image"

	"github.com/miftools/mif-go/mif"
)

// BlendMode selects the per-pixel blend algorithm.
type BlendMode int

const (
	// BlendNative is the shipped default.
	BlendNative BlendMode = iota
	// BlendAdditive is the alternate rendering policy.
	BlendAdditive
)

// Compose layers channels over the variant's fabric color using the
// native blend. Channels apply strictly in declared order: each blend
// reads the canvas state the previous channel left, so the order is
// semantically significant and channel application must not be
// parallelized.
func Compose(channels []*mif.Channel, variant *mif.Variant, scale int) (*image.RGBA, error) {
	return ComposeWithMode(channels, variant, scale, BlendNative)
}

// ComposeWithMode is Compose with an explicit blend mode.
func ComposeWithMode(channels []*mif.Channel, variant *mif.Variant, scale int, mode BlendMode) (*image.RGBA, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels to compose")
	}
	if scale < 1 {
		return nil, fmt.Errorf("invalid scale %d", scale)
	}

	width := channels[0].Width / scale
	height := channels[0].Height / scale
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scale %d exceeds channel dimensions %dx%d",
			scale, channels[0].Width, channels[0].Height)
	}
	// the canvas is sized from channel 0; every later channel samples
	// into its own plane at canvas coordinates
	for i, ch := range channels {
		if ch.Width != channels[0].Width || ch.Height != channels[0].Height {
			return nil, fmt.Errorf("%w: channel %d is %dx%d, canvas is %dx%d",
				mif.ErrCorruptData, i, ch.Width, ch.Height,
				channels[0].Width, channels[0].Height)
		}
		if len(ch.Data) < ch.Width*ch.Height {
			return nil, fmt.Errorf("%w: channel %d has %d bytes for %dx%d",
				mif.ErrCorruptData, i, len(ch.Data), ch.Width, ch.Height)
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	fr, fg, fb := variant.FabricRGB()
	for y := 0; y < height; y++ {
		row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4+0] = fr
			row[x*4+1] = fg
			row[x*4+2] = fb
			row[x*4+3] = 255
		}
	}

	for _, ch := range channels {
		// Invisible process separations are dropped; any other channel
		// blends regardless of its visibility flag.
		if !ch.Visible && mif.IsProcessColor(ch.Name) {
			continue
		}
		applyChannel(canvas, ch, scale, mode)
	}
	return canvas, nil
}

func applyChannel(canvas *image.RGBA, ch *mif.Channel, scale int, mode BlendMode) {
	cr, cg, cb := ch.Color.DisplayRGB()
	// channel color in subtractive CMY
	kc := 255 - float64(cr)
	km := 255 - float64(cg)
	ky := 255 - float64(cb)

	bounds := canvas.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			value := ch.Data[y*scale*ch.Width+x*scale]
			px := canvas.Pix[y*canvas.Stride+x*4 : y*canvas.Stride+x*4+3]
			if mode == BlendAdditive {
				additiveBlend(px, value, kc, km, ky, ch.Opacity)
			} else {
				nativeBlend(px, value, kc, km, ky, ch.Opacity)
			}
		}
	}
}

// nativeBlend mutates one canvas pixel in place.
//
// The dissolve term derives from the canvas red CMY component alone and
// drives all three output components. The asymmetry against
// additiveBlend is preserved from the original renderer; correcting it
// changes the shipped visual output.
func nativeBlend(px []uint8, value uint8, kc, km, ky, opacity float64) {
	c := 255 - float64(px[0])
	m := 255 - float64(px[1])
	y := 255 - float64(px[2])

	blend := float64(255 - int(value))
	scaledOpacity := opacity * blend / 128
	dissolve := blend * c / 255

	c = nativeComponent(c, dissolve, scaledOpacity, blend, kc)
	m = nativeComponent(m, dissolve, scaledOpacity, blend, km)
	y = nativeComponent(y, dissolve, scaledOpacity, blend, ky)

	// truncate, no defensive upper clamp: the formula keeps values in range
	px[0] = uint8(255 - c)
	px[1] = uint8(255 - m)
	px[2] = uint8(255 - y)
}

func nativeComponent(v, dissolve, scaledOpacity, blend, color float64) float64 {
	v = v * (255 - dissolve) / 255
	v = v * (255 - scaledOpacity) / 255
	v += (255 - v) * blend * color / (255 * 255)
	return v
}

// additiveBlend is the alternate policy: per-component dissolve from the
// matching canvas component, brighten by opacity, subtract the channel
// color, clamp at zero.
func additiveBlend(px []uint8, value uint8, kc, km, ky, chOpacity float64) {
	c := 255 - float64(px[0])
	m := 255 - float64(px[1])
	y := 255 - float64(px[2])

	blend := float64(255 - int(value))
	opacity := chOpacity * blend / 255

	c = additiveComponent(c, blend, opacity, kc)
	m = additiveComponent(m, blend, opacity, km)
	y = additiveComponent(y, blend, opacity, ky)

	px[0] = uint8(255 - c)
	px[1] = uint8(255 - m)
	px[2] = uint8(255 - y)
}

func additiveComponent(v, blend, opacity, color float64) float64 {
	dissolve := blend * v / 255
	v = v * (255 - dissolve) / 255
	v += (255 - v) * opacity / 128
	v -= color * blend / 255
	if v < 0 {
		v = 0
	}
	return v
}
