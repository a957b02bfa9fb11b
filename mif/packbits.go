package mif

import "fmt"

// PackBits scanline codec. Each control byte c is signed: c >= 0 copies
// the next c+1 bytes verbatim, c == -128 is a no-op, any other negative
// c repeats the following byte (-c)+1 times.

// Decompress expands one PackBits-encoded scanline.
func Decompress(src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src)*2)
	for i := 0; i < len(src); {
		c := int8(src[i])
		i++
		switch {
		case c >= 0:
			n := int(c) + 1
			if i+n > len(src) {
				return nil, fmt.Errorf("%w: literal run of %d bytes exceeds input", ErrCorruptData, n)
			}
			out = append(out, src[i:i+n]...)
			i += n
		case c == -128:
			// no-op control byte
		default:
			if i >= len(src) {
				return nil, fmt.Errorf("%w: repeat run missing its byte", ErrCorruptData)
			}
			n := -int(c) + 1
			b := src[i]
			i++
			for j := 0; j < n; j++ {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

// Compress produces a PackBits encoding of one scanline. New files are
// written with raw lines; this exists for symmetry and for exercising
// the decoder.
func Compress(src []byte) []byte {
	out := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		// measure the run of equal bytes starting here
		run := 1
		for i+run < len(src) && src[i+run] == src[i] && run < 128 {
			run++
		}
		if run >= 3 {
			out = append(out, byte(-(run-1)), src[i])
			i += run
			continue
		}
		// literal run up to the next repeat of 3+ or 128 bytes
		start := i
		for i < len(src) && i-start < 128 {
			if i+2 < len(src) && src[i] == src[i+1] && src[i] == src[i+2] {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, src[start:i]...)
	}
	return out
}
