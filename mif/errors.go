package mif

import "errors"

// Error taxonomy. Parse and render failures are fatal to the current
// operation; no partial record is returned alongside a non-nil error.
var (
	// ErrUnsupportedVersion means a header or variant tag maps to no
	// known format revision.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrTagMismatch means a fixed section tag does not match its
	// expected constant.
	ErrTagMismatch = errors.New("section tag mismatch")

	// ErrCorruptHeader means the parameter count is out of range and the
	// resync heuristic failed to recover it.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrCorruptData means compressed scanline data is inconsistent with
	// the channel index.
	ErrCorruptData = errors.New("corrupt channel data")

	// ErrIndexOutOfRange means a caller-requested variant or layer index
	// is beyond the available count.
	ErrIndexOutOfRange = errors.New("index out of range")
)
