// Package compress implements the two-way deflate and brotli codecs, the
// length-prefixed envelope format, and the base64 text-safe codec used by
// key files. See spec §4.2.
package compress

import "errors"

var (
	// ErrNotEnoughBuffer names the output-hint-too-small failure kind.
	// This package's decompressors report output that exceeds the hint
	// as ErrCorruptedData and do not return this error.
	ErrNotEnoughBuffer = errors.New("compress: not enough buffer")
	// ErrInsufficientMemory is returned when the underlying codec fails
	// to allocate its working state.
	ErrInsufficientMemory = errors.New("compress: insufficient memory")
	// ErrCorruptedData is returned when compressed input fails to decode,
	// or an envelope's declared raw size doesn't match the decompressed
	// length.
	ErrCorruptedData = errors.New("compress: corrupted data")
	// ErrUnknown wraps any underlying codec failure not covered above.
	ErrUnknown = errors.New("compress: unknown failure")
)
