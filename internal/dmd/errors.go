// Package dmd implements the DMD binary container: a magic-prefixed,
// selectably-compressed envelope (§4.6) wrapping a deterministic binary
// encoding of a runtime Model, plus detached-signature helpers built on
// internal/keys.
package dmd

import "errors"

var (
	ErrMagicMismatch      = errors.New("dmd: magic mismatch")
	ErrTruncated          = errors.New("dmd: truncated envelope")
	ErrCorrupted          = errors.New("dmd: corrupted payload")
	ErrDecompressionFailed = errors.New("dmd: decompression failed")
	ErrCompressionFailed   = errors.New("dmd: compression failed")
	ErrUnsupportedVersion  = errors.New("dmd: unsupported compression method")
	ErrSignatureInvalid    = errors.New("dmd: signature invalid")
)

// Magic is the 8-byte DMD envelope identifier.
var Magic = [8]byte{'D', 'A', 'L', 'M', 'O', 'D', 'E', 'L'}

// Method selects the envelope's payload compression.
type Method int32

const (
	MethodNone    Method = 0
	MethodDeflate Method = 1
	MethodBrotli  Method = 2
)
