// Package bundle implements the DALBUNDLE archive format (§4.7): a
// fixed header followed by a brotli-compressed item index and a
// brotli-compressed data block, read lazily so an item's bytes are
// decompressed only on first lookup.
package bundle

import "errors"

var (
	ErrMagicMismatch      = errors.New("bundle: magic mismatch")
	ErrTruncated          = errors.New("bundle: truncated file")
	ErrCorrupted          = errors.New("bundle: corrupted index or data block")
	ErrDuplicateName      = errors.New("bundle: duplicate item name")
	ErrNotFound           = errors.New("bundle: item not found")
	ErrUnsupportedVersion = errors.New("bundle: unsupported header version")
)

// Magic is the 8-byte DALBUNDLE identifier. The reference format's
// 9-byte C string "DALBUNDLE" is truncated to its first 8 bytes when
// copied into a fixed char[8] field, dropping the trailing 'E'.
var Magic = [8]byte{'D', 'A', 'L', 'B', 'U', 'N', 'D', 'L'}

const headerVersion = 1
