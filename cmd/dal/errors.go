package main

import (
	"errors"
	"io/fs"

	"github.com/sausagetaste/daltools-go/internal/bundle"
	"github.com/sausagetaste/daltools-go/internal/codec"
	"github.com/sausagetaste/daltools-go/internal/compress"
	"github.com/sausagetaste/daltools-go/internal/dmd"
	"github.com/sausagetaste/daltools-go/internal/keys"
	"github.com/sausagetaste/daltools-go/internal/scenepass"
	"github.com/sausagetaste/daltools-go/internal/vfs"
)

// Exit codes, one per §7 error kind the dispatcher can surface. The
// classified kinds use 64 and up; exitUnknown (1) covers any error that
// matches none of them.
const (
	exitUnknown              = 1
	exitIO                   = 64
	exitMagicMismatch        = 65
	exitTruncated            = 66
	exitCorrupted            = 67
	exitUnterminatedString   = 68
	exitDecompressionFailed  = 69
	exitCompressionFailed    = 70
	exitBase64Decode         = 71
	exitKeyInvalid           = 72
	exitSignatureInvalid     = 73
	exitUnsupportedVersion   = 74
	exitDuplicateName        = 75
	exitNameNotFound         = 76
	exitMultipleSkeletons    = 77
	exitResourceNotSupported = 78
	exitInvariantViolation   = 79
)

// exitCodeFor maps an error returned by a subcommand to the distinct
// exit code for its §7 error kind, falling back to exitUnknown (and, for
// a plain os.IsNotExist-style I/O failure, exitIO).
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, dmd.ErrMagicMismatch), errors.Is(err, bundle.ErrMagicMismatch):
		return exitMagicMismatch
	case errors.Is(err, dmd.ErrTruncated), errors.Is(err, bundle.ErrTruncated):
		return exitTruncated
	case errors.Is(err, dmd.ErrCorrupted), errors.Is(err, bundle.ErrCorrupted), errors.Is(err, compress.ErrCorruptedData):
		return exitCorrupted
	case errors.Is(err, codec.ErrUnterminatedString):
		return exitUnterminatedString
	case errors.Is(err, dmd.ErrDecompressionFailed):
		return exitDecompressionFailed
	case errors.Is(err, dmd.ErrCompressionFailed):
		return exitCompressionFailed
	case errors.Is(err, keys.ErrKeyInvalid):
		return exitKeyInvalid
	case errors.Is(err, dmd.ErrSignatureInvalid), errors.Is(err, keys.ErrSignatureInvalid):
		return exitSignatureInvalid
	case errors.Is(err, dmd.ErrUnsupportedVersion), errors.Is(err, bundle.ErrUnsupportedVersion):
		return exitUnsupportedVersion
	case errors.Is(err, bundle.ErrDuplicateName):
		return exitDuplicateName
	case errors.Is(err, bundle.ErrNotFound), errors.Is(err, scenepass.ErrNameNotFound), errors.Is(err, vfs.ErrNotFound):
		return exitNameNotFound
	case errors.Is(err, scenepass.ErrMultipleSkeletons):
		return exitMultipleSkeletons
	case errors.Is(err, scenepass.ErrInvariantViolation):
		return exitInvariantViolation
	case errors.Is(err, codec.ErrShortRead), errors.Is(err, fs.ErrNotExist):
		return exitIO
	default:
		return exitUnknown
	}
}
