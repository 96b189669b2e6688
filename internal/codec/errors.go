// Package codec implements the little-endian, explicitly-sized primitive
// reader/writer that every persisted daltools format (DMD, bundle, key
// file) is built on. It is the only place in the module that handles
// endianness.
package codec

import "errors"

// ErrShortRead is returned by any Reader method that would read past the
// end of the buffer.
var ErrShortRead = errors.New("codec: short read")

// ErrUnterminatedString is returned by ReadNTString when no NUL byte is
// found before the end of the buffer.
var ErrUnterminatedString = errors.New("codec: unterminated string")
