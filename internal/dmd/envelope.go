package dmd

import (
	"fmt"

	"github.com/sausagetaste/daltools-go/internal/compress"
	"github.com/sausagetaste/daltools-go/internal/model"
)

// Encode serializes m to its binary payload and wraps it in the DMD
// envelope (magic, method, raw size, payload) using the given
// compression method.
func Encode(m *model.Model, method Method) ([]byte, error) {
	raw := writePayload(m)

	var payload []byte
	switch method {
	case MethodNone:
		payload = raw
	case MethodDeflate:
		compressed, err := compress.DeflateCompress(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
		}
		payload = compressed
	case MethodBrotli:
		compressed, err := compress.BrotliCompress(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
		}
		payload = compressed
	default:
		return nil, ErrUnsupportedVersion
	}

	out := make([]byte, 0, 8+4+8+len(payload))
	out = append(out, Magic[:]...)
	out = append(out, i32le(int32(method))...)
	out = append(out, i64le(int64(len(raw)))...)
	out = append(out, payload...)
	return out, nil
}

// Decode unwraps the DMD envelope and parses the binary payload into a
// Model.
func Decode(data []byte) (*model.Model, error) {
	if len(data) < 8+4+8 {
		return nil, ErrTruncated
	}
	if [8]byte(data[:8]) != Magic {
		return nil, ErrMagicMismatch
	}

	method := Method(i32FromLE(data[8:12]))
	rawSize := i64FromLE(data[12:20])
	if rawSize < 0 {
		return nil, ErrCorrupted
	}
	payload := data[20:]

	var raw []byte
	switch method {
	case MethodNone:
		raw = payload
	case MethodDeflate:
		decoded, err := compress.DeflateDecompress(payload, int(rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		raw = decoded
	case MethodBrotli:
		decoded, err := compress.BrotliDecompress(payload, int(rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		raw = decoded
	default:
		return nil, ErrUnsupportedVersion
	}

	if int64(len(raw)) != rawSize {
		return nil, ErrCorrupted
	}

	m, err := readPayload(raw)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func i32le(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func i64le(v int64) []byte {
	return []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	}
}

func i32FromLE(b []byte) int32 {
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

func i64FromLE(b []byte) int64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return int64(v)
}
