package compress

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

// EnvelopeCompress prepends the raw size as a little-endian int64,
// followed by the deflated input: i64(raw_size) || deflate(src).
func EnvelopeCompress(src []byte) ([]byte, error) {
	compressed, err := DeflateCompress(src)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(compressed))
	binary.LittleEndian.PutUint64(out[:8], uint64(len(src)))
	copy(out[8:], compressed)
	return out, nil
}

// EnvelopeDecompress reads the i64 raw-size prefix, inflates the
// remainder, and asserts the result matches that size.
func EnvelopeDecompress(src []byte) ([]byte, error) {
	if len(src) < 8 {
		return nil, fmt.Errorf("%w: envelope too short", ErrCorruptedData)
	}
	rawSize := int64(binary.LittleEndian.Uint64(src[:8]))
	out, err := DeflateDecompress(src[8:], int(rawSize))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) != rawSize {
		return nil, fmt.Errorf("%w: envelope size mismatch (want %d, got %d)", ErrCorruptedData, rawSize, len(out))
	}
	return out, nil
}

// Base64Encode encodes data as standard base64.
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64Decode decodes a base64 string, tolerating any interspersed
// whitespace (spaces, tabs, newlines) per §4.2.
func Base64Decode(s string) ([]byte, error) {
	cleaned := stripWhitespace(s)
	out, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedData, err)
	}
	return out, nil
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LineWrap inserts a '\n' every lineLen characters, matching the
// reference implementation's key-file text layout (§4.3).
func LineWrap(s string, lineLen int) string {
	var b strings.Builder
	for len(s) > 0 {
		n := lineLen
		if n > len(s) {
			n = len(s)
		}
		b.WriteString(s[:n])
		b.WriteByte('\n')
		s = s[n:]
	}
	return b.String()
}
