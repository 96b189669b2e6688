package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// brotliQuality matches the reference implementation's fixed quality
// level (§4.2): a mid encode-speed/ratio tradeoff, not maximum compression.
const brotliQuality = 6

// BrotliCompress compresses src with brotli at quality 6.
func BrotliCompress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotliQuality)
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	return buf.Bytes(), nil
}

// BrotliDecompress decompresses src. hint is the exact output size
// recorded alongside src (the envelope's raw_size); the read is capped
// at hint+1 bytes so a corrupted or hostile stream cannot force an
// unbounded decompression (spec §5's "decompression outputs are capped
// by the raw_size hint").
func BrotliDecompress(src []byte, hint int) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(src))
	limit := int64(max(hint, 0)) + 1

	out := bytes.NewBuffer(make([]byte, 0, max(hint, 0)))
	n, err := io.Copy(out, io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedData, err)
	}
	if n > int64(hint) {
		return nil, fmt.Errorf("%w: decompressed output exceeds raw_size hint", ErrCorruptedData)
	}
	return out.Bytes(), nil
}
