package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// DeflateCompress compresses src with zlib-compatible DEFLATE.
func DeflateCompress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientMemory, err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	return buf.Bytes(), nil
}

// DeflateDecompress inflates src. hint is the exact output size recorded
// alongside src (the envelope's raw_size); the read is capped at hint+1
// bytes so a corrupted or hostile stream cannot force an unbounded
// decompression (spec §5's "decompression outputs are capped by the
// raw_size hint").
func DeflateDecompress(src []byte, hint int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(src))
	defer r.Close()

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
