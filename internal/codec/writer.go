package codec

import (
	"encoding/binary"
	"math"

	"github.com/sausagetaste/daltools-go/internal/mathutil"
)

// Writer appends little-endian primitives to an in-memory byte buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteBool8 appends a single byte: 1 for true, 0 for false.
func (w *Writer) WriteBool8(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteI16 appends a little-endian int16.
func (w *Writer) WriteI16(v int16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteI32 appends a little-endian int32.
func (w *Writer) WriteI32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteI64 appends a little-endian int64.
func (w *Writer) WriteI64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteU64 appends a little-endian uint64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteF32 appends a little-endian IEEE-754 float32.
func (w *Writer) WriteF32(v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteF32Arr appends each element of vs as a float32.
func (w *Writer) WriteF32Arr(vs []float32) {
	for _, v := range vs {
		w.WriteF32(v)
	}
}

// WriteI32Arr appends each element of vs as an int32.
func (w *Writer) WriteI32Arr(vs []int32) {
	for _, v := range vs {
		w.WriteI32(v)
	}
}

// WriteRaw appends raw bytes verbatim.
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteNTString appends s's bytes followed by a NUL terminator.
func (w *Writer) WriteNTString(s string) {
	w.buf = append(w.buf, []byte(s)...)
	w.buf = append(w.buf, 0)
}

// WriteMat4 appends a 4×4 matrix as 16 float32s in (row,col) lexicographic
// order — i.e. the transpose of the column-major math matrix (§4.6).
func (w *Writer) WriteMat4(m mathutil.Mat4) {
	flat := m.ToFloat32()
	w.WriteF32Arr(flat[:])
}
