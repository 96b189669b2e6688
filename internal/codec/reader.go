package codec

import (
	"encoding/binary"
	"math"

	"github.com/sausagetaste/daltools-go/internal/mathutil"
)

// Reader tracks a cursor over a byte slice and decodes little-endian
// primitives, advancing the cursor on every read.
type Reader struct {
	data []byte
	off  int
}

// NewReader wraps data for sequential reading from offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// IsEOF reports whether the cursor has consumed the entire buffer.
func (r *Reader) IsEOF() bool {
	return r.off >= len(r.data)
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) need(n int) error {
	if r.off+n > len(r.data) {
		return ErrShortRead
	}
	return nil
}

// ReadBool8 reads one byte, non-zero meaning true.
func (r *Reader) ReadBool8() (bool, error) {
	if err := r.need(1); err != nil {
		return false, err
	}
	v := r.data[r.off] != 0
	r.off++
	return v, nil
}

// ReadI16 reads a little-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := int16(binary.LittleEndian.Uint16(r.data[r.off:]))
	r.off += 2
	return v, nil
}

// ReadI32 reads a little-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v, nil
}

// ReadI64 reads a little-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v, nil
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// ReadF32 reads a little-endian IEEE-754 float32.
func (r *Reader) ReadF32() (float32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v, nil
}

// ReadF32Arr reads n float32s.
func (r *Reader) ReadF32Arr(n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadI32Arr reads n int32s.
func (r *Reader) ReadI32Arr(n int) ([]int32, error) {
	out := make([]int32, n)
	for i := range out {
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadRaw reads n raw bytes.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.data[r.off:r.off+n])
	r.off += n
	return out, nil
}

// ReadNTString reads bytes up to (and consuming) the next NUL terminator.
// Returns ErrUnterminatedString if no NUL is found before the buffer ends.
func (r *Reader) ReadNTString() (string, error) {
	start := r.off
	for i := r.off; i < len(r.data); i++ {
		if r.data[i] == 0 {
			s := string(r.data[start:i])
			r.off = i + 1
			return s, nil
		}
	}
	r.off = len(r.data)
	return "", ErrUnterminatedString
}

// ReadMat4 reads a 4×4 matrix stored as 16 float32s in (row,col)
// lexicographic order (§4.6).
func (r *Reader) ReadMat4() (mathutil.Mat4, error) {
	var flat [16]float32
	for i := range flat {
		v, err := r.ReadF32()
		if err != nil {
			return mathutil.Mat4{}, err
		}
		flat[i] = v
	}
	return mathutil.Mat4FromFloat32(flat), nil
}
