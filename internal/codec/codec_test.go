package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sausagetaste/daltools-go/internal/mathutil"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBool8(true)
	w.WriteI16(-7)
	w.WriteI32(-123456)
	w.WriteI64(9000000000)
	w.WriteF32(3.5)
	w.WriteNTString("hello")
	w.WriteMat4(mathutil.Mat4Identity())

	r := NewReader(w.Bytes())

	b, err := r.ReadBool8()
	require.NoError(t, err)
	require.True(t, b)

	i16, err := r.ReadI16()
	require.NoError(t, err)
	require.Equal(t, int16(-7), i16)

	i32, err := r.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(-123456), i32)

	i64, err := r.ReadI64()
	require.NoError(t, err)
	require.Equal(t, int64(9000000000), i64)

	f32, err := r.ReadF32()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)

	s, err := r.ReadNTString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	m, err := r.ReadMat4()
	require.NoError(t, err)
	require.Equal(t, mathutil.Mat4Identity(), m)

	require.True(t, r.IsEOF())
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.ReadI32()
	require.ErrorIs(t, err, ErrShortRead)
}

func TestReaderUnterminatedString(t *testing.T) {
	r := NewReader([]byte("no-nul-here"))
	_, err := r.ReadNTString()
	require.ErrorIs(t, err, ErrUnterminatedString)
}

func TestRemainingAndOffset(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	require.Equal(t, 4, r.Remaining())
	_, err := r.ReadI16()
	require.NoError(t, err)
	require.Equal(t, 2, r.Remaining())
	require.Equal(t, 2, r.Offset())
	require.False(t, r.IsEOF())
}
